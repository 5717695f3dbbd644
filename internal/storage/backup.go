package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// BackupConfig controls the periodic database snapshot uploader.
type BackupConfig struct {
	Bucket       string
	KeyPrefix    string
	Interval     time.Duration
	DatabasePath string
}

// Backup periodically copies the sqlite database file to object storage.
// Failures are logged and retried on the next tick; a backup problem never
// takes the service down.
type Backup struct {
	cfg     BackupConfig
	storage Service
	logger  *logrus.Logger
}

func NewBackup(cfg BackupConfig, storage Service, logger *logrus.Logger) *Backup {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &Backup{
		cfg:     cfg,
		storage: storage,
		logger:  logger,
	}
}

// Run uploads a snapshot on every interval tick until ctx is cancelled, then
// takes one final snapshot on the way out.
func (b *Backup) Run(ctx context.Context) {
	ticker := time.NewTicker(b.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.snapshot(ctx)
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			b.snapshot(shutdownCtx)
			cancel()
			return
		}
	}
}

func (b *Backup) snapshot(ctx context.Context) {
	key := b.snapshotKey(time.Now().UTC())
	if err := b.storage.UploadFile(ctx, b.cfg.Bucket, key, b.cfg.DatabasePath); err != nil {
		b.logger.Warnf("database backup: %v", err)
		return
	}
	b.logger.Infof("database backup uploaded to s3://%s/%s", b.cfg.Bucket, key)
}

func (b *Backup) snapshotKey(now time.Time) string {
	base := filepath.Base(b.cfg.DatabasePath)
	prefix := strings.Trim(b.cfg.KeyPrefix, "/")
	key := fmt.Sprintf("%s-%s", now.Format("20060102T150405"), base)
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}
