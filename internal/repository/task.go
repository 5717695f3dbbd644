package repository

import (
	"context"

	"todolist/internal/domain"
)

// TaskRepository exposes persistence operations for Task entities. Every
// read or mutation is keyed by the owning user so one user's rows are never
// observable through another user's calls.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) (int64, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Task, error)
	SetDone(ctx context.Context, id int64, userID string, done bool) error
	Delete(ctx context.Context, id int64, userID string) error
}
