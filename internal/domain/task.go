package domain

import "time"

// Task is a single todo item. Every task belongs to exactly one user and is
// only visible to that user.
type Task struct {
	ID        int64
	UserID    string
	Text      string
	Done      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
