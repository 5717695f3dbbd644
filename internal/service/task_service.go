package service

import (
	"context"
	"errors"
	"strings"

	"todolist/internal/domain"
	"todolist/internal/repository"
)

// TaskService coordinates todo operations. Every call is scoped by the
// authenticated user's identity; there is no unscoped access path.
type TaskService interface {
	List(ctx context.Context, userID string) ([]domain.Task, error)
	Create(ctx context.Context, userID, text string) (*domain.Task, error)
	SetDone(ctx context.Context, userID string, id int64, done bool) error
	Delete(ctx context.Context, userID string, id int64) error
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) List(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, userID)
}

func (s *taskService) Create(ctx context.Context, userID, text string) (*domain.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Fields: []FieldError{{Field: "task", Message: "Task is required"}}}
	}

	task := &domain.Task{
		UserID: userID,
		Text:   text,
	}
	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) SetDone(ctx context.Context, userID string, id int64, done bool) error {
	if err := s.tasks.SetDone(ctx, id, userID, done); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (s *taskService) Delete(ctx context.Context, userID string, id int64) error {
	if err := s.tasks.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}
