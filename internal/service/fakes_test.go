package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"todolist/internal/domain"
	"todolist/internal/repository"
)

type fakeUserRepo struct {
	byUsername map[string]*domain.User
	createErr  error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	if _, ok := f.byUsername[user.Username]; ok {
		return "", repository.ErrDuplicateUsername
	}
	user.ID = uuid.NewString()
	stored := *user
	f.byUsername[user.Username] = &stored
	return user.ID, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, user := range f.byUsername {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeTaskRepo struct {
	tasks     []domain.Task
	nextID    int64
	createErr error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{nextID: 1}
}

func (f *fakeTaskRepo) Init(ctx context.Context) error { return nil }

func (f *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	task.ID = f.nextID
	f.nextID++
	f.tasks = append(f.tasks, *task)
	return task.ID, nil
}

func (f *fakeTaskRepo) ListByOwner(ctx context.Context, userID string) ([]domain.Task, error) {
	var owned []domain.Task
	for _, task := range f.tasks {
		if task.UserID == userID {
			owned = append(owned, task)
		}
	}
	return owned, nil
}

func (f *fakeTaskRepo) SetDone(ctx context.Context, id int64, userID string, done bool) error {
	for i := range f.tasks {
		if f.tasks[i].ID == id && f.tasks[i].UserID == userID {
			f.tasks[i].Done = done
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id int64, userID string) error {
	for i := range f.tasks {
		if f.tasks[i].ID == id && f.tasks[i].UserID == userID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

var errStorageDown = fmt.Errorf("storage down")
