package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/sirupsen/logrus"

	"todolist/internal/auth"
	"todolist/internal/domain"
	"todolist/internal/repository"
)

// DefaultTaskText is the todo every new account starts with.
const DefaultTaskText = "Hello :) Add your first todo!"

const minPasswordLength = 6

// AuthService handles registration and login. Both return a signed bearer
// token on success.
type AuthService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	tasks  repository.TaskRepository
	tokens *auth.TokenService
	logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, tasks repository.TaskRepository, tokens *auth.TokenService, logger *logrus.Logger) AuthService {
	return &authService{
		users:  users,
		tasks:  tasks,
		tokens: tokens,
		logger: logger,
	}
}

func (s *authService) Register(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if verr := validateCredentials(username, password); verr != nil {
		return "", verr
	}

	// explicit pre-check so a duplicate gets a clean conflict before we hash
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return "", ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
	}
	userID, err := s.users.Create(ctx, user)
	if err != nil {
		// the pre-check races with concurrent registrations; the store's
		// uniqueness constraint is authoritative
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return "", ErrUsernameTaken
		}
		return "", err
	}

	// best effort: the account is usable even if the seed todo never lands
	seed := &domain.Task{UserID: userID, Text: DefaultTaskText}
	if _, err := s.tasks.Create(ctx, seed); err != nil {
		s.logger.Warnf("seed default task for user %s: %v", userID, err)
	}

	return s.tokens.Issue(userID)
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

func validateCredentials(username, password string) *ValidationError {
	var fields []FieldError
	if addr, err := mail.ParseAddress(username); err != nil || addr.Address != username {
		fields = append(fields, FieldError{Field: "username", Message: "Invalid email address"})
	}
	if len(password) < minPasswordLength {
		fields = append(fields, FieldError{Field: "password", Message: "Password must be at least 6 characters long"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
