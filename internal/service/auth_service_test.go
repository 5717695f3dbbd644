package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"todolist/internal/auth"
	"todolist/internal/repository"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newAuthFixture() (*fakeUserRepo, *fakeTaskRepo, *auth.TokenService, AuthService) {
	users := newFakeUserRepo()
	tasks := newFakeTaskRepo()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	svc := NewAuthService(users, tasks, tokens, testLogger())
	return users, tasks, tokens, svc
}

func TestRegister_IssuesVerifiableToken(t *testing.T) {
	t.Parallel()

	users, _, tokens, svc := newAuthFixture()

	token, err := svc.Register(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)

	user, err := users.GetByUsername(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}

func TestRegister_NeverStoresPlaintextPassword(t *testing.T) {
	t.Parallel()

	users, _, _, svc := newAuthFixture()

	_, err := svc.Register(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	user, err := users.GetByUsername(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", user.PasswordHash)
	require.True(t, auth.CheckPassword("secret1", user.PasswordHash))
}

func TestRegister_SeedsDefaultTask(t *testing.T) {
	t.Parallel()

	users, tasks, _, svc := newAuthFixture()

	_, err := svc.Register(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	user, err := users.GetByUsername(context.Background(), "a@x.com")
	require.NoError(t, err)

	owned, err := tasks.ListByOwner(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	require.Equal(t, DefaultTaskText, owned[0].Text)
	require.False(t, owned[0].Done)
}

func TestRegister_SeedFailureStillRegisters(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	tasks := newFakeTaskRepo()
	tasks.createErr = errStorageDown
	tokens := auth.NewTokenService("test-secret", time.Hour)
	svc := NewAuthService(users, tasks, tokens, testLogger())

	token, err := svc.Register(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)

	// the account exists and works, just without the seed todo
	user, err := users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Username)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	users, _, _, svc := newAuthFixture()

	_, err := svc.Register(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "a@x.com", "secret2")
	require.ErrorIs(t, err, ErrUsernameTaken)

	// the first account is untouched by the rejected attempt
	user, err := users.GetByUsername(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.True(t, auth.CheckPassword("secret1", user.PasswordHash))
	require.False(t, auth.CheckPassword("secret2", user.PasswordHash))
	require.Len(t, users.byUsername, 1)
}

func TestRegister_InsertRaceMapsToConflict(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	users.createErr = repository.ErrDuplicateUsername
	tokens := auth.NewTokenService("test-secret", time.Hour)
	svc := NewAuthService(users, newFakeTaskRepo(), tokens, testLogger())

	_, err := svc.Register(context.Background(), "a@x.com", "secret1")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		password string
		field    string
	}{
		{"empty username", "", "secret1", "username"},
		{"not an email", "not-an-email", "secret1", "username"},
		{"short password", "a@x.com", "12345", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			users, _, _, svc := newAuthFixture()
			_, err := svc.Register(context.Background(), tt.username, tt.password)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.field, verr.Fields[0].Field)
			require.Empty(t, users.byUsername, "validation failures must not touch storage")
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	_, _, tokens, svc := newAuthFixture()

	registered, err := svc.Register(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	registeredID, err := tokens.Verify(registered)
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	loginID, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, registeredID, loginID)

	_, err = svc.Login(context.Background(), "a@x.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@x.com", "secret1")
	require.ErrorIs(t, err, ErrUserNotFound)
}
