package service

import "errors"

var (
	// ErrUsernameTaken is returned when registering an already used username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrUserNotFound is returned when logging in with an unknown username.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials indicates that the provided password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTaskNotFound is returned when a task does not exist for the caller.
	ErrTaskNotFound = errors.New("task not found")
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError rejects malformed input before any storage call is made.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return e.Fields[0].Message
	}
	return "validation failed"
}
