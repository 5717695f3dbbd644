package domain

import "time"

// User represents a registered account. ID is an opaque unique identifier
// minted at registration; it never changes afterwards.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
