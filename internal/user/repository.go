// Package user manages user accounts and their persistence.
package user

import (
	"context"
	"errors"
	"time"
)

// Gender is the enumerated gender of a user.
type Gender string

// Gender values accepted at registration and stored verbatim.
const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Valid reports whether g is one of the known gender values.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// User represents a registered account. PasswordHash never leaves the
// service layer; it is excluded from all JSON serialization.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Gender       Gender    `json:"gender"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ErrNotFound is returned when a user does not exist.
var ErrNotFound = errors.New("user not found")

// ErrEmailTaken is returned when an email address is already registered.
var ErrEmailTaken = errors.New("email already registered")

// Repository is the persistence contract for users. The Postgres
// implementation backs production; the in-memory one backs tests.
type Repository interface {
	// Create inserts u and returns the stored record with its assigned ID.
	// Returns ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
