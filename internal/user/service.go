package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when an email/password pair does not
// match a stored account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// bcryptCost is the work factor for password hashing. Injectable so tests
// can use bcrypt.MinCost instead of paying ~250ms per hash.
const bcryptCost = 12

// Service contains business logic for user management.
type Service struct {
	repo Repository
	cost int
}

// NewService creates a new user Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, cost: bcryptCost}
}

// NewServiceWithCost creates a Service with a custom bcrypt cost. Tests
// pass bcrypt.MinCost.
func NewServiceWithCost(repo Repository, cost int) *Service {
	return &Service{repo: repo, cost: cost}
}

// Register creates a new account with a salted bcrypt hash of password.
// Returns ErrEmailTaken when the email is already registered. The
// pre-insert read gives a friendly fast path; the unique index in the
// users table is what actually closes the race.
func (s *Service) Register(ctx context.Context, name, email string, gender Gender, password string) (*User, error) {
	if !gender.Valid() {
		return nil, fmt.Errorf("unknown gender %q", gender)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, &User{
		Name:         name,
		Email:        email,
		Gender:       gender,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID returns a user by their ID.
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// Authenticate verifies an email/password pair and returns the matching
// user. Unknown emails and wrong passwords both yield
// ErrInvalidCredentials so callers cannot probe for registered addresses.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
