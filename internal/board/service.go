package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/pinfold/service/internal/user"
)

// CreateInput carries the fields needed to create a board.
type CreateInput struct {
	Name        string
	Description string
	OwnerID     int64
	IsPrivate   bool
}

// Service contains business logic for board management.
type Service struct {
	repo    Repository
	userSvc *user.Service
}

// NewService creates a new board Service.
func NewService(repo Repository, userSvc *user.Service) *Service {
	return &Service{repo: repo, userSvc: userSvc}
}

// Create verifies the owner exists, then inserts the board. The owner
// check runs before any write so a missing user fails fast with
// user.ErrNotFound and no partial state.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Board, error) {
	if _, err := s.userSvc.GetByID(ctx, in.OwnerID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("check owner: %w", err)
	}

	b, err := s.repo.Create(ctx, &Board{
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     in.OwnerID,
		IsPrivate:   in.IsPrivate,
	})
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	return b, nil
}

// GetByID returns a board by its ID.
func (s *Service) GetByID(ctx context.Context, id int64) (*Board, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByOwner returns all boards owned by the given user.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]Board, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}
