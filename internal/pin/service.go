package pin

import (
	"context"
	"errors"
	"fmt"

	"github.com/pinfold/service/internal/board"
	"github.com/pinfold/service/internal/media"
	"github.com/pinfold/service/internal/storage"
	"github.com/pinfold/service/internal/user"
)

// CreateInput carries the metadata fields of a pin-creation request. The
// image payload travels separately as raw bytes plus the original file
// extension.
type CreateInput struct {
	Title       string
	Description string
	BoardID     int64
	OwnerID     int64
	IsPrivate   bool
}

// View is a pin as returned to clients: the stored record plus presigned
// URLs resolved at read time.
type View struct {
	Pin
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Service contains the pin ingestion and delivery logic.
type Service struct {
	repo      Repository
	userSvc   *user.Service
	boardSvc  *board.Service
	processor *media.Processor
	store     storage.ObjectStore
}

// NewService creates a new pin Service. store should be the cached
// ObjectStore so presigned lookups hit the URL cache.
func NewService(repo Repository, userSvc *user.Service, boardSvc *board.Service, processor *media.Processor, store storage.ObjectStore) *Service {
	return &Service{
		repo:      repo,
		userSvc:   userSvc,
		boardSvc:  boardSvc,
		processor: processor,
		store:     store,
	}
}

// Create runs the ingestion pipeline for one pin: validate references,
// process the image, upload both artifacts, persist the record. Reference
// checks happen before any media processing or storage mutation, so a
// missing owner or board fails with no side effects. There is no
// compensating transaction between the uploads and the insert; a storage
// failure surfaces directly and the record step is skipped.
func (s *Service) Create(ctx context.Context, in CreateInput, fileData []byte, ext string) (*Pin, error) {
	if _, err := s.userSvc.GetByID(ctx, in.OwnerID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("check owner: %w", err)
	}
	if _, err := s.boardSvc.GetByID(ctx, in.BoardID); err != nil {
		if errors.Is(err, board.ErrNotFound) {
			return nil, board.ErrNotFound
		}
		return nil, fmt.Errorf("check board: %w", err)
	}

	artifacts, err := s.processor.Process(fileData, ext)
	if err != nil {
		return nil, err
	}
	defer artifacts.Cleanup()

	if _, err := s.store.Upload(ctx, artifacts.OriginalPath, artifacts.Name); err != nil {
		return nil, fmt.Errorf("upload original: %w", err)
	}
	if _, err := s.store.Upload(ctx, artifacts.ThumbPath, artifacts.ThumbName); err != nil {
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}

	p, err := s.repo.Create(ctx, &Pin{
		Title:        in.Title,
		Description:  in.Description,
		ImageKey:     artifacts.Name,
		ThumbnailKey: artifacts.ThumbName,
		BoardID:      in.BoardID,
		OwnerID:      in.OwnerID,
		IsPrivate:    in.IsPrivate,
	})
	if err != nil {
		return nil, fmt.Errorf("create pin: %w", err)
	}
	return p, nil
}

// Get returns a pin with its storage keys resolved to presigned URLs.
func (s *Service) Get(ctx context.Context, id int64) (*View, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, p)
}

// ListByBoard returns all pins on a board, verifying the board exists
// first, with presigned URLs resolved.
func (s *Service) ListByBoard(ctx context.Context, boardID int64) ([]View, error) {
	if _, err := s.boardSvc.GetByID(ctx, boardID); err != nil {
		return nil, err
	}

	pins, err := s.repo.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, pins)
}

// Discover returns up to n random public pins with presigned URLs resolved.
func (s *Service) Discover(ctx context.Context, n int) ([]View, error) {
	pins, err := s.repo.SampleRandomPublic(ctx, n)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, pins)
}

func (s *Service) resolve(ctx context.Context, p *Pin) (*View, error) {
	imageURL, err := s.store.PresignedURL(ctx, p.ImageKey, 0)
	if err != nil {
		return nil, fmt.Errorf("presign image: %w", err)
	}
	thumbURL, err := s.store.PresignedURL(ctx, p.ThumbnailKey, 0)
	if err != nil {
		return nil, fmt.Errorf("presign thumbnail: %w", err)
	}
	return &View{Pin: *p, ImageURL: imageURL, ThumbnailURL: thumbURL}, nil
}

func (s *Service) resolveAll(ctx context.Context, pins []Pin) ([]View, error) {
	views := make([]View, 0, len(pins))
	for i := range pins {
		v, err := s.resolve(ctx, &pins[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}
