// Package auth handles registration, login, and token issuance.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pinfold/service/internal/config"
	"github.com/pinfold/service/internal/user"
)

// tokenTTL is the lifetime of issued bearer tokens.
const tokenTTL = 30 * 24 * time.Hour

// Service contains the business logic for credential-based authentication.
type Service struct {
	userSvc *user.Service
	cfg     *config.Config
}

// NewService creates a new auth Service.
func NewService(userSvc *user.Service, cfg *config.Config) *Service {
	return &Service{userSvc: userSvc, cfg: cfg}
}

// Register creates a new user account. Duplicate emails surface as
// user.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, name, email string, gender user.Gender, password string) (*user.User, error) {
	return s.userSvc.Register(ctx, name, email, gender, password)
}

// Login verifies the email/password pair and issues a JWT for the account.
func (s *Service) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	u, err := s.userSvc.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

// issueToken creates a signed JWT for the given user.
func (s *Service) issueToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
