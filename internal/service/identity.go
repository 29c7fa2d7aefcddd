package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sakif/skillup/internal/apperror"
	"github.com/sakif/skillup/internal/logger"
	"github.com/sakif/skillup/internal/model"
	"github.com/sakif/skillup/internal/repository"
)

// Identity is what the session layer knows about the caller. Email is the
// only required field.
type Identity struct {
	Email string
	Name  string
	Image string
}

// IdentityService maps session identities onto User rows.
type IdentityService struct {
	users  repository.UserRepository
	logger *logger.Logger
}

func NewIdentityService(users repository.UserRepository, logg *logger.Logger) *IdentityService {
	if logg == nil {
		logg = logger.Nop()
	}
	return &IdentityService{users: users, logger: logg}
}

// ResolveOrCreateUser returns the user for id.Email, creating it on first
// sight. Non-empty name and image overwrite the stored values.
func (s *IdentityService) ResolveOrCreateUser(ctx context.Context, id Identity) (*model.User, error) {
	email := strings.TrimSpace(id.Email)
	if email == "" {
		return nil, apperror.Unauthenticated("Login required")
	}

	u := &model.User{Email: email}
	if name := strings.TrimSpace(id.Name); name != "" {
		u.Name = &name
	}
	if image := strings.TrimSpace(id.Image); image != "" {
		u.Image = &image
	}

	if err := s.users.UpsertByEmail(ctx, u); err != nil {
		return nil, fmt.Errorf("resolving user: %w", err)
	}
	return u, nil
}

// FindUser returns the stored user for email, or nil when none exists yet.
// Read paths use it so that browsing never creates rows.
func (s *IdentityService) FindUser(ctx context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.Unauthenticated("Login required")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if apperror.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return u, nil
}

// RefreshProfile overwrites the stored name and image of an existing user
// with the non-empty values in id. It reports whether a row was found and
// never creates one.
func (s *IdentityService) RefreshProfile(ctx context.Context, id Identity) (bool, error) {
	existing, err := s.FindUser(ctx, id.Email)
	if err != nil || existing == nil {
		return false, err
	}
	if strings.TrimSpace(id.Name) == "" && strings.TrimSpace(id.Image) == "" {
		return true, nil
	}
	if _, err := s.ResolveOrCreateUser(ctx, id); err != nil {
		return true, err
	}
	return true, nil
}

// requireUser is FindUser for paths where a missing row means the session
// is not usable.
func (s *IdentityService) requireUser(ctx context.Context, email string) (*model.User, error) {
	u, err := s.FindUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.Unauthenticated("User not found")
	}
	return u, nil
}
