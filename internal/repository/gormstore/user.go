package gormstore

import (
	"context"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/skillup/internal/apperror"
	"github.com/sakif/skillup/internal/model"
	"github.com/sakif/skillup/internal/repository"
)

var _ repository.UserRepository = (*Store)(nil)

// UpsertByEmail looks the user up by email and either inserts a new row or
// refreshes the profile fields that were supplied. Two first-time requests
// for the same email can race on the insert; the loser re-reads the row the
// winner created.
func (s *Store) UpsertByEmail(ctx context.Context, u *model.User) error {
	existing, err := s.GetByEmail(ctx, u.Email)
	switch {
	case err == nil:
		return s.refreshProfile(ctx, existing, u)
	case apperror.IsNotFound(err):
	default:
		return err
	}

	u.ID = xid.New().String()
	if err := s.DB(ctx).Create(u).Error; err != nil {
		existing, getErr := s.GetByEmail(ctx, u.Email)
		if getErr != nil {
			return fmt.Errorf("gormstore: inserting user %s: %w", u.Email, err)
		}
		return s.refreshProfile(ctx, existing, u)
	}
	return nil
}

func (s *Store) refreshProfile(ctx context.Context, existing, incoming *model.User) error {
	updates := map[string]any{}
	if incoming.Name != nil && !sameString(existing.Name, incoming.Name) {
		updates["name"] = *incoming.Name
	}
	if incoming.Image != nil && !sameString(existing.Image, incoming.Image) {
		updates["image"] = *incoming.Image
	}

	if len(updates) > 0 {
		updates["updated_at"] = s.db.NowFunc()
		if err := s.DB(ctx).Model(&model.User{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("gormstore: updating user %s: %w", existing.ID, err)
		}
		fresh, err := s.GetByEmail(ctx, existing.Email)
		if err != nil {
			return err
		}
		existing = fresh
	}

	*incoming = *existing
	return nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := s.DB(ctx).Where("email = ?", email).First(&u).Error
	if isNotFound(err) {
		return nil, apperror.NotFound("user", email)
	}
	if err != nil {
		return nil, fmt.Errorf("gormstore: getting user %s: %w", email, err)
	}
	return &u, nil
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
