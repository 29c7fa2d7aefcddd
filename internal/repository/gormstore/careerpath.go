package gormstore

import (
	"context"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/skillup/internal/apperror"
	"github.com/sakif/skillup/internal/model"
	"github.com/sakif/skillup/internal/repository"
)

var _ repository.CareerPathRepository = (*Store)(nil)

func (s *Store) List(ctx context.Context) ([]model.CareerPath, error) {
	var paths []model.CareerPath
	if err := s.DB(ctx).Order("name ASC").Find(&paths).Error; err != nil {
		return nil, fmt.Errorf("gormstore: listing career paths: %w", err)
	}
	return paths, nil
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (*model.CareerPath, error) {
	var p model.CareerPath
	err := s.DB(ctx).Where("slug = ?", slug).First(&p).Error
	if isNotFound(err) {
		return nil, apperror.NotFound("career path", slug)
	}
	if err != nil {
		return nil, fmt.Errorf("gormstore: getting career path %s: %w", slug, err)
	}
	return &p, nil
}

// UpsertBySlug inserts p or updates name/description of the row with the
// same slug. A row whose fields already match is left alone, timestamps
// included, so repeated seeding is a no-op.
func (s *Store) UpsertBySlug(ctx context.Context, p *model.CareerPath) (repository.UpsertOutcome, error) {
	outcome := repository.Unchanged
	err := s.WithTx(ctx, func(tx *Store) error {
		existing, err := tx.GetBySlug(ctx, p.Slug)
		if apperror.IsNotFound(err) {
			p.ID = xid.New().String()
			if err := tx.DB(ctx).Create(p).Error; err != nil {
				return fmt.Errorf("gormstore: inserting career path %s: %w", p.Slug, err)
			}
			outcome = repository.Created
			return nil
		}
		if err != nil {
			return err
		}

		if existing.Name == p.Name && existing.Description == p.Description {
			*p = *existing
			return nil
		}

		err = tx.DB(ctx).Model(&model.CareerPath{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{
				"name":        p.Name,
				"description": p.Description,
				"updated_at":  tx.db.NowFunc(),
			}).Error
		if err != nil {
			return fmt.Errorf("gormstore: updating career path %s: %w", p.Slug, err)
		}
		fresh, err := tx.GetBySlug(ctx, p.Slug)
		if err != nil {
			return err
		}
		*p = *fresh
		outcome = repository.Updated
		return nil
	})
	if err != nil {
		return repository.Unchanged, err
	}
	return outcome, nil
}
