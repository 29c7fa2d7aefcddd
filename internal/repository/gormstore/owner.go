package gormstore

import (
	"context"
	"fmt"

	"github.com/sakif/skillup/internal/apperror"
	"github.com/sakif/skillup/internal/repository"
)

var _ repository.OwnerLookup = (*Store)(nil)

// OwnerOf returns the user id that owns the given entity.
func (s *Store) OwnerOf(ctx context.Context, kind repository.EntityKind, id string) (string, error) {
	var (
		owners []string
		col    string
		q      = s.DB(ctx)
	)

	switch kind {
	case repository.KindChecklist:
		col = "user_id"
		q = q.Table("checklists").Where("id = ?", id)
	case repository.KindChecklistItem:
		col = "c.user_id"
		q = q.Table("checklist_items AS ci").
			Joins("JOIN checklists c ON c.id = ci.checklist_id").
			Where("ci.id = ?", id)
	default:
		return "", fmt.Errorf("gormstore: no owner lookup for %q", kind)
	}

	if err := q.Limit(1).Pluck(col, &owners).Error; err != nil {
		return "", fmt.Errorf("gormstore: owner of %s %s: %w", kind, id, err)
	}
	if len(owners) == 0 {
		return "", apperror.NotFound(string(kind), id)
	}
	return owners[0], nil
}
