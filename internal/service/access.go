package service

import (
	"context"
	"fmt"

	"github.com/sakif/skillup/internal/apperror"
	"github.com/sakif/skillup/internal/repository"
)

type accessMode int

const (
	// accessRead hides foreign entities: they look exactly like missing ones.
	accessRead accessMode = iota
	// accessWrite distinguishes missing (404) from foreign (403).
	accessWrite
)

// accessGuard is the one place ownership of checklists and their items is
// decided.
type accessGuard struct {
	owners repository.OwnerLookup
}

func (g accessGuard) authorize(ctx context.Context, mode accessMode, kind repository.EntityKind, id, userID string) error {
	owner, err := g.owners.OwnerOf(ctx, kind, id)
	if apperror.IsNotFound(err) {
		return apperror.NotFound(string(kind), id)
	}
	if err != nil {
		return fmt.Errorf("checking owner of %s %s: %w", kind, id, err)
	}
	if owner == userID {
		return nil
	}

	if mode == accessRead {
		return apperror.NotFound(string(kind), id)
	}
	return apperror.Forbidden(fmt.Sprintf("You do not have access to this %s", kind))
}
