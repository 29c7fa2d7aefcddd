// Package repository declares the storage contracts the service layer
// depends on. Implementations live in subpackages (gormstore); services
// and their tests only ever see these interfaces.
package repository

import (
	"context"
	"time"

	"github.com/sakif/skillup/internal/model"
)

// UpsertOutcome reports what an idempotent upsert actually did.
type UpsertOutcome int

const (
	Unchanged UpsertOutcome = iota
	Created
	Updated
)

func (o UpsertOutcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "unchanged"
	}
}

type UserRepository interface {
	// UpsertByEmail creates the user or refreshes non-nil profile fields.
	// On return u carries the stored ID and timestamps.
	UpsertByEmail(ctx context.Context, u *model.User) error
	// GetByEmail returns apperror.ErrNotFound when no row exists.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type CareerPathRepository interface {
	List(ctx context.Context) ([]model.CareerPath, error)
	GetBySlug(ctx context.Context, slug string) (*model.CareerPath, error)
	UpsertBySlug(ctx context.Context, p *model.CareerPath) (UpsertOutcome, error)
}

type ChecklistRepository interface {
	// CreateWithItems stores the checklist and all of c.Items atomically.
	CreateWithItems(ctx context.Context, c *model.Checklist) error
	ListForUser(ctx context.Context, userID string) ([]model.ChecklistSummary, error)
	// GetOwned loads a checklist with its career path and ordered items,
	// matching on both id and owner.
	GetOwned(ctx context.Context, userID, checklistID string) (*model.Checklist, error)
	// LatestForPath returns the caller's most recently updated checklist
	// for a career path, or apperror.ErrNotFound.
	LatestForPath(ctx context.Context, userID, careerPathID string) (*model.Checklist, error)
	UpdateItemStatus(ctx context.Context, itemID string, status model.ItemStatus, at time.Time) (*model.ItemStatusUpdate, error)
}

// EntityKind names an owned entity type for OwnerLookup.
type EntityKind string

const (
	KindChecklist     EntityKind = "checklist"
	KindChecklistItem EntityKind = "checklist item"
)

// OwnerLookup resolves the owning user of an entity without loading it.
type OwnerLookup interface {
	// OwnerOf returns apperror.ErrNotFound when the entity does not exist.
	OwnerOf(ctx context.Context, kind EntityKind, id string) (string, error)
}
