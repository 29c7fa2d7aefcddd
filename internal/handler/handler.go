// Package handler holds the HTTP handlers: the JSON API under /api, the
// OAuth routes, server-rendered pages and the health probe. Handlers only
// parse requests, call a service and write the result.
package handler

import (
	"context"

	"github.com/sakif/skillup/internal/auth"
	"github.com/sakif/skillup/internal/logger"
	"github.com/sakif/skillup/internal/model"
	"github.com/sakif/skillup/internal/service"
)

type CatalogService interface {
	ListCareerPaths(ctx context.Context) ([]model.CareerPath, error)
}

type ChecklistService interface {
	Generate(ctx context.Context, id service.Identity, careerPathSlug string) (*model.Checklist, error)
	List(ctx context.Context, email string) ([]model.ChecklistSummary, error)
	Get(ctx context.Context, email, checklistID string) (*model.ChecklistDetail, error)
	UpdateItemStatus(ctx context.Context, email, itemID, status string) (*model.ItemStatusUpdate, error)
}

var (
	_ CatalogService   = (*service.CatalogService)(nil)
	_ ChecklistService = (*service.ChecklistService)(nil)
	_ ProfileRefresher = (*service.IdentityService)(nil)
)

// orNop keeps handlers usable when constructed without a logger.
func orNop(logg *logger.Logger) *logger.Logger {
	if logg == nil {
		return logger.Nop()
	}
	return logg
}

func identityFrom(sess auth.Session) service.Identity {
	return service.Identity{Email: sess.Email, Name: sess.Name, Image: sess.Picture}
}
