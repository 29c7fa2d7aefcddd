package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sakif/skillup/internal/apperror"
	"github.com/sakif/skillup/internal/logger"
	"github.com/sakif/skillup/internal/metrics"
	"github.com/sakif/skillup/internal/model"
	"github.com/sakif/skillup/internal/repository"
)

const checklistSummary = "Checklist based on current market requirements."

// DuplicatePolicy controls what Generate does when the caller already has a
// checklist for the requested path.
type DuplicatePolicy string

const (
	DuplicateAllow DuplicatePolicy = "allow"
	DuplicateReuse DuplicatePolicy = "reuse"
)

// ChecklistService generates checklists and serves the per-user views of
// them. Every read and write is scoped to the calling user.
type ChecklistService struct {
	identity   *IdentityService
	catalog    *CatalogService
	checklists repository.ChecklistRepository
	guard      accessGuard
	source     ItemSource
	policy     DuplicatePolicy
	logger     *logger.Logger
	metrics    *metrics.DomainMetrics
	now        func() time.Time
}

type ChecklistDeps struct {
	Identity   *IdentityService
	Catalog    *CatalogService
	Checklists repository.ChecklistRepository
	Owners     repository.OwnerLookup
	Source     ItemSource
	Policy     DuplicatePolicy
	Logger     *logger.Logger
	Metrics    *metrics.DomainMetrics
}

func NewChecklistService(deps ChecklistDeps) *ChecklistService {
	source := deps.Source
	if source == nil {
		source = PlaceholderSource{}
	}
	policy := deps.Policy
	if policy == "" {
		policy = DuplicateAllow
	}
	logg := deps.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &ChecklistService{
		identity:   deps.Identity,
		catalog:    deps.Catalog,
		checklists: deps.Checklists,
		guard:      accessGuard{owners: deps.Owners},
		source:     source,
		policy:     policy,
		logger:     logg,
		metrics:    deps.Metrics,
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
}

// Generate creates a checklist for the caller on the given career path.
// The checklist and all its items are written in one transaction.
func (s *ChecklistService) Generate(ctx context.Context, id Identity, careerPathSlug string) (*model.Checklist, error) {
	slug := strings.TrimSpace(careerPathSlug)
	if slug == "" {
		return nil, apperror.ValidationFailed("careerPathSlug", "careerPathSlug is required")
	}

	user, err := s.identity.ResolveOrCreateUser(ctx, id)
	if err != nil {
		return nil, err
	}

	path, err := s.catalog.GetCareerPathBySlug(ctx, slug)
	if apperror.IsNotFound(err) {
		return nil, apperror.PathNotFound(slug)
	}
	if err != nil {
		return nil, fmt.Errorf("resolving career path %s: %w", slug, err)
	}

	if s.policy == DuplicateReuse {
		existing, err := s.checklists.LatestForPath(ctx, user.ID, path.ID)
		if err == nil {
			existing.CareerPath = path
			return existing, nil
		}
		if !apperror.IsNotFound(err) {
			return nil, fmt.Errorf("looking up existing checklist: %w", err)
		}
	}

	templates, err := s.source.ProduceItems(ctx, *path)
	if err != nil {
		return nil, fmt.Errorf("producing checklist items: %w", err)
	}

	items := make([]model.ChecklistItem, 0, len(templates))
	for _, tpl := range templates {
		typ, err := model.ParseItemType(string(tpl.Type))
		if err != nil {
			return nil, apperror.Internal("Failed to generate checklist", err)
		}
		priority := tpl.Priority
		items = append(items, model.ChecklistItem{
			Type:        typ,
			Name:        tpl.Name,
			Description: tpl.Description,
			Priority:    &priority,
			Status:      model.StatusNotStarted,
		})
	}

	checklist := &model.Checklist{
		UserID:       user.ID,
		CareerPathID: path.ID,
		Title:        path.Name + " Readiness Checklist",
		Summary:      checklistSummary,
		Items:        items,
	}
	if err := s.checklists.CreateWithItems(ctx, checklist); err != nil {
		return nil, fmt.Errorf("creating checklist: %w", err)
	}
	checklist.CareerPath = path

	s.metrics.ChecklistGenerated(path.Slug)
	s.logger.Info(s.logger.WithFields(ctx, map[string]any{
		"checklist_id": checklist.ID,
		"career_path":  path.Slug,
	}), "checklist generated")

	return checklist, nil
}

// List returns the caller's checklists, newest first. A caller without a
// user row simply has none.
func (s *ChecklistService) List(ctx context.Context, email string) ([]model.ChecklistSummary, error) {
	user, err := s.identity.FindUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []model.ChecklistSummary{}, nil
	}

	summaries, err := s.checklists.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing checklists: %w", err)
	}
	if summaries == nil {
		summaries = []model.ChecklistSummary{}
	}
	return summaries, nil
}

// Get returns one of the caller's checklists. Another user's checklist is
// reported as not found.
func (s *ChecklistService) Get(ctx context.Context, email, checklistID string) (*model.ChecklistDetail, error) {
	checklistID = strings.TrimSpace(checklistID)
	if checklistID == "" {
		return nil, apperror.ValidationFailed("id", "Missing checklist id")
	}

	user, err := s.identity.requireUser(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.guard.authorize(ctx, accessRead, repository.KindChecklist, checklistID, user.ID); err != nil {
		return nil, err
	}

	c, err := s.checklists.GetOwned(ctx, user.ID, checklistID)
	if err != nil {
		return nil, err
	}

	grouped, err := model.GroupItems(c.Items)
	if err != nil {
		return nil, apperror.Internal("Failed to load checklist", err)
	}

	detail := &model.ChecklistDetail{
		ID:           c.ID,
		Title:        c.Title,
		Summary:      c.Summary,
		UpdatedAt:    c.UpdatedAt,
		Items:        c.Items,
		GroupedItems: grouped,
	}
	if detail.Items == nil {
		detail.Items = []model.ChecklistItem{}
	}
	if c.CareerPath != nil {
		detail.CareerPathSlug = c.CareerPath.Slug
		detail.CareerPathName = c.CareerPath.Name
	}
	return detail, nil
}

// UpdateItemStatus sets the status of one of the caller's items. The status
// is validated before anything is read, so a bad value never reaches the
// store.
func (s *ChecklistService) UpdateItemStatus(ctx context.Context, email, itemID, status string) (*model.ItemStatusUpdate, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, apperror.ValidationFailed("id", "Missing item id")
	}
	newStatus, ok := model.ParseItemStatus(status)
	if !ok {
		return nil, apperror.ValidationFailed("status", "Invalid status")
	}

	user, err := s.identity.requireUser(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.guard.authorize(ctx, accessWrite, repository.KindChecklistItem, itemID, user.ID); err != nil {
		return nil, err
	}

	updated, err := s.checklists.UpdateItemStatus(ctx, itemID, newStatus, s.now())
	if err != nil {
		return nil, err
	}

	s.metrics.ItemStatusUpdated(string(newStatus))
	s.logger.Debug(s.logger.WithField(ctx, "item_id", itemID), "checklist item status updated")
	return updated, nil
}
