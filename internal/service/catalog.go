package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sakif/skillup/internal/apperror"
	"github.com/sakif/skillup/internal/logger"
	"github.com/sakif/skillup/internal/metrics"
	"github.com/sakif/skillup/internal/model"
	"github.com/sakif/skillup/internal/repository"
	"github.com/sakif/skillup/internal/seed"
)

// CatalogService is the read side of career paths plus the seeding
// procedure, which is the only writer.
type CatalogService struct {
	paths   repository.CareerPathRepository
	logger  *logger.Logger
	metrics *metrics.DomainMetrics
}

func NewCatalogService(paths repository.CareerPathRepository, logg *logger.Logger, m *metrics.DomainMetrics) *CatalogService {
	if logg == nil {
		logg = logger.Nop()
	}
	return &CatalogService{paths: paths, logger: logg, metrics: m}
}

// ListCareerPaths returns every path sorted by name.
func (s *CatalogService) ListCareerPaths(ctx context.Context) ([]model.CareerPath, error) {
	paths, err := s.paths.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing career paths: %w", err)
	}
	if paths == nil {
		paths = []model.CareerPath{}
	}
	return paths, nil
}

func (s *CatalogService) GetCareerPathBySlug(ctx context.Context, slug string) (*model.CareerPath, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, apperror.ValidationFailed("careerPathSlug", "careerPathSlug is required")
	}
	return s.paths.GetBySlug(ctx, slug)
}

type SeedReport struct {
	Created   int
	Updated   int
	Unchanged int
}

// Seed upserts every entry by slug. Running it twice with the same input
// leaves the table exactly as the first run did.
func (s *CatalogService) Seed(ctx context.Context, entries []seed.CareerPath) (SeedReport, error) {
	var report SeedReport
	for _, e := range entries {
		p := &model.CareerPath{Slug: e.Slug, Name: e.Name, Description: e.Description}
		outcome, err := s.paths.UpsertBySlug(ctx, p)
		if err != nil {
			return report, fmt.Errorf("seeding %s: %w", e.Slug, err)
		}

		switch outcome {
		case repository.Created:
			report.Created++
		case repository.Updated:
			report.Updated++
		default:
			report.Unchanged++
		}
		s.metrics.CareerPathSeeded(outcome.String())
	}

	s.logger.Event(ctx, zerolog.InfoLevel).
		Int("created", report.Created).
		Int("updated", report.Updated).
		Int("unchanged", report.Unchanged).
		Msg("career path catalog seeded")
	return report, nil
}
