package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/skillup/internal/apperror"
	"github.com/sakif/skillup/internal/logger"
	"github.com/sakif/skillup/internal/model"
	"github.com/sakif/skillup/internal/seed"
)

func TestListCareerPathsSorted(t *testing.T) {
	repo := newMockPathRepo(
		model.CareerPath{Slug: "software-engineering", Name: "Software Engineering"},
		model.CareerPath{Slug: "cyber-security", Name: "Cyber Security"},
	)
	svc := NewCatalogService(repo, logger.Nop(), nil)

	paths, err := svc.ListCareerPaths(context.Background())
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, "cyber-security", paths[0].Slug)
}

func TestListCareerPathsEmptyIsNotNil(t *testing.T) {
	svc := NewCatalogService(newMockPathRepo(), logger.Nop(), nil)

	paths, err := svc.ListCareerPaths(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, paths)
	assert.Empty(t, paths)
}

func TestListCareerPathsStoreError(t *testing.T) {
	repo := newMockPathRepo()
	repo.err = errStoreDown
	svc := NewCatalogService(repo, logger.Nop(), nil)

	_, err := svc.ListCareerPaths(context.Background())
	assert.ErrorIs(t, err, errStoreDown)
}

func TestGetCareerPathBySlug(t *testing.T) {
	svc := NewCatalogService(newMockPathRepo(model.CareerPath{Slug: "data-ai", Name: "Data & AI"}), logger.Nop(), nil)
	ctx := context.Background()

	p, err := svc.GetCareerPathBySlug(ctx, "data-ai")
	require.NoError(t, err)
	assert.Equal(t, "Data & AI", p.Name)

	_, err = svc.GetCareerPathBySlug(ctx, "nope")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.GetCareerPathBySlug(ctx, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := newMockPathRepo()
	svc := NewCatalogService(repo, logger.Nop(), nil)
	ctx := context.Background()

	catalog, err := seed.Default()
	require.NoError(t, err)

	report, err := svc.Seed(ctx, catalog.CareerPaths)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Created: 3}, report)

	before, err := svc.ListCareerPaths(ctx)
	require.NoError(t, err)

	report, err = svc.Seed(ctx, catalog.CareerPaths)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Unchanged: 3}, report)

	after, err := svc.ListCareerPaths(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSeedUpdatesChangedEntries(t *testing.T) {
	repo := newMockPathRepo(model.CareerPath{Slug: "data-ai", Name: "Data", Description: "old"})
	svc := NewCatalogService(repo, logger.Nop(), nil)

	report, err := svc.Seed(context.Background(), []seed.CareerPath{
		{Slug: "data-ai", Name: "Data & AI", Description: "new"},
	})
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Updated: 1}, report)
	assert.Equal(t, "Data & AI", repo.paths["data-ai"].Name)
}
