package gormstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/skillup/internal/model"
)

// newTestStore opens a private in-memory database with all migrations
// applied. Each call gets its own database.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func createTestUser(t *testing.T, s *Store, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email}
	require.NoError(t, s.UpsertByEmail(context.Background(), u))
	return u
}

func createTestPath(t *testing.T, s *Store, slug, name string) *model.CareerPath {
	t.Helper()
	p := &model.CareerPath{Slug: slug, Name: name, Description: name + " track"}
	_, err := s.UpsertBySlug(context.Background(), p)
	require.NoError(t, err)
	return p
}

func createTestChecklist(t *testing.T, s *Store, user *model.User, path *model.CareerPath) *model.Checklist {
	t.Helper()
	c := &model.Checklist{
		UserID:       user.ID,
		CareerPathID: path.ID,
		Title:        path.Name + " Readiness Checklist",
		Summary:      "Checklist based on current market requirements.",
		Items: []model.ChecklistItem{
			{Type: model.ItemTypeSoftSkill, Name: "Problem Solving", Priority: intPtr(4)},
			{Type: model.ItemTypeCertification, Name: "Entry-level Certification", Priority: intPtr(3)},
			{Type: model.ItemTypeTechSkill, Name: "Tools & Platforms", Priority: intPtr(2)},
			{Type: model.ItemTypeTechSkill, Name: "Fundamentals", Priority: intPtr(1)},
		},
	}
	require.NoError(t, s.CreateWithItems(context.Background(), c))
	return c
}

func TestOpenInMemoryIsIsolated(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)

	createTestUser(t, a, "only-in-a@example.com")

	_, err := b.GetByEmail(context.Background(), "only-in-a@example.com")
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx *Store) error {
		require.NoError(t, tx.UpsertByEmail(ctx, &model.User{Email: "rolled@example.com"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.GetByEmail(ctx, "rolled@example.com")
	assert.Error(t, err, "user insert should have been rolled back")
}

func TestForeignKeysEnforced(t *testing.T) {
	s := newTestStore(t)

	c := &model.Checklist{UserID: "missing-user", CareerPathID: "missing-path", Title: "orphan"}
	err := s.CreateWithItems(context.Background(), c)
	assert.Error(t, err)
}
