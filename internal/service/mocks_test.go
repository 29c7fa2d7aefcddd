package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sakif/skillup/internal/apperror"
	"github.com/sakif/skillup/internal/model"
	"github.com/sakif/skillup/internal/repository"
)

// Hand-written in-memory fakes. They implement the repository interfaces
// closely enough for service logic to be tested without a database.

var errStoreDown = errors.New("store unavailable")

type mockUserRepo struct {
	mu     sync.Mutex
	users  map[string]*model.User
	nextID int
	err    error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*model.User{}}
}

func (m *mockUserRepo) UpsertByEmail(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	existing, ok := m.users[u.Email]
	if !ok {
		m.nextID++
		u.ID = fmt.Sprintf("user-%d", m.nextID)
		stored := *u
		m.users[u.Email] = &stored
		return nil
	}
	if u.Name != nil {
		existing.Name = u.Name
	}
	if u.Image != nil {
		existing.Image = u.Image
	}
	*u = *existing
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[email]
	if !ok {
		return nil, apperror.NotFound("user", email)
	}
	out := *u
	return &out, nil
}

type mockPathRepo struct {
	paths  map[string]*model.CareerPath
	nextID int
	err    error
}

func newMockPathRepo(paths ...model.CareerPath) *mockPathRepo {
	m := &mockPathRepo{paths: map[string]*model.CareerPath{}}
	for _, p := range paths {
		p := p
		if p.ID == "" {
			m.nextID++
			p.ID = fmt.Sprintf("path-%d", m.nextID)
		}
		m.paths[p.Slug] = &p
	}
	return m
}

func (m *mockPathRepo) List(_ context.Context) ([]model.CareerPath, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.CareerPath, 0, len(m.paths))
	for _, p := range m.paths {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockPathRepo) GetBySlug(_ context.Context, slug string) (*model.CareerPath, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.paths[slug]
	if !ok {
		return nil, apperror.NotFound("career path", slug)
	}
	out := *p
	return &out, nil
}

func (m *mockPathRepo) UpsertBySlug(_ context.Context, p *model.CareerPath) (repository.UpsertOutcome, error) {
	if m.err != nil {
		return repository.Unchanged, m.err
	}
	existing, ok := m.paths[p.Slug]
	if !ok {
		m.nextID++
		p.ID = fmt.Sprintf("path-%d", m.nextID)
		stored := *p
		m.paths[p.Slug] = &stored
		return repository.Created, nil
	}
	if existing.Name == p.Name && existing.Description == p.Description {
		*p = *existing
		return repository.Unchanged, nil
	}
	existing.Name = p.Name
	existing.Description = p.Description
	*p = *existing
	return repository.Updated, nil
}

// mockChecklistRepo implements both ChecklistRepository and OwnerLookup.
type mockChecklistRepo struct {
	checklists map[string]*model.Checklist
	nextID     int
	createErr  error
	creates    int
	updates    int
}

func newMockChecklistRepo() *mockChecklistRepo {
	return &mockChecklistRepo{checklists: map[string]*model.Checklist{}}
}

func (m *mockChecklistRepo) CreateWithItems(_ context.Context, c *model.Checklist) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.creates++
	m.nextID++
	c.ID = fmt.Sprintf("checklist-%d", m.nextID)
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	for i := range c.Items {
		m.nextID++
		c.Items[i].ID = fmt.Sprintf("item-%d", m.nextID)
		c.Items[i].ChecklistID = c.ID
	}
	stored := *c
	stored.Items = append([]model.ChecklistItem(nil), c.Items...)
	stored.CareerPath = nil
	m.checklists[c.ID] = &stored
	return nil
}

func (m *mockChecklistRepo) ListForUser(_ context.Context, userID string) ([]model.ChecklistSummary, error) {
	out := []model.ChecklistSummary{}
	for _, c := range m.checklists {
		if c.UserID != userID {
			continue
		}
		out = append(out, model.ChecklistSummary{ID: c.ID, Title: c.Title, UpdatedAt: c.UpdatedAt, ItemsCount: len(c.Items)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *mockChecklistRepo) GetOwned(_ context.Context, userID, checklistID string) (*model.Checklist, error) {
	c, ok := m.checklists[checklistID]
	if !ok || c.UserID != userID {
		return nil, apperror.NotFound("checklist", checklistID)
	}
	out := *c
	out.Items = append([]model.ChecklistItem(nil), c.Items...)
	return &out, nil
}

func (m *mockChecklistRepo) LatestForPath(_ context.Context, userID, careerPathID string) (*model.Checklist, error) {
	var latest *model.Checklist
	for _, c := range m.checklists {
		if c.UserID == userID && c.CareerPathID == careerPathID {
			if latest == nil || c.UpdatedAt.After(latest.UpdatedAt) {
				latest = c
			}
		}
	}
	if latest == nil {
		return nil, apperror.NotFound("checklist for career path", careerPathID)
	}
	out := *latest
	return &out, nil
}

func (m *mockChecklistRepo) UpdateItemStatus(_ context.Context, itemID string, status model.ItemStatus, at time.Time) (*model.ItemStatusUpdate, error) {
	for _, c := range m.checklists {
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				m.updates++
				c.Items[i].Status = status
				c.Items[i].UpdatedAt = at
				return &model.ItemStatusUpdate{ID: itemID, Status: status, UpdatedAt: at}, nil
			}
		}
	}
	return nil, apperror.NotFound("checklist item", itemID)
}

func (m *mockChecklistRepo) OwnerOf(_ context.Context, kind repository.EntityKind, id string) (string, error) {
	for _, c := range m.checklists {
		switch kind {
		case repository.KindChecklist:
			if c.ID == id {
				return c.UserID, nil
			}
		case repository.KindChecklistItem:
			for _, it := range c.Items {
				if it.ID == id {
					return c.UserID, nil
				}
			}
		}
	}
	return "", apperror.NotFound(string(kind), id)
}

func (m *mockChecklistRepo) item(id string) *model.ChecklistItem {
	for _, c := range m.checklists {
		for i := range c.Items {
			if c.Items[i].ID == id {
				return &c.Items[i]
			}
		}
	}
	return nil
}
