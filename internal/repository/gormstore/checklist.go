package gormstore

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"gorm.io/gorm"

	"github.com/sakif/skillup/internal/apperror"
	"github.com/sakif/skillup/internal/model"
	"github.com/sakif/skillup/internal/repository"
)

var _ repository.ChecklistRepository = (*Store)(nil)

// itemOrder sorts items in canonical section order, then by priority.
const itemOrder = `CASE type WHEN 'TECH_SKILL' THEN 0 WHEN 'SOFT_SKILL' THEN 1 WHEN 'CERTIFICATION' THEN 2 ELSE 3 END ASC, priority ASC`

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order(itemOrder)
}

// CreateWithItems assigns ids, inserts the checklist and its items in one
// transaction, and leaves c populated as stored.
func (s *Store) CreateWithItems(ctx context.Context, c *model.Checklist) error {
	c.ID = xid.New().String()
	for i := range c.Items {
		c.Items[i].ID = xid.New().String()
		c.Items[i].ChecklistID = c.ID
		if c.Items[i].Status == "" {
			c.Items[i].Status = model.StatusNotStarted
		}
	}

	return s.WithTx(ctx, func(tx *Store) error {
		items := c.Items
		c.Items = nil
		path := c.CareerPath
		c.CareerPath = nil
		defer func() {
			c.Items = items
			c.CareerPath = path
		}()

		if err := tx.DB(ctx).Create(c).Error; err != nil {
			return fmt.Errorf("gormstore: inserting checklist: %w", err)
		}
		if len(items) == 0 {
			return nil
		}
		if err := tx.DB(ctx).Create(&items).Error; err != nil {
			return fmt.Errorf("gormstore: inserting checklist items: %w", err)
		}
		return nil
	})
}

func (s *Store) ListForUser(ctx context.Context, userID string) ([]model.ChecklistSummary, error) {
	summaries := []model.ChecklistSummary{}
	err := s.DB(ctx).
		Table("checklists AS c").
		Select(`c.id, c.title, c.summary, c.updated_at,
			cp.slug AS career_path_slug,
			cp.name AS career_path_name,
			(SELECT COUNT(*) FROM checklist_items ci WHERE ci.checklist_id = c.id) AS items_count`).
		Joins("JOIN career_paths cp ON cp.id = c.career_path_id").
		Where("c.user_id = ?", userID).
		Order("c.updated_at DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("gormstore: listing checklists for user %s: %w", userID, err)
	}
	return summaries, nil
}

func (s *Store) GetOwned(ctx context.Context, userID, checklistID string) (*model.Checklist, error) {
	var c model.Checklist
	err := s.DB(ctx).
		Preload("CareerPath").
		Preload("Items", orderedItems).
		Where("id = ? AND user_id = ?", checklistID, userID).
		First(&c).Error
	if isNotFound(err) {
		return nil, apperror.NotFound("checklist", checklistID)
	}
	if err != nil {
		return nil, fmt.Errorf("gormstore: getting checklist %s: %w", checklistID, err)
	}
	return &c, nil
}

func (s *Store) LatestForPath(ctx context.Context, userID, careerPathID string) (*model.Checklist, error) {
	var c model.Checklist
	err := s.DB(ctx).
		Preload("CareerPath").
		Preload("Items", orderedItems).
		Where("user_id = ? AND career_path_id = ?", userID, careerPathID).
		Order("updated_at DESC").
		First(&c).Error
	if isNotFound(err) {
		return nil, apperror.NotFound("checklist for career path", careerPathID)
	}
	if err != nil {
		return nil, fmt.Errorf("gormstore: latest checklist for path %s: %w", careerPathID, err)
	}
	return &c, nil
}

// UpdateItemStatus writes status and updatedAt for one item. Concurrent
// writers are last-write-wins.
func (s *Store) UpdateItemStatus(ctx context.Context, itemID string, status model.ItemStatus, at time.Time) (*model.ItemStatusUpdate, error) {
	res := s.DB(ctx).Model(&model.ChecklistItem{}).
		Where("id = ?", itemID).
		Updates(map[string]any{"status": status, "updated_at": at})
	if res.Error != nil {
		return nil, fmt.Errorf("gormstore: updating item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound("checklist item", itemID)
	}
	return &model.ItemStatusUpdate{ID: itemID, Status: status, UpdatedAt: at}, nil
}
