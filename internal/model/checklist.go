package model

import "time"

// Checklist is a per-user, per-career-path collection of readiness items.
type Checklist struct {
	ID           string          `json:"id"                   gorm:"primaryKey;type:varchar(32)"`
	UserID       string          `json:"userId"               gorm:"index;not null"`
	CareerPathID string          `json:"careerPathId"         gorm:"index;not null"`
	Title        string          `json:"title"                gorm:"not null"`
	Summary      string          `json:"summary"              gorm:"not null;default:''"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	CareerPath   *CareerPath     `json:"careerPath,omitempty" gorm:"foreignKey:CareerPathID"`
	Items        []ChecklistItem `json:"items"                gorm:"foreignKey:ChecklistID"`
}

func (Checklist) TableName() string { return "checklists" }

// ChecklistItem is a single trackable unit with a tri-state status.
type ChecklistItem struct {
	ID          string     `json:"id"          gorm:"primaryKey;type:varchar(32)"`
	ChecklistID string     `json:"checklistId" gorm:"index;not null"`
	Type        ItemType   `json:"type"        gorm:"type:varchar(32);not null"`
	Name        string     `json:"name"        gorm:"not null"`
	Description *string    `json:"description"`
	Priority    *int       `json:"priority"`
	Status      ItemStatus `json:"status"      gorm:"type:varchar(32);not null;default:NOT_STARTED"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (ChecklistItem) TableName() string { return "checklist_items" }

// ChecklistSummary is the list-view projection of a checklist.
type ChecklistSummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	UpdatedAt      time.Time `json:"updatedAt"`
	CareerPathSlug string    `json:"careerPathSlug"`
	CareerPathName string    `json:"careerPathName"`
	ItemsCount     int       `json:"itemsCount"`
}

// ChecklistDetail is the detail-view projection: items in store order
// (type asc, priority asc) plus the same items bucketed by type.
type ChecklistDetail struct {
	ID             string                       `json:"id"`
	Title          string                       `json:"title"`
	Summary        string                       `json:"summary"`
	UpdatedAt      time.Time                    `json:"updatedAt"`
	CareerPathSlug string                       `json:"careerPathSlug"`
	CareerPathName string                       `json:"careerPathName"`
	Items          []ChecklistItem              `json:"items"`
	GroupedItems   map[ItemType][]ChecklistItem `json:"groupedItems"`
}

// ItemStatusUpdate is returned after a successful status mutation.
type ItemStatusUpdate struct {
	ID        string     `json:"id"`
	Status    ItemStatus `json:"status"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// GroupItems buckets items into the canonical partition. All three keys
// are always present. An item whose type is outside the closed set is an
// invariant violation and is reported rather than dropped.
func GroupItems(items []ChecklistItem) (map[ItemType][]ChecklistItem, error) {
	grouped := make(map[ItemType][]ChecklistItem, len(ItemTypes))
	for _, t := range ItemTypes {
		grouped[t] = []ChecklistItem{}
	}
	for _, it := range items {
		bucket, ok := grouped[it.Type]
		if !ok {
			return nil, &UnknownItemTypeError{Value: string(it.Type)}
		}
		grouped[it.Type] = append(bucket, it)
	}
	return grouped, nil
}
