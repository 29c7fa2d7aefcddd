package model

import "time"

// CareerPath is a named track such as "Cyber Security". Slug is the
// external identifier and never changes once seeded.
type CareerPath struct {
	ID          string    `json:"id"          gorm:"primaryKey;type:varchar(32)"`
	Slug        string    `json:"slug"        gorm:"uniqueIndex;not null"`
	Name        string    `json:"name"        gorm:"not null"`
	Description string    `json:"description" gorm:"not null;default:''"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (CareerPath) TableName() string { return "career_paths" }
