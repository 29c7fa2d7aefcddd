// Package model defines the persisted entities and the closed enums used
// throughout the application. Struct tags serve both GORM (column mapping)
// and encoding/json (API shape).
package model

import "time"

// User is created lazily the first time an authenticated email needs a
// database row. Email is the natural key; ID is internal.
//
// Name and Image are pointers because the identity provider may omit them,
// and an absent value must not overwrite a stored one.
type User struct {
	ID        string    `json:"id"              gorm:"primaryKey;type:varchar(32)"`
	Email     string    `json:"email"           gorm:"uniqueIndex;not null"`
	Name      *string   `json:"name,omitempty"`
	Image     *string   `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }
