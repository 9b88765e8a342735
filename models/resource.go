package models

import "time"

// Resource is the bookable entity. Owner is the owning user's username and is
// immutable after creation. Rows are hard-deleted so the cascade in
// ResourceService really removes them.
type Resource struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name  string  `gorm:"column:name;size:255" json:"name"`
	Type  string  `gorm:"column:type;size:64" json:"type"`
	Owner string  `gorm:"column:owner;size:64;index" json:"owner"`
	Image *string `gorm:"column:image;size:512" json:"image,omitempty"`
}
