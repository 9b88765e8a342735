package models

import (
	"time"

	"gorm.io/datatypes"
)

// Booking reserves an inclusive calendar-day range on a resource. Booker is
// the reserving user's username; the resource image is denormalized onto the
// row at creation time, best effort.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`

	ResourceID uint           `gorm:"column:resource_id;index" json:"resourceId"`
	Booker     string         `gorm:"column:booker;size:64;index" json:"booker"`
	Reference  string         `gorm:"column:reference;size:64" json:"reference"`
	StartDate  datatypes.Date `gorm:"column:start_date" json:"-"`
	EndDate    datatypes.Date `gorm:"column:end_date" json:"-"`
	Comment    *string        `gorm:"column:comment;type:text" json:"comment,omitempty"`
	Image      *string        `gorm:"column:image;size:512" json:"image,omitempty"`
}
