package models

import (
	"time"

	"gorm.io/datatypes"
)

// Availability is an owner-declared inclusive calendar-day window during which
// a resource may be booked. Windows are never updated in place; replace by
// delete + insert.
type Availability struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`

	ResourceID uint           `gorm:"column:resource_id;index" json:"resourceId"`
	StartDate  datatypes.Date `gorm:"column:start_date" json:"-"`
	EndDate    datatypes.Date `gorm:"column:end_date" json:"-"`
}

func (Availability) TableName() string { return "availabilities" }
