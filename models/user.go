package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username     string `gorm:"column:username;size:64;uniqueIndex;type:varchar(64)" json:"username"`
	Email        string `gorm:"column:email;size:255;uniqueIndex;type:varchar(255)" json:"email"`
	PasswordHash string `gorm:"column:password_hash;size:255" json:"-"`
	Role         string `gorm:"column:role;size:32;default:user" json:"role"`
	Verified     bool   `gorm:"column:verified;default:true" json:"-"`
}
