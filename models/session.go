package models

import "time"

// Session is an opaque-token login session persisted in the relational store
// and surfaced to the browser as an http-only cookie.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"-"`

	Token     string     `gorm:"column:token;size:128;uniqueIndex;type:varchar(128)" json:"-"`
	UserID    uint       `gorm:"column:user_id;index" json:"-"`
	ExpiresAt *time.Time `gorm:"column:expires_at" json:"-"`
}
