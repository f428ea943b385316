package db

import (
	"time"

	"gorm.io/datatypes"
)

// Session is the per-browser UI state: status message, signup form draft
// and the activity list on screen. Page is read back only while PageHeld
// is set, for the single redraw that follows an action.
type Session struct {
	ID              string         `gorm:"primaryKey;size:64"`
	StatusText      string         `gorm:"type:text"`
	StatusKind      string         `gorm:"size:16"`
	StatusExpiresAt *time.Time     `gorm:"index"`
	DraftEmail      string         `gorm:"size:320"`
	DraftActivity   string         `gorm:"size:200"`
	Page            datatypes.JSON `gorm:"type:jsonb"`
	PageHeld        bool           `gorm:"not null"`
	CreatedAt       time.Time      `gorm:"not null"`
	UpdatedAt       time.Time      `gorm:"not null"`
}
