package db

import (
	"time"

	"gorm.io/datatypes"
)

// Event is an audit record of a signup or unregister attempt.
type Event struct {
	ID        uint           `gorm:"primaryKey"`
	SessionID string         `gorm:"size:64;index"`
	Type      string         `gorm:"size:64;not null"`
	Activity  string         `gorm:"size:200;index"`
	Outcome   string         `gorm:"size:32;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
