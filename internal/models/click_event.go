package models

import (
	"time"
)

// ClickEvent is one append-only entry in the click log. The running
// Link.ClickCount stays the source of truth for totals; events carry the
// per-click detail the counter cannot.
type ClickEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LinkID     uint      `gorm:"not null;index" json:"linkId"`
	Timestamp  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
	IPAddress  string    `gorm:"size:45" json:"ipAddress,omitempty"`
	Country    string    `gorm:"size:100;default:'Unknown'" json:"country"`
	Browser    string    `gorm:"size:100" json:"browser"`
	OS         string    `gorm:"size:100" json:"os"`
	DeviceType string    `gorm:"size:50" json:"deviceType"`
	Referrer   string    `gorm:"size:255;default:'Direct'" json:"referrer"`
	UserAgent  string    `gorm:"size:255" json:"-"` // raw header, kept out of responses
}
