package models

import (
	"time"
)

// Audit actions.
const (
	ActionCreateUser   = "CREATE_USER"
	ActionUpdateUser   = "UPDATE_USER"
	ActionDeleteUser   = "DELETE_USER"
	ActionCreateLink   = "CREATE_LINK"
	ActionUpdateLink   = "UPDATE_LINK"
	ActionDeleteLink   = "DELETE_LINK"
	ActionReorderLinks = "REORDER_LINKS"
	ActionClick        = "CLICK"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"` // nullable: clicks are anonymous
	Action    string    `gorm:"size:50;not null" json:"action"`
	EntityID  string    `gorm:"size:50" json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"` // JSON description
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Timestamp time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}
