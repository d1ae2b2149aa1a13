package models

import (
	"time"
)

// Link layout variants for the public profile page.
const (
	LayoutClassic  = "classic"
	LayoutFeatured = "featured"
)

type Link struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"userId"`
	Title      string    `gorm:"not null;size:120" json:"title"`
	URL        string    `gorm:"not null;type:text" json:"url"`
	Icon       string    `gorm:"size:50" json:"icon"`
	OrderIndex int       `gorm:"not null;default:0;index" json:"orderIndex"`
	ClickCount int       `gorm:"not null;default:0" json:"clickCount"`
	Layout     string    `gorm:"size:20" json:"layout,omitempty"`
	Thumbnail  string    `gorm:"type:text" json:"thumbnail,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Events []ClickEvent `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE" json:"-"`
}

// LinkUpdate carries a partial content update. Ordering is not part of it;
// display order only changes through the bulk reorder operation so the
// per-user index range stays dense.
type LinkUpdate struct {
	Title     *string `json:"title"`
	URL       *string `json:"url"`
	Icon      *string `json:"icon"`
	Layout    *string `json:"layout"`
	Thumbnail *string `json:"thumbnail"`
}
