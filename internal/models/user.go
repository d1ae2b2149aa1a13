package models

import (
	"time"
)

type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Username        string    `gorm:"uniqueIndex;not null;size:80" json:"username"`
	Name            string    `gorm:"size:120" json:"name"`
	Bio             string    `gorm:"type:text" json:"bio"`
	ProfileImage    string    `gorm:"type:text" json:"profileImage"`
	BackgroundImage string    `gorm:"type:text" json:"backgroundImage"`
	Theme           string    `gorm:"size:50;default:'default'" json:"theme"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	Links []Link `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"links,omitempty"`
}

// UserUpdate carries a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	Username        *string `json:"username"`
	Name            *string `json:"name"`
	Bio             *string `json:"bio"`
	ProfileImage    *string `json:"profileImage"`
	BackgroundImage *string `json:"backgroundImage"`
	Theme           *string `json:"theme"`
}
