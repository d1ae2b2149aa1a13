// Package repository owns the user and link collections. Both implementations
// of Store present the same observable semantics: ids are unique and strictly
// increasing per collection, usernames are unique case-insensitively, and the
// order indices of a user's links always form a dense 0..n-1 range after any
// mutation. Returned records are copies; callers never see store internals.
package repository

import (
	"errors"

	"linkbio/internal/models"
)

var (
	// ErrNotFound signals an absent user or link. Handlers translate it to 404.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken signals a case-insensitive username collision.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidOrder signals a reorder request naming a link that is unknown,
	// duplicated, or owned by another user.
	ErrInvalidOrder = errors.New("invalid link order")
)

type Store interface {
	ListUsers() ([]models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUser(id uint, updates models.UserUpdate) (*models.User, error)
	DeleteUser(id uint) error

	ListLinksByUser(userID uint) ([]models.Link, error)
	GetLinkByID(id uint) (*models.Link, error)
	CreateLink(link *models.Link) error
	UpdateLink(id uint, updates models.LinkUpdate) (*models.Link, error)
	DeleteLink(id uint) error
	ReorderLinks(userID uint, linkIDs []uint) ([]models.Link, error)
	IncrementClickCount(linkID uint) (*models.Link, error)

	AppendClickEvent(event *models.ClickEvent) error
	ListClickEventsByLink(linkID uint, limit int) ([]models.ClickEvent, error)
	AppendAuditLog(entry *models.AuditLog) error
}
