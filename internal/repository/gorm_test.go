package repository

import (
	"testing"

	"linkbio/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGormStore(db)
}

func TestGormStore(t *testing.T) {
	t.Run("User round trip with case-insensitive lookup", func(t *testing.T) {
		store := setupGormStore(t)
		u := &models.User{Username: "JohnDoe", Name: "John"}
		assert.NoError(t, store.CreateUser(u))
		assert.NotZero(t, u.ID)

		found, err := store.GetUserByUsername("JOHNDOE")
		assert.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)

		_, err = store.GetUserByUsername("nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Duplicate username rejected", func(t *testing.T) {
		store := setupGormStore(t)
		assert.NoError(t, store.CreateUser(&models.User{Username: "alice"}))
		assert.ErrorIs(t, store.CreateUser(&models.User{Username: "Alice"}), ErrUsernameTaken)
	})

	t.Run("Partial user update", func(t *testing.T) {
		store := setupGormStore(t)
		u := &models.User{Username: "alice", Bio: "old bio"}
		assert.NoError(t, store.CreateUser(u))

		theme := "sunset"
		updated, err := store.UpdateUser(u.ID, models.UserUpdate{Theme: &theme})
		assert.NoError(t, err)
		assert.Equal(t, "sunset", updated.Theme)
		assert.Equal(t, "old bio", updated.Bio)
	})

	t.Run("Link create appends densely and reorder holds", func(t *testing.T) {
		store := setupGormStore(t)
		u := &models.User{Username: "alice"}
		assert.NoError(t, store.CreateUser(u))

		var ids []uint
		for _, title := range []string{"one", "two", "three"} {
			l := &models.Link{UserID: u.ID, Title: title, URL: "https://e/" + title, OrderIndex: 42}
			assert.NoError(t, store.CreateLink(l))
			ids = append(ids, l.ID)
		}

		links, _ := store.ListLinksByUser(u.ID)
		assert.Equal(t, []int{0, 1, 2}, []int{links[0].OrderIndex, links[1].OrderIndex, links[2].OrderIndex})

		reordered, err := store.ReorderLinks(u.ID, []uint{ids[2], ids[0], ids[1]})
		assert.NoError(t, err)
		assert.Equal(t, ids[2], reordered[0].ID)
		assert.Equal(t, 0, reordered[0].OrderIndex)

		_, err = store.ReorderLinks(u.ID, []uint{ids[0], ids[0]})
		assert.ErrorIs(t, err, ErrInvalidOrder)
	})

	t.Run("Link create for unknown owner fails", func(t *testing.T) {
		store := setupGormStore(t)
		err := store.CreateLink(&models.Link{UserID: 99, Title: "orphan", URL: "https://x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete link renumbers", func(t *testing.T) {
		store := setupGormStore(t)
		u := &models.User{Username: "alice"}
		assert.NoError(t, store.CreateUser(u))

		var ids []uint
		for _, title := range []string{"one", "two", "three"} {
			l := &models.Link{UserID: u.ID, Title: title, URL: "https://e/" + title}
			assert.NoError(t, store.CreateLink(l))
			ids = append(ids, l.ID)
		}

		assert.NoError(t, store.DeleteLink(ids[1]))
		links, _ := store.ListLinksByUser(u.ID)
		assert.Len(t, links, 2)
		assert.Equal(t, 0, links[0].OrderIndex)
		assert.Equal(t, 1, links[1].OrderIndex)
	})

	t.Run("Delete link drops its events", func(t *testing.T) {
		store := setupGormStore(t)
		u := &models.User{Username: "alice"}
		assert.NoError(t, store.CreateUser(u))

		one := &models.Link{UserID: u.ID, Title: "one", URL: "https://e/one"}
		two := &models.Link{UserID: u.ID, Title: "two", URL: "https://e/two"}
		assert.NoError(t, store.CreateLink(one))
		assert.NoError(t, store.CreateLink(two))
		assert.NoError(t, store.AppendClickEvent(&models.ClickEvent{LinkID: one.ID}))
		assert.NoError(t, store.AppendClickEvent(&models.ClickEvent{LinkID: two.ID}))

		assert.NoError(t, store.DeleteLink(one.ID))

		events, err := store.ListClickEventsByLink(one.ID, 0)
		assert.NoError(t, err)
		assert.Empty(t, events)

		events, err = store.ListClickEventsByLink(two.ID, 0)
		assert.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("Click counter increments", func(t *testing.T) {
		store := setupGormStore(t)
		u := &models.User{Username: "alice"}
		assert.NoError(t, store.CreateUser(u))
		l := &models.Link{UserID: u.ID, Title: "one", URL: "https://e/one"}
		assert.NoError(t, store.CreateLink(l))

		link, err := store.IncrementClickCount(l.ID)
		assert.NoError(t, err)
		assert.Equal(t, 1, link.ClickCount)

		_, err = store.IncrementClickCount(9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete user cascades to links and events", func(t *testing.T) {
		store := setupGormStore(t)
		u := &models.User{Username: "alice"}
		assert.NoError(t, store.CreateUser(u))
		l := &models.Link{UserID: u.ID, Title: "one", URL: "https://e/one"}
		assert.NoError(t, store.CreateLink(l))
		assert.NoError(t, store.AppendClickEvent(&models.ClickEvent{LinkID: l.ID}))

		assert.NoError(t, store.DeleteUser(u.ID))

		links, _ := store.ListLinksByUser(u.ID)
		assert.Empty(t, links)
		events, _ := store.ListClickEventsByLink(l.ID, 0)
		assert.Empty(t, events)

		assert.ErrorIs(t, store.DeleteUser(u.ID), ErrNotFound)
	})
}
