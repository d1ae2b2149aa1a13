package repository

import (
	"errors"

	"linkbio/internal/models"

	"gorm.io/gorm"
)

// GormStore is the durable backend. It mirrors MemoryStore's semantics on top
// of sqlite or postgres; transactions stand in for the memory store's mutex.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormStore) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("LOWER(username) = LOWER(?)", username).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) CreateUser(user *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.User{}).Where("LOWER(username) = LOWER(?)", user.Username).Count(&count)
		if count > 0 {
			return ErrUsernameTaken
		}
		if user.Theme == "" {
			user.Theme = "default"
		}
		return tx.Create(user).Error
	})
}

func (s *GormStore) UpdateUser(id uint, updates models.UserUpdate) (*models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return translate(err)
		}

		fields := map[string]interface{}{}
		if updates.Username != nil {
			var count int64
			tx.Model(&models.User{}).
				Where("LOWER(username) = LOWER(?) AND id <> ?", *updates.Username, id).
				Count(&count)
			if count > 0 {
				return ErrUsernameTaken
			}
			fields["username"] = *updates.Username
		}
		if updates.Name != nil {
			fields["name"] = *updates.Name
		}
		if updates.Bio != nil {
			fields["bio"] = *updates.Bio
		}
		if updates.ProfileImage != nil {
			fields["profile_image"] = *updates.ProfileImage
		}
		if updates.BackgroundImage != nil {
			fields["background_image"] = *updates.BackgroundImage
		}
		if updates.Theme != nil {
			fields["theme"] = *updates.Theme
		}

		if err := tx.Model(&user).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&user, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) DeleteUser(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		var linkIDs []uint
		tx.Model(&models.Link{}).Where("user_id = ?", id).Pluck("id", &linkIDs)
		if len(linkIDs) > 0 {
			if err := tx.Where("link_id IN ?", linkIDs).Delete(&models.ClickEvent{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", id).Delete(&models.Link{}).Error
	})
}

func (s *GormStore) ListLinksByUser(userID uint) ([]models.Link, error) {
	links := []models.Link{}
	err := s.db.Where("user_id = ?", userID).Order("order_index asc").Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (s *GormStore) GetLinkByID(id uint) (*models.Link, error) {
	var link models.Link
	if err := s.db.First(&link, id).Error; err != nil {
		return nil, translate(err)
	}
	return &link, nil
}

func (s *GormStore) CreateLink(link *models.Link) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.First(&owner, link.UserID).Error; err != nil {
			return translate(err)
		}

		var count int64
		tx.Model(&models.Link{}).Where("user_id = ?", link.UserID).Count(&count)

		// Appended at the end of the owner's list regardless of what the
		// caller put in OrderIndex.
		link.OrderIndex = int(count)
		link.ClickCount = 0
		return tx.Create(link).Error
	})
}

func (s *GormStore) UpdateLink(id uint, updates models.LinkUpdate) (*models.Link, error) {
	var link models.Link
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&link, id).Error; err != nil {
			return translate(err)
		}

		fields := map[string]interface{}{}
		if updates.Title != nil {
			fields["title"] = *updates.Title
		}
		if updates.URL != nil {
			fields["url"] = *updates.URL
		}
		if updates.Icon != nil {
			fields["icon"] = *updates.Icon
		}
		if updates.Layout != nil {
			fields["layout"] = *updates.Layout
		}
		if updates.Thumbnail != nil {
			fields["thumbnail"] = *updates.Thumbnail
		}

		if err := tx.Model(&link).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&link, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *GormStore) DeleteLink(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var link models.Link
		if err := tx.First(&link, id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("link_id = ?", id).Delete(&models.ClickEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Link{}, id).Error; err != nil {
			return err
		}
		return renumberTx(tx, link.UserID)
	})
}

// renumberTx compacts a user's order indices to 0..n-1 inside a transaction.
func renumberTx(tx *gorm.DB, userID uint) error {
	var links []models.Link
	if err := tx.Where("user_id = ?", userID).Order("order_index asc").Find(&links).Error; err != nil {
		return err
	}
	for pos, l := range links {
		if l.OrderIndex == pos {
			continue
		}
		if err := tx.Model(&models.Link{}).Where("id = ?", l.ID).
			UpdateColumn("order_index", pos).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *GormStore) ReorderLinks(userID uint, linkIDs []uint) ([]models.Link, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.First(&owner, userID).Error; err != nil {
			return translate(err)
		}

		var ownedIDs []uint
		tx.Model(&models.Link{}).Where("user_id = ?", userID).Pluck("id", &ownedIDs)
		owned := make(map[uint]bool, len(ownedIDs))
		for _, id := range ownedIDs {
			owned[id] = true
		}

		seen := make(map[uint]bool, len(linkIDs))
		for _, id := range linkIDs {
			if !owned[id] || seen[id] {
				return ErrInvalidOrder
			}
			seen[id] = true
		}

		for pos, id := range linkIDs {
			if err := tx.Model(&models.Link{}).Where("id = ?", id).
				Update("order_index", pos).Error; err != nil {
				return err
			}
		}

		// Push omitted links behind the listed ones, then compact.
		if len(linkIDs) < len(ownedIDs) {
			var rest []models.Link
			if err := tx.Where("user_id = ?", userID).Order("order_index asc").
				Find(&rest).Error; err != nil {
				return err
			}
			next := len(linkIDs)
			for _, l := range rest {
				if seen[l.ID] {
					continue
				}
				if err := tx.Model(&models.Link{}).Where("id = ?", l.ID).
					Update("order_index", next).Error; err != nil {
					return err
				}
				next++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ListLinksByUser(userID)
}

func (s *GormStore) IncrementClickCount(linkID uint) (*models.Link, error) {
	var link models.Link
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Link{}).Where("id = ?", linkID).
			Update("click_count", gorm.Expr("click_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.First(&link, linkID).Error
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *GormStore) AppendClickEvent(event *models.ClickEvent) error {
	return s.db.Create(event).Error
}

func (s *GormStore) ListClickEventsByLink(linkID uint, limit int) ([]models.ClickEvent, error) {
	events := []models.ClickEvent{}
	q := s.db.Where("link_id = ?", linkID).Order("timestamp desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (s *GormStore) AppendAuditLog(entry *models.AuditLog) error {
	return s.db.Create(entry).Error
}
