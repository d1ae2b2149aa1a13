package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"linkbio/internal/models"
)

// MemoryStore keeps everything in process memory behind a single mutex. It is
// the default backend: non-durable, but consistent under concurrent handlers.
type MemoryStore struct {
	mu     sync.RWMutex
	users  []models.User
	links  []models.Link
	events []models.ClickEvent
	audit  []models.AuditLog
	now    func() time.Time

	// Events and audit entries are deleted by cascades, so their ids come
	// from counters that never move backwards rather than from slice length.
	eventSeq uint
	auditSeq uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// nextUserID and nextLinkID follow the max-existing-id-plus-one scheme, so a
// fresh id is always strictly greater than every id handed out before it.
func (s *MemoryStore) nextUserID() uint {
	var max uint
	for _, u := range s.users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}

func (s *MemoryStore) nextLinkID() uint {
	var max uint
	for _, l := range s.links {
		if l.ID > max {
			max = l.ID
		}
	}
	return max + 1
}

func (s *MemoryStore) ListUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryStore) GetUserByID(id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, user.Username) {
			return ErrUsernameTaken
		}
	}

	now := s.now()
	user.ID = s.nextUserID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Theme == "" {
		user.Theme = "default"
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *MemoryStore) UpdateUser(id uint, updates models.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, u := range s.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotFound
	}

	if updates.Username != nil {
		for _, u := range s.users {
			if u.ID != id && strings.EqualFold(u.Username, *updates.Username) {
				return nil, ErrUsernameTaken
			}
		}
		s.users[idx].Username = *updates.Username
	}
	if updates.Name != nil {
		s.users[idx].Name = *updates.Name
	}
	if updates.Bio != nil {
		s.users[idx].Bio = *updates.Bio
	}
	if updates.ProfileImage != nil {
		s.users[idx].ProfileImage = *updates.ProfileImage
	}
	if updates.BackgroundImage != nil {
		s.users[idx].BackgroundImage = *updates.BackgroundImage
	}
	if updates.Theme != nil {
		s.users[idx].Theme = *updates.Theme
	}
	s.users[idx].UpdatedAt = s.now()

	user := s.users[idx]
	return &user, nil
}

func (s *MemoryStore) DeleteUser(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, u := range s.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}
	s.users = append(s.users[:idx], s.users[idx+1:]...)

	// Cascade: drop the user's links and their click events.
	removed := make(map[uint]bool)
	kept := s.links[:0]
	for _, l := range s.links {
		if l.UserID == id {
			removed[l.ID] = true
			continue
		}
		kept = append(kept, l)
	}
	s.links = kept

	keptEvents := s.events[:0]
	for _, e := range s.events {
		if !removed[e.LinkID] {
			keptEvents = append(keptEvents, e)
		}
	}
	s.events = keptEvents
	return nil
}

func (s *MemoryStore) ListLinksByUser(userID uint) ([]models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.linksByUserLocked(userID), nil
}

// linksByUserLocked returns copies of the user's links sorted by order index.
// Callers must hold at least the read lock.
func (s *MemoryStore) linksByUserLocked(userID uint) []models.Link {
	out := []models.Link{}
	for _, l := range s.links {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out
}

func (s *MemoryStore) GetLinkByID(id uint) (*models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.links {
		if l.ID == id {
			link := l
			return &link, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateLink(link *models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ownerExists := false
	for _, u := range s.users {
		if u.ID == link.UserID {
			ownerExists = true
			break
		}
	}
	if !ownerExists {
		return ErrNotFound
	}

	// Always append at the end of the owner's list; the caller-supplied index
	// is ignored so the range stays dense.
	position := 0
	for _, l := range s.links {
		if l.UserID == link.UserID {
			position++
		}
	}

	now := s.now()
	link.ID = s.nextLinkID()
	link.OrderIndex = position
	link.ClickCount = 0
	link.CreatedAt = now
	link.UpdatedAt = now
	s.links = append(s.links, *link)
	return nil
}

func (s *MemoryStore) UpdateLink(id uint, updates models.LinkUpdate) (*models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, l := range s.links {
		if l.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotFound
	}

	if updates.Title != nil {
		s.links[idx].Title = *updates.Title
	}
	if updates.URL != nil {
		s.links[idx].URL = *updates.URL
	}
	if updates.Icon != nil {
		s.links[idx].Icon = *updates.Icon
	}
	if updates.Layout != nil {
		s.links[idx].Layout = *updates.Layout
	}
	if updates.Thumbnail != nil {
		s.links[idx].Thumbnail = *updates.Thumbnail
	}
	s.links[idx].UpdatedAt = s.now()

	link := s.links[idx]
	return &link, nil
}

func (s *MemoryStore) DeleteLink(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, l := range s.links {
		if l.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}
	userID := s.links[idx].UserID
	s.links = append(s.links[:idx], s.links[idx+1:]...)

	// Cascade: the link's click events go with it.
	kept := s.events[:0]
	for _, e := range s.events {
		if e.LinkID != id {
			kept = append(kept, e)
		}
	}
	s.events = kept

	s.renumberLocked(userID)
	return nil
}

// renumberLocked compacts a user's order indices back to 0..n-1, preserving
// the current relative order. Callers must hold the write lock.
func (s *MemoryStore) renumberLocked(userID uint) {
	ordered := s.linksByUserLocked(userID)
	for pos, l := range ordered {
		if l.OrderIndex == pos {
			continue
		}
		for i := range s.links {
			if s.links[i].ID == l.ID {
				s.links[i].OrderIndex = pos
				break
			}
		}
	}
}

func (s *MemoryStore) ReorderLinks(userID uint, linkIDs []uint) ([]models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userExists := false
	for _, u := range s.users {
		if u.ID == userID {
			userExists = true
			break
		}
	}
	if !userExists {
		return nil, ErrNotFound
	}

	owned := make(map[uint]bool)
	for _, l := range s.links {
		if l.UserID == userID {
			owned[l.ID] = true
		}
	}

	// Every id must name a distinct link of this user; nothing is silently
	// skipped.
	seen := make(map[uint]bool)
	for _, id := range linkIDs {
		if !owned[id] || seen[id] {
			return nil, ErrInvalidOrder
		}
		seen[id] = true
	}

	now := s.now()
	position := make(map[uint]int, len(linkIDs))
	for pos, id := range linkIDs {
		position[id] = pos
	}

	// Links omitted from the request keep their relative order after the
	// listed ones, so the range stays dense.
	next := len(linkIDs)
	for _, l := range s.linksByUserLocked(userID) {
		if _, ok := position[l.ID]; !ok {
			position[l.ID] = next
			next++
		}
	}

	for i := range s.links {
		if s.links[i].UserID != userID {
			continue
		}
		if pos := position[s.links[i].ID]; s.links[i].OrderIndex != pos {
			s.links[i].OrderIndex = pos
			s.links[i].UpdatedAt = now
		}
	}

	return s.linksByUserLocked(userID), nil
}

func (s *MemoryStore) IncrementClickCount(linkID uint) (*models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.links {
		if s.links[i].ID == linkID {
			s.links[i].ClickCount++
			s.links[i].UpdatedAt = s.now()
			link := s.links[i]
			return &link, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) AppendClickEvent(event *models.ClickEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.eventSeq++
	event.ID = s.eventSeq
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, *event)
	return nil
}

func (s *MemoryStore) ListClickEventsByLink(linkID uint, limit int) ([]models.ClickEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.ClickEvent{}
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].LinkID != linkID {
			continue
		}
		out = append(out, s.events[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) AppendAuditLog(entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.auditSeq++
	entry.ID = s.auditSeq
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	s.audit = append(s.audit, *entry)
	return nil
}

// AuditLogs returns a copy of the audit trail, oldest first.
func (s *MemoryStore) AuditLogs() []models.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.AuditLog, len(s.audit))
	copy(out, s.audit)
	return out
}
