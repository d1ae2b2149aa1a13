package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"linkbio/internal/models"
	"linkbio/internal/repository"
)

// AuditService writes an append-only trail of mutating operations through a
// buffered channel, so a slow store never stalls a request.
type AuditService struct {
	store   repository.Store
	logger  *slog.Logger
	entries chan models.AuditLog
}

func NewAuditService(store repository.Store, logger *slog.Logger) *AuditService {
	return &AuditService{
		store:   store,
		logger:  logger,
		entries: make(chan models.AuditLog, 100),
	}
}

func (s *AuditService) Start(ctx context.Context) {
	for {
		select {
		case entry := <-s.entries:
			if err := s.store.AppendAuditLog(&entry); err != nil {
				s.logger.Error("Failed to write audit log", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *AuditService) LogAction(userID *uint, action, entityID string, details interface{}, ip string) {
	detailBytes, _ := json.Marshal(details)

	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		EntityID:  entityID,
		Details:   string(detailBytes),
		IPAddress: ip,
		Timestamp: time.Now(),
	}

	select {
	case s.entries <- entry:
	default:
		s.logger.Warn("Audit channel full, dropping entry", "action", action)
	}
}
