package services

import (
	"context"
	"log/slog"

	"linkbio/internal/models"
	"linkbio/internal/repository"

	"github.com/mssola/user_agent"
)

// ClickEventService appends click events to the store off the request path.
// Losing an event under pressure is acceptable; losing the counter update is
// not, which is why the counter is incremented synchronously by the handler.
type ClickEventService struct {
	store  repository.Store
	logger *slog.Logger
	events chan models.ClickEvent
	geoIP  *GeoIPService
}

func NewClickEventService(store repository.Store, logger *slog.Logger, geoIP *GeoIPService) *ClickEventService {
	return &ClickEventService{
		store:  store,
		logger: logger,
		events: make(chan models.ClickEvent, 1000),
		geoIP:  geoIP,
	}
}

func (s *ClickEventService) Start(ctx context.Context) {
	s.logger.Info("Click event worker starting")
	for {
		select {
		case event := <-s.events:
			s.enrich(&event)

			if err := s.store.AppendClickEvent(&event); err != nil {
				s.logger.Error("Failed to record click event", "error", err)
			}
		case <-ctx.Done():
			s.logger.Info("Click event worker stopping")
			return
		}
	}
}

func (s *ClickEventService) RecordAsync(event models.ClickEvent) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("Click event channel full, dropping event")
	}
}

func (s *ClickEventService) enrich(event *models.ClickEvent) {
	ua := user_agent.New(event.UserAgent)
	browserName, browserVer := ua.Browser()
	event.Browser = browserName + " " + browserVer
	event.OS = ua.OS()

	if ua.Mobile() {
		event.DeviceType = "Mobile"
	} else if ua.Bot() {
		event.DeviceType = "Bot"
	} else {
		event.DeviceType = "Desktop"
	}

	if event.Referrer == "" {
		event.Referrer = "Direct"
	}

	event.Country = s.geoIP.Country(event.IPAddress)

	// The raw address never reaches storage.
	event.IPAddress = s.maskIP(event.IPAddress)
}

func (s *ClickEventService) maskIP(ip string) string {
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == '.' {
			return ip[:i] + ".0"
		}
		if ip[i] == ':' {
			return "IPv6 (Masked)"
		}
	}
	return ip
}
