package services

import (
	"context"
	"testing"
	"time"

	"linkbio/internal/config"
	"linkbio/internal/models"
	"linkbio/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestClickEventService_Enrich(t *testing.T) {
	geoIP := NewGeoIPService(config.Config{}, testLogger())
	service := NewClickEventService(nil, testLogger(), geoIP)

	t.Run("Mobile user agent", func(t *testing.T) {
		event := &models.ClickEvent{
			UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 14_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1",
			IPAddress: "1.2.3.4",
		}
		service.enrich(event)

		assert.Equal(t, "Mobile", event.DeviceType)
		assert.Contains(t, event.Browser, "Safari")
		assert.Equal(t, "1.2.3.0", event.IPAddress) // masked
		assert.Equal(t, "Unknown", event.Country)   // no geoip db in tests
		assert.Equal(t, "Direct", event.Referrer)
	})

	t.Run("Desktop user agent", func(t *testing.T) {
		event := &models.ClickEvent{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			IPAddress: "8.8.8.8",
			Referrer:  "https://google.com",
		}
		service.enrich(event)

		assert.Equal(t, "Desktop", event.DeviceType)
		assert.Contains(t, event.Browser, "Chrome")
		assert.Equal(t, "8.8.8.0", event.IPAddress)
		assert.Equal(t, "https://google.com", event.Referrer)
	})
}

func TestClickEventService_MaskIP(t *testing.T) {
	service := &ClickEventService{}

	assert.Equal(t, "192.168.1.0", service.maskIP("192.168.1.55"))
	assert.Equal(t, "IPv6 (Masked)", service.maskIP("2001:0db8:85a3:0000:0000:8a2e:0370:7334"))
	assert.Equal(t, "localhost", service.maskIP("localhost"))
}

func TestClickEventService_Worker(t *testing.T) {
	store := repository.NewMemoryStore()
	u := &models.User{Username: "alice"}
	assert.NoError(t, store.CreateUser(u))
	l := &models.Link{UserID: u.ID, Title: "one", URL: "https://example.com"}
	assert.NoError(t, store.CreateLink(l))

	geoIP := NewGeoIPService(config.Config{}, testLogger())
	service := NewClickEventService(store, testLogger(), geoIP)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.Start(ctx)

	service.RecordAsync(models.ClickEvent{LinkID: l.ID, IPAddress: "1.2.3.4"})

	assert.Eventually(t, func() bool {
		events, err := store.ListClickEventsByLink(l.ID, 0)
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)

	events, _ := store.ListClickEventsByLink(l.ID, 0)
	assert.Equal(t, "1.2.3.0", events[0].IPAddress)
	assert.False(t, events[0].Timestamp.IsZero())
}
