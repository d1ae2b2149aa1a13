package services

import (
	"log/slog"

	"linkbio/internal/models"
	"linkbio/internal/repository"
)

type AdminUserStats struct {
	models.User
	LinkCount   int `json:"linkCount"`
	TotalClicks int `json:"totalClicks"`
}

type AdminSummary struct {
	TotalUsers  int              `json:"totalUsers"`
	TotalLinks  int              `json:"totalLinks"`
	TotalClicks int              `json:"totalClicks"`
	Users       []AdminUserStats `json:"users"`
}

// AdminService rolls up counts across every user for the admin dashboard.
type AdminService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewAdminService(store repository.Store, logger *slog.Logger) *AdminService {
	return &AdminService{store: store, logger: logger}
}

// ComputeAdminStats rescans the link collection once per user. Quadratic, but
// the collections are tiny and the endpoint is a dashboard, not a hot path.
func (s *AdminService) ComputeAdminStats() (*AdminSummary, error) {
	users, err := s.store.ListUsers()
	if err != nil {
		return nil, err
	}

	summary := &AdminSummary{
		TotalUsers: len(users),
		Users:      make([]AdminUserStats, 0, len(users)),
	}

	for _, u := range users {
		links, err := s.store.ListLinksByUser(u.ID)
		if err != nil {
			return nil, err
		}

		stats := AdminUserStats{User: u, LinkCount: len(links)}
		for _, l := range links {
			stats.TotalClicks += l.ClickCount
		}
		summary.TotalLinks += stats.LinkCount
		summary.TotalClicks += stats.TotalClicks
		summary.Users = append(summary.Users, stats)
	}

	return summary, nil
}
