package handlers

import (
	"log/slog"

	"linkbio/internal/config"
	"linkbio/internal/repository"
	"linkbio/internal/services"

	"github.com/redis/go-redis/v9"
)

type Handler struct {
	cfg       config.Config
	logger    *slog.Logger
	store     repository.Store
	rdb       *redis.Client
	analytics *services.AnalyticsService
	admin     *services.AdminService
	events    *services.ClickEventService
	audit     *services.AuditService
	qr        *services.QRService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	store repository.Store,
	rdb *redis.Client,
	analytics *services.AnalyticsService,
	admin *services.AdminService,
	events *services.ClickEventService,
	audit *services.AuditService,
	qr *services.QRService,
) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		rdb:       rdb,
		analytics: analytics,
		admin:     admin,
		events:    events,
		audit:     audit,
		qr:        qr,
	}
}
