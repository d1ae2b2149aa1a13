package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"linkbio/internal/config"
	"linkbio/internal/repository"
	"linkbio/internal/services"

	"github.com/gin-gonic/gin"
)

func setupTestHandler() (*Handler, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		BaseURL:     "http://localhost:8080",
		CacheTTLSec: 60,
	}

	geoIP := services.NewGeoIPService(cfg, logger)
	analytics := services.NewAnalyticsService(store, logger)
	admin := services.NewAdminService(store, logger)
	events := services.NewClickEventService(store, logger, geoIP)
	audit := services.NewAuditService(store, logger)
	qr := services.NewQRService()

	// No Redis in handler tests; the cache helpers are nil-safe.
	h := NewHandler(cfg, logger, store, nil, analytics, admin, events, audit, qr)
	return h, store
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil)
}

func setupTestRouterWithLimiter(h *Handler, limiter *services.IPRateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(limiter)
}

func performRequest(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
}
