package services

import (
	"log/slog"
	"net"
	"os"
	"sync"

	"linkbio/internal/config"

	"github.com/oschwald/geoip2-golang"
)

// GeoIPService resolves click origins to a country name. It is best-effort:
// without a database file on disk every lookup answers "Unknown".
type GeoIPService struct {
	cfg    config.Config
	logger *slog.Logger
	mu     sync.RWMutex
	reader *geoip2.Reader
}

func NewGeoIPService(cfg config.Config, logger *slog.Logger) *GeoIPService {
	return &GeoIPService{cfg: cfg, logger: logger}
}

func (s *GeoIPService) Init() {
	path := s.cfg.GeoIPDBPath
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		s.logger.Warn("GeoIP: database not found, lookups disabled", "path", path)
		return
	}

	reader, err := geoip2.Open(path)
	if err != nil {
		s.logger.Error("GeoIP: failed to open database", "path", path, "error", err)
		return
	}

	s.mu.Lock()
	if s.reader != nil {
		s.reader.Close()
	}
	s.reader = reader
	s.mu.Unlock()

	s.logger.Info("GeoIP: loaded database", "epoch", reader.Metadata().BuildEpoch)
}

func (s *GeoIPService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reader != nil {
		s.reader.Close()
		s.reader = nil
	}
}

func (s *GeoIPService) Country(ipStr string) string {
	if ipStr == "127.0.0.1" || ipStr == "::1" {
		return "Localhost"
	}

	s.mu.RLock()
	reader := s.reader
	s.mu.RUnlock()

	if reader == nil {
		return "Unknown"
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return "Unknown"
	}

	record, err := reader.Country(ip)
	if err != nil {
		s.logger.Error("GeoIP: lookup error", "ip", ipStr, "error", err)
		return "Unknown"
	}

	if name, ok := record.Country.Names["en"]; ok && name != "" {
		return name
	}
	if record.Country.IsoCode != "" {
		return record.Country.IsoCode
	}
	return "Unknown"
}
