package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv         string `mapstructure:"APP_ENV"`
	Port           string `mapstructure:"PORT"`
	BaseURL        string `mapstructure:"BASE_URL"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"` // empty: in-memory store
	RedisURL       string `mapstructure:"REDIS_URL"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	GeoIPDBPath    string `mapstructure:"GEOIP_DB_PATH"`
	SeedDemoData   bool   `mapstructure:"SEED_DEMO_DATA"`
	RateLimitRPS   int    `mapstructure:"RATE_LIMIT_RPS"` // 0 disables the limiter
	RateLimitBurst int    `mapstructure:"RATE_LIMIT_BURST"`
	CacheTTLSec    int    `mapstructure:"PROFILE_CACHE_TTL_SECONDS"`
}

func LoadConfig() (config Config, err error) {
	viper.SetDefault("APP_ENV", "local")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("GEOIP_DB_PATH", "./geoip/GeoLite2-Country.mmdb")
	viper.SetDefault("SEED_DEMO_DATA", true)
	viper.SetDefault("RATE_LIMIT_RPS", 0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("PROFILE_CACHE_TTL_SECONDS", 60)

	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	return
}
