package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Port string }
type DBCfg struct{ DSN string }
type RedisCfg struct{ Addr string }

type CacheCfg struct {
	StatsTTL time.Duration // server-side dashboard response cache
}

type Cfg struct {
	App   AppCfg
	DB    DBCfg
	Redis RedisCfg
	Cache CacheCfg
}

// MonitorCfg configures the terminal dashboard client.
type MonitorCfg struct {
	BaseURL      string
	PollInterval time.Duration
	RetryDelay   time.Duration
	StatsTTL     time.Duration // client fetch-cache freshness
	ListTTL      time.Duration
	CacheEntries int
}

// Load reads server configuration from the environment (and .env if
// present) and fails fast on anything required.
func Load() Cfg {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("STATS_CACHE_TTL", "30s")

	cfg := Cfg{
		App: AppCfg{
			Env:  viper.GetString("APP_ENV"),
			Port: viper.GetString("APP_PORT"),
		},
		DB:    DBCfg{DSN: viper.GetString("DB_DSN")},
		Redis: RedisCfg{Addr: viper.GetString("REDIS_ADDR")},
		Cache: CacheCfg{StatsTTL: viper.GetDuration("STATS_CACHE_TTL")},
	}

	if cfg.DB.DSN == "" {
		log.Fatal().Msg("DB_DSN is required")
	}
	return cfg
}

// LoadMonitor reads monitor configuration from the environment.
func LoadMonitor() MonitorCfg {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("POLL_INTERVAL", "30s")
	viper.SetDefault("POLL_RETRY_DELAY", "10s")
	viper.SetDefault("MONITOR_STATS_TTL", "25s")
	viper.SetDefault("MONITOR_LIST_TTL", "60s")
	viper.SetDefault("MONITOR_CACHE_ENTRIES", 256)

	return MonitorCfg{
		BaseURL:      viper.GetString("API_BASE_URL"),
		PollInterval: viper.GetDuration("POLL_INTERVAL"),
		RetryDelay:   viper.GetDuration("POLL_RETRY_DELAY"),
		StatsTTL:     viper.GetDuration("MONITOR_STATS_TTL"),
		ListTTL:      viper.GetDuration("MONITOR_LIST_TTL"),
		CacheEntries: viper.GetInt("MONITOR_CACHE_ENTRIES"),
	}
}
