package config

import (
	"os"
	"strconv"
	"time"

	"coin_panel/internal/logger"

	"github.com/joho/godotenv"
)

// AFKConfig controls the coin-earning websocket.
type AFKConfig struct {
	Enabled      bool
	Path         string        // route the client connects to, without leading slash
	Every        time.Duration // credit interval
	CoinsPerTick int64
	MaxCoins     int64 // balance ceiling; a tick that would pass it closes the connection
}

// RenewalConfig controls the renewal sweep and the manual renew endpoint.
type RenewalConfig struct {
	Enabled   bool
	DelayDays int   // length of one renewal period
	Cost      int64 // coins charged per renewal
	Logs      bool  // verbose sweep logging
}

// PanelConfig points at the Pterodactyl application API.
type PanelConfig struct {
	Domain string // e.g. https://panel.example.com
	Key    string // application API key
}

// StoreConfig selects and configures the key-value backend.
type StoreConfig struct {
	Backend       string // redis, postgres, mongo or memory
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string
	MongoURI      string
	MongoDB       string
}

type Config struct {
	AppPort       string
	LogLevel      string
	LogJSON       bool
	JWTSecret     string
	AllowedOrigin string

	AFK      AFKConfig
	Renewals RenewalConfig
	Panel    PanelConfig
	Store    StoreConfig

	APIRateLimit  int
	APIRateWindow time.Duration
}

// Load reads configuration from the environment once at startup.
// A .env file is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	cfg := &Config{
		AppPort:       envOr("APP_PORT", "8080"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		LogJSON:       os.Getenv("LOG_JSON") == "true",
		JWTSecret:     jwtSecret,
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),

		AFK: AFKConfig{
			Enabled:      envOr("AFK_ENABLED", "true") == "true",
			Path:         envOr("AFK_PATH", "ws"),
			Every:        time.Duration(envInt("AFK_EVERY_SECONDS", 60)) * time.Second,
			CoinsPerTick: envInt64("AFK_COINS", 1),
			MaxCoins:     envInt64("AFK_MAX_COINS", 5000),
		},

		Renewals: RenewalConfig{
			Enabled:   envOr("RENEWALS_ENABLED", "true") == "true",
			DelayDays: envInt("RENEWAL_DELAY_DAYS", 7),
			Cost:      envInt64("RENEWAL_COST", 100),
			Logs:      os.Getenv("RENEWAL_LOGS") == "true",
		},

		Panel: PanelConfig{
			Domain: os.Getenv("PTERO_DOMAIN"),
			Key:    os.Getenv("PTERO_KEY"),
		},

		Store: StoreConfig{
			Backend:       envOr("STORE_BACKEND", "redis"),
			RedisAddr:     envOr("REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       envInt("REDIS_DB", 0),
			DatabaseURL:   os.Getenv("DATABASE_URL"),
			MongoURI:      os.Getenv("MONGO_URI"),
			MongoDB:       envOr("MONGO_DB", "coin_panel"),
		},

		APIRateLimit:  envInt("API_RATE_LIMIT", 10),
		APIRateWindow: time.Duration(envInt("API_RATE_WINDOW_SECONDS", 60)) * time.Second,
	}

	if cfg.Renewals.Enabled && (cfg.Panel.Domain == "" || cfg.Panel.Key == "") {
		logger.Fatal("PTERO_DOMAIN and PTERO_KEY must be set when renewals are enabled")
	}
	if cfg.AFK.Every <= 0 {
		logger.Fatal("AFK_EVERY_SECONDS must be positive")
	}
	if cfg.Renewals.DelayDays <= 0 {
		logger.Fatal("RENEWAL_DELAY_DAYS must be positive")
	}

	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
