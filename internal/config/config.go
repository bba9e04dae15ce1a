package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds service configuration.
type Config struct {
	DatabaseURL      string
	ServerAddr       string
	MigrationsDir    string
	InvitationTTL    time.Duration
	NegotiationTTL   time.Duration
	CommitTimeout    time.Duration
	GatewayTokenHash string
	TradeXPAward     int64
}

// Load reads configuration from the environment, with a best-effort .env file
// for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		user := getenv("POSTGRES_USER", "guild_hub")
		pass := getenv("POSTGRES_PASSWORD", "guild_hub_pass")
		db := getenv("POSTGRES_DB", "guild_hub")
		host := getenv("POSTGRES_HOST", "localhost")
		port := getenv("POSTGRES_PORT", "5432")
		sslmode := getenv("DATABASE_SSLMODE", "disable")
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, db, sslmode)
	}

	return &Config{
		DatabaseURL:      dsn,
		ServerAddr:       getenv("SERVER_ADDR", "0.0.0.0:8080"),
		MigrationsDir:    getenv("MIGRATIONS_DIR", "internal/migrations"),
		InvitationTTL:    parseDuration(getenv("TRADE_INVITATION_TTL", "15s"), 15*time.Second),
		NegotiationTTL:   parseDuration(getenv("TRADE_NEGOTIATION_TTL", "120s"), 120*time.Second),
		CommitTimeout:    parseDuration(getenv("TRADE_COMMIT_TIMEOUT", "5s"), 5*time.Second),
		GatewayTokenHash: os.Getenv("GATEWAY_TOKEN_HASH"),
		TradeXPAward:     parseInt64(getenv("TRADE_XP_AWARD", "25"), 25),
	}, nil
}

func getenv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func parseDuration(val string, def time.Duration) time.Duration {
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}
	return d
}

func parseInt64(val string, def int64) int64 {
	if val == "" {
		return def
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return def
	}
	return n
}
