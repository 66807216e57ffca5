package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendRemote = "remote"
	BackendDemo   = "demo"
)

type Config struct {
	ServerPort string

	BackendMode    string
	CustomerAPIURL string
	BookingAPIURL  string
	HTTPTimeout    time.Duration

	JWTSecret  string
	SessionTTL time.Duration
	RedisURL   string

	DBUrl string

	Timezone        string
	AdminEmails     []string
	RefreshSchedule string

	LogMode string
	LogFile string

	OTLPEndpoint string
	OTLPInsecure bool

	LoginRateLimit      int
	ValidateEmailDomain bool
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		BackendMode:    strings.ToLower(getEnv("BACKEND_MODE", BackendRemote)),
		CustomerAPIURL: getEnv("CUSTOMER_API_URL", "http://localhost:8090/api/v1/customers"),
		BookingAPIURL:  getEnv("BOOKING_API_URL", "http://localhost:8090/api/v1/bookings"),
		HTTPTimeout:    getDuration("HTTP_TIMEOUT", 10*time.Second),

		JWTSecret:  getEnv("JWT_SECRET", "changeme"),
		SessionTTL: getDuration("SESSION_TTL", 12*time.Hour),
		RedisURL:   getEnv("REDIS_URL", ""),

		DBUrl: getEnv("DATABASE_URL", ""),

		Timezone:        getEnv("TIMEZONE", "Africa/Johannesburg"),
		AdminEmails:     getList("ADMIN_EMAILS"),
		RefreshSchedule: getEnv("REFRESH_SCHEDULE", ""),

		LogMode: getEnv("LOG_MODE", "development"),
		LogFile: getEnv("LOG_FILE", ""),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure: getBool("OTEL_EXPORTER_OTLP_INSECURE", false),

		LoginRateLimit:      getInt("LOGIN_RATE_LIMIT", 10),
		ValidateEmailDomain: getBool("VALIDATE_EMAIL_DOMAIN", false),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

// getDuration accepts Go duration strings ("30s") or a bare number of seconds.
func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}

func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) DemoMode() bool {
	return c.BackendMode == BackendDemo
}
