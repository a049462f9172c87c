package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	HotelAPI  HotelAPIConfig
	Log       LogConfig
	Timeline  TimelineConfig
	Reporting ReportingConfig
	WhatsApp  WhatsAppConfig
	Sheets    SheetsConfig
	AI        AIConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

// HotelAPIConfig points at the remote hotel REST API.
type HotelAPIConfig struct {
	BaseURL string
	// Token is used when a call carries no caller token, e.g. scheduled jobs.
	Token   string
	Timeout time.Duration
}

// LogConfig selects the zap level and encoder.
type LogConfig struct {
	Level  string
	Format string
}

// TimelineConfig controls the reservation timeline layout.
type TimelineConfig struct {
	DayWidth int
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	VerifyToken   string
	BaseURL       string
	APIVersion    string
	ManagerID     string
}

// Enabled reports whether outbound WhatsApp messages can be sent.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != "" && c.PhoneNumberID != ""
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ReportRange     string
}

// Enabled reports whether the daily report should be appended to a sheet.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// AIConfig holds settings for LLM providers.
type AIConfig struct {
	AnthropicKey string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Enabled reports whether report snapshots are persisted.
func (c MongoDBConfig) Enabled() bool { return c.URI != "" }

// Reference-list cache backends.
const (
	CacheRedis  = "redis"
	CacheMemory = "memory"
	CacheNone   = "none"
)

// RedisConfig holds the reference-list cache settings.
type RedisConfig struct {
	Backend  string
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Kind resolves the cache backend. Without CACHE_BACKEND, Redis is used when
// REDIS_ADDR is set and caching is off otherwise.
func (c RedisConfig) Kind() string {
	switch b := strings.ToLower(strings.TrimSpace(c.Backend)); b {
	case CacheRedis, CacheMemory, CacheNone:
		return b
	}
	if c.Addr != "" {
		return CacheRedis
	}
	return CacheNone
}

// Enabled reports whether list caching is on.
func (c RedisConfig) Enabled() bool { return c.Kind() != CacheNone }

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when everything comes from the environment.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getenvWithDefault("APP_PORT", "8080"),
			CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
		},
		HotelAPI: HotelAPIConfig{
			BaseURL: getenvWithDefault("HOTEL_API_URL", "http://localhost:5000/api"),
			Token:   os.Getenv("HOTEL_API_TOKEN"),
			Timeout: getDuration("HOTEL_API_TIMEOUT", 15*time.Second),
		},
		Log: LogConfig{
			Level:  getenvWithDefault("LOG_LEVEL", "info"),
			Format: getenvWithDefault("LOG_FORMAT", "json"),
		},
		Timeline: TimelineConfig{
			DayWidth: getInt("TIMELINE_DAY_WIDTH", 40),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 21 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Africa/Conakry"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			VerifyToken:   os.Getenv("META_VERIFY_TOKEN"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			ManagerID:     os.Getenv("WHATSAPP_MANAGER_ID"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_REPORT_ID"),
			ReportRange:     getenvWithDefault("GOOGLE_SHEET_REPORT_RANGE", "Rapports!A:K"),
		},
		AI: AIConfig{
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "hotel"),
		},
		Redis: RedisConfig{
			Backend:  os.Getenv("CACHE_BACKEND"),
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
			TTL:      getDuration("CACHE_TTL", 30*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and that
// optional integrations are either fully set or left off.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.HotelAPI.BaseURL == "" {
		return errors.New("HOTEL_API_URL must not be empty")
	}
	if !strings.HasPrefix(c.HotelAPI.BaseURL, "http://") && !strings.HasPrefix(c.HotelAPI.BaseURL, "https://") {
		return fmt.Errorf("HOTEL_API_URL must be an http(s) URL, got %q", c.HotelAPI.BaseURL)
	}
	if c.HotelAPI.Timeout <= 0 {
		return errors.New("HOTEL_API_TIMEOUT must be positive")
	}

	if c.Timeline.DayWidth <= 0 {
		return errors.New("TIMELINE_DAY_WIDTH must be positive")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}
	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is invalid: %w", c.Reporting.Timezone, err)
	}

	switch {
	case c.WhatsApp.AccessToken != "" && c.WhatsApp.PhoneNumberID == "":
		return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided with WHATSAPP_TOKEN")
	case c.WhatsApp.PhoneNumberID != "" && c.WhatsApp.AccessToken == "":
		return errors.New("WHATSAPP_TOKEN must be provided with WHATSAPP_PHONE_NUMBER_ID")
	}
	if c.WhatsApp.Enabled() {
		if c.WhatsApp.BaseURL == "" {
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		}
		if c.WhatsApp.APIVersion == "" {
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_REPORT_ID must be provided together")
	}

	if c.MongoDB.Enabled() && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	switch b := strings.ToLower(strings.TrimSpace(c.Redis.Backend)); b {
	case "", CacheRedis, CacheMemory, CacheNone:
	default:
		return fmt.Errorf("CACHE_BACKEND %q must be redis, memory or none", c.Redis.Backend)
	}
	if c.Redis.Kind() == CacheRedis && c.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required when CACHE_BACKEND=redis")
	}

	if c.Redis.Enabled() && c.Redis.TTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}

	return nil
}

// Location returns the reporting timezone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Reporting.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
