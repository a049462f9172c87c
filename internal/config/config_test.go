package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOTEL_API_URL", "")
	t.Setenv("WHATSAPP_TOKEN", "")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "")
	t.Setenv("GOOGLE_SHEET_REPORT_ID", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("CACHE_BACKEND", "")
	t.Setenv("TIMELINE_DAY_WIDTH", "")
	t.Setenv("HOTEL_API_TIMEOUT", "")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://admin.example.com ,")

	cfg, err := Load("testdata/missing.env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HotelAPI.BaseURL != "http://localhost:5000/api" {
		t.Errorf("base url = %q", cfg.HotelAPI.BaseURL)
	}
	if cfg.Timeline.DayWidth != 40 {
		t.Errorf("day width = %d", cfg.Timeline.DayWidth)
	}
	if cfg.HotelAPI.Timeout != 15*time.Second {
		t.Errorf("timeout = %s", cfg.HotelAPI.Timeout)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://admin.example.com" {
		t.Errorf("cors origins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.WhatsApp.Enabled() || cfg.Sheets.Enabled() || cfg.MongoDB.Enabled() || cfg.Redis.Enabled() {
		t.Error("optional integrations should be off by default")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			HotelAPI:  HotelAPIConfig{BaseURL: "http://api.local", Timeout: time.Second},
			Timeline:  TimelineConfig{DayWidth: 40},
			Reporting: ReportingConfig{CronSchedule: "0 21 * * *", Timezone: "UTC"},
			Redis:     RedisConfig{TTL: time.Second},
		}
	}

	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad url", func(c *Config) { c.HotelAPI.BaseURL = "api.local" }, "HOTEL_API_URL"},
		{"zero width", func(c *Config) { c.Timeline.DayWidth = 0 }, "TIMELINE_DAY_WIDTH"},
		{"bad tz", func(c *Config) { c.Reporting.Timezone = "Mars/Olympus" }, "TIMEZONE"},
		{"half whatsapp", func(c *Config) { c.WhatsApp.AccessToken = "tok" }, "WHATSAPP_PHONE_NUMBER_ID"},
		{"half sheets", func(c *Config) { c.Sheets.SpreadsheetID = "sheet" }, "GOOGLE_SHEETS"},
		{"redis without ttl", func(c *Config) { c.Redis = RedisConfig{Addr: "localhost:6379"} }, "CACHE_TTL"},
		{"memory cache", func(c *Config) { c.Redis = RedisConfig{Backend: "memory", TTL: time.Minute} }, ""},
		{"redis backend without addr", func(c *Config) { c.Redis.Backend = "redis" }, "REDIS_ADDR"},
		{"unknown backend", func(c *Config) { c.Redis.Backend = "memcached" }, "CACHE_BACKEND"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want mention of %s", err, tc.wantErr)
			}
		})
	}
}
