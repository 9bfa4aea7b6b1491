// Package config defines the top-level configuration for the bot and
// provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by GRIDIRON_* environment variables.
type Config struct {
	OddsAPI   OddsAPIConfig   `toml:"oddsapi"`
	Scrape    ScrapeConfig    `toml:"scrape"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Postgres  PostgresConfig  `toml:"postgres"`
	Redis     RedisConfig     `toml:"redis"`
	S3        S3Config        `toml:"s3"`
	Server    ServerConfig    `toml:"server"`
	Notify    NotifyConfig    `toml:"notify"`
	Model     ModelConfig     `toml:"model"`
	Selection SelectionConfig `toml:"selection"`
	Board     BoardConfig     `toml:"board"`
	Runner    RunnerConfig    `toml:"runner"`
	Mode      string          `toml:"mode"`
	LogLevel  string          `toml:"log_level"`
}

// OddsAPIConfig holds The Odds API client parameters.
type OddsAPIConfig struct {
	APIKey  string   `toml:"api_key"`
	BaseURL string   `toml:"base_url"`
	Sport   string   `toml:"sport"`
	Regions string   `toml:"regions"`
	Markets string   `toml:"markets"`
	Timeout duration `toml:"timeout"`
}

// ScrapeConfig holds the sportsbook page scraper parameters.
type ScrapeConfig struct {
	Enabled     bool     `toml:"enabled"`
	BaseURL     string   `toml:"base_url"`
	HubPath     string   `toml:"hub_path"`
	MaxEvents   int      `toml:"max_events"`
	NavTimeout  duration `toml:"nav_timeout"`
	WaitTimeout duration `toml:"wait_timeout"`
	Headless    bool     `toml:"headless"`
	UserAgent   string   `toml:"user_agent"`
}

// ScheduleConfig holds the kickoff gate parameters.
type ScheduleConfig struct {
	BaseURL        string   `toml:"base_url"`
	Timezone       string   `toml:"timezone"`
	Timeout        duration `toml:"timeout"`
	PreviewLead    duration `toml:"preview_lead"`
	FinalLead      duration `toml:"final_lead"`
	Tolerance      duration `toml:"tolerance"`
	TickerInterval duration `toml:"ticker_interval"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// S3Config holds S3-compatible object storage parameters.
type S3Config struct {
	Enabled        bool   `toml:"enabled"`
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Enabled     bool     `toml:"enabled"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken   string   `toml:"telegram_token"`
	TelegramChatID  int64    `toml:"telegram_chat_id"`
	DiscordWebhook  string   `toml:"discord_webhook_url"`
	DiscordUsername string   `toml:"discord_username"`
	Events          []string `toml:"events"`
}

// ModelConfig holds every tunable constant of the fair-value estimators.
type ModelConfig struct {
	MarginSigma     float64 `toml:"margin_sigma"`
	PointsPerScore  float64 `toml:"points_per_score"`
	PassTDShare     float64 `toml:"pass_td_share"`
	PlaysPerGame    float64 `toml:"plays_per_game"`
	BasePassRate    float64 `toml:"base_pass_rate"`
	BlowoutPassBump float64 `toml:"blowout_pass_bump"`
	BlowoutSpread   float64 `toml:"blowout_spread"`
	DropbackRate    float64 `toml:"dropback_rate"`
	TargetShare     float64 `toml:"target_share"`
	CatchRate       float64 `toml:"catch_rate"`
	ReceptionSigma  float64 `toml:"reception_sigma"`
}

// SelectionConfig holds single-best selection thresholds.
type SelectionConfig struct {
	MinEVFull        float64 `toml:"min_ev_full"`
	MinEVHalf        float64 `toml:"min_ev_half"`
	MinProbFull      float64 `toml:"min_prob_full"`
	MinProbHalf      float64 `toml:"min_prob_half"`
	MinEdgePoints    float64 `toml:"min_edge_points"`
	MinDecimalPrice  float64 `toml:"min_decimal_price"`
	BackupMaxProbGap float64 `toml:"backup_max_prob_gap"`
}

// BoardConfig holds board-mode selection thresholds.
type BoardConfig struct {
	FavoriteSlots   int     `toml:"favorite_slots"`
	FavoriteMinProb float64 `toml:"favorite_min_prob"`
	FavoriteMinEdge float64 `toml:"favorite_min_edge"`
	CoinFlipMinProb float64 `toml:"coin_flip_min_prob"`
	CoinFlipMaxProb float64 `toml:"coin_flip_max_prob"`
	CoinFlipMinEdge float64 `toml:"coin_flip_min_edge"`
}

// RunnerConfig holds pipeline run tunables.
type RunnerConfig struct {
	OddsCacheTTL       duration `toml:"odds_cache_ttl"`
	DedupTTL           duration `toml:"dedup_ttl"`
	LockTTL            duration `toml:"lock_ttl"`
	MaxConcurrentGames int      `toml:"max_concurrent_games"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with the production constants.
// Everything except credentials runs out of the box.
func Defaults() Config {
	return Config{
		OddsAPI: OddsAPIConfig{
			BaseURL: "https://api.the-odds-api.com/v4",
			Sport:   "americanfootball_nfl",
			Regions: "us",
			Markets: "h2h,spreads,totals,player_anytime_td,player_first_td,first_team_to_score",
			Timeout: duration{20 * time.Second},
		},
		Scrape: ScrapeConfig{
			Enabled:     false,
			BaseURL:     "https://sportsbook.draftkings.com",
			HubPath:     "/leagues/football/nfl",
			MaxEvents:   12,
			NavTimeout:  duration{90 * time.Second},
			WaitTimeout: duration{60 * time.Second},
			Headless:    true,
		},
		Schedule: ScheduleConfig{
			BaseURL:        "https://site.api.espn.com/apis/site/v2/sports/football/nfl",
			Timezone:       "America/New_York",
			Timeout:        duration{15 * time.Second},
			PreviewLead:    duration{90 * time.Minute},
			FinalLead:      duration{30 * time.Minute},
			Tolerance:      duration{10 * time.Minute},
			TickerInterval: duration{5 * time.Minute},
		},
		Postgres: PostgresConfig{
			Host:          "localhost",
			Port:          5432,
			Database:      "gridiron",
			User:          "postgres",
			SSLMode:       "disable",
			PoolMaxConns:  10,
			PoolMinConns:  2,
			RunMigrations: true,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   20,
			MaxRetries: 3,
			TLSEnabled: false,
		},
		S3: S3Config{
			Enabled:        false,
			Endpoint:       "http://localhost:9000",
			Region:         "us-east-1",
			Bucket:         "gridiron-data",
			UseSSL:         false,
			ForcePathStyle: true,
		},
		Server: ServerConfig{
			Enabled:     true,
			Port:        8000,
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Notify: NotifyConfig{
			Events: []string{"picks", "board", "scrape", "error"},
		},
		Model: ModelConfig{
			MarginSigma:     13.86,
			PointsPerScore:  7.0,
			PassTDShare:     0.64,
			PlaysPerGame:    60,
			BasePassRate:    0.55,
			BlowoutPassBump: 0.06,
			BlowoutSpread:   6.0,
			DropbackRate:    0.90,
			TargetShare:     0.20,
			CatchRate:       0.66,
			ReceptionSigma:  1.2,
		},
		Selection: SelectionConfig{
			MinEVFull:        0.20,
			MinEVHalf:        0.12,
			MinProbFull:      0.20,
			MinProbHalf:      0.10,
			MinEdgePoints:    1.0,
			MinDecimalPrice:  9.0,
			BackupMaxProbGap: 0.015,
		},
		Board: BoardConfig{
			FavoriteSlots:   2,
			FavoriteMinProb: 0.75,
			FavoriteMinEdge: 2.5,
			CoinFlipMinProb: 0.45,
			CoinFlipMaxProb: 0.60,
			CoinFlipMinEdge: 3.0,
		},
		Runner: RunnerConfig{
			OddsCacheTTL:       duration{20 * time.Minute},
			DedupTTL:           duration{6 * time.Hour},
			LockTTL:            duration{10 * time.Minute},
			MaxConcurrentGames: 8,
		},
		Mode:     "watch",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"alert":  true,
	"board":  true,
	"scrape": true,
	"watch":  true,
	"serve":  true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: alert, board, scrape, watch, serve)", c.Mode))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	mode := strings.ToLower(c.Mode)

	// Odds API is required for every mode that prices markets.
	if mode == "alert" || mode == "board" || mode == "watch" {
		if c.OddsAPI.APIKey == "" {
			errs = append(errs, "oddsapi: api_key is required for mode "+mode)
		}
	}
	if c.OddsAPI.BaseURL == "" {
		errs = append(errs, "oddsapi: base_url must not be empty")
	}

	// Scraper settings matter only in scrape mode.
	if mode == "scrape" && !c.Scrape.Enabled {
		errs = append(errs, "scrape: must be enabled for scrape mode")
	}
	if c.Scrape.Enabled && c.Scrape.MaxEvents < 1 {
		errs = append(errs, "scrape: max_events must be >= 1")
	}

	// Schedule
	if c.Schedule.Timezone == "" {
		errs = append(errs, "schedule: timezone must not be empty")
	}
	if c.Schedule.Tolerance.Duration <= 0 {
		errs = append(errs, "schedule: tolerance must be positive")
	}

	// Modes that announce need at least one notify channel.
	if mode == "alert" || mode == "board" || mode == "watch" {
		if c.Notify.TelegramToken == "" && c.Notify.DiscordWebhook == "" {
			errs = append(errs, "notify: telegram_token or discord_webhook_url is required for mode "+mode)
		}
		if c.Notify.TelegramToken != "" && c.Notify.TelegramChatID == 0 {
			errs = append(errs, "notify: telegram_chat_id is required when telegram_token is set")
		}
	}

	// Postgres
	if strings.TrimSpace(c.Postgres.DSN) == "" {
		if c.Postgres.Host == "" {
			errs = append(errs, "postgres: host must not be empty (or set postgres.dsn)")
		}
		if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
			errs = append(errs, fmt.Sprintf("postgres: port must be 1-65535, got %d", c.Postgres.Port))
		}
		if c.Postgres.Database == "" {
			errs = append(errs, "postgres: database must not be empty")
		}
	}
	if c.Postgres.PoolMaxConns < 1 {
		errs = append(errs, "postgres: pool_max_conns must be >= 1")
	}
	if c.Postgres.PoolMinConns < 0 {
		errs = append(errs, "postgres: pool_min_conns must be >= 0")
	}
	if c.Postgres.PoolMinConns > c.Postgres.PoolMaxConns {
		errs = append(errs, "postgres: pool_min_conns must not exceed pool_max_conns")
	}

	// Redis
	if c.Redis.Addr == "" {
		errs = append(errs, "redis: addr must not be empty")
	}
	if c.Redis.PoolSize < 1 {
		errs = append(errs, "redis: pool_size must be >= 1")
	}

	// S3
	if c.S3.Enabled {
		if c.S3.Endpoint == "" {
			errs = append(errs, "s3: endpoint must not be empty when enabled")
		}
		if c.S3.Bucket == "" {
			errs = append(errs, "s3: bucket must not be empty when enabled")
		}
		if c.S3.AccessKey == "" || c.S3.SecretKey == "" {
			errs = append(errs, "s3: access_key and secret_key must not be empty when enabled")
		}
	}

	// Model
	if c.Model.MarginSigma <= 0 {
		errs = append(errs, "model: margin_sigma must be > 0")
	}
	if c.Model.PointsPerScore <= 0 {
		errs = append(errs, "model: points_per_score must be > 0")
	}
	if c.Model.ReceptionSigma <= 0 {
		errs = append(errs, "model: reception_sigma must be > 0")
	}

	// Selection
	if c.Selection.MinEVHalf > c.Selection.MinEVFull {
		errs = append(errs, "selection: min_ev_half must not exceed min_ev_full")
	}
	if c.Selection.MinProbHalf > c.Selection.MinProbFull {
		errs = append(errs, "selection: min_prob_half must not exceed min_prob_full")
	}
	if c.Selection.MinDecimalPrice <= 1.0 {
		errs = append(errs, "selection: min_decimal_price must be > 1.0")
	}
	if c.Selection.BackupMaxProbGap < 0 {
		errs = append(errs, "selection: backup_max_prob_gap must be >= 0")
	}

	// Board
	if c.Board.FavoriteSlots < 1 {
		errs = append(errs, "board: favorite_slots must be >= 1")
	}
	if c.Board.CoinFlipMinProb >= c.Board.CoinFlipMaxProb {
		errs = append(errs, "board: coin_flip_min_prob must be below coin_flip_max_prob")
	}

	// Server
	if c.Server.Enabled {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
