package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies GRIDIRON_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known GRIDIRON_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Odds API ──
	setStr(&cfg.OddsAPI.APIKey, "GRIDIRON_ODDSAPI_API_KEY")
	setStr(&cfg.OddsAPI.BaseURL, "GRIDIRON_ODDSAPI_BASE_URL")
	setStr(&cfg.OddsAPI.Sport, "GRIDIRON_ODDSAPI_SPORT")
	setStr(&cfg.OddsAPI.Regions, "GRIDIRON_ODDSAPI_REGIONS")
	setStr(&cfg.OddsAPI.Markets, "GRIDIRON_ODDSAPI_MARKETS")
	setDuration(&cfg.OddsAPI.Timeout, "GRIDIRON_ODDSAPI_TIMEOUT")

	// ── Scraper ──
	setBool(&cfg.Scrape.Enabled, "GRIDIRON_SCRAPE_ENABLED")
	setStr(&cfg.Scrape.BaseURL, "GRIDIRON_SCRAPE_BASE_URL")
	setStr(&cfg.Scrape.HubPath, "GRIDIRON_SCRAPE_HUB_PATH")
	setInt(&cfg.Scrape.MaxEvents, "GRIDIRON_SCRAPE_MAX_EVENTS")
	setDuration(&cfg.Scrape.NavTimeout, "GRIDIRON_SCRAPE_NAV_TIMEOUT")
	setDuration(&cfg.Scrape.WaitTimeout, "GRIDIRON_SCRAPE_WAIT_TIMEOUT")
	setBool(&cfg.Scrape.Headless, "GRIDIRON_SCRAPE_HEADLESS")
	setStr(&cfg.Scrape.UserAgent, "GRIDIRON_SCRAPE_USER_AGENT")

	// ── Schedule ──
	setStr(&cfg.Schedule.BaseURL, "GRIDIRON_SCHEDULE_BASE_URL")
	setStr(&cfg.Schedule.Timezone, "GRIDIRON_SCHEDULE_TIMEZONE")
	setDuration(&cfg.Schedule.Timeout, "GRIDIRON_SCHEDULE_TIMEOUT")
	setDuration(&cfg.Schedule.PreviewLead, "GRIDIRON_SCHEDULE_PREVIEW_LEAD")
	setDuration(&cfg.Schedule.FinalLead, "GRIDIRON_SCHEDULE_FINAL_LEAD")
	setDuration(&cfg.Schedule.Tolerance, "GRIDIRON_SCHEDULE_TOLERANCE")
	setDuration(&cfg.Schedule.TickerInterval, "GRIDIRON_SCHEDULE_TICKER_INTERVAL")

	// ── Postgres ──
	setStr(&cfg.Postgres.DSN, "GRIDIRON_POSTGRES_DSN")
	setStr(&cfg.Postgres.Host, "GRIDIRON_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "GRIDIRON_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "GRIDIRON_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "GRIDIRON_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "GRIDIRON_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "GRIDIRON_POSTGRES_SSLMODE")
	setInt(&cfg.Postgres.PoolMaxConns, "GRIDIRON_POSTGRES_POOL_MAX_CONNS")
	setInt(&cfg.Postgres.PoolMinConns, "GRIDIRON_POSTGRES_POOL_MIN_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "GRIDIRON_POSTGRES_RUN_MIGRATIONS")

	// ── Redis ──
	setStr(&cfg.Redis.Addr, "GRIDIRON_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "GRIDIRON_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "GRIDIRON_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "GRIDIRON_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "GRIDIRON_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "GRIDIRON_REDIS_TLS_ENABLED")

	// ── S3 ──
	setBool(&cfg.S3.Enabled, "GRIDIRON_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "GRIDIRON_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "GRIDIRON_S3_REGION")
	setStr(&cfg.S3.Bucket, "GRIDIRON_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "GRIDIRON_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "GRIDIRON_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "GRIDIRON_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "GRIDIRON_S3_FORCE_PATH_STYLE")

	// ── Server ──
	setBool(&cfg.Server.Enabled, "GRIDIRON_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "GRIDIRON_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "GRIDIRON_SERVER_CORS_ORIGINS")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "GRIDIRON_NOTIFY_TELEGRAM_TOKEN")
	setInt64(&cfg.Notify.TelegramChatID, "GRIDIRON_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhook, "GRIDIRON_NOTIFY_DISCORD_WEBHOOK_URL")
	setStr(&cfg.Notify.DiscordUsername, "GRIDIRON_NOTIFY_DISCORD_USERNAME")
	setStringSlice(&cfg.Notify.Events, "GRIDIRON_NOTIFY_EVENTS")

	// ── Runner ──
	setDuration(&cfg.Runner.OddsCacheTTL, "GRIDIRON_RUNNER_ODDS_CACHE_TTL")
	setDuration(&cfg.Runner.DedupTTL, "GRIDIRON_RUNNER_DEDUP_TTL")
	setDuration(&cfg.Runner.LockTTL, "GRIDIRON_RUNNER_LOCK_TTL")
	setInt(&cfg.Runner.MaxConcurrentGames, "GRIDIRON_RUNNER_MAX_CONCURRENT_GAMES")

	// ── Top-level ──
	setStr(&cfg.Mode, "GRIDIRON_MODE")
	setStr(&cfg.LogLevel, "GRIDIRON_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
