package config

import (
	"strings"
	"testing"
	"time"
)

// withCredentials fills in the fields Defaults leaves empty so the result
// passes validation for the daemon modes.
func withCredentials() Config {
	cfg := Defaults()
	cfg.OddsAPI.APIKey = "test-key"
	cfg.Notify.TelegramToken = "123:abc"
	cfg.Notify.TelegramChatID = -1001234
	return cfg
}

func TestDefaultsValidate(t *testing.T) {
	cfg := withCredentials()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults with credentials should validate: %v", err)
	}
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	cfg := withCredentials()
	cfg.Mode = "turbo"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error for unknown mode")
	}
	if !strings.Contains(err.Error(), "unknown mode") {
		t.Errorf("error = %v, want mention of unknown mode", err)
	}
}

func TestValidateRequiresNotifyChannel(t *testing.T) {
	cfg := withCredentials()
	cfg.Notify.TelegramToken = ""
	cfg.Notify.DiscordWebhook = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error when no notify channel is configured")
	}

	cfg.Notify.DiscordWebhook = "https://discord.com/api/webhooks/1/x"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("discord-only config should validate: %v", err)
	}
}

func TestValidateRequiresChatIDWithToken(t *testing.T) {
	cfg := withCredentials()
	cfg.Notify.TelegramChatID = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error when chat id is missing")
	}
	if !strings.Contains(err.Error(), "telegram_chat_id") {
		t.Errorf("error = %v, want mention of telegram_chat_id", err)
	}
}

func TestValidateServeModeNeedsNoAPIKey(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = "serve"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("serve mode should not require collector credentials: %v", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := withCredentials()
	cfg.Redis.Addr = ""
	cfg.Board.FavoriteSlots = 0
	cfg.Selection.MinDecimalPrice = 1.0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected a combined error")
	}
	for _, want := range []string{"redis: addr", "favorite_slots", "min_decimal_price"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("combined error missing %q:\n%v", want, err)
		}
	}
}

func TestValidateS3RequiresCredentials(t *testing.T) {
	cfg := withCredentials()
	cfg.S3.Enabled = true

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error when the archive is enabled without keys")
	}
	if !strings.Contains(err.Error(), "access_key") {
		t.Errorf("error = %v, want mention of access_key", err)
	}

	cfg.S3.AccessKey = "ak"
	cfg.S3.SecretKey = "sk"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("fully configured archive should validate: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GRIDIRON_ODDSAPI_API_KEY", "env-key")
	t.Setenv("GRIDIRON_NOTIFY_TELEGRAM_CHAT_ID", "-100987")
	t.Setenv("GRIDIRON_SCHEDULE_PREVIEW_LEAD", "2h")
	t.Setenv("GRIDIRON_SERVER_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("GRIDIRON_POSTGRES_RUN_MIGRATIONS", "false")

	cfg := Defaults()
	applyEnvOverrides(&cfg)

	if cfg.OddsAPI.APIKey != "env-key" {
		t.Errorf("api key = %q", cfg.OddsAPI.APIKey)
	}
	if cfg.Notify.TelegramChatID != -100987 {
		t.Errorf("chat id = %d", cfg.Notify.TelegramChatID)
	}
	if cfg.Schedule.PreviewLead.Duration != 2*time.Hour {
		t.Errorf("preview lead = %v", cfg.Schedule.PreviewLead.Duration)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://b.example" {
		t.Errorf("cors origins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Postgres.RunMigrations {
		t.Error("run_migrations override not applied")
	}
}

func TestEnvOverridesIgnoreMalformedValues(t *testing.T) {
	t.Setenv("GRIDIRON_SERVER_PORT", "not-a-port")
	t.Setenv("GRIDIRON_RUNNER_DEDUP_TTL", "soon")

	cfg := Defaults()
	applyEnvOverrides(&cfg)

	if cfg.Server.Port != 8000 {
		t.Errorf("port = %d, want the default kept", cfg.Server.Port)
	}
	if cfg.Runner.DedupTTL.Duration != 6*time.Hour {
		t.Errorf("dedup ttl = %v, want the default kept", cfg.Runner.DedupTTL.Duration)
	}
}

func TestRedactedConfig(t *testing.T) {
	cfg := withCredentials()
	cfg.Postgres.Password = "hunter2"
	cfg.S3.SecretKey = "s3secret"

	red := RedactedConfig(&cfg)

	if red.OddsAPI.APIKey != "***" || red.Notify.TelegramToken != "***" {
		t.Error("credentials not redacted")
	}
	if red.Postgres.Password != "***" || red.S3.SecretKey != "***" {
		t.Error("storage secrets not redacted")
	}
	if cfg.OddsAPI.APIKey != "test-key" {
		t.Error("original config mutated")
	}

	// Empty secrets stay empty rather than becoming placeholders.
	if red.Postgres.DSN != "" {
		t.Errorf("empty DSN redacted to %q", red.Postgres.DSN)
	}

	red.Notify.Events[0] = "mutated"
	if cfg.Notify.Events[0] == "mutated" {
		t.Error("redacted copy shares the events slice")
	}
}
