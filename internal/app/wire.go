package app

import (
	"context"
	"fmt"
	"log/slog"

	s3blob "github.com/tkonrad/gridironbot/internal/blob/s3"
	"github.com/tkonrad/gridironbot/internal/cache/redis"
	"github.com/tkonrad/gridironbot/internal/collector/oddsapi"
	"github.com/tkonrad/gridironbot/internal/collector/scraper"
	"github.com/tkonrad/gridironbot/internal/config"
	"github.com/tkonrad/gridironbot/internal/domain"
	"github.com/tkonrad/gridironbot/internal/engine"
	"github.com/tkonrad/gridironbot/internal/model"
	"github.com/tkonrad/gridironbot/internal/notify"
	"github.com/tkonrad/gridironbot/internal/pipeline"
	"github.com/tkonrad/gridironbot/internal/schedule"
	"github.com/tkonrad/gridironbot/internal/store/postgres"
)

// Dependencies bundles every domain-level dependency that the application
// modes need to operate. It is constructed by Wire and torn down by the
// returned cleanup function.
type Dependencies struct {
	// Collectors
	OddsClient *oddsapi.Client
	Scraper    *scraper.Scraper
	Gate       *schedule.Gate

	// Evaluation
	Evaluator *pipeline.Evaluator

	// Stores
	Picks domain.PickStore
	Games domain.GameStore

	// Caches
	OddsCache domain.OddsCache
	Dedup     domain.AlertDedup
	Lock      domain.RunLock

	// Blob storage
	Archiver *s3blob.SnapshotArchiver

	// Notifications
	Notifier *notify.Notifier
}

// needsScraper returns true for modes that read book pages: scrape mode by
// definition, and the board modes, whose pass-TD and reception-over slots are
// priced off markets the odds API feed doesn't carry.
func needsScraper(mode string) bool {
	switch mode {
	case "scrape", "board", "watch":
		return true
	default:
		return false
	}
}

// needsPostgres returns true for modes that persist picks and games.
func needsPostgres(mode string) bool {
	switch mode {
	case "alert", "board", "watch", "serve":
		return true
	default:
		return false
	}
}

// needsRedis returns true for modes that evaluate the slate (snapshot cache,
// dedup, run lock).
func needsRedis(mode string) bool {
	switch mode {
	case "alert", "board", "watch":
		return true
	default:
		return false
	}
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that should
// be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config) (*Dependencies, func(), error) {
	logger := slog.Default()

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{}

	// --- Collectors ---
	deps.OddsClient = oddsapi.NewClient(oddsapi.Config{
		APIKey:  cfg.OddsAPI.APIKey,
		BaseURL: cfg.OddsAPI.BaseURL,
		Sport:   cfg.OddsAPI.Sport,
		Regions: cfg.OddsAPI.Regions,
		Markets: cfg.OddsAPI.Markets,
		Timeout: cfg.OddsAPI.Timeout.Duration,
	}, logger)

	if cfg.Scrape.Enabled || needsScraper(cfg.Mode) {
		deps.Scraper = scraper.New(scraper.Config{
			BaseURL:     cfg.Scrape.BaseURL,
			HubPath:     cfg.Scrape.HubPath,
			MaxEvents:   cfg.Scrape.MaxEvents,
			NavTimeout:  cfg.Scrape.NavTimeout.Duration,
			WaitTimeout: cfg.Scrape.WaitTimeout.Duration,
			Headless:    cfg.Scrape.Headless,
			UserAgent:   cfg.Scrape.UserAgent,
		}, logger)
	}

	gate, err := schedule.New(schedule.Config{
		BaseURL:     cfg.Schedule.BaseURL,
		Timezone:    cfg.Schedule.Timezone,
		Timeout:     cfg.Schedule.Timeout.Duration,
		PreviewLead: cfg.Schedule.PreviewLead.Duration,
		FinalLead:   cfg.Schedule.FinalLead.Duration,
		Tolerance:   cfg.Schedule.Tolerance.Duration,
	}, logger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("wire: schedule gate: %w", err)
	}
	deps.Gate = gate

	// --- Evaluation (model + selection policies from config) ---
	deps.Evaluator = pipeline.NewEvaluator(
		model.New(modelParams(cfg.Model)),
		engine.NewSelector(selectionPolicy(cfg.Selection)),
		engine.NewBoardSelector(boardPolicy(cfg.Board)),
		logger,
	)

	// --- PostgreSQL (only for modes that need persistence) ---
	if needsPostgres(cfg.Mode) {
		pgClient, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Postgres.DSN,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.PoolMaxConns,
			MinConns: cfg.Postgres.PoolMinConns,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres: %w", err)
		}
		closers = append(closers, pgClient.Close)

		if cfg.Postgres.RunMigrations {
			if err := pgClient.RunMigrations(ctx); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("wire: postgres migrations: %w", err)
			}
		}

		pool := pgClient.Pool()
		deps.Picks = postgres.NewPickStore(pool)
		deps.Games = postgres.NewGameStore(pool)
	}

	// --- Redis (snapshot cache, dedup, run lock) ---
	if needsRedis(cfg.Mode) {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })

		deps.OddsCache = redis.NewOddsCache(redisClient)
		deps.Dedup = redis.NewAlertDedup(redisClient)
		deps.Lock = redis.NewRunLock(redisClient)
	}

	// --- S3 blob storage (snapshot archive, opt-in) ---
	if cfg.S3.Enabled && needsRedis(cfg.Mode) {
		s3Client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}
		deps.Archiver = s3blob.NewSnapshotArchiver(s3blob.NewWriter(s3Client))
	}

	// --- Notifications ---
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != 0 {
		tg, err := notify.NewTelegramSender(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: telegram: %w", err)
		}
		senders = append(senders, tg)
	}
	if cfg.Notify.DiscordWebhook != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhook, cfg.Notify.DiscordUsername))
	}
	deps.Notifier = notify.NewNotifier(senders, cfg.Notify.Events, logger)

	return deps, cleanup, nil
}

// modelParams maps the config section onto the estimator parameter set.
func modelParams(m config.ModelConfig) model.Params {
	return model.Params{
		MarginSigma:     m.MarginSigma,
		PointsPerScore:  m.PointsPerScore,
		PassTDShare:     m.PassTDShare,
		PlaysPerGame:    m.PlaysPerGame,
		BasePassRate:    m.BasePassRate,
		BlowoutPassBump: m.BlowoutPassBump,
		BlowoutSpread:   m.BlowoutSpread,
		DropbackRate:    m.DropbackRate,
		TargetShare:     m.TargetShare,
		CatchRate:       m.CatchRate,
		ReceptionSigma:  m.ReceptionSigma,
	}
}

// selectionPolicy maps the config section onto the single-best thresholds.
func selectionPolicy(s config.SelectionConfig) engine.Policy {
	return engine.Policy{
		MinEVFull:        s.MinEVFull,
		MinEVHalf:        s.MinEVHalf,
		MinProbFull:      s.MinProbFull,
		MinProbHalf:      s.MinProbHalf,
		MinEdgePoints:    s.MinEdgePoints,
		MinDecimalPrice:  s.MinDecimalPrice,
		BackupMaxProbGap: s.BackupMaxProbGap,
	}
}

// boardPolicy maps the config section onto the board thresholds.
func boardPolicy(b config.BoardConfig) engine.BoardPolicy {
	return engine.BoardPolicy{
		FavoriteSlots:       b.FavoriteSlots,
		FavoriteMinBookProb: b.FavoriteMinProb,
		FavoriteMinEdge:     b.FavoriteMinEdge,
		CoinFlipMinBookProb: b.CoinFlipMinProb,
		CoinFlipMaxBookProb: b.CoinFlipMaxProb,
		CoinFlipMinEdge:     b.CoinFlipMinEdge,
	}
}
