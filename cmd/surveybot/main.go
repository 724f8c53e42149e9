package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"

	"github.com/gratefultolord/survey_bot/internal/admin"
	"github.com/gratefultolord/survey_bot/internal/bot"
	"github.com/gratefultolord/survey_bot/internal/config"
	"github.com/gratefultolord/survey_bot/internal/db"
	"github.com/gratefultolord/survey_bot/internal/metrics"
	"github.com/gratefultolord/survey_bot/internal/observability"
	"github.com/gratefultolord/survey_bot/internal/session"
	"github.com/gratefultolord/survey_bot/internal/survey"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := observability.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openRecordStore(cfg, logger)
	if err != nil {
		log.Fatalf("Error opening record store: %v", err)
	}
	defer closeStore()

	records := db.NewBreakerStore(store, db.NewCircuitBreaker("record-store", logger))

	sessions, closeSessions, err := openSessionStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Error opening session store: %v", err)
	}
	defer closeSessions()

	collector := metrics.New()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := collector.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Error creating telegram bot: %v", err)
	}
	botAPI.Debug = cfg.BotDebug

	machine := survey.New(sessions, records, cfg.AdminID, collector, logger)
	adminService := admin.New(records, cfg.AdminID, collector, logger)
	router := bot.NewRouter(machine, adminService, admin.ButtonResponses)

	botService := bot.New(botAPI, router, logger)

	logger.Info("bot started",
		"username", botAPI.Self.UserName,
		"db_driver", cfg.DBDriver,
		"session_backend", cfg.SessionBackend,
	)

	botService.Start(ctx)
}

func openRecordStore(cfg *config.Config, logger *slog.Logger) (db.Store, func(), error) {
	if cfg.DBDriver == config.DriverMemory {
		logger.Warn("records are kept in memory and lost on restart")
		return db.NewMemoryStore(), func() {}, nil
	}

	database, err := db.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := db.RunMigrations(database.Conn, database.Driver, logger); err != nil {
		database.Close()
		return nil, nil, err
	}

	closeFn := func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "err", err)
		}
	}

	return db.NewRecordRepository(database.Conn), closeFn, nil
}

func openSessionStore(ctx context.Context, cfg *config.Config) (survey.SessionStore, func(), error) {
	if cfg.SessionBackend != config.SessionBackendRedis {
		return session.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, err
	}

	return session.NewRedisStore(client), func() { client.Close() }, nil
}
