package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/mexicano/internal/common/clock"
	"github.com/KirkDiggler/mexicano/internal/common/uuid"
	"github.com/KirkDiggler/mexicano/internal/config"
	"github.com/KirkDiggler/mexicano/internal/handlers/discord"
	"github.com/KirkDiggler/mexicano/internal/metrics"
	"github.com/KirkDiggler/mexicano/internal/notifier"
	"github.com/KirkDiggler/mexicano/internal/random"
	"github.com/KirkDiggler/mexicano/internal/repositories/history"
	"github.com/KirkDiggler/mexicano/internal/repositories/roster"
	"github.com/KirkDiggler/mexicano/internal/repositories/tournament"
	"github.com/KirkDiggler/mexicano/internal/services/messaging"
	rosterService "github.com/KirkDiggler/mexicano/internal/services/roster"
	tournamentService "github.com/KirkDiggler/mexicano/internal/services/tournament"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	if cfg.Discord.Token == "" {
		fatal(logger, "DISCORD_TOKEN environment variable is required", nil)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Initialize repositories
	tournamentRepo, err := tournament.NewRedis(&tournament.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		fatal(logger, "failed to create tournament repository", err)
	}

	rosterRepo, err := roster.NewRedis(&roster.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		fatal(logger, "failed to create roster repository", err)
	}

	historyRepo, err := history.NewRedis(&history.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		fatal(logger, "failed to create history repository", err)
	}

	events, err := notifier.NewRedis(&notifier.Config{
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		fatal(logger, "failed to create notifier", err)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder, err := metrics.NewPrometheus(&metrics.Config{
		Registry: registry,
	})
	if err != nil {
		fatal(logger, "failed to create metrics recorder", err)
	}

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("serving metrics", "addr", cfg.MetricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	rng := random.New(&random.Config{
		Seed: cfg.Tournament.RandomSeed,
	})

	// Initialize services
	tournamentSvc, err := tournamentService.New(&tournamentService.Config{
		Courts:              cfg.Tournament.Courts,
		MinPlayers:          cfg.Tournament.MinPlayers,
		AvoidRepeatPartners: cfg.Tournament.AvoidRepeatPartners,
		TournamentRepo:      tournamentRepo,
		RosterRepo:          rosterRepo,
		HistoryRepo:         historyRepo,
		Publisher:           events,
		Metrics:             recorder,
		Random:              rng,
		Clock:               clock.New(),
		UUIDGenerator:       uuid.New(),
		Logger:              logger,
	})
	if err != nil {
		fatal(logger, "failed to create tournament service", err)
	}

	rosterSvc, err := rosterService.New(&rosterService.Config{
		RosterRepo: rosterRepo,
		Logger:     logger,
	})
	if err != nil {
		fatal(logger, "failed to create roster service", err)
	}

	messagingSvc, err := messaging.New(&messaging.Config{
		Random: rng,
	})
	if err != nil {
		fatal(logger, "failed to create messaging service", err)
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:             cfg.Discord.Token,
		ApplicationID:     cfg.Discord.ApplicationID,
		GuildID:           cfg.Discord.GuildID,
		TournamentService: tournamentSvc,
		RosterService:     rosterSvc,
		MessagingService:  messagingSvc,
		Subscriber:        events,
		Logger:            logger,
	})
	if err != nil {
		fatal(logger, "failed to create Discord bot", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := bot.Start(ctx); err != nil {
		fatal(logger, "failed to start Discord bot", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	<-ctx.Done()

	if err := bot.Stop(); err != nil {
		logger.Error("failed to stop bot", "error", err)
	}

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to stop metrics server", "error", err)
		}
	}

	logger.Info("bot has been shut down")
}

func fatal(logger *slog.Logger, msg string, err error) {
	if err != nil {
		logger.Error(msg, "error", err)
	} else {
		logger.Error(msg)
	}
	os.Exit(1)
}
