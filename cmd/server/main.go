package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripdesk/internal/api"
	"tripdesk/internal/auth"
	"tripdesk/internal/config"
	"tripdesk/internal/database"
	"tripdesk/internal/domain"
	"tripdesk/internal/events"
	"tripdesk/internal/google"
	"tripdesk/internal/logging"
	"tripdesk/internal/mailer"
	"tripdesk/internal/metrics"
	"tripdesk/internal/models"
	"tripdesk/internal/notify"
	"tripdesk/internal/repository"
	"tripdesk/internal/service"
	"tripdesk/internal/uploads"
	"tripdesk/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}
	logger := baseLogger.With().Str("component", "main").Logger()

	metrics.Register()

	db, err := database.NewDB(cfg.Database.Path, baseLogger)
	if err != nil {
		logger.Error().Err(err).Msg("database init failed")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sheetsService := initGoogleSheets(ctx, cfg, &logger)
	mailService := initMailer(cfg, baseLogger, &logger)
	pinger := initTelegram(cfg, &logger)

	dispatcher := worker.NewDispatcher(models.DispatchQueueSize, 2,
		models.NotifyTimeoutSeconds*time.Second, baseLogger)
	dispatcher.Start()
	defer dispatcher.Close()

	var sheetsWriter domain.SheetsWriter
	if sheetsService != nil {
		sheetsWriter = sheetsService
	}
	fanOut := notify.New(mailService, sheetsWriter, pinger, dispatcher, baseLogger)

	redisClient, limiter := initRateLimiter(ctx, cfg, baseLogger, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	eventBus := events.NewEventBus()
	subscribeBookingEvents(eventBus, &logger)

	svc := service.New(service.Deps{
		Config:    cfg,
		Bookings:  db,
		Content:   db,
		Contacts:  db,
		Analytics: db,
		Notifier:  fanOut,
		Mailer:    mailService,
		Guard:     auth.NewGuard(cfg.Admin),
		Bus:       eventBus,
		Logger:    baseLogger,
	})

	uploadStore, err := uploads.NewStore(cfg.Uploads)
	if err != nil {
		logger.Error().Err(err).Msg("uploads dir init failed")
		return err
	}

	if cfg.Database.Backup.Enabled {
		go db.RunBackups(ctx, cfg.Database.Path, cfg.Database.Backup)
	}

	if cfg.Monitoring.PrometheusEnabled {
		go startMetricsListener(cfg.Monitoring, &logger)
	}

	server := api.NewServer(cfg, svc, uploadStore, limiter, fanOut, baseLogger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("http server error")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}

	logger.Info().Msg("shutdown complete")
	return nil
}

func initGoogleSheets(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *google.SheetsService {
	if !cfg.Sheets.Enabled() {
		logger.Info().Msg("google sheets disabled")
		return nil
	}

	svc, err := google.NewSheetsService(ctx, cfg.Sheets)
	if err != nil {
		logger.Warn().Err(err).Msg("google sheets init failed, channel disabled")
		return nil
	}
	logger.Info().Msg("google sheets channel ready")
	return svc
}

func initMailer(cfg *config.Config, baseLogger *zerolog.Logger, logger *zerolog.Logger) domain.Mailer {
	if !cfg.Mail.Enabled() {
		logger.Info().Msg("mail channel disabled")
		return nil
	}
	return mailer.New(cfg.Mail, cfg.App.BaseURL, baseLogger)
}

func initTelegram(cfg *config.Config, logger *zerolog.Logger) notify.OperatorPinger {
	if !cfg.Telegram.Enabled() {
		logger.Info().Msg("telegram channel disabled")
		return nil
	}

	ch, err := notify.NewTelegramChannel(cfg.Telegram)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram init failed, channel disabled")
		return nil
	}
	logger.Info().Msg("telegram channel ready")
	return ch
}

func initRateLimiter(ctx context.Context, cfg *config.Config, baseLogger *zerolog.Logger,
	logger *zerolog.Logger) (*redis.Client, domain.RateLimiter) {

	fallback := repository.NewMemoryRateLimiter(cfg.RateLimit)

	if cfg.Redis.Address == "" {
		return nil, fallback
	}

	client := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(ctx, client); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, starting on memory limiter")
	}

	primary := repository.NewRedisRateLimiter(client, cfg.RateLimit)
	return client, repository.NewFailoverRateLimiter(primary, fallback, baseLogger)
}

func startMetricsListener(cfg config.MonitoringConfig, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.PrometheusPort)
	logger.Info().Str("addr", addr).Msg("metrics listener started")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("metrics listener error")
	}
}

func subscribeBookingEvents(bus *events.EventBus, logger *zerolog.Logger) {
	bus.Subscribe(events.EventBookingReceived, func(ev *events.Event) error {
		var payload events.BookingEventPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return nil
		}
		if payload.Urgent {
			logger.Warn().
				Str("booking_id", payload.BookingID).
				Str("type", payload.Type).
				Msg("urgent booking received")
		}
		return nil
	})

	bus.Subscribe(events.EventBookingStatusChanged, func(ev *events.Event) error {
		var payload events.BookingEventPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return nil
		}
		logger.Info().
			Str("booking_id", payload.BookingID).
			Str("status", payload.Status).
			Msg("booking status changed")
		return nil
	})
}
