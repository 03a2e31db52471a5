package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	natsadapter "github.com/aeroanalytics/aerowatch/internal/adapters/nats"
	"github.com/aeroanalytics/aerowatch/internal/adapters/postgres"
	"github.com/aeroanalytics/aerowatch/internal/adapters/sendgrid"
	"github.com/aeroanalytics/aerowatch/internal/core/domain"
	"github.com/aeroanalytics/aerowatch/internal/core/ports"
	"github.com/aeroanalytics/aerowatch/internal/core/usecases"
	"github.com/aeroanalytics/aerowatch/internal/pkg/config"
	"github.com/aeroanalytics/aerowatch/internal/pkg/logging"
	"github.com/aeroanalytics/aerowatch/internal/pkg/metrics"
)

func main() {
	once := flag.Bool("once", false, "run a single sweep and exit")
	flag.Parse()

	cfg, err := config.Load("aerowatch-notifier")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	mailer := sendgrid.New(cfg.Mail.APIKey, cfg.Mail.From)
	if !mailer.Enabled() {
		slog.Warn("mail api key not set, notification emails degrade to no-ops")
	}

	var events ports.EventPublisher
	if publisher != nil {
		events = publisher
	}

	svc := usecases.NewNotificationService(
		postgres.NewUserRepo(db),
		mailer,
		events,
		usecases.NotificationConfig{
			Enabled: cfg.Notifications.Enabled,
			Area: domain.Bounds{
				MinLat: cfg.Notifications.Area.MinLat,
				MaxLat: cfg.Notifications.Area.MaxLat,
				MinLng: cfg.Notifications.Area.MinLng,
				MaxLng: cfg.Notifications.Area.MaxLng,
			},
			BaseURL: cfg.BaseURL,
		},
	)

	runSweep := func() {
		start := time.Now()
		report, err := svc.Sweep(ctx)
		metrics.SweepDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			slog.Error("sweep failed", "error", err)
			return
		}
		if !report.Skipped {
			metrics.SweepUsersMatched.Set(float64(report.Matched))
			metrics.NotificationsSent.Add(float64(report.Sent))
			metrics.NotificationsFailed.Add(float64(report.Failed))
		}
	}

	if *once {
		start := time.Now()
		report, err := svc.Sweep(ctx)
		if err != nil {
			log.Fatalf("sweep: %v", err)
		}
		slog.Info("sweep finished",
			"skipped", report.Skipped, "matched", report.Matched,
			"sent", report.Sent, "failed", report.Failed,
			"duration", time.Since(start).String())
		return
	}

	// Six-field cron expressions (with seconds), e.g. "0 0 9 * * *" for 09:00 daily.
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(cfg.Notifications.Schedule, runSweep); err != nil {
		log.Fatalf("cron schedule %q: %v", cfg.Notifications.Schedule, err)
	}
	c.Start()

	slog.Info("notifier started", "schedule", cfg.Notifications.Schedule, "enabled", cfg.Notifications.Enabled)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received", "signal", sig.String())

	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		slog.Warn("timed out waiting for running sweep")
	}

	slog.Info("notifier stopped")
}
