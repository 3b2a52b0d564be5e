package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alfredjeanlab/hallbook/internal/booking"
	"github.com/alfredjeanlab/hallbook/internal/config"
	"github.com/alfredjeanlab/hallbook/internal/events"
	"github.com/alfredjeanlab/hallbook/internal/gate"
	"github.com/alfredjeanlab/hallbook/internal/mirror"
	"github.com/alfredjeanlab/hallbook/internal/notify"
	"github.com/alfredjeanlab/hallbook/internal/schedule"
	"github.com/alfredjeanlab/hallbook/internal/server"
	"github.com/alfredjeanlab/hallbook/internal/store/postgres"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the hallbook reservation server",
	GroupID: "system",
	// Override PersistentPreRunE so we don't create an HTTP client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		// Load configuration.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Connect to Postgres.
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				store.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (HALLBOOK_NATS_URL not set)")
		}

		// Create the mirror.
		var m mirror.Mirror = mirror.Noop{}
		if cfg.MirrorS3Bucket != "" {
			s3m, err := mirror.NewS3Mirror(
				context.Background(),
				cfg.MirrorS3Bucket,
				cfg.MirrorS3Prefix,
				cfg.MirrorS3Region,
				cfg.MirrorS3Endpoint,
			)
			if err != nil {
				logger.Error("failed to create S3 mirror", "err", err)
			} else {
				m = s3m
				logger.Info("S3 mirror enabled", "bucket", cfg.MirrorS3Bucket, "prefix", cfg.MirrorS3Prefix)
			}
		}

		// Pick the approval gate.
		var g gate.Gate
		if cfg.ClassifierURL != "" {
			g = gate.NewHTTPGate(cfg.ClassifierURL)
			logger.Info("classifier gate enabled", "url", cfg.ClassifierURL)
		} else {
			g = gate.NewStatic()
			logger.Info("static gate enabled (HALLBOOK_CLASSIFIER_URL not set)")
		}

		// Create the booking service.
		svc := booking.NewService(store, booking.Options{
			Mirror: m,
			Gate:   g,
			Events: publisher,
			Hours: schedule.Hours{
				OpenMinute:  cfg.OpenTime,
				CloseMinute: cfg.CloseTime,
				SlotMinutes: schedule.DefaultHours.SlotMinutes,
			},
			Buffer: time.Duration(cfg.BufferMins) * time.Minute,
			Halls:  cfg.Halls,
			Logger: logger,
		})

		// Start HTTP server.
		reservationServer := server.NewReservationServer(svc)
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: reservationServer.NewHTTPHandler(cfg.AuthToken),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start the mirror reconciler when snapshots are enabled.
		var reconciler *mirror.Reconciler
		if _, isNoop := m.(mirror.Noop); !isNoop && cfg.MirrorInterval > 0 {
			reconciler = mirror.NewReconciler(store, m, cfg.MirrorInterval, logger)
			reconciler.Start()
			logger.Info("mirror reconciler started", "interval", cfg.MirrorInterval)
		}

		// Start webhook notifier if NATS and a webhook are configured.
		var notifyCancel context.CancelFunc
		if cfg.NATSURL != "" && cfg.NotifyWebhookURL != "" {
			sub, err := events.NewNATSSubscriber(cfg.NATSURL)
			if err != nil {
				logger.Error("failed to create notify subscriber", "err", err)
			} else {
				notifier := notify.NewNotifier(cfg.NotifyWebhookURL, logger)
				var notifyCtx context.Context
				notifyCtx, notifyCancel = context.WithCancel(context.Background())
				go func() {
					if err := notifier.StartSubscriber(notifyCtx, sub); err != nil {
						logger.Error("notify subscriber error", "err", err)
					}
					sub.Close()
				}()
				logger.Info("webhook notifier started", "url", cfg.NotifyWebhookURL)
			}
		}

		logger.Info("hallbook server started", "http_addr", cfg.HTTPAddr)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		if notifyCancel != nil {
			notifyCancel()
			logger.Info("webhook notifier stopped")
		}

		if reconciler != nil {
			reconciler.Stop()
			logger.Info("mirror reconciler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}
