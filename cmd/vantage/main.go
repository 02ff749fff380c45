package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"vantage/internal/cli"
	apphttp "vantage/internal/http"
	applog "vantage/internal/log"
	"vantage/internal/notify"
	"vantage/internal/services"
	"vantage/internal/session"
	"vantage/internal/store"
)

func main() {
	cli.LoadEnvFile()

	// Bootstrap logger; reconfigured below once the log level is known.
	logger := cli.SetupLogger("info")
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel)

	backend, err := store.Open(store.Config{
		Type:       store.BackendType(cfg.DataBackend),
		FilePath:   cfg.DataFilePath,
		SQLitePath: cfg.SQLiteDBPath,
	}, applog.ForComponent(logger, applog.ComponentStore))
	if err != nil {
		logger.Error("Failed to open storage backend", applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("Storage close error", applog.FieldError, err)
		}
	}()

	accounts := store.NewAccountStore(backend, applog.ForComponent(logger, applog.ComponentStore))
	sessions := session.NewManager(accounts, applog.ForComponent(logger, applog.ComponentSession))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Pick up where the last run left off, if anyone was logged in.
	if _, err := sessions.Resume(ctx); err != nil && !errors.Is(err, store.ErrNoSession) {
		logger.Warn("Session resume failed", applog.FieldError, err)
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.NotifyEnabled {
		notifier = notify.NewDesktop(applog.ForComponent(logger, applog.ComponentReminder))
	}
	reminder := notify.NewReminder(sessions, notifier, cfg.ReminderInterval,
		applog.ForComponent(logger, applog.ComponentReminder))

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Sessions: sessions,
		Tasks:    services.NewTaskService(sessions, logger),
		Leads:    services.NewLeadService(sessions, notifier, logger),
		Goals:    services.NewGoalService(sessions, logger),
		Finance:  services.NewFinanceService(sessions, logger),
		Reports:  services.NewReportService(sessions, logger),
		Logger:   logger,
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting vantage server", "port", cfg.Port, applog.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := reminder.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
