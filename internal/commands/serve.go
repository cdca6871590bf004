package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dan9191/tax-ledger/internal/events"
	"github.com/Dan9191/tax-ledger/internal/events/kafka"
	"github.com/Dan9191/tax-ledger/internal/handler"
	"github.com/Dan9191/tax-ledger/internal/reminder"
	"github.com/Dan9191/tax-ledger/internal/repository"
	"github.com/Dan9191/tax-ledger/internal/service"
	"github.com/Dan9191/tax-ledger/internal/utils/email"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server and the due date reminder scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, logger, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	// Initialize layers
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
		logger.Infof("Publishing record changes to Kafka at %v", cfg.KafkaBrokers)
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger, publisher)

	var auth *service.Authenticator
	if cfg.AuthEnabled() {
		auth = service.NewAuthenticator(cfg.OperatorPasswordHash, cfg.JWTSecret)
	}
	h := handler.NewHandler(svc, auth, logger)

	if cfg.RemindersEnabled() {
		job := reminder.NewJob(svc, email.NewSender(cfg, logger), cfg.ReminderTo, cfg.ReminderDaysAhead, logger)
		scheduler, err := reminder.NewScheduler(cfg.ReminderSchedule, job, logger)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(h, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
