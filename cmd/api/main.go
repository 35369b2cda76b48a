package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-catalog-nosql/internal/application/verification"
	"github.com/go-catalog-nosql/internal/config"
	"github.com/go-catalog-nosql/internal/infrastructure/dynamo"
	s3infra "github.com/go-catalog-nosql/internal/infrastructure/s3"
	"github.com/go-catalog-nosql/internal/infrastructure/schedule"
	"github.com/go-catalog-nosql/internal/infrastructure/smtp"
	"github.com/go-catalog-nosql/internal/infrastructure/sns"
	"github.com/go-catalog-nosql/internal/pkg/logger"
	transporthttp "github.com/go-catalog-nosql/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat, cfg.AppEnv)
	if envErr != nil {
		log.Info("no .env file found, reading from environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("dynamo client: %w", err)
	}
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	s3Client, err := s3infra.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("s3 client: %w", err)
	}
	images := s3infra.NewStore(s3Client, cfg.S3BucketName, s3infra.PublicBaseURL(cfg))

	// Test mode never reaches real phones or inboxes.
	var (
		smsSender sns.SMSSender
		mailer    smtp.Mailer
	)
	if cfg.OTP.TestMode {
		if cfg.IsProduction() {
			log.Warn("OTP test mode is enabled in production; every code is fixed")
		}
		smsSender = sns.NewLogSender()
		mailer = smtp.NewLogMailer()
	} else {
		if smsSender, err = sns.NewSender(ctx, cfg); err != nil {
			return fmt.Errorf("sns sender: %w", err)
		}
		mailer = smtp.NewMailer(cfg)
	}

	challenges := verification.NewStore(verification.Config{
		TTL:         cfg.OTP.TTL,
		GrantTTL:    cfg.OTP.GrantTTL,
		MaxAttempts: cfg.OTP.MaxAttempts,
	})

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(verification.SweepJob{Store: challenges}, cfg.OTP.SweepSpec); err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	deps := &transporthttp.Deps{
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users, cfg.DynamoTables.UserIdentities),
		NotificationRepo: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		Categories:       dynamo.NewCategoryTable(dynamoClient, cfg.DynamoTables.Categories),
		Logos:            dynamo.NewLogoTable(dynamoClient, cfg.DynamoTables.Logos),
		Banners:          dynamo.NewBannerTable(dynamoClient, cfg.DynamoTables.Banners),
		Containers:       dynamo.NewContainerTable(dynamoClient, cfg.DynamoTables.Containers),
		DueDates:         dynamo.NewDueDateTable(dynamoClient, cfg.DynamoTables.DueDates),
		Jobs:             dynamo.NewJobTable(dynamoClient, cfg.DynamoTables.Jobs),
		Images:           images,
		Challenges:       challenges,
		Mailer:           mailer,
		SMSSender:        smsSender,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
