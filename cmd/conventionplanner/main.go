// @title Convention Planner API
// @version 1.0
// @description Conferences, rooms, events and attendee registration.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"conventionplanner/config"
	"conventionplanner/internal/adapters/auth"
	"conventionplanner/internal/adapters/email"
	"conventionplanner/internal/adapters/messaging"
	"conventionplanner/internal/convention"
	httpdelivery "conventionplanner/internal/delivery/http"
	"conventionplanner/internal/delivery/http/controllers"
	"conventionplanner/internal/repository/postgres"
	"conventionplanner/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var port string

	root := &cobra.Command{
		Use:          "conventionplanner",
		Short:        "Conference planning API server",
		SilenceUsage: true,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  `serve starts the HTTP API. Conference data lives in memory; users are stored in Postgres.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := config.NewLogger(cfg)
			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := postgres.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			logger.Info("schema applied")
			return nil
		},
	}

	root.AddCommand(serveCmd, migrateCmd)
	return root
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.ContextTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	users := postgres.NewUserRepository(db)
	tokens := auth.NewJWTIssuer(cfg.JWTSecret)
	store := convention.NewConferenceManager()
	perms := convention.NewPermissionManager(store)
	conversations := messaging.NewInMemoryConversations(logger)

	authService := services.NewAuthService(users, auth.NewBcryptHasher(bcrypt.DefaultCost), tokens, emailService, cfg.JWTExpiry, cfg.ContextTimeout, logger)
	conferenceService := services.NewConferenceService(store, perms, users, logger)
	roomService := services.NewRoomService(store, perms, logger)
	eventService := services.NewEventService(store, perms, conversations, users, emailService, logger)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:        controllers.NewAuthController(logger, authService),
		Conferences: controllers.NewConferenceController(logger, conferenceService),
		Rooms:       controllers.NewRoomController(logger, roomService),
		Events:      controllers.NewEventController(logger, eventService),
	}, tokens, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpdelivery.NewHandler(mux, cfg.CORSAllowedOrigins, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
