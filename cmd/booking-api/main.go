package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/booking-api/internal/config"
	"github.com/deppfellow/booking-api/internal/database"
	"github.com/deppfellow/booking-api/internal/handler"
	"github.com/deppfellow/booking-api/internal/logger"
	"github.com/deppfellow/booking-api/internal/repository"
	"github.com/deppfellow/booking-api/internal/router"
	"github.com/deppfellow/booking-api/internal/server"
	"github.com/deppfellow/booking-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// shutdownTimeout is how long in-flight requests get after SIGINT/SIGTERM.
const shutdownTimeout = 30 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "booking-api",
		Short:         "REST API for hosts and their property listings",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Running the binary without a subcommand serves the API.
		RunE: runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API and the background job worker",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply the embedded database migrations and exit",
			RunE:  runMigrate,
		},
	)

	return root
}

// bootstrap loads the configuration and builds the logger pair every command needs.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, log, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	if err := database.Migrate(cmd.Context(), &log, cfg); err != nil {
		log.Error().Err(err).Msg("failed to migrate database")
		return err
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}

	// Locally the schema is managed by hand with the migrate command.
	if !cfg.IsLocal() {
		if err := database.Migrate(cmd.Context(), &log, cfg); err != nil {
			log.Error().Err(err).Msg("failed to migrate database")
			loggerService.Shutdown()
			return err
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		loggerService.Shutdown()
		return err
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		log.Error().Err(err).Msg("could not create services")
		_ = srv.Shutdown(context.Background())
		return err
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
		return errors.Join(err, srv.Shutdown(context.Background()))
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
