package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/dagcheck"
	"github.com/meikuraledutech/dagcheck/config"
	"github.com/meikuraledutech/dagcheck/postgres"
	"github.com/meikuraledutech/dagcheck/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP classification service",
		Long: `Run the HTTP classification service.

Settings come from the --config file and the environment (ALLOWED_ORIGIN,
DATABASE_URL, DAGCHECK_ADDR, DAGCHECK_LOG_LEVEL, DAGCHECK_RECORD_LIMIT).
When DATABASE_URL is set every classification is recorded in PostgreSQL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger := opts.logger(cfg.Level())

	var recorder dagcheck.Recorder
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer pool.Close()

		store := postgres.New(pool)
		if err := store.CreateSchema(ctx); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
		recorder = store
		logger.Info("classification records enabled")
	}

	app := server.New(server.Options{
		AllowedOrigin: cfg.AllowedOrigin,
		RecordLimit:   cfg.RecordLimit,
		Logger:        logger,
		Recorder:      recorder,
	})

	errc := make(chan error, 1)
	go func() {
		errc <- app.Listen(cfg.Addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	logger.Info("listening", "addr", cfg.Addr, "allowed_origin", cfg.AllowedOrigin)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	}
}
