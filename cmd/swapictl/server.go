package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/audit"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/config"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/db"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/logging"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/endpoints"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/store/gorm"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the SWAPI application server",
	Long: `Run the SWAPI application server.

The server requires DATABASE_URL (or database_url in swapi.yml).

By default, database migrations are run on startup. Use --no-migrate to skip.
The server stops gracefully on SIGINT or SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServer(cmd); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().IntP("port", "p", 0, "server listen port (overrides config)")
	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address (overrides config)")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
	serverCmd.Flags().Bool("watch-config", false, "reload swapi.yml on change and apply the new log level")
}

func runServer(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("bind-address") {
		cfg.BindAddress, _ = cmd.Flags().GetString("bind-address")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// The logger lets everything through and the global level filters, so a
	// reloaded log_level takes effect on loggers already handed out.
	logger := logging.NewLoggerFromConfig(cfg.LoggingConfig()).Level(zerolog.TraceLevel)
	logging.SetDefault(logger)
	zerolog.SetGlobalLevel(logging.ParseLevel(cfg.LogLevel))
	audit.SetEnabled(cfg.AuditEnabled)

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		logger.Info().Msg("running database migrations")
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	database, err := db.Connect(db.Config{URL: cfg.DatabaseURL, LogLevel: cfg.LogLevel})
	if err != nil {
		return err
	}
	stores, err := gorm.NewStores(database)
	if err != nil {
		return err
	}

	s := server.NewServer(cfg, stores, logger)
	endpoints.RegisterAll(s)

	handle, err := s.Start()
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch, _ := cmd.Flags().GetBool("watch-config"); watch {
		go func() {
			err := config.Watch(logging.WithLogger(ctx, &logger), cfg.ConfigFilePath(), func(c *config.Config) {
				zerolog.SetGlobalLevel(logging.ParseLevel(c.LogLevel))
				audit.SetEnabled(c.AuditEnabled)
			})
			if err != nil {
				logger.Warn().Err(err).Msg("config watch stopped")
			}
		}()
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- handle.Wait() }()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	case err := <-serveErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := handle.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return handle.Wait()
}
