package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/muhammadolammi/atcampus/internal/config"
	"github.com/muhammadolammi/atcampus/internal/database"
)

var (
	verbose bool

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "atcampus",
	Short: "AtCampus API server and application screening worker",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateServer(); err != nil {
			return err
		}
		return runServer(cmd.Context(), cfg, logger)
	},
}

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the resume screening worker pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateWorker(); err != nil {
			return err
		}
		return runWorker(cmd.Context(), cfg, logger)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DBURL == "" {
			return fmt.Errorf("empty DB_URL in environment")
		}
		db, err := openDB(cmd.Context(), cfg.DBURL)
		if err != nil {
			return err
		}
		defer db.Close()
		applied, err := database.Migrate(cmd.Context(), db)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", zap.Strings("files", applied))
		return nil
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run the HTTP API and the screening worker together",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateServer(); err != nil {
			return err
		}
		if err := cfg.ValidateWorker(); err != nil {
			return err
		}
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error { return runServer(ctx, cfg, logger) })
		g.Go(func() error { return runWorker(ctx, cfg, logger) })
		return g.Wait()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd, workerCmd, migrateCmd, allCmd)
}

func openDB(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("error opening db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to db: %w", err)
	}
	return db, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
