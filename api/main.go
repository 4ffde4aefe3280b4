package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rogerio-castellano/inventory-dashboard/internal/config"
	"github.com/rogerio-castellano/inventory-dashboard/internal/db"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	configFile string
	memory     bool
	verbose    bool

	v      = config.New()
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Inventory dashboard service",
	Long: `Serves joined product/category snapshots and dashboard metrics over HTTP.

Run without a subcommand to start the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolVar(&memory, "memory", false, "keep data in process memory instead of Postgres")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd, reportCmd, migrateCmd, userCmd)
}

func loadConfig() (config.Config, error) {
	return config.Load(v, configFile)
}

// stores bundles the repositories a command works against.
type stores struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
	users      repo.UserRepository
	close      func()
}

func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	if memory {
		categories := repo.NewInMemoryCategoryRepository()
		return &stores{
			products:   repo.NewInMemoryProductRepository(categories),
			categories: categories,
			users:      repo.NewInMemoryUserRepository(),
			close:      func() {},
		}, nil
	}

	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	return &stores{
		products:   repo.NewPostgresProductRepository(database),
		categories: repo.NewPostgresCategoryRepository(database),
		users:      repo.NewPostgresUserRepository(database),
		close:      func() { database.Close() },
	}, nil
}

// @title Inventory Dashboard API
// @version 1.0
// @description Joined product/category snapshots and dashboard metrics for a small inventory.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
