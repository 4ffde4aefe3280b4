package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/inventory-dashboard/internal/auth"
	"github.com/rogerio-castellano/inventory-dashboard/internal/config"
	"github.com/rogerio-castellano/inventory-dashboard/internal/eventlog"
	api "github.com/rogerio-castellano/inventory-dashboard/internal/http"
	"github.com/rogerio-castellano/inventory-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-dashboard/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"github.com/rogerio-castellano/inventory-dashboard/internal/redissvc"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/rogerio-castellano/inventory-dashboard/internal/snapshot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	adminUsername          = "admin"
	visitorCleanupInterval = time.Minute
	shutdownTimeout        = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides http.addr)")
	_ = v.BindPFlag("http.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret must be set to serve")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	if cfg.Auth.AdminPassword != "" {
		if err := ensureAdmin(ctx, st.users, cfg.Auth.AdminPassword); err != nil {
			return err
		}
	}

	cache, events, closeRedis, err := openRedis(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRedis()

	ttl := snapshot.ClampTTL(cfg.Snapshot.TTL)
	if ttl != cfg.Snapshot.TTL {
		logger.Info("snapshot ttl clamped", zap.Duration("configured", cfg.Snapshot.TTL), zap.Duration("ttl", ttl))
	}
	source := snapshot.NewCachedSource(snapshot.NewRepoSource(st.products, st.categories), cache, ttl, logger)

	server := handlers.NewServer(handlers.Deps{
		Products:          st.products,
		Categories:        st.categories,
		Users:             st.users,
		Source:            source,
		Events:            events,
		Tokens:            auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		LowStockThreshold: cfg.Inventory.LowStockThreshold,
		Logger:            logger,
	})

	limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.StartVisitorCleanupLoop(ctx, visitorCleanupInterval)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.NewRouter(server, api.RouterOptions{Limiter: limiter, Logger: logger}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", cfg.HTTP.Addr), zap.Bool("memory", memory))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openRedis picks the snapshot cache and event log backends. Without a
// configured address both stay in process.
func openRedis(ctx context.Context, cfg config.Config) (snapshot.Cache, eventlog.Log, func(), error) {
	if cfg.Redis.Addr == "" {
		return snapshot.NewMemoryCache(), eventlog.NewMemoryLog(cfg.EventLog.MaxEntries), func() {}, nil
	}

	rs, err := redissvc.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Prefix)
	if err != nil {
		return nil, nil, nil, err
	}
	cache := snapshot.NewRedisCache(rs.Rdb(), rs.Key(""))
	events := eventlog.NewRedisLog(rs.Rdb(), rs.Key("events"), cfg.EventLog.MaxEntries)
	return cache, events, func() { rs.Close() }, nil
}

func ensureAdmin(ctx context.Context, users repo.UserRepository, password string) error {
	_, err := users.GetByUsername(ctx, adminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrUserNotFound) {
		return fmt.Errorf("could not look up admin: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := users.CreateUser(ctx, models.User{Username: adminUsername, PasswordHash: hash}); err != nil {
		return fmt.Errorf("could not create admin: %w", err)
	}
	logger.Info("admin user created")
	return nil
}
