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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"licensing/internal/fees"
	jwttoken "licensing/internal/jwt_token"
	"licensing/internal/platform/config"
	"licensing/internal/platform/httpserver"
	"licensing/internal/platform/logger"
	"licensing/internal/platform/metrics"
	"licensing/internal/platform/redis"
	"licensing/internal/server"
	"licensing/internal/store/memory"
	"licensing/internal/store/postgres"
	httptransport "licensing/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewWithRegistry(registry)
	checks := map[string]httptransport.HealthCheck{}

	store, closeStore, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeStore()
	if pg, ok := store.(*postgres.Store); ok {
		checks["database"] = pg.Health
	}

	var source fees.Source = store
	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if rdb != nil {
		defer rdb.Close()
		source = fees.NewRedisCache(store, rdb, fees.WithTTL(cfg.Redis.FeeCacheTTL), fees.WithCacheMetrics(m))
		checks["redis"] = rdb.Health
		log.InfoContext(ctx, "fee table cache enabled", "ttl", cfg.Redis.FeeCacheTTL.String())
	}

	services := server.NewServices(store, fees.NewTable(source), cfg.Licensing, m)
	tokens := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:    log,
		Metrics:   m,
		Gatherer:  registry,
		Validator: jwttoken.NewJWTServiceAdapter(tokens),
		Handlers:  services.Handlers(log),
		Health:    checks,
	})
	srv := httpserver.New(cfg.Server, router)

	errc := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "starting licensing service",
			"addr", cfg.Server.Addr,
			"store", cfg.Database.Store,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Database, log *slog.Logger) (server.Store, func(), error) {
	if cfg.Store == config.StoreMemory {
		log.Warn("using in-memory store; data is lost on restart")
		return memory.New(memory.WithTxTimeout(cfg.TxTimeout)), func() {}, nil
	}
	db, err := postgres.Open(ctx, cfg.Driver, cfg.URL)
	if err != nil {
		return nil, nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	store := postgres.New(db, postgres.WithTxTimeout(cfg.TxTimeout))
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return store, func() { _ = db.Close() }, nil
}
