package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/mechapp/internal/audit"
	"github.com/BruksfildServices01/mechapp/internal/config"
	dbpkg "github.com/BruksfildServices01/mechapp/internal/db"
	"github.com/BruksfildServices01/mechapp/internal/infra/session"
	"github.com/BruksfildServices01/mechapp/internal/infra/storage"
	"github.com/BruksfildServices01/mechapp/internal/logger"
	"github.com/BruksfildServices01/mechapp/internal/metrics"
	"github.com/BruksfildServices01/mechapp/internal/payments"
	"github.com/BruksfildServices01/mechapp/internal/routes"
	"github.com/BruksfildServices01/mechapp/internal/timezone"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer log.Sync()

	if !timezone.SetDefault(cfg.Timezone) {
		log.Warn("invalid APP_TIMEZONE, using default",
			zap.String("timezone", cfg.Timezone),
			zap.String("default", timezone.Name()),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}

	pool, err := dbpkg.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal("database pool", zap.Error(err))
	}
	defer pool.Close()

	rdb := session.NewRedisClient(cfg)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	var provider payments.Provider
	if p, err := payments.NewProvider(cfg); err != nil {
		log.Warn("commission payments disabled", zap.Error(err))
	} else {
		provider = p
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Pool:     pool,
		Redis:    rdb,
		Storage:  storage.NewS3Store(cfg),
		Payments: provider,
		Audit:    auditDispatcher,
		Registry: registry,
		Metrics:  metrics.New(registry, "mechapp"),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}

	auditDispatcher.Close()
}
