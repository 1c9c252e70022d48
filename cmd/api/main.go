package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/cache"
	"github.com/BruksfildServices01/care-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/care-scheduler/internal/db"
	"github.com/BruksfildServices01/care-scheduler/internal/logger"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
	"github.com/BruksfildServices01/care-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()

	log, err := logger.New(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	rules, err := config.LoadScheduling(cfg.ScheduleFile)
	if err != nil {
		log.Fatal("invalid scheduling configuration", zap.Error(err))
	}

	if cfg.AdapterToken == "" {
		log.Warn("ADAPTER_TOKEN is empty, chat adapter routes will refuse every call")
	}

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Warn("redis unavailable, availability cache disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	shutdown := routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Redis:  rdb,
		Config: cfg,
		Rules:  rules,
		Log:    log,
	})
	defer shutdown()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("timezone", cfg.Timezone))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
