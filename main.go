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
	"github.com/gogotex/gogotex/backend/go-simplifier/handlers"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/app"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/config"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/simplification/handler"
	"github.com/gogotex/gogotex/backend/go-simplifier/pkg/logger"
	"github.com/gogotex/gogotex/backend/go-simplifier/pkg/metrics"
	"github.com/gogotex/gogotex/backend/go-simplifier/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: model=%s accelerated=%v mongo=%v redis=%v minio=%v",
		cfg.Model.Name, cfg.Model.AcceleratedURL != "", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// model is bound once here and shared by every request
	deps, err := app.Wire(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to load model: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), gin.Logger(), gin.Recovery())

	handlers.RegisterHealth(r, startTime, deps.Checks()...)
	handlers.RegisterSwagger(r)
	handler.RegisterSimplifyRoutes(r, deps.Service())

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("simplifier listening on %s (device=%s)", srv.Addr, deps.Runtime.Device())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown: %v", err)
	}
	deps.Close(shutdownCtx)
}
