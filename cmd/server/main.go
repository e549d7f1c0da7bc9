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
	"time"

	"vegetable-orders/internal/config"
	"vegetable-orders/internal/database"
	"vegetable-orders/internal/handlers"
	"vegetable-orders/internal/logger"
	"vegetable-orders/internal/server"
	"vegetable-orders/internal/service"
	"vegetable-orders/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	images, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Error("failed to prepare upload dir", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	h := &handlers.Handler{
		Catalog:        service.NewCatalogService(db, images, log),
		Orders:         service.NewOrderService(db, log),
		Activity:       service.NewActivityService(db),
		Log:            log,
		MaxUploadBytes: int64(cfg.MaxUploadMB) << 20,
	}

	r, err := server.NewRouter(cfg, h)
	if err != nil {
		log.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", "address", addr, "db_driver", cfg.DBDriver, "upload_dir", cfg.UploadDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info("server stopped")
}
