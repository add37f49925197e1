package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/jask/packeta/internal/config"
	"github.com/jask/packeta/internal/database"
	"github.com/jask/packeta/internal/database/repository"
	"github.com/jask/packeta/internal/httpapi"
	"github.com/jask/packeta/internal/logger"
	"github.com/jask/packeta/internal/service"
	"github.com/jask/packeta/internal/validator"
)

func main() {
	reset := flag.Bool("reset", false, "wipe cart selections and reseed pickup points before serving")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Log.Env, os.Stdout)
	if !strings.EqualFold(cfg.Log.Env, "development") {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Info("starting dev server", "env", cfg.Log.Env, "addr", cfg.Server.Addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(filepath.Dir(cfg.Server.DatabasePath), 0o755); err != nil {
		log.Error("failed to create database directory", "error", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(cfg.Server.DatabasePath, cfg.Server.Migrations); err != nil {
		log.Error("failed to run database migrations", "error", err)
		os.Exit(1)
	}
	db, err := database.Open(cfg.Server.DatabasePath)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if *reset {
		if err := (&service.MaintenanceService{DB: db}).Reset(ctx); err != nil {
			log.Error("failed to reset database", "error", err)
			os.Exit(1)
		}
		log.Info("database reset")
	}
	if err := database.SeedPickupPoints(ctx, db); err != nil {
		log.Error("failed to seed pickup points", "error", err)
		os.Exit(1)
	}

	pickupSvc := &service.PickupService{
		Points:     repository.NewPickupPointRepo(db),
		Selections: repository.NewCartSelectionRepo(db),
		Log:        log,
	}
	engine := httpapi.New(httpapi.Deps{
		Pickup:      pickupSvc,
		Health:      db,
		Validator:   validator.New(),
		Logger:      log,
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimit:   cfg.Server.RateLimit,
		RateBurst:   cfg.Server.RateBurst,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
