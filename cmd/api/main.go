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

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/salesdash/internal/config"
	"github.com/MrJamesThe3rd/salesdash/internal/database"
	"github.com/MrJamesThe3rd/salesdash/internal/export"
	salesHttp "github.com/MrJamesThe3rd/salesdash/internal/http"
	exportHandler "github.com/MrJamesThe3rd/salesdash/internal/http/export"
	reportHandler "github.com/MrJamesThe3rd/salesdash/internal/http/report"
	seedHandler "github.com/MrJamesThe3rd/salesdash/internal/http/seed"
	"github.com/MrJamesThe3rd/salesdash/internal/http/web"
	"github.com/MrJamesThe3rd/salesdash/internal/importer"
	"github.com/MrJamesThe3rd/salesdash/internal/product"
	productStore "github.com/MrJamesThe3rd/salesdash/internal/product/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.App.LogLevel})))

	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("invalid time zone", "error", err)
		os.Exit(1)
	}

	var (
		productService = product.NewService(productStore.New(db), cfg.Cache.MaxSize, cfg.Cache.TTL)
		importService  = importer.NewService(cfg.Server.Timeout)
	)

	if cfg.Seed.OnStart {
		if err := seedFromFeed(context.Background(), importService, productService, cfg.Seed.URL); err != nil {
			slog.Error("failed to seed on start", "url", cfg.Seed.URL, "error", err)
			os.Exit(1)
		}
	}

	dashboardH, err := web.NewHandler(productService, cfg.Dashboard.PageSize, cfg.Dashboard.DefaultMonth, loc)
	if err != nil {
		slog.Error("failed to load dashboard templates", "error", err)
		os.Exit(1)
	}

	var (
		reportH = reportHandler.NewHandler(productService)
		seedH   = seedHandler.NewHandler(importService, productService, cfg.Seed.URL)
		exportH = exportHandler.NewHandler(export.NewService(productService))
	)

	router := salesHttp.New(salesHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
		JWTSecret:      cfg.Auth.JWTSecret,
	}, db, reportH, seedH, exportH, dashboardH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "addr", srv.Addr, "app", cfg.App.Name)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func seedFromFeed(ctx context.Context, imp *importer.Service, svc *product.Service, url string) error {
	params, err := imp.Fetch(ctx, url)
	if err != nil {
		return err
	}

	result, err := svc.Import(ctx, params)
	if err != nil {
		return err
	}

	slog.Info("seeded transactions", "inserted", result.Inserted, "updated", result.Updated)

	return nil
}
