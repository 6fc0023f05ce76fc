package main

import (
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/salesdash/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/salesdash/internal/apiclient"
	"github.com/MrJamesThe3rd/salesdash/internal/config"
	"github.com/MrJamesThe3rd/salesdash/internal/dashboard"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		slog.Error("failed to open log file", "path", cfg.Dashboard.LogFile, "error", err)
		os.Exit(1)
	}
	defer closeLog()

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("invalid time zone", "error", err)
		os.Exit(1)
	}

	model := view.NewDashboardModel(
		apiclient.New(cfg.Dashboard.APIURL, cfg.Dashboard.FetchTimeout),
		view.DashboardOptions{
			PerPage:      cfg.Dashboard.PageSize,
			Month:        cfg.Dashboard.DefaultMonth,
			Debounce:     cfg.Dashboard.SearchDebounce,
			FetchTimeout: cfg.Dashboard.FetchTimeout,
			Locale:       dashboard.LocaleFromPOSIX(localeName(cfg), loc),
		},
	)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

// setupLogging keeps slog output off the terminal the TUI draws on.
func setupLogging(cfg *config.Config) (func(), error) {
	if cfg.Dashboard.LogFile == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}

	f, err := os.OpenFile(cfg.Dashboard.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.App.LogLevel})))

	return func() { _ = f.Close() }, nil
}

func localeName(cfg *config.Config) string {
	for _, v := range []string{cfg.Dashboard.Locale, os.Getenv("LC_ALL"), os.Getenv("LC_TIME"), os.Getenv("LANG")} {
		if v != "" {
			return v
		}
	}

	return ""
}
