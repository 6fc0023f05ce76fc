package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string     `envconfig:"APP_NAME" default:"Salesdash"`
		Port     int        `envconfig:"PORT" default:"8080"`
		LogLevel slog.Level `envconfig:"LOG_LEVEL" default:"INFO"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"salesdash"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Auth struct {
		// Empty disables the bearer check on seeding.
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}

	Seed struct {
		URL     string `envconfig:"SEED_URL"`
		OnStart bool   `envconfig:"SEED_ON_START" default:"false"`
	}

	Cache struct {
		TTL     time.Duration `envconfig:"CACHE_TTL" default:"5m"`
		MaxSize int           `envconfig:"CACHE_MAX_SIZE" default:"24"`
	}

	Dashboard struct {
		APIURL         string        `envconfig:"DASHBOARD_API_URL" default:"http://localhost:8080/api/v1"`
		PageSize       int           `envconfig:"DASHBOARD_PAGE_SIZE" default:"10"`
		DefaultMonth   int           `envconfig:"DASHBOARD_DEFAULT_MONTH" default:"3"`
		SearchDebounce time.Duration `envconfig:"DASHBOARD_SEARCH_DEBOUNCE" default:"300ms"`
		FetchTimeout   time.Duration `envconfig:"DASHBOARD_FETCH_TIMEOUT" default:"10s"`
		Locale         string        `envconfig:"DASHBOARD_LOCALE"`
		TimeZone       string        `envconfig:"DASHBOARD_TIMEZONE" default:"Local"`
		LogFile        string        `envconfig:"DASHBOARD_LOG_FILE"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Location resolves the dashboard time zone used for rendering dates of sale.
func (c *Config) Location() (*time.Location, error) {
	if c.Dashboard.TimeZone == "" || strings.EqualFold(c.Dashboard.TimeZone, "Local") {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.Dashboard.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", c.Dashboard.TimeZone, err)
	}

	return loc, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.App.Port < 1 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d: must be between 1 and 65535", c.App.Port))
	}

	if c.Dashboard.DefaultMonth < 1 || c.Dashboard.DefaultMonth > 12 {
		errs = append(errs, fmt.Errorf("invalid default month %d: must be between 1 and 12", c.Dashboard.DefaultMonth))
	}

	if c.Dashboard.PageSize < 1 || c.Dashboard.PageSize > 100 {
		errs = append(errs, fmt.Errorf("invalid page size %d: must be between 1 and 100", c.Dashboard.PageSize))
	}

	if c.Dashboard.SearchDebounce < 0 {
		errs = append(errs, fmt.Errorf("invalid search debounce %s: must not be negative", c.Dashboard.SearchDebounce))
	}

	if c.Cache.MaxSize < 1 {
		errs = append(errs, fmt.Errorf("invalid cache size %d: must be at least 1", c.Cache.MaxSize))
	}

	if c.Seed.OnStart && c.Seed.URL == "" {
		errs = append(errs, errors.New("SEED_ON_START requires SEED_URL"))
	}

	return errors.Join(errs...)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
