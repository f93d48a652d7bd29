package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	Environment  string

	CookieSecret string
	CookieSecure bool
	IPHashSalt   string

	FoxAPIURL      string
	FoxImageHost   string
	FoxFallbackURL string
	FetchTimeout   time.Duration
	FetchRounds    int

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RedisURL          string

	CORSOrigin string
}

// IsDevelopment reports whether internal error detail may be shown to clients
func (c Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// ParseFlags validates flags and fills the rest from the environment.
// A .env file in the working directory is loaded first if present; real
// environment variables win over it.
func ParseFlags(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	var cfg Config

	fs := flag.NewFlagSet("foxvote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.Environment, "env", "", "Environment (development or production)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.CookieSecret, "cookie-secret", "", "Voter cookie signing secret (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

	fs.StringVar(&cfg.FoxAPIURL, "fox-api", "", "Random fox API endpoint")
	fs.StringVar(&cfg.RedisURL, "redis", "", "Redis URL for shared rate limiting")
	fs.StringVar(&cfg.CORSOrigin, "cors-origin", "", "Frontend origin allowed to make credentialed requests")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", 3001)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envString("DATABASE_TYPE", "sqlite")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.Environment == "" {
		cfg.Environment = envString("APP_ENV", EnvProduction)
	}

	// Secrets - MUST be provided
	if cfg.CookieSecret == "" {
		cfg.CookieSecret = os.Getenv("COOKIE_SECRET")
	}
	if cfg.CookieSecret == "" {
		return Config{}, errors.New("COOKIE_SECRET required")
	}
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = envString("IP_HASH_SALT", cfg.CookieSecret)
	}
	cfg.CookieSecure = os.Getenv("COOKIE_SECURE") == "true"

	if cfg.FoxAPIURL == "" {
		cfg.FoxAPIURL = envString("FOX_API_URL", "https://randomfox.ca/floof/")
	}
	cfg.FoxImageHost = envString("FOX_IMAGE_HOST", "randomfox.ca")
	cfg.FoxFallbackURL = envString("FOX_FALLBACK_URL", "https://randomfox.ca/images/fallback.jpg")

	var err error
	if cfg.FetchTimeout, err = envPositiveDuration("FOX_FETCH_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.FetchRounds, err = envInt("FOX_FETCH_ROUNDS", 3); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRequests, err = envInt("RATE_LIMIT_REQUESTS", 100); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitWindow, err = envPositiveDuration("RATE_LIMIT_WINDOW", 15*time.Minute); err != nil {
		return Config{}, err
	}

	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}

	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = envString("CORS_ORIGIN", "http://localhost:3000")
	}

	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return d, nil
}

// envPositiveDuration is envDuration for settings that feed timers and
// tickers, which reject zero and negative values.
func envPositiveDuration(key string, def time.Duration) (time.Duration, error) {
	d, err := envDuration(key, def)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return d, nil
}

// ToolConfig is the subset of Config the command line tools need
type ToolConfig struct {
	DatabaseURL  string
	DatabaseType string
}

// ParseToolFlags parses -d and -t for the cmd/ tools, falling back to
// DATABASE_URL and DATABASE_TYPE.
func ParseToolFlags(name string, args []string) (ToolConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	var cfg ToolConfig

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	if err := fs.Parse(args); err != nil {
		return ToolConfig{}, err
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return ToolConfig{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envString("DATABASE_TYPE", "sqlite")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return ToolConfig{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	return cfg, nil
}
