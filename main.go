package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/foxvote/cliparse"
	"github.com/danielhkuo/foxvote/db"
	"github.com/danielhkuo/foxvote/foxsource"
	"github.com/danielhkuo/foxvote/middleware"
	"github.com/danielhkuo/foxvote/ratelimit"
	"github.com/danielhkuo/foxvote/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Rate limiting: shared through Redis when configured
	var limiter ratelimit.Limiter
	if cfg.RedisURL != "" {
		client, err := ratelimit.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		limiter = ratelimit.NewRedis(client, cfg.RateLimitRequests, cfg.RateLimitWindow)
		slog.Info("Rate limiting via redis", "requests", cfg.RateLimitRequests, "window", cfg.RateLimitWindow)
	} else {
		mem := ratelimit.NewMemory(cfg.RateLimitRequests, cfg.RateLimitWindow)
		go mem.RunSweeper(ctx)
		limiter = mem
		slog.Info("Rate limiting in memory", "requests", cfg.RateLimitRequests, "window", cfg.RateLimitWindow)
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, foxsource.NewClient(cfg), limiter)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(cfg.CORSOrigin)(middleware.Recover(cfg.IsDevelopment())(mux)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "env", cfg.Environment)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
