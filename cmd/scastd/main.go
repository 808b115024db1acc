// The scastd command implements the slidecast player daemon
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/slidecast/slidecast/internal/scastd/assetcache"
	"github.com/slidecast/slidecast/internal/scastd/config"
	"github.com/slidecast/slidecast/internal/scastd/feed"
	scasthttp "github.com/slidecast/slidecast/internal/scastd/http"
	"github.com/slidecast/slidecast/internal/scastd/identity"
	"github.com/slidecast/slidecast/internal/scastd/pairing"
	"github.com/slidecast/slidecast/internal/scastd/ratelimit"
	"github.com/slidecast/slidecast/internal/scastd/scheduler"
	"github.com/slidecast/slidecast/internal/scastd/store/sqlite"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	zlogger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Remote.BaseURL == "" {
		logger.Error("remote base URL is required (remote.baseURL or SCAST_REMOTE_URL)")
		os.Exit(1)
	}

	db, err := sqlite.NewFileStore(cfg.Storage.Path)
	if err != nil {
		logger.Error("failed to open state store", "error", err, "path", cfg.Storage.Path)
		os.Exit(1)
	}
	defer db.Close()

	assets, err := assetcache.New(cfg.Cache.Dir)
	if err != nil {
		logger.Error("failed to open asset cache", "error", err, "dir", cfg.Cache.Dir)
		os.Exit(1)
	}

	ids := identity.NewManager(db)
	pairer := pairing.NewService(cfg.Remote.BaseURL, ids)
	feedClient := feed.NewClient(cfg.Remote.BaseURL, ids, logger,
		feed.WithHTTPClient(&http.Client{Timeout: cfg.Remote.RequestTimeout}),
		feed.WithAssets(assets),
		feed.WithSnapshotStore(db),
	)

	limiter := ratelimit.NewService(ratelimit.NewMemoryStore(), logger)
	limiter.RegisterLimit("pair", ratelimit.Limit{
		Rate:   cfg.Player.PairRateLimit,
		Period: cfg.Player.PairRatePeriod,
	})
	pairLimiter := ratelimit.Middleware(limiter, logger, "pair")

	hub := scasthttp.NewHub(zlogger)
	sched := scheduler.New(scheduler.Config{
		PollInterval: cfg.Remote.PollInterval,
		FadeDuration: cfg.Player.FadeDuration,
	}, feedClient, hub, logger)
	handler := scasthttp.NewHandler(sched, pairer, ids, pairLimiter, hub, zlogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handler.Run(ctx)
	go func() {
		if err := sched.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("scheduler stopped", "error", err)
		}
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("starting control API",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	<-shutdown
	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("player stopped")
}
