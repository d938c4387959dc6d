package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pavansydney/moneysavyy/internal/cache"
	"github.com/pavansydney/moneysavyy/internal/collector"
	"github.com/pavansydney/moneysavyy/internal/config"
	"github.com/pavansydney/moneysavyy/internal/news"
	"github.com/pavansydney/moneysavyy/internal/quote"
	"github.com/pavansydney/moneysavyy/internal/recorder"
	"github.com/pavansydney/moneysavyy/internal/registry"
	"github.com/pavansydney/moneysavyy/internal/scheduler"
	"github.com/pavansydney/moneysavyy/internal/server"
)

func main() {
	// .env is optional; real deployments set environment directly
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	log.Info("moneysavyy starting...")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	// Cache: Redis when configured, in-memory otherwise. A Redis that is
	// down at boot degrades to memory with a warning.
	var store cache.Store
	var mem *cache.MemoryStore
	if cfg.Cache.RedisAddr != "" {
		rs, err := cache.NewRedisStore(cfg.Cache.RedisAddr)
		if err != nil {
			log.Warnf("redis unavailable at %s, falling back to memory cache: %v", cfg.Cache.RedisAddr, err)
		} else {
			store = rs
			log.Infof("cache: redis at %s", cfg.Cache.RedisAddr)
		}
	}
	if store == nil {
		mem = cache.NewMemoryStore()
		store = mem
		log.Info("cache: in-memory")
	}
	defer store.Close()

	// Acquisition chain: yahoo, NSE, synthetic, static, in that order.
	limiter := quote.NewRateLimiter(cfg.DataSource.RatePerMinute, time.Minute)
	synthetic := quote.NewSyntheticSource(cfg.DataSource.SyntheticSeed)

	chain := quote.NewChain(store, cfg.Cache.TTL, limiter, log)
	chain.AddTier(quote.NewYahooSource(cfg.DataSource.YahooBaseURL, cfg.Proxy, log), true, true)
	chain.AddTier(quote.NewNSESource(cfg.DataSource.NSEBaseURL, synthetic, log), true, true)
	chain.AddTier(synthetic, false, false)
	chain.AddTier(quote.NewStaticSource(), false, false)

	col := collector.New(chain, log)
	reg := registry.New()

	var np server.NewsProvider
	if cfg.News.Enabled {
		np = news.NewScraper(cfg.News.BaseURL, log)
	}

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warnf("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, chain, reg, mem, rec, cfg.Database.Retention, log)
	if err := sched.RegisterAll(cfg.Schedule.PrewarmCron, cfg.Schedule.CleanupCron, cfg.Schedule.TrimCron); err != nil {
		log.Fatalf("register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	h := server.NewHandler(reg, col, np, rec, log)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.NewRouter(h, log),
	}

	go func() {
		log.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http shutdown: %v", err)
	}
	cancel()
	log.Info("moneysavyy stopped")
}
