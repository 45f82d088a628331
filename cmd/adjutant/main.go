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

	"github.com/mas6446/ai-adjutant-system/internal/collector"
	"github.com/mas6446/ai-adjutant-system/internal/config"
	"github.com/mas6446/ai-adjutant-system/internal/macro"
	"github.com/mas6446/ai-adjutant-system/internal/notifier"
	"github.com/mas6446/ai-adjutant-system/internal/recorder"
	"github.com/mas6446/ai-adjutant-system/internal/scheduler"
	"github.com/mas6446/ai-adjutant-system/internal/server"
	"github.com/mas6446/ai-adjutant-system/internal/sizing"
	"github.com/mas6446/ai-adjutant-system/internal/strategy"
	"github.com/mas6446/ai-adjutant-system/internal/util"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		bootLog := util.NewLogger("info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := util.NewLogger(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	var fred *macro.FredClient
	if cfg.Fred.APIKey != "" {
		fred = macro.NewFredClient(cfg.Fred.APIKey, cfg.Proxy)
	}
	col := &macro.Collector{
		Market:   fetcher,
		Fred:     fred,
		Climate:  macro.NewClimateScraper(cfg.Proxy),
		Flow:     macro.NewFlowClient(cfg.Proxy),
		Version:  macro.SetVersion(cfg.Macro.SetVersion),
		Defaults: cfg.Macro.Defaults,
	}
	cache := macro.NewCache(col)

	engine := strategy.NewEngine(fetcher, strategy.Config{
		VetoCutoff: cfg.Strategy.VetoCutoff,
		MinBars:    cfg.Strategy.MinBars,
		FetchDays:  cfg.Strategy.FetchDays,
	})

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("sqlite recorder unavailable, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(cache, log)
	if err := sched.Register(ctx, cfg.Macro.RefreshCron); err != nil {
		log.Fatal().Err(err).Msg("register macro refresh")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(engine, cache, rec, tn, server.SizingDefaults{
		Capital: cfg.Sizing.Capital,
		RiskPct: cfg.Sizing.RiskPct,
		Policy: sizing.LotPolicy{
			RoundLotSize:     cfg.Sizing.RoundLotSize,
			OddLotPriceFloor: cfg.Sizing.OddLotThreshold,
		},
	}, log)

	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("serve")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	cancel()
	log.Info().Msg("stopped")
}
