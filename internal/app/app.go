package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nvlko/daybook/internal/api"
	"github.com/nvlko/daybook/internal/catalogue"
	"github.com/nvlko/daybook/internal/config"
	"github.com/nvlko/daybook/internal/dates"
	"github.com/nvlko/daybook/internal/diary"
	"github.com/nvlko/daybook/internal/prefs"
	"github.com/nvlko/daybook/internal/settings"
	"github.com/nvlko/daybook/internal/stats"
	"github.com/nvlko/daybook/internal/ui"
)

// Options configure the Daybook application.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/daybook/prefs.toml
	RefreshEvery int    // seconds between stats refreshes; zero uses default
}

// Run boots the Daybook TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Route the standard logger to a rotating file so background
	// failures are diagnosable without scribbling over the TUI.
	log.SetOutput(&lumberjack.Logger{
		Filename:   cfg.DebugLogPath(),
		MaxSize:    5, // megabytes
		MaxBackups: 2,
	})

	userPrefs := prefs.Open(opts.PrefsPath)

	client, err := api.NewClient(cfg.APIBase, userPrefs)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	aggregator := stats.New(client)
	foods := catalogue.NewStore(client)
	days := diary.NewStore(ctx, client, foods, aggregator, diary.Options{
		EdgeThresholdDays: cfg.EdgeThresholdDays,
		FetchOffsetDays:   cfg.FetchOffsetDays,
	})

	saveDelay := settings.DefaultSaveDelay
	if cfg.SaveDelayMS > 0 {
		saveDelay = time.Duration(cfg.SaveDelayMS) * time.Millisecond
	}
	prefsStore := settings.NewStore(ctx, client, userPrefs, saveDelay)

	today := dates.Today()

	// Hydrate the stores before the UI starts. Settings and catalogue
	// block because the first frame depends on them; a failure degrades
	// to cached or empty data rather than aborting.
	if err := prefsStore.Hydrate(ctx); err != nil {
		log.Printf("settings hydrate failed: %v", err)
	}
	if err := foods.Load(ctx); err != nil {
		log.Printf("catalogue load failed: %v", err)
	}
	if err := days.LoadWindow(ctx, today); err != nil {
		log.Printf("initial diary load failed: %v", err)
	}
	if err := aggregator.Refresh(ctx, today); err != nil {
		log.Printf("stats refresh failed: %v", err)
	}

	interval := defaultRefreshInterval
	if opts.RefreshEvery > 0 {
		interval = time.Duration(opts.RefreshEvery) * time.Second
	}
	StartRefresher(ctx, aggregator, interval)

	return ui.Run(ui.Options{
		Context:   ctx,
		Diary:     days,
		Catalogue: foods,
		Settings:  prefsStore,
		Stats:     aggregator,
	})
}
