package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/AbdulWasayUl/go-country-explorer/internal/channels"
	"github.com/AbdulWasayUl/go-country-explorer/internal/config"
	"github.com/AbdulWasayUl/go-country-explorer/internal/logger"
	"github.com/AbdulWasayUl/go-country-explorer/internal/scheduler"
	"github.com/AbdulWasayUl/go-country-explorer/internal/workpool"
	"github.com/AbdulWasayUl/go-country-explorer/services/details"
)

func main() {
	logger.Init()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.OpenWeatherAPIKey == "" {
		logger.Warn("OPENWEATHER_API_KEY is not set; weather will render as an error.")
	}
	if cfg.ExchangeRateAPIKey == "" {
		logger.Warn("EXCHANGE_RATE_API_KEY is not set; currency will render as an error.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	chans := channels.New()

	wp := workpool.New(chans, cfg.WorkerCount)
	wp.Start(ctx)

	explorer := details.NewExplorer(cfg, os.Stdout)

	sch, err := scheduler.New(cfg.CountryCodes)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}

	logger.Info("Opening %d country views.", len(cfg.CountryCodes))
	sch.RunImmediateJob(ctx, chans, explorer)

	if cfg.RefreshInterval <= 0 {
		wp.Stop()
		logger.Info("No refresh interval configured. Done.")
		return
	}

	if err := sch.StartJob(ctx, cfg.RefreshInterval, chans, explorer); err != nil {
		log.Fatalf("Failed to start refresh job: %v", err)
	}
	logger.Info("Refreshing every %s. Press Ctrl+C to stop.", cfg.RefreshInterval)

	<-quit
	logger.Info("Received interrupt signal. Shutting down gracefully...")

	cancel()
	sch.Stop()
	wp.Stop()

	logger.Info("Waiting for pending views to finish...")
	chans.WG.Wait()
	logger.Info("All views finished. Shutdown complete.")
}
