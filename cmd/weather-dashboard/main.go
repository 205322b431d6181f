package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/cli"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/naming"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	kv, err := store.Open(cfg.StorePath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}

	// Shared HTTP client for outbound provider calls. A zero timeout waits
	// indefinitely.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	openWeather := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL)
	nominatim := providers.NewNominatimProvider(cfg.NominatimBaseURL, cfg.UserAgent, cfg.HTTPTimeout)

	var extra []naming.Strategy
	if cfg.GoogleAPIKey != "" {
		extra = append(extra, naming.AddressComponents{
			Source: "google",
			Lookup: providers.NewGoogleReverseProvider(cfg.GoogleAPIKey),
		})
	}
	resolver := naming.DefaultChain(nominatim, openWeather, extra...)
	log.Printf("INFO: naming strategies: %v", resolver.Strategies())

	var online weather.OnlineChecker = weather.AlwaysOnline
	if cfg.OnlineProbeAddr != "" {
		online = providers.TCPProbe{Addr: cfg.OnlineProbeAddr, Timeout: 2 * time.Second}
	}

	service := weather.NewService(weather.LoadState(kv), weather.Deps{
		Current:            openWeather,
		Forecast:           openWeather,
		Geocoder:           openWeather,
		Namer:              resolver,
		Locator:            providers.NewIPLocator(cfg.IPLocateURL, cfg.UserAgent),
		Online:             online,
		AccuracyWarnMeters: cfg.AccuracyWarnMeters,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.New(service, func(ctx context.Context) error {
		return serve(ctx, cfg, service)
	})
	err = root.ExecuteContext(ctx)

	// Let detached forecast fetches settle before the store closes.
	service.Wait()
	if cerr := kv.Close(); cerr != nil {
		log.Printf("WARN: closing store: %v", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *config.AppConfig, service *weather.Service) error {
	// Scheduler that periodically refreshes the displayed location.
	sched := scheduler.New(cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	// Ask for the location once on startup, as the dashboard does on load.
	go func() {
		locateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if res, err := service.LocateAndFetch(locateCtx, nil); err != nil {
			log.Printf("WARN: startup locate failed: %v", err)
		} else {
			log.Printf("INFO: startup location %s", res.Record.City)
		}
	}()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	return nil
}
