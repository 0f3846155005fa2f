package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"loadmaster/internal/app"
	"loadmaster/internal/backend"
	"loadmaster/internal/balance"
	"loadmaster/internal/config"
	"loadmaster/internal/generation"
	"loadmaster/internal/history"
	"loadmaster/internal/loadsheet"
	"loadmaster/internal/sheets"
	"loadmaster/internal/telemetry"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	planFile := flag.String("plan", "", "Path to the flight plan JSON file")
	sheetType := flag.String("type", "preliminary", "Loadsheet edition to generate (preliminary, final, both)")
	force := flag.Bool("force", false, "Regenerate even when the edition is already completed")
	runOnce := flag.Bool("once", false, "Run once and exit (don't wait for backend notifications)")
	listen := flag.String("listen", "", "Notification webhook bind address (overrides NOTIFY_LISTEN)")
	flag.Parse()

	log.Info().
		Str("plan", *planFile).
		Str("type", *sheetType).
		Bool("force", *force).
		Bool("run_once", *runOnce).
		Msg("Starting loadmaster")

	types, err := parseTypes(*sheetType)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid loadsheet type")
	}

	// Load configuration
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *listen != "" {
		cfg.NotifyListen = *listen
	}

	profile, err := cfg.LoadProfile()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load aircraft profile")
	}

	if *planFile == "" {
		log.Fatal().Msg("Flight plan file is required (-plan)")
	}
	plan, err := app.LoadFlightPlan(*planFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load flight plan")
	}

	ctx := context.Background()

	// Initialize collaborators
	provider := telemetry.NewMemoryProvider()
	if err := telemetry.Prime(provider, profile); err != nil {
		log.Fatal().Err(err).Msg("Failed to prime telemetry provider")
	}

	engine := balance.NewEngine(profile, cfg.Seed)
	crew := loadsheet.NewRosterCrew(cfg.Seed)

	backendClient, err := backend.NewClient(cfg.BackendURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create backend client")
	}

	coordinator := generation.NewCoordinator(backendClient, provider, config.DefaultResilienceConfig)

	// Compute and print the preliminary loadsheet locally
	prelim, warnings, err := engine.ComputePreliminary(*plan)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to compute preliminary loadsheet")
	}
	for _, w := range warnings {
		log.Warn().
			Str("code", w.Code).
			Str("message", w.Message).
			Msg("Weight distribution warning")
	}

	issued := time.Now().UTC()
	prelimCrew := crew.Crew()
	fmt.Print(loadsheet.FormatPreliminary(prelim, app.DefaultLimits, *plan, issued, prelimCrew))

	coordinator.SetFlightPlan(plan, prelim)

	// Archive and export every loadsheet the backend pushes back
	store, err := history.NewStore(cfg.HistoryDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open history database")
	}
	defer store.Close()

	coordinator.AddListener(func(event generation.LoadsheetReceived) {
		if err := store.Save(ctx, event.Flight, event.Type, event.Data); err != nil {
			log.Error().Err(err).Str("flight", event.Flight).Msg("Failed to archive loadsheet")
		}
	})

	if cfg.SpreadsheetID != "" {
		sheetsClient, err := sheets.NewClient(ctx, cfg.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create sheets client")
		}
		exporter, err := sheets.NewHistoryExporter(sheetsClient, cfg.SpreadsheetID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create history exporter")
		}
		if err := exporter.EnsureSheet(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare history sheet")
		}
		coordinator.AddListener(func(event generation.LoadsheetReceived) {
			if err := exporter.Export(ctx, event.Flight, event.Type, event.Data); err != nil {
				log.Error().Err(err).Str("flight", event.Flight).Msg("Failed to export loadsheet")
			}
		})
	}

	coordinator.AddListener(func(event generation.LoadsheetReceived) {
		if event.Type != app.Final {
			return
		}
		fmt.Print(loadsheet.FormatFinal(&event.Data, prelim, app.DefaultLimits, *plan, time.Now().UTC(), prelimCrew))
	})

	// Generate against the backend
	if !coordinator.CheckServerStatus(ctx) {
		log.Fatal().Str("backend", cfg.BackendURL).Msg("Backend is not reachable")
	}

	backendClient.ResetRequestCount()
	for _, typ := range types {
		result := coordinator.GenerateLoadsheet(ctx, typ, generation.Options{MaxRetries: -1, Force: *force})
		if !result.Success {
			log.Error().
				Err(result.Err).
				Str("type", string(typ)).
				Int("status", result.StatusCode).
				Msg("Loadsheet generation failed")
			os.Exit(1)
		}
	}

	log.Info().
		Int64("requests", backendClient.RequestCount()).
		Msg("Loadsheet generation completed")
	log.Debug().
		Interface("telemetry", provider.Snapshot()).
		Msg("Telemetry state after generation")

	if *runOnce {
		log.Info().Msg("Run-once mode: exiting without waiting for notifications")
		return
	}

	if cfg.NotifyListen == "" {
		log.Info().Msg("No notification listen address configured, exiting")
		return
	}

	serveNotifications(cfg.NotifyListen, coordinator)
}

// parseTypes maps the -type flag to the editions to generate.
func parseTypes(value string) ([]app.LoadsheetType, error) {
	switch strings.ToLower(value) {
	case "preliminary", "prelim":
		return []app.LoadsheetType{app.Preliminary}, nil
	case "final":
		return []app.LoadsheetType{app.Final}, nil
	case "both":
		return app.LoadsheetTypes, nil
	default:
		return nil, fmt.Errorf("unknown loadsheet type %q (want preliminary, final or both)", value)
	}
}

// serveNotifications runs the backend push webhook. The channel is
// fire-and-forget from the backend's side: the handler always acknowledges,
// and malformed payloads are logged and dropped inside OnNotification.
func serveNotifications(addr string, coordinator *generation.Coordinator) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /notify/{type}", func(w http.ResponseWriter, r *http.Request) {
		typ := app.LoadsheetType(r.PathValue("type"))

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to read notification body")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if err := coordinator.OnNotification(typ, body); err != nil {
			log.Warn().Err(err).Str("type", string(typ)).Msg("Dropped loadsheet notification")
		}
		w.WriteHeader(http.StatusNoContent)
	})

	log.Info().Str("addr", addr).Msg("Listening for loadsheet notifications")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal().Err(err).Msg("Notification listener failed")
	}
}
