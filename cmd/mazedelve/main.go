// Package main is the entry point for MazeDelve.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/mazedelve/internal/game"
	"github.com/samdwyer/mazedelve/internal/gamedata"
	"github.com/samdwyer/mazedelve/internal/telemetry"
)

func main() {
	log := telemetry.NewLogger(nil, "mazedelve")

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Debug().Err(err).Msg(".env file not loaded")
	}

	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("telemetry setup failed, running without observability")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Error().Err(err).Msg("telemetry shutdown")
			}
		}()
	}

	profiles, err := gamedata.LoadProfileRegistry()
	if err != nil {
		log.Fatal().Err(err).Msg("load profiles")
	}
	log.Debug().Int("profiles", profiles.Count()).Msg("profiles loaded")
	cfg, err := game.LoadConfig(profiles, os.LookupEnv)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	g, err := game.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize game")
	}
	if err := g.Run(ctx); err != nil {
		log.Error().Err(err).Msg("game error")
		os.Exit(1)
	}
}

// setupOTelEnv maps the MAZEDELVE_HONEYCOMB_* variables onto the standard
// OTEL_* ones. Explicit OTEL_* settings win.
func setupOTelEnv() {
	apiKey := os.Getenv("MAZEDELVE_HONEYCOMB_API_KEY")
	if apiKey == "" {
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	dataset := os.Getenv("MAZEDELVE_HONEYCOMB_DATASET")
	if dataset == "" {
		dataset = "mazedelve"
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_HEADERS") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
