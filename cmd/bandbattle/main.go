// Package main is the entry point for BandBattle.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/bandbattle/internal/game"
	"github.com/samdwyer/bandbattle/internal/telemetry"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_BANDBATTLE_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Game error: %v\n", err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup so that main can exit with a status
// only after they ran.
func run(cfg game.Config) error {
	// The terminal belongs to tcell from game.New on, so logging moves to a
	// file before the screen opens.
	if f, err := os.OpenFile("bandbattle.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		log.SetOutput(f)
		defer func() {
			log.SetOutput(os.Stderr)
			f.Close()
		}()
	} else {
		log.Printf("Warning: logging to the terminal: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, telemetry.DefaultConfig())
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	g, err := game.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}
	defer g.Close()

	return g.Run(ctx)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// The .env file may hold an unexpanded variable reference, so the
	// headers are built here from the raw key.
	apiKey := os.Getenv("HONEYCOMB_BANDBATTLE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_BANDBATTLE_DATASET")
	if dataset == "" {
		dataset = "bandbattle"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
