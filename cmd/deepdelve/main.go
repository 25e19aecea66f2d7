// Package main is the entry point for DeepDelve.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/deepdelve/internal/game"
	"github.com/samdwyer/deepdelve/internal/logging"
	"github.com/samdwyer/deepdelve/internal/telemetry"
)

func main() {
	// Load .env for local development. Not fatal: env vars may be set
	// directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	closer, err := logging.Init()
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logging.Log.WithError(err).Warn("telemetry setup failed, running without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logging.Log.WithError(err).Error("telemetry shutdown failed")
			}
		}()
	}

	g, err := game.New(game.ConfigFromEnv())
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// setupOTelEnv maps the Honeycomb-specific env vars onto standard OTEL_*
// configuration. The .env file may carry an unexpanded variable
// reference, so the header string is constructed here.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	apiKey := os.Getenv("HONEYCOMB_DEEPDELVE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_DEEPDELVE_DATASET")
	if dataset == "" {
		dataset = "deepdelve"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
