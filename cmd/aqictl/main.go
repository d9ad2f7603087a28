// Command aqictl loads the yearly county AQI sources and exports, validates,
// classifies or publishes them without running the service.
//
// Usage:
//
//	go run ./cmd/aqictl validate
//	go run ./cmd/aqictl export --out exports --xlsx
//	go run ./cmd/aqictl classify --percentile 75 --state Ohio
//	go run ./cmd/aqictl publish --broker localhost:9092
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/aqi-risk-service/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, os.Args[1:], os.Stdout); err != nil {
		// go-flags has already printed the error.
		stop()
		os.Exit(1)
	}
}
