package main

import (
	"context"
	"flag"
	"log"
	"os"

	"streamverse/internal/client"
	"streamverse/internal/client/cli"
)

func main() {
	serverURL := flag.String("server", envOr("STREAMVERSE_SERVER", "http://localhost:8080"), "server base URL")
	dbPath := flag.String("db", envOr("STREAMVERSE_DB", "streamverse.db"), "local state database path")
	flag.Parse()

	ctx := context.Background()

	app, err := client.New(ctx, *serverURL, *dbPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Bootstrap(ctx); err != nil {
		log.Fatalf("failed to restore local state: %v", err)
	}

	cli.NewREPL(app, os.Stdin, os.Stdout).Run(ctx)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
