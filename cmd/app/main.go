package main

import (
	"flag"
	"log"
	"os"

	"github.com/Johnsoncharless1976/zen-grid-forecaster/internal/di"
	"github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load config (warehouse credentials come from the environment)
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s database=%s schema=%s warehouse=%s",
		cfg.Environment, cfg.Snowflake.Database, cfg.Snowflake.Schema, cfg.Snowflake.Warehouse)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
