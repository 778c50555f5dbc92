package main

import (
	"log"
	"os"
	"sync"

	"stocktracker_api/config"
	platformapp "stocktracker_api/internal/platform/app"
	trackerapp "stocktracker_api/internal/tracker/app"
	"stocktracker_api/pkg/dbconnect/postgres"
)

func main() {
	log.Printf("\nStarted app\n")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", configPath, err)
	}
	if cfg.Postgres.Host == "" {
		cfg.Postgres = *config.GetPostgresConfig()
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis = *config.GetRedisConfig()
	}

	writer := os.Stdout
	wg := sync.WaitGroup{}

	wg.Add(2)
	go func() {
		tserver := trackerapp.NewTrackerServer(postgres.NewPgConnector(&cfg.Postgres), cfg, writer)
		tserver.Run()
		wg.Done()
	}()
	go func() {
		pserver := platformapp.NewPlatformServer(postgres.NewPgConnector(&cfg.Postgres), cfg, writer)
		pserver.Run()
		wg.Done()
	}()
	wg.Wait()
}
