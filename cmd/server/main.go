package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"cityroute/internal/planner"
	"cityroute/internal/server"
	"cityroute/internal/sqlite"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "data")

	srv, err := server.New(server.Config{
		Addr:         getEnv("SERVER_ADDR", "127.0.0.1:8000"),
		DataDir:      dataDir,
		StoreBackend: getEnv("STORE_BACKEND", "memory"),
		SQLitePath:   getEnv("SQLITE_PATH", filepath.Join(dataDir, sqlite.DefaultDBFileName)),
		Planner: planner.Config{
			DailyTimeBudgetMin: getEnvFloat("DAILY_TIME_BUDGET_MIN", 0),
			DefaultDetourMin:   getEnvFloat("DEFAULT_DETOUR_MIN", 0),
			CitySpeedKmh:       getEnvFloat("CITY_SPEED_KMH", 0),
			RouterMaxIters:     getEnvInt("ROUTER_MAX_ITERS", 0),
			ClusterSeed:        int64(getEnvInt("CLUSTER_RANDOM_STATE", 0)),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if _, err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	sig := <-shutdown
	log.Printf("Received signal %v, starting graceful shutdown", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not gracefully shutdown the server: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
		log.Printf("Invalid %s=%q, using default", key, value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
		log.Printf("Invalid %s=%q, using default", key, value)
	}
	return defaultValue
}
