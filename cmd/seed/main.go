package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/moritama/fleamarket-backend/internal/config"
	"github.com/moritama/fleamarket-backend/internal/db"
)

// Applies the schema and inserts the sample catalog into the configured
// database. Safe to re-run: seeding skips entirely once any category exists.
func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	conn, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := db.Migrate(conn); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := db.Seed(context.Background(), conn); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	log.Printf("seed complete (db: %s)", cfg.DBPath)
	return nil
}
