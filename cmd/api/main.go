package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/moritama/fleamarket-backend/internal/blob"
	"github.com/moritama/fleamarket-backend/internal/config"
	"github.com/moritama/fleamarket-backend/internal/db"
	"github.com/moritama/fleamarket-backend/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := db.Migrate(conn); err != nil {
		return err
	}
	if err := db.Seed(context.Background(), conn); err != nil {
		return err
	}

	blobs, err := blob.New(cfg.ImageDir)
	if err != nil {
		return err
	}

	srv := server.New(conn, blobs, cfg)
	addr := ":" + cfg.Port

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
