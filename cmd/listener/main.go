package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"text-assistant/aiclient"
	"text-assistant/config"
	"text-assistant/db"
	"text-assistant/events"
	"text-assistant/listener"
	"text-assistant/logger"
	"text-assistant/repositories"
	"text-assistant/services"
)

// Standalone background listener for desktop integrations that do not
// need the HTTP surface running.
func main() {
	if err := config.InitApp(); err != nil {
		log.Fatal(err)
	}
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Init(ctx); err != nil {
		log.Fatal("failed to initialize MongoDB: ", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		db.Shutdown(shutdownCtx)
	}()

	client := aiclient.New(cfg.AI)
	defer client.Close()

	repo := repositories.NewRecordRepository(db.Database())
	svc := services.NewTextService(client, repo, events.NoopPublisher{})

	bg := listener.New(fmt.Sprintf("%s:%d", cfg.Listener.Host, cfg.Listener.Port), svc)
	if err := bg.Serve(ctx); err != nil {
		log.Fatal(err)
	}
}
