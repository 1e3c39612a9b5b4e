package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"text-assistant/aiclient"
	"text-assistant/api/router"
	"text-assistant/config"
	"text-assistant/db"
	"text-assistant/events"
	"text-assistant/listener"
	"text-assistant/logger"
	"text-assistant/repositories"
	"text-assistant/services"
)

// @title           Text Assistant API
// @version         1.0
// @description     AI-backed text modification service
// @BasePath        /api/v1
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
		if err := db.Shutdown(shutdownCtx); err != nil {
			logger.ErrorWithFields("mongo shutdown failed", logger.Fields{"error": err.Error()})
		}
	}()

	client := aiclient.New(cfg.AI)
	defer client.Close()

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.Brokers != "" {
		kp, err := events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		if err != nil {
			log.Fatal("failed to create Kafka publisher: ", err)
		}
		publisher = kp
	}
	defer publisher.Close()

	repo := repositories.NewRecordRepository(db.Database())
	svc := services.NewTextService(client, repo, publisher)

	if cfg.Listener.Enabled {
		bg := listener.New(fmt.Sprintf("%s:%d", cfg.Listener.Host, cfg.Listener.Port), svc)
		go func() {
			if err := bg.Serve(ctx); err != nil {
				logger.ErrorWithFields("background listener failed", logger.Fields{"error": err.Error()})
			}
		}()
	}

	r := router.New(svc, client)
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: r,
	}

	go func() {
		logger.InfoWithFields("http server started", logger.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithFields("http server failed", logger.Fields{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithFields("http shutdown failed", logger.Fields{"error": err.Error()})
	}
}
