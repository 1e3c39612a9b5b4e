package main

import (
	"context"
	"log"
	"time"

	"text-assistant/config"
	"text-assistant/db"
	"text-assistant/logger"
	"text-assistant/repositories"
)

// Retention sweep: purges modification records older than the
// configured number of days. Meant to run from cron.
func main() {
	if err := config.InitApp(); err != nil {
		log.Fatal(err)
	}
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if cfg.Retention.Days <= 0 {
		logger.Log.Info("retention disabled, nothing to do")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.Init(ctx); err != nil {
		log.Fatal("failed to initialize MongoDB: ", err)
	}
	defer db.Shutdown(ctx)

	repo := repositories.NewRecordRepository(db.Database())
	cutoff := time.Now().UTC().AddDate(0, 0, -cfg.Retention.Days)

	deleted, err := repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Fatal("retention sweep failed: ", err)
	}

	logger.InfoWithFields("retention sweep completed", logger.Fields{
		"deleted": deleted,
		"cutoff":  cutoff.Format(time.RFC3339),
	})
}
