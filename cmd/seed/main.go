// Command seed loads the built-in exercise catalog. Exercises already present
// by name are left alone, so it is safe to run on every deploy.
package main

import (
	"context"
	"log"
	"os"

	"github.com/Sonchiik/Workout-Traker/internal/server"
	"github.com/Sonchiik/Workout-Traker/internal/server/cache"
	"github.com/Sonchiik/Workout-Traker/internal/server/config"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/repomanager"
	"github.com/Sonchiik/Workout-Traker/internal/server/seed"
	"github.com/Sonchiik/Workout-Traker/internal/server/services"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}
	logger := server.NewLogger(cfg, os.Stderr)

	db, err := server.OpenDatabase(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	var catalog *cache.Cache
	if rdb := server.NewRedisClient(ctx, cfg, logger); rdb != nil {
		defer rdb.Close()
		catalog = cache.New(rdb, cfg.CatalogCacheTTL, logger)
	}

	svc := services.NewExerciseService(db, repomanager.NewPostgresRepositoryManager(), catalog, logger)

	n, err := seed.Run(ctx, svc)
	if err != nil {
		logger.Error(ctx, "seeding failed", "error", err)
		db.Close()
		os.Exit(1)
	}
	logger.Info(ctx, "Exercises seeded successfully", "added", n)
}
