package main

import (
	"context"
	"log"

	"github.com/taskforge-hq/taskforge-backend/config"
	"github.com/taskforge-hq/taskforge-backend/internal/bootstrap"
	"github.com/taskforge-hq/taskforge-backend/internal/storage/postgres"
	cronjob "github.com/taskforge-hq/taskforge-backend/internal/suggestions/cron"
	sugrepo "github.com/taskforge-hq/taskforge-backend/internal/suggestions/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN: postgres.DSN(&cfg.Database),
	})
	if err != nil {
		log.Fatalf("postgres pool: %v", err)
	}
	defer pool.Close()

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		// The audit store is the contract; broadcasting is optional.
		log.Printf("redis unavailable, suggestion events disabled: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	scheduler := cronjob.NewScheduler(sugrepo.NewStatsRepository(db))
	scheduler.Start()
	defer scheduler.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "taskforge-backend",
		Version:     cfg.App.Version,
		APIKey:      cfg.Server.APIKey,
		Pool:        pool,
		SQL:         db,
		Redis:       redisClient,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
