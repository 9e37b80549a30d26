package main

import (
	"context"
	"flag"
	"log"

	"lms-quiz/internal/config"
	"lms-quiz/internal/database"
	"lms-quiz/internal/logger"

	"go.uber.org/zap"
)

func main() {
	down := flag.Int("down", 0, "roll back this many migrations instead of applying pending ones")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db)
	if err != nil {
		l.Fatal("Failed to open migrations", zap.Error(err))
	}
	defer migrator.Close()

	ctx := context.Background()
	if *down > 0 {
		n, err := migrator.Down(ctx, *down)
		if err != nil {
			l.Fatal("Rollback failed", zap.Int("rolled_back", n), zap.Error(err))
		}
		l.Info("Rollback complete", zap.Int("rolled_back", n))
		return
	}

	n, err := migrator.Up(ctx)
	if err != nil {
		l.Fatal("Migration failed", zap.Int("applied", n), zap.Error(err))
	}
	l.Info("Migrations complete", zap.Int("applied", n))
}
