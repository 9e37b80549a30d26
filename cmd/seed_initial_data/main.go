package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"lms-quiz/internal/catalog"
	"lms-quiz/internal/config"
	"lms-quiz/internal/database"
	"lms-quiz/internal/domain"
	"lms-quiz/internal/logger"
	"lms-quiz/internal/repository"

	"go.uber.org/zap"
)

const defaultSeedFilePath = "configs/seed_data/quizzes.yaml"

func main() {
	seedFilePath := flag.String("file", defaultSeedFilePath, "YAML quiz catalog to load into the database")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXOracleDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	quizzes, err := catalog.NewFileCatalog(*seedFilePath).LoadQuizCatalog(ctx)
	if err != nil {
		log.Fatal("Failed to load seed data", zap.String("path", *seedFilePath), zap.Error(err))
	}

	txManager := repository.NewTransactionManagerAdapter(db)
	writer := repository.NewQuizCatalogDatabaseAdapter(db)

	seeded, failed := 0, 0
	for _, quiz := range quizzes {
		if err := seedQuiz(ctx, txManager, writer, quiz); err != nil {
			log.Error("Error seeding quiz, transaction rolled back", zap.String("quiz_id", quiz.ID), zap.Error(err))
			failed++
			continue
		}
		seeded++
	}
	log.Info("Initial data seeding process completed.", zap.Int("seeded", seeded), zap.Int("failed", failed))
	if failed > 0 {
		os.Exit(1)
	}
}

// seedQuiz validates quiz and stores it with its questions in one transaction.
func seedQuiz(ctx context.Context, txManager domain.TransactionManager, writer domain.QuizWriter, quiz *domain.Quiz) error {
	quiz.ApplyDefaults()
	if err := quiz.Validate(); err != nil {
		return domain.NewInvalidQuizError(quiz.ID, err)
	}
	return txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return writer.SaveQuiz(txCtx, quiz)
	})
}
