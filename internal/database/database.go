package database

import (
	"fmt"
	"time"

	"lms-quiz/internal/logger"

	_ "github.com/godror/godror"   // registers "godror"
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // registers "oracle"
	"go.uber.org/zap"
)

// Driver names accepted by db.driver.
const (
	DriverGoOra  = "oracle"
	DriverGodror = "godror"
)

// NewSQLXOracleDB opens and pings an Oracle connection through the named driver.
func NewSQLXOracleDB(driver, dsn string) (*sqlx.DB, error) {
	if driver == "" {
		driver = DriverGoOra
	}
	if driver != DriverGoOra && driver != DriverGodror {
		return nil, fmt.Errorf("unsupported oracle driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Oracle database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	logger.Get().Info("Successfully connected to Oracle database", zap.String("driver", driver))
	return db, nil
}
