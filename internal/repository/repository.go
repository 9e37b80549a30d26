package repository

import (
	"context"
	"database/sql"
)

// DBTX is the subset shared by *sqlx.DB and *sqlx.Tx that the adapters use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
