package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"time"

	"lms-quiz/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const createMigrationsTable = `CREATE TABLE schema_migrations (
	version NUMBER(19) PRIMARY KEY,
	name VARCHAR2(255) NOT NULL,
	applied_at TIMESTAMP NOT NULL
)`

// Migrator applies the embedded migrations and records them in schema_migrations.
// golang-migrate ships no Oracle database driver, so only its source side is used.
type Migrator struct {
	db  *sqlx.DB
	src source.Driver
	now func() time.Time
}

func NewMigrator(db *sqlx.DB) (*Migrator, error) {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	return &Migrator{db: db, src: src, now: time.Now}, nil
}

func (m *Migrator) Close() error {
	return m.src.Close()
}

// Up applies every migration not yet recorded and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}
	versions, err := m.versions()
	if err != nil {
		return 0, err
	}

	done := make(map[uint]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	count := 0
	for _, v := range versions {
		if done[v] {
			continue
		}
		r, name, err := m.src.ReadUp(v)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return count, fmt.Errorf("failed to read migration %d: %w", v, err)
		}
		if err := m.run(ctx, r); err != nil {
			return count, fmt.Errorf("migration %d_%s failed: %w", v, name, err)
		}
		if _, err := m.db.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name, applied_at) VALUES (:1, :2, :3)`,
			v, name, m.now()); err != nil {
			return count, fmt.Errorf("failed to record migration %d: %w", v, err)
		}
		logger.Get().Info("Applied migration", zap.Uint("version", v), zap.String("name", name))
		count++
	}
	return count, nil
}

// Down reverts the latest steps applied migrations; steps <= 0 reverts all of them.
func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}
	sort.Slice(applied, func(i, j int) bool { return applied[i] > applied[j] })
	if steps > 0 && steps < len(applied) {
		applied = applied[:steps]
	}

	count := 0
	for _, v := range applied {
		r, name, err := m.src.ReadDown(v)
		if err != nil {
			return count, fmt.Errorf("failed to read down migration %d: %w", v, err)
		}
		if err := m.run(ctx, r); err != nil {
			return count, fmt.Errorf("down migration %d_%s failed: %w", v, name, err)
		}
		if _, err := m.db.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = :1`, v); err != nil {
			return count, fmt.Errorf("failed to unrecord migration %d: %w", v, err)
		}
		logger.Get().Info("Reverted migration", zap.Uint("version", v), zap.String("name", name))
		count++
	}
	return count, nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	var n int
	err := m.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`)
	if err != nil {
		return fmt.Errorf("failed to check schema_migrations: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := m.db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) ([]uint, error) {
	var rows []int64
	if err := m.db.SelectContext(ctx, &rows, `SELECT version FROM schema_migrations ORDER BY version`); err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	versions := make([]uint, 0, len(rows))
	for _, v := range rows {
		versions = append(versions, uint(v))
	}
	return versions, nil
}

func (m *Migrator) versions() ([]uint, error) {
	var versions []uint
	v, err := m.src.First()
	for err == nil {
		versions = append(versions, v)
		v, err = m.src.Next(v)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	return versions, nil
}

func (m *Migrator) run(ctx context.Context, r io.ReadCloser) error {
	defer r.Close()
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	for _, stmt := range splitStatements(string(body)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// splitStatements breaks a script on ';'. Oracle rejects a trailing semicolon
// and multiple statements per call.
func splitStatements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
