package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/gauthamsrinivas7/CourtSide/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Apply PRAGMAs and run migrations.
	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// LoadPreferences reads the preferences document from its fixed key.
// A missing row means onboarding has not completed; that is not an error.
func (r *SQLiteRepo) LoadPreferences(ctx context.Context) (*domain.Preferences, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `
		SELECT document
		FROM preferences
		WHERE key = ?`,
		prefsKey,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return unmarshalPreferences(doc)
}

// SavePreferences replaces the stored document wholesale.
func (r *SQLiteRepo) SavePreferences(ctx context.Context, p *domain.Preferences) error {
	if p == nil {
		return errors.New("nil preferences")
	}
	doc, err := marshalPreferences(p)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO preferences (key, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			document   = excluded.document,
			updated_at = excluded.updated_at`,
		prefsKey, doc, time.Now().UTC().Unix(),
	)
	return err
}

// ClearPreferences removes the document, resetting onboarding.
func (r *SQLiteRepo) ClearPreferences(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM preferences
		WHERE key = ?`,
		prefsKey,
	)
	return err
}
