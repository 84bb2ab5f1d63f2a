package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// SQLite Repository
// ============================================================

//go:embed migrations/001_init_collections.sql
var initMigration string

// Repository хранит коллекции как JSON-документы по фиксированному ключу.
type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет миграции.
func (r *Repository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, initMigration); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// Get возвращает сохранённый документ коллекции.
func (r *Repository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT value
        FROM collections
        WHERE key = ?
    `, key)

	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// Put перезаписывает документ коллекции целиком.
func (r *Repository) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO collections (key, value, updated_at)
        VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
    `, key, string(value))
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Ping проверяет соединение для readiness-пробы.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
