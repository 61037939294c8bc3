package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"

	"github.com/pkolesov/launchbook/internal/client/credstore/migrations"
	"github.com/pkolesov/launchbook/internal/cryptox"

	_ "modernc.org/sqlite"
)

const (
	dbFileName  = "credentials.db"
	keyFileName = "credentials.key"
)

// SQLiteStore keeps credentials in a local sqlite file, sealed at rest
// with a key stored next to the database.
type SQLiteStore struct {
	db  *sql.DB
	key []byte
}

// Open prepares the store under dir, creating the directory, database
// schema and sealing key as needed.
func Open(ctx context.Context, dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate store db: %w", err)
	}

	key, err := cryptox.LoadOrCreateKey(filepath.Join(dir, keyFileName))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, key: key}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var sealed []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credential[%s]: %w", key, err)
	}

	plain, err := cryptox.Open(sealed, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to unseal credential[%s]: %w", key, err)
	}
	return string(plain), nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value string) error {
	sealed, err := cryptox.Seal([]byte(value), s.key)
	if err != nil {
		return fmt.Errorf("failed to seal credential[%s]: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, sealed)
	if err != nil {
		return fmt.Errorf("failed to set credential[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to clear credential[%s]: %w", key, err)
	}
	return nil
}
