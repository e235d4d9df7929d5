// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/verte-zerg/arenatrack/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for tracker records and cached rosters.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS roster_cache (
			version TEXT NOT NULL,
			position INTEGER NOT NULL,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			roles TEXT NOT NULL,
			key TEXT NOT NULL,
			PRIMARY KEY (version, id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_roster_cache_version ON roster_cache(version, position);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the value stored under key and whether it exists.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

// SaveRoster replaces the cached roster for version, keeping roster order.
func (s *Store) SaveRoster(ctx context.Context, version string, champions []model.Champion) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM roster_cache WHERE version = ?`, version); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO roster_cache (version, position, id, name, roles, key)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	for i, c := range champions {
		roles, merr := json.Marshal(c.Roles)
		if merr != nil {
			err = fmt.Errorf("encode roles for %s: %w", c.ID, merr)
			return err
		}
		if _, err = stmt.ExecContext(ctx, version, i, c.ID, c.Name, string(roles), c.Key); err != nil {
			return err
		}
	}
	err = tx.Commit()
	return err
}

// LoadRoster returns the cached roster for version, or nil when none is cached.
func (s *Store) LoadRoster(ctx context.Context, version string) ([]model.Champion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, roles, key FROM roster_cache
		 WHERE version = ?
		 ORDER BY position ASC`, version)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var champions []model.Champion
	for rows.Next() {
		var c model.Champion
		var roles string
		if err := rows.Scan(&c.ID, &c.Name, &roles, &c.Key); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(roles), &c.Roles); err != nil {
			return nil, fmt.Errorf("decode roles for %s: %w", c.ID, err)
		}
		champions = append(champions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return champions, nil
}

// LatestRosterVersion returns the most recently cached roster version, if any.
// Versions compare by insertion: the highest rowid wins.
func (s *Store) LatestRosterVersion(ctx context.Context) (string, bool, error) {
	var version string
	err := s.db.QueryRowContext(ctx,
		`SELECT version FROM roster_cache ORDER BY rowid DESC LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return version, true, nil
}
