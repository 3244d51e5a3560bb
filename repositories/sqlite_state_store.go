package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type sqliteKeyValueStore struct {
	db *sql.DB
}

// NewSQLiteKeyValueStore stores state in a single-file sqlite database.
func NewSQLiteKeyValueStore(db *sql.DB) KeyValueStore {
	return &sqliteKeyValueStore{db: db}
}

func (r *sqliteKeyValueStore) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS tournament_state (
		state_key  TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tournament_state table: %w", err)
	}
	return nil
}

func (r *sqliteKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM tournament_state WHERE state_key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

const sqliteUpsert = `
	INSERT INTO tournament_state (state_key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(state_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

func (r *sqliteKeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, sqliteUpsert, key, value, time.Now().UTC())
	return err
}

func (r *sqliteKeyValueStore) PutMany(ctx context.Context, values map[string][]byte) (err error) {
	if len(values) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("PutMany failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	stmt, err := tx.PrepareContext(ctx, sqliteUpsert)
	if err != nil {
		return fmt.Errorf("PutMany failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for key, value := range values {
		if _, err = stmt.ExecContext(ctx, key, value, now); err != nil {
			return fmt.Errorf("PutMany failed for key %s: %w", key, err)
		}
	}
	return nil
}

func (r *sqliteKeyValueStore) Delete(ctx context.Context, key string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournament_state WHERE state_key = ?`, key)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrKeyNotFound)
}

func (r *sqliteKeyValueStore) ListTournaments(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT state_key FROM tournament_state ORDER BY state_key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	seen := make(map[string]bool)
	for rows.Next() {
		var key string
		if scanErr := rows.Scan(&key); scanErr != nil {
			return nil, scanErr
		}
		id := tournamentIDFromKey(key)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
