package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

var ErrStateSchemaMissing = errors.New("tournament_state table does not exist; run EnsureSchema first")

// BatchPutter is implemented by stores that can write several keys atomically.
type BatchPutter interface {
	PutMany(ctx context.Context, values map[string][]byte) error
}

type postgresKeyValueStore struct {
	db *sql.DB
}

func NewPostgresKeyValueStore(db *sql.DB) KeyValueStore {
	return &postgresKeyValueStore{db: db}
}

// EnsureSchema creates the key-value table if it is missing.
func (r *postgresKeyValueStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS tournament_state (
			state_key  TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create tournament_state table: %w", err)
	}
	return nil
}

func (r *postgresKeyValueStore) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM tournament_state WHERE state_key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, r.handleStateError(err)
	}
	return value, nil
}

func (r *postgresKeyValueStore) put(ctx context.Context, exec SQLExecutor, key string, value []byte) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournament_state (state_key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (state_key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	_, err := executor.ExecContext(ctx, query, key, string(value), time.Now().UTC())
	return r.handleStateError(err)
}

func (r *postgresKeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	return r.put(ctx, nil, key, value)
}

// PutMany writes all values in one transaction so a tournament is never half saved.
func (r *postgresKeyValueStore) PutMany(ctx context.Context, values map[string][]byte) (err error) {
	if len(values) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("PutMany failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	for key, value := range values {
		if err = r.put(ctx, tx, key, value); err != nil {
			return fmt.Errorf("PutMany failed for key %s: %w", key, err)
		}
	}
	return nil
}

func (r *postgresKeyValueStore) Delete(ctx context.Context, key string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournament_state WHERE state_key = $1`, key)
	if err != nil {
		return r.handleStateError(err)
	}
	return checkAffectedRows(result, ErrKeyNotFound)
}

func (r *postgresKeyValueStore) ListTournaments(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT split_part(state_key, '/', 1) AS tournament_id
		FROM tournament_state
		ORDER BY tournament_id ASC`)
	if err != nil {
		return nil, r.handleStateError(err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *postgresKeyValueStore) handleStateError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "42P01" { // undefined_table
			return ErrStateSchemaMissing
		}
	}
	return err
}
