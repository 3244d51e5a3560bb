package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Keys of the three aggregates stored per tournament.
const (
	AggregateTeams   = "teams"
	AggregateMatches = "matches"
	AggregateConfig  = "config"
)

func stateKey(tournamentID, aggregate string) string {
	return tournamentID + "/" + aggregate
}

func tournamentIDFromKey(key string) string {
	id, _, _ := strings.Cut(key, "/")
	return id
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}
