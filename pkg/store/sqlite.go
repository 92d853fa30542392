package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/GrantKop/is-the-port-open/pkg/models"
)

const (
	dbOperationTimeout = 5 * time.Second

	createTablesSQL = `
	-- Latest probe result per target. One row per (name, host, port);
	-- saves upsert, no history accumulates.
	CREATE TABLE IF NOT EXISTS target_status (
		name TEXT NOT NULL,
		host TEXT NOT NULL,
		port INTEGER NOT NULL,
		status TEXT NOT NULL,
		latency_ns INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT '',
		checked_at TIMESTAMP NOT NULL,
		cycle_id INTEGER NOT NULL,
		PRIMARY KEY (name, host, port)
	);

	CREATE INDEX IF NOT EXISTS idx_target_status_checked
		ON target_status(checked_at);

	PRAGMA journal_mode=WAL;
	`
)

// SQLiteStore implements Store on a local SQLite database, so the last known
// status of each target survives a restart.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedOpenDB, err)
	}

	if _, err := db.Exec(createTablesSQL); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Error closing database after failed init: %v", closeErr)
		}

		return nil, fmt.Errorf("%w: %w", errFailedToInit, err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) SaveResult(ctx context.Context, cycleID uint64, result *models.ProbeResult) error {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	const query = `
        INSERT INTO target_status (
            name, host, port, status, latency_ns, error, checked_at, cycle_id
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(name, host, port) DO UPDATE SET
            status = excluded.status,
            latency_ns = excluded.latency_ns,
            error = excluded.error,
            checked_at = excluded.checked_at,
            cycle_id = excluded.cycle_id
    `

	_, err := s.db.ExecContext(ctx, query,
		result.Target.Name, result.Target.Host, result.Target.Port,
		string(result.Status), result.Latency.Nanoseconds(),
		result.Error, result.CheckedAt, int64(cycleID),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", errSaveResult, err)
	}

	return nil
}

func (s *SQLiteStore) GetResults(ctx context.Context) ([]models.ProbeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	const query = `
        SELECT name, host, port, status, latency_ns, error, checked_at
        FROM target_status
        ORDER BY name
    `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errQueryResults, err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			log.Print("Error closing rows: ", err)
		}
	}()

	var results []models.ProbeResult

	for rows.Next() {
		result, err := scanResultRow(rows)
		if err != nil {
			return nil, err
		}

		results = append(results, *result)
	}

	return results, rows.Err()
}

func (s *SQLiteStore) GetSummary(ctx context.Context) (*Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	const query = `
        SELECT status, COUNT(*), COALESCE(MAX(cycle_id), 0)
        FROM target_status
        GROUP BY status
    `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errQueryResults, err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			log.Print("Error closing rows: ", err)
		}
	}()

	summary := &Summary{
		StatusCounts: make(map[models.Status]int),
	}

	for rows.Next() {
		var (
			status  string
			count   int
			cycleID int64
		)

		if err := rows.Scan(&status, &count, &cycleID); err != nil {
			return nil, fmt.Errorf("%w: %w", errScanRow, err)
		}

		summary.StatusCounts[models.Status(status)] = count
		summary.TotalTargets += count

		if uint64(cycleID) > summary.LastCycleID {
			summary.LastCycleID = uint64(cycleID)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", errQueryResults, err)
	}

	if summary.TotalTargets > 0 {
		// Selecting the column directly keeps its TIMESTAMP decltype, so
		// the driver hands back a time.Time; MAX() would strip it.
		const lastCheckedQuery = `
            SELECT checked_at FROM target_status
            ORDER BY checked_at DESC LIMIT 1
        `

		if err := s.db.QueryRowContext(ctx, lastCheckedQuery).Scan(&summary.LastChecked); err != nil {
			return nil, fmt.Errorf("%w: %w", errScanRow, err)
		}
	}

	return summary, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanResultRow(rows *sql.Rows) (*models.ProbeResult, error) {
	var (
		r         models.ProbeResult
		status    string
		latencyNs int64
	)

	err := rows.Scan(
		&r.Target.Name,
		&r.Target.Host,
		&r.Target.Port,
		&status,
		&latencyNs,
		&r.Error,
		&r.CheckedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errScanRow, err)
	}

	r.Status = models.Status(status)
	r.Latency = time.Duration(latencyNs)

	return &r, nil
}
