// Package history keeps a local record of finished generation runs.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jblick1327/shipping/internal/domain"
	"github.com/jblick1327/shipping/pkg/logging"
)

// SQLiteStore appends terminal runs to a local sqlite file. History is
// an audit convenience: a failure to record never fails the run.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *logging.Logger
}

// NewSQLiteStore creates or opens the run-history database
func NewSQLiteStore(path string, logger *logging.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	store := &SQLiteStore{
		db:     db,
		path:   path,
		logger: logger.WithComponent("run-history"),
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return store, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS generation_runs (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		carrier_name TEXT NOT NULL,
		shipment_id TEXT,
		order_numbers_json TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		completed_at DATETIME NOT NULL,
		failure_stage TEXT,
		failure_reason TEXT,
		bol_path TEXT,
		label_path TEXT,
		label_pages INTEGER NOT NULL DEFAULT 0,
		failed_orders_json TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_generation_runs_started ON generation_runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_generation_runs_shipment ON generation_runs(shipment_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Append records one terminal run
func (s *SQLiteStore) Append(ctx context.Context, summary domain.RunSummary) error {
	orderNumbers, err := json.Marshal(summary.OrderNumbers)
	if err != nil {
		return fmt.Errorf("failed to encode order numbers: %w", err)
	}
	failedOrders, err := json.Marshal(summary.FailedOrders)
	if err != nil {
		return fmt.Errorf("failed to encode failed orders: %w", err)
	}

	start := time.Now()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO generation_runs (
			id, status, carrier_name, shipment_id, order_numbers_json,
			started_at, completed_at, failure_stage, failure_reason,
			bol_path, label_path, label_pages, failed_orders_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.ID,
		string(summary.Status),
		summary.CarrierName,
		summary.ShipmentID,
		string(orderNumbers),
		summary.StartedAt.UTC().Format(time.RFC3339Nano),
		summary.CompletedAt.UTC().Format(time.RFC3339Nano),
		summary.FailureStage,
		summary.FailureReason,
		summary.BOLPath,
		summary.LabelPath,
		summary.LabelPages,
		string(failedOrders),
	)
	s.logger.DatabaseQuery(ctx, "generation_runs", "insert", time.Since(start), err == nil, 1)
	if err != nil {
		return fmt.Errorf("failed to append run %s: %w", summary.ID, err)
	}
	return nil
}

// Recent returns the latest runs, newest first
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, status, carrier_name, shipment_id, order_numbers_json,
		       started_at, completed_at, failure_stage, failure_reason,
		       bol_path, label_path, label_pages, failed_orders_json
		FROM generation_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		s.logger.DatabaseQuery(ctx, "generation_runs", "select", time.Since(start), false, 0)
		return nil, fmt.Errorf("failed to query run history: %w", err)
	}
	defer rows.Close()

	var summaries []domain.RunSummary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read run history: %w", err)
	}

	s.logger.DatabaseQuery(ctx, "generation_runs", "select", time.Since(start), true, int64(len(summaries)))
	return summaries, nil
}

func scanSummary(rows *sql.Rows) (domain.RunSummary, error) {
	var (
		summary          domain.RunSummary
		status           string
		orderNumbersJSON string
		startedAt        string
		completedAt      string
		failedOrdersJSON string
	)

	if err := rows.Scan(
		&summary.ID,
		&status,
		&summary.CarrierName,
		&summary.ShipmentID,
		&orderNumbersJSON,
		&startedAt,
		&completedAt,
		&summary.FailureStage,
		&summary.FailureReason,
		&summary.BOLPath,
		&summary.LabelPath,
		&summary.LabelPages,
		&failedOrdersJSON,
	); err != nil {
		return domain.RunSummary{}, fmt.Errorf("failed to scan run history row: %w", err)
	}

	summary.Status = domain.RunStatus(status)
	if err := json.Unmarshal([]byte(orderNumbersJSON), &summary.OrderNumbers); err != nil {
		return domain.RunSummary{}, fmt.Errorf("failed to decode order numbers: %w", err)
	}
	if failedOrdersJSON != "" {
		if err := json.Unmarshal([]byte(failedOrdersJSON), &summary.FailedOrders); err != nil {
			return domain.RunSummary{}, fmt.Errorf("failed to decode failed orders: %w", err)
		}
	}

	var err error
	if summary.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return domain.RunSummary{}, fmt.Errorf("failed to parse run start time: %w", err)
	}
	if summary.CompletedAt, err = time.Parse(time.RFC3339Nano, completedAt); err != nil {
		return domain.RunSummary{}, fmt.Errorf("failed to parse run completion time: %w", err)
	}

	return summary, nil
}
