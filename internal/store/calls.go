package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CallRecord is one row of call history.
type CallRecord struct {
	ID        string
	Caller    string
	Callee    string
	StartedAt time.Time
}

// SaveCallRecordParams holds a new call-history row.
type SaveCallRecordParams struct {
	Caller    string
	Callee    string
	StartedAt time.Time
}

// SaveCallRecord persists one call-history row.
func (q *Queries) SaveCallRecord(ctx context.Context, arg SaveCallRecordParams) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO call_records (id, caller, callee, started_at) VALUES (?, ?, ?, ?)",
		uuid.NewString(), arg.Caller, arg.Callee, arg.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save call record: %w", err)
	}
	return nil
}

// ListCallRecords returns the call history a user participated in, newest
// first.
func (q *Queries) ListCallRecords(ctx context.Context, userID string) ([]CallRecord, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, caller, callee, started_at FROM call_records WHERE caller = ? OR callee = ? ORDER BY started_at DESC",
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list call records: %w", err)
	}
	defer rows.Close()

	var records []CallRecord
	for rows.Next() {
		var r CallRecord
		if err := rows.Scan(&r.ID, &r.Caller, &r.Callee, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan call record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
