package storage

import (
	"fmt"
	"time"
)

// Decision is one recorded hold outcome: a modifier was pressed and
// released in isolation, and the agent either suppressed the menu or
// let it through.
type Decision struct {
	ID           int64
	Timestamp    time.Time
	Trigger      string
	DurationMs   int64
	Suppressed   bool
	ErrorMessage string
}

// SaveDecision saves a decision to the database
func (db *DB) SaveDecision(d *Decision) error {
	query := `
		INSERT INTO decisions (trigger_key, duration_ms, suppressed, error_message)
		VALUES (?, ?, ?, ?)
	`

	result, err := db.conn.Exec(query, d.Trigger, d.DurationMs, d.Suppressed, d.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to save decision: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	d.ID = id
	return nil
}

// GetDecisions retrieves decisions with pagination, newest first
func (db *DB) GetDecisions(limit, offset int) ([]Decision, error) {
	query := `
		SELECT id, timestamp, trigger_key, duration_ms, suppressed, error_message
		FROM decisions
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.conn.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	defer rows.Close()

	var decisions []Decision
	for rows.Next() {
		var d Decision
		var errMsg *string
		if err := rows.Scan(&d.ID, &d.Timestamp, &d.Trigger, &d.DurationMs, &d.Suppressed, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		if errMsg != nil {
			d.ErrorMessage = *errMsg
		}
		decisions = append(decisions, d)
	}

	return decisions, rows.Err()
}
