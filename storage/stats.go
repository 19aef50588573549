package storage

import (
	"fmt"
)

// DailyStats represents statistics for a single day
type DailyStats struct {
	Date            string
	TotalHolds      int
	SuppressedCount int
	AllowedCount    int
	FailureCount    int
}

// TriggerStats represents statistics grouped by trigger key
type TriggerStats struct {
	Trigger         string
	TotalHolds      int
	SuppressedCount int
	AllowedCount    int
	FailureCount    int
	AvgDurationMs   float64
}

// OverallStats represents overall statistics
type OverallStats struct {
	TotalHolds      int
	SuppressedCount int
	AllowedCount    int
	FailureCount    int
	AvgDurationMs   float64
	MaxDurationMs   int64
}

// GetDailyStats retrieves statistics grouped by date for the last N days
func (db *DB) GetDailyStats(days int) ([]DailyStats, error) {
	query := `
		SELECT
			DATE(timestamp) as date,
			COUNT(*) as total_holds,
			SUM(CASE WHEN suppressed = 1 THEN 1 ELSE 0 END) as suppressed_count,
			SUM(CASE WHEN suppressed = 0 AND error_message = '' THEN 1 ELSE 0 END) as allowed_count,
			SUM(CASE WHEN error_message != '' THEN 1 ELSE 0 END) as failure_count
		FROM decisions
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY DATE(timestamp)
		ORDER BY date DESC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []DailyStats
	for rows.Next() {
		var s DailyStats
		err := rows.Scan(&s.Date, &s.TotalHolds, &s.SuppressedCount, &s.AllowedCount, &s.FailureCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetTriggerStats retrieves statistics grouped by trigger for the last N days
func (db *DB) GetTriggerStats(days int) ([]TriggerStats, error) {
	query := `
		SELECT
			trigger_key,
			COUNT(*) as total_holds,
			SUM(CASE WHEN suppressed = 1 THEN 1 ELSE 0 END) as suppressed_count,
			SUM(CASE WHEN suppressed = 0 AND error_message = '' THEN 1 ELSE 0 END) as allowed_count,
			SUM(CASE WHEN error_message != '' THEN 1 ELSE 0 END) as failure_count,
			AVG(duration_ms) as avg_duration_ms
		FROM decisions
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY trigger_key
		ORDER BY total_holds DESC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query trigger stats: %w", err)
	}
	defer rows.Close()

	var stats []TriggerStats
	for rows.Next() {
		var s TriggerStats
		err := rows.Scan(&s.Trigger, &s.TotalHolds, &s.SuppressedCount, &s.AllowedCount, &s.FailureCount, &s.AvgDurationMs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trigger stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetOverallStats retrieves overall statistics for the last N days
func (db *DB) GetOverallStats(days int) (*OverallStats, error) {
	query := `
		SELECT
			COUNT(*) as total_holds,
			COALESCE(SUM(CASE WHEN suppressed = 1 THEN 1 ELSE 0 END), 0) as suppressed_count,
			COALESCE(SUM(CASE WHEN suppressed = 0 AND error_message = '' THEN 1 ELSE 0 END), 0) as allowed_count,
			COALESCE(SUM(CASE WHEN error_message != '' THEN 1 ELSE 0 END), 0) as failure_count,
			COALESCE(AVG(duration_ms), 0) as avg_duration_ms,
			COALESCE(MAX(duration_ms), 0) as max_duration_ms
		FROM decisions
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
	`

	var stats OverallStats
	err := db.conn.QueryRow(query, days).Scan(
		&stats.TotalHolds,
		&stats.SuppressedCount,
		&stats.AllowedCount,
		&stats.FailureCount,
		&stats.AvgDurationMs,
		&stats.MaxDurationMs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall stats: %w", err)
	}

	return &stats, nil
}
