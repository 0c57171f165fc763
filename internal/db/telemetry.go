package db

import (
	"context"
	"time"

	"smartlight/internal/models"
)

// TelemetryStats summarizes recorded snapshots.
type TelemetryStats struct {
	TotalRecords int64   `json:"total_records"`
	AvgCurrent   float64 `json:"avg_current"`
	AvgPower     float64 `json:"avg_power"`
	OnCount      int64   `json:"on_count"`
	OffCount     int64   `json:"off_count"`
}

// InsertTelemetrySnapshot appends one telemetry reading. Snapshots are never
// updated in place.
func (d *DB) InsertTelemetrySnapshot(ctx context.Context, snap models.TelemetrySnapshot) error {
	_, err := d.pool.Exec(ctx,
		"INSERT INTO light_data (status, current, power, timestamp) VALUES ($1, $2, $3, $4)",
		snap.Status, snap.Current, snap.Power, snap.Timestamp)
	return err
}

// LatestTelemetry returns the most recent snapshot, or nil when none exist.
func (d *DB) LatestTelemetry(ctx context.Context) (*models.TelemetrySnapshot, error) {
	rows, err := d.pool.Query(ctx,
		"SELECT id, status, current, power, timestamp FROM light_data ORDER BY timestamp DESC LIMIT 1")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var snap models.TelemetrySnapshot
	if err := rows.Scan(&snap.ID, &snap.Status, &snap.Current, &snap.Power, &snap.Timestamp); err != nil {
		return nil, err
	}
	return &snap, nil
}

// TelemetryBetween fetches snapshots in [start, end]; zero bounds mean open.
func (d *DB) TelemetryBetween(ctx context.Context, start, end time.Time) ([]models.TelemetrySnapshot, error) {
	query := "SELECT id, status, current, power, timestamp FROM light_data"
	args := []any{}
	if !start.IsZero() && !end.IsZero() {
		query += " WHERE timestamp BETWEEN $1 AND $2"
		args = append(args, start, end)
	}
	query += " ORDER BY timestamp"

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []models.TelemetrySnapshot{}
	for rows.Next() {
		var snap models.TelemetrySnapshot
		if err := rows.Scan(&snap.ID, &snap.Status, &snap.Current, &snap.Power, &snap.Timestamp); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// GetTelemetryStats aggregates over all recorded snapshots.
func (d *DB) GetTelemetryStats(ctx context.Context) (*TelemetryStats, error) {
	var stats TelemetryStats
	err := d.pool.QueryRow(ctx, `SELECT COUNT(*),
		COALESCE(AVG(current), 0), COALESCE(AVG(power), 0),
		COUNT(*) FILTER (WHERE status = 'on'),
		COUNT(*) FILTER (WHERE status = 'off')
		FROM light_data`).
		Scan(&stats.TotalRecords, &stats.AvgCurrent, &stats.AvgPower, &stats.OnCount, &stats.OffCount)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
