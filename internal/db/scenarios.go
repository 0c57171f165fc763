package db

import (
	"context"
	"time"

	"smartlight/internal/models"

	"github.com/jackc/pgx/v5"
)

const scenarioColumns = `id, name, time_on, time_off, time_on_period, time_off_period,
	schedule_type, selected_dates, selected_month, selected_year, is_active,
	schedule_enabled, device_status, volume, device_ids, room_ids, user_id, space_id,
	image_url, last_executed_on, last_executed_off, created_at, updated_at`

func scanScenario(row pgx.Row) (*models.Scenario, error) {
	var s models.Scenario
	var dates []int32
	err := row.Scan(&s.ID, &s.Name, &s.TimeOn, &s.TimeOff, &s.TimeOnPeriod, &s.TimeOffPeriod,
		&s.ScheduleType, &dates, &s.SelectedMonth, &s.SelectedYear, &s.Active,
		&s.ScheduleEnabled, &s.DeviceStatus, &s.Volume, &s.DeviceIDs, &s.RoomIDs, &s.UserID, &s.SpaceID,
		&s.ImageURL, &s.LastExecutedOn, &s.LastExecutedOff, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.SelectedDates = make([]int, len(dates))
	for i, d := range dates {
		s.SelectedDates[i] = int(d)
	}
	return &s, nil
}

// FindActiveEnabledScenarios fetches scenarios eligible for scheduling.
func (d *DB) FindActiveEnabledScenarios(ctx context.Context) ([]models.Scenario, error) {
	rows, err := d.pool.Query(ctx, "SELECT "+scenarioColumns+" FROM scenarios WHERE is_active = true AND schedule_enabled = true")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenarios []models.Scenario
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, *s)
	}
	return scenarios, rows.Err()
}

// GetScenario fetches a scenario by id.
func (d *DB) GetScenario(ctx context.Context, id int64) (*models.Scenario, error) {
	return scanScenario(d.pool.QueryRow(ctx, "SELECT "+scenarioColumns+" FROM scenarios WHERE id = $1", id))
}

// ListScenariosByUser fetches all scenarios owned by a user, newest first.
func (d *DB) ListScenariosByUser(ctx context.Context, userID int64) ([]models.Scenario, error) {
	rows, err := d.pool.Query(ctx, "SELECT "+scenarioColumns+" FROM scenarios WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scenarios := []models.Scenario{}
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, *s)
	}
	return scenarios, rows.Err()
}

// CreateScenario inserts a scenario and returns it with generated fields.
func (d *DB) CreateScenario(ctx context.Context, s *models.Scenario) (*models.Scenario, error) {
	dates := make([]int32, len(s.SelectedDates))
	for i, v := range s.SelectedDates {
		dates[i] = int32(v)
	}
	row := d.pool.QueryRow(ctx, `INSERT INTO scenarios
		(name, time_on, time_off, time_on_period, time_off_period, schedule_type,
		 selected_dates, selected_month, selected_year, is_active, schedule_enabled,
		 device_status, volume, device_ids, room_ids, user_id, space_id, image_url,
		 created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,NOW(),NOW())
		RETURNING `+scenarioColumns,
		s.Name, s.TimeOn, s.TimeOff, s.TimeOnPeriod, s.TimeOffPeriod, s.ScheduleType,
		dates, s.SelectedMonth, s.SelectedYear, s.Active, s.ScheduleEnabled,
		s.DeviceStatus, s.Volume, s.DeviceIDs, s.RoomIDs, s.UserID, s.SpaceID, s.ImageURL)
	return scanScenario(row)
}

// UpdateScenario overwrites the mutable fields of a scenario.
func (d *DB) UpdateScenario(ctx context.Context, s *models.Scenario) (*models.Scenario, error) {
	dates := make([]int32, len(s.SelectedDates))
	for i, v := range s.SelectedDates {
		dates[i] = int32(v)
	}
	row := d.pool.QueryRow(ctx, `UPDATE scenarios SET
		name=$1, time_on=$2, time_off=$3, time_on_period=$4, time_off_period=$5,
		schedule_type=$6, selected_dates=$7, selected_month=$8, selected_year=$9,
		is_active=$10, schedule_enabled=$11, device_status=$12, volume=$13,
		device_ids=$14, room_ids=$15, space_id=$16, image_url=$17, updated_at=NOW()
		WHERE id=$18 RETURNING `+scenarioColumns,
		s.Name, s.TimeOn, s.TimeOff, s.TimeOnPeriod, s.TimeOffPeriod,
		s.ScheduleType, dates, s.SelectedMonth, s.SelectedYear,
		s.Active, s.ScheduleEnabled, s.DeviceStatus, s.Volume,
		s.DeviceIDs, s.RoomIDs, s.SpaceID, s.ImageURL, s.ID)
	return scanScenario(row)
}

// DeleteScenario removes a scenario.
func (d *DB) DeleteScenario(ctx context.Context, id int64) error {
	_, err := d.pool.Exec(ctx, "DELETE FROM scenarios WHERE id = $1", id)
	return err
}

// ToggleScenario flips the active flag and returns the updated scenario.
func (d *DB) ToggleScenario(ctx context.Context, id int64) (*models.Scenario, error) {
	row := d.pool.QueryRow(ctx,
		"UPDATE scenarios SET is_active = NOT is_active, updated_at = NOW() WHERE id = $1 RETURNING "+scenarioColumns, id)
	return scanScenario(row)
}

// UpdateLastExecutedOn records the time the ON action last fired.
func (d *DB) UpdateLastExecutedOn(ctx context.Context, id int64, t time.Time) error {
	_, err := d.pool.Exec(ctx, "UPDATE scenarios SET last_executed_on = $1 WHERE id = $2", t, id)
	return err
}

// UpdateLastExecutedOff records the time the OFF action last fired.
func (d *DB) UpdateLastExecutedOff(ctx context.Context, id int64, t time.Time) error {
	_, err := d.pool.Exec(ctx, "UPDATE scenarios SET last_executed_off = $1 WHERE id = $2", t, id)
	return err
}

// RecordExecution applies one scenario firing atomically: every target device
// state update and the lastExecuted timestamp commit together or not at all.
func (d *DB) RecordExecution(ctx context.Context, scenarioID int64, deviceIDs []int64, on bool, executedAt time.Time) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, id := range deviceIDs {
		if _, err := tx.Exec(ctx, "UPDATE devices SET is_on = $1 WHERE id = $2", on, id); err != nil {
			return err
		}
	}

	column := "last_executed_off"
	if on {
		column = "last_executed_on"
	}
	if _, err := tx.Exec(ctx, "UPDATE scenarios SET "+column+" = $1 WHERE id = $2", executedAt, scenarioID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
