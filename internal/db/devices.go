package db

import (
	"context"

	"smartlight/internal/models"

	"github.com/jackc/pgx/v5"
)

const deviceColumns = "id, name, device_type, image, is_on, mqtt_topic, space_id, room_id, created_at"

func scanDevice(row pgx.Row) (*models.Device, error) {
	var dev models.Device
	err := row.Scan(&dev.ID, &dev.Name, &dev.DeviceType, &dev.Image, &dev.IsOn,
		&dev.MQTTTopic, &dev.SpaceID, &dev.RoomID, &dev.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &dev, nil
}

// GetDevice fetches a device by id.
func (d *DB) GetDevice(ctx context.Context, id int64) (*models.Device, error) {
	return scanDevice(d.pool.QueryRow(ctx, "SELECT "+deviceColumns+" FROM devices WHERE id = $1", id))
}

// ListDevicesBySpace fetches all devices in a space.
func (d *DB) ListDevicesBySpace(ctx context.Context, spaceID int64) ([]models.Device, error) {
	rows, err := d.pool.Query(ctx, "SELECT "+deviceColumns+" FROM devices WHERE space_id = $1 ORDER BY id", spaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	devices := []models.Device{}
	for rows.Next() {
		dev, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, *dev)
	}
	return devices, rows.Err()
}

// ListDevicesByRoom fetches all devices in a room.
func (d *DB) ListDevicesByRoom(ctx context.Context, roomID int64) ([]models.Device, error) {
	rows, err := d.pool.Query(ctx, "SELECT "+deviceColumns+" FROM devices WHERE room_id = $1 ORDER BY id", roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	devices := []models.Device{}
	for rows.Next() {
		dev, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, *dev)
	}
	return devices, rows.Err()
}

// CreateDevice inserts a device and returns it with generated fields.
func (d *DB) CreateDevice(ctx context.Context, dev *models.Device) (*models.Device, error) {
	row := d.pool.QueryRow(ctx, `INSERT INTO devices
		(name, device_type, image, is_on, mqtt_topic, space_id, room_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW()) RETURNING `+deviceColumns,
		dev.Name, dev.DeviceType, dev.Image, dev.IsOn, dev.MQTTTopic, dev.SpaceID, dev.RoomID)
	return scanDevice(row)
}

// SetDeviceOn updates the stored on/off state of a device.
func (d *DB) SetDeviceOn(ctx context.Context, id int64, on bool) error {
	_, err := d.pool.Exec(ctx, "UPDATE devices SET is_on = $1 WHERE id = $2", on, id)
	return err
}

// DeleteDevice removes a device.
func (d *DB) DeleteDevice(ctx context.Context, id int64) error {
	_, err := d.pool.Exec(ctx, "DELETE FROM devices WHERE id = $1", id)
	return err
}
