package db

import (
	"context"

	"smartlight/internal/models"
)

// ListSpacesByOwner fetches all spaces owned by a user.
func (d *DB) ListSpacesByOwner(ctx context.Context, ownerID int64) ([]models.Space, error) {
	rows, err := d.pool.Query(ctx,
		"SELECT id, name, owner_id, created_at FROM spaces WHERE owner_id = $1 ORDER BY id", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spaces := []models.Space{}
	for rows.Next() {
		var s models.Space
		if err := rows.Scan(&s.ID, &s.Name, &s.OwnerID, &s.CreatedAt); err != nil {
			return nil, err
		}
		spaces = append(spaces, s)
	}
	return spaces, rows.Err()
}

// CreateSpace inserts a space.
func (d *DB) CreateSpace(ctx context.Context, name string, ownerID int64) (*models.Space, error) {
	var s models.Space
	err := d.pool.QueryRow(ctx,
		"INSERT INTO spaces (name, owner_id, created_at) VALUES ($1, $2, NOW()) RETURNING id, name, owner_id, created_at",
		name, ownerID).Scan(&s.ID, &s.Name, &s.OwnerID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSpace removes a space.
func (d *DB) DeleteSpace(ctx context.Context, id int64) error {
	_, err := d.pool.Exec(ctx, "DELETE FROM spaces WHERE id = $1", id)
	return err
}

// ListRoomsBySpace fetches all rooms in a space.
func (d *DB) ListRoomsBySpace(ctx context.Context, spaceID int64) ([]models.Room, error) {
	rows, err := d.pool.Query(ctx,
		"SELECT id, name, space_id, created_at FROM rooms WHERE space_id = $1 ORDER BY id", spaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		var r models.Room
		if err := rows.Scan(&r.ID, &r.Name, &r.SpaceID, &r.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// CreateRoom inserts a room.
func (d *DB) CreateRoom(ctx context.Context, name string, spaceID int64) (*models.Room, error) {
	var r models.Room
	err := d.pool.QueryRow(ctx,
		"INSERT INTO rooms (name, space_id, created_at) VALUES ($1, $2, NOW()) RETURNING id, name, space_id, created_at",
		name, spaceID).Scan(&r.ID, &r.Name, &r.SpaceID, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteRoom removes a room.
func (d *DB) DeleteRoom(ctx context.Context, id int64) error {
	_, err := d.pool.Exec(ctx, "DELETE FROM rooms WHERE id = $1", id)
	return err
}
