package database

import (
	"database/sql"

	"github.com/vibhu927/pg-next-full/app/models"
)

// ListRooms returns rooms of the caller's properties, or of one property when
// propertyID is set.
func ListRooms(db *sql.DB, caller models.Caller, propertyID string) ([]*models.Room, error) {
	query := `SELECT r.id, r.room_number, r.floor, r.type, r.capacity, r.price,
			  r.is_available, r.property_id, r.created_at, r.updated_at,
			  p.name, p.user_id
			  FROM rooms r
			  JOIN properties p ON r.property_id = p.id`

	var args []interface{}
	if propertyID != "" {
		query += ` WHERE r.property_id = $1`
		args = append(args, propertyID)
	} else {
		query += ` WHERE p.user_id = $1`
		args = append(args, caller.ID)
	}
	query += ` ORDER BY r.room_number ASC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []*models.Room{}
	for rows.Next() {
		r := &models.Room{Property: &models.Property{}}
		err := rows.Scan(
			&r.ID, &r.RoomNumber, &r.Floor, &r.Type, &r.Capacity, &r.Price,
			&r.IsAvailable, &r.PropertyID, &r.CreatedAt, &r.UpdatedAt,
			&r.Property.Name, &r.Property.UserID,
		)
		if err != nil {
			return nil, err
		}
		r.Property.ID = r.PropertyID
		result = append(result, r)
	}
	return result, rows.Err()
}

func getRoom(db *sql.DB, id string) (*models.Room, error) {
	r := &models.Room{Property: &models.Property{}}
	query := `SELECT r.id, r.room_number, r.floor, r.type, r.capacity, r.price,
			  r.is_available, r.property_id, r.created_at, r.updated_at,
			  p.name, p.user_id
			  FROM rooms r
			  JOIN properties p ON r.property_id = p.id
			  WHERE r.id = $1`

	err := db.QueryRow(query, id).Scan(
		&r.ID, &r.RoomNumber, &r.Floor, &r.Type, &r.Capacity, &r.Price,
		&r.IsAvailable, &r.PropertyID, &r.CreatedAt, &r.UpdatedAt,
		&r.Property.Name, &r.Property.UserID,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	r.Property.ID = r.PropertyID
	return r, nil
}

// GetRoom fetches a room; the caller must own the parent property.
func GetRoom(db *sql.DB, caller models.Caller, id string) (*models.Room, error) {
	r, err := getRoom(db, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && r.Property.UserID != caller.ID {
		return nil, models.ErrForbidden
	}
	return r, nil
}

func CreateRoom(db *sql.DB, caller models.Caller, r *models.Room) error {
	property, err := getProperty(db, r.PropertyID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && property.UserID != caller.ID {
		return models.ErrForbidden
	}

	query := `INSERT INTO rooms (room_number, floor, type, capacity, price, is_available, property_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query,
		r.RoomNumber, r.Floor, r.Type, r.Capacity, r.Price, r.IsAvailable, r.PropertyID,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
}

func UpdateRoom(db *sql.DB, caller models.Caller, r *models.Room) error {
	existing, err := getRoom(db, r.ID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && existing.Property.UserID != caller.ID {
		return models.ErrForbidden
	}

	// Moving the room to another property re-checks the new property's owner.
	if r.PropertyID != existing.PropertyID {
		newProperty, err := getProperty(db, r.PropertyID)
		if err != nil {
			return err
		}
		if !caller.IsAdmin() && newProperty.UserID != caller.ID {
			return models.ErrForbidden
		}
	}

	query := `UPDATE rooms
			  SET room_number = $1, floor = $2, type = $3, capacity = $4,
			      price = $5, is_available = $6, property_id = $7, updated_at = NOW()
			  WHERE id = $8
			  RETURNING created_at, updated_at`
	return db.QueryRow(query,
		r.RoomNumber, r.Floor, r.Type, r.Capacity, r.Price,
		r.IsAvailable, r.PropertyID, r.ID,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
}

func DeleteRoom(db *sql.DB, caller models.Caller, id string) error {
	existing, err := getRoom(db, id)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && existing.Property.UserID != caller.ID {
		return models.ErrForbidden
	}

	_, err = db.Exec(`DELETE FROM rooms WHERE id = $1`, id)
	return err
}
