package database

import (
	"database/sql"

	"github.com/vibhu927/pg-next-full/app/models"
)

// The assign/reassign/release operations below are the only writers of
// rooms.is_available. Each runs as a single transaction with the target room
// row locked, so two concurrent requests cannot both see the same room as
// available and double-book it.

// lockRoom reads a room inside the transaction with a row lock held until
// commit or rollback.
func lockRoom(tx *sql.Tx, roomID string) (propertyID string, isAvailable bool, err error) {
	err = tx.QueryRow(`SELECT property_id, is_available FROM rooms WHERE id = $1 FOR UPDATE`, roomID).
		Scan(&propertyID, &isAvailable)
	if err == sql.ErrNoRows {
		return "", false, models.ErrNotFound
	}
	return propertyID, isAvailable, err
}

// roomOccupied reports whether any live tenant references the room. Checked
// under the row lock: the availability flag alone is not trusted.
func roomOccupied(tx *sql.Tx, roomID string) (bool, error) {
	var occupied bool
	err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM tenants WHERE room_id = $1)`, roomID).Scan(&occupied)
	return occupied, err
}

// AssignTenant creates a tenant in the given room and flips the room to
// unavailable, atomically. The room must exist, belong to propertyID and be
// free, otherwise nothing is written.
func AssignTenant(db *sql.DB, caller models.Caller, t *models.Tenant, propertyID string) error {
	property, err := getProperty(db, propertyID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && property.UserID != caller.ID {
		return models.ErrForbidden
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	roomPropertyID, isAvailable, err := lockRoom(tx, t.RoomID)
	if err != nil {
		return err
	}
	if roomPropertyID != propertyID {
		return models.ErrRoomMismatch
	}
	occupied, err := roomOccupied(tx, t.RoomID)
	if err != nil {
		return err
	}
	if !isAvailable || occupied {
		return models.ErrRoomUnavailable
	}

	t.UserID = caller.ID
	query := `INSERT INTO tenants (name, email, phone, lease_end, rent_amount, room_id, user_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, lease_start, created_at, updated_at`
	err = tx.QueryRow(query,
		t.Name, t.Email, t.Phone, t.LeaseEnd, t.RentAmount, t.RoomID, t.UserID,
	).Scan(&t.ID, &t.LeaseStart, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return err
	}

	if _, err = tx.Exec(`UPDATE rooms SET is_available = false, updated_at = NOW() WHERE id = $1`, t.RoomID); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateTenant updates tenant fields. When the room changes it frees the old
// room and takes the new one in the same transaction; when it does not, the
// availability flags are left alone.
func UpdateTenant(db *sql.DB, caller models.Caller, t *models.Tenant, propertyID string) error {
	existing, err := getTenant(db, t.ID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && existing.UserID != caller.ID {
		return models.ErrForbidden
	}

	property, err := getProperty(db, propertyID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && property.UserID != caller.ID {
		return models.ErrForbidden
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if t.RoomID != existing.RoomID {
		roomPropertyID, isAvailable, err := lockRoom(tx, t.RoomID)
		if err != nil {
			return err
		}
		if roomPropertyID != propertyID {
			return models.ErrRoomMismatch
		}
		occupied, err := roomOccupied(tx, t.RoomID)
		if err != nil {
			return err
		}
		if !isAvailable || occupied {
			return models.ErrRoomUnavailable
		}

		if _, err = tx.Exec(`UPDATE rooms SET is_available = true, updated_at = NOW() WHERE id = $1`, existing.RoomID); err != nil {
			return err
		}
		if _, err = tx.Exec(`UPDATE rooms SET is_available = false, updated_at = NOW() WHERE id = $1`, t.RoomID); err != nil {
			return err
		}
	}

	query := `UPDATE tenants
			  SET name = $1, email = $2, phone = $3, lease_end = $4,
			      rent_amount = $5, room_id = $6, updated_at = NOW()
			  WHERE id = $7
			  RETURNING lease_start, user_id, created_at, updated_at`
	err = tx.QueryRow(query,
		t.Name, t.Email, t.Phone, t.LeaseEnd, t.RentAmount, t.RoomID, t.ID,
	).Scan(&t.LeaseStart, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteTenant removes the tenant and frees its room, atomically.
func DeleteTenant(db *sql.DB, caller models.Caller, id string) error {
	existing, err := getTenant(db, id)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && existing.UserID != caller.ID {
		return models.ErrForbidden
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.Exec(`DELETE FROM tenants WHERE id = $1`, id); err != nil {
		return err
	}
	if _, err = tx.Exec(`UPDATE rooms SET is_available = true, updated_at = NOW() WHERE id = $1`, existing.RoomID); err != nil {
		return err
	}

	return tx.Commit()
}

func getTenant(db *sql.DB, id string) (*models.Tenant, error) {
	t := &models.Tenant{Room: &models.Room{Property: &models.Property{}}}
	query := `SELECT t.id, t.name, t.email, t.phone, t.lease_start, t.lease_end,
			  t.rent_amount, t.room_id, t.user_id, t.created_at, t.updated_at,
			  r.room_number, r.type, r.property_id, p.name, p.user_id
			  FROM tenants t
			  JOIN rooms r ON t.room_id = r.id
			  JOIN properties p ON r.property_id = p.id
			  WHERE t.id = $1`

	err := db.QueryRow(query, id).Scan(
		&t.ID, &t.Name, &t.Email, &t.Phone, &t.LeaseStart, &t.LeaseEnd,
		&t.RentAmount, &t.RoomID, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
		&t.Room.RoomNumber, &t.Room.Type, &t.Room.PropertyID,
		&t.Room.Property.Name, &t.Room.Property.UserID,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Room.ID = t.RoomID
	t.Room.Property.ID = t.Room.PropertyID
	return t, nil
}

// GetTenant fetches a tenant record; the caller must be the owning landlord.
func GetTenant(db *sql.DB, caller models.Caller, id string) (*models.Tenant, error) {
	t, err := getTenant(db, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && t.UserID != caller.ID {
		return nil, models.ErrForbidden
	}
	return t, nil
}

// GetTenantByEmail is the tenant-side self lookup: a USER account is linked to
// its tenant record by email match, not by ownership.
func GetTenantByEmail(db *sql.DB, email string) (*models.Tenant, error) {
	var id string
	err := db.QueryRow(`SELECT id FROM tenants WHERE LOWER(email) = LOWER($1) ORDER BY created_at DESC LIMIT 1`, email).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return getTenant(db, id)
}

// ListTenants returns tenants of the caller's properties, or of one property.
func ListTenants(db *sql.DB, caller models.Caller, propertyID string) ([]*models.Tenant, error) {
	query := `SELECT t.id, t.name, t.email, t.phone, t.lease_start, t.lease_end,
			  t.rent_amount, t.room_id, t.user_id, t.created_at, t.updated_at,
			  r.room_number, r.type, r.property_id, p.name, p.user_id
			  FROM tenants t
			  JOIN rooms r ON t.room_id = r.id
			  JOIN properties p ON r.property_id = p.id`

	var args []interface{}
	if propertyID != "" {
		query += ` WHERE r.property_id = $1`
		args = append(args, propertyID)
	} else {
		query += ` WHERE p.user_id = $1`
		args = append(args, caller.ID)
	}
	query += ` ORDER BY t.created_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tenants := []*models.Tenant{}
	for rows.Next() {
		t := &models.Tenant{Room: &models.Room{Property: &models.Property{}}}
		err := rows.Scan(
			&t.ID, &t.Name, &t.Email, &t.Phone, &t.LeaseStart, &t.LeaseEnd,
			&t.RentAmount, &t.RoomID, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
			&t.Room.RoomNumber, &t.Room.Type, &t.Room.PropertyID,
			&t.Room.Property.Name, &t.Room.Property.UserID,
		)
		if err != nil {
			return nil, err
		}
		t.Room.ID = t.RoomID
		t.Room.Property.ID = t.Room.PropertyID
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}
