package database

import (
	"database/sql"
	"fmt"
	"net/url"

	"github.com/vibhu927/pg-next-full/app/models"
)

// ListProperties returns the caller's properties, newest first, with room
// counts derived from actual room rows.
func ListProperties(db *sql.DB, caller models.Caller) ([]*models.Property, error) {
	query := `SELECT p.id, p.name, p.address, p.city, p.state, p.zip_code,
			  p.total_rooms, p.occupied_rooms, p.payment_qr_code, p.user_id,
			  p.created_at, p.updated_at,
			  COUNT(r.id) AS room_count,
			  COUNT(r.id) FILTER (WHERE r.is_available = false) AS occupied_count
			  FROM properties p
			  LEFT JOIN rooms r ON r.property_id = p.id
			  WHERE p.user_id = $1
			  GROUP BY p.id
			  ORDER BY p.created_at DESC`

	rows, err := db.Query(query, caller.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := []*models.Property{}
	for rows.Next() {
		p := &models.Property{}
		err := rows.Scan(
			&p.ID, &p.Name, &p.Address, &p.City, &p.State, &p.ZipCode,
			&p.TotalRooms, &p.OccupiedRooms, &p.PaymentQrCode, &p.UserID,
			&p.CreatedAt, &p.UpdatedAt,
			&p.RoomCount, &p.OccupiedCount,
		)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func getProperty(db *sql.DB, id string) (*models.Property, error) {
	p := &models.Property{}
	query := `SELECT id, name, address, city, state, zip_code, total_rooms,
			  occupied_rooms, payment_qr_code, user_id, created_at, updated_at
			  FROM properties WHERE id = $1`

	err := db.QueryRow(query, id).Scan(
		&p.ID, &p.Name, &p.Address, &p.City, &p.State, &p.ZipCode,
		&p.TotalRooms, &p.OccupiedRooms, &p.PaymentQrCode, &p.UserID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetProperty fetches a property the caller is allowed to see. Existence is
// checked before ownership so a missing id is a NotFound, never a Forbidden.
func GetProperty(db *sql.DB, caller models.Caller, id string) (*models.Property, error) {
	p, err := getProperty(db, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && p.UserID != caller.ID {
		return nil, models.ErrForbidden
	}
	return p, nil
}

func CreateProperty(db *sql.DB, caller models.Caller, p *models.Property) error {
	p.UserID = caller.ID
	query := `INSERT INTO properties (name, address, city, state, zip_code, total_rooms, occupied_rooms, user_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query,
		p.Name, p.Address, p.City, p.State, p.ZipCode,
		p.TotalRooms, p.OccupiedRooms, p.UserID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func UpdateProperty(db *sql.DB, caller models.Caller, p *models.Property) error {
	existing, err := getProperty(db, p.ID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && existing.UserID != caller.ID {
		return models.ErrForbidden
	}

	query := `UPDATE properties
			  SET name = $1, address = $2, city = $3, state = $4, zip_code = $5,
			      total_rooms = $6, occupied_rooms = $7, updated_at = NOW()
			  WHERE id = $8
			  RETURNING user_id, payment_qr_code, created_at, updated_at`
	return db.QueryRow(query,
		p.Name, p.Address, p.City, p.State, p.ZipCode,
		p.TotalRooms, p.OccupiedRooms, p.ID,
	).Scan(&p.UserID, &p.PaymentQrCode, &p.CreatedAt, &p.UpdatedAt)
}

func DeleteProperty(db *sql.DB, caller models.Caller, id string) error {
	existing, err := getProperty(db, id)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && existing.UserID != caller.ID {
		return models.ErrForbidden
	}

	// Rooms, tenants and payments under the property go with it (FK cascade).
	_, err = db.Exec(`DELETE FROM properties WHERE id = $1`, id)
	return err
}

// buildUPIPayload builds the upi:// deep link encoded into the property's
// payment QR code. Rendering the actual QR image is the client's concern.
func buildUPIPayload(propertyName string) string {
	upiID := "example@upi"
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&cu=INR", upiID, url.QueryEscape(propertyName))
}

// GeneratePropertyQRCode (re)builds and stores the UPI payload. Owner only.
func GeneratePropertyQRCode(db *sql.DB, caller models.Caller, id string) (string, error) {
	p, err := getProperty(db, id)
	if err != nil {
		return "", err
	}
	if !caller.IsAdmin() && p.UserID != caller.ID {
		return "", models.ErrForbidden
	}

	payload := buildUPIPayload(p.Name)
	if _, err := db.Exec(`UPDATE properties SET payment_qr_code = $1, updated_at = NOW() WHERE id = $2`, payload, id); err != nil {
		return "", err
	}
	return payload, nil
}

// GetPropertyQRCode returns the stored UPI payload, generating it on first
// read. Readable by the owner or by a tenant living in the property (linked by
// email match).
func GetPropertyQRCode(db *sql.DB, caller models.Caller, id string) (string, error) {
	p, err := getProperty(db, id)
	if err != nil {
		return "", err
	}

	authorized := caller.IsAdmin() || p.UserID == caller.ID
	if !authorized {
		var isTenant bool
		query := `SELECT EXISTS(
				  SELECT 1 FROM tenants t
				  JOIN rooms r ON t.room_id = r.id
				  WHERE r.property_id = $1 AND LOWER(t.email) = LOWER($2))`
		if err := db.QueryRow(query, id, caller.Email).Scan(&isTenant); err != nil {
			return "", err
		}
		authorized = isTenant
	}
	if !authorized {
		return "", models.ErrForbidden
	}

	if p.PaymentQrCode != nil && *p.PaymentQrCode != "" {
		return *p.PaymentQrCode, nil
	}

	payload := buildUPIPayload(p.Name)
	if _, err := db.Exec(`UPDATE properties SET payment_qr_code = $1, updated_at = NOW() WHERE id = $2`, payload, id); err != nil {
		return "", err
	}
	return payload, nil
}
