package database

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/vibhu927/pg-next-full/app/models"
)

// GetOccupancySummary builds the occupancy read-model for the caller's
// properties, derived from room/tenant/payment rows at query time. The
// user-entered total_rooms/occupied_rooms counters are deliberately ignored.
func GetOccupancySummary(db *sql.DB, caller models.Caller) (*models.OccupancySummary, error) {
	summary := &models.OccupancySummary{
		ExpectedRent: decimal.Zero,
		Collected:    decimal.Zero,
		Properties:   []models.PropertyOccupancy{},
	}

	// 1. Room counts per property.
	rows, err := db.Query(`
		SELECT p.id, p.name,
		       COUNT(r.id) AS room_count,
		       COUNT(r.id) FILTER (WHERE r.is_available = false) AS occupied_count
		FROM properties p
		LEFT JOIN rooms r ON r.property_id = p.id
		WHERE p.user_id = $1
		GROUP BY p.id, p.name
		ORDER BY p.name ASC`, caller.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := map[string]int{}
	for rows.Next() {
		po := models.PropertyOccupancy{ExpectedRent: decimal.Zero, Collected: decimal.Zero}
		if err := rows.Scan(&po.PropertyID, &po.PropertyName, &po.RoomCount, &po.OccupiedCount); err != nil {
			return nil, err
		}
		if po.RoomCount > 0 {
			po.OccupancyRate = float64(po.OccupiedCount) / float64(po.RoomCount) * 100
		}
		index[po.PropertyID] = len(summary.Properties)
		summary.Properties = append(summary.Properties, po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 2. Expected monthly rent from live tenants.
	rentRows, err := db.Query(`
		SELECT r.property_id, COALESCE(SUM(t.rent_amount), 0)
		FROM tenants t
		JOIN rooms r ON t.room_id = r.id
		JOIN properties p ON r.property_id = p.id
		WHERE p.user_id = $1
		GROUP BY r.property_id`, caller.ID)
	if err != nil {
		return nil, err
	}
	defer rentRows.Close()

	for rentRows.Next() {
		var propertyID string
		var rent decimal.Decimal
		if err := rentRows.Scan(&propertyID, &rent); err != nil {
			return nil, err
		}
		if i, ok := index[propertyID]; ok {
			summary.Properties[i].ExpectedRent = rent
		}
	}
	if err := rentRows.Err(); err != nil {
		return nil, err
	}

	// 3. Collected amounts from PAID payments.
	paidRows, err := db.Query(`
		SELECT r.property_id, COALESCE(SUM(pay.amount), 0)
		FROM payments pay
		JOIN tenants t ON pay.tenant_id = t.id
		JOIN rooms r ON t.room_id = r.id
		JOIN properties p ON r.property_id = p.id
		WHERE p.user_id = $1 AND pay.status = 'PAID'
		GROUP BY r.property_id`, caller.ID)
	if err != nil {
		return nil, err
	}
	defer paidRows.Close()

	for paidRows.Next() {
		var propertyID string
		var collected decimal.Decimal
		if err := paidRows.Scan(&propertyID, &collected); err != nil {
			return nil, err
		}
		if i, ok := index[propertyID]; ok {
			summary.Properties[i].Collected = collected
		}
	}
	if err := paidRows.Err(); err != nil {
		return nil, err
	}

	// 4. Totals.
	for _, po := range summary.Properties {
		summary.TotalProperties++
		summary.TotalRooms += po.RoomCount
		summary.OccupiedRooms += po.OccupiedCount
		summary.ExpectedRent = summary.ExpectedRent.Add(po.ExpectedRent)
		summary.Collected = summary.Collected.Add(po.Collected)
	}
	if summary.TotalRooms > 0 {
		summary.OccupancyRate = float64(summary.OccupiedRooms) / float64(summary.TotalRooms) * 100
	}

	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM tenants t
		JOIN rooms r ON t.room_id = r.id
		JOIN properties p ON r.property_id = p.id
		WHERE p.user_id = $1`, caller.ID).Scan(&summary.TotalTenants)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM payments pay
		JOIN tenants t ON pay.tenant_id = t.id
		JOIN rooms r ON t.room_id = r.id
		JOIN properties p ON r.property_id = p.id
		WHERE p.user_id = $1 AND pay.status = 'WAITING_APPROVAL'`, caller.ID).Scan(&summary.PendingApproval)
	if err != nil {
		return nil, err
	}

	return summary, nil
}
