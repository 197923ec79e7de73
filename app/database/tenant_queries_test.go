package database

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibhu927/pg-next-full/app/models"
)

var (
	landlord = models.Caller{ID: "landlord-1", Email: "owner@example.com", Role: models.RoleUser}
	admin    = models.Caller{ID: "admin-1", Email: "admin@example.com", Role: models.RoleAdmin}
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func propertyRows(ownerID string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "address", "city", "state", "zip_code",
		"total_rooms", "occupied_rooms", "payment_qr_code", "user_id",
		"created_at", "updated_at",
	}).AddRow("prop-1", "Sunshine Apartments", "123 MG Road", "Bengaluru", "Karnataka", "560001",
		10, 0, nil, ownerID, now, now)
}

func tenantRows(tenantID, roomID, ownerID, email string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "lease_start", "lease_end",
		"rent_amount", "room_id", "user_id", "created_at", "updated_at",
		"room_number", "type", "property_id", "property_name", "property_user_id",
	}).AddRow(tenantID, "Rahul Sharma", email, "+919876543210", now, now.AddDate(1, 0, 0),
		"8500", roomID, ownerID, now, now,
		"101", "SINGLE", "prop-1", "Sunshine Apartments", ownerID)
}

func TestAssignTenantCommitsTenantAndRoom(t *testing.T) {
	db, mock := newMock(t)

	now := time.Now()
	tenant := &models.Tenant{
		Name:       "Rahul Sharma",
		Email:      "rahul@example.com",
		Phone:      "+919876543210",
		LeaseEnd:   now.AddDate(1, 0, 0),
		RentAmount: decimal.NewFromInt(8500),
		RoomID:     "room-1",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM properties WHERE id = $1`)).
		WithArgs("prop-1").
		WillReturnRows(propertyRows(landlord.ID))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM rooms WHERE id = $1 FOR UPDATE`)).
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"property_id", "is_available"}).AddRow("prop-1", true))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM tenants WHERE room_id = $1)`)).
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO tenants`)).
		WithArgs(tenant.Name, tenant.Email, tenant.Phone, tenant.LeaseEnd, tenant.RentAmount, "room-1", landlord.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lease_start", "created_at", "updated_at"}).
			AddRow("tenant-1", now, now, now))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET is_available = false`)).
		WithArgs("room-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := AssignTenant(db, landlord, tenant, "prop-1")
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", tenant.ID)
	assert.Equal(t, landlord.ID, tenant.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignTenantUnavailableRoomRollsBack(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM properties WHERE id = $1`)).
		WithArgs("prop-1").
		WillReturnRows(propertyRows(landlord.ID))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM rooms WHERE id = $1 FOR UPDATE`)).
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"property_id", "is_available"}).AddRow("prop-1", false))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM tenants WHERE room_id = $1)`)).
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	tenant := &models.Tenant{RoomID: "room-1", RentAmount: decimal.NewFromInt(8500)}
	err := AssignTenant(db, landlord, tenant, "prop-1")
	assert.ErrorIs(t, err, models.ErrRoomUnavailable)
	// No tenant insert and no room update reached the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignTenantRoomFromOtherProperty(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM properties WHERE id = $1`)).
		WithArgs("prop-1").
		WillReturnRows(propertyRows(landlord.ID))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM rooms WHERE id = $1 FOR UPDATE`)).
		WithArgs("room-9").
		WillReturnRows(sqlmock.NewRows([]string{"property_id", "is_available"}).AddRow("prop-2", true))
	mock.ExpectRollback()

	tenant := &models.Tenant{RoomID: "room-9", RentAmount: decimal.NewFromInt(8500)}
	err := AssignTenant(db, landlord, tenant, "prop-1")
	assert.ErrorIs(t, err, models.ErrRoomMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignTenantForeignPropertyForbidden(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM properties WHERE id = $1`)).
		WithArgs("prop-1").
		WillReturnRows(propertyRows("someone-else"))

	tenant := &models.Tenant{RoomID: "room-1", RentAmount: decimal.NewFromInt(8500)}
	err := AssignTenant(db, landlord, tenant, "prop-1")
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignTenantMissingRoom(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM properties WHERE id = $1`)).
		WithArgs("prop-1").
		WillReturnRows(propertyRows(landlord.ID))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM rooms WHERE id = $1 FOR UPDATE`)).
		WithArgs("room-gone").
		WillReturnRows(sqlmock.NewRows([]string{"property_id", "is_available"}))
	mock.ExpectRollback()

	tenant := &models.Tenant{RoomID: "room-gone", RentAmount: decimal.NewFromInt(8500)}
	err := AssignTenant(db, landlord, tenant, "prop-1")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTenantReassignTogglesBothRooms(t *testing.T) {
	db, mock := newMock(t)

	now := time.Now()
	tenant := &models.Tenant{
		ID:         "tenant-1",
		Name:       "Rahul Sharma",
		Email:      "rahul@example.com",
		Phone:      "+919876543210",
		LeaseEnd:   now.AddDate(1, 0, 0),
		RentAmount: decimal.NewFromInt(9000),
		RoomID:     "room-2",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM tenants t`)).
		WithArgs("tenant-1").
		WillReturnRows(tenantRows("tenant-1", "room-1", landlord.ID, "rahul@example.com"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM properties WHERE id = $1`)).
		WithArgs("prop-1").
		WillReturnRows(propertyRows(landlord.ID))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM rooms WHERE id = $1 FOR UPDATE`)).
		WithArgs("room-2").
		WillReturnRows(sqlmock.NewRows([]string{"property_id", "is_available"}).AddRow("prop-1", true))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM tenants WHERE room_id = $1)`)).
		WithArgs("room-2").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET is_available = true`)).
		WithArgs("room-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET is_available = false`)).
		WithArgs("room-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE tenants`)).
		WithArgs(tenant.Name, tenant.Email, tenant.Phone, tenant.LeaseEnd, tenant.RentAmount, "room-2", "tenant-1").
		WillReturnRows(sqlmock.NewRows([]string{"lease_start", "user_id", "created_at", "updated_at"}).
			AddRow(now, landlord.ID, now, now))
	mock.ExpectCommit()

	err := UpdateTenant(db, landlord, tenant, "prop-1")
	require.NoError(t, err)
	assert.Equal(t, landlord.ID, tenant.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTenantSameRoomLeavesAvailabilityAlone(t *testing.T) {
	db, mock := newMock(t)

	now := time.Now()
	tenant := &models.Tenant{
		ID:         "tenant-1",
		Name:       "Rahul Sharma",
		Email:      "rahul@example.com",
		Phone:      "+919876543210",
		LeaseEnd:   now.AddDate(1, 0, 0),
		RentAmount: decimal.NewFromInt(9000),
		RoomID:     "room-1",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM tenants t`)).
		WithArgs("tenant-1").
		WillReturnRows(tenantRows("tenant-1", "room-1", landlord.ID, "rahul@example.com"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM properties WHERE id = $1`)).
		WithArgs("prop-1").
		WillReturnRows(propertyRows(landlord.ID))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE tenants`)).
		WithArgs(tenant.Name, tenant.Email, tenant.Phone, tenant.LeaseEnd, tenant.RentAmount, "room-1", "tenant-1").
		WillReturnRows(sqlmock.NewRows([]string{"lease_start", "user_id", "created_at", "updated_at"}).
			AddRow(now, landlord.ID, now, now))
	mock.ExpectCommit()

	err := UpdateTenant(db, landlord, tenant, "prop-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTenantFreesRoom(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM tenants t`)).
		WithArgs("tenant-1").
		WillReturnRows(tenantRows("tenant-1", "room-1", landlord.ID, "rahul@example.com"))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tenants WHERE id = $1`)).
		WithArgs("tenant-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET is_available = true`)).
		WithArgs("room-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := DeleteTenant(db, landlord, "tenant-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTenantForeignLandlordForbidden(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM tenants t`)).
		WithArgs("tenant-1").
		WillReturnRows(tenantRows("tenant-1", "room-1", "someone-else", "rahul@example.com"))

	err := DeleteTenant(db, landlord, "tenant-1")
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTenantNotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM tenants t`)).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := GetTenant(db, admin, "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTenantByEmailMatchesCaseInsensitively(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM tenants WHERE LOWER(email) = LOWER($1)`)).
		WithArgs("Rahul@Example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("tenant-1"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM tenants t`)).
		WithArgs("tenant-1").
		WillReturnRows(tenantRows("tenant-1", "room-1", landlord.ID, "rahul@example.com"))

	tenant, err := GetTenantByEmail(db, "Rahul@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", tenant.ID)
	assert.Equal(t, "101", tenant.Room.RoomNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}
