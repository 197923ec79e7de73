package database

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibhu927/pg-next-full/app/models"
)

var tenantUser = models.Caller{ID: "user-9", Email: "rahul@example.com", Role: models.RoleUser}

func paymentRows(status models.PaymentStatus, tenantEmail, landlordID string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "amount", "payment_type", "status", "payment_date", "tenant_id",
		"created_at", "updated_at",
		"tenant_name", "tenant_email", "tenant_user_id", "rent_amount",
		"room_number", "property_name", "property_user_id",
	}).AddRow("pay-1", "8500", "RENT", string(status), now, "tenant-1",
		now, now,
		"Rahul Sharma", tenantEmail, landlordID, "8500",
		"101", "Sunshine Apartments", landlordID)
}

func TestPaymentAccessRules(t *testing.T) {
	pay := &models.Payment{
		Tenant: &models.Tenant{
			Email:  "rahul@example.com",
			UserID: landlord.ID,
			Room:   &models.Room{Property: &models.Property{UserID: landlord.ID}},
		},
	}

	stranger := models.Caller{ID: "user-42", Email: "other@example.com", Role: models.RoleUser}

	assert.True(t, canAccessPayment(admin, pay))
	assert.True(t, canAccessPayment(landlord, pay))
	assert.True(t, canAccessPayment(tenantUser, pay))
	assert.False(t, canAccessPayment(stranger, pay))

	assert.True(t, canSettlePayment(admin, pay))
	assert.True(t, canSettlePayment(landlord, pay))
	assert.False(t, canSettlePayment(tenantUser, pay))
	assert.False(t, canSettlePayment(stranger, pay))
}

func TestMarkPaymentPaid(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM payments pay`)).
		WithArgs("pay-1").
		WillReturnRows(paymentRows(models.PaymentStatusPending, "rahul@example.com", landlord.ID))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`)).
		WithArgs(models.PaymentStatusWaitingApproval, "pay-1", models.PaymentStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	pay, err := MarkPaymentPaid(db, tenantUser, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusWaitingApproval, pay.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaymentPaidRequiresTenantUser(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM payments pay`)).
		WithArgs("pay-1").
		WillReturnRows(paymentRows(models.PaymentStatusPending, "rahul@example.com", landlord.ID))

	// The landlord records and approves; only the occupant claims a payment.
	_, err := MarkPaymentPaid(db, landlord, "pay-1")
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaymentPaidAlreadyClaimed(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM payments pay`)).
		WithArgs("pay-1").
		WillReturnRows(paymentRows(models.PaymentStatusWaitingApproval, "rahul@example.com", landlord.ID))

	_, err := MarkPaymentPaid(db, tenantUser, "pay-1")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprovePayment(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM payments pay`)).
		WithArgs("pay-1").
		WillReturnRows(paymentRows(models.PaymentStatusWaitingApproval, "rahul@example.com", landlord.ID))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`)).
		WithArgs(models.PaymentStatusPaid, "pay-1", models.PaymentStatusWaitingApproval).
		WillReturnResult(sqlmock.NewResult(0, 1))

	pay, err := ApprovePayment(db, landlord, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, pay.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprovePaymentLostRace(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM payments pay`)).
		WithArgs("pay-1").
		WillReturnRows(paymentRows(models.PaymentStatusWaitingApproval, "rahul@example.com", landlord.ID))
	// Another settle got there first: the compare-and-set matches no row.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`)).
		WithArgs(models.PaymentStatusPaid, "pay-1", models.PaymentStatusWaitingApproval).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := ApprovePayment(db, landlord, "pay-1")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeclinePaymentFromPendingRejected(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM payments pay`)).
		WithArgs("pay-1").
		WillReturnRows(paymentRows(models.PaymentStatusPending, "rahul@example.com", landlord.ID))

	_, err := DeclinePayment(db, landlord, "pay-1")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForceSetPaymentStatus(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM payments pay`)).
		WithArgs("pay-1").
		WillReturnRows(paymentRows(models.PaymentStatusPaid, "rahul@example.com", landlord.ID))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2`)).
		WithArgs(models.PaymentStatusRefunded, "pay-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	pay, err := ForceSetPaymentStatus(db, admin, "pay-1", models.PaymentStatusRefunded)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, pay.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForceSetPaymentStatusAdminOnly(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM payments pay`)).
		WithArgs("pay-1").
		WillReturnRows(paymentRows(models.PaymentStatusPaid, "rahul@example.com", landlord.ID))

	_, err := ForceSetPaymentStatus(db, landlord, "pay-1", models.PaymentStatusRefunded)
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentPinsTenantRentAmount(t *testing.T) {
	db, mock := newMock(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM tenants t`)).
		WithArgs("tenant-1").
		WillReturnRows(tenantRows("tenant-1", "room-1", landlord.ID, "rahul@example.com"))
	// The tenant asked to record 1, but a tenant-side RENT payment always uses
	// the rent amount on file.
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO payments`)).
		WithArgs(decimal.RequireFromString("8500"), models.PaymentTypeRent, models.PaymentStatusWaitingApproval, "tenant-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "payment_date", "created_at", "updated_at"}).
			AddRow("pay-1", now, now, now))

	pay := &models.Payment{
		TenantID:    "tenant-1",
		Amount:      decimal.NewFromInt(1),
		PaymentType: models.PaymentTypeRent,
		Status:      models.PaymentStatusWaitingApproval,
	}
	err := CreatePayment(db, tenantUser, pay)
	require.NoError(t, err)
	assert.Equal(t, "pay-1", pay.ID)
	assert.True(t, pay.Amount.Equal(decimal.NewFromInt(8500)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentNonAdminCannotStartPaid(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM tenants t`)).
		WithArgs("tenant-1").
		WillReturnRows(tenantRows("tenant-1", "room-1", landlord.ID, "rahul@example.com"))

	pay := &models.Payment{
		TenantID:    "tenant-1",
		Amount:      decimal.NewFromInt(8500),
		PaymentType: models.PaymentTypeRent,
		Status:      models.PaymentStatusPaid,
	}
	err := CreatePayment(db, landlord, pay)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentDefaultsToPending(t *testing.T) {
	db, mock := newMock(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM tenants t`)).
		WithArgs("tenant-1").
		WillReturnRows(tenantRows("tenant-1", "room-1", landlord.ID, "rahul@example.com"))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO payments`)).
		WithArgs(decimal.NewFromInt(500), models.PaymentTypeMaintenance, models.PaymentStatusPending, "tenant-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "payment_date", "created_at", "updated_at"}).
			AddRow("pay-2", now, now, now))

	pay := &models.Payment{
		TenantID:    "tenant-1",
		Amount:      decimal.NewFromInt(500),
		PaymentType: models.PaymentTypeMaintenance,
	}
	err := CreatePayment(db, landlord, pay)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, pay.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPaymentStrangerForbidden(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM payments pay`)).
		WithArgs("pay-1").
		WillReturnRows(paymentRows(models.PaymentStatusPending, "rahul@example.com", landlord.ID))

	stranger := models.Caller{ID: "user-42", Email: "other@example.com", Role: models.RoleUser}
	_, err := GetPayment(db, stranger, "pay-1")
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}
