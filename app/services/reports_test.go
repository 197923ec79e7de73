package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibhu927/pg-next-full/app/models"
)

func samplePayment(id string, status models.PaymentStatus, amount int64) *models.Payment {
	return &models.Payment{
		ID:          id,
		Amount:      decimal.NewFromInt(amount),
		PaymentType: models.PaymentTypeRent,
		Status:      status,
		PaymentDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Tenant: &models.Tenant{
			Name:  "Rahul Sharma",
			Email: "rahul@example.com",
			Room: &models.Room{
				RoomNumber: "101",
				Property:   &models.Property{Name: "Sunshine Apartments"},
			},
		},
	}
}

func TestBuildPaymentsWorkbook(t *testing.T) {
	payments := []*models.Payment{
		samplePayment("pay-1", models.PaymentStatusPaid, 8500),
		samplePayment("pay-2", models.PaymentStatusPending, 500),
	}

	f, err := BuildPaymentsWorkbook(payments)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payments")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, paymentReportHeader, rows[0])

	assert.Equal(t, "pay-1", rows[1][0])
	assert.Equal(t, "Rahul Sharma", rows[1][1])
	assert.Equal(t, "Sunshine Apartments", rows[1][3])
	assert.Equal(t, "101", rows[1][4])
	assert.Equal(t, "PAID", rows[1][6])
	assert.Equal(t, "8500", rows[1][7])
	assert.Equal(t, "2026-08-01", rows[1][8])

	assert.Equal(t, "pay-2", rows[2][0])
	assert.Equal(t, "PENDING", rows[2][6])
}

func TestBuildPaymentsWorkbookEmpty(t *testing.T) {
	f, err := BuildPaymentsWorkbook(nil)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payments")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, paymentReportHeader, rows[0])
}
