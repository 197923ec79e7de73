package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vibhu927/pg-next-full/app/models"
)

var paymentReportHeader = []string{
	"Payment ID", "Tenant", "Tenant Email", "Property", "Room",
	"Type", "Status", "Amount", "Payment Date",
}

// BuildPaymentsWorkbook renders a payments ledger as an xlsx workbook, one
// row per payment under a header row.
func BuildPaymentsWorkbook(payments []*models.Payment) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Payments"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for i, title := range paymentReportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for row, pay := range payments {
		values := []interface{}{
			pay.ID,
			pay.Tenant.Name,
			pay.Tenant.Email,
			pay.Tenant.Room.Property.Name,
			pay.Tenant.Room.RoomNumber,
			string(pay.PaymentType),
			string(pay.Status),
			pay.Amount.InexactFloat64(),
			pay.PaymentDate.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// Freeze the header row so long ledgers stay readable.
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	return f, nil
}
