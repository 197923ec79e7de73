package payments

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vibhu927/pg-next-full/app/config"
	"github.com/vibhu927/pg-next-full/app/database"
	"github.com/vibhu927/pg-next-full/app/models"
	"github.com/vibhu927/pg-next-full/app/routes/auth"
	"github.com/vibhu927/pg-next-full/app/routes/respond"
	"github.com/vibhu927/pg-next-full/app/services"
)

func GetPaymentsAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	payments, err := database.ListPayments(config.GetDB(), caller, c.Query("tenantId"))
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(payments)
}

func GetPaymentAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	payment, err := database.GetPayment(config.GetDB(), caller, c.Params("id"))
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(payment)
}

func CreatePaymentAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	type createRequest struct {
		Amount      decimal.Decimal      `json:"amount"`
		PaymentType models.PaymentType   `json:"paymentType"`
		TenantID    string               `json:"tenantId"`
		Status      models.PaymentStatus `json:"status,omitempty"`
	}

	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	details := fiber.Map{}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		details["amount"] = "Amount must be positive"
	}
	if !req.PaymentType.Valid() {
		details["paymentType"] = "Payment type must be one of RENT, SECURITY_DEPOSIT, MAINTENANCE, OTHER"
	}
	if strings.TrimSpace(req.TenantID) == "" {
		details["tenantId"] = "Tenant ID is required"
	}
	if req.Status != "" && !req.Status.Valid() {
		details["status"] = "Unknown payment status"
	}
	if len(details) > 0 {
		return respond.ValidationError(c, details)
	}

	payment := &models.Payment{
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
		Status:      req.Status,
		TenantID:    req.TenantID,
	}
	if err := database.CreatePayment(config.GetDB(), caller, payment); err != nil {
		return respond.Error(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

func UpdatePaymentAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	type updateRequest struct {
		Amount      *decimal.Decimal    `json:"amount,omitempty"`
		PaymentType *models.PaymentType `json:"paymentType,omitempty"`
	}

	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	details := fiber.Map{}
	if req.Amount != nil && req.Amount.LessThanOrEqual(decimal.Zero) {
		details["amount"] = "Amount must be positive"
	}
	if req.PaymentType != nil && !req.PaymentType.Valid() {
		details["paymentType"] = "Payment type must be one of RENT, SECURITY_DEPOSIT, MAINTENANCE, OTHER"
	}
	if len(details) > 0 {
		return respond.ValidationError(c, details)
	}

	payment, err := database.UpdatePayment(config.GetDB(), caller, c.Params("id"), req.Amount, req.PaymentType)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(payment)
}

func DeletePaymentAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	if err := database.DeletePayment(config.GetDB(), caller, c.Params("id")); err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// MarkPaidAPI is the tenant-side "I've made the payment" action.
func MarkPaidAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	payment, err := database.MarkPaymentPaid(config.GetDB(), caller, c.Params("id"))
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(payment)
}

func ApprovePaymentAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	payment, err := database.ApprovePayment(config.GetDB(), caller, c.Params("id"))
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(payment)
}

func DeclinePaymentAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	payment, err := database.DeclinePayment(config.GetDB(), caller, c.Params("id"))
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(payment)
}

// ForceStatusAPI is the admin-only escape hatch that bypasses the state
// machine. Guarded by RequireAdmin at the route level and checked again in
// the query layer.
func ForceStatusAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	type statusRequest struct {
		Status models.PaymentStatus `json:"status"`
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !req.Status.Valid() {
		return respond.ValidationError(c, fiber.Map{"status": "Unknown payment status"})
	}

	payment, err := database.ForceSetPaymentStatus(config.GetDB(), caller, c.Params("id"), req.Status)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(payment)
}

// ExportPaymentsAPI streams the caller-visible payments as an xlsx ledger.
func ExportPaymentsAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	payments, err := database.ListPayments(config.GetDB(), caller, c.Query("tenantId"))
	if err != nil {
		return respond.Error(c, err)
	}

	book, err := services.BuildPaymentsWorkbook(payments)
	if err != nil {
		return respond.Error(c, err)
	}

	filename := fmt.Sprintf("payments-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	buf, err := book.WriteToBuffer()
	if err != nil {
		return respond.Error(c, err)
	}
	return c.Send(buf.Bytes())
}
