package tenants

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vibhu927/pg-next-full/app/config"
	"github.com/vibhu927/pg-next-full/app/database"
	"github.com/vibhu927/pg-next-full/app/models"
	"github.com/vibhu927/pg-next-full/app/routes/auth"
	"github.com/vibhu927/pg-next-full/app/routes/respond"
)

type tenantRequest struct {
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	LeaseEnd   string          `json:"leaseEnd"`
	RentAmount decimal.Decimal `json:"rentAmount"`
	RoomID     string          `json:"roomId"`
	PropertyID string          `json:"propertyId"`
}

func (r tenantRequest) validate() (time.Time, fiber.Map) {
	details := fiber.Map{}
	if strings.TrimSpace(r.Name) == "" {
		details["name"] = "Name is required"
	}
	if !strings.Contains(r.Email, "@") {
		details["email"] = "Valid email is required"
	}
	if strings.TrimSpace(r.Phone) == "" {
		details["phone"] = "Phone is required"
	}
	if r.RentAmount.LessThanOrEqual(decimal.Zero) {
		details["rentAmount"] = "Rent amount must be positive"
	}
	if strings.TrimSpace(r.RoomID) == "" {
		details["roomId"] = "Room ID is required"
	}
	if strings.TrimSpace(r.PropertyID) == "" {
		details["propertyId"] = "Property ID is required"
	}

	leaseEnd, err := time.Parse(time.RFC3339, r.LeaseEnd)
	if err != nil {
		// Date-only input from the form is fine too.
		leaseEnd, err = time.Parse("2006-01-02", r.LeaseEnd)
	}
	if err != nil {
		details["leaseEnd"] = "Valid date is required"
	}
	return leaseEnd, details
}

func GetTenantsAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	tenants, err := database.ListTenants(config.GetDB(), caller, c.Query("propertyId"))
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(tenants)
}

func GetTenantAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	tenant, err := database.GetTenant(config.GetDB(), caller, c.Params("id"))
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(tenant)
}

// GetMyTenantAPI is the tenant-side self view, linked by email match rather
// than record ownership.
func GetMyTenantAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	tenant, err := database.GetTenantByEmail(config.GetDB(), caller.Email)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(tenant)
}

func CreateTenantAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	var req tenantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	leaseEnd, details := req.validate()
	if len(details) > 0 {
		return respond.ValidationError(c, details)
	}

	tenant := &models.Tenant{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		LeaseEnd:   leaseEnd,
		RentAmount: req.RentAmount,
		RoomID:     req.RoomID,
	}
	if err := database.AssignTenant(config.GetDB(), caller, tenant, req.PropertyID); err != nil {
		return respond.Error(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tenant)
}

func UpdateTenantAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	var req tenantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	leaseEnd, details := req.validate()
	if len(details) > 0 {
		return respond.ValidationError(c, details)
	}

	tenant := &models.Tenant{
		ID:         c.Params("id"),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		LeaseEnd:   leaseEnd,
		RentAmount: req.RentAmount,
		RoomID:     req.RoomID,
	}
	if err := database.UpdateTenant(config.GetDB(), caller, tenant, req.PropertyID); err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(tenant)
}

func DeleteTenantAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	if err := database.DeleteTenant(config.GetDB(), caller, c.Params("id")); err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tenant deleted successfully"})
}
