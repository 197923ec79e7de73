package properties

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vibhu927/pg-next-full/app/config"
	"github.com/vibhu927/pg-next-full/app/database"
	"github.com/vibhu927/pg-next-full/app/models"
	"github.com/vibhu927/pg-next-full/app/routes/auth"
	"github.com/vibhu927/pg-next-full/app/routes/respond"
)

type propertyRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
	TotalRooms    int    `json:"totalRooms"`
	OccupiedRooms int    `json:"occupiedRooms"`
}

func (r propertyRequest) validate() fiber.Map {
	details := fiber.Map{}
	if strings.TrimSpace(r.Name) == "" {
		details["name"] = "Name is required"
	}
	if strings.TrimSpace(r.Address) == "" {
		details["address"] = "Address is required"
	}
	if strings.TrimSpace(r.City) == "" {
		details["city"] = "City is required"
	}
	if strings.TrimSpace(r.State) == "" {
		details["state"] = "State is required"
	}
	if strings.TrimSpace(r.ZipCode) == "" {
		details["zipCode"] = "ZIP Code is required"
	}
	if r.TotalRooms <= 0 {
		details["totalRooms"] = "Total rooms must be positive"
	}
	if r.OccupiedRooms < 0 {
		details["occupiedRooms"] = "Occupied rooms cannot be negative"
	}
	return details
}

func GetPropertiesAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	properties, err := database.ListProperties(config.GetDB(), caller)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(properties)
}

func GetPropertyAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	property, err := database.GetProperty(config.GetDB(), caller, c.Params("id"))
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(property)
}

func CreatePropertyAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	var req propertyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if details := req.validate(); len(details) > 0 {
		return respond.ValidationError(c, details)
	}

	property := &models.Property{
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		TotalRooms:    req.TotalRooms,
		OccupiedRooms: req.OccupiedRooms,
	}
	if err := database.CreateProperty(config.GetDB(), caller, property); err != nil {
		return respond.Error(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(property)
}

func UpdatePropertyAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	var req propertyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if details := req.validate(); len(details) > 0 {
		return respond.ValidationError(c, details)
	}

	property := &models.Property{
		ID:            c.Params("id"),
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		TotalRooms:    req.TotalRooms,
		OccupiedRooms: req.OccupiedRooms,
	}
	if err := database.UpdateProperty(config.GetDB(), caller, property); err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(property)
}

func DeletePropertyAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	if err := database.DeleteProperty(config.GetDB(), caller, c.Params("id")); err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"message": "Property deleted successfully"})
}

func GenerateQRCodeAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	payload, err := database.GeneratePropertyQRCode(config.GetDB(), caller, c.Params("id"))
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "qrCodeData": payload})
}

func GetQRCodeAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	payload, err := database.GetPropertyQRCode(config.GetDB(), caller, c.Params("id"))
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "qrCodeData": payload})
}
