package rooms

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vibhu927/pg-next-full/app/config"
	"github.com/vibhu927/pg-next-full/app/database"
	"github.com/vibhu927/pg-next-full/app/models"
	"github.com/vibhu927/pg-next-full/app/routes/auth"
	"github.com/vibhu927/pg-next-full/app/routes/respond"
)

type roomRequest struct {
	RoomNumber  string          `json:"roomNumber"`
	Floor       *string         `json:"floor,omitempty"`
	Type        models.RoomType `json:"type"`
	Capacity    int             `json:"capacity"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"isAvailable"`
	PropertyID  string          `json:"propertyId"`
}

func (r roomRequest) validate() fiber.Map {
	details := fiber.Map{}
	if strings.TrimSpace(r.RoomNumber) == "" {
		details["roomNumber"] = "Room number is required"
	}
	if !r.Type.Valid() {
		details["type"] = "Type must be one of SINGLE, DOUBLE, TRIPLE, SUITE"
	}
	if r.Capacity <= 0 {
		details["capacity"] = "Capacity must be positive"
	}
	if r.Price.LessThanOrEqual(decimal.Zero) {
		details["price"] = "Price must be positive"
	}
	if strings.TrimSpace(r.PropertyID) == "" {
		details["propertyId"] = "Property ID is required"
	}
	return details
}

func GetRoomsAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	rooms, err := database.ListRooms(config.GetDB(), caller, c.Query("propertyId"))
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(rooms)
}

func GetRoomAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	room, err := database.GetRoom(config.GetDB(), caller, c.Params("id"))
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(room)
}

func CreateRoomAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	var req roomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if details := req.validate(); len(details) > 0 {
		return respond.ValidationError(c, details)
	}

	room := &models.Room{
		RoomNumber:  req.RoomNumber,
		Floor:       req.Floor,
		Type:        req.Type,
		Capacity:    req.Capacity,
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
		PropertyID:  req.PropertyID,
	}
	if err := database.CreateRoom(config.GetDB(), caller, room); err != nil {
		return respond.Error(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(room)
}

func UpdateRoomAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	var req roomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if details := req.validate(); len(details) > 0 {
		return respond.ValidationError(c, details)
	}

	room := &models.Room{
		ID:          c.Params("id"),
		RoomNumber:  req.RoomNumber,
		Floor:       req.Floor,
		Type:        req.Type,
		Capacity:    req.Capacity,
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
		PropertyID:  req.PropertyID,
	}
	if err := database.UpdateRoom(config.GetDB(), caller, room); err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(room)
}

func DeleteRoomAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	if err := database.DeleteRoom(config.GetDB(), caller, c.Params("id")); err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(fiber.Map{"message": "Room deleted successfully"})
}
