package cmd

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vibhu927/pg-next-full/app/config"
	"github.com/vibhu927/pg-next-full/app/database"
	"github.com/vibhu927/pg-next-full/app/models"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data (admin account, two properties, rooms, a tenant and payments)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed()
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed() error {
	db := config.GetDB()
	log := config.GetLogger()

	if err := database.InitSchema(db); err != nil {
		return err
	}

	admin, err := database.CreateUser(db, "Admin User", "admin@example.com", "password123", models.RoleAdmin)
	if err != nil {
		if !errors.Is(err, models.ErrEmailTaken) {
			return err
		}
		admin, err = database.GetUserByEmail(db, "admin@example.com")
		if err != nil {
			return err
		}
		log.Info("admin account already present, reusing it")
	}
	caller := models.Caller{ID: admin.ID, Email: admin.Email, Role: admin.Role}

	// Tenant-side demo login, linked to the seeded tenant by email.
	if _, err := database.CreateUser(db, "Rahul Sharma", "rahul@example.com", "password123", models.RoleUser); err != nil && !errors.Is(err, models.ErrEmailTaken) {
		return err
	}

	sunshine := &models.Property{
		Name: "Sunshine Apartments", Address: "123 Main Street",
		City: "Bengaluru", State: "Karnataka", ZipCode: "560001",
		TotalRooms: 3, OccupiedRooms: 0,
	}
	greenValley := &models.Property{
		Name: "Green Valley Residency", Address: "456 Park Avenue",
		City: "Pune", State: "Maharashtra", ZipCode: "411001",
		TotalRooms: 2, OccupiedRooms: 0,
	}
	for _, p := range []*models.Property{sunshine, greenValley} {
		if err := database.CreateProperty(db, caller, p); err != nil {
			return err
		}
	}

	floor1 := "1"
	floor2 := "2"
	rooms := []*models.Room{
		{RoomNumber: "101", Floor: &floor1, Type: models.RoomTypeSingle, Capacity: 1,
			Price: decimal.NewFromInt(5000), IsAvailable: true, PropertyID: sunshine.ID},
		{RoomNumber: "102", Floor: &floor1, Type: models.RoomTypeDouble, Capacity: 2,
			Price: decimal.NewFromInt(8000), IsAvailable: true, PropertyID: sunshine.ID},
		{RoomNumber: "201", Floor: &floor2, Type: models.RoomTypeSuite, Capacity: 2,
			Price: decimal.NewFromInt(12000), IsAvailable: true, PropertyID: sunshine.ID},
		{RoomNumber: "A1", Floor: &floor1, Type: models.RoomTypeSingle, Capacity: 1,
			Price: decimal.NewFromInt(4500), IsAvailable: true, PropertyID: greenValley.ID},
		{RoomNumber: "A2", Floor: &floor1, Type: models.RoomTypeTriple, Capacity: 3,
			Price: decimal.NewFromInt(9000), IsAvailable: true, PropertyID: greenValley.ID},
	}
	for _, r := range rooms {
		if err := database.CreateRoom(db, caller, r); err != nil {
			return err
		}
	}

	tenant := &models.Tenant{
		Name:       "Rahul Sharma",
		Email:      "rahul@example.com",
		Phone:      "+91 98765 43210",
		LeaseEnd:   time.Now().AddDate(1, 0, 0),
		RentAmount: decimal.NewFromInt(5000),
		RoomID:     rooms[0].ID,
	}
	if err := database.AssignTenant(db, caller, tenant, sunshine.ID); err != nil {
		return err
	}

	payments := []*models.Payment{
		{Amount: decimal.NewFromInt(5000), PaymentType: models.PaymentTypeRent,
			Status: models.PaymentStatusPaid, TenantID: tenant.ID},
		{Amount: decimal.NewFromInt(10000), PaymentType: models.PaymentTypeSecurityDeposit,
			Status: models.PaymentStatusPaid, TenantID: tenant.ID},
		{Amount: decimal.NewFromInt(5000), PaymentType: models.PaymentTypeRent,
			Status: models.PaymentStatusPending, TenantID: tenant.ID},
	}
	for _, p := range payments {
		if err := database.CreatePayment(db, caller, p); err != nil {
			return err
		}
	}

	log.Info("seed complete",
		zap.String("admin", admin.Email),
		zap.Int("properties", 2),
		zap.Int("rooms", len(rooms)),
		zap.Int("payments", len(payments)),
	)
	return nil
}
