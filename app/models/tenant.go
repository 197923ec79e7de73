package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tenant is an occupant of exactly one room. UserID is the landlord account the
// record was created under; a tenant-side login is linked by matching email, not
// by this foreign key.
type Tenant struct {
	ID         string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name       string          `json:"name" gorm:"not null" validate:"required"`
	Email      string          `json:"email" gorm:"not null;index" validate:"required,email"`
	Phone      string          `json:"phone" gorm:"not null" validate:"required"`
	LeaseStart time.Time       `json:"leaseStart" gorm:"not null"`
	LeaseEnd   time.Time       `json:"leaseEnd" gorm:"not null" validate:"required"`
	RentAmount decimal.Decimal `json:"rentAmount" gorm:"not null;type:decimal(10,2)" validate:"required"`
	RoomID     string          `json:"roomId" gorm:"not null;uniqueIndex;type:uuid" validate:"required,uuid"`
	UserID     string          `json:"userId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CreatedAt  time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID;references:ID"`
}
