package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomType classifies a room by how many beds it holds.
type RoomType string

const (
	RoomTypeSingle RoomType = "SINGLE"
	RoomTypeDouble RoomType = "DOUBLE"
	RoomTypeTriple RoomType = "TRIPLE"
	RoomTypeSuite  RoomType = "SUITE"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeTriple, RoomTypeSuite:
		return true
	}
	return false
}

type Room struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	RoomNumber  string          `json:"roomNumber" gorm:"not null" validate:"required"`
	Floor       *string         `json:"floor,omitempty"`
	Type        RoomType        `json:"type" gorm:"not null;type:varchar(20)" validate:"required"`
	Capacity    int             `json:"capacity" gorm:"not null" validate:"required,gt=0"`
	Price       decimal.Decimal `json:"price" gorm:"not null;type:decimal(10,2)" validate:"required"`
	IsAvailable bool            `json:"isAvailable" gorm:"not null;default:true"`
	PropertyID  string          `json:"propertyId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;references:ID"`
	Tenant   *Tenant   `json:"tenant,omitempty" gorm:"foreignKey:RoomID;references:ID"`
}
