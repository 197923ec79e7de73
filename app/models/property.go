package models

import "time"

type Property struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name          string    `json:"name" gorm:"not null" validate:"required"`
	Address       string    `json:"address" gorm:"not null" validate:"required"`
	City          string    `json:"city" gorm:"not null" validate:"required"`
	State         string    `json:"state" gorm:"not null" validate:"required"`
	ZipCode       string    `json:"zipCode" gorm:"not null" validate:"required"`
	TotalRooms    int       `json:"totalRooms" gorm:"not null;default:0"`
	OccupiedRooms int       `json:"occupiedRooms" gorm:"not null;default:0"`
	PaymentQrCode *string   `json:"paymentQrCode,omitempty"`
	UserID        string    `json:"userId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Rooms []*Room `json:"rooms,omitempty" gorm:"foreignKey:PropertyID;references:ID"`

	// Derived from room rows at read time. TotalRooms/OccupiedRooms above are
	// whatever the owner typed in and are never reconciled with actual rooms.
	RoomCount     int `json:"roomCount" gorm:"-"`
	OccupiedCount int `json:"occupiedCount" gorm:"-"`
}
