package models

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string    `json:"name" gorm:"not null" validate:"required"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Password  string    `json:"-" gorm:"not null" validate:"required,min=8"`
	Role      string    `json:"role" gorm:"not null;default:'USER'" validate:"required"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Properties []*Property `json:"properties,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

// Caller is the resolved identity every operation runs as. Handlers build it
// from the session token so the query layer never touches session machinery.
type Caller struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
