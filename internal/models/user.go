package models

import (
	"time"

	"github.com/google/uuid"
)

// Clinic staff roles
const (
	RoleAdmin       = "admin"
	RoleAudiologist = "audiologist"
	RoleFrontDesk   = "front_desk"
	RoleStock       = "stock"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	Branch       string    `json:"branch" db:"branch"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
