package models

import (
	"time"

	"github.com/google/uuid"
)

// Branch is a clinic location. Stock documents reference branches by name,
// matching how the old forms stored locations.
type Branch struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	City      *string   `json:"city" db:"city"`
	State     string    `json:"state" db:"state"`
	GSTIN     *string   `json:"gstin" db:"gstin"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
