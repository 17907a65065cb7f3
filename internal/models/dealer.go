package models

import (
	"time"

	"github.com/google/uuid"
)

// Dealer is a downstream reseller that receives distributions.
type Dealer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	GSTIN     *string   `json:"gstin" db:"gstin"`
	Phone     *string   `json:"phone" db:"phone"`
	Address   *string   `json:"address" db:"address"`
	State     string    `json:"state" db:"state"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
