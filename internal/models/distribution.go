package models

import (
	"time"

	"github.com/google/uuid"
)

// DistributionLineItem is one product group committed to a dealer. Serial
// lines name the exact units; bulk lines carry a quantity. Pricing is filled
// in by the pricing step before the distribution is committed.
type DistributionLineItem struct {
	ProductID       uuid.UUID `json:"product_id"`
	SerialNumbers   []string  `json:"serial_numbers,omitempty"`
	Quantity        int       `json:"quantity,omitempty"`
	MRP             float64   `json:"mrp,omitempty"`
	Price           float64   `json:"price,omitempty"`
	DiscountPercent float64   `json:"discount_percent,omitempty"`
	GSTPercent      float64   `json:"gst_percent,omitempty"`
	GSTAmount       float64   `json:"gst_amount,omitempty"`
	LineTotal       float64   `json:"line_total,omitempty"`
}

// UnitCount returns how many physical units the line commits.
func (li DistributionLineItem) UnitCount() int {
	if len(li.SerialNumbers) > 0 {
		return len(li.SerialNumbers)
	}
	return li.Quantity
}

// Distribution is stock committed to a dealer. Committed serials and bulk
// quantities are excluded from future availability.
type Distribution struct {
	ID            uuid.UUID              `json:"id" db:"id"`
	DealerID      uuid.UUID              `json:"dealer_id" db:"dealer_id"`
	Branch        string                 `json:"branch" db:"branch"`
	Items         []DistributionLineItem `json:"items" db:"items"`
	TotalAmount   float64                `json:"total_amount" db:"total_amount"`
	Status        string                 `json:"status" db:"status"`
	DistributedAt time.Time              `json:"distributed_at" db:"distributed_at"`
	CreatedAt     time.Time              `json:"created_at" db:"created_at"`
}

// AvailableItem is the derived output of the availability reconciliation.
// It is never persisted: either a single serialised unit (Quantity 1 and a
// serial number) or an aggregated bulk row (empty serial, Quantity n).
type AvailableItem struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductType  string    `json:"product_type"`
	Company      string    `json:"company"`
	SerialNumber string    `json:"serial_number,omitempty"`
	Quantity     int       `json:"quantity"`
	Branch       string    `json:"branch"`
	MRP          float64   `json:"mrp"`
	DealerPrice  float64   `json:"dealer_price"`
	HasGST       bool      `json:"has_gst"`
	GSTPercent   float64   `json:"gst_percent"`
	HSNCode      string    `json:"hsn_code,omitempty"`
	Source       string    `json:"source"` // material_inward or purchase
	ReceivedAt   time.Time `json:"received_at"`
}
