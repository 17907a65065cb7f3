package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SaleLineItem is one sold product. Serial-tracked units carry the sold
// serial number; bulk sales carry a quantity.
type SaleLineItem struct {
	ProductID    uuid.UUID `json:"product_id"`
	SerialNumber string    `json:"serial_number,omitempty"`
	Quantity     int       `json:"quantity,omitempty"`
	UnitPrice    float64   `json:"unit_price,omitempty"`
	Discount     float64   `json:"discount,omitempty"`
	GSTAmount    float64   `json:"gst_amount,omitempty"`
	LineTotal    float64   `json:"line_total,omitempty"`
}

// HasRealSerial reports whether the line identifies a physical unit.
func (li SaleLineItem) HasRealSerial() bool {
	sn := strings.TrimSpace(li.SerialNumber)
	return sn != "" && strings.ToLower(sn) != "na" && sn != "-"
}

// EffectiveQuantity defaults a serial-less sale line to one unit.
func (li SaleLineItem) EffectiveQuantity() int {
	if li.Quantity > 0 {
		return li.Quantity
	}
	return 1
}

// Sale is a direct sale recorded from the billing screen.
type Sale struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	PatientName string         `json:"patient_name" db:"patient_name"`
	Branch      string         `json:"branch" db:"branch"`
	Items       []SaleLineItem `json:"items" db:"items"`
	TotalAmount float64        `json:"total_amount" db:"total_amount"`
	SoldAt      time.Time      `json:"sold_at" db:"sold_at"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}
