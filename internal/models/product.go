package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductSearchFilter holds search and filter criteria for catalog queries
type ProductSearchFilter struct {
	Query         string   `json:"query,omitempty"`          // Full-text search across name, company, type
	Type          *string  `json:"type,omitempty"`           // Filter by product type (hearing_aid, battery, accessory...)
	Company       *string  `json:"company,omitempty"`        // Filter by manufacturer
	SerialTracked *bool    `json:"serial_tracked,omitempty"` // Only serialised / only bulk products
	MinMRP        *float64 `json:"min_mrp,omitempty"`
	MaxMRP        *float64 `json:"max_mrp,omitempty"`
	SortBy        string   `json:"sort_by,omitempty"`    // Sort field: name, company, mrp, created_at
	SortOrder     string   `json:"sort_order,omitempty"` // asc, desc
	Limit         int      `json:"limit,omitempty"`
	Offset        int      `json:"offset,omitempty"`
}

// Product is a catalog item. Serial-tracked products (hearing aids) are
// followed unit by unit through their serial numbers; bulk products
// (batteries, accessories) are tracked only by quantity.
type Product struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Type          string    `json:"type" db:"type"`
	Company       string    `json:"company" db:"company"`
	MRP           float64   `json:"mrp" db:"mrp"`
	DealerPrice   float64   `json:"dealer_price" db:"dealer_price"`
	HasGST        bool      `json:"has_gst" db:"has_gst"`
	GSTPercent    float64   `json:"gst_percent" db:"gst_percent"`
	HSNCode       *string   `json:"hsn_code" db:"hsn_code"`
	SerialTracked bool      `json:"serial_tracked" db:"serial_tracked"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
