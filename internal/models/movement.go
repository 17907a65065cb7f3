package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MovementKind tags a stock document with why the stock moved. It is decided
// at write time; the legacy substring markers ("Stock Transfer from ..." in
// supplier names, transfer notes on materials-out) are only consulted for
// documents created before the field existed.
type MovementKind string

const (
	MovementPurchase MovementKind = "purchase"
	MovementTransfer MovementKind = "transfer"
	MovementReturn   MovementKind = "return"
)

// legacy marker text carried over from the old forms
const stockTransferMarker = "stock transfer from"

// IsValid returns true for a known movement kind
func (k MovementKind) IsValid() bool {
	switch k {
	case MovementPurchase, MovementTransfer, MovementReturn:
		return true
	}
	return false
}

// StockLineItem is one line of an inbound or outbound stock document.
// Serial-tracked lines carry serial numbers; bulk lines carry a quantity.
// The singular serial_number field survives from older documents.
type StockLineItem struct {
	ProductID     uuid.UUID `json:"product_id"`
	SerialNumbers []string  `json:"serial_numbers,omitempty"`
	SerialNumber  string    `json:"serial_number,omitempty"`
	Quantity      int       `json:"quantity,omitempty"`
}

// Serials collects the serial numbers of a line item, merging the plural and
// legacy singular fields and dropping blanks.
func (li StockLineItem) Serials() []string {
	out := make([]string, 0, len(li.SerialNumbers)+1)
	for _, sn := range li.SerialNumbers {
		if strings.TrimSpace(sn) != "" {
			out = append(out, strings.TrimSpace(sn))
		}
	}
	if sn := strings.TrimSpace(li.SerialNumber); sn != "" {
		out = append(out, sn)
	}
	return out
}

// MaterialInward records stock arriving at a branch against a supplier
// challan. A movement kind of "transfer" means the stock came from another
// branch, not from outside the system.
type MaterialInward struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	ChallanNumber string          `json:"challan_number" db:"challan_number"`
	SupplierName  string          `json:"supplier_name" db:"supplier_name"`
	MovementKind  MovementKind    `json:"movement_kind" db:"movement_kind"`
	Branch        string          `json:"branch" db:"branch"`
	Company       string          `json:"company" db:"company"`
	Items         []StockLineItem `json:"items" db:"items"`
	ReceivedAt    time.Time       `json:"received_at" db:"received_at"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// IsStockTransfer reports whether this inward is an internal transfer-in.
func (m *MaterialInward) IsStockTransfer() bool {
	if m.MovementKind.IsValid() {
		return m.MovementKind == MovementTransfer
	}
	return strings.Contains(strings.ToLower(m.SupplierName), stockTransferMarker)
}

// Purchase is structurally the same as a material inward for stock purposes,
// but is recorded against a purchase invoice rather than a delivery challan.
type Purchase struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	InvoiceNumber string          `json:"invoice_number" db:"invoice_number"`
	SupplierName  string          `json:"supplier_name" db:"supplier_name"`
	MovementKind  MovementKind    `json:"movement_kind" db:"movement_kind"`
	Branch        string          `json:"branch" db:"branch"`
	Company       string          `json:"company" db:"company"`
	Items         []StockLineItem `json:"items" db:"items"`
	PurchasedAt   time.Time       `json:"purchased_at" db:"purchased_at"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// IsStockTransfer reports whether this purchase record is an internal transfer-in.
func (p *Purchase) IsStockTransfer() bool {
	if p.MovementKind.IsValid() {
		return p.MovementKind == MovementTransfer
	}
	return strings.Contains(strings.ToLower(p.SupplierName), stockTransferMarker)
}

// Materials-out statuses. An empty status on old documents means dispatched.
const (
	MaterialOutPending    = "pending"
	MaterialOutDispatched = "dispatched"
	MaterialOutReturned   = "returned"
)

// MaterialOut records stock leaving a branch: a dispatch to a patient or
// dealer, a return to the supplier, or an internal transfer to another branch.
type MaterialOut struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	Branch       string          `json:"branch" db:"branch"`
	Destination  string          `json:"destination" db:"destination"`
	MovementKind MovementKind    `json:"movement_kind" db:"movement_kind"`
	Status       string          `json:"status" db:"status"`
	Notes        string          `json:"notes" db:"notes"`
	Reason       string          `json:"reason" db:"reason"`
	Items        []StockLineItem `json:"items" db:"items"`
	DispatchedAt time.Time       `json:"dispatched_at" db:"dispatched_at"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// IsStockTransfer reports whether this outward is an internal transfer-out.
// Legacy documents flagged transfers in free-text notes or reason.
func (m *MaterialOut) IsStockTransfer() bool {
	if m.MovementKind.IsValid() {
		return m.MovementKind == MovementTransfer
	}
	notes := strings.ToLower(m.Notes + " " + m.Reason)
	return strings.Contains(notes, "stock transfer")
}

// EffectiveStatus normalizes the status field: unset means dispatched.
func (m *MaterialOut) EffectiveStatus() string {
	if strings.TrimSpace(m.Status) == "" {
		return MaterialOutDispatched
	}
	return m.Status
}
