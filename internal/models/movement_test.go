package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInwardIsStockTransfer(t *testing.T) {
	// Explicit movement kind always wins.
	assert.True(t, (&MaterialInward{MovementKind: MovementTransfer}).IsStockTransfer())
	assert.False(t, (&MaterialInward{MovementKind: MovementPurchase, SupplierName: "Stock Transfer from Pune"}).IsStockTransfer())

	// Legacy documents fall back to the supplier-name marker.
	assert.True(t, (&MaterialInward{SupplierName: "Stock Transfer from Mumbai Main"}).IsStockTransfer())
	assert.True(t, (&MaterialInward{SupplierName: "STOCK TRANSFER FROM Pune"}).IsStockTransfer())
	assert.False(t, (&MaterialInward{SupplierName: "Signia India Pvt Ltd"}).IsStockTransfer())
}

func TestPurchaseIsStockTransfer(t *testing.T) {
	assert.True(t, (&Purchase{MovementKind: MovementTransfer}).IsStockTransfer())
	assert.True(t, (&Purchase{SupplierName: "stock transfer from Delhi"}).IsStockTransfer())
	assert.False(t, (&Purchase{SupplierName: "Widex Distributors"}).IsStockTransfer())
}

func TestMaterialOutIsStockTransfer(t *testing.T) {
	assert.True(t, (&MaterialOut{MovementKind: MovementTransfer}).IsStockTransfer())
	assert.False(t, (&MaterialOut{MovementKind: MovementReturn, Notes: "stock transfer"}).IsStockTransfer())

	// Legacy documents flag transfers in notes or reason text.
	assert.True(t, (&MaterialOut{Notes: "Stock transfer to Pune"}).IsStockTransfer())
	assert.True(t, (&MaterialOut{Reason: "stock transfer"}).IsStockTransfer())
	assert.False(t, (&MaterialOut{Notes: "dispatched to patient"}).IsStockTransfer())
}

func TestMaterialOutEffectiveStatus(t *testing.T) {
	assert.Equal(t, MaterialOutDispatched, (&MaterialOut{}).EffectiveStatus())
	assert.Equal(t, MaterialOutDispatched, (&MaterialOut{Status: "  "}).EffectiveStatus())
	assert.Equal(t, MaterialOutPending, (&MaterialOut{Status: MaterialOutPending}).EffectiveStatus())
}

func TestStockLineItemSerials(t *testing.T) {
	li := StockLineItem{
		SerialNumbers: []string{"SN1", " SN2 ", ""},
		SerialNumber:  "SN3",
	}
	assert.Equal(t, []string{"SN1", "SN2", "SN3"}, li.Serials())

	assert.Empty(t, StockLineItem{Quantity: 5}.Serials())
}

func TestMovementKindIsValid(t *testing.T) {
	assert.True(t, MovementPurchase.IsValid())
	assert.True(t, MovementTransfer.IsValid())
	assert.True(t, MovementReturn.IsValid())
	assert.False(t, MovementKind("").IsValid())
	assert.False(t, MovementKind("shipment").IsValid())
}
