package services

import (
	"testing"
	"time"

	"audimart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// ReconcileTestSuite exercises the availability pass as a pure function of
// the stock snapshot.
type ReconcileTestSuite struct {
	suite.Suite
	productID uuid.UUID
	bulkID    uuid.UUID
	base      time.Time
}

func (suite *ReconcileTestSuite) SetupTest() {
	suite.productID = uuid.New()
	suite.bulkID = uuid.New()
	suite.base = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
}

func TestReconcileTestSuite(t *testing.T) {
	suite.Run(t, new(ReconcileTestSuite))
}

func (suite *ReconcileTestSuite) products() []*models.Product {
	return []*models.Product{
		{ID: suite.productID, Name: "Aria X2", Type: "hearing_aid", Company: "Signia", MRP: 45000, DealerPrice: 32000, HasGST: true, GSTPercent: 18, SerialTracked: true},
		{ID: suite.bulkID, Name: "Battery 312", Type: "battery", Company: "Rayovac", MRP: 250, DealerPrice: 180},
	}
}

func (suite *ReconcileTestSuite) inward(branch string, at time.Time, items ...models.StockLineItem) *models.MaterialInward {
	return &models.MaterialInward{
		ID:           uuid.New(),
		SupplierName: "Signia India",
		MovementKind: models.MovementPurchase,
		Branch:       branch,
		Company:      "Signia",
		Items:        items,
		ReceivedAt:   at,
	}
}

func (suite *ReconcileTestSuite) serialLine(serials ...string) models.StockLineItem {
	return models.StockLineItem{ProductID: suite.productID, SerialNumbers: serials}
}

func itemBySerial(items []models.AvailableItem, serial string) *models.AvailableItem {
	for i := range items {
		if items[i].SerialNumber == serial {
			return &items[i]
		}
	}
	return nil
}

func (suite *ReconcileTestSuite) TestInboundSerialsBecomeAvailable() {
	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards:  []*models.MaterialInward{suite.inward("Mumbai", suite.base, suite.serialLine("SN1", "SN2"))},
	}

	result := Reconcile(snap)

	suite.Len(result.Items, 2)
	suite.Empty(result.Warnings)
	sn1 := itemBySerial(result.Items, "SN1")
	suite.Require().NotNil(sn1)
	suite.Equal("Mumbai", sn1.Branch)
	suite.Equal("Aria X2", sn1.ProductName)
	suite.Equal(1, sn1.Quantity)
	suite.Equal(45000.0, sn1.MRP)
}

func (suite *ReconcileTestSuite) TestSoldSerialNeverReappears() {
	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards:  []*models.MaterialInward{suite.inward("Mumbai", suite.base, suite.serialLine("SN1", "SN2"))},
		Sales: []*models.Sale{{
			ID:          uuid.New(),
			PatientName: "R. Mehta",
			Items:       []models.SaleLineItem{{ProductID: suite.productID, SerialNumber: "SN1", UnitPrice: 45000}},
			SoldAt:      suite.base.Add(time.Hour),
		}},
	}

	result := Reconcile(snap)

	suite.Len(result.Items, 1)
	suite.Nil(itemBySerial(result.Items, "SN1"))
	suite.NotNil(itemBySerial(result.Items, "SN2"))
}

func (suite *ReconcileTestSuite) TestPendingOutReservesSerial() {
	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards:  []*models.MaterialInward{suite.inward("Mumbai", suite.base, suite.serialLine("SN1", "SN2"))},
		MaterialsOut: []*models.MaterialOut{{
			ID:           uuid.New(),
			Branch:       "Mumbai",
			Status:       models.MaterialOutPending,
			Items:        []models.StockLineItem{suite.serialLine("SN2")},
			DispatchedAt: suite.base.Add(time.Hour),
		}},
	}

	result := Reconcile(snap)

	suite.Len(result.Items, 1)
	suite.NotNil(itemBySerial(result.Items, "SN1"))
	suite.Nil(itemBySerial(result.Items, "SN2"))
}

func (suite *ReconcileTestSuite) TestReturnedOutNeverLeft() {
	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards:  []*models.MaterialInward{suite.inward("Mumbai", suite.base, suite.serialLine("SN1"))},
		MaterialsOut: []*models.MaterialOut{{
			ID:           uuid.New(),
			Branch:       "Mumbai",
			Status:       models.MaterialOutReturned,
			Items:        []models.StockLineItem{suite.serialLine("SN1")},
			DispatchedAt: suite.base.Add(time.Hour),
		}},
	}

	result := Reconcile(snap)

	suite.NotNil(itemBySerial(result.Items, "SN1"))
}

func (suite *ReconcileTestSuite) TestEmptyStatusMeansDispatched() {
	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards:  []*models.MaterialInward{suite.inward("Mumbai", suite.base, suite.serialLine("SN1"))},
		MaterialsOut: []*models.MaterialOut{{
			ID:           uuid.New(),
			Branch:       "Mumbai",
			Status:       "",
			Items:        []models.StockLineItem{suite.serialLine("SN1")},
			DispatchedAt: suite.base.Add(time.Hour),
		}},
	}

	result := Reconcile(snap)

	suite.Empty(result.Items)
}

func (suite *ReconcileTestSuite) TestTransferPairRelocatesWithoutDuplication() {
	transferIn := suite.inward("Pune", suite.base.Add(2*time.Hour), suite.serialLine("SN5"))
	transferIn.MovementKind = models.MovementTransfer
	transferIn.SupplierName = "Stock Transfer from Mumbai"

	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards: []*models.MaterialInward{
			suite.inward("Mumbai", suite.base, suite.serialLine("SN5")),
			transferIn,
		},
		MaterialsOut: []*models.MaterialOut{{
			ID:           uuid.New(),
			Branch:       "Mumbai",
			MovementKind: models.MovementTransfer,
			Status:       models.MaterialOutDispatched,
			Items:        []models.StockLineItem{suite.serialLine("SN5")},
			DispatchedAt: suite.base.Add(time.Hour),
		}},
	}

	result := Reconcile(snap)

	suite.Len(result.Items, 1)
	item := itemBySerial(result.Items, "SN5")
	suite.Require().NotNil(item)
	suite.Equal("Pune", item.Branch)
	suite.Empty(result.Warnings)
}

func (suite *ReconcileTestSuite) TestTransferInWinsTimestampTie() {
	// Transfer-in recorded at the same literal instant as the original
	// inbound still relocates the unit.
	transferIn := suite.inward("Pune", suite.base, suite.serialLine("SN5"))
	transferIn.MovementKind = models.MovementTransfer

	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards: []*models.MaterialInward{
			suite.inward("Mumbai", suite.base, suite.serialLine("SN5")),
			transferIn,
		},
	}

	result := Reconcile(snap)

	suite.Len(result.Items, 1)
	suite.Equal("Pune", result.Items[0].Branch)
}

func (suite *ReconcileTestSuite) TestUnmatchedTransferOutWarnsButKeepsUnit() {
	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards:  []*models.MaterialInward{suite.inward("Mumbai", suite.base, suite.serialLine("SN7"))},
		MaterialsOut: []*models.MaterialOut{{
			ID:           uuid.New(),
			Branch:       "Mumbai",
			MovementKind: models.MovementTransfer,
			Status:       models.MaterialOutDispatched,
			Items:        []models.StockLineItem{suite.serialLine("SN7")},
			DispatchedAt: suite.base.Add(time.Hour),
		}},
	}

	result := Reconcile(snap)

	item := itemBySerial(result.Items, "SN7")
	suite.Require().NotNil(item)
	suite.Equal("Mumbai", item.Branch)
	suite.Len(result.Warnings, 1)
	suite.Contains(result.Warnings[0], "SN7")
}

func (suite *ReconcileTestSuite) TestTransferInWithoutPriorInbound() {
	// A transfer-in for a serial the system never saw arriving still makes
	// the unit available at the receiving branch.
	transferIn := suite.inward("Pune", suite.base, suite.serialLine("SN9"))
	transferIn.MovementKind = models.MovementTransfer

	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards:  []*models.MaterialInward{transferIn},
	}

	result := Reconcile(snap)

	item := itemBySerial(result.Items, "SN9")
	suite.Require().NotNil(item)
	suite.Equal("Pune", item.Branch)
}

func (suite *ReconcileTestSuite) TestLegacyMarkerDetection() {
	// No movement kind on either document; detection falls back to the
	// legacy text markers.
	legacyIn := suite.inward("Pune", suite.base.Add(2*time.Hour), suite.serialLine("SN5"))
	legacyIn.MovementKind = ""
	legacyIn.SupplierName = "Stock Transfer from Mumbai Main"

	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards: []*models.MaterialInward{
			suite.inward("Mumbai", suite.base, suite.serialLine("SN5")),
			legacyIn,
		},
		MaterialsOut: []*models.MaterialOut{{
			ID:           uuid.New(),
			Branch:       "Mumbai",
			Status:       models.MaterialOutDispatched,
			Notes:        "Stock transfer to Pune branch",
			Items:        []models.StockLineItem{suite.serialLine("SN5")},
			DispatchedAt: suite.base.Add(time.Hour),
		}},
	}

	result := Reconcile(snap)

	suite.Len(result.Items, 1)
	suite.Equal("Pune", result.Items[0].Branch)
	suite.Empty(result.Warnings)
}

func (suite *ReconcileTestSuite) TestBulkQuantityNetsOut() {
	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards: []*models.MaterialInward{
			suite.inward("Mumbai", suite.base, models.StockLineItem{ProductID: suite.bulkID, Quantity: 50}),
		},
		Sales: []*models.Sale{{
			ID:          uuid.New(),
			PatientName: "Walk-in",
			Items:       []models.SaleLineItem{{ProductID: suite.bulkID, Quantity: 20, UnitPrice: 250}},
			SoldAt:      suite.base.Add(time.Hour),
		}},
	}

	result := Reconcile(snap)

	suite.Require().Len(result.Items, 1)
	suite.Equal(30, result.Items[0].Quantity)
	suite.Equal("Battery 312", result.Items[0].ProductName)
}

func (suite *ReconcileTestSuite) TestBulkClampsAtZeroAndOmitsRow() {
	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards: []*models.MaterialInward{
			suite.inward("Mumbai", suite.base, models.StockLineItem{ProductID: suite.bulkID, Quantity: 10}),
		},
		Sales: []*models.Sale{{
			ID:    uuid.New(),
			Items: []models.SaleLineItem{{ProductID: suite.bulkID, Quantity: 25}},
		}},
	}

	result := Reconcile(snap)

	suite.Empty(result.Items)
}

func (suite *ReconcileTestSuite) TestEnquirySaleVisitConsumesStock() {
	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards:  []*models.MaterialInward{suite.inward("Mumbai", suite.base, suite.serialLine("SN1"))},
		Enquiries: []*models.Enquiry{{
			ID:          uuid.New(),
			PatientName: "S. Rao",
			Visits: []models.EnquiryVisit{{
				VisitDate:    suite.base.Add(time.Hour),
				JourneyStage: models.JourneySale,
				Products:     []models.SaleLineItem{{ProductID: suite.productID, SerialNumber: "SN1", UnitPrice: 45000}},
			}},
		}},
	}

	result := Reconcile(snap)

	suite.Empty(result.Items)
}

func (suite *ReconcileTestSuite) TestPlaceholderSerialTreatedAsBulk() {
	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards: []*models.MaterialInward{
			suite.inward("Mumbai", suite.base, models.StockLineItem{ProductID: suite.bulkID, Quantity: 5}),
		},
		Sales: []*models.Sale{{
			ID: uuid.New(),
			// Placeholder serial: consumes quantity, not a serial unit.
			Items: []models.SaleLineItem{{ProductID: suite.bulkID, SerialNumber: "NA", Quantity: 2}},
		}},
	}

	result := Reconcile(snap)

	suite.Require().Len(result.Items, 1)
	suite.Equal(3, result.Items[0].Quantity)
}

func (suite *ReconcileTestSuite) TestDistributionConsumesSerials() {
	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards:  []*models.MaterialInward{suite.inward("Mumbai", suite.base, suite.serialLine("SN1", "SN2", "SN3"))},
		Distributions: []*models.Distribution{{
			ID:       uuid.New(),
			DealerID: uuid.New(),
			Items: []models.DistributionLineItem{{
				ProductID:     suite.productID,
				SerialNumbers: []string{"SN1", "SN3"},
			}},
			DistributedAt: suite.base.Add(time.Hour),
		}},
	}

	result := Reconcile(snap)

	suite.Len(result.Items, 1)
	suite.NotNil(itemBySerial(result.Items, "SN2"))
}

func (suite *ReconcileTestSuite) TestIdempotence() {
	snap := &StockSnapshot{
		Products: suite.products(),
		Inwards: []*models.MaterialInward{
			suite.inward("Mumbai", suite.base, suite.serialLine("SN1", "SN2"),
				models.StockLineItem{ProductID: suite.bulkID, Quantity: 40}),
		},
		Sales: []*models.Sale{{
			ID:    uuid.New(),
			Items: []models.SaleLineItem{{ProductID: suite.productID, SerialNumber: "SN1"}, {ProductID: suite.bulkID, Quantity: 15}},
		}},
	}

	first := Reconcile(snap)
	second := Reconcile(snap)

	suite.Equal(len(first.Items), len(second.Items))
	suite.ElementsMatch(first.Warnings, second.Warnings)
	totalFirst, totalSecond := 0, 0
	for _, item := range first.Items {
		totalFirst += item.Quantity
	}
	for _, item := range second.Items {
		totalSecond += item.Quantity
	}
	suite.Equal(totalFirst, totalSecond)
}

func (suite *ReconcileTestSuite) TestConservationUnderTransfers() {
	// A transfer pair must not change the system-wide unit count.
	withoutTransfer := &StockSnapshot{
		Products: suite.products(),
		Inwards:  []*models.MaterialInward{suite.inward("Mumbai", suite.base, suite.serialLine("SN1", "SN2"))},
	}

	transferIn := suite.inward("Pune", suite.base.Add(2*time.Hour), suite.serialLine("SN2"))
	transferIn.MovementKind = models.MovementTransfer
	withTransfer := &StockSnapshot{
		Products: suite.products(),
		Inwards: []*models.MaterialInward{
			suite.inward("Mumbai", suite.base, suite.serialLine("SN1", "SN2")),
			transferIn,
		},
		MaterialsOut: []*models.MaterialOut{{
			ID:           uuid.New(),
			Branch:       "Mumbai",
			MovementKind: models.MovementTransfer,
			Status:       models.MaterialOutDispatched,
			Items:        []models.StockLineItem{suite.serialLine("SN2")},
			DispatchedAt: suite.base.Add(time.Hour),
		}},
	}

	suite.Equal(len(Reconcile(withoutTransfer).Items), len(Reconcile(withTransfer).Items))
}

func (suite *ReconcileTestSuite) TestUnknownProductStillCounted() {
	ghost := uuid.New()
	snap := &StockSnapshot{
		Inwards: []*models.MaterialInward{
			suite.inward("Mumbai", suite.base, models.StockLineItem{ProductID: ghost, SerialNumbers: []string{"GH1"}}),
		},
	}

	result := Reconcile(snap)

	suite.Require().Len(result.Items, 1)
	suite.Equal("GH1", result.Items[0].SerialNumber)
	suite.Empty(result.Items[0].ProductName)
}
