package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"audimart/internal/caching"
	"audimart/internal/models"
	"audimart/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// AvailabilityService computes what stock can still be committed to a new
// distribution. Availability is never persisted: every invocation rebuilds it
// from the source documents. A short-lived cache sits in front only as an
// optimization and is invalidated on any stock write.
type AvailabilityService interface {
	Available(ctx context.Context) (*ReconciliationResult, error)
	Recompute(ctx context.Context) (*ReconciliationResult, error)
	InvalidateSnapshot(ctx context.Context)
}

// ReconciliationResult is the output of one availability pass.
type ReconciliationResult struct {
	Items []models.AvailableItem `json:"items"`
	// Warnings lists suspicious source data the pass tolerated, e.g. a
	// transfer-out whose serial was never claimed by a transfer-in. Such a
	// unit stays available at its original branch; flagging it is all we do.
	Warnings []string `json:"warnings,omitempty"`
}

// StockSnapshot holds the six collections the reconciliation reads.
type StockSnapshot struct {
	Products      []*models.Product
	Inwards       []*models.MaterialInward
	Purchases     []*models.Purchase
	MaterialsOut  []*models.MaterialOut
	Sales         []*models.Sale
	Enquiries     []*models.Enquiry
	Distributions []*models.Distribution
}

type availabilityService struct {
	productRepo      repositories.ProductRepository
	inwardRepo       repositories.MaterialInwardRepository
	purchaseRepo     repositories.PurchaseRepository
	materialOutRepo  repositories.MaterialOutRepository
	saleRepo         repositories.SaleRepository
	enquiryRepo      repositories.EnquiryRepository
	distributionRepo repositories.DistributionRepository
	cacheService     caching.CacheService
}

func NewAvailabilityService(
	productRepo repositories.ProductRepository,
	inwardRepo repositories.MaterialInwardRepository,
	purchaseRepo repositories.PurchaseRepository,
	materialOutRepo repositories.MaterialOutRepository,
	saleRepo repositories.SaleRepository,
	enquiryRepo repositories.EnquiryRepository,
	distributionRepo repositories.DistributionRepository,
	cacheService caching.CacheService,
) AvailabilityService {
	return &availabilityService{
		productRepo:      productRepo,
		inwardRepo:       inwardRepo,
		purchaseRepo:     purchaseRepo,
		materialOutRepo:  materialOutRepo,
		saleRepo:         saleRepo,
		enquiryRepo:      enquiryRepo,
		distributionRepo: distributionRepo,
		cacheService:     cacheService,
	}
}

// Available returns the current availability, serving a cached snapshot when
// one is fresh enough.
func (s *availabilityService) Available(ctx context.Context) (*ReconciliationResult, error) {
	if data, err := s.cacheService.GetAvailability(ctx); err != nil {
		log.Printf("Availability cache read failed: %v", err)
	} else if data != nil {
		result := &ReconciliationResult{}
		if jsonErr := json.Unmarshal(data, result); jsonErr == nil {
			return result, nil
		}
	}
	return s.Recompute(ctx)
}

// Recompute fetches all six collections jointly and rebuilds availability
// from scratch. Any fetch failure aborts the whole pass.
func (s *availabilityService) Recompute(ctx context.Context) (*ReconciliationResult, error) {
	snap := &StockSnapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Products, err = s.productRepo.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Inwards, err = s.inwardRepo.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Purchases, err = s.purchaseRepo.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.MaterialsOut, err = s.materialOutRepo.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Sales, err = s.saleRepo.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Enquiries, err = s.enquiryRepo.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Distributions, err = s.distributionRepo.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch stock documents: %w", err)
	}

	result := Reconcile(snap)

	if cacheErr := s.cacheService.SetAvailability(ctx, result, 2*time.Minute); cacheErr != nil {
		log.Printf("Failed to cache availability snapshot: %v", cacheErr)
	}
	return result, nil
}

// InvalidateSnapshot drops the cached availability. Every stock write path
// calls this so the next read recomputes.
func (s *availabilityService) InvalidateSnapshot(ctx context.Context) {
	if err := s.cacheService.DeleteAvailability(ctx); err != nil {
		log.Printf("Failed to invalidate availability snapshot: %v", err)
	}
}

// movement event kinds for the normalized reconciliation pass
type eventKind int

const (
	evInbound eventKind = iota
	evTransferIn
	evOutPending
	evOutDispatched
	evTransferOut
	evSold
	evDistributed
)

// stockEvent is one normalized stock movement. Serial events carry a serial
// number and an implicit quantity of one; bulk events carry a quantity and an
// empty serial.
type stockEvent struct {
	kind      eventKind
	productID uuid.UUID
	serial    string
	qty       int
	branch    string
	company   string
	source    string // material_inward or purchase, for inbound events
	at        time.Time
}

func serialKey(productID uuid.UUID, serial string) string {
	return productID.String() + "|" + serial
}

// effectiveAt biases a transfer-in one millisecond later than its literal
// timestamp so it always beats the original inbound record for the same
// serial and relocates the unit instead of duplicating it.
func (e stockEvent) effectiveAt() time.Time {
	if e.kind == evTransferIn {
		return e.at.Add(time.Millisecond)
	}
	return e.at
}

// Reconcile folds the snapshot into the set of available items. It is a pure
// function of the snapshot: same input, same output.
//
// Serial rules: a serial consumed by a dispatch, a sale or a distribution
// never reappears; a pending materials-out reserves the serial; a transfer
// pair relocates the unit without changing system-wide availability.
// Bulk rule: available = max(0, inbound - outbound - sold - distributed).
func Reconcile(snap *StockSnapshot) *ReconciliationResult {
	products := make(map[uuid.UUID]*models.Product, len(snap.Products))
	for _, p := range snap.Products {
		products[p.ID] = p
	}

	events := normalizeEvents(snap)

	// First fold: consumption sets and bulk outbound totals.
	consumed := make(map[string]bool)   // dispatched, sold or distributed serials
	reserved := make(map[string]bool)   // pending materials-out serials
	transferIn := make(map[string]bool) // serials claimed by a transfer-in
	transferOut := make(map[string]stockEvent)
	bulkOut := make(map[uuid.UUID]int)

	for _, ev := range events {
		key := serialKey(ev.productID, ev.serial)
		switch ev.kind {
		case evOutDispatched, evSold, evDistributed:
			if ev.serial != "" {
				consumed[key] = true
			} else {
				bulkOut[ev.productID] += ev.qty
			}
		case evOutPending:
			if ev.serial != "" {
				reserved[key] = true
			} else {
				bulkOut[ev.productID] += ev.qty
			}
		case evTransferIn:
			if ev.serial != "" {
				transferIn[key] = true
			}
		case evTransferOut:
			// Deliberately not subtracted: the paired transfer-in relocates
			// the unit. Tracked only to warn on unmatched pairs.
			if ev.serial != "" {
				transferOut[key] = ev
			}
		}
	}

	// Second fold: inbound events build the serial ledger and bulk totals.
	type bulkState struct {
		qty      int
		branch   string
		lastSeen time.Time
	}
	serialLedger := make(map[string]stockEvent)
	bulkIn := make(map[uuid.UUID]*bulkState)

	for _, ev := range events {
		if ev.kind != evInbound && ev.kind != evTransferIn {
			continue
		}
		if ev.serial != "" {
			key := serialKey(ev.productID, ev.serial)
			if consumed[key] || reserved[key] {
				continue
			}
			// Latest effective timestamp wins; ties favor the later record.
			if prev, ok := serialLedger[key]; !ok || !ev.effectiveAt().Before(prev.effectiveAt()) {
				serialLedger[key] = ev
			}
		} else {
			st := bulkIn[ev.productID]
			if st == nil {
				st = &bulkState{}
				bulkIn[ev.productID] = st
			}
			st.qty += ev.qty
			if !ev.at.Before(st.lastSeen) {
				st.branch = ev.branch
				st.lastSeen = ev.at
			}
		}
	}

	result := &ReconciliationResult{}

	for key, out := range transferOut {
		if !transferIn[key] && !consumed[key] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("transfer-out of serial %s (product %s) has no matching transfer-in; unit still counted at %s",
					out.serial, out.productID, out.branch))
		}
	}

	for _, ev := range serialLedger {
		item := models.AvailableItem{
			ProductID:    ev.productID,
			SerialNumber: ev.serial,
			Quantity:     1,
			Branch:       ev.branch,
			Company:      ev.company,
			Source:       ev.source,
			ReceivedAt:   ev.at,
		}
		fillProductMeta(&item, products[ev.productID])
		result.Items = append(result.Items, item)
	}

	for productID, st := range bulkIn {
		available := st.qty - bulkOut[productID]
		if available <= 0 {
			continue // clamped at zero, zero rows omitted
		}
		item := models.AvailableItem{
			ProductID:  productID,
			Quantity:   available,
			Branch:     st.branch,
			Source:     "material_inward",
			ReceivedAt: st.lastSeen,
		}
		fillProductMeta(&item, products[productID])
		result.Items = append(result.Items, item)
	}

	return result
}

func fillProductMeta(item *models.AvailableItem, product *models.Product) {
	if product == nil {
		return // inbound line references an unknown product; keep the unit anyway
	}
	item.ProductName = product.Name
	item.ProductType = product.Type
	if item.Company == "" {
		item.Company = product.Company
	}
	item.MRP = product.MRP
	item.DealerPrice = product.DealerPrice
	item.HasGST = product.HasGST
	item.GSTPercent = product.GSTPercent
	if product.HSNCode != nil {
		item.HSNCode = *product.HSNCode
	}
}

// normalizeEvents flattens all six collections into one movement-event list,
// so transfer detection, serial extraction and sale detection each live in a
// single place.
func normalizeEvents(snap *StockSnapshot) []stockEvent {
	var events []stockEvent

	appendInbound := func(items []models.StockLineItem, transfer bool, branch, company, source string, at time.Time) {
		kind := evInbound
		if transfer {
			kind = evTransferIn
		}
		for _, li := range items {
			serials := li.Serials()
			if len(serials) > 0 {
				for _, sn := range serials {
					events = append(events, stockEvent{
						kind: kind, productID: li.ProductID, serial: sn,
						qty: 1, branch: branch, company: company, source: source, at: at,
					})
				}
			} else if li.Quantity > 0 {
				events = append(events, stockEvent{
					kind: kind, productID: li.ProductID,
					qty: li.Quantity, branch: branch, company: company, source: source, at: at,
				})
			}
		}
	}

	for _, m := range snap.Inwards {
		appendInbound(m.Items, m.IsStockTransfer(), m.Branch, m.Company, "material_inward", m.ReceivedAt)
	}
	for _, p := range snap.Purchases {
		appendInbound(p.Items, p.IsStockTransfer(), p.Branch, p.Company, "purchase", p.PurchasedAt)
	}

	for _, out := range snap.MaterialsOut {
		var kind eventKind
		switch {
		case out.IsStockTransfer():
			kind = evTransferOut
		case out.EffectiveStatus() == models.MaterialOutPending:
			kind = evOutPending
		case out.EffectiveStatus() == models.MaterialOutReturned:
			continue // returned stock never left
		default:
			kind = evOutDispatched
		}
		for _, li := range out.Items {
			serials := li.Serials()
			if len(serials) > 0 {
				for _, sn := range serials {
					events = append(events, stockEvent{
						kind: kind, productID: li.ProductID, serial: sn, qty: 1,
						branch: out.Branch, at: out.DispatchedAt,
					})
				}
			} else if li.Quantity > 0 {
				events = append(events, stockEvent{
					kind: kind, productID: li.ProductID, qty: li.Quantity,
					branch: out.Branch, at: out.DispatchedAt,
				})
			}
		}
	}

	appendSaleLines := func(lines []models.SaleLineItem, at time.Time) {
		for _, li := range lines {
			if li.HasRealSerial() {
				events = append(events, stockEvent{
					kind: evSold, productID: li.ProductID, serial: li.SerialNumber, qty: 1, at: at,
				})
			} else {
				events = append(events, stockEvent{
					kind: evSold, productID: li.ProductID, qty: li.EffectiveQuantity(), at: at,
				})
			}
		}
	}

	for _, sale := range snap.Sales {
		appendSaleLines(sale.Items, sale.SoldAt)
	}
	for _, enquiry := range snap.Enquiries {
		for _, visit := range enquiry.SaleVisits() {
			appendSaleLines(visit.Products, visit.VisitDate)
		}
	}

	for _, dist := range snap.Distributions {
		for _, li := range dist.Items {
			if len(li.SerialNumbers) > 0 {
				for _, sn := range li.SerialNumbers {
					events = append(events, stockEvent{
						kind: evDistributed, productID: li.ProductID, serial: sn, qty: 1, at: dist.DistributedAt,
					})
				}
			} else if li.Quantity > 0 {
				events = append(events, stockEvent{
					kind: evDistributed, productID: li.ProductID, qty: li.Quantity, at: dist.DistributedAt,
				})
			}
		}
	}

	return events
}
