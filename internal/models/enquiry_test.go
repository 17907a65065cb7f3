package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVisitIsSale(t *testing.T) {
	tests := []struct {
		name  string
		visit EnquiryVisit
		want  bool
	}{
		{"explicit flag", EnquiryVisit{SaleFlag: true}, true},
		{"hearing aid sale service", EnquiryVisit{MedicalServices: []string{"audiometry", "hearing_aid_sale"}}, true},
		{"journey stage sale", EnquiryVisit{JourneyStage: JourneySale}, true},
		{"status sold", EnquiryVisit{Status: "sold"}, true},
		{"products with positive total", EnquiryVisit{
			Products: []SaleLineItem{{ProductID: uuid.New(), UnitPrice: 45000}},
		}, true},
		{"products with explicit total", EnquiryVisit{
			Products:    []SaleLineItem{{ProductID: uuid.New()}},
			TotalAmount: 1200,
		}, true},
		{"plain enquiry visit", EnquiryVisit{JourneyStage: JourneyEnquiry}, false},
		{"trial visit", EnquiryVisit{JourneyStage: JourneyTrial, Status: "trialing"}, false},
		{"products but zero value", EnquiryVisit{
			Products: []SaleLineItem{{ProductID: uuid.New()}},
		}, false},
		{"other medical services only", EnquiryVisit{MedicalServices: []string{"audiometry", "impedance"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.visit.IsSale())
		})
	}
}

func TestSaleVisits(t *testing.T) {
	enquiry := &Enquiry{
		Visits: []EnquiryVisit{
			{JourneyStage: JourneyEnquiry},
			{JourneyStage: JourneyTrial},
			{JourneyStage: JourneySale},
			{SaleFlag: true},
		},
	}
	assert.Len(t, enquiry.SaleVisits(), 2)
}

func TestSaleLineItemHasRealSerial(t *testing.T) {
	assert.True(t, SaleLineItem{SerialNumber: "SN123"}.HasRealSerial())
	assert.False(t, SaleLineItem{SerialNumber: ""}.HasRealSerial())
	assert.False(t, SaleLineItem{SerialNumber: "NA"}.HasRealSerial())
	assert.False(t, SaleLineItem{SerialNumber: "na"}.HasRealSerial())
	assert.False(t, SaleLineItem{SerialNumber: "-"}.HasRealSerial())
	assert.False(t, SaleLineItem{SerialNumber: "  "}.HasRealSerial())
}

func TestSaleLineItemEffectiveQuantity(t *testing.T) {
	assert.Equal(t, 3, SaleLineItem{Quantity: 3}.EffectiveQuantity())
	assert.Equal(t, 1, SaleLineItem{}.EffectiveQuantity())
}
