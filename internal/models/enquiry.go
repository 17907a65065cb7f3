package models

import (
	"time"

	"github.com/google/uuid"
)

// Enquiry journey stages used by the front office
const (
	JourneyEnquiry = "enquiry"
	JourneyTrial   = "trial"
	JourneySale    = "sale"
	JourneyFollowU = "follow_up"
)

// EnquiryVisit is one visit embedded inside a patient enquiry. Some visits
// are sales in disguise; IsSale() encodes the detection rules used by the
// old billing forms.
type EnquiryVisit struct {
	VisitDate       time.Time      `json:"visit_date"`
	SaleFlag        bool           `json:"sale_flag,omitempty"`
	MedicalServices []string       `json:"medical_services,omitempty"`
	JourneyStage    string         `json:"journey_stage,omitempty"`
	Status          string         `json:"status,omitempty"`
	Products        []SaleLineItem `json:"products,omitempty"`
	TotalAmount     float64        `json:"total_amount,omitempty"`
	Notes           string         `json:"notes,omitempty"`
}

// IsSale reports whether this visit represents a completed sale. A visit
// qualifies on any of: an explicit sale flag, a hearing_aid_sale medical
// service entry, a journey stage of sale, a status of sold, or non-empty
// products with a positive computed total.
func (v *EnquiryVisit) IsSale() bool {
	if v.SaleFlag {
		return true
	}
	for _, svc := range v.MedicalServices {
		if svc == "hearing_aid_sale" {
			return true
		}
	}
	if v.JourneyStage == JourneySale {
		return true
	}
	if v.Status == "sold" {
		return true
	}
	if len(v.Products) > 0 && v.computedTotal() > 0 {
		return true
	}
	return false
}

func (v *EnquiryVisit) computedTotal() float64 {
	if v.TotalAmount > 0 {
		return v.TotalAmount
	}
	total := 0.0
	for _, p := range v.Products {
		total += p.UnitPrice*float64(p.EffectiveQuantity()) - p.Discount + p.GSTAmount
	}
	return total
}

// Enquiry is a patient enquiry document with its visit history.
type Enquiry struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	PatientName string         `json:"patient_name" db:"patient_name"`
	Phone       string         `json:"phone" db:"phone"`
	Branch      string         `json:"branch" db:"branch"`
	Source      string         `json:"source" db:"source"`
	Visits      []EnquiryVisit `json:"visits" db:"visits"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// SaleVisits returns the visits that qualify as sales.
func (e *Enquiry) SaleVisits() []EnquiryVisit {
	var out []EnquiryVisit
	for _, v := range e.Visits {
		if v.IsSale() {
			out = append(out, v)
		}
	}
	return out
}
