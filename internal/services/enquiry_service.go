package services

import (
	"context"
	"fmt"
	"time"

	"audimart/internal/models"
	"audimart/internal/repositories"

	"github.com/google/uuid"
)

// EnquiryService tracks patient journeys. A visit that qualifies as a sale
// consumes stock, so adding or editing visits invalidates the availability
// snapshot.
type EnquiryService interface {
	Create(ctx context.Context, enquiry *models.Enquiry) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Enquiry, error)
	Update(ctx context.Context, enquiry *models.Enquiry) error
	AddVisit(ctx context.Context, id uuid.UUID, visit models.EnquiryVisit) error
	List(ctx context.Context, limit, offset int) ([]*models.Enquiry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type enquiryService struct {
	enquiryRepo     repositories.EnquiryRepository
	availabilitySvc AvailabilityService
}

func NewEnquiryService(enquiryRepo repositories.EnquiryRepository, availabilitySvc AvailabilityService) EnquiryService {
	return &enquiryService{enquiryRepo: enquiryRepo, availabilitySvc: availabilitySvc}
}

func (s *enquiryService) Create(ctx context.Context, enquiry *models.Enquiry) error {
	if enquiry.PatientName == "" {
		return fmt.Errorf("patient name is required")
	}
	if enquiry.ID == uuid.Nil {
		enquiry.ID = uuid.New()
	}
	for i := range enquiry.Visits {
		if enquiry.Visits[i].VisitDate.IsZero() {
			enquiry.Visits[i].VisitDate = time.Now()
		}
	}
	if err := s.enquiryRepo.Create(ctx, enquiry); err != nil {
		return err
	}
	if hasSaleVisit(enquiry.Visits) {
		s.availabilitySvc.InvalidateSnapshot(ctx)
	}
	return nil
}

func (s *enquiryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Enquiry, error) {
	return s.enquiryRepo.GetByID(ctx, id)
}

func (s *enquiryService) Update(ctx context.Context, enquiry *models.Enquiry) error {
	if err := s.enquiryRepo.Update(ctx, enquiry); err != nil {
		return err
	}
	s.availabilitySvc.InvalidateSnapshot(ctx)
	return nil
}

func (s *enquiryService) AddVisit(ctx context.Context, id uuid.UUID, visit models.EnquiryVisit) error {
	if visit.VisitDate.IsZero() {
		visit.VisitDate = time.Now()
	}
	if err := s.enquiryRepo.AddVisit(ctx, id, visit); err != nil {
		return err
	}
	if visit.IsSale() {
		s.availabilitySvc.InvalidateSnapshot(ctx)
	}
	return nil
}

func (s *enquiryService) List(ctx context.Context, limit, offset int) ([]*models.Enquiry, error) {
	return s.enquiryRepo.List(ctx, limit, offset)
}

func (s *enquiryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.enquiryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.availabilitySvc.InvalidateSnapshot(ctx)
	return nil
}

func hasSaleVisit(visits []models.EnquiryVisit) bool {
	for _, v := range visits {
		if v.IsSale() {
			return true
		}
	}
	return false
}
