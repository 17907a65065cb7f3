package repositories

import (
	"context"
	"encoding/json"

	"audimart/internal/models"

	"github.com/google/uuid"
)

type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *models.Enquiry) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Enquiry, error)
	Update(ctx context.Context, enquiry *models.Enquiry) error
	AddVisit(ctx context.Context, id uuid.UUID, visit models.EnquiryVisit) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Enquiry, error)
	ListAll(ctx context.Context) ([]*models.Enquiry, error)
}

type enquiryRepo struct {
	db DB
}

func NewEnquiryRepository(db DB) EnquiryRepository {
	return &enquiryRepo{db: db}
}

const enquiryColumns = `id, patient_name, phone, branch, source, visits, created_at, updated_at`

func scanEnquiry(row interface{ Scan(...any) error }) (*models.Enquiry, error) {
	e := &models.Enquiry{}
	var visits []byte
	err := row.Scan(&e.ID, &e.PatientName, &e.Phone, &e.Branch, &e.Source, &visits, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(visits) > 0 {
		if err := json.Unmarshal(visits, &e.Visits); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (r *enquiryRepo) Create(ctx context.Context, enquiry *models.Enquiry) error {
	visits, err := json.Marshal(enquiry.Visits)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO enquiries (id, patient_name, phone, branch, source, visits, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, enquiry.ID, enquiry.PatientName, enquiry.Phone, enquiry.Branch, enquiry.Source, visits)
	return err
}

func (r *enquiryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Enquiry, error) {
	query := `SELECT ` + enquiryColumns + ` FROM enquiries WHERE id = $1`
	return scanEnquiry(r.db.QueryRow(ctx, query, id))
}

func (r *enquiryRepo) Update(ctx context.Context, enquiry *models.Enquiry) error {
	visits, err := json.Marshal(enquiry.Visits)
	if err != nil {
		return err
	}
	query := `
		UPDATE enquiries
		SET patient_name = $1, phone = $2, branch = $3, source = $4, visits = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err = r.db.Exec(ctx, query, enquiry.PatientName, enquiry.Phone, enquiry.Branch, enquiry.Source, visits, enquiry.ID)
	return err
}

// AddVisit appends a visit to the enquiry's embedded visit history.
func (r *enquiryRepo) AddVisit(ctx context.Context, id uuid.UUID, visit models.EnquiryVisit) error {
	enquiry, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	enquiry.Visits = append(enquiry.Visits, visit)
	return r.Update(ctx, enquiry)
}

func (r *enquiryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM enquiries WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *enquiryRepo) List(ctx context.Context, limit, offset int) ([]*models.Enquiry, error) {
	query := `SELECT ` + enquiryColumns + ` FROM enquiries ORDER BY updated_at DESC LIMIT $1 OFFSET $2`
	return r.queryEnquiries(ctx, query, limit, offset)
}

// ListAll returns every enquiry for the reconciliation pass.
func (r *enquiryRepo) ListAll(ctx context.Context) ([]*models.Enquiry, error) {
	query := `SELECT ` + enquiryColumns + ` FROM enquiries`
	return r.queryEnquiries(ctx, query)
}

func (r *enquiryRepo) queryEnquiries(ctx context.Context, query string, args ...any) ([]*models.Enquiry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enquiries []*models.Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		enquiries = append(enquiries, e)
	}
	return enquiries, rows.Err()
}
