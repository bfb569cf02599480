package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/limfang/btoflow/internal/domain/enquiry"
	"github.com/limfang/btoflow/internal/repository"
)

// EnquiryRepository implements enquiry.Repository for SQLite
type EnquiryRepository struct {
	db *DB
}

// NewEnquiryRepository creates a new EnquiryRepository
func NewEnquiryRepository(db *DB) *EnquiryRepository {
	return &EnquiryRepository{db: db}
}

const enquiryColumns = `id, applicant_nric, project_id, text, reply, replied_by, created_at, modified_at, replied_at`

func scanEnquiry(row rowScanner) (*enquiry.Enquiry, error) {
	var e enquiry.Enquiry
	err := row.Scan(
		&e.ID,
		&e.ApplicantNRIC,
		&e.ProjectID,
		&e.Text,
		&e.Reply,
		&e.RepliedBy,
		&e.CreatedAt,
		&e.ModifiedAt,
		&e.RepliedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new enquiry
func (r *EnquiryRepository) Create(ctx context.Context, e *enquiry.Enquiry) error {
	query := `
		INSERT INTO enquiries (` + enquiryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ApplicantNRIC,
		e.ProjectID,
		e.Text,
		e.Reply,
		e.RepliedBy,
		e.CreatedAt,
		e.ModifiedAt,
		e.RepliedAt,
	)

	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if err != nil {
		return fmt.Errorf("failed to create enquiry: %w", err)
	}

	return nil
}

// Get retrieves an enquiry by ID
func (r *EnquiryRepository) Get(ctx context.Context, id string) (*enquiry.Enquiry, error) {
	query := `SELECT ` + enquiryColumns + ` FROM enquiries WHERE id = ?`

	e, err := scanEnquiry(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enquiry: %w", err)
	}

	return e, nil
}

// Update rewrites the mutable enquiry fields
func (r *EnquiryRepository) Update(ctx context.Context, e *enquiry.Enquiry) error {
	query := `
		UPDATE enquiries
		SET text = ?, reply = ?, replied_by = ?, modified_at = ?, replied_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		e.Text,
		e.Reply,
		e.RepliedBy,
		e.ModifiedAt,
		e.RepliedAt,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update enquiry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes an enquiry
func (r *EnquiryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM enquiries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete enquiry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListByApplicant returns an applicant's enquiries
func (r *EnquiryRepository) ListByApplicant(ctx context.Context, nric string) ([]enquiry.Enquiry, error) {
	query := `
		SELECT ` + enquiryColumns + `
		FROM enquiries
		WHERE applicant_nric = ?
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, nric)
}

// ListByProject returns a project's enquiries
func (r *EnquiryRepository) ListByProject(ctx context.Context, projectID string) ([]enquiry.Enquiry, error) {
	query := `
		SELECT ` + enquiryColumns + `
		FROM enquiries
		WHERE project_id = ?
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, projectID)
}

func (r *EnquiryRepository) list(ctx context.Context, query string, args ...any) ([]enquiry.Enquiry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}
	defer rows.Close()

	var enquiries []enquiry.Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enquiry: %w", err)
		}
		enquiries = append(enquiries, *e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enquiry rows: %w", err)
	}

	return enquiries, nil
}
