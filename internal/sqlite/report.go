package sqlite

import (
	"context"
	"fmt"

	"github.com/limfang/btoflow/internal/domain/report"
)

// ReportRepository implements report.Repository for SQLite
type ReportRepository struct {
	db *DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// ListBooked joins BOOKED applications with their applicants and
// projects. Applications whose project has since been deleted are
// excluded by the inner join.
func (r *ReportRepository) ListBooked(ctx context.Context, filter report.Filter) ([]report.BookingRow, error) {
	query := `
		SELECT pe.nric, pe.age, pe.marital_status, pr.name, a.flat_type
		FROM applications a
		JOIN people pe ON pe.nric = a.applicant_nric
		JOIN projects pr ON pr.id = a.project_id
		WHERE a.status = 'BOOKED'
		  AND (? = '' OR pe.marital_status = ?)
		ORDER BY pr.name ASC, pe.nric ASC
	`

	status := ""
	if filter.MaritalStatus != nil {
		status = string(*filter.MaritalStatus)
	}

	rows, err := r.db.QueryContext(ctx, query, status, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked flats: %w", err)
	}
	defer rows.Close()

	var result []report.BookingRow
	for rows.Next() {
		var row report.BookingRow
		err := rows.Scan(
			&row.NRIC,
			&row.Age,
			&row.MaritalStatus,
			&row.ProjectName,
			&row.FlatType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}

	return result, nil
}
