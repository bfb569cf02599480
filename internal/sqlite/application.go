package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/limfang/btoflow/internal/domain/application"
	"github.com/limfang/btoflow/internal/domain/project"
	"github.com/limfang/btoflow/internal/repository"
)

// ApplicationRepository implements application.Repository for SQLite
type ApplicationRepository struct {
	db *DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, applicant_nric, project_id, flat_type, status, created_at, modified_at`

func scanApplication(row rowScanner) (*application.Application, error) {
	var app application.Application
	err := row.Scan(
		&app.ID,
		&app.ApplicantNRIC,
		&app.ProjectID,
		&app.FlatType,
		&app.Status,
		&app.CreatedAt,
		&app.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Create inserts a new application. A partial unique index over active
// rows rejects a second live application for the same applicant, even
// when two submissions race.
func (r *ApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		app.ID,
		app.ApplicantNRIC,
		app.ProjectID,
		app.FlatType,
		app.Status,
		app.CreatedAt,
		app.ModifiedAt,
	)

	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// Get retrieves an application by ID
func (r *ApplicationRepository) Get(ctx context.Context, id string) (*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = ?`

	app, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return app, nil
}

// GetActiveByApplicant returns the applicant's non-UNSUCCESSFUL
// application. The partial unique index guarantees at most one.
func (r *ApplicationRepository) GetActiveByApplicant(ctx context.Context, nric string) (*application.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE applicant_nric = ? AND status != 'UNSUCCESSFUL'
	`

	app, err := scanApplication(r.db.QueryRowContext(ctx, query, nric))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active application: %w", err)
	}

	return app, nil
}

// GetLatestByApplicant returns the applicant's most recent application
// regardless of status
func (r *ApplicationRepository) GetLatestByApplicant(ctx context.Context, nric string) (*application.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE applicant_nric = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	app, err := scanApplication(r.db.QueryRowContext(ctx, query, nric))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest application: %w", err)
	}

	return app, nil
}

// UpdateStatus transitions the application from exactly `from` to `to`.
// The status guard in the WHERE clause makes concurrent decisions on the
// same application lose cleanly with repository.ErrConflict.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, from, to application.Status) error {
	query := `
		UPDATE applications
		SET status = ?, modified_at = ?
		WHERE id = ? AND status = ?
	`

	result, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check application: %w", err)
	}
	if exists == 0 {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}

// ApproveReserving approves the application and reserves its unit in
// one transaction. The PENDING -> SUCCESSFUL flip and the guarded unit
// decrement commit together, so a concurrent booking can never observe
// SUCCESSFUL on an application whose flat type had already run out. On
// exhaustion the row is committed UNSUCCESSFUL instead and
// repository.ErrExhausted returned.
func (r *ApplicationRepository) ApproveReserving(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var projectID string
	var flatType project.FlatType
	var status application.Status
	err = tx.QueryRowContext(ctx,
		`SELECT project_id, flat_type, status FROM applications WHERE id = ?`, id).
		Scan(&projectID, &flatType, &status)
	if err == sql.ErrNoRows {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load application: %w", err)
	}
	if status != application.StatusPending {
		return repository.ErrConflict
	}

	now := time.Now()
	if _, err := tx.ExecContext(ctx,
		`UPDATE applications SET status = ?, modified_at = ? WHERE id = ?`,
		application.StatusSuccessful, now, id); err != nil {
		return fmt.Errorf("failed to approve application: %w", err)
	}

	reserved, err := reserveUnit(ctx, tx, projectID, flatType)
	if err != nil {
		return err
	}
	if reserved == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM projects WHERE id = ?`, projectID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check project: %w", err)
		}
		if exists == 0 {
			return repository.ErrNotFound
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE applications SET status = ?, modified_at = ? WHERE id = ?`,
			application.StatusUnsuccessful, now, id); err != nil {
			return fmt.Errorf("failed to fail exhausted application: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return repository.ErrExhausted
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ForceStatus sets the status unconditionally
func (r *ApplicationRepository) ForceStatus(ctx context.Context, id string, to application.Status) error {
	query := `
		UPDATE applications
		SET status = ?, modified_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, to, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set application status: %w", err)
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

// ListByProject returns all applications for a project
func (r *ApplicationRepository) ListByProject(ctx context.Context, projectID string) ([]application.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE project_id = ?
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, projectID)
}

// List returns all applications
func (r *ApplicationRepository) List(ctx context.Context) ([]application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY created_at ASC`
	return r.list(ctx, query)
}

// HasActiveApplication reports whether the person holds a live
// application for the given project. Feeds the officer-registration
// conflict check.
func (r *ApplicationRepository) HasActiveApplication(ctx context.Context, nric, projectID string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM applications
		WHERE applicant_nric = ? AND project_id = ? AND status != 'UNSUCCESSFUL'
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, nric, projectID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check active application: %w", err)
	}

	return count > 0, nil
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}

	return apps, nil
}
