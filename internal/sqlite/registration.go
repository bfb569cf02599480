package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/limfang/btoflow/internal/domain/eligibility"
	"github.com/limfang/btoflow/internal/domain/registration"
	"github.com/limfang/btoflow/internal/repository"
)

// RegistrationRepository implements registration.Repository for SQLite
type RegistrationRepository struct {
	db *DB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

const registrationColumns = `id, officer_nric, project_id, status, created_at, modified_at`

func scanRegistration(row rowScanner) (*registration.Registration, error) {
	var reg registration.Registration
	err := row.Scan(
		&reg.ID,
		&reg.OfficerNRIC,
		&reg.ProjectID,
		&reg.Status,
		&reg.CreatedAt,
		&reg.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Create inserts a new registration. The (officer, project) pair is
// unique across all statuses, so a racing duplicate loses here.
func (r *RegistrationRepository) Create(ctx context.Context, reg *registration.Registration) error {
	query := `
		INSERT INTO registrations (` + registrationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		reg.ID,
		reg.OfficerNRIC,
		reg.ProjectID,
		reg.Status,
		reg.CreatedAt,
		reg.ModifiedAt,
	)

	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}

	return nil
}

// Get retrieves a registration by ID
func (r *RegistrationRepository) Get(ctx context.Context, id string) (*registration.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = ?`

	reg, err := scanRegistration(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	return reg, nil
}

// ListByOfficer returns all of an officer's registrations
func (r *RegistrationRepository) ListByOfficer(ctx context.Context, officerNRIC string) ([]registration.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE officer_nric = ?
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, officerNRIC)
}

// ListByProject returns all registrations for a project
func (r *RegistrationRepository) ListByProject(ctx context.Context, projectID string) ([]registration.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE project_id = ?
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, projectID)
}

// UpdateStatus transitions the registration from exactly `from` to `to`,
// with the same status guard as application updates.
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id string, from, to registration.Status) error {
	query := `
		UPDATE registrations
		SET status = ?, modified_at = ?
		WHERE id = ? AND status = ?
	`

	result, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return fmt.Errorf("failed to update registration status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check registration: %w", err)
	}
	if exists == 0 {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}

// ApproveConsumingSlot approves the registration and consumes one of
// the project's officer slots in one transaction. The schedule-overlap
// guard runs against the officer's other APPROVED registrations inside
// the same transaction, so two pending registrations for overlapping
// windows cannot both commit as APPROVED. Registrations pointing at
// deleted projects are skipped by the window join. On an empty slot
// pool the row is committed REJECTED instead and
// repository.ErrExhausted returned.
func (r *RegistrationRepository) ApproveConsumingSlot(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var officerNRIC, projectID string
	var status registration.Status
	err = tx.QueryRowContext(ctx,
		`SELECT officer_nric, project_id, status FROM registrations WHERE id = ?`, id).
		Scan(&officerNRIC, &projectID, &status)
	if err == sql.ErrNoRows {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load registration: %w", err)
	}
	if status != registration.StatusPending {
		return repository.ErrConflict
	}

	var openDate, closeDate time.Time
	err = tx.QueryRowContext(ctx,
		`SELECT open_date, close_date FROM projects WHERE id = ?`, projectID).
		Scan(&openDate, &closeDate)
	if err == sql.ErrNoRows {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load project window: %w", err)
	}

	held, err := heldWindows(ctx, tx, officerNRIC, projectID)
	if err != nil {
		return err
	}
	for _, w := range held {
		if eligibility.Overlaps(w[0], w[1], openDate, closeDate) {
			return repository.ErrOverlap
		}
	}

	now := time.Now()
	result, err := tx.ExecContext(ctx,
		`UPDATE registrations SET status = ?, modified_at = ? WHERE id = ? AND status = ?`,
		registration.StatusApproved, now, id, registration.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to approve registration: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrConflict
	}

	consumed, err := consumeOfficerSlot(ctx, tx, projectID)
	if err != nil {
		return err
	}
	if consumed == 0 {
		if _, err := tx.ExecContext(ctx,
			`UPDATE registrations SET status = ?, modified_at = ? WHERE id = ?`,
			registration.StatusRejected, now, id); err != nil {
			return fmt.Errorf("failed to reject slotless registration: %w", err)
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

// heldWindows returns the application windows of the other projects the
// officer is approved to handle. Dangling project ids drop out of the
// join.
func heldWindows(ctx context.Context, tx *sql.Tx, officerNRIC, excludeProjectID string) ([][2]time.Time, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT p.open_date, p.close_date
		FROM registrations g
		JOIN projects p ON p.id = g.project_id
		WHERE g.officer_nric = ? AND g.status = 'APPROVED' AND g.project_id != ?
	`, officerNRIC, excludeProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list held windows: %w", err)
	}
	defer rows.Close()

	var windows [][2]time.Time
	for rows.Next() {
		var w [2]time.Time
		if err := rows.Scan(&w[0], &w[1]); err != nil {
			return nil, fmt.Errorf("failed to scan held window: %w", err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating held windows: %w", err)
	}
	return windows, nil
}

// HasApprovedRegistration reports whether the officer is approved
// handling staff for the project. Feeds the application conflict check.
func (r *RegistrationRepository) HasApprovedRegistration(ctx context.Context, officerNRIC, projectID string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM registrations
		WHERE officer_nric = ? AND project_id = ? AND status = 'APPROVED'
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, officerNRIC, projectID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check approved registration: %w", err)
	}

	return count > 0, nil
}

func (r *RegistrationRepository) list(ctx context.Context, query string, args ...any) ([]registration.Registration, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var regs []registration.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, *reg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}

	return regs, nil
}
