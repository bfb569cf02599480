package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/limfang/btoflow/internal/domain/project"
	"github.com/limfang/btoflow/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite. It also
// carries the guarded unit and officer-slot decrements consumed by the
// application and registration workflows.
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `
	id, name, neighborhood, manager_nric,
	type1, units1, price1, type2, units2, price2,
	open_date, close_date, officer_slots, visible, created_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	var price1, price2 string

	err := row.Scan(
		&proj.ID,
		&proj.Name,
		&proj.Neighborhood,
		&proj.ManagerNRIC,
		&proj.Slots[0].Type,
		&proj.Slots[0].Units,
		&price1,
		&proj.Slots[1].Type,
		&proj.Slots[1].Units,
		&price2,
		&proj.OpenDate,
		&proj.CloseDate,
		&proj.OfficerSlots,
		&proj.Visible,
		&proj.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if proj.Slots[0].Price, err = decimal.NewFromString(price1); err != nil {
		return nil, fmt.Errorf("invalid stored price %q: %w", price1, err)
	}
	if proj.Slots[1].Price, err = decimal.NewFromString(price2); err != nil {
		return nil, fmt.Errorf("invalid stored price %q: %w", price2, err)
	}

	return &proj, nil
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		proj.Name,
		proj.Neighborhood,
		proj.ManagerNRIC,
		proj.Slots[0].Type,
		proj.Slots[0].Units,
		proj.Slots[0].Price.String(),
		proj.Slots[1].Type,
		proj.Slots[1].Units,
		proj.Slots[1].Price.String(),
		proj.OpenDate,
		proj.CloseDate,
		proj.OfficerSlots,
		proj.Visible,
		proj.CreatedAt,
	)

	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return proj, nil
}

// GetByName retrieves a project by its unique name
func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE name = ?`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project by name: %w", err)
	}

	return proj, nil
}

// Update rewrites all mutable project fields. The id never changes.
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	query := `
		UPDATE projects
		SET name = ?, neighborhood = ?,
		    type1 = ?, units1 = ?, price1 = ?,
		    type2 = ?, units2 = ?, price2 = ?,
		    open_date = ?, close_date = ?, officer_slots = ?, visible = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.Name,
		proj.Neighborhood,
		proj.Slots[0].Type,
		proj.Slots[0].Units,
		proj.Slots[0].Price.String(),
		proj.Slots[1].Type,
		proj.Slots[1].Units,
		proj.Slots[1].Price.String(),
		proj.OpenDate,
		proj.CloseDate,
		proj.OfficerSlots,
		proj.Visible,
		proj.ID,
	)

	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
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

// Delete removes a project
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
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

// List returns all projects with the count of approved handling officers
func (r *ProjectRepository) List(ctx context.Context) ([]project.Summary, error) {
	query := `
		SELECT
			p.id, p.name, p.neighborhood, p.manager_nric,
			p.type1, p.units1, p.price1, p.type2, p.units2, p.price2,
			p.open_date, p.close_date, p.officer_slots, p.visible,
			COUNT(g.id) as handling_officers
		FROM projects p
		LEFT JOIN registrations g ON g.project_id = p.id AND g.status = 'APPROVED'
		GROUP BY p.id
		ORDER BY p.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []project.Summary
	for rows.Next() {
		var s project.Summary
		var price1, price2 string
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Neighborhood,
			&s.ManagerNRIC,
			&s.Slots[0].Type,
			&s.Slots[0].Units,
			&price1,
			&s.Slots[1].Type,
			&s.Slots[1].Units,
			&price2,
			&s.OpenDate,
			&s.CloseDate,
			&s.OfficerSlots,
			&s.Visible,
			&s.HandlingOfficers,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		if s.Slots[0].Price, err = decimal.NewFromString(price1); err != nil {
			return nil, fmt.Errorf("invalid stored price %q: %w", price1, err)
		}
		if s.Slots[1].Price, err = decimal.NewFromString(price2); err != nil {
			return nil, fmt.Errorf("invalid stored price %q: %w", price2, err)
		}
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return summaries, nil
}

// ListByManager returns full projects owned by one manager
func (r *ProjectRepository) ListByManager(ctx context.Context, managerNRIC string) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE manager_nric = ? ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, managerNRIC)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects by manager: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// ToggleVisibility atomically flips the visibility flag and returns the
// new value
func (r *ProjectRepository) ToggleVisibility(ctx context.Context, id string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE projects SET visible = 1 - visible WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to toggle visibility: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, repository.ErrNotFound
	}

	var visible bool
	err = tx.QueryRowContext(ctx, `SELECT visible FROM projects WHERE id = ?`, id).Scan(&visible)
	if err != nil {
		return false, fmt.Errorf("failed to get new visibility: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return visible, nil
}

// LiveReferenceCount counts applications and registrations still tying
// up the project. Terminal rows (UNSUCCESSFUL applications, REJECTED
// registrations) are allowed to dangle and do not count.
func (r *ProjectRepository) LiveReferenceCount(ctx context.Context, id string) (int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM applications WHERE project_id = ?1 AND status != 'UNSUCCESSFUL') +
			(SELECT COUNT(*) FROM registrations WHERE project_id = ?1 AND status != 'REJECTED')
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count live references: %w", err)
	}

	return count, nil
}

// reserveUnit decrements the flat type's unit count in a single guarded
// statement and reports how many rows changed. The guard keeps counters
// from going below zero under concurrent approvals. It runs against the
// approving transaction so the decrement commits with the status flip.
func reserveUnit(ctx context.Context, e execer, projectID string, flatType project.FlatType) (int64, error) {
	query := `
		UPDATE projects
		SET units1 = CASE WHEN type1 = ?1 THEN units1 - 1 ELSE units1 END,
		    units2 = CASE WHEN type2 = ?1 THEN units2 - 1 ELSE units2 END
		WHERE id = ?2
		  AND ((type1 = ?1 AND units1 > 0) OR (type2 = ?1 AND units2 > 0))
	`

	result, err := e.ExecContext(ctx, query, string(flatType), projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to reserve unit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}

// consumeOfficerSlot decrements the officer-slot count in a single
// guarded statement and reports how many rows changed.
func consumeOfficerSlot(ctx context.Context, e execer, projectID string) (int64, error) {
	query := `
		UPDATE projects
		SET officer_slots = officer_slots - 1
		WHERE id = ? AND officer_slots > 0
	`

	result, err := e.ExecContext(ctx, query, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to consume officer slot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}
