package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/limfang/btoflow/internal/domain/identity"
	"github.com/limfang/btoflow/internal/repository"
)

// PersonRepository implements identity.Repository for SQLite
type PersonRepository struct {
	db *DB
}

// NewPersonRepository creates a new PersonRepository
func NewPersonRepository(db *DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// Create inserts a new person
func (r *PersonRepository) Create(ctx context.Context, p *identity.Person) error {
	query := `
		INSERT INTO people (nric, name, age, marital_status, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.NRIC,
		p.Name,
		p.Age,
		p.MaritalStatus,
		p.Role,
		p.CreatedAt,
	)

	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}

	return nil
}

// Get retrieves a person by NRIC
func (r *PersonRepository) Get(ctx context.Context, nric string) (*identity.Person, error) {
	query := `
		SELECT nric, name, age, marital_status, role, created_at
		FROM people
		WHERE nric = ?
	`

	var p identity.Person
	err := r.db.QueryRowContext(ctx, query, nric).Scan(
		&p.NRIC,
		&p.Name,
		&p.Age,
		&p.MaritalStatus,
		&p.Role,
		&p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	return &p, nil
}

// FindByName retrieves the first person matching a name. Names are not
// unique; the bulk loader uses this only as a fallback lookup.
func (r *PersonRepository) FindByName(ctx context.Context, name string) (*identity.Person, error) {
	query := `
		SELECT nric, name, age, marital_status, role, created_at
		FROM people
		WHERE name = ?
		ORDER BY created_at ASC
		LIMIT 1
	`

	var p identity.Person
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&p.NRIC,
		&p.Name,
		&p.Age,
		&p.MaritalStatus,
		&p.Role,
		&p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find person by name: %w", err)
	}

	return &p, nil
}

// List returns people, optionally filtered by role. An empty role
// returns everyone.
func (r *PersonRepository) List(ctx context.Context, role identity.Role) ([]identity.Person, error) {
	query := `
		SELECT nric, name, age, marital_status, role, created_at
		FROM people
		WHERE (? = '' OR role = ?)
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, string(role), string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []identity.Person
	for rows.Next() {
		var p identity.Person
		err := rows.Scan(
			&p.NRIC,
			&p.Name,
			&p.Age,
			&p.MaritalStatus,
			&p.Role,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating person rows: %w", err)
	}

	return people, nil
}
