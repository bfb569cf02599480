package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. Prices are stored as decimal text,
// never floats. Applications and registrations reference projects by id
// without a foreign key: rows in terminal states may outlive the project
// they point at.
func (db *DB) RunMigrations() error {
	migration := `
-- People table
CREATE TABLE people (
    nric TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    age INTEGER NOT NULL CHECK(age >= 0),
    marital_status TEXT NOT NULL CHECK(marital_status IN ('Single', 'Married')),
    role TEXT NOT NULL CHECK(role IN ('applicant', 'officer', 'manager')),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX idx_people_name ON people(name);
CREATE INDEX idx_people_role ON people(role);

-- Projects table: exactly two flat-type inventories per project
CREATE TABLE projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    neighborhood TEXT NOT NULL,
    manager_nric TEXT NOT NULL,
    type1 TEXT NOT NULL CHECK(type1 IN ('2-Room', '3-Room')),
    units1 INTEGER NOT NULL CHECK(units1 >= 0),
    price1 TEXT NOT NULL,
    type2 TEXT NOT NULL CHECK(type2 IN ('2-Room', '3-Room')),
    units2 INTEGER NOT NULL CHECK(units2 >= 0),
    price2 TEXT NOT NULL,
    open_date TIMESTAMP NOT NULL,
    close_date TIMESTAMP NOT NULL,
    officer_slots INTEGER NOT NULL CHECK(officer_slots >= 0),
    visible INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    CHECK(type1 != type2),
    FOREIGN KEY (manager_nric) REFERENCES people(nric)
);
CREATE INDEX idx_projects_manager ON projects(manager_nric);

-- Applications table
CREATE TABLE applications (
    id TEXT PRIMARY KEY,
    applicant_nric TEXT NOT NULL,
    project_id TEXT NOT NULL,
    flat_type TEXT NOT NULL CHECK(flat_type IN ('2-Room', '3-Room')),
    status TEXT NOT NULL CHECK(status IN ('PENDING', 'SUCCESSFUL', 'UNSUCCESSFUL', 'BOOKED')),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (applicant_nric) REFERENCES people(nric)
);
CREATE UNIQUE INDEX idx_one_active_application
    ON applications(applicant_nric) WHERE status != 'UNSUCCESSFUL';
CREATE INDEX idx_applications_project ON applications(project_id);
CREATE INDEX idx_applications_applicant ON applications(applicant_nric);

-- Officer registrations table
CREATE TABLE registrations (
    id TEXT PRIMARY KEY,
    officer_nric TEXT NOT NULL,
    project_id TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('PENDING', 'APPROVED', 'REJECTED')),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(officer_nric, project_id),
    FOREIGN KEY (officer_nric) REFERENCES people(nric)
);
CREATE INDEX idx_registrations_project ON registrations(project_id);
CREATE INDEX idx_registrations_officer ON registrations(officer_nric);

-- Enquiries table
CREATE TABLE enquiries (
    id TEXT PRIMARY KEY,
    applicant_nric TEXT NOT NULL,
    project_id TEXT NOT NULL,
    text TEXT NOT NULL,
    reply TEXT NOT NULL DEFAULT '',
    replied_by TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    replied_at TIMESTAMP,
    FOREIGN KEY (applicant_nric) REFERENCES people(nric)
);
CREATE INDEX idx_enquiries_project ON enquiries(project_id);
CREATE INDEX idx_enquiries_applicant ON enquiries(applicant_nric);

-- API keys for HTTP transport authentication
CREATE TABLE api_keys (
    key_hash TEXT PRIMARY KEY,
    nric TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (nric) REFERENCES people(nric)
);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
