package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func seedPerson(t *testing.T, db *DB, nric, role string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO people (nric, name, age, marital_status, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		nric, "Person "+nric, 36, "Married", role, time.Now())
	require.NoError(t, err)
}

func seedProject(t *testing.T, db *DB, id, name, managerNRIC string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO projects (id, name, neighborhood, manager_nric,
		    type1, units1, price1, type2, units2, price2,
		    open_date, close_date, officer_slots, visible, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, "Yishun", managerNRIC,
		"2-Room", 2, "350000", "3-Room", 3, "450000",
		time.Now(), time.Now().AddDate(0, 0, 14), 10, 1, time.Now())
	require.NoError(t, err)
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"people",
		"projects",
		"applications",
		"registrations",
		"enquiries",
		"api_keys",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestUnitCountsNeverNegative verifies the CHECK constraints on unit
// and officer-slot counters
func TestUnitCountsNeverNegative(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	seedPerson(t, db, "S1000001A", "manager")
	seedProject(t, db, "p1", "Acacia Breeze", "S1000001A")

	_, err := db.ExecContext(ctx, `UPDATE projects SET units1 = units1 - 3 WHERE id = ?`, "p1")
	require.Error(t, err, "should fail driving units below zero")

	_, err = db.ExecContext(ctx, `UPDATE projects SET officer_slots = -1 WHERE id = ?`, "p1")
	require.Error(t, err, "should fail with negative officer slots")
}

// TestOneActiveApplicationIndex verifies the partial unique index over
// active applications
func TestOneActiveApplicationIndex(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	seedPerson(t, db, "S2000002B", "applicant")
	now := time.Now()

	_, err := db.ExecContext(ctx,
		`INSERT INTO applications (id, applicant_nric, project_id, flat_type, status, created_at, modified_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"a1", "S2000002B", "p1", "2-Room", "PENDING", now, now)
	require.NoError(t, err)

	// Second live application for the same applicant must fail
	_, err = db.ExecContext(ctx,
		`INSERT INTO applications (id, applicant_nric, project_id, flat_type, status, created_at, modified_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"a2", "S2000002B", "p2", "3-Room", "PENDING", now, now)
	require.Error(t, err, "should reject a second active application")

	// After the first turns terminal, a fresh one is allowed
	_, err = db.ExecContext(ctx, `UPDATE applications SET status = 'UNSUCCESSFUL' WHERE id = ?`, "a1")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO applications (id, applicant_nric, project_id, flat_type, status, created_at, modified_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"a3", "S2000002B", "p2", "3-Room", "PENDING", now, now)
	require.NoError(t, err)
}

// TestRegistrationUniquePair verifies one registration per officer and
// project across all statuses
func TestRegistrationUniquePair(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	seedPerson(t, db, "S3000003C", "officer")
	now := time.Now()

	_, err := db.ExecContext(ctx,
		`INSERT INTO registrations (id, officer_nric, project_id, status, created_at, modified_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"r1", "S3000003C", "p1", "REJECTED", now, now)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO registrations (id, officer_nric, project_id, status, created_at, modified_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"r2", "S3000003C", "p1", "PENDING", now, now)
	require.Error(t, err, "should reject a second registration for the same pair")
}
