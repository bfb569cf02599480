package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/limfang/btoflow/internal/domain/identity"
	"github.com/limfang/btoflow/internal/domain/report"
)

func TestReportRepository_ListBooked(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewReportRepository(db)

	seedPerson(t, db, "S1000001A", "manager")
	seedProject(t, db, "p1", "Acacia Breeze", "S1000001A")

	now := time.Now()
	_, err := db.ExecContext(ctx,
		`INSERT INTO people (nric, name, age, marital_status, role, created_at) VALUES
		 ('S2000002B', 'Alice', 36, 'Married', 'applicant', ?),
		 ('S5000005E', 'Bob', 40, 'Single', 'applicant', ?)`, now, now)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO applications (id, applicant_nric, project_id, flat_type, status, created_at, modified_at) VALUES
		 ('a1', 'S2000002B', 'p1', '3-Room', 'BOOKED', ?, ?),
		 ('a2', 'S5000005E', 'p1', '2-Room', 'BOOKED', ?, ?)`, now, now, now, now)
	require.NoError(t, err)

	rows, err := repo.ListBooked(ctx, report.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Acacia Breeze", rows[0].ProjectName)

	married := identity.Married
	rows, err = repo.ListBooked(ctx, report.Filter{MaritalStatus: &married})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "S2000002B", rows[0].NRIC)
	require.Equal(t, identity.Married, rows[0].MaritalStatus)
}
