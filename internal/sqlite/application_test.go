package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/limfang/btoflow/internal/domain/application"
	"github.com/limfang/btoflow/internal/repository"
)

func testApplication(id, nric, projectID string, status application.Status) *application.Application {
	now := time.Now()
	return &application.Application{
		ID:            id,
		ApplicantNRIC: nric,
		ProjectID:     projectID,
		FlatType:      "2-Room",
		Status:        status,
		CreatedAt:     now,
		ModifiedAt:    now,
	}
}

func TestApplicationRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepository(db)

	seedPerson(t, db, "S2000002B", "applicant")
	require.NoError(t, repo.Create(ctx, testApplication("a1", "S2000002B", "p1", application.StatusPending)))

	got, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, application.StatusPending, got.Status)

	active, err := repo.GetActiveByApplicant(ctx, "S2000002B")
	require.NoError(t, err)
	require.Equal(t, "a1", active.ID)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApplicationRepository_SecondActiveRejected(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepository(db)

	seedPerson(t, db, "S2000002B", "applicant")
	require.NoError(t, repo.Create(ctx, testApplication("a1", "S2000002B", "p1", application.StatusPending)))

	err := repo.Create(ctx, testApplication("a2", "S2000002B", "p2", application.StatusPending))
	require.ErrorIs(t, err, repository.ErrDuplicate)

	// A terminal row frees the slot
	require.NoError(t, repo.ForceStatus(ctx, "a1", application.StatusUnsuccessful))
	require.NoError(t, repo.Create(ctx, testApplication("a2", "S2000002B", "p2", application.StatusPending)))
}

func TestApplicationRepository_UpdateStatusGuard(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepository(db)

	seedPerson(t, db, "S2000002B", "applicant")
	require.NoError(t, repo.Create(ctx, testApplication("a1", "S2000002B", "p1", application.StatusPending)))

	require.NoError(t, repo.UpdateStatus(ctx, "a1", application.StatusPending, application.StatusSuccessful))

	// The row left PENDING, so a second decision loses
	err := repo.UpdateStatus(ctx, "a1", application.StatusPending, application.StatusUnsuccessful)
	require.ErrorIs(t, err, repository.ErrConflict)

	err = repo.UpdateStatus(ctx, "missing", application.StatusPending, application.StatusSuccessful)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApplicationRepository_GetLatestByApplicant(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepository(db)

	seedPerson(t, db, "S2000002B", "applicant")

	old := testApplication("a1", "S2000002B", "p1", application.StatusUnsuccessful)
	old.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, testApplication("a2", "S2000002B", "p2", application.StatusPending)))

	latest, err := repo.GetLatestByApplicant(ctx, "S2000002B")
	require.NoError(t, err)
	require.Equal(t, "a2", latest.ID)

	_, err = repo.GetLatestByApplicant(ctx, "S9999999Z")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApplicationRepository_ApproveReserving(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepository(db)
	projects := NewProjectRepository(db)

	seedPerson(t, db, "S1000001A", "manager")
	seedPerson(t, db, "S2000002B", "applicant")
	require.NoError(t, projects.Create(ctx, testProject("p1", "Acacia Breeze", "S1000001A")))
	require.NoError(t, repo.Create(ctx, testApplication("a1", "S2000002B", "p1", application.StatusPending)))

	require.NoError(t, repo.ApproveReserving(ctx, "a1"))

	got, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, application.StatusSuccessful, got.Status)

	// One 2-Room unit reserved, the other slot untouched
	proj, err := projects.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 1, proj.Slots[0].Units)
	require.Equal(t, 3, proj.Slots[1].Units)

	// A second decision loses
	err = repo.ApproveReserving(ctx, "a1")
	require.ErrorIs(t, err, repository.ErrConflict)

	err = repo.ApproveReserving(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApplicationRepository_ApproveReservingExhausted(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepository(db)
	projects := NewProjectRepository(db)

	seedPerson(t, db, "S1000001A", "manager")
	seedPerson(t, db, "S2000002B", "applicant")
	proj := testProject("p1", "Acacia Breeze", "S1000001A")
	proj.Slots[0].Units = 0
	require.NoError(t, projects.Create(ctx, proj))
	require.NoError(t, repo.Create(ctx, testApplication("a1", "S2000002B", "p1", application.StatusPending)))

	err := repo.ApproveReserving(ctx, "a1")
	require.ErrorIs(t, err, repository.ErrExhausted)

	got, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, application.StatusUnsuccessful, got.Status)

	// SUCCESSFUL was never committed, so a booking racing the approval
	// has no state to transition and cannot emit a receipt.
	err = repo.UpdateStatus(ctx, "a1", application.StatusSuccessful, application.StatusBooked)
	require.ErrorIs(t, err, repository.ErrConflict)

	proj2, err := projects.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 0, proj2.Slots[0].Units)
}

func TestApplicationRepository_ApproveReservingMissingProject(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepository(db)

	seedPerson(t, db, "S2000002B", "applicant")
	require.NoError(t, repo.Create(ctx, testApplication("a1", "S2000002B", "gone", application.StatusPending)))

	err := repo.ApproveReserving(ctx, "a1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	// The whole transaction rolled back
	got, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, application.StatusPending, got.Status)
}

func TestApplicationRepository_HasActiveApplication(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepository(db)

	seedPerson(t, db, "S2000002B", "applicant")
	require.NoError(t, repo.Create(ctx, testApplication("a1", "S2000002B", "p1", application.StatusBooked)))

	has, err := repo.HasActiveApplication(ctx, "S2000002B", "p1")
	require.NoError(t, err)
	require.True(t, has)

	has, err = repo.HasActiveApplication(ctx, "S2000002B", "p2")
	require.NoError(t, err)
	require.False(t, has)
}
