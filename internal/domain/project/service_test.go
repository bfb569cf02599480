package project_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/limfang/btoflow/internal/domain/identity"
	"github.com/limfang/btoflow/internal/domain/project"
	"github.com/limfang/btoflow/internal/repository"
	"github.com/limfang/btoflow/internal/repository/mocks"
)

var testLogger = slog.New(slog.DiscardHandler)

func manager() identity.Person {
	return identity.Person{NRIC: "S1000001A", Name: "Mallory", Age: 45, MaritalStatus: identity.Married, Role: identity.RoleManager}
}

func otherManager() identity.Person {
	return identity.Person{NRIC: "S1000009K", Name: "Morgan", Age: 50, MaritalStatus: identity.Married, Role: identity.RoleManager}
}

func applicant(status identity.MaritalStatus, age int) identity.Person {
	return identity.Person{NRIC: "S2000002B", Name: "Alice", Age: age, MaritalStatus: status, Role: identity.RoleApplicant}
}

func day(n int) time.Time {
	return time.Date(2025, 2, n, 0, 0, 0, 0, time.UTC)
}

func validSpec() project.Spec {
	return project.Spec{
		Name:         "Acacia Breeze",
		Neighborhood: "Yishun",
		Slots: [2]project.FlatSlot{
			{Type: project.TwoRoom, Units: 2, Price: decimal.NewFromInt(350000)},
			{Type: project.ThreeRoom, Units: 3, Price: decimal.NewFromInt(450000)},
		},
		OpenDate:     day(1),
		CloseDate:    day(14),
		OfficerSlots: 10,
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("ListByManager", ctx, "S1000001A").Return([]project.Project{}, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, testLogger)
	proj, err := svc.Create(ctx, manager(), validSpec())
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)
	require.Equal(t, "S1000001A", proj.ManagerNRIC)
	require.True(t, proj.Visible)
}

func TestCreate_RequiresManager(t *testing.T) {
	svc := project.NewService(&mocks.ProjectRepository{}, testLogger)
	_, err := svc.Create(context.Background(), applicant(identity.Married, 36), validSpec())
	require.ErrorIs(t, err, identity.ErrNotManager)
}

func TestCreate_Validation(t *testing.T) {
	svc := project.NewService(&mocks.ProjectRepository{}, testLogger)
	ctx := context.Background()

	blank := validSpec()
	blank.Name = "  "
	_, err := svc.Create(ctx, manager(), blank)
	require.ErrorIs(t, err, project.ErrInvalidInput)

	badType := validSpec()
	badType.Slots[1].Type = "4-Room"
	_, err = svc.Create(ctx, manager(), badType)
	require.ErrorIs(t, err, project.ErrInvalidFlatType)

	sameType := validSpec()
	sameType.Slots[1].Type = project.TwoRoom
	_, err = svc.Create(ctx, manager(), sameType)
	require.ErrorIs(t, err, project.ErrInvalidInput)

	inverted := validSpec()
	inverted.OpenDate, inverted.CloseDate = inverted.CloseDate, inverted.OpenDate
	_, err = svc.Create(ctx, manager(), inverted)
	require.ErrorIs(t, err, project.ErrInvalidInput)

	negative := validSpec()
	negative.Slots[0].Price = decimal.NewFromInt(-1)
	_, err = svc.Create(ctx, manager(), negative)
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestCreate_ManagerWindowConflict(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("ListByManager", ctx, "S1000001A").Return([]project.Project{
		{ID: "p0", ManagerNRIC: "S1000001A", OpenDate: day(10), CloseDate: day(20)},
	}, nil)

	svc := project.NewService(repo, testLogger)
	_, err := svc.Create(ctx, manager(), validSpec())
	require.ErrorIs(t, err, project.ErrScheduleConflict)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_DuplicateName(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("ListByManager", ctx, "S1000001A").Return([]project.Project{}, nil)
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

	svc := project.NewService(repo, testLogger)
	_, err := svc.Create(ctx, manager(), validSpec())
	require.ErrorIs(t, err, project.ErrDuplicateName)
}

func TestEdit(t *testing.T) {
	ctx := context.Background()

	existing := &project.Project{
		ID:          "p1",
		Name:        "Acacia Breeze",
		ManagerNRIC: "S1000001A",
		OpenDate:    day(1),
		CloseDate:   day(14),
		CreatedAt:   day(1),
	}
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(existing, nil)
	repo.On("ListByManager", ctx, "S1000001A").Return([]project.Project{*existing}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	spec := validSpec()
	spec.Name = "Acacia Grove"

	svc := project.NewService(repo, testLogger)
	updated, err := svc.Edit(ctx, manager(), "p1", spec)
	require.NoError(t, err)
	require.Equal(t, "p1", updated.ID)
	require.Equal(t, "Acacia Grove", updated.Name)
	require.Equal(t, existing.CreatedAt, updated.CreatedAt)
}

func TestEdit_NotOwner(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&project.Project{ID: "p1", ManagerNRIC: "S1000001A"}, nil)

	svc := project.NewService(repo, testLogger)
	_, err := svc.Edit(ctx, otherManager(), "p1", validSpec())
	require.ErrorIs(t, err, project.ErrNotOwner)
}

func TestEdit_OwnWindowExcluded(t *testing.T) {
	ctx := context.Background()

	// Re-saving a project with the same window must not conflict with
	// itself; only the manager's other projects count.
	existing := &project.Project{ID: "p1", Name: "Acacia Breeze", ManagerNRIC: "S1000001A", OpenDate: day(1), CloseDate: day(14)}
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(existing, nil)
	repo.On("ListByManager", ctx, "S1000001A").Return([]project.Project{*existing}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, testLogger)
	_, err := svc.Edit(ctx, manager(), "p1", validSpec())
	require.NoError(t, err)
}

func TestDelete_RefusedWhileReferenced(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&project.Project{ID: "p1", ManagerNRIC: "S1000001A"}, nil)
	repo.On("LiveReferenceCount", ctx, "p1").Return(2, nil)

	svc := project.NewService(repo, testLogger)
	err := svc.Delete(ctx, manager(), "p1")
	require.ErrorIs(t, err, project.ErrProjectInUse)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&project.Project{ID: "p1", ManagerNRIC: "S1000001A"}, nil)
	repo.On("LiveReferenceCount", ctx, "p1").Return(0, nil)
	repo.On("Delete", ctx, "p1").Return(nil)

	svc := project.NewService(repo, testLogger)
	require.NoError(t, svc.Delete(ctx, manager(), "p1"))
}

func TestToggleVisibility_NotOwner(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&project.Project{ID: "p1", ManagerNRIC: "S1000001A"}, nil)

	svc := project.NewService(repo, testLogger)
	_, err := svc.ToggleVisibility(ctx, otherManager(), "p1")
	require.ErrorIs(t, err, project.ErrNotOwner)
}

func TestListVisibleTo(t *testing.T) {
	ctx := context.Background()

	summaries := []project.Summary{
		{
			ID: "p1", Name: "Acacia Breeze", Neighborhood: "Yishun", Visible: true,
			Slots: [2]project.FlatSlot{{Type: project.TwoRoom, Units: 2}, {Type: project.ThreeRoom, Units: 3}},
		},
		{
			ID: "p2", Name: "Bedok Rise", Neighborhood: "Bedok", Visible: true,
			Slots: [2]project.FlatSlot{{Type: project.TwoRoom, Units: 0}, {Type: project.ThreeRoom, Units: 5}},
		},
		{
			ID: "p3", Name: "Clementi Crest", Neighborhood: "Clementi", Visible: false,
			Slots: [2]project.FlatSlot{{Type: project.TwoRoom, Units: 4}, {Type: project.ThreeRoom, Units: 4}},
		},
	}
	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx).Return(summaries, nil)
	svc := project.NewService(repo, testLogger)

	// Married 21+ sees every visible project.
	got, err := svc.ListVisibleTo(ctx, applicant(identity.Married, 36), project.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Singles are gated on the first slot's unit count, so a project
	// with only 3-Room stock left is hidden from them.
	got, err = svc.ListVisibleTo(ctx, applicant(identity.Single, 36), project.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "p1", got[0].ID)

	// Under-age singles see nothing.
	got, err = svc.ListVisibleTo(ctx, applicant(identity.Single, 30), project.ListFilter{})
	require.NoError(t, err)
	require.Empty(t, got)

	// Neighborhood filter is case-insensitive.
	got, err = svc.ListVisibleTo(ctx, applicant(identity.Married, 36), project.ListFilter{Neighborhood: "bedok"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "p2", got[0].ID)

	// Flat-type filter requires remaining units of that type.
	got, err = svc.ListVisibleTo(ctx, applicant(identity.Married, 36), project.ListFilter{FlatType: project.TwoRoom})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "p1", got[0].ID)
}
