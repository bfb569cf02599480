// Package mocks provides testify mocks for the repository interfaces
// consumed by the domain services.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/limfang/btoflow/internal/domain/application"
	"github.com/limfang/btoflow/internal/domain/enquiry"
	"github.com/limfang/btoflow/internal/domain/identity"
	"github.com/limfang/btoflow/internal/domain/project"
	"github.com/limfang/btoflow/internal/domain/registration"
	"github.com/limfang/btoflow/internal/domain/report"
)

// PersonRepository is a mock for identity.Repository.
type PersonRepository struct {
	mock.Mock
}

func (m *PersonRepository) Create(ctx context.Context, p *identity.Person) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PersonRepository) Get(ctx context.Context, nric string) (*identity.Person, error) {
	args := m.Called(ctx, nric)
	if p, ok := args.Get(0).(*identity.Person); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PersonRepository) FindByName(ctx context.Context, name string) (*identity.Person, error) {
	args := m.Called(ctx, name)
	if p, ok := args.Get(0).(*identity.Person); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PersonRepository) List(ctx context.Context, role identity.Role) ([]identity.Person, error) {
	args := m.Called(ctx, role)
	if list, ok := args.Get(0).([]identity.Person); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) GetByName(ctx context.Context, name string) (*project.Project, error) {
	args := m.Called(ctx, name)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Summary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListByManager(ctx context.Context, managerNRIC string) ([]project.Project, error) {
	args := m.Called(ctx, managerNRIC)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ToggleVisibility(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ProjectRepository) LiveReferenceCount(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// ApplicationRepository is a mock for application.Repository.
type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *ApplicationRepository) Get(ctx context.Context, id string) (*application.Application, error) {
	args := m.Called(ctx, id)
	if app, ok := args.Get(0).(*application.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) GetActiveByApplicant(ctx context.Context, nric string) (*application.Application, error) {
	args := m.Called(ctx, nric)
	if app, ok := args.Get(0).(*application.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) GetLatestByApplicant(ctx context.Context, nric string) (*application.Application, error) {
	args := m.Called(ctx, nric)
	if app, ok := args.Get(0).(*application.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) UpdateStatus(ctx context.Context, id string, from, to application.Status) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *ApplicationRepository) ApproveReserving(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ApplicationRepository) ForceStatus(ctx context.Context, id string, to application.Status) error {
	args := m.Called(ctx, id, to)
	return args.Error(0)
}

func (m *ApplicationRepository) ListByProject(ctx context.Context, projectID string) ([]application.Application, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]application.Application); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) List(ctx context.Context) ([]application.Application, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]application.Application); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) HasActiveApplication(ctx context.Context, nric, projectID string) (bool, error) {
	args := m.Called(ctx, nric, projectID)
	return args.Bool(0), args.Error(1)
}

// RegistrationRepository is a mock for registration.Repository.
type RegistrationRepository struct {
	mock.Mock
}

func (m *RegistrationRepository) Create(ctx context.Context, reg *registration.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *RegistrationRepository) Get(ctx context.Context, id string) (*registration.Registration, error) {
	args := m.Called(ctx, id)
	if reg, ok := args.Get(0).(*registration.Registration); ok {
		return reg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RegistrationRepository) ListByOfficer(ctx context.Context, officerNRIC string) ([]registration.Registration, error) {
	args := m.Called(ctx, officerNRIC)
	if list, ok := args.Get(0).([]registration.Registration); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RegistrationRepository) ListByProject(ctx context.Context, projectID string) ([]registration.Registration, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]registration.Registration); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RegistrationRepository) UpdateStatus(ctx context.Context, id string, from, to registration.Status) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *RegistrationRepository) ApproveConsumingSlot(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RegistrationRepository) HasApprovedRegistration(ctx context.Context, officerNRIC, projectID string) (bool, error) {
	args := m.Called(ctx, officerNRIC, projectID)
	return args.Bool(0), args.Error(1)
}

// EnquiryRepository is a mock for enquiry.Repository.
type EnquiryRepository struct {
	mock.Mock
}

func (m *EnquiryRepository) Create(ctx context.Context, e *enquiry.Enquiry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EnquiryRepository) Get(ctx context.Context, id string) (*enquiry.Enquiry, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*enquiry.Enquiry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EnquiryRepository) Update(ctx context.Context, e *enquiry.Enquiry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EnquiryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EnquiryRepository) ListByApplicant(ctx context.Context, nric string) ([]enquiry.Enquiry, error) {
	args := m.Called(ctx, nric)
	if list, ok := args.Get(0).([]enquiry.Enquiry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EnquiryRepository) ListByProject(ctx context.Context, projectID string) ([]enquiry.Enquiry, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]enquiry.Enquiry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ReportRepository is a mock for report.Repository.
type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) ListBooked(ctx context.Context, filter report.Filter) ([]report.BookingRow, error) {
	args := m.Called(ctx, filter)
	if rows, ok := args.Get(0).([]report.BookingRow); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}
