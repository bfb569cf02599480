package mcp

import (
	"context"
	"io"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/limfang/btoflow/internal/domain/application"
	"github.com/limfang/btoflow/internal/domain/enquiry"
	"github.com/limfang/btoflow/internal/domain/identity"
	"github.com/limfang/btoflow/internal/domain/project"
	"github.com/limfang/btoflow/internal/domain/registration"
	"github.com/limfang/btoflow/internal/domain/report"
	"github.com/limfang/btoflow/internal/loader"
)

// IdentityService defines identity operations needed by MCP.
type IdentityService interface {
	Get(ctx context.Context, nric string) (*identity.Person, error)
	List(ctx context.Context, role identity.Role) ([]identity.Person, error)
}

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, manager identity.Person, req project.Spec) (*project.Project, error)
	Edit(ctx context.Context, manager identity.Person, id string, req project.Spec) (*project.Project, error)
	Delete(ctx context.Context, manager identity.Person, id string) error
	ToggleVisibility(ctx context.Context, manager identity.Person, id string) (bool, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Summary, error)
	ListByManager(ctx context.Context, managerNRIC string) ([]project.Project, error)
	ListVisibleTo(ctx context.Context, applicant identity.Person, filter project.ListFilter) ([]project.Summary, error)
}

// ApplicationService defines application operations needed by MCP.
type ApplicationService interface {
	Submit(ctx context.Context, applicant identity.Person, projectID string, flatType project.FlatType) (*application.Application, error)
	Approve(ctx context.Context, manager identity.Person, appID string) (*application.Application, error)
	Reject(ctx context.Context, manager identity.Person, appID string) (*application.Application, error)
	Book(ctx context.Context, officer identity.Person, appID string) (*application.Receipt, error)
	Withdraw(ctx context.Context, applicant identity.Person) (*application.Application, error)
	CurrentFor(ctx context.Context, nric string) (*application.Application, error)
	ListByProject(ctx context.Context, projectID string) ([]application.Application, error)
}

// RegistrationService defines officer registration operations needed by MCP.
type RegistrationService interface {
	Register(ctx context.Context, officer identity.Person, projectID string) (*registration.Registration, error)
	Approve(ctx context.Context, manager identity.Person, regID string) (*registration.Registration, error)
	Reject(ctx context.Context, manager identity.Person, regID string) (*registration.Registration, error)
	ListByOfficer(ctx context.Context, officerNRIC string) ([]registration.Registration, error)
	ListByProject(ctx context.Context, projectID string) ([]registration.Registration, error)
}

// ReportService defines reporting operations needed by MCP.
type ReportService interface {
	BookedFlats(ctx context.Context, filter report.Filter) ([]report.BookingRow, error)
}

// ImportService defines bulk import operations needed by MCP.
type ImportService interface {
	LoadPeople(ctx context.Context, r io.Reader, role identity.Role) (*loader.Result, error)
	LoadProjects(ctx context.Context, r io.Reader) (*loader.Result, error)
}

// EnquiryService defines enquiry operations needed by MCP.
type EnquiryService interface {
	Submit(ctx context.Context, applicant identity.Person, projectID, text string) (*enquiry.Enquiry, error)
	Edit(ctx context.Context, applicant identity.Person, id, text string) (*enquiry.Enquiry, error)
	Delete(ctx context.Context, applicant identity.Person, id string) error
	Reply(ctx context.Context, staff identity.Person, id, text string) (*enquiry.Enquiry, error)
	ListByApplicant(ctx context.Context, nric string) ([]enquiry.Enquiry, error)
	ListByProject(ctx context.Context, projectID string) ([]enquiry.Enquiry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Identity      IdentityService
	Projects      ProjectService
	Applications  ApplicationService
	Registrations RegistrationService
	Enquiries     EnquiryService
	Reports       ReportService
	Importer      ImportService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      IdentityResolver
	People        PersonGetter
	LocalNRIC     string
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "btoflow",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	// Stdio mode: always disable auth (local dev only)
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		server.AddReceivingMiddleware(localIdentityMiddleware(cfg.People, cfg.LocalNRIC))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}

const serverInstructions = `btoflow manages build-to-order housing allocation: projects with
two flat-type inventories, flat applications, officer registrations, and
project enquiries.

Roles matter: managers create and decide, officers register to handle
projects and book flats, applicants apply and enquire. Your identity is
resolved from your bearer token (or the configured local user), so tools
act as you.

Typical applicant flow: browse_projects, apply, view_application.
Typical manager flow: create_project, list_applications,
approve_application. Typical officer flow: register_officer, book_flat.`
