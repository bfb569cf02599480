package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"

	"github.com/limfang/btoflow/internal/domain/application"
	"github.com/limfang/btoflow/internal/domain/enquiry"
	"github.com/limfang/btoflow/internal/domain/identity"
	"github.com/limfang/btoflow/internal/domain/project"
	"github.com/limfang/btoflow/internal/domain/registration"
	"github.com/limfang/btoflow/internal/domain/report"
	"github.com/limfang/btoflow/internal/loader"
)

func actingPerson(ctx context.Context) (identity.Person, error) {
	p, ok := personFromContext(ctx)
	if !ok {
		return identity.Person{}, &APIError{
			Code:         "UNAUTHENTICATED",
			Message:      "no acting person resolved",
			RecoveryHint: "Provide a bearer token, or configure a local user",
		}
	}
	return p, nil
}

type emptyParams struct{}

type nricParams struct {
	NRIC string `json:"nric"`
}

type listPeopleParams struct {
	Role string `json:"role"`
}

type personListResult struct {
	People []identity.Person `json:"people"`
}

type flatSlotParam struct {
	Type  string `json:"type"`
	Units int    `json:"units"`
	Price string `json:"price"`
}

type projectSpecParams struct {
	Name         string          `json:"name"`
	Neighborhood string          `json:"neighborhood"`
	Slots        []flatSlotParam `json:"slots"`
	OpenDate     string          `json:"open_date"`
	CloseDate    string          `json:"close_date"`
	OfficerSlots int             `json:"officer_slots"`
}

func (p projectSpecParams) toSpec() (project.Spec, error) {
	if len(p.Slots) != 2 {
		return project.Spec{}, &APIError{Code: "INVALID_INPUT", Message: "exactly two flat-type slots are required"}
	}

	var slots [2]project.FlatSlot
	for i, s := range p.Slots {
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return project.Spec{}, &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("invalid price %q", s.Price)}
		}
		slots[i] = project.FlatSlot{Type: project.FlatType(s.Type), Units: s.Units, Price: price}
	}

	openDate, err := time.Parse(time.DateOnly, p.OpenDate)
	if err != nil {
		return project.Spec{}, &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("invalid open_date %q, expected YYYY-MM-DD", p.OpenDate)}
	}
	closeDate, err := time.Parse(time.DateOnly, p.CloseDate)
	if err != nil {
		return project.Spec{}, &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("invalid close_date %q, expected YYYY-MM-DD", p.CloseDate)}
	}

	return project.Spec{
		Name:         p.Name,
		Neighborhood: p.Neighborhood,
		Slots:        slots,
		OpenDate:     openDate,
		CloseDate:    closeDate,
		OfficerSlots: p.OfficerSlots,
	}, nil
}

type projectIDParams struct {
	ProjectID string `json:"project_id"`
}

type editProjectParams struct {
	ProjectID    string          `json:"project_id"`
	Name         string          `json:"name"`
	Neighborhood string          `json:"neighborhood"`
	Slots        []flatSlotParam `json:"slots"`
	OpenDate     string          `json:"open_date"`
	CloseDate    string          `json:"close_date"`
	OfficerSlots int             `json:"officer_slots"`
}

func (p editProjectParams) toSpec() (project.Spec, error) {
	return projectSpecParams{
		Name:         p.Name,
		Neighborhood: p.Neighborhood,
		Slots:        p.Slots,
		OpenDate:     p.OpenDate,
		CloseDate:    p.CloseDate,
		OfficerSlots: p.OfficerSlots,
	}.toSpec()
}

type browseProjectsParams struct {
	Neighborhood string `json:"neighborhood,omitempty"`
	FlatType     string `json:"flat_type,omitempty"`
}

type applyParams struct {
	ProjectID string `json:"project_id"`
	FlatType  string `json:"flat_type"`
}

type applicationIDParams struct {
	ApplicationID string `json:"application_id"`
}

type registrationIDParams struct {
	RegistrationID string `json:"registration_id"`
}

type toggleVisibilityResult struct {
	ProjectID string `json:"project_id"`
	Visible   bool   `json:"visible"`
}

type deletedResult struct {
	Deleted bool `json:"deleted"`
}

type projectListResult struct {
	Projects []project.Summary `json:"projects"`
}

type myProjectsResult struct {
	Projects []project.Project `json:"projects"`
}

type applicationListResult struct {
	Applications []application.Application `json:"applications"`
}

type registrationListResult struct {
	Registrations []registration.Registration `json:"registrations"`
}

type enquiryListResult struct {
	Enquiries []enquiry.Enquiry `json:"enquiries"`
}

type reportParams struct {
	MaritalStatus string `json:"marital_status,omitempty"`
}

type reportResult struct {
	Rows []report.BookingRow `json:"rows"`
}

type enquiryTextParams struct {
	ProjectID string `json:"project_id"`
	Text      string `json:"text"`
}

type enquiryEditParams struct {
	EnquiryID string `json:"enquiry_id"`
	Text      string `json:"text"`
}

type enquiryIDParams struct {
	EnquiryID string `json:"enquiry_id"`
}

type importPeopleParams struct {
	// ContentBase64 is a base64-encoded .xlsx file.
	ContentBase64 string `json:"content_base64"`
	Role          string `json:"role"`
}

type importProjectsParams struct {
	ContentBase64 string `json:"content_base64"`
}

// registerTools registers all tools on the server. Every handler
// resolves the acting person from context, so role checks live in the
// domain services, not here.
func registerTools(server *sdkmcp.Server, svc Services) {
	// Identity
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "whoami",
		Description: "Show the person this session acts as, including role and eligibility-relevant fields",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyParams) (*sdkmcp.CallToolResult, *identity.Person, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		return nil, &p, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "lookup_person",
		Description: "Look up a person by NRIC, including role and eligibility-relevant fields",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in nricParams) (*sdkmcp.CallToolResult, *identity.Person, error) {
		p, err := svc.Identity.Get(ctx, in.NRIC)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, p, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_people",
		Description: "List all people holding one role (applicant, officer, or manager)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listPeopleParams) (*sdkmcp.CallToolResult, *personListResult, error) {
		role := identity.Role(in.Role)
		if !identity.ValidRole(role) {
			return nil, nil, &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("unknown role %q", in.Role)}
		}
		people, err := svc.Identity.List(ctx, role)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, &personListResult{People: people}, nil
	})

	// Projects
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a housing project with two flat-type inventories (manager only). Dates are YYYY-MM-DD; prices are decimal strings",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectSpecParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		spec, err := in.toSpec()
		if err != nil {
			return nil, nil, err
		}
		proj, err := svc.Projects.Create(ctx, p, spec)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "edit_project",
		Description: "Replace a project's fields wholesale (owning manager only). The project id stays stable",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in editProjectParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		spec, err := in.toSpec()
		if err != nil {
			return nil, nil, err
		}
		proj, err := svc.Projects.Edit(ctx, p, in.ProjectID, spec)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project (owning manager only). Refused while live applications or registrations reference it",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectIDParams) (*sdkmcp.CallToolResult, *deletedResult, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		if err := svc.Projects.Delete(ctx, p, in.ProjectID); err != nil {
			return nil, nil, toolError(err)
		}
		return nil, &deletedResult{Deleted: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_project_visibility",
		Description: "Flip a project's visibility flag (owning manager only). Hiding never touches in-flight applications",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectIDParams) (*sdkmcp.CallToolResult, *toggleVisibilityResult, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		visible, err := svc.Projects.ToggleVisibility(ctx, p, in.ProjectID)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, &toggleVisibilityResult{ProjectID: in.ProjectID, Visible: visible}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get full details for one project by id",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectIDParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := svc.Projects.Get(ctx, in.ProjectID)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects regardless of visibility (staff view)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyParams) (*sdkmcp.CallToolResult, *projectListResult, error) {
		projects, err := svc.Projects.List(ctx)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, &projectListResult{Projects: projects}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_my_projects",
		Description: "List the projects the acting manager owns",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyParams) (*sdkmcp.CallToolResult, *myProjectsResult, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		projects, err := svc.Projects.ListByManager(ctx, p.NRIC)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, &myProjectsResult{Projects: projects}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "browse_projects",
		Description: "List the projects visible to the acting applicant, filtered by their demographic eligibility and optional neighborhood or flat type",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in browseProjectsParams) (*sdkmcp.CallToolResult, *projectListResult, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		projects, err := svc.Projects.ListVisibleTo(ctx, p, project.ListFilter{
			Neighborhood: in.Neighborhood,
			FlatType:     project.FlatType(in.FlatType),
		})
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, &projectListResult{Projects: projects}, nil
	})

	// Applications
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "apply",
		Description: "Submit a flat application for the acting applicant. One active application per person",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in applyParams) (*sdkmcp.CallToolResult, *application.Application, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		app, err := svc.Applications.Submit(ctx, p, in.ProjectID, project.FlatType(in.FlatType))
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, app, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "view_application",
		Description: "Show the acting applicant's current application, if any",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyParams) (*sdkmcp.CallToolResult, *application.Application, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		app, err := svc.Applications.CurrentFor(ctx, p.NRIC)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, app, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_applications",
		Description: "List all applications for a project (staff view)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectIDParams) (*sdkmcp.CallToolResult, *applicationListResult, error) {
		apps, err := svc.Applications.ListByProject(ctx, in.ProjectID)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, &applicationListResult{Applications: apps}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "approve_application",
		Description: "Approve a pending application (manager only). Reserves one unit; if none remain, the application is marked unsuccessful",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in applicationIDParams) (*sdkmcp.CallToolResult, *application.Application, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		app, err := svc.Applications.Approve(ctx, p, in.ApplicationID)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, app, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reject_application",
		Description: "Reject a pending application (manager only)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in applicationIDParams) (*sdkmcp.CallToolResult, *application.Application, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		app, err := svc.Applications.Reject(ctx, p, in.ApplicationID)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, app, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "book_flat",
		Description: "Book a flat for a successful application (officer only). Emits a booking receipt; the unit was already reserved at approval",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in applicationIDParams) (*sdkmcp.CallToolResult, *application.Receipt, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		receipt, err := svc.Applications.Book(ctx, p, in.ApplicationID)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, receipt, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "withdraw_application",
		Description: "Withdraw the acting applicant's latest application. Withdrawal always succeeds and never restocks units",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyParams) (*sdkmcp.CallToolResult, *application.Application, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		app, err := svc.Applications.Withdraw(ctx, p)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, app, nil
	})

	// Officer registrations
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "register_officer",
		Description: "Register the acting officer to handle a project. Conflicts with own applications and overlapping approved registrations are refused",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectIDParams) (*sdkmcp.CallToolResult, *registration.Registration, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		reg, err := svc.Registrations.Register(ctx, p, in.ProjectID)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, reg, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "approve_registration",
		Description: "Approve a pending officer registration (manager only). Consumes one officer slot; if none remain, the registration is rejected",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in registrationIDParams) (*sdkmcp.CallToolResult, *registration.Registration, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		reg, err := svc.Registrations.Approve(ctx, p, in.RegistrationID)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, reg, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reject_registration",
		Description: "Reject a pending officer registration (manager only)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in registrationIDParams) (*sdkmcp.CallToolResult, *registration.Registration, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		reg, err := svc.Registrations.Reject(ctx, p, in.RegistrationID)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, reg, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_my_registrations",
		Description: "List the acting officer's registrations",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyParams) (*sdkmcp.CallToolResult, *registrationListResult, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		regs, err := svc.Registrations.ListByOfficer(ctx, p.NRIC)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, &registrationListResult{Registrations: regs}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_registrations",
		Description: "List all registrations for a project (staff view)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectIDParams) (*sdkmcp.CallToolResult, *registrationListResult, error) {
		regs, err := svc.Registrations.ListByProject(ctx, in.ProjectID)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, &registrationListResult{Registrations: regs}, nil
	})

	// Reporting
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "booked_flats_report",
		Description: "Report all booked flats, optionally filtered by marital status (Single or Married)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in reportParams) (*sdkmcp.CallToolResult, *reportResult, error) {
		var filter report.Filter
		if in.MaritalStatus != "" {
			status := identity.MaritalStatus(in.MaritalStatus)
			if !identity.ValidMaritalStatus(status) {
				return nil, nil, &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("unknown marital status %q", in.MaritalStatus)}
			}
			filter.MaritalStatus = &status
		}
		rows, err := svc.Reports.BookedFlats(ctx, filter)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, &reportResult{Rows: rows}, nil
	})

	// Enquiries
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "submit_enquiry",
		Description: "Submit a question about a project as the acting applicant",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in enquiryTextParams) (*sdkmcp.CallToolResult, *enquiry.Enquiry, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		e, err := svc.Enquiries.Submit(ctx, p, in.ProjectID, in.Text)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, e, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "edit_enquiry",
		Description: "Edit an unanswered enquiry (author only)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in enquiryEditParams) (*sdkmcp.CallToolResult, *enquiry.Enquiry, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		e, err := svc.Enquiries.Edit(ctx, p, in.EnquiryID, in.Text)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, e, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_enquiry",
		Description: "Delete an enquiry (author only)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in enquiryIDParams) (*sdkmcp.CallToolResult, *deletedResult, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		if err := svc.Enquiries.Delete(ctx, p, in.EnquiryID); err != nil {
			return nil, nil, toolError(err)
		}
		return nil, &deletedResult{Deleted: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reply_enquiry",
		Description: "Record a single staff answer on an enquiry (officer or manager only)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in enquiryEditParams) (*sdkmcp.CallToolResult, *enquiry.Enquiry, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		e, err := svc.Enquiries.Reply(ctx, p, in.EnquiryID, in.Text)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, e, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_my_enquiries",
		Description: "List the acting applicant's enquiries",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyParams) (*sdkmcp.CallToolResult, *enquiryListResult, error) {
		p, err := actingPerson(ctx)
		if err != nil {
			return nil, nil, err
		}
		list, err := svc.Enquiries.ListByApplicant(ctx, p.NRIC)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, &enquiryListResult{Enquiries: list}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_project_enquiries",
		Description: "List all enquiries for a project (staff view)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectIDParams) (*sdkmcp.CallToolResult, *enquiryListResult, error) {
		list, err := svc.Enquiries.ListByProject(ctx, in.ProjectID)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, &enquiryListResult{Enquiries: list}, nil
	})

	// Bulk import
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "import_people",
		Description: "Import people from a base64-encoded .xlsx file, all with one role (applicant, officer, or manager). Columns: Name, NRIC, Age, Marital Status",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in importPeopleParams) (*sdkmcp.CallToolResult, *loader.Result, error) {
		role := identity.Role(in.Role)
		if !identity.ValidRole(role) {
			return nil, nil, &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("unknown role %q", in.Role)}
		}
		data, err := base64.StdEncoding.DecodeString(in.ContentBase64)
		if err != nil {
			return nil, nil, &APIError{Code: "INVALID_INPUT", Message: "content_base64 is not valid base64"}
		}
		result, err := svc.Importer.LoadPeople(ctx, bytes.NewReader(data), role)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, result, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "import_projects",
		Description: "Import projects from a base64-encoded .xlsx file. Columns: Name, Neighborhood, Type 1, Units 1, Price 1, Type 2, Units 2, Price 2, Open Date, Close Date, Manager, Officer Slots",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in importProjectsParams) (*sdkmcp.CallToolResult, *loader.Result, error) {
		data, err := base64.StdEncoding.DecodeString(in.ContentBase64)
		if err != nil {
			return nil, nil, &APIError{Code: "INVALID_INPUT", Message: "content_base64 is not valid base64"}
		}
		result, err := svc.Importer.LoadProjects(ctx, bytes.NewReader(data))
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, result, nil
	})
}
