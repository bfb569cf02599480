// Package testserver wires the full service stack over an in-memory
// database for integration tests.
package testserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/limfang/btoflow/internal/domain/application"
	"github.com/limfang/btoflow/internal/domain/enquiry"
	"github.com/limfang/btoflow/internal/domain/identity"
	"github.com/limfang/btoflow/internal/domain/project"
	"github.com/limfang/btoflow/internal/domain/registration"
	"github.com/limfang/btoflow/internal/domain/report"
	"github.com/limfang/btoflow/internal/loader"
	"github.com/limfang/btoflow/internal/mcp"
	"github.com/limfang/btoflow/internal/sqlite"
)

type TestServer struct {
	DB            *sqlite.DB
	Identity      *identity.Service
	Projects      *project.Service
	Applications  *application.Service
	Registrations *registration.Service
	Enquiries     *enquiry.Service
	Reports       *report.Service
	Loader        *loader.Loader

	// Set by NewHTTP only.
	Server *httptest.Server
	Token  string
}

func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	logger := slog.New(slog.DiscardHandler)

	personRepo := sqlite.NewPersonRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	applicationRepo := sqlite.NewApplicationRepository(db)
	registrationRepo := sqlite.NewRegistrationRepository(db)
	enquiryRepo := sqlite.NewEnquiryRepository(db)
	reportRepo := sqlite.NewReportRepository(db)

	identitySvc := identity.NewService(personRepo, logger)
	projectSvc := project.NewService(projectRepo, logger)
	applicationSvc := application.NewService(applicationRepo, projectRepo, registrationRepo, personRepo, logger)
	registrationSvc := registration.NewService(registrationRepo, projectRepo, applicationRepo, logger)
	enquirySvc := enquiry.NewService(enquiryRepo, logger)
	reportSvc := report.NewService(reportRepo, logger)
	loaderSvc := loader.New(identitySvc, personRepo, projectSvc, logger)

	ts := &TestServer{
		DB:            db,
		Identity:      identitySvc,
		Projects:      projectSvc,
		Applications:  applicationSvc,
		Registrations: registrationSvc,
		Enquiries:     enquirySvc,
		Reports:       reportSvc,
		Loader:        loaderSvc,
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return ts
}

// NewHTTP additionally serves the MCP tool surface over a streamable
// HTTP endpoint with bearer-token auth, the way the production server
// runs. The token maps to the given NRIC, which must be seeded before
// tools are called.
func NewHTTP(t *testing.T, token, nric string) *TestServer {
	t.Helper()

	ts := New(t)
	personRepo := sqlite.NewPersonRepository(ts.DB)
	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Identity:      ts.Identity,
			Projects:      ts.Projects,
			Applications:  ts.Applications,
			Registrations: ts.Registrations,
			Enquiries:     ts.Enquiries,
			Reports:       ts.Reports,
			Importer:      ts.Loader,
		},
		Resolver:      &apiKeyResolver{db: ts.DB, people: personRepo},
		People:        personRepo,
		AuthEnabled:   true,
		TransportMode: "http",
		Logger:        slog.New(slog.DiscardHandler),
	})

	handler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{},
	)
	ts.Server = httptest.NewServer(handler)
	ts.Token = token
	require.NoError(t, ts.AddAPIKey(token, nric))

	t.Cleanup(ts.Server.Close)
	return ts
}

// AddAPIKey maps a bearer token to a person.
func (ts *TestServer) AddAPIKey(token, nric string) error {
	hash := hashToken(token)
	_, err := ts.DB.Exec(
		`INSERT INTO api_keys (key_hash, nric, created_at) VALUES (?, ?, ?)`,
		hash, nric, time.Now(),
	)
	return err
}

type apiKeyResolver struct {
	db     *sqlite.DB
	people *sqlite.PersonRepository
}

func (r *apiKeyResolver) ResolveIdentity(ctx context.Context, token string) (*identity.Person, error) {
	hash := hashToken(token)
	var nric string
	err := r.db.QueryRowContext(ctx, `SELECT nric FROM api_keys WHERE key_hash = ?`, hash).Scan(&nric)
	if err != nil || nric == "" {
		return nil, fmt.Errorf("unauthorized: invalid token")
	}
	person, err := r.people.Get(ctx, nric)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: unknown person")
	}
	return person, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// SeedPerson registers a person and returns it.
func (ts *TestServer) SeedPerson(t *testing.T, nric, name string, age int, marital identity.MaritalStatus, role identity.Role) identity.Person {
	t.Helper()

	p, err := ts.Identity.Register(context.Background(), identity.RegisterRequest{
		NRIC:          nric,
		Name:          name,
		Age:           age,
		MaritalStatus: marital,
		Role:          role,
	})
	require.NoError(t, err)
	return *p
}

// SeedProject creates a project owned by the given manager.
func (ts *TestServer) SeedProject(t *testing.T, manager identity.Person, spec project.Spec) *project.Project {
	t.Helper()

	proj, err := ts.Projects.Create(context.Background(), manager, spec)
	require.NoError(t, err)
	return proj
}

// Window returns an application window n days wide starting today.
func Window(days int) (time.Time, time.Time) {
	open := time.Now().Truncate(24 * time.Hour)
	return open, open.AddDate(0, 0, days)
}
