// Package loader imports people and projects from spreadsheet files.
// One sheet row becomes one record; bad rows are reported per row and
// never abort the rest of the import.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/limfang/btoflow/internal/domain/identity"
	"github.com/limfang/btoflow/internal/domain/project"
)

// RowError reports one rejected sheet row. Row numbers are 1-based as
// shown in a spreadsheet editor.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Result summarizes one import run.
type Result struct {
	Total    int        `json:"total"`
	Imported int        `json:"imported"`
	Errors   []RowError `json:"errors,omitempty"`
}

// PersonCreator is the identity write surface the loader needs.
type PersonCreator interface {
	Register(ctx context.Context, req identity.RegisterRequest) (*identity.Person, error)
}

// ManagerResolver resolves the manager column, which may hold an NRIC
// or a display name.
type ManagerResolver interface {
	Get(ctx context.Context, nric string) (*identity.Person, error)
	FindByName(ctx context.Context, name string) (*identity.Person, error)
}

// ProjectCreator is the project write surface the loader needs.
type ProjectCreator interface {
	Create(ctx context.Context, manager identity.Person, spec project.Spec) (*project.Project, error)
}

// Loader imports bulk data through the domain services, so every
// imported row passes the same validation as an API call.
type Loader struct {
	people   PersonCreator
	resolver ManagerResolver
	projects ProjectCreator
	logger   *slog.Logger
}

// New creates a new Loader.
func New(people PersonCreator, resolver ManagerResolver, projects ProjectCreator, logger *slog.Logger) *Loader {
	return &Loader{people: people, resolver: resolver, projects: projects, logger: logger}
}

// Person sheet columns. The trailing password column from legacy
// exports is accepted and ignored.
const (
	personColName = iota
	personColNRIC
	personColAge
	personColMaritalStatus
	personColPassword
)

// Project sheet columns.
const (
	projColName = iota
	projColNeighborhood
	projColType1
	projColUnits1
	projColPrice1
	projColType2
	projColUnits2
	projColPrice2
	projColOpenDate
	projColCloseDate
	projColManager
	projColOfficerSlots
	projColOfficers // legacy officer name list, ignored
)

// LoadPeople imports one person per row, all with the given role. The
// first row is a header and is skipped.
func (l *Loader) LoadPeople(ctx context.Context, r io.Reader, role identity.Role) (*Result, error) {
	rows, err := sheetRows(r)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		result.Total++

		if err := l.loadPerson(ctx, row, role); err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 1, Reason: err.Error()})
			continue
		}
		result.Imported++
	}

	l.logger.Info("people import finished",
		"role", role,
		"total", result.Total,
		"imported", result.Imported,
		"rejected", len(result.Errors))
	return result, nil
}

func (l *Loader) loadPerson(ctx context.Context, row []string, role identity.Role) error {
	if len(row) <= personColMaritalStatus {
		return fmt.Errorf("expected at least %d columns, got %d", personColMaritalStatus+1, len(row))
	}

	age, err := strconv.Atoi(strings.TrimSpace(row[personColAge]))
	if err != nil {
		return fmt.Errorf("invalid age %q", row[personColAge])
	}

	_, err = l.people.Register(ctx, identity.RegisterRequest{
		NRIC:          strings.TrimSpace(row[personColNRIC]),
		Name:          strings.TrimSpace(row[personColName]),
		Age:           age,
		MaritalStatus: identity.MaritalStatus(strings.TrimSpace(row[personColMaritalStatus])),
		Role:          role,
	})
	return err
}

// LoadProjects imports one project per row. The manager column accepts
// an NRIC or a manager's name; each project is created as that manager,
// so ownership and window-overlap rules apply to imported rows too.
func (l *Loader) LoadProjects(ctx context.Context, r io.Reader) (*Result, error) {
	rows, err := sheetRows(r)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		result.Total++

		if err := l.loadProject(ctx, row); err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 1, Reason: err.Error()})
			continue
		}
		result.Imported++
	}

	l.logger.Info("project import finished",
		"total", result.Total,
		"imported", result.Imported,
		"rejected", len(result.Errors))
	return result, nil
}

func (l *Loader) loadProject(ctx context.Context, row []string) error {
	if len(row) <= projColOfficerSlots {
		return fmt.Errorf("expected at least %d columns, got %d", projColOfficerSlots+1, len(row))
	}

	slot1, err := parseSlot(row[projColType1], row[projColUnits1], row[projColPrice1])
	if err != nil {
		return err
	}
	slot2, err := parseSlot(row[projColType2], row[projColUnits2], row[projColPrice2])
	if err != nil {
		return err
	}

	openDate, err := parseDate(row[projColOpenDate])
	if err != nil {
		return err
	}
	closeDate, err := parseDate(row[projColCloseDate])
	if err != nil {
		return err
	}

	officerSlots, err := strconv.Atoi(strings.TrimSpace(row[projColOfficerSlots]))
	if err != nil {
		return fmt.Errorf("invalid officer slot count %q", row[projColOfficerSlots])
	}

	manager, err := l.resolveManager(ctx, strings.TrimSpace(row[projColManager]))
	if err != nil {
		return err
	}

	_, err = l.projects.Create(ctx, *manager, project.Spec{
		Name:         strings.TrimSpace(row[projColName]),
		Neighborhood: strings.TrimSpace(row[projColNeighborhood]),
		Slots:        [2]project.FlatSlot{slot1, slot2},
		OpenDate:     openDate,
		CloseDate:    closeDate,
		OfficerSlots: officerSlots,
	})
	return err
}

func (l *Loader) resolveManager(ctx context.Context, key string) (*identity.Person, error) {
	if key == "" {
		return nil, errors.New("missing manager")
	}

	var p *identity.Person
	var err error
	if identity.ValidNRIC(key) {
		p, err = l.resolver.Get(ctx, strings.ToUpper(key))
	} else {
		p, err = l.resolver.FindByName(ctx, key)
	}
	if err != nil {
		return nil, fmt.Errorf("unknown manager %q", key)
	}
	if p.Role != identity.RoleManager {
		return nil, fmt.Errorf("%s is not a manager", p.NRIC)
	}
	return p, nil
}

func parseSlot(typ, units, price string) (project.FlatSlot, error) {
	ft := project.FlatType(strings.TrimSpace(typ))
	if !project.ValidFlatType(ft) {
		return project.FlatSlot{}, fmt.Errorf("invalid flat type %q", typ)
	}

	n, err := strconv.Atoi(strings.TrimSpace(units))
	if err != nil {
		return project.FlatSlot{}, fmt.Errorf("invalid unit count %q", units)
	}

	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return project.FlatSlot{}, fmt.Errorf("invalid price %q", price)
	}

	return project.FlatSlot{Type: ft, Units: n, Price: d}, nil
}

var dateLayouts = []string{time.DateOnly, "1/2/2006", "2/1/2006"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func sheetRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse spreadsheet: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return rows, nil
}
