package identity

import (
	"regexp"
	"time"
)

// Role tags what a person is allowed to do in the allocation workflow.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleOfficer   Role = "officer"
	RoleManager   Role = "manager"
)

// MaritalStatus as supplied by the bulk loader.
type MaritalStatus string

const (
	Single  MaritalStatus = "Single"
	Married MaritalStatus = "Married"
)

// Person is a capability-tagged identity record. Officers are applicants
// with the additional project-handling capability; there is no subtyping.
type Person struct {
	NRIC          string        `json:"nric"`
	Name          string        `json:"name"`
	Age           int           `json:"age"`
	MaritalStatus MaritalStatus `json:"marital_status"`
	Role          Role          `json:"role"`
	CreatedAt     time.Time     `json:"created_at"`
}

// CanApply reports whether the person may submit flat applications.
// Managers administer projects and never apply.
func (p Person) CanApply() bool {
	return p.Role == RoleApplicant || p.Role == RoleOfficer
}

// CanHandleProjects reports whether the person may register to handle projects.
func (p Person) CanHandleProjects() bool {
	return p.Role == RoleOfficer
}

var nricPattern = regexp.MustCompile(`^[STst]\d{7}[A-Za-z]$`)

// ValidNRIC reports whether s has the S/T + 7 digits + checksum letter shape.
func ValidNRIC(s string) bool {
	return nricPattern.MatchString(s)
}

// ValidRole reports whether r is one of the known role tags.
func ValidRole(r Role) bool {
	return r == RoleApplicant || r == RoleOfficer || r == RoleManager
}

// ValidMaritalStatus reports whether m is a status the eligibility rules know.
func ValidMaritalStatus(m MaritalStatus) bool {
	return m == Single || m == Married
}
