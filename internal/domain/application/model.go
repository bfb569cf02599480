package application

import (
	"time"

	"github.com/limfang/btoflow/internal/domain/identity"
	"github.com/limfang/btoflow/internal/domain/project"
)

// Status is the workflow state of an application.
type Status string

const (
	StatusPending      Status = "PENDING"
	StatusSuccessful   Status = "SUCCESSFUL"
	StatusUnsuccessful Status = "UNSUCCESSFUL"
	StatusBooked       Status = "BOOKED"
)

// Active reports whether the status still ties up the applicant.
// UNSUCCESSFUL is the only state from which a fresh submission is allowed.
func (s Status) Active() bool {
	return s != StatusUnsuccessful
}

// Application is one applicant's request for one unit of a chosen flat
// type in one project. Project and applicant are referenced by id, never
// by live pointer.
type Application struct {
	ID            string           `json:"id"`
	ApplicantNRIC string           `json:"applicant_nric"`
	ProjectID     string           `json:"project_id"`
	FlatType      project.FlatType `json:"flat_type"`
	Status        Status           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	ModifiedAt    time.Time        `json:"modified_at"`
}

// Receipt is the record emitted when a successful application is booked.
// The project is a snapshot taken at booking time.
type Receipt struct {
	ApplicantNRIC string                 `json:"applicant_nric"`
	ApplicantAge  int                    `json:"applicant_age"`
	MaritalStatus identity.MaritalStatus `json:"marital_status"`
	FlatType      project.FlatType       `json:"flat_type"`
	Project       project.Project        `json:"project"`
	Status        Status                 `json:"status"`
	OfficerNRIC   string                 `json:"officer_nric"`
	IssuedAt      time.Time              `json:"issued_at"`
}
