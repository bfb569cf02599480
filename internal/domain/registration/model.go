package registration

import "time"

// Status is the lifecycle state of an officer registration. Both decided
// states are terminal; a decision is never reversed.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Registration is one officer's request to be handling staff for one
// project. Officer and project are referenced by id.
type Registration struct {
	ID          string    `json:"id"`
	OfficerNRIC string    `json:"officer_nric"`
	ProjectID   string    `json:"project_id"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"`
}
