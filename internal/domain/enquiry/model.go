package enquiry

import "time"

// Enquiry is an applicant question about a project, optionally carrying
// one staff reply.
type Enquiry struct {
	ID            string     `json:"id"`
	ApplicantNRIC string     `json:"applicant_nric"`
	ProjectID     string     `json:"project_id"`
	Text          string     `json:"text"`
	Reply         string     `json:"reply,omitempty"`
	RepliedBy     string     `json:"replied_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ModifiedAt    time.Time  `json:"modified_at"`
	RepliedAt     *time.Time `json:"replied_at,omitempty"`
}

// Answered reports whether a staff reply has been recorded.
func (e *Enquiry) Answered() bool {
	return e.RepliedAt != nil
}
