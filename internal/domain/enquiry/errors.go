package enquiry

import "errors"

var (
	// ErrEnquiryNotFound indicates the enquiry doesn't exist.
	ErrEnquiryNotFound = errors.New("enquiry not found")
	// ErrInvalidInput indicates empty enquiry text.
	ErrInvalidInput = errors.New("invalid enquiry input")
	// ErrNotAuthor indicates an edit or delete by someone other than the
	// submitting applicant.
	ErrNotAuthor = errors.New("enquiry belongs to another applicant")
	// ErrAlreadyReplied indicates an edit after a staff reply, or a
	// second reply.
	ErrAlreadyReplied = errors.New("enquiry already replied to")
	// ErrNotStaff indicates a reply attempted without the officer or
	// manager role.
	ErrNotStaff = errors.New("replies require officer or manager role")
)
