package project

import "strings"

// ValidateSpec validates the field-level constraints of a project spec:
// flat-type labels, non-negative counts and prices, and date ordering.
// Window-overlap checks against the owning manager's other projects are
// the service's job, not a field check.
func ValidateSpec(req Spec) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.Neighborhood) == "" {
		return ErrInvalidInput
	}
	for _, s := range req.Slots {
		if !ValidFlatType(s.Type) {
			return ErrInvalidFlatType
		}
		if s.Units < 0 {
			return ErrInvalidInput
		}
		if s.Price.IsNegative() {
			return ErrInvalidInput
		}
	}
	if req.Slots[0].Type == req.Slots[1].Type {
		return ErrInvalidInput
	}
	if req.OpenDate.IsZero() || req.CloseDate.IsZero() {
		return ErrInvalidInput
	}
	if req.CloseDate.Before(req.OpenDate) {
		return ErrInvalidInput
	}
	if req.OfficerSlots < 0 {
		return ErrInvalidInput
	}
	return nil
}
