// Package eligibility holds the pure predicates gating who may request
// which flat type, which projects an applicant may discover, and when
// application windows collide. Nothing here mutates state.
package eligibility

import (
	"time"

	"github.com/limfang/btoflow/internal/domain/identity"
)

// Flat type labels the rules understand. The project registry validates
// that every project slot carries one of these.
const (
	TwoRoom   = "2-Room"
	ThreeRoom = "3-Room"
)

// CanRequestFlatType reports whether a person of the given marital status
// and age may request the flat type. Singles must be 35 or older and may
// only take a 2-Room; married applicants must be 21 or older and may take
// either type.
func CanRequestFlatType(status identity.MaritalStatus, age int, flatType string) bool {
	switch status {
	case identity.Single:
		return age >= 35 && flatType == TwoRoom
	case identity.Married:
		return age >= 21 && (flatType == TwoRoom || flatType == ThreeRoom)
	default:
		return false
	}
}

// VisibleTo reports whether a project listing is shown to an applicant.
// The single-applicant branch is additionally gated on the first flat
// slot having units left at listing time; the married branch is not.
func VisibleTo(status identity.MaritalStatus, age int, visible bool, firstSlotUnits int) bool {
	if !visible {
		return false
	}
	switch status {
	case identity.Single:
		return age >= 35 && firstSlotUnits != 0
	case identity.Married:
		return age >= 21
	default:
		return false
	}
}

// Overlaps reports whether the inclusive intervals [aOpen, aClose] and
// [bOpen, bClose] intersect.
func Overlaps(aOpen, aClose, bOpen, bClose time.Time) bool {
	return !(aClose.Before(bOpen) || aOpen.After(bClose))
}

// Window is an inclusive application date range.
type Window struct {
	Open  time.Time
	Close time.Time
}

// AnyOverlap reports whether [open, close] intersects any of the windows.
// Used for the one-project-per-period rule on managers and officers.
func AnyOverlap(windows []Window, open, close time.Time) bool {
	for _, w := range windows {
		if Overlaps(w.Open, w.Close, open, close) {
			return true
		}
	}
	return false
}
