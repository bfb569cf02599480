package project

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlatType is a flat-type label. Only "2-Room" and "3-Room" are valid.
type FlatType string

const (
	TwoRoom   FlatType = "2-Room"
	ThreeRoom FlatType = "3-Room"
)

// ValidFlatType reports whether ft is one of the two configured labels.
func ValidFlatType(ft FlatType) bool {
	return ft == TwoRoom || ft == ThreeRoom
}

// FlatSlot is one of a project's two flat-type inventories.
type FlatSlot struct {
	Type  FlatType        `json:"type"`
	Units int             `json:"units"`
	Price decimal.Decimal `json:"price"`
}

// Project is a housing development with two flat-type inventories, an
// inclusive application window, and a finite officer-slot capacity.
// The id is stable across edits; the name is a unique secondary key.
type Project struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Neighborhood string      `json:"neighborhood"`
	ManagerNRIC  string      `json:"manager_nric"`
	Slots        [2]FlatSlot `json:"slots"`
	OpenDate     time.Time   `json:"open_date"`
	CloseDate    time.Time   `json:"close_date"`
	OfficerSlots int         `json:"officer_slots"`
	Visible      bool        `json:"visible"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Slot returns the inventory slot carrying the flat type, if configured.
func (p *Project) Slot(ft FlatType) (FlatSlot, bool) {
	for _, s := range p.Slots {
		if s.Type == ft {
			return s, true
		}
	}
	return FlatSlot{}, false
}

// HasFlatType reports whether the project offers the flat type.
func (p *Project) HasFlatType(ft FlatType) bool {
	_, ok := p.Slot(ft)
	return ok
}

// Summary is a lightweight representation for listing. HandlingOfficers
// counts APPROVED registrations; there is no stored officer label.
type Summary struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Neighborhood     string      `json:"neighborhood"`
	ManagerNRIC      string      `json:"manager_nric"`
	Slots            [2]FlatSlot `json:"slots"`
	OpenDate         time.Time   `json:"open_date"`
	CloseDate        time.Time   `json:"close_date"`
	OfficerSlots     int         `json:"officer_slots"`
	Visible          bool        `json:"visible"`
	HandlingOfficers int         `json:"handling_officers"`
}
