// Package lifecycle defines one finite-state machine per entity type.
// Every mutating entry point consults these tables instead of carrying
// its own status conditionals.
package lifecycle

import (
	"fmt"

	"railway-system/internal/status"
	"railway-system/models"
)

type Machine struct {
	entity      string
	transitions map[string][]string
}

func New(entity string, transitions map[string][]string) *Machine {
	return &Machine{entity: entity, transitions: transitions}
}

// Known reports whether s is a member of the machine's status enum.
func (m *Machine) Known(s string) bool {
	if _, ok := m.transitions[s]; ok {
		return true
	}
	for _, targets := range m.transitions {
		for _, t := range targets {
			if t == s {
				return true
			}
		}
	}
	return false
}

// Can reports whether from -> to is a legal transition.
func (m *Machine) Can(from, to string) bool {
	for _, t := range m.transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Transition validates from -> to and returns a descriptive error when the
// move is not in the table.
func (m *Machine) Transition(from, to string) error {
	if !m.Known(to) {
		return fmt.Errorf("%s: unknown status %q: %w", m.entity, to, status.ErrInvalidTransition)
	}
	if !m.Can(from, to) {
		return fmt.Errorf("%s: cannot move from %q to %q: %w", m.entity, from, to, status.ErrInvalidTransition)
	}
	return nil
}

// Terminal reports whether s has no outgoing transitions.
func (m *Machine) Terminal(s string) bool {
	return len(m.transitions[s]) == 0
}

var Cargo = New("cargo", map[string][]string{
	models.CargoPending:   {models.CargoInTransit, models.CargoDelivered, models.CargoCancelled},
	models.CargoInTransit: {models.CargoDelivered, models.CargoCancelled},
	models.CargoDelivered: {},
	models.CargoCancelled: {},
})

var Pass = New("season pass", map[string][]string{
	models.PassPending:   {models.PassActive, models.PassCancelled},
	models.PassActive:    {models.PassExpired, models.PassCancelled},
	models.PassExpired:   {},
	models.PassCancelled: {},
})

var Complaint = New("complaint", map[string][]string{
	models.ComplaintPending:    {models.ComplaintInProgress, models.ComplaintResolved, models.ComplaintRejected},
	models.ComplaintInProgress: {models.ComplaintResolved, models.ComplaintRejected},
	// A user follow-up reopens a resolved complaint.
	models.ComplaintResolved: {models.ComplaintInProgress},
	models.ComplaintRejected: {},
})

var Booking = New("booking", map[string][]string{
	models.BookingConfirmed: {models.BookingCancelled},
	models.BookingCancelled: {},
})
