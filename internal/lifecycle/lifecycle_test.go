package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railway-system/internal/status"
	"railway-system/models"
)

func TestCargo_LegalTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{models.CargoPending, models.CargoInTransit, true},
		{models.CargoPending, models.CargoDelivered, true},
		{models.CargoPending, models.CargoCancelled, true},
		{models.CargoInTransit, models.CargoDelivered, true},
		{models.CargoInTransit, models.CargoCancelled, true},
		{models.CargoDelivered, models.CargoCancelled, false},
		{models.CargoCancelled, models.CargoCancelled, false},
		{models.CargoDelivered, models.CargoInTransit, false},
		{models.CargoCancelled, models.CargoPending, false},
	}

	for _, tc := range cases {
		err := Cargo.Transition(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			assert.ErrorIs(t, err, status.ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
		}
	}
}

func TestCargo_TerminalStates(t *testing.T) {
	assert.True(t, Cargo.Terminal(models.CargoDelivered))
	assert.True(t, Cargo.Terminal(models.CargoCancelled))
	assert.False(t, Cargo.Terminal(models.CargoPending))
	assert.False(t, Cargo.Terminal(models.CargoInTransit))
}

func TestPass_ApproveAndExpire(t *testing.T) {
	require.NoError(t, Pass.Transition(models.PassPending, models.PassActive))
	require.NoError(t, Pass.Transition(models.PassActive, models.PassExpired))
	require.NoError(t, Pass.Transition(models.PassActive, models.PassCancelled))

	assert.ErrorIs(t, Pass.Transition(models.PassExpired, models.PassActive), status.ErrInvalidTransition)
	assert.ErrorIs(t, Pass.Transition(models.PassCancelled, models.PassActive), status.ErrInvalidTransition)
	assert.ErrorIs(t, Pass.Transition(models.PassPending, models.PassExpired), status.ErrInvalidTransition)
}

func TestComplaint_ReopenOnlyFromResolved(t *testing.T) {
	assert.NoError(t, Complaint.Transition(models.ComplaintResolved, models.ComplaintInProgress))
	assert.ErrorIs(t, Complaint.Transition(models.ComplaintRejected, models.ComplaintInProgress), status.ErrInvalidTransition)
}

func TestMachine_UnknownStatusRejected(t *testing.T) {
	err := Cargo.Transition(models.CargoPending, "Lost")
	assert.ErrorIs(t, err, status.ErrInvalidTransition)

	err = Booking.Transition(models.BookingConfirmed, "Refunded")
	assert.ErrorIs(t, err, status.ErrInvalidTransition)
}

func TestMachine_Known(t *testing.T) {
	assert.True(t, Pass.Known(models.PassExpired))
	assert.True(t, Booking.Known(models.BookingCancelled))
	assert.False(t, Pass.Known("Suspended"))
}
