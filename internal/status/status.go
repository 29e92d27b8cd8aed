package status

import "errors"

var (
	ErrTrainNotFound     = errors.New("train not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrCargoNotFound     = errors.New("cargo shipment not found")
	ErrPassNotFound      = errors.New("season pass not found")
	ErrComplaintNotFound = errors.New("complaint not found")
)

var (
	ErrNoSeatsAvailable  = errors.New("booking: no seats available")
	ErrInvalidTransition = errors.New("status: transition not allowed")
	ErrNotOwner          = errors.New("access: record belongs to another user")
	ErrNotRenewable      = errors.New("pass: only active or expired passes can be renewed")
	ErrInvalidPickupCode = errors.New("cargo: pickup code does not match")
	ErrTrackingExhausted = errors.New("cargo: could not allocate a unique tracking number")
	ErrValidation        = errors.New("validation error")
)
