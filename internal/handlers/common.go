package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"railway-system/internal/status"
)

func requireAuth(e *core.RequestEvent) (*core.Record, error) {
	if e.Auth == nil {
		return nil, apis.NewUnauthorizedError("Authentication required", nil)
	}
	return e.Auth, nil
}

func requireAdmin(e *core.RequestEvent) (*core.Record, error) {
	auth, err := requireAuth(e)
	if err != nil {
		return nil, err
	}
	if auth.GetString("role") != "admin" {
		return nil, apis.NewForbiddenError("Admin access required", nil)
	}
	return auth, nil
}

// toAPIError maps domain errors onto HTTP responses. Provider errors are
// logged and replaced by the given generic message so backend details
// never reach the client.
func toAPIError(err error, generic string) error {
	switch {
	case errors.Is(err, status.ErrValidation):
		return apis.NewBadRequestError(err.Error(), nil)
	case errors.Is(err, status.ErrTrainNotFound),
		errors.Is(err, status.ErrBookingNotFound),
		errors.Is(err, status.ErrCargoNotFound),
		errors.Is(err, status.ErrPassNotFound),
		errors.Is(err, status.ErrComplaintNotFound):
		return apis.NewNotFoundError(err.Error(), nil)
	case errors.Is(err, status.ErrNotOwner):
		return apis.NewForbiddenError(err.Error(), nil)
	case errors.Is(err, status.ErrInvalidTransition),
		errors.Is(err, status.ErrNotRenewable),
		errors.Is(err, status.ErrNoSeatsAvailable),
		errors.Is(err, status.ErrInvalidPickupCode),
		errors.Is(err, status.ErrTrackingExhausted):
		return apis.NewApiError(http.StatusConflict, err.Error(), nil)
	default:
		slog.Error("request failed", "error", err)
		return apis.NewBadRequestError(generic, nil)
	}
}
