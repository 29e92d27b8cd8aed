package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"railway-system/internal/services"
	"railway-system/models"
)

type CargoHandler struct {
	cargo *services.CargoService
}

func NewCargoHandler(cargo *services.CargoService) *CargoHandler {
	return &CargoHandler{cargo: cargo}
}

// Book - Create a cargo shipment booking
func (h *CargoHandler) Book(e *core.RequestEvent) error {
	auth, err := requireAuth(e)
	if err != nil {
		return err
	}

	var req models.CargoRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	cargo, pickupCode, err := h.cargo.Book(e.Request.Context(), auth, req)
	if err != nil {
		return toAPIError(err, "Failed to book cargo shipment. Please try again.")
	}

	// The pickup code is shown exactly once; only its hash is stored.
	return e.JSON(http.StatusOK, map[string]any{
		"cargo":       cargo,
		"pickup_code": pickupCode,
	})
}

// List - The signed-in user's shipments
func (h *CargoHandler) List(e *core.RequestEvent) error {
	auth, err := requireAuth(e)
	if err != nil {
		return err
	}

	cargos, err := h.cargo.ListForUser(e.Request.Context(), auth.Id)
	if err != nil {
		return toAPIError(err, "Failed to load your cargo shipments. Please try again later.")
	}
	return e.JSON(http.StatusOK, cargos)
}

// Track - Look up a shipment by tracking number
func (h *CargoHandler) Track(e *core.RequestEvent) error {
	if _, err := requireAuth(e); err != nil {
		return err
	}

	cargo, err := h.cargo.Track(e.Request.Context(), e.Request.URL.Query().Get("tracking_number"))
	if err != nil {
		return toAPIError(err, "Failed to track cargo. Please try again with a valid tracking number.")
	}
	return e.JSON(http.StatusOK, cargo)
}

// Cancel - Cancel an undelivered shipment
func (h *CargoHandler) Cancel(e *core.RequestEvent) error {
	auth, err := requireAuth(e)
	if err != nil {
		return err
	}

	if err := h.cargo.Cancel(e.Request.Context(), auth, e.Request.PathValue("id")); err != nil {
		return toAPIError(err, "Failed to cancel cargo. Please try again.")
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "Cargo booking cancelled"})
}

// UpdateStatus - Admin: move a shipment through its lifecycle
func (h *CargoHandler) UpdateStatus(e *core.RequestEvent) error {
	if _, err := requireAdmin(e); err != nil {
		return err
	}

	var req struct {
		Status     string `json:"status"`
		PickupCode string `json:"pickup_code"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.cargo.UpdateStatus(e.Request.Context(), e.Request.PathValue("id"), req.Status, req.PickupCode); err != nil {
		return toAPIError(err, "Failed to update cargo status. Please try again.")
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "Cargo status updated"})
}

// ListAll - Admin: every shipment
func (h *CargoHandler) ListAll(e *core.RequestEvent) error {
	if _, err := requireAdmin(e); err != nil {
		return err
	}

	cargos, err := h.cargo.ListAll(e.Request.Context())
	if err != nil {
		return toAPIError(err, "Failed to load cargo shipments. Please try again later.")
	}
	return e.JSON(http.StatusOK, cargos)
}
