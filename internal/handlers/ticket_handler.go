package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"railway-system/internal/services"
)

type TicketHandler struct {
	tickets *services.TicketService
}

func NewTicketHandler(tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// Book - Reserve a seat on a train
func (h *TicketHandler) Book(e *core.RequestEvent) error {
	auth, err := requireAuth(e)
	if err != nil {
		return err
	}

	var req struct {
		TrainID string `json:"train_id"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	booking, err := h.tickets.Book(e.Request.Context(), auth, req.TrainID)
	if err != nil {
		return toAPIError(err, "Failed to book ticket. Please try again.")
	}
	return e.JSON(http.StatusOK, booking)
}

// List - The signed-in user's bookings
func (h *TicketHandler) List(e *core.RequestEvent) error {
	auth, err := requireAuth(e)
	if err != nil {
		return err
	}

	bookings, err := h.tickets.ListForUser(e.Request.Context(), auth.Id)
	if err != nil {
		return toAPIError(err, "Failed to load your tickets. Please try again later.")
	}
	return e.JSON(http.StatusOK, bookings)
}

// Cancel - Soft-cancel a booking and release its seat
func (h *TicketHandler) Cancel(e *core.RequestEvent) error {
	auth, err := requireAuth(e)
	if err != nil {
		return err
	}

	if err := h.tickets.Cancel(e.Request.Context(), auth, e.Request.PathValue("id"), false); err != nil {
		return toAPIError(err, "Failed to cancel ticket. Please try again.")
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "Booking cancelled"})
}
