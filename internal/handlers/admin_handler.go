package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"railway-system/internal/services"
)

type AdminHandler struct {
	stats   *services.StatsService
	tickets *services.TicketService
}

func NewAdminHandler(stats *services.StatsService, tickets *services.TicketService) *AdminHandler {
	return &AdminHandler{stats: stats, tickets: tickets}
}

// Overview - Headline counters for the admin dashboard
func (h *AdminHandler) Overview(e *core.RequestEvent) error {
	if _, err := requireAdmin(e); err != nil {
		return err
	}

	overview, err := h.stats.Overview(e.Request.Context())
	if err != nil {
		return toAPIError(err, "Failed to load dashboard data. Please try again later.")
	}
	return e.JSON(http.StatusOK, overview)
}

// ListBookings - Every booking, for moderation
func (h *AdminHandler) ListBookings(e *core.RequestEvent) error {
	if _, err := requireAdmin(e); err != nil {
		return err
	}

	bookings, err := h.tickets.ListAll(e.Request.Context())
	if err != nil {
		return toAPIError(err, "Failed to load bookings. Please try again later.")
	}
	return e.JSON(http.StatusOK, bookings)
}

// CancelBooking - Cancel any passenger's booking
func (h *AdminHandler) CancelBooking(e *core.RequestEvent) error {
	auth, err := requireAdmin(e)
	if err != nil {
		return err
	}

	if err := h.tickets.Cancel(e.Request.Context(), auth, e.Request.PathValue("id"), true); err != nil {
		return toAPIError(err, "Failed to cancel booking. Please try again.")
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "Booking cancelled"})
}
