package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"railway-system/internal/services"
	"railway-system/models"
)

type PassHandler struct {
	passes *services.PassService
}

func NewPassHandler(passes *services.PassService) *PassHandler {
	return &PassHandler{passes: passes}
}

// Apply - Submit a season pass application
func (h *PassHandler) Apply(e *core.RequestEvent) error {
	auth, err := requireAuth(e)
	if err != nil {
		return err
	}

	var req models.PassApplication
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	pass, err := h.passes.Apply(e.Request.Context(), auth, req)
	if err != nil {
		return toAPIError(err, "Failed to submit season pass application. Please try again.")
	}
	return e.JSON(http.StatusOK, pass)
}

// List - The signed-in user's passes
func (h *PassHandler) List(e *core.RequestEvent) error {
	auth, err := requireAuth(e)
	if err != nil {
		return err
	}

	passes, err := h.passes.ListForUser(e.Request.Context(), auth.Id)
	if err != nil {
		return toAPIError(err, "Failed to load your season passes. Please try again later.")
	}
	return e.JSON(http.StatusOK, passes)
}

// Get - Details of one pass
func (h *PassHandler) Get(e *core.RequestEvent) error {
	auth, err := requireAuth(e)
	if err != nil {
		return err
	}

	pass, err := h.passes.Get(e.Request.Context(), auth, e.Request.PathValue("id"), auth.GetString("role") == "admin")
	if err != nil {
		return toAPIError(err, "Failed to retrieve pass details. Please try again.")
	}
	return e.JSON(http.StatusOK, pass)
}

// Renew - Issue a new pass continuing this one
func (h *PassHandler) Renew(e *core.RequestEvent) error {
	auth, err := requireAuth(e)
	if err != nil {
		return err
	}

	var req models.PassRenewal
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	pass, err := h.passes.Renew(e.Request.Context(), auth, e.Request.PathValue("id"), req, auth.GetString("role") == "admin")
	if err != nil {
		return toAPIError(err, "Failed to renew season pass. Please try again.")
	}
	return e.JSON(http.StatusOK, pass)
}

// UpdateStatus - Admin: approve, expire or cancel a pass
func (h *PassHandler) UpdateStatus(e *core.RequestEvent) error {
	if _, err := requireAdmin(e); err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.passes.UpdateStatus(e.Request.Context(), e.Request.PathValue("id"), req.Status); err != nil {
		return toAPIError(err, "Failed to update season pass status. Please try again.")
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "Pass status updated"})
}

// ListAll - Admin: every pass application
func (h *PassHandler) ListAll(e *core.RequestEvent) error {
	if _, err := requireAdmin(e); err != nil {
		return err
	}

	passes, err := h.passes.ListAll(e.Request.Context())
	if err != nil {
		return toAPIError(err, "Failed to load season passes. Please try again later.")
	}
	return e.JSON(http.StatusOK, passes)
}
