package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"railway-system/internal/services"
	"railway-system/models"
)

type ComplaintHandler struct {
	complaints *services.ComplaintService
}

func NewComplaintHandler(complaints *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaints: complaints}
}

// Submit - File a new complaint
func (h *ComplaintHandler) Submit(e *core.RequestEvent) error {
	auth, err := requireAuth(e)
	if err != nil {
		return err
	}

	var req models.ComplaintRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	complaint, err := h.complaints.Submit(e.Request.Context(), auth, req)
	if err != nil {
		return toAPIError(err, "Failed to submit complaint. Please try again.")
	}
	return e.JSON(http.StatusOK, complaint)
}

// List - The signed-in user's complaints
func (h *ComplaintHandler) List(e *core.RequestEvent) error {
	auth, err := requireAuth(e)
	if err != nil {
		return err
	}

	complaints, err := h.complaints.ListForUser(e.Request.Context(), auth.Id)
	if err != nil {
		return toAPIError(err, "Failed to load your complaints. Please try again later.")
	}
	return e.JSON(http.StatusOK, complaints)
}

// Get - Details of one complaint, including the conversation thread
func (h *ComplaintHandler) Get(e *core.RequestEvent) error {
	auth, err := requireAuth(e)
	if err != nil {
		return err
	}

	complaint, err := h.complaints.Get(e.Request.Context(), auth, e.Request.PathValue("id"), auth.GetString("role") == "admin")
	if err != nil {
		return toAPIError(err, "Failed to retrieve complaint details. Please try again.")
	}
	return e.JSON(http.StatusOK, complaint)
}

// FollowUp - Add a user message to an existing complaint
func (h *ComplaintHandler) FollowUp(e *core.RequestEvent) error {
	auth, err := requireAuth(e)
	if err != nil {
		return err
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.complaints.FollowUp(e.Request.Context(), auth, e.Request.PathValue("id"), req.Message); err != nil {
		return toAPIError(err, "Failed to add follow-up. Please try again.")
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "Follow-up added"})
}

// UpdateStatus - Admin: respond to or close a complaint
func (h *ComplaintHandler) UpdateStatus(e *core.RequestEvent) error {
	auth, err := requireAdmin(e)
	if err != nil {
		return err
	}

	var req struct {
		Status   string `json:"status"`
		Response string `json:"response"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.complaints.UpdateStatus(e.Request.Context(), auth.Id, e.Request.PathValue("id"), req.Status, req.Response); err != nil {
		return toAPIError(err, "Failed to update complaint status. Please try again.")
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "Complaint updated"})
}

// ListAll - Admin: every complaint
func (h *ComplaintHandler) ListAll(e *core.RequestEvent) error {
	if _, err := requireAdmin(e); err != nil {
		return err
	}

	complaints, err := h.complaints.ListAll(e.Request.Context())
	if err != nil {
		return toAPIError(err, "Failed to load complaints. Please try again later.")
	}
	return e.JSON(http.StatusOK, complaints)
}
