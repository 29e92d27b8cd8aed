package handlers

import (
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"railway-system/internal/services"
	"railway-system/models"
)

type TrainHandler struct {
	trains *services.TrainService
}

func NewTrainHandler(trains *services.TrainService) *TrainHandler {
	return &TrainHandler{trains: trains}
}

// ListUpcoming - Public list of trains departing today or later
func (h *TrainHandler) ListUpcoming(e *core.RequestEvent) error {
	trains, err := h.trains.Upcoming(e.Request.Context())
	if err != nil {
		return toAPIError(err, "Failed to fetch available trains. Please try again later.")
	}
	return e.JSON(http.StatusOK, trains)
}

// Search - Public train search by route and travel day
func (h *TrainHandler) Search(e *core.RequestEvent) error {
	q := e.Request.URL.Query()

	date, err := time.Parse("2006-01-02", q.Get("date"))
	if err != nil {
		return apis.NewBadRequestError("A travel date in YYYY-MM-DD format is required", nil)
	}

	trains, err := h.trains.Search(e.Request.Context(), models.TrainSearch{
		From: q.Get("from"),
		To:   q.Get("to"),
		Date: date,
	})
	if err != nil {
		return toAPIError(err, "Failed to search for trains. Please check the criteria and try again.")
	}
	return e.JSON(http.StatusOK, trains)
}

// Create - Admin: add a train
func (h *TrainHandler) Create(e *core.RequestEvent) error {
	if _, err := requireAdmin(e); err != nil {
		return err
	}

	var req models.Train
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	train, err := h.trains.Create(e.Request.Context(), req)
	if err != nil {
		return toAPIError(err, "Failed to save train. Please try again.")
	}
	return e.JSON(http.StatusOK, train)
}

// Update - Admin: edit a train
func (h *TrainHandler) Update(e *core.RequestEvent) error {
	if _, err := requireAdmin(e); err != nil {
		return err
	}

	var req models.Train
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	train, err := h.trains.Update(e.Request.Context(), e.Request.PathValue("id"), req)
	if err != nil {
		return toAPIError(err, "Failed to save train. Please try again.")
	}
	return e.JSON(http.StatusOK, train)
}

// Delete - Admin: remove a train
func (h *TrainHandler) Delete(e *core.RequestEvent) error {
	if _, err := requireAdmin(e); err != nil {
		return err
	}

	if err := h.trains.Delete(e.Request.Context(), e.Request.PathValue("id")); err != nil {
		return toAPIError(err, "Failed to delete train. Please try again.")
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "Train deleted"})
}
