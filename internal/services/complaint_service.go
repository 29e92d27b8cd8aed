package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"railway-system/internal/lifecycle"
	"railway-system/internal/notify"
	"railway-system/internal/status"
	"railway-system/models"
	"railway-system/monitoring"
)

type ComplaintService struct {
	app      core.App
	notifier notify.Publisher
	monitor  *monitoring.Monitor
}

func NewComplaintService(app core.App, notifier notify.Publisher, monitor *monitoring.Monitor) *ComplaintService {
	return &ComplaintService{app: app, notifier: notifier, monitor: monitor}
}

// Submit files a new complaint, starting in Pending.
func (s *ComplaintService) Submit(ctx context.Context, user *core.Record, req models.ComplaintRequest) (*models.Complaint, error) {
	if req.Type == "" || req.Subject == "" || req.Description == "" {
		return nil, fmt.Errorf("complaint type, subject and description are required: %w", status.ErrValidation)
	}

	collection, err := s.app.FindCollectionByNameOrId("complaints")
	if err != nil {
		return nil, fmt.Errorf("find complaints collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("user_id", user.Id)
	record.Set("user_email", user.Email())
	record.Set("type", req.Type)
	record.Set("subject", req.Subject)
	record.Set("description", req.Description)
	record.Set("contact_info", req.ContactInfo)
	record.Set("status", models.ComplaintPending)

	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("save complaint: %w", err)
	}

	s.monitor.TrackComplaint(req.Type)
	return complaintFromRecord(record), nil
}

// Get returns one complaint. Passengers may only read their own.
func (s *ComplaintService) Get(ctx context.Context, actor *core.Record, complaintID string, asAdmin bool) (*models.Complaint, error) {
	record, err := s.app.FindRecordById("complaints", complaintID)
	if err != nil {
		return nil, status.ErrComplaintNotFound
	}
	if !asAdmin && record.GetString("user_id") != actor.Id {
		return nil, status.ErrNotOwner
	}
	return complaintFromRecord(record), nil
}

// ListForUser returns the user's complaints, newest first.
func (s *ComplaintService) ListForUser(ctx context.Context, userID string) ([]*models.Complaint, error) {
	records, err := s.app.FindRecordsByFilter(
		"complaints",
		"user_id = {:userId}",
		"-created",
		200,
		0,
		dbx.Params{"userId": userID},
	)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}

	complaints := make([]*models.Complaint, 0, len(records))
	for _, r := range records {
		complaints = append(complaints, complaintFromRecord(r))
	}
	return complaints, nil
}

// ListAll returns every complaint for the admin console, newest first.
func (s *ComplaintService) ListAll(ctx context.Context) ([]*models.Complaint, error) {
	records, err := s.app.FindRecordsByFilter("complaints", "id != ''", "-created", 500, 0)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}

	complaints := make([]*models.Complaint, 0, len(records))
	for _, r := range records {
		complaints = append(complaints, complaintFromRecord(r))
	}
	return complaints, nil
}

// UpdateStatus applies an admin status change, optionally recording a
// response. Resolving stamps resolved_at and appends the response to the
// conversation thread.
func (s *ComplaintService) UpdateStatus(ctx context.Context, adminID, complaintID, newStatus, response string) error {
	record, err := s.app.FindRecordById("complaints", complaintID)
	if err != nil {
		return status.ErrComplaintNotFound
	}

	if err := lifecycle.Complaint.Transition(record.GetString("status"), newStatus); err != nil {
		return err
	}

	record.Set("status", newStatus)
	record.Set("admin_id", adminID)
	if newStatus == models.ComplaintResolved {
		record.Set("resolved_at", types.NowDateTime())
	}
	if response != "" {
		record.Set("response", response)
		if err := appendMessage(record, response, "admin"); err != nil {
			return err
		}
	}

	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("update complaint status: %w", err)
	}

	s.monitor.TrackTransition("complaint", newStatus)
	s.notifier.Publish(ctx, notify.UserChannel(record.GetString("user_id")), map[string]any{
		"type":         "complaint_update",
		"complaint_id": record.Id,
		"status":       newStatus,
	})
	return nil
}

// FollowUp appends a user message to the complaint thread. Following up
// on a Resolved complaint reopens it to In Progress.
func (s *ComplaintService) FollowUp(ctx context.Context, actor *core.Record, complaintID, message string) error {
	if message == "" {
		return fmt.Errorf("follow-up message is required: %w", status.ErrValidation)
	}

	record, err := s.app.FindRecordById("complaints", complaintID)
	if err != nil {
		return status.ErrComplaintNotFound
	}
	if record.GetString("user_id") != actor.Id {
		return status.ErrNotOwner
	}

	if err := appendMessage(record, message, "user"); err != nil {
		return err
	}

	if record.GetString("status") == models.ComplaintResolved {
		if err := lifecycle.Complaint.Transition(models.ComplaintResolved, models.ComplaintInProgress); err != nil {
			return err
		}
		record.Set("status", models.ComplaintInProgress)
		s.monitor.TrackTransition("complaint", models.ComplaintInProgress)
	}

	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("add follow-up: %w", err)
	}
	return nil
}

func appendMessage(record *core.Record, message, sender string) error {
	var conversation []models.ComplaintMessage
	if err := record.UnmarshalJSONField("conversation", &conversation); err != nil && record.GetString("conversation") != "" {
		return fmt.Errorf("read conversation: %w", err)
	}

	conversation = append(conversation, models.ComplaintMessage{
		Message:   message,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
	})
	record.Set("conversation", conversation)
	return nil
}

func complaintFromRecord(r *core.Record) *models.Complaint {
	var conversation []models.ComplaintMessage
	_ = r.UnmarshalJSONField("conversation", &conversation)

	return &models.Complaint{
		ID:           r.Id,
		UserID:       r.GetString("user_id"),
		UserEmail:    r.GetString("user_email"),
		Type:         r.GetString("type"),
		Subject:      r.GetString("subject"),
		Description:  r.GetString("description"),
		ContactInfo:  r.GetString("contact_info"),
		Status:       r.GetString("status"),
		Response:     r.GetString("response"),
		AdminID:      r.GetString("admin_id"),
		Conversation: conversation,
		ResolvedAt:   optTime(r, "resolved_at"),
		CreatedAt:    r.GetDateTime("created").Time(),
	}
}
