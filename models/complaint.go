package models

import (
	"time"
)

const (
	ComplaintPending    = "Pending"
	ComplaintInProgress = "In Progress"
	ComplaintResolved   = "Resolved"
	ComplaintRejected   = "Rejected"
)

type Complaint struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	UserEmail    string             `json:"user_email"`
	Type         string             `json:"type"` // schedule, service, facility, staff, other
	Subject      string             `json:"subject"`
	Description  string             `json:"description"`
	ContactInfo  string             `json:"contact_info,omitempty"`
	Status       string             `json:"status"` // Pending, In Progress, Resolved, Rejected
	Response     string             `json:"response,omitempty"`
	AdminID      string             `json:"admin_id,omitempty"`
	Conversation []ComplaintMessage `json:"conversation,omitempty"`
	ResolvedAt   *time.Time         `json:"resolved_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

type ComplaintMessage struct {
	Message   string    `json:"message"`
	Sender    string    `json:"sender"` // user, admin
	Timestamp time.Time `json:"timestamp"`
}

type ComplaintRequest struct {
	Type        string `json:"type"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	ContactInfo string `json:"contact_info"`
}
