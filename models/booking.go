package models

import (
	"time"
)

const (
	BookingConfirmed = "Confirmed"
	BookingCancelled = "Cancelled"
)

type Booking struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	UserEmail   string     `json:"user_email"`
	TrainID     string     `json:"train_id"`
	TrainName   string     `json:"train_name"`
	From        string     `json:"from"`
	To          string     `json:"to"`
	Date        time.Time  `json:"date"`
	Status      string     `json:"status"` // Confirmed, Cancelled
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	BookedAt    time.Time  `json:"booked_at"`
}
