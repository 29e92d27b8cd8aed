package models

import (
	"time"
)

const (
	CargoPending   = "Pending"
	CargoInTransit = "In Transit"
	CargoDelivered = "Delivered"
	CargoCancelled = "Cancelled"
)

const (
	CargoTypeGeneral    = "general"
	CargoTypeFragile    = "fragile"
	CargoTypePerishable = "perishable"
	CargoTypeDangerous  = "dangerous"
)

type Cargo struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"user_id"`
	UserEmail           string     `json:"user_email"`
	SenderName          string     `json:"sender_name"`
	RecipientName       string     `json:"recipient_name"`
	From                string     `json:"from"`
	To                  string     `json:"to"`
	ShippingDate        time.Time  `json:"shipping_date"`
	CargoType           string     `json:"cargo_type"` // general, fragile, perishable, dangerous
	Weight              float64    `json:"weight"`
	SpecialInstructions string     `json:"special_instructions,omitempty"`
	TrackingNumber      string     `json:"tracking_number"`
	Status              string     `json:"status"` // Pending, In Transit, Delivered, Cancelled
	Cost                float64    `json:"cost"`
	DeliveredAt         *time.Time `json:"delivered_at,omitempty"`
	CancelledAt         *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

type CargoRequest struct {
	SenderName          string    `json:"sender_name"`
	RecipientName       string    `json:"recipient_name"`
	From                string    `json:"from"`
	To                  string    `json:"to"`
	ShippingDate        time.Time `json:"shipping_date"`
	CargoType           string    `json:"cargo_type"`
	Weight              float64   `json:"weight"`
	SpecialInstructions string    `json:"special_instructions"`
}
