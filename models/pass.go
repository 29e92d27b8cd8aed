package models

import (
	"time"
)

const (
	PassPending   = "Pending"
	PassActive    = "Active"
	PassExpired   = "Expired"
	PassCancelled = "Cancelled"
)

const (
	PassMonthly   = "monthly"
	PassQuarterly = "quarterly"
	PassBiannual  = "biannual"
	PassAnnual    = "annual"
)

const (
	ClassEconomy  = "economy"
	ClassBusiness = "business"
	ClassFirst    = "first"
)

type SeasonPass struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	UserEmail   string     `json:"user_email"`
	FullName    string     `json:"full_name"`
	IDNumber    string     `json:"id_number"`
	Phone       string     `json:"phone,omitempty"`
	FromStation string     `json:"from_station"`
	ToStation   string     `json:"to_station"`
	PassType    string     `json:"pass_type"` // monthly, quarterly, biannual, annual
	Class       string     `json:"class"`     // economy, business, first
	ValidFrom   time.Time  `json:"valid_from"`
	ValidTo     time.Time  `json:"valid_to"`
	Status      string     `json:"status"` // Pending, Active, Expired, Cancelled
	Cost        float64    `json:"cost"`
	Comments    string     `json:"comments,omitempty"`
	RenewedFrom string     `json:"renewed_from,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type PassApplication struct {
	FullName    string    `json:"full_name"`
	IDNumber    string    `json:"id_number"`
	Phone       string    `json:"phone"`
	FromStation string    `json:"from_station"`
	ToStation   string    `json:"to_station"`
	PassType    string    `json:"pass_type"`
	Class       string    `json:"class"`
	ValidFrom   time.Time `json:"valid_from"`
	Comments    string    `json:"comments"`
}

type PassRenewal struct {
	PassType  string    `json:"pass_type"`  // optional, defaults to the old pass type
	ValidFrom time.Time `json:"valid_from"` // optional, defaults to the day after the old expiry
}
