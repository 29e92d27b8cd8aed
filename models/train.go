package models

import (
	"time"
)

type Train struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	TrainNumber      string    `json:"train_number"`
	DepartureStation string    `json:"departure_station"`
	ArrivalStation   string    `json:"arrival_station"`
	DepartureDate    time.Time `json:"departure_date"`
	DepartureTime    string    `json:"departure_time,omitempty"`
	ArrivalTime      string    `json:"arrival_time,omitempty"`
	TotalSeats       int       `json:"total_seats"`
	AvailableSeats   int       `json:"available_seats"`
}

type TrainSearch struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	Date time.Time `json:"date"`
}
