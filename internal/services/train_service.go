package services

import (
	"context"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"railway-system/internal/status"
	"railway-system/models"
)

type TrainService struct {
	app core.App
}

func NewTrainService(app core.App) *TrainService {
	return &TrainService{app: app}
}

// Upcoming lists trains departing today or later, earliest first.
func (s *TrainService) Upcoming(ctx context.Context) ([]*models.Train, error) {
	records, err := s.app.FindRecordsByFilter(
		"trains",
		"departure_date >= {:today}",
		"departure_date",
		200,
		0,
		dbx.Params{"today": startOfToday()},
	)
	if err != nil {
		return nil, fmt.Errorf("list upcoming trains: %w", err)
	}

	trains := make([]*models.Train, 0, len(records))
	for _, r := range records {
		trains = append(trains, trainFromRecord(r))
	}
	return trains, nil
}

// Search finds trains between two stations departing on the given day.
func (s *TrainService) Search(ctx context.Context, params models.TrainSearch) ([]*models.Train, error) {
	if params.From == "" || params.To == "" || params.Date.IsZero() {
		return nil, fmt.Errorf("origin, destination and travel date are required: %w", status.ErrValidation)
	}

	dayStart, dayEnd := dayBounds(params.Date)
	records, err := s.app.FindRecordsByFilter(
		"trains",
		"departure_station = {:from} && arrival_station = {:to} && departure_date >= {:dayStart} && departure_date <= {:dayEnd}",
		"departure_date",
		100,
		0,
		dbx.Params{
			"from":     params.From,
			"to":       params.To,
			"dayStart": dayStart,
			"dayEnd":   dayEnd,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("search trains: %w", err)
	}

	trains := make([]*models.Train, 0, len(records))
	for _, r := range records {
		trains = append(trains, trainFromRecord(r))
	}
	return trains, nil
}

// Create adds a new train. Available seats start equal to total seats.
func (s *TrainService) Create(ctx context.Context, train models.Train) (*models.Train, error) {
	if train.Name == "" || train.TrainNumber == "" || train.DepartureStation == "" ||
		train.ArrivalStation == "" || train.DepartureDate.IsZero() || train.TotalSeats <= 0 {
		return nil, fmt.Errorf("name, number, stations, departure date and total seats are required: %w", status.ErrValidation)
	}

	collection, err := s.app.FindCollectionByNameOrId("trains")
	if err != nil {
		return nil, fmt.Errorf("find trains collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("name", train.Name)
	record.Set("train_number", train.TrainNumber)
	record.Set("departure_station", train.DepartureStation)
	record.Set("arrival_station", train.ArrivalStation)
	record.Set("departure_date", train.DepartureDate)
	record.Set("departure_time", train.DepartureTime)
	record.Set("arrival_time", train.ArrivalTime)
	record.Set("total_seats", train.TotalSeats)
	record.Set("available_seats", train.TotalSeats)

	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("save train: %w", err)
	}
	return trainFromRecord(record), nil
}

// Update rewrites an existing train's schedule fields. Seat counters are
// only touched when total_seats changes, keeping the booked delta.
func (s *TrainService) Update(ctx context.Context, trainID string, train models.Train) (*models.Train, error) {
	record, err := s.app.FindRecordById("trains", trainID)
	if err != nil {
		return nil, status.ErrTrainNotFound
	}

	booked := record.GetInt("total_seats") - record.GetInt("available_seats")

	record.Set("name", train.Name)
	record.Set("train_number", train.TrainNumber)
	record.Set("departure_station", train.DepartureStation)
	record.Set("arrival_station", train.ArrivalStation)
	record.Set("departure_date", train.DepartureDate)
	record.Set("departure_time", train.DepartureTime)
	record.Set("arrival_time", train.ArrivalTime)
	if train.TotalSeats > 0 {
		record.Set("total_seats", train.TotalSeats)
		available := train.TotalSeats - booked
		if available < 0 {
			available = 0
		}
		record.Set("available_seats", available)
	}

	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("update train: %w", err)
	}
	return trainFromRecord(record), nil
}

func (s *TrainService) Delete(ctx context.Context, trainID string) error {
	record, err := s.app.FindRecordById("trains", trainID)
	if err != nil {
		return status.ErrTrainNotFound
	}
	if err := s.app.Delete(record); err != nil {
		return fmt.Errorf("delete train: %w", err)
	}
	return nil
}

func trainFromRecord(r *core.Record) *models.Train {
	return &models.Train{
		ID:               r.Id,
		Name:             r.GetString("name"),
		TrainNumber:      r.GetString("train_number"),
		DepartureStation: r.GetString("departure_station"),
		ArrivalStation:   r.GetString("arrival_station"),
		DepartureDate:    r.GetDateTime("departure_date").Time(),
		DepartureTime:    r.GetString("departure_time"),
		ArrivalTime:      r.GetString("arrival_time"),
		TotalSeats:       r.GetInt("total_seats"),
		AvailableSeats:   r.GetInt("available_seats"),
	}
}
