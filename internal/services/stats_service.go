package services

import (
	"context"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"railway-system/models"
)

// StatsService aggregates the counters shown on the admin overview page.
type StatsService struct {
	app core.App
}

func NewStatsService(app core.App) *StatsService {
	return &StatsService{app: app}
}

func (s *StatsService) Overview(ctx context.Context) (map[string]any, error) {
	today := startOfToday()

	var upcomingTrains int64
	err := s.app.DB().
		Select("count(*)").
		From("trains").
		Where(dbx.NewExp("departure_date >= {:today}", dbx.Params{"today": today})).
		Row(&upcomingTrains)
	if err != nil {
		return nil, fmt.Errorf("count upcoming trains: %w", err)
	}

	var activeBookings int64
	err = s.app.DB().
		Select("count(*)").
		From("bookings").
		Where(dbx.HashExp{"status": models.BookingConfirmed}).
		AndWhere(dbx.NewExp("date >= {:today}", dbx.Params{"today": today})).
		Row(&activeBookings)
	if err != nil {
		return nil, fmt.Errorf("count active bookings: %w", err)
	}

	var passengers int64
	err = s.app.DB().
		Select("count(*)").
		From("users").
		Where(dbx.NewExp("role != {:role}", dbx.Params{"role": "admin"})).
		Row(&passengers)
	if err != nil {
		return nil, fmt.Errorf("count passengers: %w", err)
	}

	var pendingComplaints int64
	err = s.app.DB().
		Select("count(*)").
		From("complaints").
		Where(dbx.HashExp{"status": models.ComplaintPending}).
		Row(&pendingComplaints)
	if err != nil {
		return nil, fmt.Errorf("count pending complaints: %w", err)
	}

	var pendingPasses int64
	err = s.app.DB().
		Select("count(*)").
		From("season_passes").
		Where(dbx.HashExp{"status": models.PassPending}).
		Row(&pendingPasses)
	if err != nil {
		return nil, fmt.Errorf("count pending passes: %w", err)
	}

	return map[string]any{
		"upcoming_trains":    upcomingTrains,
		"active_bookings":    activeBookings,
		"passengers":         passengers,
		"pending_complaints": pendingComplaints,
		"pending_passes":     pendingPasses,
	}, nil
}
