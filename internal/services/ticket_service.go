package services

import (
	"context"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"railway-system/internal/lifecycle"
	"railway-system/internal/notify"
	"railway-system/internal/status"
	"railway-system/models"
	"railway-system/monitoring"
)

type TicketService struct {
	app      core.App
	notifier notify.Publisher
	monitor  *monitoring.Monitor
}

func NewTicketService(app core.App, notifier notify.Publisher, monitor *monitoring.Monitor) *TicketService {
	return &TicketService{app: app, notifier: notifier, monitor: monitor}
}

// Book reserves a seat on a train for the user. The seat decrement and
// booking insert run in one transaction so two passengers cannot take the
// last seat.
func (s *TicketService) Book(ctx context.Context, user *core.Record, trainID string) (*models.Booking, error) {
	if trainID == "" {
		return nil, fmt.Errorf("train is required to book a ticket: %w", status.ErrValidation)
	}

	var booking *core.Record
	err := s.app.RunInTransaction(func(tx core.App) error {
		train, err := tx.FindRecordById("trains", trainID)
		if err != nil {
			return status.ErrTrainNotFound
		}

		available := train.GetInt("available_seats")
		if available <= 0 {
			return status.ErrNoSeatsAvailable
		}
		train.Set("available_seats", available-1)
		if err := tx.Save(train); err != nil {
			return fmt.Errorf("decrement seats: %w", err)
		}

		collection, err := tx.FindCollectionByNameOrId("bookings")
		if err != nil {
			return fmt.Errorf("find bookings collection: %w", err)
		}

		booking = core.NewRecord(collection)
		booking.Set("user_id", user.Id)
		booking.Set("user_email", user.Email())
		booking.Set("train_id", train.Id)
		booking.Set("train_name", train.GetString("name"))
		booking.Set("from", train.GetString("departure_station"))
		booking.Set("to", train.GetString("arrival_station"))
		booking.Set("date", train.GetDateTime("departure_date"))
		booking.Set("status", models.BookingConfirmed)
		return tx.Save(booking)
	})
	if err != nil {
		return nil, err
	}

	s.monitor.TrackBooking(models.BookingConfirmed)
	s.notifier.Publish(ctx, notify.UserChannel(user.Id), map[string]any{
		"type":       "booking_confirmed",
		"booking_id": booking.Id,
		"train_name": booking.GetString("train_name"),
	})

	return bookingFromRecord(booking), nil
}

// Cancel flips a booking to Cancelled and returns its seat to the train.
// Admins may cancel any booking; passengers only their own.
func (s *TicketService) Cancel(ctx context.Context, actor *core.Record, bookingID string, asAdmin bool) error {
	var userID string
	err := s.app.RunInTransaction(func(tx core.App) error {
		booking, err := tx.FindRecordById("bookings", bookingID)
		if err != nil {
			return status.ErrBookingNotFound
		}
		userID = booking.GetString("user_id")
		if !asAdmin && userID != actor.Id {
			return status.ErrNotOwner
		}

		if err := lifecycle.Booking.Transition(booking.GetString("status"), models.BookingCancelled); err != nil {
			return err
		}

		booking.Set("status", models.BookingCancelled)
		booking.Set("cancelled_at", types.NowDateTime())
		if err := tx.Save(booking); err != nil {
			return fmt.Errorf("cancel booking: %w", err)
		}

		// Seat restitution. A deleted train just forfeits the seat.
		if train, err := tx.FindRecordById("trains", booking.GetString("train_id")); err == nil {
			train.Set("available_seats", train.GetInt("available_seats")+1)
			if err := tx.Save(train); err != nil {
				return fmt.Errorf("restore seat: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.monitor.TrackTransition("booking", models.BookingCancelled)
	s.notifier.Publish(ctx, notify.UserChannel(userID), map[string]any{
		"type":       "booking_cancelled",
		"booking_id": bookingID,
	})
	return nil
}

// ListForUser returns the user's bookings, newest first.
func (s *TicketService) ListForUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	records, err := s.app.FindRecordsByFilter(
		"bookings",
		"user_id = {:userId}",
		"-created",
		200,
		0,
		dbx.Params{"userId": userID},
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	bookings := make([]*models.Booking, 0, len(records))
	for _, r := range records {
		bookings = append(bookings, bookingFromRecord(r))
	}
	return bookings, nil
}

// ListAll returns every booking for the admin console, newest first.
func (s *TicketService) ListAll(ctx context.Context) ([]*models.Booking, error) {
	records, err := s.app.FindRecordsByFilter("bookings", "id != ''", "-created", 500, 0)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	bookings := make([]*models.Booking, 0, len(records))
	for _, r := range records {
		bookings = append(bookings, bookingFromRecord(r))
	}
	return bookings, nil
}

func bookingFromRecord(r *core.Record) *models.Booking {
	return &models.Booking{
		ID:          r.Id,
		UserID:      r.GetString("user_id"),
		UserEmail:   r.GetString("user_email"),
		TrainID:     r.GetString("train_id"),
		TrainName:   r.GetString("train_name"),
		From:        r.GetString("from"),
		To:          r.GetString("to"),
		Date:        r.GetDateTime("date").Time(),
		Status:      r.GetString("status"),
		CancelledAt: optTime(r, "cancelled_at"),
		BookedAt:    r.GetDateTime("created").Time(),
	}
}
