package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"railway-system/config"
	"railway-system/internal/fares"
	"railway-system/internal/lifecycle"
	"railway-system/internal/notify"
	"railway-system/internal/status"
	"railway-system/models"
	"railway-system/monitoring"
	"railway-system/utils"
)

type CargoService struct {
	app      core.App
	redis    *redis.Client
	notifier notify.Publisher
	monitor  *monitoring.Monitor
	cfg      *config.Config
}

func NewCargoService(app core.App, redisClient *redis.Client, notifier notify.Publisher, monitor *monitoring.Monitor, cfg *config.Config) *CargoService {
	return &CargoService{
		app:      app,
		redis:    redisClient,
		notifier: notifier,
		monitor:  monitor,
		cfg:      cfg,
	}
}

func trackingCacheKey(trackingNumber string) string {
	return fmt.Sprintf("cargo:tracking:%s", trackingNumber)
}

// Book creates a cargo shipment. It returns the stored shipment and the
// one-time pickup code the recipient must present at delivery; only a
// bcrypt hash of the code is persisted.
func (s *CargoService) Book(ctx context.Context, user *core.Record, req models.CargoRequest) (*models.Cargo, string, error) {
	if req.From == "" || req.To == "" || req.ShippingDate.IsZero() {
		return nil, "", fmt.Errorf("origin, destination and shipping date are required: %w", status.ErrValidation)
	}

	weight := fares.NormalizeWeight(req.Weight)
	cargoType := fares.NormalizeCargoType(req.CargoType)
	cost := fares.CargoCost(weight, cargoType)

	trackingNumber, err := s.allocateTrackingNumber()
	if err != nil {
		return nil, "", err
	}

	pickupCode, err := utils.GenerateOTP(s.cfg.PickupCodeLength)
	if err != nil {
		return nil, "", fmt.Errorf("generate pickup code: %w", err)
	}
	codeHash, err := bcrypt.GenerateFromPassword([]byte(pickupCode), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash pickup code: %w", err)
	}

	collection, err := s.app.FindCollectionByNameOrId("cargos")
	if err != nil {
		return nil, "", fmt.Errorf("find cargos collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("user_id", user.Id)
	record.Set("user_email", user.Email())
	record.Set("sender_name", orDefault(req.SenderName, "Not Provided"))
	record.Set("recipient_name", orDefault(req.RecipientName, "Not Provided"))
	record.Set("from", req.From)
	record.Set("to", req.To)
	record.Set("shipping_date", req.ShippingDate)
	record.Set("cargo_type", cargoType)
	record.Set("weight", weight)
	record.Set("special_instructions", req.SpecialInstructions)
	record.Set("tracking_number", trackingNumber)
	record.Set("pickup_code_hash", string(codeHash))
	record.Set("status", models.CargoPending)
	record.Set("cost", cost.InexactFloat64())

	if err := s.app.Save(record); err != nil {
		return nil, "", fmt.Errorf("save cargo booking: %w", err)
	}

	s.cacheTracking(ctx, trackingNumber, record.Id)
	s.monitor.TrackCargoBooked(cargoType)
	s.notifier.Publish(ctx, notify.UserChannel(user.Id), map[string]any{
		"type":            "cargo_booked",
		"cargo_id":        record.Id,
		"tracking_number": trackingNumber,
	})

	return cargoFromRecord(record), pickupCode, nil
}

// allocateTrackingNumber draws candidates until one is free. The unique
// index on tracking_number still backstops a race between two bookings.
func (s *CargoService) allocateTrackingNumber() (string, error) {
	for attempt := 0; attempt < s.cfg.TrackingMaxAttempts; attempt++ {
		candidate, err := fares.TrackingNumber()
		if err != nil {
			return "", fmt.Errorf("generate tracking number: %w", err)
		}

		_, err = s.app.FindFirstRecordByFilter(
			"cargos",
			"tracking_number = {:tn}",
			dbx.Params{"tn": candidate},
		)
		if errors.Is(err, sql.ErrNoRows) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("check tracking number: %w", err)
		}
		// Collision, draw again.
	}
	return "", status.ErrTrackingExhausted
}

// Track looks up a shipment by tracking number, consulting the Redis
// cache first.
func (s *CargoService) Track(ctx context.Context, trackingNumber string) (*models.Cargo, error) {
	if trackingNumber == "" {
		return nil, fmt.Errorf("tracking number is required: %w", status.ErrValidation)
	}

	if id, err := s.redis.Get(ctx, trackingCacheKey(trackingNumber)).Result(); err == nil {
		if record, err := s.app.FindRecordById("cargos", id); err == nil {
			return cargoFromRecord(record), nil
		}
	}

	record, err := s.app.FindFirstRecordByFilter(
		"cargos",
		"tracking_number = {:tn}",
		dbx.Params{"tn": trackingNumber},
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, status.ErrCargoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("track cargo: %w", err)
	}

	s.cacheTracking(ctx, trackingNumber, record.Id)
	return cargoFromRecord(record), nil
}

func (s *CargoService) cacheTracking(ctx context.Context, trackingNumber, recordID string) {
	if err := s.redis.Set(ctx, trackingCacheKey(trackingNumber), recordID, s.cfg.TrackingCacheTTL).Err(); err != nil {
		slog.Error("cargo: cache tracking number", "error", err)
	}
}

// Cancel lets the owner cancel a shipment that has not been delivered.
func (s *CargoService) Cancel(ctx context.Context, actor *core.Record, cargoID string) error {
	record, err := s.app.FindRecordById("cargos", cargoID)
	if err != nil {
		return status.ErrCargoNotFound
	}
	if record.GetString("user_id") != actor.Id {
		return status.ErrNotOwner
	}

	return s.applyTransition(ctx, record, models.CargoCancelled, "")
}

// UpdateStatus moves a shipment to a new lifecycle state (admin only).
// Marking a shipment Delivered requires the recipient's pickup code.
func (s *CargoService) UpdateStatus(ctx context.Context, cargoID, newStatus, pickupCode string) error {
	record, err := s.app.FindRecordById("cargos", cargoID)
	if err != nil {
		return status.ErrCargoNotFound
	}

	return s.applyTransition(ctx, record, newStatus, pickupCode)
}

func (s *CargoService) applyTransition(ctx context.Context, record *core.Record, newStatus, pickupCode string) error {
	if err := lifecycle.Cargo.Transition(record.GetString("status"), newStatus); err != nil {
		return err
	}

	if newStatus == models.CargoDelivered {
		if hash := record.GetString("pickup_code_hash"); hash != "" {
			if bcrypt.CompareHashAndPassword([]byte(hash), []byte(pickupCode)) != nil {
				return status.ErrInvalidPickupCode
			}
		}
		record.Set("delivered_at", types.NowDateTime())
	}
	if newStatus == models.CargoCancelled {
		record.Set("cancelled_at", types.NowDateTime())
	}

	record.Set("status", newStatus)
	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("update cargo status: %w", err)
	}

	s.monitor.TrackTransition("cargo", newStatus)
	s.notifier.Publish(ctx, notify.UserChannel(record.GetString("user_id")), map[string]any{
		"type":            "cargo_status",
		"cargo_id":        record.Id,
		"tracking_number": record.GetString("tracking_number"),
		"status":          newStatus,
	})
	return nil
}

// ListForUser returns the user's shipments, newest first.
func (s *CargoService) ListForUser(ctx context.Context, userID string) ([]*models.Cargo, error) {
	records, err := s.app.FindRecordsByFilter(
		"cargos",
		"user_id = {:userId}",
		"-created",
		200,
		0,
		dbx.Params{"userId": userID},
	)
	if err != nil {
		return nil, fmt.Errorf("list cargos: %w", err)
	}

	cargos := make([]*models.Cargo, 0, len(records))
	for _, r := range records {
		cargos = append(cargos, cargoFromRecord(r))
	}
	return cargos, nil
}

// ListAll returns every shipment for the admin console, newest first.
func (s *CargoService) ListAll(ctx context.Context) ([]*models.Cargo, error) {
	records, err := s.app.FindRecordsByFilter("cargos", "id != ''", "-created", 500, 0)
	if err != nil {
		return nil, fmt.Errorf("list cargos: %w", err)
	}

	cargos := make([]*models.Cargo, 0, len(records))
	for _, r := range records {
		cargos = append(cargos, cargoFromRecord(r))
	}
	return cargos, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func cargoFromRecord(r *core.Record) *models.Cargo {
	return &models.Cargo{
		ID:                  r.Id,
		UserID:              r.GetString("user_id"),
		UserEmail:           r.GetString("user_email"),
		SenderName:          r.GetString("sender_name"),
		RecipientName:       r.GetString("recipient_name"),
		From:                r.GetString("from"),
		To:                  r.GetString("to"),
		ShippingDate:        r.GetDateTime("shipping_date").Time(),
		CargoType:           r.GetString("cargo_type"),
		Weight:              r.GetFloat("weight"),
		SpecialInstructions: r.GetString("special_instructions"),
		TrackingNumber:      r.GetString("tracking_number"),
		Status:              r.GetString("status"),
		Cost:                r.GetFloat("cost"),
		DeliveredAt:         optTime(r, "delivered_at"),
		CancelledAt:         optTime(r, "cancelled_at"),
		CreatedAt:           r.GetDateTime("created").Time(),
	}
}
