package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"railway-system/config"
	"railway-system/internal/fares"
	"railway-system/internal/lifecycle"
	"railway-system/internal/notify"
	"railway-system/internal/status"
	"railway-system/models"
	"railway-system/monitoring"
)

type PassService struct {
	app      core.App
	notifier notify.Publisher
	monitor  *monitoring.Monitor
	cfg      *config.Config
}

func NewPassService(app core.App, notifier notify.Publisher, monitor *monitoring.Monitor, cfg *config.Config) *PassService {
	return &PassService{app: app, notifier: notifier, monitor: monitor, cfg: cfg}
}

// Apply submits a season pass application. The validity window and cost
// are computed server-side; new applications start Pending.
func (s *PassService) Apply(ctx context.Context, user *core.Record, application models.PassApplication) (*models.SeasonPass, error) {
	if application.FullName == "" || application.IDNumber == "" ||
		application.FromStation == "" || application.ToStation == "" {
		return nil, fmt.Errorf("full name, ID number and route information are required: %w", status.ErrValidation)
	}

	passType := fares.NormalizePassType(application.PassType)
	class := fares.NormalizeClass(application.Class)

	validFrom := application.ValidFrom
	if validFrom.IsZero() {
		// An omitted start date means "starting now". Malformed dates are
		// rejected earlier, at request binding.
		validFrom = time.Now().UTC()
	}
	validTo := fares.ValidityEnd(validFrom, passType)
	cost := fares.PassCost(passType, class)

	collection, err := s.app.FindCollectionByNameOrId("season_passes")
	if err != nil {
		return nil, fmt.Errorf("find season_passes collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("user_id", user.Id)
	record.Set("user_email", user.Email())
	record.Set("full_name", application.FullName)
	record.Set("id_number", application.IDNumber)
	record.Set("phone", application.Phone)
	record.Set("from_station", application.FromStation)
	record.Set("to_station", application.ToStation)
	record.Set("pass_type", passType)
	record.Set("class", class)
	record.Set("valid_from", validFrom)
	record.Set("valid_to", validTo)
	record.Set("status", models.PassPending)
	record.Set("cost", cost.InexactFloat64())
	record.Set("comments", application.Comments)

	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("save pass application: %w", err)
	}

	s.monitor.TrackPassApplication(passType)
	s.notifier.Publish(ctx, notify.UserChannel(user.Id), map[string]any{
		"type":    "pass_application_received",
		"pass_id": record.Id,
	})

	return passFromRecord(record), nil
}

// Get returns one pass. Passengers may only read their own.
func (s *PassService) Get(ctx context.Context, actor *core.Record, passID string, asAdmin bool) (*models.SeasonPass, error) {
	record, err := s.app.FindRecordById("season_passes", passID)
	if err != nil {
		return nil, status.ErrPassNotFound
	}
	if !asAdmin && record.GetString("user_id") != actor.Id {
		return nil, status.ErrNotOwner
	}
	return passFromRecord(record), nil
}

// ListForUser returns the user's passes, newest first. An overdue Active
// pass is reported as Expired; the sweeper persists the flip later.
func (s *PassService) ListForUser(ctx context.Context, userID string) ([]*models.SeasonPass, error) {
	records, err := s.app.FindRecordsByFilter(
		"season_passes",
		"user_id = {:userId}",
		"-created",
		200,
		0,
		dbx.Params{"userId": userID},
	)
	if err != nil {
		return nil, fmt.Errorf("list passes: %w", err)
	}

	passes := make([]*models.SeasonPass, 0, len(records))
	for _, r := range records {
		passes = append(passes, passFromRecord(r))
	}
	return passes, nil
}

// ListAll returns every pass for the admin console, newest first.
func (s *PassService) ListAll(ctx context.Context) ([]*models.SeasonPass, error) {
	records, err := s.app.FindRecordsByFilter("season_passes", "id != ''", "-created", 500, 0)
	if err != nil {
		return nil, fmt.Errorf("list passes: %w", err)
	}

	passes := make([]*models.SeasonPass, 0, len(records))
	for _, r := range records {
		passes = append(passes, passFromRecord(r))
	}
	return passes, nil
}

// UpdateStatus moves a pass to a new lifecycle state (admin only).
// Approving a Pending pass makes it Active without touching cost or dates.
func (s *PassService) UpdateStatus(ctx context.Context, passID, newStatus string) error {
	record, err := s.app.FindRecordById("season_passes", passID)
	if err != nil {
		return status.ErrPassNotFound
	}

	if err := lifecycle.Pass.Transition(record.GetString("status"), newStatus); err != nil {
		return err
	}

	if newStatus == models.PassCancelled {
		record.Set("cancelled_at", types.NowDateTime())
	}
	record.Set("status", newStatus)
	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("update pass status: %w", err)
	}

	s.monitor.TrackTransition("season_pass", newStatus)
	s.notifier.Publish(ctx, notify.UserChannel(record.GetString("user_id")), map[string]any{
		"type":    "pass_status",
		"pass_id": record.Id,
		"status":  newStatus,
	})
	return nil
}

// Renew issues a new pass continuing an Active or Expired one. The new
// window starts the day after the old expiry unless a custom start date
// is given; the old pass is flipped to Expired if it was still Active.
func (s *PassService) Renew(ctx context.Context, actor *core.Record, passID string, req models.PassRenewal, asAdmin bool) (*models.SeasonPass, error) {
	var renewed *core.Record

	err := s.app.RunInTransaction(func(tx core.App) error {
		old, err := tx.FindRecordById("season_passes", passID)
		if err != nil {
			return status.ErrPassNotFound
		}
		if !asAdmin && old.GetString("user_id") != actor.Id {
			return status.ErrNotOwner
		}

		current := effectiveStatus(old)
		if current != models.PassActive && current != models.PassExpired {
			return status.ErrNotRenewable
		}

		validFrom := req.ValidFrom
		if validFrom.IsZero() {
			validFrom = old.GetDateTime("valid_to").Time().AddDate(0, 0, 1)
		}
		passType := req.PassType
		if passType == "" {
			passType = old.GetString("pass_type")
		}
		validTo := fares.ValidityEnd(validFrom, passType)
		cost := fares.PassCost(passType, old.GetString("class"))

		collection, err := tx.FindCollectionByNameOrId("season_passes")
		if err != nil {
			return fmt.Errorf("find season_passes collection: %w", err)
		}

		renewed = core.NewRecord(collection)
		renewed.Set("user_id", old.GetString("user_id"))
		renewed.Set("user_email", old.GetString("user_email"))
		renewed.Set("full_name", old.GetString("full_name"))
		renewed.Set("id_number", old.GetString("id_number"))
		renewed.Set("phone", old.GetString("phone"))
		renewed.Set("from_station", old.GetString("from_station"))
		renewed.Set("to_station", old.GetString("to_station"))
		renewed.Set("pass_type", passType)
		renewed.Set("class", old.GetString("class"))
		renewed.Set("valid_from", validFrom)
		renewed.Set("valid_to", validTo)
		renewed.Set("status", models.PassActive)
		renewed.Set("cost", cost.InexactFloat64())
		renewed.Set("comments", old.GetString("comments"))
		renewed.Set("renewed_from", old.Id)
		if err := tx.Save(renewed); err != nil {
			return fmt.Errorf("save renewed pass: %w", err)
		}

		if old.GetString("status") == models.PassActive {
			old.Set("status", models.PassExpired)
			if err := tx.Save(old); err != nil {
				return fmt.Errorf("expire old pass: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.monitor.TrackTransition("season_pass", models.PassActive)
	s.notifier.Publish(ctx, notify.UserChannel(renewed.GetString("user_id")), map[string]any{
		"type":    "pass_renewed",
		"pass_id": renewed.Id,
	})

	return passFromRecord(renewed), nil
}

// ExpireOverdue persists the Expired status for every Active pass whose
// validity window has closed. Returns the number of passes flipped.
func (s *PassService) ExpireOverdue(ctx context.Context) (int, error) {
	now := time.Now().UTC().Format(types.DefaultDateLayout)
	records, err := s.app.FindRecordsByFilter(
		"season_passes",
		"status = {:active} && valid_to < {:now}",
		"valid_to",
		500,
		0,
		dbx.Params{"active": models.PassActive, "now": now},
	)
	if err != nil {
		return 0, fmt.Errorf("find overdue passes: %w", err)
	}

	expired := 0
	for _, record := range records {
		record.Set("status", models.PassExpired)
		if err := s.app.Save(record); err != nil {
			slog.Error("pass sweeper: expire pass", "pass_id", record.Id, "error", err)
			continue
		}
		expired++
		s.monitor.TrackTransition("season_pass", models.PassExpired)
	}
	return expired, nil
}

// RunExpirySweeper periodically expires overdue passes until ctx is
// cancelled.
func (s *PassService) RunExpirySweeper(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.PassExpirySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := s.ExpireOverdue(ctx); err != nil {
				slog.Error("pass sweeper: sweep failed", "error", err)
			} else if n > 0 {
				slog.Info("pass sweeper: expired passes", "count", n)
			}
		}
	}
}

// effectiveStatus reports an overdue Active pass as Expired without
// writing the record.
func effectiveStatus(r *core.Record) string {
	st := r.GetString("status")
	if st == models.PassActive && r.GetDateTime("valid_to").Time().Before(time.Now().UTC()) {
		return models.PassExpired
	}
	return st
}

func passFromRecord(r *core.Record) *models.SeasonPass {
	return &models.SeasonPass{
		ID:          r.Id,
		UserID:      r.GetString("user_id"),
		UserEmail:   r.GetString("user_email"),
		FullName:    r.GetString("full_name"),
		IDNumber:    r.GetString("id_number"),
		Phone:       r.GetString("phone"),
		FromStation: r.GetString("from_station"),
		ToStation:   r.GetString("to_station"),
		PassType:    r.GetString("pass_type"),
		Class:       r.GetString("class"),
		ValidFrom:   r.GetDateTime("valid_from").Time(),
		ValidTo:     r.GetDateTime("valid_to").Time(),
		Status:      effectiveStatus(r),
		Cost:        r.GetFloat("cost"),
		Comments:    r.GetString("comments"),
		RenewedFrom: r.GetString("renewed_from"),
		CancelledAt: optTime(r, "cancelled_at"),
		CreatedAt:   r.GetDateTime("created").Time(),
	}
}
