package monitoring

import (
	"context"
	"log/slog"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"railway-system/models"
)

var (
	bookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_bookings_total",
			Help: "Total ticket bookings by outcome",
		},
		[]string{"status"},
	)

	cargoShipmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cargo_shipments_total",
			Help: "Total cargo shipments booked by cargo type",
		},
		[]string{"cargo_type"},
	)

	passApplicationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "season_pass_applications_total",
			Help: "Total season pass applications by plan",
		},
		[]string{"pass_type"},
	)

	complaintsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "complaints_total",
			Help: "Total complaints submitted by category",
		},
		[]string{"type"},
	)

	statusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "status_transitions_total",
			Help: "Entity status transitions applied",
		},
		[]string{"entity", "to_status"},
	)

	pendingComplaints = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pending_complaints",
			Help: "Complaints currently awaiting a first response",
		},
	)

	activePasses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_season_passes",
			Help: "Season passes currently in Active status",
		},
	)
)

type Monitor struct {
	app      core.App
	interval time.Duration
}

func NewMonitor(app core.App, interval time.Duration) *Monitor {
	return &Monitor{app: app, interval: interval}
}

// Collect periodically refreshes the backlog gauges until ctx is cancelled.
func (m *Monitor) Collect(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.collectBacklog()
		}
	}
}

func (m *Monitor) collectBacklog() {
	if n, err := m.app.CountRecords("complaints", dbx.HashExp{"status": models.ComplaintPending}); err == nil {
		pendingComplaints.Set(float64(n))
	} else {
		slog.Error("metrics: count pending complaints", "error", err)
	}

	if n, err := m.app.CountRecords("season_passes", dbx.HashExp{"status": models.PassActive}); err == nil {
		activePasses.Set(float64(n))
	} else {
		slog.Error("metrics: count active passes", "error", err)
	}
}

func (m *Monitor) TrackBooking(status string) {
	bookingsTotal.WithLabelValues(status).Inc()
}

func (m *Monitor) TrackCargoBooked(cargoType string) {
	cargoShipmentsTotal.WithLabelValues(cargoType).Inc()
}

func (m *Monitor) TrackPassApplication(passType string) {
	passApplicationsTotal.WithLabelValues(passType).Inc()
}

func (m *Monitor) TrackComplaint(complaintType string) {
	complaintsTotal.WithLabelValues(complaintType).Inc()
}

func (m *Monitor) TrackTransition(entity, toStatus string) {
	statusTransitionsTotal.WithLabelValues(entity, toStatus).Inc()
}
