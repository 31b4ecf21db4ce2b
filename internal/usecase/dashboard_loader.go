package usecase

import (
	"context"
	"time"

	"github.com/Johnsoncharless1976/zen-grid-forecaster/internal/domain/models"
	domrepo "github.com/Johnsoncharless1976/zen-grid-forecaster/internal/domain/repository"
	applogger "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/logger"
)

// DashboardLoader orchestrates one full dashboard refresh: bulk-load the
// three record sets, then score forecast accuracy over whatever loaded.
// Every call is independent; nothing is cached across invocations.
type DashboardLoader struct {
	store   domrepo.WarehouseStore
	metrics domrepo.Metrics
	l       *applogger.Logger
}

func NewDashboardLoader(store domrepo.WarehouseStore, metrics domrepo.Metrics, l *applogger.Logger) *DashboardLoader {
	return &DashboardLoader{store: store, metrics: metrics, l: l}
}

// Load runs bulk load mode. The returned data is complete on success and
// carries only statuses plus the failure message (and permission hint when it
// applies) otherwise.
func (u *DashboardLoader) Load(ctx context.Context, withBias bool) (*models.DashboardData, error) {
	start := time.Now()
	data, err := u.store.LoadBundle(ctx)
	if err != nil {
		return nil, err
	}

	if u.metrics != nil {
		u.metrics.RecordQuery("bundle", time.Since(start).Seconds())
		for _, st := range data.Statuses {
			if st.Status == models.LoadFailed {
				u.metrics.RecordQueryError(st.Entity, st.Category)
			}
		}
	}

	if !data.OK {
		return data, nil
	}

	data.Accuracy = ComputeAccuracy(data.Forecasts, withBias)
	if u.metrics != nil && !data.Accuracy.NoData {
		u.metrics.RecordAccuracy(data.Accuracy.Accuracy)
	}
	if u.l != nil {
		u.l.Info("dashboard refresh complete",
			applogger.Int("forecasts", len(data.Forecasts)),
			applogger.Bool("no_data", data.Accuracy.NoData),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return data, nil
}

// Accuracy runs the forecast query path only and scores it. Shares the
// all-or-nothing bundle so the numbers always match the dashboard view. A
// non-zero since restricts scoring to forecasts dated at or after it.
func (u *DashboardLoader) Accuracy(ctx context.Context, withBias bool, since time.Time) (*models.AccuracyReport, *models.DashboardData, error) {
	data, err := u.Load(ctx, withBias)
	if err != nil {
		return nil, nil, err
	}
	if !data.OK || since.IsZero() {
		return data.Accuracy, data, nil
	}

	recent := make([]models.ForecastRecord, 0, len(data.Forecasts))
	for _, f := range data.Forecasts {
		if !f.Date.Before(since) {
			recent = append(recent, f)
		}
	}
	return ComputeAccuracy(recent, withBias), data, nil
}
