package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/Johnsoncharless1976/zen-grid-forecaster/internal/domain/models"
	domrepo "github.com/Johnsoncharless1976/zen-grid-forecaster/internal/domain/repository"
	applogger "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/logger"
)

// CandidateTables is the fixed probe list. FORECAST_DAILY_V2 is probed even
// though the dashboard never reads it; operators use it to tell a migration
// gap from a grants gap.
var CandidateTables = []string{
	"FORECAST_POSTMORTEM",
	"DAILY_MARKET_DATA",
	"FORECAST_SUMMARY",
	"FORECAST_DAILY_V2",
}

// tableKeywords drives the likely-relevant highlight over discovered tables.
var tableKeywords = []string{"FORECAST", "MARKET", "POST"}

// DiagnosticsRunner implements probe mode: per-table access checks, schema
// discovery and the resolved session context, each failing independently.
type DiagnosticsRunner struct {
	store   domrepo.WarehouseStore
	metrics domrepo.Metrics
	l       *applogger.Logger
	errors  *applogger.LogCollector
}

func NewDiagnosticsRunner(store domrepo.WarehouseStore, metrics domrepo.Metrics, l *applogger.Logger, errors *applogger.LogCollector) *DiagnosticsRunner {
	return &DiagnosticsRunner{store: store, metrics: metrics, l: l, errors: errors}
}

// Run executes the full probe sequence. Nothing here aborts on a single
// failure; every section of the report fills in or records its own error.
func (u *DiagnosticsRunner) Run(ctx context.Context, withErrors bool) *models.DiagnosticReport {
	report := &models.DiagnosticReport{}

	sessCtx, err := u.store.CurrentContext(ctx)
	if err != nil {
		report.ContextError = err.Error()
	} else {
		report.Context = sessCtx
	}

	tables, err := u.store.ListTables(ctx)
	if err != nil {
		report.DiscoveryNote = err.Error()
	} else {
		report.Tables = tables
		report.Matched = MatchRelevantTables(tables)
		if len(report.Matched) == 0 {
			report.DiscoveryNote = "no obvious market/forecast tables found"
		}
	}

	report.Probes = u.store.ProbeTables(ctx, CandidateTables)
	if u.metrics != nil {
		for _, p := range report.Probes {
			u.metrics.RecordProbe(p.Table, p.OK)
		}
	}

	if withErrors && u.errors != nil {
		for _, e := range u.errors.Snapshot() {
			report.RecentErrors = append(report.RecentErrors, models.ErrorEntry{
				Level:     e.Level,
				Message:   e.Message,
				Caller:    e.Caller,
				Count:     e.Count,
				FirstSeen: e.FirstSeen.Format(time.RFC3339),
				LastSeen:  e.LastSeen.Format(time.RFC3339),
			})
		}
	}

	if u.l != nil {
		ok := 0
		for _, p := range report.Probes {
			if p.OK {
				ok++
			}
		}
		u.l.Info("diagnostics complete",
			applogger.Int("tables_found", len(report.Tables)),
			applogger.Int("probes_ok", ok),
			applogger.Int("probes_failed", len(report.Probes)-ok),
		)
	}
	return report
}

// MatchRelevantTables applies the case-insensitive keyword filter over
// discovered table names.
func MatchRelevantTables(tables []models.SchemaTable) []models.SchemaTable {
	out := make([]models.SchemaTable, 0, len(tables))
	for _, t := range tables {
		name := strings.ToUpper(t.Name)
		for _, kw := range tableKeywords {
			if strings.Contains(name, kw) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
