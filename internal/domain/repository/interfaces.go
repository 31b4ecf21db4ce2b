package repository

import (
	"context"

	"github.com/Johnsoncharless1976/zen-grid-forecaster/internal/domain/models"
)

// WarehouseStore is the query surface over the forecast warehouse. Every call
// acquires and releases its own session; nothing is shared across calls.
type WarehouseStore interface {
	// LoadBundle runs the fixed three-query load on one session.
	// All-or-nothing: the first failure aborts the rest of the bundle.
	LoadBundle(ctx context.Context) (*models.DashboardData, error)

	// ProbeTables issues one COUNT(*) per candidate table, independently.
	ProbeTables(ctx context.Context, tables []string) []models.TableProbe

	// ListTables discovers tables in the active schema.
	ListTables(ctx context.Context) ([]models.SchemaTable, error)

	// CurrentContext reports the resolved session context.
	CurrentContext(ctx context.Context) (*models.SessionContext, error)
}

// Metrics records operational counters for the dashboard service.
type Metrics interface {
	RecordQuery(entity string, seconds float64)
	RecordQueryError(entity, category string)
	RecordAccuracy(pct float64)
	RecordProbe(table string, ok bool)
}
