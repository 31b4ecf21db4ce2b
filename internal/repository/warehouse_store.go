package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Johnsoncharless1976/zen-grid-forecaster/internal/domain/models"
	applogger "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/logger"
	pkgsf "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/snowflake"
)

// Logical entity names used in statuses, logs and metrics.
const (
	EntityForecast = "forecast"
	EntityMarket   = "market"
	EntitySummary  = "summary"
)

// Row ceilings per entity. Display-volume bound, not a correctness constraint.
const (
	forecastRowLimit = 100
	marketRowLimit   = 100
	summaryRowLimit  = 50
)

// PermissionHint guides the operator toward a grants fix when a load fails
// with an access error.
const PermissionHint = "check that the connecting role has USAGE on the database, schema and warehouse, and SELECT on the dashboard tables"

// StoreConfig pins the database/schema pair the fixed queries are qualified
// with, plus the warehouse the session must run on.
type StoreConfig struct {
	Database  string
	Schema    string
	Warehouse string
}

// SessionSource opens a fresh connection for one operation and returns the
// pool plus its close func. Every refresh starts from a new connection;
// nothing lives across invocations.
type SessionSource func(context.Context) (*sql.DB, func() error, error)

// PoolSource wraps an existing *sql.DB as a SessionSource. Used by tests.
func PoolSource(db *sql.DB) SessionSource {
	return func(context.Context) (*sql.DB, func() error, error) {
		return db, func() error { return nil }, nil
	}
}

// WarehouseStore runs the fixed read-only query set against Snowflake. Every
// operation acquires its own connection and session and releases both on all
// exit paths.
type WarehouseStore struct {
	source SessionSource
	cfg    StoreConfig
	l      *applogger.Logger

	forecastQuery string
	marketQuery   string
	summaryQuery  string
}

func NewWarehouseStore(source SessionSource, cfg StoreConfig) *WarehouseStore {
	qualify := func(table string) string {
		return fmt.Sprintf("%s.%s.%s", cfg.Database, cfg.Schema, table)
	}
	return &WarehouseStore{
		source: source,
		cfg:    cfg,
		forecastQuery: fmt.Sprintf(
			`SELECT DATE, SYMBOL, FORECAST_BIAS, ACTUAL_CLOSE, HIT, LOAD_TIMESTAMP FROM %s ORDER BY DATE DESC LIMIT %d`,
			qualify("FORECAST_POSTMORTEM"), forecastRowLimit),
		marketQuery: fmt.Sprintf(
			`SELECT DATE, SPX_CLOSE, ES_CLOSE, VIX_CLOSE, VVIX_CLOSE FROM %s ORDER BY DATE DESC LIMIT %d`,
			qualify("DAILY_MARKET_DATA"), marketRowLimit),
		summaryQuery: fmt.Sprintf(
			`SELECT DATE, SYMBOL, FORECAST_BIAS, SUPPORT_LEVELS, RESISTANCE_LEVELS, ATM_STRADDLE, NOTES FROM %s ORDER BY DATE DESC LIMIT %d`,
			qualify("FORECAST_SUMMARY"), summaryRowLimit),
	}
}

// SetLogger injects a structured logger.
func (s *WarehouseStore) SetLogger(l *applogger.Logger) { s.l = l }

// LoadBundle runs context-setting plus the three fixed queries on one
// session. All-or-nothing: on any failure no rows are surfaced, while the
// per-entity statuses keep what happened observable.
func (s *WarehouseStore) LoadBundle(ctx context.Context) (*models.DashboardData, error) {
	start := time.Now()
	out := &models.DashboardData{
		Statuses: []models.EntityStatus{
			{Entity: EntityForecast, Status: models.LoadSkipped},
			{Entity: EntityMarket, Status: models.LoadSkipped},
			{Entity: EntitySummary, Status: models.LoadSkipped},
		},
	}

	db, closeConn, err := s.source(ctx)
	if err != nil {
		if s.l != nil {
			s.l.Error("warehouse connection error", applogger.Error(err))
		}
		s.failBundle(out, err)
		return out, nil
	}
	defer closeConn()

	session, err := pkgsf.NewSession(ctx, db)
	if err != nil {
		s.failBundle(out, err)
		return out, nil
	}
	defer session.Close()

	if err := session.ApplyContext(ctx, s.cfg.Database, s.cfg.Schema, s.cfg.Warehouse); err != nil {
		if s.l != nil {
			s.l.Error("warehouse session context error", applogger.Error(err))
		}
		s.failBundle(out, err)
		return out, nil
	}

	loaders := []struct {
		entity string
		load   func(context.Context, *pkgsf.Session) (int, error)
	}{
		{EntityForecast, func(ctx context.Context, sess *pkgsf.Session) (int, error) {
			rows, err := s.loadForecasts(ctx, sess)
			out.Forecasts = rows
			return len(rows), err
		}},
		{EntityMarket, func(ctx context.Context, sess *pkgsf.Session) (int, error) {
			rows, err := s.loadMarket(ctx, sess)
			out.Market = rows
			return len(rows), err
		}},
		{EntitySummary, func(ctx context.Context, sess *pkgsf.Session) (int, error) {
			rows, err := s.loadSummaries(ctx, sess)
			out.Summaries = rows
			return len(rows), err
		}},
	}

	for i, ld := range loaders {
		n, err := ld.load(ctx, session)
		if err != nil {
			if s.l != nil {
				s.l.Error("warehouse bundle query error",
					applogger.String("entity", ld.entity),
					applogger.String("category", string(pkgsf.Classify(err))),
					applogger.Error(err),
				)
			}
			st := &out.Statuses[i]
			st.Status = models.LoadFailed
			st.Error = err.Error()
			st.Category = string(pkgsf.Classify(err))
			if pkgsf.IsPermission(err) {
				st.Hint = PermissionHint
			}
			// discard everything loaded so far; the three tables must stay
			// consistent with one another
			out.Forecasts, out.Market, out.Summaries = nil, nil, nil
			out.OK = false
			out.Error = err.Error()
			out.Hint = st.Hint
			return out, nil
		}
		out.Statuses[i].Status = models.LoadLoaded
		out.Statuses[i].Rows = n
	}

	out.OK = true
	if s.l != nil {
		s.l.Info("warehouse bundle loaded",
			applogger.Int("forecast_rows", len(out.Forecasts)),
			applogger.Int("market_rows", len(out.Market)),
			applogger.Int("summary_rows", len(out.Summaries)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

// failBundle records a failure that happened before any query ran.
func (s *WarehouseStore) failBundle(out *models.DashboardData, err error) {
	out.OK = false
	out.Error = err.Error()
	if pkgsf.IsPermission(err) {
		out.Hint = PermissionHint
	}
	cat := string(pkgsf.Classify(err))
	for i := range out.Statuses {
		out.Statuses[i].Category = cat
	}
}

func (s *WarehouseStore) loadForecasts(ctx context.Context, sess *pkgsf.Session) ([]models.ForecastRecord, error) {
	rows, err := sess.QueryContext(ctx, s.forecastQuery)
	if err != nil {
		return nil, fmt.Errorf("load forecasts: %w", err)
	}
	defer rows.Close()

	// row cap holds locally even if the LIMIT clause is not honored
	out := make([]models.ForecastRecord, 0, forecastRowLimit)
	for len(out) < forecastRowLimit && rows.Next() {
		var r models.ForecastRecord
		if err := rows.Scan(&r.Date, &r.Symbol, &r.ForecastBias, &r.ActualClose, &r.Hit, &r.LoadTimestamp); err != nil {
			return nil, fmt.Errorf("scan forecast: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("forecast rows: %w", err)
	}
	return out, nil
}

func (s *WarehouseStore) loadMarket(ctx context.Context, sess *pkgsf.Session) ([]models.MarketRecord, error) {
	rows, err := sess.QueryContext(ctx, s.marketQuery)
	if err != nil {
		return nil, fmt.Errorf("load market: %w", err)
	}
	defer rows.Close()

	out := make([]models.MarketRecord, 0, marketRowLimit)
	for len(out) < marketRowLimit && rows.Next() {
		var (
			r                  models.MarketRecord
			spx, es, vix, vvix sql.NullFloat64
		)
		if err := rows.Scan(&r.Date, &spx, &es, &vix, &vvix); err != nil {
			return nil, fmt.Errorf("scan market: %w", err)
		}
		r.SPXClose = nullableFloat(spx)
		r.ESClose = nullableFloat(es)
		r.VIXClose = nullableFloat(vix)
		r.VVIXClose = nullableFloat(vvix)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("market rows: %w", err)
	}
	return out, nil
}

func (s *WarehouseStore) loadSummaries(ctx context.Context, sess *pkgsf.Session) ([]models.SummaryRecord, error) {
	rows, err := sess.QueryContext(ctx, s.summaryQuery)
	if err != nil {
		return nil, fmt.Errorf("load summaries: %w", err)
	}
	defer rows.Close()

	out := make([]models.SummaryRecord, 0, summaryRowLimit)
	for len(out) < summaryRowLimit && rows.Next() {
		var (
			r        models.SummaryRecord
			straddle sql.NullFloat64
			notes    sql.NullString
		)
		if err := rows.Scan(&r.Date, &r.Symbol, &r.ForecastBias, &r.Support, &r.Resistance, &straddle, &notes); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		r.ATMStraddle = nullableFloat(straddle)
		r.Notes = notes.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summary rows: %w", err)
	}
	return out, nil
}

// ProbeTables issues one COUNT(*) per candidate on a shared session. A failed
// probe records its error and the remaining probes still run. If no session
// can be acquired, every candidate reports that failure so the result always
// has one entry per candidate.
func (s *WarehouseStore) ProbeTables(ctx context.Context, tables []string) []models.TableProbe {
	probes := make([]models.TableProbe, 0, len(tables))
	failAll := func(err error) []models.TableProbe {
		for _, t := range tables {
			probes = append(probes, models.TableProbe{
				Table:    t,
				OK:       false,
				Error:    err.Error(),
				Category: string(pkgsf.Classify(err)),
			})
		}
		return probes
	}

	db, closeConn, err := s.source(ctx)
	if err != nil {
		return failAll(err)
	}
	defer closeConn()

	session, err := pkgsf.NewSession(ctx, db)
	if err != nil {
		return failAll(err)
	}
	defer session.Close()

	if err := session.ApplyContext(ctx, s.cfg.Database, s.cfg.Schema, s.cfg.Warehouse); err != nil && s.l != nil {
		// context errors show up per probe anyway; log once for the operator
		s.l.Warn("probe session context error", applogger.Error(err))
	}

	for _, t := range tables {
		probe := models.TableProbe{Table: t}
		var count int64
		q := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, t)
		if err := session.QueryRowContext(ctx, q).Scan(&count); err != nil {
			probe.OK = false
			probe.Error = err.Error()
			probe.Category = string(pkgsf.Classify(err))
		} else {
			probe.OK = true
			probe.RowCount = count
		}
		probes = append(probes, probe)
	}
	return probes
}

// ListTables discovers tables in the active schema via SHOW TABLES plus a
// RESULT_SCAN projection, which keeps the scan independent of SHOW's column
// layout across Snowflake releases.
func (s *WarehouseStore) ListTables(ctx context.Context) ([]models.SchemaTable, error) {
	db, closeConn, err := s.source(ctx)
	if err != nil {
		return nil, err
	}
	defer closeConn()

	session, err := pkgsf.NewSession(ctx, db)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	if err := session.ApplyContext(ctx, s.cfg.Database, s.cfg.Schema, s.cfg.Warehouse); err != nil {
		return nil, err
	}

	if _, err := session.ExecContext(ctx, `SHOW TABLES IN SCHEMA`); err != nil {
		return nil, fmt.Errorf("show tables: %w", err)
	}
	rows, err := session.QueryContext(ctx,
		`SELECT "name", "database_name", "schema_name" FROM TABLE(RESULT_SCAN(LAST_QUERY_ID()))`)
	if err != nil {
		return nil, fmt.Errorf("scan table listing: %w", err)
	}
	defer rows.Close()

	out := make([]models.SchemaTable, 0, 32)
	for rows.Next() {
		var t models.SchemaTable
		if err := rows.Scan(&t.Name, &t.Database, &t.Schema); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("table listing rows: %w", err)
	}
	return out, nil
}

// CurrentContext reports what the session actually resolved to, which is the
// first thing to check when a load sees objects "missing".
func (s *WarehouseStore) CurrentContext(ctx context.Context) (*models.SessionContext, error) {
	db, closeConn, err := s.source(ctx)
	if err != nil {
		return nil, err
	}
	defer closeConn()

	session, err := pkgsf.NewSession(ctx, db)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	if err := session.ApplyContext(ctx, s.cfg.Database, s.cfg.Schema, s.cfg.Warehouse); err != nil {
		return nil, err
	}

	var dbName, schema, wh sql.NullString
	row := session.QueryRowContext(ctx, `SELECT CURRENT_DATABASE(), CURRENT_SCHEMA(), CURRENT_WAREHOUSE()`)
	if err := row.Scan(&dbName, &schema, &wh); err != nil {
		return nil, fmt.Errorf("current context: %w", err)
	}
	return &models.SessionContext{
		Database:  dbName.String,
		Schema:    schema.String,
		Warehouse: wh.String,
	}, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
