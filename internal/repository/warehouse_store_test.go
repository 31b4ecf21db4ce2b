package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Johnsoncharless1976/zen-grid-forecaster/internal/domain/models"
)

var testCfg = StoreConfig{Database: "ZEN_MARKET", Schema: "FORECASTING", Warehouse: "COMPUTE_WH"}

func newMockStore(t *testing.T) (*WarehouseStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewWarehouseStore(PoolSource(db), testCfg), mock
}

func expectSessionContext(mock sqlmock.Sqlmock) {
	mock.ExpectExec(`USE DATABASE "ZEN_MARKET"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`USE SCHEMA "FORECASTING"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`USE WAREHOUSE "COMPUTE_WH"`).WillReturnResult(sqlmock.NewResult(0, 0))
}

func forecastRows(n int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"DATE", "SYMBOL", "FORECAST_BIAS", "ACTUAL_CLOSE", "HIT", "LOAD_TIMESTAMP"})
	day := time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		rows.AddRow(day.AddDate(0, 0, -i), "SPX", "bullish", 6400.5, i%2 == 0, day)
	}
	return rows
}

func TestQueryShape(t *testing.T) {
	store := NewWarehouseStore(PoolSource(nil), testCfg)

	assert.Contains(t, store.forecastQuery, "ZEN_MARKET.FORECASTING.FORECAST_POSTMORTEM")
	assert.Contains(t, store.forecastQuery, "ORDER BY DATE DESC LIMIT 100")
	assert.Contains(t, store.marketQuery, "ZEN_MARKET.FORECASTING.DAILY_MARKET_DATA")
	assert.Contains(t, store.marketQuery, "LIMIT 100")
	assert.Contains(t, store.summaryQuery, "ZEN_MARKET.FORECASTING.FORECAST_SUMMARY")
	assert.Contains(t, store.summaryQuery, "LIMIT 50")
}

func TestLoadBundle_OK(t *testing.T) {
	store, mock := newMockStore(t)

	expectSessionContext(mock)
	mock.ExpectQuery(store.forecastQuery).WillReturnRows(forecastRows(3))
	mock.ExpectQuery(store.marketQuery).WillReturnRows(
		sqlmock.NewRows([]string{"DATE", "SPX_CLOSE", "ES_CLOSE", "VIX_CLOSE", "VVIX_CLOSE"}).
			AddRow(time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC), 6400.5, 6420.25, nil, 101.2))
	mock.ExpectQuery(store.summaryQuery).WillReturnRows(
		sqlmock.NewRows([]string{"DATE", "SYMBOL", "FORECAST_BIAS", "SUPPORT_LEVELS", "RESISTANCE_LEVELS", "ATM_STRADDLE", "NOTES"}).
			AddRow(time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC), "SPX", "neutral", "6350, 6300", "6450", 52.5, "quiet session"))

	data, err := store.LoadBundle(context.Background())
	require.NoError(t, err)

	assert.True(t, data.OK)
	assert.Empty(t, data.Error)
	assert.Len(t, data.Forecasts, 3)
	assert.Len(t, data.Market, 1)
	assert.Len(t, data.Summaries, 1)

	require.Len(t, data.Statuses, 3)
	for _, st := range data.Statuses {
		assert.Equal(t, models.LoadLoaded, st.Status)
	}
	assert.Equal(t, 3, data.Statuses[0].Rows)

	// nullable price carried through as nil, present one as value
	assert.Nil(t, data.Market[0].VIXClose)
	require.NotNil(t, data.Market[0].ESClose)
	assert.Equal(t, 6420.25, *data.Market[0].ESClose)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadBundle_RowCapsHoldAgainstOversizedResults(t *testing.T) {
	store, mock := newMockStore(t)

	marketRows := sqlmock.NewRows([]string{"DATE", "SPX_CLOSE", "ES_CLOSE", "VIX_CLOSE", "VVIX_CLOSE"})
	summaryRows := sqlmock.NewRows([]string{"DATE", "SYMBOL", "FORECAST_BIAS", "SUPPORT_LEVELS", "RESISTANCE_LEVELS", "ATM_STRADDLE", "NOTES"})
	day := time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 130; i++ {
		marketRows.AddRow(day.AddDate(0, 0, -i), 6400.5, 6420.25, 15.1, 101.2)
	}
	for i := 0; i < 80; i++ {
		summaryRows.AddRow(day.AddDate(0, 0, -i), "SPX", "neutral", "6350", "6450", 52.5, "")
	}

	expectSessionContext(mock)
	mock.ExpectQuery(store.forecastQuery).WillReturnRows(forecastRows(120))
	mock.ExpectQuery(store.marketQuery).WillReturnRows(marketRows)
	mock.ExpectQuery(store.summaryQuery).WillReturnRows(summaryRows)

	data, err := store.LoadBundle(context.Background())
	require.NoError(t, err)

	assert.True(t, data.OK)
	assert.Len(t, data.Forecasts, 100)
	assert.Len(t, data.Market, 100)
	assert.Len(t, data.Summaries, 50)
	assert.Equal(t, 100, data.Statuses[0].Rows)
	assert.Equal(t, 50, data.Statuses[2].Rows)
}

func TestLoadBundle_SecondQueryFailureDiscardsAll(t *testing.T) {
	store, mock := newMockStore(t)

	expectSessionContext(mock)
	mock.ExpectQuery(store.forecastQuery).WillReturnRows(forecastRows(5))
	mock.ExpectQuery(store.marketQuery).
		WillReturnError(errors.New("SQL compilation error: Object 'DAILY_MARKET_DATA' does not exist or not authorized."))

	data, err := store.LoadBundle(context.Background())
	require.NoError(t, err)

	assert.False(t, data.OK)
	// all-or-nothing: the already-loaded forecasts are discarded too
	assert.Nil(t, data.Forecasts)
	assert.Nil(t, data.Market)
	assert.Nil(t, data.Summaries)

	require.Len(t, data.Statuses, 3)
	assert.Equal(t, models.LoadLoaded, data.Statuses[0].Status)
	assert.Equal(t, 5, data.Statuses[0].Rows)
	assert.Equal(t, models.LoadFailed, data.Statuses[1].Status)
	assert.Equal(t, models.LoadSkipped, data.Statuses[2].Status)

	assert.Contains(t, data.Error, "not authorized")
	assert.Equal(t, PermissionHint, data.Hint)
	assert.Equal(t, PermissionHint, data.Statuses[1].Hint)
}

func TestLoadBundle_ContextFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`USE DATABASE "ZEN_MARKET"`).
		WillReturnError(errors.New("Insufficient privileges to operate on database 'ZEN_MARKET'"))

	data, err := store.LoadBundle(context.Background())
	require.NoError(t, err)

	assert.False(t, data.OK)
	require.Len(t, data.Statuses, 3)
	for _, st := range data.Statuses {
		assert.Equal(t, models.LoadSkipped, st.Status)
	}
	assert.Contains(t, data.Error, "Insufficient privileges")
	assert.Equal(t, PermissionHint, data.Hint)
}

func failingSource(err error) SessionSource {
	return func(context.Context) (*sql.DB, func() error, error) {
		return nil, nil, err
	}
}

func TestLoadBundle_ConnectionFailure(t *testing.T) {
	connErr := errors.New("failed to connect: dial tcp: lookup acct.snowflakecomputing.com: no such host")
	store := NewWarehouseStore(failingSource(connErr), testCfg)

	data, err := store.LoadBundle(context.Background())
	require.NoError(t, err)

	assert.False(t, data.OK)
	// transport error surfaced verbatim
	assert.Equal(t, connErr.Error(), data.Error)
	require.Len(t, data.Statuses, 3)
	for _, st := range data.Statuses {
		assert.Equal(t, models.LoadSkipped, st.Status)
	}
}

func TestProbeTables_IndependentOutcomes(t *testing.T) {
	store, mock := newMockStore(t)
	tables := []string{"FORECAST_POSTMORTEM", "DAILY_MARKET_DATA", "FORECAST_SUMMARY", "FORECAST_DAILY_V2"}

	expectSessionContext(mock)
	mock.ExpectQuery(`SELECT COUNT(*) FROM FORECAST_POSTMORTEM`).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(146))
	mock.ExpectQuery(`SELECT COUNT(*) FROM DAILY_MARKET_DATA`).
		WillReturnError(errors.New("Object 'DAILY_MARKET_DATA' does not exist or not authorized."))
	mock.ExpectQuery(`SELECT COUNT(*) FROM FORECAST_SUMMARY`).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(52))
	mock.ExpectQuery(`SELECT COUNT(*) FROM FORECAST_DAILY_V2`).
		WillReturnError(errors.New("Object 'FORECAST_DAILY_V2' does not exist or not authorized."))

	probes := store.ProbeTables(context.Background(), tables)

	require.Len(t, probes, 4)

	ok, failed := 0, 0
	for _, p := range probes {
		if p.OK {
			ok++
			assert.Empty(t, p.Error)
		} else {
			failed++
			assert.NotEmpty(t, p.Error)
		}
	}
	assert.Equal(t, 2, ok)
	assert.Equal(t, 2, failed)

	assert.True(t, probes[0].OK)
	assert.Equal(t, int64(146), probes[0].RowCount)
	assert.False(t, probes[1].OK)
	assert.Contains(t, probes[1].Error, "does not exist")
	assert.True(t, probes[2].OK)
	assert.Equal(t, int64(52), probes[2].RowCount)
	assert.False(t, probes[3].OK)
}

func TestProbeTables_NoSessionStillReportsEveryCandidate(t *testing.T) {
	connErr := errors.New("incorrect username or password was specified")
	store := NewWarehouseStore(failingSource(connErr), testCfg)

	tables := []string{"FORECAST_POSTMORTEM", "DAILY_MARKET_DATA", "FORECAST_SUMMARY", "FORECAST_DAILY_V2"}
	probes := store.ProbeTables(context.Background(), tables)

	require.Len(t, probes, 4)
	for _, p := range probes {
		assert.False(t, p.OK)
		assert.Equal(t, connErr.Error(), p.Error)
		assert.Equal(t, "auth", p.Category)
	}
}

func TestListTables(t *testing.T) {
	store, mock := newMockStore(t)

	expectSessionContext(mock)
	mock.ExpectExec(`SHOW TABLES IN SCHEMA`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT "name", "database_name", "schema_name" FROM TABLE(RESULT_SCAN(LAST_QUERY_ID()))`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "database_name", "schema_name"}).
			AddRow("FORECAST_POSTMORTEM", "ZEN_MARKET", "FORECASTING").
			AddRow("ORDERS_ARCHIVE", "ZEN_MARKET", "FORECASTING"))

	tables, err := store.ListTables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "FORECAST_POSTMORTEM", tables[0].Name)
	assert.Equal(t, "ZEN_MARKET", tables[0].Database)
}

func TestCurrentContext(t *testing.T) {
	store, mock := newMockStore(t)

	expectSessionContext(mock)
	mock.ExpectQuery(`SELECT CURRENT_DATABASE(), CURRENT_SCHEMA(), CURRENT_WAREHOUSE()`).
		WillReturnRows(sqlmock.NewRows([]string{"CURRENT_DATABASE()", "CURRENT_SCHEMA()", "CURRENT_WAREHOUSE()"}).
			AddRow("ZEN_MARKET", "FORECASTING", "COMPUTE_WH"))

	sessCtx, err := store.CurrentContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ZEN_MARKET", sessCtx.Database)
	assert.Equal(t, "FORECASTING", sessCtx.Schema)
	assert.Equal(t, "COMPUTE_WH", sessCtx.Warehouse)
}
