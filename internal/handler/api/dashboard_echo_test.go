package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Johnsoncharless1976/zen-grid-forecaster/internal/domain/models"
	"github.com/Johnsoncharless1976/zen-grid-forecaster/internal/usecase"
	xhttp "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/http"
	applogger "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/logger"
	pkgsf "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/snowflake"
)

type stubStore struct {
	bundle  *models.DashboardData
	loadErr error
}

func (s *stubStore) LoadBundle(ctx context.Context) (*models.DashboardData, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.bundle, nil
}

func (s *stubStore) ProbeTables(ctx context.Context, tables []string) []models.TableProbe {
	probes := make([]models.TableProbe, 0, len(tables))
	for _, t := range tables {
		probes = append(probes, models.TableProbe{Table: t, OK: true, RowCount: 10})
	}
	return probes
}

func (s *stubStore) ListTables(ctx context.Context) ([]models.SchemaTable, error) {
	return []models.SchemaTable{{Name: "FORECAST_POSTMORTEM"}}, nil
}

func (s *stubStore) CurrentContext(ctx context.Context) (*models.SessionContext, error) {
	return &models.SessionContext{Database: "ZEN_MARKET", Schema: "FORECASTING", Warehouse: "COMPUTE_WH"}, nil
}

func newTestServer(t *testing.T, store *stubStore) *echo.Echo {
	t.Helper()

	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stdout"})
	require.NoError(t, err)

	loader := usecase.NewDashboardLoader(store, nil, nil)
	diag := usecase.NewDiagnosticsRunner(store, nil, nil, nil)
	status := usecase.NewStatusChecker(
		func(opts ...pkgsf.ClientOption) (*pkgsf.Client, error) {
			return nil, errors.New("390100 (08004): Incorrect username or password was specified.")
		}, nil, nil)

	e := echo.New()
	NewDashboardEchoHandler(l, loader, diag, status).RegisterRoutes(e)
	return e
}

func doGET(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp xhttp.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "response data should be an object")
	return data
}

func okBundle() *models.DashboardData {
	return &models.DashboardData{
		OK: true,
		Forecasts: []models.ForecastRecord{
			{Symbol: "SPX", ForecastBias: "bullish", Hit: true},
			{Symbol: "SPX", ForecastBias: "bearish", Hit: false},
		},
		Statuses: []models.EntityStatus{
			{Entity: "forecast", Status: models.LoadLoaded, Rows: 2},
			{Entity: "market", Status: models.LoadLoaded, Rows: 2},
			{Entity: "summary", Status: models.LoadLoaded, Rows: 1},
		},
	}
}

func TestDashboardEndpoint(t *testing.T) {
	e := newTestServer(t, &stubStore{bundle: okBundle()})

	rec := doGET(e, "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	assert.Equal(t, true, data["ok"])
	acc, ok := data["accuracy"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 50.0, acc["accuracy_pct"])
	assert.Equal(t, 88.0, acc["target_pct"])
}

func TestDashboardEndpoint_FailedLoadStillHTTP200(t *testing.T) {
	failed := &models.DashboardData{
		OK:    false,
		Error: "Object 'DAILY_MARKET_DATA' does not exist or not authorized.",
		Hint:  "check grants",
		Statuses: []models.EntityStatus{
			{Entity: "forecast", Status: models.LoadLoaded, Rows: 5},
			{Entity: "market", Status: models.LoadFailed, Category: "permission"},
			{Entity: "summary", Status: models.LoadSkipped},
		},
	}
	e := newTestServer(t, &stubStore{bundle: failed})

	rec := doGET(e, "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	assert.Equal(t, false, data["ok"])
	assert.Contains(t, data["error"], "not authorized")
	assert.Nil(t, data["accuracy"])
}

func TestDashboardEndpoint_StoreErrorBecomesAppError(t *testing.T) {
	e := newTestServer(t, &stubStore{loadErr: errors.New("context deadline exceeded")})

	rec := doGET(e, "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp xhttp.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusInternalServerError, resp.Status)

	appErrs, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, appErrs, 1)
	first, ok := appErrs[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ERR_INTERNAL", first["code"])
	assert.Equal(t, "dashboard refresh failed", first["message"])
}

func TestAccuracyEndpoint(t *testing.T) {
	e := newTestServer(t, &stubStore{bundle: okBundle()})

	rec := doGET(e, "/api/accuracy")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	assert.Equal(t, 2.0, data["total"])
	assert.Equal(t, 50.0, data["accuracy_pct"])
}

func TestDiagnosticsEndpoint(t *testing.T) {
	e := newTestServer(t, &stubStore{bundle: okBundle()})

	rec := doGET(e, "/api/diagnostics")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	ctx, ok := data["context"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ZEN_MARKET", ctx["database"])

	probes, ok := data["probes"].([]interface{})
	require.True(t, ok)
	assert.Len(t, probes, len(usecase.CandidateTables))
}

func TestStatusEndpoint_ConnectFailure(t *testing.T) {
	e := newTestServer(t, &stubStore{bundle: okBundle()})

	rec := doGET(e, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	assert.Equal(t, false, data["connected"])
	assert.Contains(t, data["error"], "Incorrect username or password")
	assert.Equal(t, "auth", data["category"])
}
