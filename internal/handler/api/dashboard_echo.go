package api

import (
	"time"

	"github.com/Johnsoncharless1976/zen-grid-forecaster/internal/domain/models"
	"github.com/Johnsoncharless1976/zen-grid-forecaster/internal/usecase"
	xhttp "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/http"
	xlogger "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/logger"
	xutil "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/util"

	"github.com/labstack/echo/v4"
)

// DashboardEchoHandler exposes the dashboard's tabular and diagnostic results
// as JSON. Warehouse failures surface as display messages inside a 200
// payload, never as transport errors; the browser renders them either way.
type DashboardEchoHandler struct {
	logger *xlogger.Logger
	loader *usecase.DashboardLoader
	diag   *usecase.DiagnosticsRunner
	status *usecase.StatusChecker
}

func NewDashboardEchoHandler(logger *xlogger.Logger, loader *usecase.DashboardLoader, diag *usecase.DiagnosticsRunner, status *usecase.StatusChecker) *DashboardEchoHandler {
	return &DashboardEchoHandler{logger: logger, loader: loader, diag: diag, status: status}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/dashboard", h.Dashboard)
	g.GET("/accuracy", h.Accuracy)
	g.GET("/diagnostics", h.Diagnostics)
	g.GET("/status", h.Status)
}

// Dashboard runs one complete refresh: bulk load plus accuracy scoring.
func (h *DashboardEchoHandler) Dashboard(c echo.Context) error {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	data, err := h.loader.Load(c.Request().Context(), req.WithBias)
	if err != nil {
		h.logger.Error("dashboard load error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("dashboard refresh failed").WithError(err))
	}
	return xhttp.SuccessResponse(c, data)
}

func (h *DashboardEchoHandler) Accuracy(c echo.Context) error {
	req := &models.AccuracyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	since := xutil.ParseTimeDefault(c.QueryParam("since"), time.Time{})
	report, data, err := h.loader.Accuracy(c.Request().Context(), req.WithBias, since)
	if err != nil {
		h.logger.Error("accuracy usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("accuracy refresh failed").WithError(err))
	}
	if !data.OK {
		// load failed; hand the caller the statuses and message instead
		return xhttp.SuccessResponse(c, data)
	}
	return xhttp.SuccessResponse(c, report)
}

// Diagnostics runs probe mode. Always returns the full report; individual
// probe failures live inside it.
func (h *DashboardEchoHandler) Diagnostics(c echo.Context) error {
	req := &models.DiagnosticsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	report := h.diag.Run(c.Request().Context(), req.WithErrors)
	return xhttp.SuccessResponse(c, report)
}

// Status checks warehouse connectivity on its own throwaway connection.
func (h *DashboardEchoHandler) Status(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.status.Check(c.Request().Context()))
}
