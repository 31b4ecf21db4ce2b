package di

import (
	"github.com/Johnsoncharless1976/zen-grid-forecaster/internal/domain/repository"
	"github.com/Johnsoncharless1976/zen-grid-forecaster/internal/handler/api"
	internalrepo "github.com/Johnsoncharless1976/zen-grid-forecaster/internal/repository"
	"github.com/Johnsoncharless1976/zen-grid-forecaster/internal/usecase"
	"github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/config"
	xhttp "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/http"
	applogger "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/logger"
	"github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/metrics"
	"github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/server"
	pkgsf "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/snowflake"
)

// ProvideLogger creates the application logger with the diagnostics
// error collector attached.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lvl := cfg.Logging.Level
	if lvl == "" {
		lvl = "info"
	}
	format := cfg.Logging.Format
	if format == "" {
		format = "console"
	}
	output := cfg.Logging.Output
	if output == "" {
		output = "stdout"
	}

	l, err := applogger.New(&applogger.Config{Level: lvl, Format: format, Output: output})
	if err != nil {
		return nil, err
	}
	l.AddCollector(&applogger.CollectionConfig{Capacity: 100})
	return l, nil
}

// ProvideClientOptions maps config to warehouse client options.
func ProvideClientOptions(cfg *config.Config) []pkgsf.ClientOption {
	return []pkgsf.ClientOption{
		pkgsf.WithAccount(cfg.Snowflake.Account),
		pkgsf.WithCredentials(cfg.Snowflake.User, cfg.Snowflake.Password),
		pkgsf.WithDatabase(cfg.Snowflake.Database),
		pkgsf.WithSchema(cfg.Snowflake.Schema),
		pkgsf.WithWarehouse(cfg.Snowflake.Warehouse),
		pkgsf.WithRole(cfg.Snowflake.Role),
		pkgsf.WithTimeouts(cfg.Snowflake.LoginTimeout, cfg.Snowflake.QueryTimeout),
		pkgsf.WithKeepAlive(cfg.Snowflake.KeepAlive),
	}
}

// ProvideSessionSource creates the per-invocation connection source. No
// connection is opened at startup; a refresh that fails shows its message on
// the dashboard instead of preventing boot.
func ProvideSessionSource(opts []pkgsf.ClientOption) internalrepo.SessionSource {
	return internalrepo.SessionSource(pkgsf.ClientSource(opts...))
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideWarehouseStore creates the Snowflake query runner.
func ProvideWarehouseStore(source internalrepo.SessionSource, cfg *config.Config, l *applogger.Logger) repository.WarehouseStore {
	store := internalrepo.NewWarehouseStore(source, internalrepo.StoreConfig{
		Database:  cfg.Snowflake.Database,
		Schema:    cfg.Snowflake.Schema,
		Warehouse: cfg.Snowflake.Warehouse,
	})
	store.SetLogger(l)
	return store
}

// ProvideDashboardLoader creates the bulk load usecase.
func ProvideDashboardLoader(store repository.WarehouseStore, m repository.Metrics, l *applogger.Logger) *usecase.DashboardLoader {
	return usecase.NewDashboardLoader(store, m, l)
}

// ProvideDiagnosticsRunner creates the probe mode usecase.
func ProvideDiagnosticsRunner(store repository.WarehouseStore, m repository.Metrics, l *applogger.Logger) *usecase.DiagnosticsRunner {
	return usecase.NewDiagnosticsRunner(store, m, l, l.Collector())
}

// ProvideStatusChecker creates the sidebar connectivity check with its own
// independent connections.
func ProvideStatusChecker(opts []pkgsf.ClientOption, l *applogger.Logger) *usecase.StatusChecker {
	return usecase.NewStatusChecker(pkgsf.NewClient, opts, l)
}

// ProvideHTTPHandler creates the Echo API handler.
func ProvideHTTPHandler(l *applogger.Logger, loader *usecase.DashboardLoader, diag *usecase.DiagnosticsRunner, status *usecase.StatusChecker) xhttp.Handler {
	return api.NewDashboardEchoHandler(l, loader, diag, status)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, handler xhttp.Handler, l *applogger.Logger) *server.App {
	return server.New(cfg, handler, l)
}
