//go:build wireinject
// +build wireinject

package di

import (
	"github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/config"
	"github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Warehouse access
		ProvideClientOptions,
		ProvideSessionSource,
		ProvideWarehouseStore,

		// Use cases
		ProvideDashboardLoader,
		ProvideDiagnosticsRunner,
		ProvideStatusChecker,

		// HTTP surface
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
