//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"fittrack/internal"
	"fittrack/internal/controllers"
	"fittrack/internal/persistence"
	"fittrack/internal/providers"
	"fittrack/internal/services"
	"fittrack/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewClockProvider,
		providers.NewCatalogProvider,

		persistence.NewBackend,
		persistence.NewZstdCompressor,
		persistence.NewSnapshotManager,
		wire.Bind(new(providers.StartDateSource), new(*persistence.SnapshotManager)),

		providers.NewGoalProvider,
		providers.NewProgressStoreProvider,
		services.NewTrackerService,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		persistence.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
