//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"zhiyu/internal"
	"zhiyu/internal/controllers"
	"zhiyu/internal/providers"
	"zhiyu/internal/services"
	"zhiyu/internal/store"
	"zhiyu/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewBusProvider,

		store.NewZstdCompressor,
		store.NewFileSubstrate,
		store.NewEngine,
		store.NewBootstrapper,

		services.NewAuthService,
		services.NewRegistryService,
		services.NewRecordService,
		services.NewAdminService,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
