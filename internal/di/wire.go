//go:build wireinject
// +build wireinject

package di

import (
	"BasketNa/internal/service/deals"
	"BasketNa/internal/service/forecast"
	"BasketNa/internal/service/links"
	"BasketNa/internal/service/recommend"
	"BasketNa/pkg/config"
	"BasketNa/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideMetrics,
		ProvideLogger,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideRedisClient,
		ProvideCacheService,
		ProvideQueue,

		// Repositories
		ProvidePriceStore,
		ProvideActivityStore,
		ProvidePublisher,
		ProvideTrackedStore,
		ProvideSessionStore,
		ProvideCatalog,

		// Domain services
		ProvideGenerator,
		ProvidePriceStream,
		forecast.New,
		deals.New,
		links.New,
		recommend.New,

		// Use cases
		ProvidePriceProcessor,
		ProvidePriceCollector,
		ProvideKafkaPricesHandler,
		ProvideForecaster,
		ProvideRecommender,
		ProvideTracker,

		// HTTP and application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
