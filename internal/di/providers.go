package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"BasketNa/internal/domain/repository"
	"BasketNa/internal/handler/api"
	mid "BasketNa/internal/middleware"
	internalrepo "BasketNa/internal/repository"
	"BasketNa/internal/service/deals"
	"BasketNa/internal/service/feed"
	"BasketNa/internal/service/forecast"
	"BasketNa/internal/service/links"
	"BasketNa/internal/service/recommend"
	"BasketNa/internal/service/synth"
	"BasketNa/internal/usecase"
	pkgcache "BasketNa/pkg/cache"
	pkgch "BasketNa/pkg/clickhouse"
	"BasketNa/pkg/config"
	pkgkafka "BasketNa/pkg/kafka"
	applogger "BasketNa/pkg/logger"
	"BasketNa/pkg/metrics"
	pkgqueue "BasketNa/pkg/queue"
	"BasketNa/pkg/server"
)

// ProvideLogger creates the app logger. With a Kafka backend, error
// logs are aggregated and shipped through the producer.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if cfg.Backend.Type == "kafka" && producer != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          "basketna.logs",
			Publisher:      producer,
		})
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the
// price and activity tables exist.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.PriceSchema(cfg.ClickHouse.Database)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideRedisClient creates the shared Redis client.
func ProvideRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// ProvideCacheService creates the response cache per cache.mode.
func ProvideCacheService(cfg *config.Config) (pkgcache.Service, error) {
	switch cfg.Cache.Mode {
	case "", "memory":
		return pkgcache.NewMemoryCache(), nil
	case "redis", "layered":
		host, portStr, err := net.SplitHostPort(cfg.Redis.Addr)
		if err != nil {
			return nil, fmt.Errorf("redis addr: %w", err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("redis port: %w", err)
		}
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(host),
			pkgcache.WithRedisPort(port),
			pkgcache.WithRedisPassword(cfg.Redis.Password),
			pkgcache.WithRedisDB(cfg.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		if cfg.Cache.Mode == "layered" {
			return pkgcache.NewLayeredCache(rc), nil
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown cache mode %q", cfg.Cache.Mode)
	}
}

// ProvidePriceStore creates the ClickHouse price repository.
func ProvidePriceStore(chClient *pkgch.Client, cfg *config.Config) repository.PriceStore {
	return internalrepo.NewClickHousePriceStore(chClient.DB(), cfg.ClickHouse.Database+".price_points")
}

// ProvideActivityStore creates the ClickHouse activity repository.
func ProvideActivityStore(chClient *pkgch.Client, cfg *config.Config) repository.ActivityStore {
	return internalrepo.NewClickHouseActivityStore(chClient.DB(), cfg.ClickHouse.Database+".activity_events")
}

// ProvidePublisher creates the Kafka tick publisher.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideTrackedStore creates the Redis tracked-products repository.
func ProvideTrackedStore(client *redis.Client) repository.TrackedStore {
	return internalrepo.NewRedisTrackedStore(client)
}

// ProvideSessionStore creates the Redis session repository.
func ProvideSessionStore(client *redis.Client) repository.SessionStore {
	return internalrepo.NewRedisSessionStore(client)
}

// ProvideCatalog creates the built-in product catalog.
func ProvideCatalog() repository.Catalog {
	return internalrepo.NewStaticCatalog()
}

// ProvideGenerator creates the synthetic price generator.
func ProvideGenerator(cfg *config.Config) *synth.Generator {
	return synth.NewGenerator(cfg.Synth.Seed)
}

// ProvidePriceStream selects the live feed per feed.mode: a WebSocket
// client against a real provider, or the synthetic generator.
func ProvidePriceStream(cfg *config.Config, gen *synth.Generator, catalog repository.Catalog, lgr *applogger.Logger) repository.PriceStream {
	if cfg.Feed.Mode == "websocket" {
		products := catalog.List()
		ids := make([]string, len(products))
		for i, p := range products {
			ids[i] = p.ID
		}
		return feed.New(
			cfg.Feed.APIKey,
			cfg.Feed.WebSocketURL,
			ids,
			cfg.Feed.ReconnectDelay,
			cfg.Feed.PingInterval,
		)
	}
	return synth.NewStream(gen, catalog.List(), cfg.Synth.TickInterval, lgr)
}

// ProvidePriceProcessor creates the backend-routing processor.
func ProvidePriceProcessor(
	pub repository.Publisher,
	store repository.PriceStore,
	metrics repository.Metrics,
	cfg *config.Config,
) *usecase.PriceProcessor {
	return usecase.NewPriceProcessor(
		pub,
		store,
		metrics,
		cfg.Backend.Type,
		cfg.Backend.BatchSize,
		cfg.Backend.BatchTimeout,
	)
}

// ProvidePriceCollector creates the collector with a validating,
// throttling pipeline between the stream and the backend.
func ProvidePriceCollector(
	stream repository.PriceStream,
	processor *usecase.PriceProcessor,
	metrics repository.Metrics,
) *usecase.PriceCollector {
	pipe := mid.NewIngestPipeline(processor, metrics,
		mid.WithMaxRPS(50),
		mid.WithBufferSize(2000),
	)
	return usecase.NewPriceCollector(stream, processor, metrics, pipe)
}

// ProvideKafkaPricesHandler registers the handler for the ticks topic.
func ProvideKafkaPricesHandler(store repository.PriceStore, metrics repository.Metrics, cfg *config.Config) *usecase.KafkaPricesHandler {
	return usecase.NewKafkaPricesHandler(cfg.Kafka.Topic, store, metrics)
}

// ProvideQueue creates the Redis job queue with the price refresh
// worker registered. The queue is started by the app.
func ProvideQueue(
	lgr *applogger.Logger,
	client *redis.Client,
	catalog repository.Catalog,
	gen *synth.Generator,
	store repository.PriceStore,
	cfg *config.Config,
) *pkgqueue.RedisQueue {
	q := pkgqueue.NewRedisQueue(lgr, &pkgqueue.QueueConfig{
		Workers:    2,
		RetryLimit: 3,
		RetryDelay: 10 * time.Second,
	}, client, pkgqueue.ModeProducerConsumer)
	q.RegisterJob(usecase.NewPriceRefreshJob(lgr, catalog, gen, store, cfg.Synth.HistoryDays))
	return q
}

// ProvideForecaster creates the forecast query usecase.
func ProvideForecaster(
	catalog repository.Catalog,
	prices repository.PriceStore,
	engine *forecast.Engine,
	classifier *deals.Classifier,
	builder *links.Builder,
	cacheSvc pkgcache.Service,
	cfg *config.Config,
	metrics repository.Metrics,
) *usecase.Forecaster {
	return usecase.NewForecaster(catalog, prices, engine, classifier, builder, cacheSvc, cfg.Cache.ForecastTTL, metrics)
}

// ProvideRecommender creates the recommendation query usecase.
func ProvideRecommender(
	catalog repository.Catalog,
	prices repository.PriceStore,
	activity repository.ActivityStore,
	tracked repository.TrackedStore,
	scorer *recommend.Scorer,
	engine *forecast.Engine,
	classifier *deals.Classifier,
	builder *links.Builder,
	cacheSvc pkgcache.Service,
	cfg *config.Config,
	metrics repository.Metrics,
) *usecase.Recommender {
	return usecase.NewRecommender(catalog, prices, activity, tracked, scorer, engine, classifier, builder, cacheSvc, cfg.Cache.RecommendationsTTL, metrics)
}

// ProvideTracker creates the tracking command usecase.
func ProvideTracker(
	catalog repository.Catalog,
	tracked repository.TrackedStore,
	sessions repository.SessionStore,
	activity repository.ActivityStore,
	q *pkgqueue.RedisQueue,
	cfg *config.Config,
	metrics repository.Metrics,
) *usecase.Tracker {
	return usecase.NewTracker(catalog, tracked, sessions, activity, q, cfg.Session.TTL, metrics)
}

// ProvideHandler creates the HTTP handler with all routes.
func ProvideHandler(
	lgr *applogger.Logger,
	forecaster *usecase.Forecaster,
	recommender *usecase.Recommender,
	tracker *usecase.Tracker,
	collector *usecase.PriceCollector,
) *api.Handler {
	return api.NewHandler(lgr, forecaster, recommender, tracker, collector)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	lgr *applogger.Logger,
	collector *usecase.PriceCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaPricesHandler,
	chClient *pkgch.Client,
	q *pkgqueue.RedisQueue,
	handler *api.Handler,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	return server.New(cfg, lgr, collector, consumer, kh, chClient, q, handler)
}
