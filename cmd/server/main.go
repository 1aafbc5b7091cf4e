// @title           ExploreIndonesia Recommendation API
// @version         1.0
// @description     REST API рекомендаций туристических мест Индонезии. Места фильтруются по городу, категории, ценовой категории и рейтингу и ранжируются по составной оценке с учетом TF-IDF сходства описаний с интересами пользователя.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  akozadaev@inbox.ru
// @contact.url    https://github.com/akozadaev/go_tourism_recommender

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @schemes   http https
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/akozadaev/go_tourism_recommender/docs" // swagger docs
	"github.com/akozadaev/go_tourism_recommender/internal/cache"
	"github.com/akozadaev/go_tourism_recommender/internal/catalog"
	"github.com/akozadaev/go_tourism_recommender/internal/config"
	"github.com/akozadaev/go_tourism_recommender/internal/handlers"
	"github.com/akozadaev/go_tourism_recommender/internal/logger"
	"github.com/akozadaev/go_tourism_recommender/internal/metrics"
	"github.com/akozadaev/go_tourism_recommender/internal/recommend"
	"github.com/akozadaev/go_tourism_recommender/internal/storage"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	appLog := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format).WithFields(map[string]interface{}{
		"app":     cfg.App.Name,
		"version": cfg.App.Version,
	})
	defer logger.Sync(appLog)

	// Встроенный набор обязан быть корректным: это последний уровень деградации
	if err := catalog.ValidateBuiltin(); err != nil {
		log.Fatalf("Built-in dataset is invalid: %v", err)
	}

	ctx := context.Background()
	thresholds := catalog.PriceThresholds{CheapMax: cfg.Recommend.Price.CheapMax, MidMax: cfg.Recommend.Price.MidMax}

	var pgStorage *storage.PostgresStorage
	if cfg.Database.Postgres.Enabled() {
		pgStorage, err = storage.NewPostgresStorage(ctx, cfg.Database.Postgres.GetDSN())
		if err != nil {
			appLog.Warn("PostgreSQL unavailable", map[string]interface{}{"error": err})
		} else {
			defer pgStorage.Close()
			appLog.Info("connected to PostgreSQL", nil)
		}
	}

	source, err := newCatalogSource(cfg, pgStorage)
	if err != nil {
		appLog.Warn("catalog source not initialized", map[string]interface{}{"error": err})
	}

	// Каталог загружается до начала приема запросов
	var primary *catalog.Store
	if source != nil {
		primary = catalog.NewStore(source, thresholds, appLog)
		loadCtx, cancel := context.WithTimeout(ctx, cfg.Catalog.LoadTimeout)
		state := primary.Load(loadCtx)
		cancel()
		metrics.CatalogPlaces.WithLabelValues(state.Source).Set(float64(state.Places))
	}

	builtin := catalog.NewStore(catalog.BuiltinSource{}, thresholds, appLog)
	builtinState := builtin.Load(ctx)
	metrics.CatalogPlaces.WithLabelValues(builtinState.Source).Set(float64(builtinState.Places))

	weights := recommend.Weights{
		Rating:  cfg.Recommend.Weights.Rating,
		Price:   cfg.Recommend.Weights.Price,
		Content: cfg.Recommend.Weights.Content,
	}
	scorer, err := recommend.NewScorer(weights)
	if err != nil {
		log.Fatalf("Invalid scoring weights: %v", err)
	}

	similarity := recommend.NewSimilarity(recommend.SimilarityConfig{
		MaxFeatures:  cfg.Recommend.Similarity.MaxFeatures,
		Threshold:    cfg.Recommend.Similarity.Threshold,
		NeutralScore: cfg.Recommend.Similarity.NeutralScore,
	})
	pipeline := recommend.NewPipeline(similarity, scorer, appLog)
	recommender := recommend.NewRecommender(primary, builtin, pipeline, recommend.Limits{
		DefaultTopN: cfg.Recommend.DefaultTopN,
		MaxTopN:     cfg.Recommend.MaxTopN,
	}, appLog)

	var opts []handlers.Option
	if pgStorage != nil {
		opts = append(opts, handlers.WithDictionaries(pgStorage))
	}
	if cfg.Cache.Enabled {
		cacheOpts := cache.DefaultOptions()
		cacheOpts.TTL = cfg.Cache.TTL
		cacheOpts.Prefix = cfg.Cache.Prefix
		responseCache := cache.New(cache.NewRedisClient(cfg.Database.Redis), cacheOpts, appLog)
		defer responseCache.Close()
		if err := responseCache.Ping(ctx); err != nil {
			appLog.Warn("Redis unavailable, cache requests will fail over to the pipeline", map[string]interface{}{"error": err})
		}
		opts = append(opts, handlers.WithCache(responseCache))
	}

	h := handlers.NewHandlers(recommender, handlers.ServiceInfo{Name: cfg.App.Name, Version: cfg.App.Version}, appLog, opts...)

	// Настройка роутера
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL(cfg.Server.SwaggerURL),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	router.Use(handlers.CORS, handlers.RequestID, handlers.Logging(appLog))
	if cfg.RateLimit.Enabled {
		router.Use(handlers.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// Настройка сервера
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		_, dataSource := recommender.Active()
		appLog.Info("server starting", map[string]interface{}{"port": cfg.Server.Port, "dataSource": dataSource})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("server forced to shutdown", map[string]interface{}{"error": err})
		return
	}

	appLog.Info("server exited", nil)
}

// newCatalogSource возвращает источник каталога по конфигурации.
// nil без ошибки означает, что основной каталог отключен (source: none).
func newCatalogSource(cfg *config.Config, pg *storage.PostgresStorage) (catalog.Source, error) {
	switch cfg.Catalog.Source {
	case config.SourceFile:
		return storage.NewFileStorage(cfg.Catalog.Path), nil
	case config.SourceElasticsearch:
		es, err := storage.NewElasticsearchStorage(cfg.Database.Elasticsearch.URL, cfg.Catalog.Index)
		if err != nil {
			return nil, err
		}
		return es, nil
	case config.SourcePostgres:
		if pg == nil {
			return nil, errors.New("postgres catalog source configured but database is unavailable")
		}
		return pg, nil
	default:
		return nil, nil
	}
}
