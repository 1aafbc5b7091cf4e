// Package config предоставляет загрузку конфигурации приложения из YAML-файлов,
// .env и переменных окружения.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/akozadaev/go_tourism_recommender/internal/models"
)

// Источники каталога мест.
const (
	SourceFile          = "file"
	SourceElasticsearch = "elasticsearch"
	SourcePostgres      = "postgres"
	SourceNone          = "none"
)

// Config содержит все параметры конфигурации приложения.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// AppConfig описывает приложение.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig содержит параметры HTTP сервера.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	SwaggerURL      string        `mapstructure:"swagger_url"`
}

// LoggingConfig содержит параметры логирования.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CatalogConfig определяет, откуда загружается каталог мест.
type CatalogConfig struct {
	Source      string        `mapstructure:"source"` // file | elasticsearch | postgres | none
	Path        string        `mapstructure:"path"`   // путь к JSON-артефакту для source=file
	Index       string        `mapstructure:"index"`  // индекс для source=elasticsearch
	LoadTimeout time.Duration `mapstructure:"load_timeout"`
}

// DatabaseConfig объединяет параметры внешних хранилищ.
type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

// PostgresConfig содержит параметры подключения к PostgreSQL.
// Пустой Host означает, что PostgreSQL не используется.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// Enabled сообщает, настроено ли подключение к PostgreSQL.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

// ElasticsearchConfig содержит параметры Elasticsearch/OpenSearch.
type ElasticsearchConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig содержит параметры Redis для кэша ответов.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RecommendConfig содержит параметры скоринга и конвейера рекомендаций.
type RecommendConfig struct {
	Weights     WeightsConfig    `mapstructure:"weights"`
	Price       PriceConfig      `mapstructure:"price"`
	Similarity  SimilarityConfig `mapstructure:"similarity"`
	DefaultTopN int              `mapstructure:"default_top_n"`
	MaxTopN     int              `mapstructure:"max_top_n"`
}

// WeightsConfig задает веса составной оценки.
type WeightsConfig struct {
	Rating  float64 `mapstructure:"rating"`
	Price   float64 `mapstructure:"price"`
	Content float64 `mapstructure:"content"`
}

// PriceConfig задает пороги категорий цен (в рупиях).
type PriceConfig struct {
	CheapMax int `mapstructure:"cheap_max"`
	MidMax   int `mapstructure:"mid_max"`
}

// SimilarityConfig задает параметры TF-IDF.
type SimilarityConfig struct {
	MaxFeatures  int     `mapstructure:"max_features"`
	Threshold    float64 `mapstructure:"threshold"`
	NeutralScore float64 `mapstructure:"neutral_score"`
}

// CacheConfig содержит параметры кэша ответов.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
	Prefix  string        `mapstructure:"prefix"`
}

// RateLimitConfig задает ограничение частоты запросов на IP.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// Validate проверяет согласованность конфигурации.
func (c *Config) Validate() error {
	var errs []error

	switch c.Catalog.Source {
	case SourceFile:
		if c.Catalog.Path == "" {
			errs = append(errs, errors.New("catalog.path is required for file source"))
		}
	case SourceElasticsearch:
		if c.Database.Elasticsearch.URL == "" {
			errs = append(errs, errors.New("database.elasticsearch.url is required for elasticsearch source"))
		}
		if c.Catalog.Index == "" {
			errs = append(errs, errors.New("catalog.index is required for elasticsearch source"))
		}
	case SourcePostgres:
		if !c.Database.Postgres.Enabled() {
			errs = append(errs, errors.New("database.postgres.host is required for postgres source"))
		}
	case SourceNone:
	default:
		errs = append(errs, fmt.Errorf("unknown catalog.source %q", c.Catalog.Source))
	}

	w := c.Recommend.Weights
	for name, v := range map[string]float64{"rating": w.Rating, "price": w.Price, "content": w.Content} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("recommend.weights.%s must be a non-negative number", name))
		}
	}

	if c.Recommend.Price.CheapMax < 0 || c.Recommend.Price.MidMax < c.Recommend.Price.CheapMax {
		errs = append(errs, errors.New("recommend.price thresholds must satisfy 0 <= cheap_max <= mid_max"))
	}
	if c.Recommend.Similarity.MaxFeatures <= 0 {
		errs = append(errs, errors.New("recommend.similarity.max_features must be positive"))
	}
	if c.Recommend.Similarity.Threshold < 0 || c.Recommend.Similarity.Threshold > 1 {
		errs = append(errs, errors.New("recommend.similarity.threshold must be in [0, 1]"))
	}
	if c.Recommend.Similarity.NeutralScore < 0 || c.Recommend.Similarity.NeutralScore > 1 {
		errs = append(errs, errors.New("recommend.similarity.neutral_score must be in [0, 1]"))
	}
	if c.Recommend.MaxTopN < 1 || c.Recommend.DefaultTopN < 1 || c.Recommend.DefaultTopN > c.Recommend.MaxTopN {
		errs = append(errs, errors.New("recommend top_n bounds must satisfy 1 <= default_top_n <= max_top_n"))
	}
	if c.Recommend.MaxTopN > models.TopNLimit {
		errs = append(errs, fmt.Errorf("recommend.max_top_n must not exceed %d", models.TopNLimit))
	}
	if c.Cache.Enabled && c.Database.Redis.Address == "" {
		errs = append(errs, errors.New("database.redis.address is required when cache is enabled"))
	}

	return errors.Join(errs...)
}
