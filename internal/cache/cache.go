// Package cache реализует необязательный кэш ответов рекомендаций в Redis.
// Обращения к Redis защищены circuit breaker: при недоступности Redis
// запросы обслуживаются без кэша.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/akozadaev/go_tourism_recommender/internal/config"
	"github.com/akozadaev/go_tourism_recommender/internal/logger"
	"github.com/akozadaev/go_tourism_recommender/internal/metrics"
	"github.com/akozadaev/go_tourism_recommender/internal/models"
	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"
)

const breakerName = "redis-cache"

// Options задает параметры кэша.
type Options struct {
	TTL              time.Duration
	Prefix           string
	FailureThreshold uint32        // подряд идущих ошибок до размыкания
	OpenTimeout      time.Duration // время в разомкнутом состоянии
}

// DefaultOptions возвращает параметры по умолчанию.
func DefaultOptions() Options {
	return Options{
		TTL:              5 * time.Minute,
		Prefix:           "recommend:",
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
	}
}

// NewRedisClient создает клиент Redis по конфигурации.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// ResponseCache хранит полные ответы рекомендаций по сигнатуре запроса.
type ResponseCache struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker[[]byte]
	opts   Options
	logger logger.Logger
}

// New создает кэш поверх клиента Redis.
func New(client *redis.Client, opts Options, log logger.Logger) *ResponseCache {
	log = log.WithFields(map[string]interface{}{"component": "cache"})
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", map[string]interface{}{
				"from": from.String(),
				"to":   to.String(),
			})
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &ResponseCache{client: client, cb: cb, opts: opts, logger: log}
}

// Get возвращает закэшированный ответ. Любая ошибка Redis трактуется как промах.
func (c *ResponseCache) Get(ctx context.Context, q models.Query) (models.RecommendResponse, bool) {
	key := c.Key(q)
	data, err := c.cb.Execute(func() ([]byte, error) {
		b, err := c.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return b, err
	})
	if err != nil {
		c.recordError("get", err)
		return models.RecommendResponse{}, false
	}
	if data == nil {
		metrics.CacheRequests.WithLabelValues("miss").Inc()
		return models.RecommendResponse{}, false
	}

	var resp models.RecommendResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logger.Warn("discarding corrupt cache entry", map[string]interface{}{"key": key, "error": err})
		metrics.CacheRequests.WithLabelValues("error").Inc()
		return models.RecommendResponse{}, false
	}

	metrics.CacheRequests.WithLabelValues("hit").Inc()
	return resp, true
}

// Set сохраняет ответ. Деградированные ответы не кэшируются.
func (c *ResponseCache) Set(ctx context.Context, q models.Query, resp models.RecommendResponse) {
	if resp.DegradedReason != "" || resp.DataSource == models.SourceNone {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Error("failed to marshal response for cache", map[string]interface{}{"error": err})
		return
	}

	key := c.Key(q)
	_, err = c.cb.Execute(func() ([]byte, error) {
		return nil, c.client.Set(ctx, key, data, c.opts.TTL).Err()
	})
	if err != nil {
		c.recordError("set", err)
	}
}

// Ping проверяет соединение с Redis в обход circuit breaker.
func (c *ResponseCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// State возвращает состояние circuit breaker.
func (c *ResponseCache) State() string {
	return c.cb.State().String()
}

// Close закрывает соединение с Redis.
func (c *ResponseCache) Close() error {
	return c.client.Close()
}

func (c *ResponseCache) recordError(op string, err error) {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.CacheRequests.WithLabelValues("rejected").Inc()
		return
	}
	metrics.CacheRequests.WithLabelValues("error").Inc()
	c.logger.Warn("cache operation failed", map[string]interface{}{"op": op, "error": err})
}

// Key возвращает ключ кэша для запроса. Запросы, отличающиеся только
// регистром фильтров или порядком интересов, дают одинаковый ключ.
func (c *ResponseCache) Key(q models.Query) string {
	return c.opts.Prefix + Signature(q)
}

// Signature возвращает каноническую сигнатуру запроса.
func Signature(q models.Query) string {
	interests := make([]string, 0, len(q.Interests))
	for _, in := range q.Interests {
		if in = strings.ToLower(strings.TrimSpace(in)); in != "" {
			interests = append(interests, in)
		}
	}
	sort.Strings(interests)

	minRating := ""
	if q.MinRating != nil {
		minRating = strconv.FormatFloat(*q.MinRating, 'f', -1, 64)
	}

	parts := []string{
		strings.ToLower(strings.TrimSpace(q.Location)),
		strings.ToLower(strings.TrimSpace(q.Category)),
		q.PriceCategory,
		minRating,
		strings.Join(interests, ","),
		strconv.Itoa(q.TopN),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
