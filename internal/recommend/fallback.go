package recommend

import (
	"time"

	"github.com/akozadaev/go_tourism_recommender/internal/catalog"
	"github.com/akozadaev/go_tourism_recommender/internal/logger"
	"github.com/akozadaev/go_tourism_recommender/internal/metrics"
	"github.com/akozadaev/go_tourism_recommender/internal/models"
)

// Result представляет ранжированный ответ вместе с меткой источника данных.
type Result struct {
	Places         []models.ScoredPlace
	DataSource     string
	DegradedReason string
}

// Limits задает границы top_n.
type Limits struct {
	DefaultTopN int
	MaxTopN     int
}

// DefaultLimits возвращает границы по умолчанию: 10 и 50.
func DefaultLimits() Limits {
	return Limits{DefaultTopN: 10, MaxTopN: 50}
}

// Recommender реализует цепочку деградации:
// конвейер над основным каталогом -> ранжирование по рейтингу -> встроенный набор.
type Recommender struct {
	primary  *catalog.Store
	builtin  *catalog.Store
	pipeline *Pipeline
	limits   Limits
	logger   logger.Logger
}

// NewRecommender создает Recommender. Оба хранилища должны быть загружены до
// приема запросов.
func NewRecommender(primary, builtin *catalog.Store, pipeline *Pipeline, limits Limits, log logger.Logger) *Recommender {
	return &Recommender{
		primary:  primary,
		builtin:  builtin,
		pipeline: pipeline,
		limits:   limits,
		logger:   log.WithFields(map[string]interface{}{"component": "recommender"}),
	}
}

// Recommend возвращает top-N мест для запроса. Ошибки этапов не выходят наружу:
// они превращаются в деградированный, но корректный результат.
func (r *Recommender) Recommend(q models.Query) Result {
	start := time.Now()
	q.TopN = r.NormalizeTopN(q.TopN)

	places, source := r.Active()
	if source == models.SourceNone {
		r.logger.Error("no data source available", nil)
		metrics.RecommendationsTotal.WithLabelValues(models.SourceNone).Inc()
		return Result{Places: []models.ScoredPlace{}, DataSource: models.SourceNone, DegradedReason: "no data source available"}
	}

	result := Result{DataSource: source}
	outcome := r.pipeline.Run(places, q)

	switch outcome.Status {
	case OutcomeFailed:
		metrics.PipelineDegradations.WithLabelValues("scoring").Inc()
		r.logger.Warn("scoring failed, falling back to popularity ranking", map[string]interface{}{
			"reason": outcome.Reason,
		})
		if source == models.SourceModel {
			result.DataSource = models.SourcePopularity
		}
		result.DegradedReason = outcome.Reason
		result.Places = RankByPopularity(places, q)
	case OutcomeDegraded:
		result.DegradedReason = outcome.Reason
		result.Places = outcome.Results
	default:
		result.Places = outcome.Results
	}

	for i := range result.Places {
		result.Places[i].DataSource = result.DataSource
	}

	metrics.RecommendationsTotal.WithLabelValues(result.DataSource).Inc()
	metrics.RecommendationDuration.WithLabelValues(result.DataSource).Observe(time.Since(start).Seconds())
	metrics.RecommendationResults.Observe(float64(len(result.Places)))

	r.logger.Debug("recommendation completed", map[string]interface{}{
		"dataSource":  result.DataSource,
		"outputCount": len(result.Places),
		"durationMs":  time.Since(start).Milliseconds(),
	})

	return result
}

// Active возвращает снимок каталога, из которого обслуживаются запросы,
// и метку источника: ml_model, dummy или none.
func (r *Recommender) Active() ([]models.Place, string) {
	if r.primary != nil {
		if places, ok := r.primary.Snapshot(); ok {
			return places, models.SourceModel
		}
	}
	if r.builtin != nil {
		if places, ok := r.builtin.Snapshot(); ok {
			return places, models.SourceDummy
		}
	}
	return nil, models.SourceNone
}

// CatalogStates возвращает состояния основного и встроенного каталогов.
func (r *Recommender) CatalogStates() (primary, builtin catalog.State) {
	primary = catalog.State{Status: catalog.StatusUnavailable, Source: models.SourceNone, Reason: "no catalog source configured"}
	builtin = primary
	if r.primary != nil {
		primary = r.primary.State()
	}
	if r.builtin != nil {
		builtin = r.builtin.State()
	}
	return primary, builtin
}

// NormalizeTopN подставляет значение по умолчанию и ограничивает top_n сверху.
func (r *Recommender) NormalizeTopN(topN int) int {
	if topN <= 0 {
		return r.limits.DefaultTopN
	}
	if topN > r.limits.MaxTopN {
		return r.limits.MaxTopN
	}
	return topN
}

// Find возвращает место по идентификатору из активного источника.
func (r *Recommender) Find(id int) (models.Place, string, error) {
	_, source := r.Active()
	switch source {
	case models.SourceModel:
		p, err := r.primary.Find(id)
		return p, source, err
	case models.SourceDummy:
		p, err := r.builtin.Find(id)
		return p, source, err
	default:
		return models.Place{}, source, catalog.ErrNotLoaded
	}
}
