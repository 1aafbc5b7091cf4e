// Package recommend реализует конвейер рекомендаций: жесткие фильтры, контентное
// сходство TF-IDF, составную оценку, сортировку и цепочку деградации.
package recommend

import (
	"sort"
	"strings"

	"github.com/akozadaev/go_tourism_recommender/internal/logger"
	"github.com/akozadaev/go_tourism_recommender/internal/metrics"
	"github.com/akozadaev/go_tourism_recommender/internal/models"
)

// OutcomeStatus описывает результат прогона конвейера.
type OutcomeStatus string

const (
	OutcomeOK       OutcomeStatus = "ok"
	OutcomeDegraded OutcomeStatus = "degraded"
	OutcomeFailed   OutcomeStatus = "failed"
)

// Outcome представляет результат конвейера. При OutcomeFailed Results пуст,
// а решение о деградации принимает Recommender.
type Outcome struct {
	Status  OutcomeStatus
	Reason  string
	Results []models.ScoredPlace
}

// Pipeline выполняет фильтрацию, скоринг и ранжирование над снимком каталога.
// Не хранит состояния между запросами и безопасен для конкурентного использования.
type Pipeline struct {
	similarity *Similarity
	scorer     CompositeScorer
	logger     logger.Logger
}

// NewPipeline создает конвейер рекомендаций.
func NewPipeline(similarity *Similarity, scorer CompositeScorer, log logger.Logger) *Pipeline {
	return &Pipeline{
		similarity: similarity,
		scorer:     scorer,
		logger:     log.WithFields(map[string]interface{}{"component": "pipeline"}),
	}
}

// Run ранжирует места по запросу. places не изменяется.
func (p *Pipeline) Run(places []models.Place, q models.Query) Outcome {
	candidates := ApplyHardFilters(places, q)
	if len(candidates) == 0 {
		return Outcome{Status: OutcomeOK, Results: []models.ScoredPlace{}}
	}

	outcome := Outcome{Status: OutcomeOK}
	var contents []*float64

	if q.HasInterests() {
		descriptions := make([]string, len(candidates))
		for i, c := range candidates {
			descriptions[i] = c.Description
		}

		res := p.similarity.Score(q.Interests, descriptions)
		if res.Degraded {
			outcome.Status = OutcomeDegraded
			outcome.Reason = res.Reason
			metrics.PipelineDegradations.WithLabelValues("similarity").Inc()
			p.logger.Warn("content similarity degraded, using neutral score", map[string]interface{}{
				"reason":     res.Reason,
				"candidates": len(candidates),
			})
		}

		kept := candidates[:0:0]
		for i, c := range candidates {
			score := res.Scores[i]
			if !res.Degraded && score < p.similarity.Threshold() {
				continue
			}
			kept = append(kept, c)
			contents = append(contents, &score)
		}
		candidates = kept
	}

	results := make([]models.ScoredPlace, 0, len(candidates))
	for i, c := range candidates {
		var content *float64
		if contents != nil {
			content = contents[i]
		}
		scored, err := p.scorer.Score(c, content)
		if err != nil {
			p.logger.Error("scoring failed", map[string]interface{}{"error": err, "placeId": c.ID})
			return Outcome{Status: OutcomeFailed, Reason: err.Error()}
		}
		results = append(results, scored)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})

	outcome.Results = truncate(results, q.TopN)
	return outcome
}

// ApplyHardFilters применяет фильтры в порядке location -> min_rating ->
// price_category -> category. Возвращает новый срез в исходном порядке.
func ApplyHardFilters(places []models.Place, q models.Query) []models.Place {
	out := make([]models.Place, 0, len(places))
	for _, p := range places {
		if q.Location != "" && !strings.EqualFold(p.City, strings.TrimSpace(q.Location)) {
			continue
		}
		if q.MinRating != nil && p.Rating < *q.MinRating {
			continue
		}
		if q.PriceCategory != "" && p.PriceCategory != q.PriceCategory {
			continue
		}
		if q.Category != "" && !strings.EqualFold(p.Category, strings.TrimSpace(q.Category)) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// RankByPopularity ранжирует места только по рейтингу с теми же жесткими фильтрами.
func RankByPopularity(places []models.Place, q models.Query) []models.ScoredPlace {
	candidates := ApplyHardFilters(places, q)
	results := make([]models.ScoredPlace, 0, len(candidates))
	for _, c := range candidates {
		popularity := PopularityScore(c.Rating)
		results = append(results, models.ScoredPlace{
			Place:           c,
			PopularityScore: popularity,
			PriceScore:      PriceScore(c.PriceCategory),
			FinalScore:      popularity,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rating > results[j].Rating
	})

	return truncate(results, q.TopN)
}

func truncate(results []models.ScoredPlace, topN int) []models.ScoredPlace {
	if topN > 0 && len(results) > topN {
		return results[:topN]
	}
	return results
}
