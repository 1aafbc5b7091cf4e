package recommend

import (
	"errors"
	"fmt"
	"math"

	"github.com/akozadaev/go_tourism_recommender/internal/models"
)

var (
	// ErrInvalidWeights возвращается для отрицательных или нечисловых весов.
	ErrInvalidWeights = errors.New("invalid scoring weights")
	// ErrInvalidScore возвращается, если итоговая оценка не является конечным числом.
	ErrInvalidScore = errors.New("non-finite score")
)

// Оценки цены по категориям.
var priceScores = map[string]float64{
	models.PriceCheap:     1.0,
	models.PriceMid:       0.7,
	models.PriceExpensive: 0.4,
}

const neutralPriceScore = 0.5

// Weights задает веса составной оценки. Веса не нормируются.
type Weights struct {
	Rating  float64
	Price   float64
	Content float64
}

// DefaultWeights возвращает веса по умолчанию 0.6/0.2/0.2.
func DefaultWeights() Weights {
	return Weights{Rating: 0.6, Price: 0.2, Content: 0.2}
}

// Validate проверяет, что все веса конечны и неотрицательны.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Rating, w.Price, w.Content} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %+v", ErrInvalidWeights, w)
		}
	}
	return nil
}

// CompositeScorer рассчитывает оценку ранжирования одного места.
// content равен nil, если интересы не переданы.
type CompositeScorer interface {
	Score(place models.Place, content *float64) (models.ScoredPlace, error)
}

// Scorer реализует взвешенную сумму:
// final = rating/5 * W_rating + price_score * W_price + content * W_content.
type Scorer struct {
	weights Weights
}

// NewScorer создает Scorer с проверенными весами.
func NewScorer(w Weights) (*Scorer, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: w}, nil
}

// Weights возвращает веса скоринга.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score рассчитывает компоненты и итоговую оценку места.
func (s *Scorer) Score(place models.Place, content *float64) (models.ScoredPlace, error) {
	popularity := PopularityScore(place.Rating)
	price := PriceScore(place.PriceCategory)

	final := popularity*s.weights.Rating + price*s.weights.Price
	if content != nil {
		final += *content * s.weights.Content
	}
	if math.IsNaN(final) || math.IsInf(final, 0) {
		return models.ScoredPlace{}, fmt.Errorf("place %d: %w", place.ID, ErrInvalidScore)
	}

	return models.ScoredPlace{
		Place:           place,
		ContentScore:    content,
		PopularityScore: popularity,
		PriceScore:      price,
		FinalScore:      final,
	}, nil
}

// PopularityScore нормирует рейтинг 1..5 в диапазон 0.2..1.
func PopularityScore(rating float64) float64 {
	return rating / models.MaxRating
}

// PriceScore возвращает оценку категории цены; неизвестная категория дает 0.5.
func PriceScore(category string) float64 {
	if s, ok := priceScores[category]; ok {
		return s
	}
	return neutralPriceScore
}
