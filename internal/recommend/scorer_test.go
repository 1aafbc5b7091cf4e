package recommend

import (
	"math"
	"testing"

	"github.com/akozadaev/go_tourism_recommender/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewScorer(DefaultWeights())
	require.NoError(t, err)
	return s
}

func TestScorer_FormulaWithoutContent(t *testing.T) {
	s := newDefaultScorer(t)

	scored, err := s.Score(models.Place{ID: 1, Rating: 4.8, PriceCategory: models.PriceMid}, nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.96, scored.PopularityScore, 1e-12)
	assert.InDelta(t, 0.7, scored.PriceScore, 1e-12)
	assert.Nil(t, scored.ContentScore)
	assert.InDelta(t, 0.96*0.6+0.7*0.2, scored.FinalScore, 1e-12)
}

func TestScorer_FormulaWithContent(t *testing.T) {
	s := newDefaultScorer(t)
	content := 0.5

	scored, err := s.Score(models.Place{ID: 1, Rating: 4.0, PriceCategory: models.PriceCheap}, &content)
	require.NoError(t, err)

	require.NotNil(t, scored.ContentScore)
	assert.InDelta(t, 0.8*0.6+1.0*0.2+0.5*0.2, scored.FinalScore, 1e-12)
}

func TestScorer_MonotonicInRatingAndPrice(t *testing.T) {
	s := newDefaultScorer(t)

	prev := -1.0
	for _, rating := range []float64{1.0, 2.5, 3.9, 4.2, 5.0} {
		scored, err := s.Score(models.Place{ID: 1, Rating: rating, PriceCategory: models.PriceMid}, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, scored.FinalScore, 0.0)
		assert.Greater(t, scored.FinalScore, prev)
		prev = scored.FinalScore
	}

	prev = -1.0
	for _, category := range []string{models.PriceExpensive, models.PriceMid, models.PriceCheap} {
		scored, err := s.Score(models.Place{ID: 1, Rating: 4, PriceCategory: category}, nil)
		require.NoError(t, err)
		assert.Greater(t, scored.FinalScore, prev)
		prev = scored.FinalScore
	}
}

func TestPriceScore_UnknownCategoryIsNeutral(t *testing.T) {
	assert.Equal(t, 0.5, PriceScore(""))
	assert.Equal(t, 0.5, PriceScore("luxury"))
	assert.Equal(t, 1.0, PriceScore(models.PriceCheap))
	assert.Equal(t, 0.4, PriceScore(models.PriceExpensive))
}

func TestWeights_Validate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
	assert.NoError(t, Weights{Rating: 0.4, Price: 0.3, Content: 0.3}.Validate())

	for _, w := range []Weights{
		{Rating: -0.1, Price: 0.2, Content: 0.2},
		{Rating: math.NaN()},
		{Content: math.Inf(1)},
	} {
		_, err := NewScorer(w)
		assert.ErrorIs(t, err, ErrInvalidWeights)
	}
}

func TestScorer_NonFiniteScoreIsAnError(t *testing.T) {
	s := &Scorer{weights: Weights{Rating: math.MaxFloat64, Price: math.MaxFloat64}}

	_, err := s.Score(models.Place{ID: 7, Rating: 5, PriceCategory: models.PriceCheap}, nil)
	assert.ErrorIs(t, err, ErrInvalidScore)
}
