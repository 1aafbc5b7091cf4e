package recommend

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity_RelatedDescriptionScoresHigher(t *testing.T) {
	s := NewSimilarity(DefaultSimilarityConfig())

	res := s.Score([]string{"sejarah", "budaya"}, []string{
		"Candi bersejarah dengan nilai budaya tinggi",
		"Pantai pasir putih untuk berselancar",
	})

	require.False(t, res.Degraded)
	require.Len(t, res.Scores, 2)
	assert.Greater(t, res.Scores[0], 0.1)
	assert.Equal(t, 0.0, res.Scores[1])
}

func TestSimilarity_ScoresWithinUnitInterval(t *testing.T) {
	s := NewSimilarity(DefaultSimilarityConfig())

	res := s.Score([]string{"Pantai", "PANTAI", "laut"}, []string{
		"pantai pantai laut",
		"Pantai pantai pantai",
		"museum kota tua",
		"",
	})

	require.False(t, res.Degraded)
	for _, score := range res.Scores {
		assert.False(t, math.IsNaN(score))
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
	assert.InDelta(t, 1.0, res.Scores[0], 1e-9)
	assert.Equal(t, 0.0, res.Scores[3])
}

func TestSimilarity_CaseInsensitive(t *testing.T) {
	s := NewSimilarity(DefaultSimilarityConfig())

	lower := s.Score([]string{"gunung"}, []string{"gunung berapi", "danau"})
	upper := s.Score([]string{"GUNUNG"}, []string{"Gunung Berapi", "Danau"})

	assert.InDeltaSlice(t, lower.Scores, upper.Scores, 1e-12)
}

func TestSimilarity_DegradesOnEmptyDescriptions(t *testing.T) {
	s := NewSimilarity(SimilarityConfig{MaxFeatures: 500, Threshold: 0.1, NeutralScore: 0.5})

	res := s.Score([]string{"budaya"}, []string{"", "   "})

	assert.True(t, res.Degraded)
	assert.Equal(t, []float64{0.5, 0.5}, res.Scores)
	assert.NotEmpty(t, res.Reason)
}

func TestSimilarity_DegradesOnEmptyVocabulary(t *testing.T) {
	s := NewSimilarity(DefaultSimilarityConfig())

	res := s.Score([]string{"a", "!"}, []string{"", "?"})

	assert.True(t, res.Degraded)
	assert.Equal(t, "empty vocabulary", res.Reason)
	assert.Equal(t, []float64{0.5, 0.5}, res.Scores)
}

func TestSimilarity_MaxFeaturesBoundsVocabulary(t *testing.T) {
	docs := [][]string{
		{"alpha", "alpha", "alpha", "beta", "beta", "gamma"},
		{"delta"},
	}

	vocab := buildVocabulary(docs, nil, 2)

	assert.Len(t, vocab, 2)
	assert.Contains(t, vocab, "alpha")
	assert.Contains(t, vocab, "beta")
}

func TestSimilarity_VocabularyKeepsQueryTerms(t *testing.T) {
	docs := [][]string{
		{"alpha", "alpha", "alpha", "beta", "beta", "gamma"},
		{"delta"},
	}

	vocab := buildVocabulary(docs, []string{"delta"}, 2)

	assert.Len(t, vocab, 2)
	assert.Contains(t, vocab, "delta")
	assert.Contains(t, vocab, "alpha")
}

// paddedDescriptions дополняет описания уникальными словами, чтобы
// размер корпуса превысил словарь по умолчанию.
func paddedDescriptions(descriptions []string, extraTerms int) []string {
	out := make([]string, len(descriptions))
	copy(out, descriptions)
	for i := 0; i < extraTerms; i++ {
		out[i%len(out)] += fmt.Sprintf(" kata%04d kata%04d", i, i)
	}
	return out
}

func TestSimilarity_UnmatchedInterestIndependentOfCorpusSize(t *testing.T) {
	s := NewSimilarity(DefaultSimilarityConfig())
	descriptions := []string{
		"Pantai pasir putih untuk berselancar",
		"Candi bersejarah dengan nilai budaya tinggi",
		"Gunung berapi dengan kawah aktif",
	}

	tests := []struct {
		name         string
		descriptions []string
	}{
		{name: "small corpus", descriptions: descriptions},
		{name: "corpus above max features", descriptions: paddedDescriptions(descriptions, 600)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Score([]string{"kuliner"}, tt.descriptions)

			assert.False(t, res.Degraded, res.Reason)
			assert.Equal(t, []float64{0, 0, 0}, res.Scores)
		})
	}
}

func TestSimilarity_MatchedInterestSurvivesLargeCorpus(t *testing.T) {
	s := NewSimilarity(DefaultSimilarityConfig())
	descriptions := paddedDescriptions([]string{
		"Pasar kuliner malam",
		"Pantai pasir putih",
	}, 600)

	res := s.Score([]string{"kuliner"}, descriptions)

	require.False(t, res.Degraded, res.Reason)
	assert.Greater(t, res.Scores[0], 0.0)
	assert.Equal(t, 0.0, res.Scores[1])
}

func TestTokenize_Unicode(t *testing.T) {
	assert.Equal(t, []string{"café", "ubud", "42"}, tokenize("Café, Ubud! 42 a"))
	assert.Empty(t, tokenize(""))
}

func TestInverseDocumentFrequency_Smoothed(t *testing.T) {
	docs := [][]string{{"a1", "b1"}, {"a1"}, {"c1"}}
	vocab := map[string]struct{}{"a1": {}, "b1": {}, "c1": {}}

	idf := inverseDocumentFrequency(docs, vocab)

	assert.InDelta(t, math.Log(4.0/3.0)+1, idf["a1"], 1e-12)
	assert.InDelta(t, math.Log(4.0/2.0)+1, idf["b1"], 1e-12)
}
