package recommend

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenRegex выделяет слова из двух и более букв или цифр.
var tokenRegex = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// SimilarityConfig задает параметры TF-IDF.
type SimilarityConfig struct {
	MaxFeatures  int     // максимальный размер словаря
	Threshold    float64 // мягкий фильтр: места с меньшим сходством отбрасываются
	NeutralScore float64 // оценка для всех мест при вырождении векторизации
}

// DefaultSimilarityConfig возвращает параметры по умолчанию.
func DefaultSimilarityConfig() SimilarityConfig {
	return SimilarityConfig{MaxFeatures: 500, Threshold: 0.1, NeutralScore: 0.5}
}

// SimilarityResult содержит оценки сходства в порядке входных описаний.
// Degraded означает, что векторизация не удалась и Scores заполнены нейтральной оценкой.
type SimilarityResult struct {
	Scores   []float64
	Degraded bool
	Reason   string
}

// Similarity вычисляет косинусное сходство TF-IDF между ключевыми словами
// интересов и описаниями мест. Словарь строится заново на каждый запрос.
type Similarity struct {
	cfg SimilarityConfig
}

// NewSimilarity создает движок сходства.
func NewSimilarity(cfg SimilarityConfig) *Similarity {
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = DefaultSimilarityConfig().MaxFeatures
	}
	return &Similarity{cfg: cfg}
}

// Threshold возвращает порог мягкого фильтра.
func (s *Similarity) Threshold() float64 {
	return s.cfg.Threshold
}

// Score возвращает сходство каждого описания с запросом из интересов.
func (s *Similarity) Score(interests []string, descriptions []string) SimilarityResult {
	query := strings.ToLower(strings.Join(interests, " "))

	docs := make([][]string, 0, len(descriptions)+1)
	for _, d := range descriptions {
		docs = append(docs, tokenize(d))
	}
	queryTokens := tokenize(query)
	docs = append(docs, queryTokens)

	vocab := buildVocabulary(docs, queryTokens, s.cfg.MaxFeatures)
	if len(vocab) == 0 {
		return s.degraded(len(descriptions), "empty vocabulary")
	}

	idf := inverseDocumentFrequency(docs, vocab)
	vectors := make([]map[string]float64, len(docs))
	for i, tokens := range docs {
		vectors[i] = weigh(tokens, vocab, idf)
	}

	// Пустой вектор запроса дает нулевое сходство, а не вырождение
	queryVec := vectors[len(vectors)-1]
	scores := make([]float64, len(descriptions))
	nonZero := false
	for i := range descriptions {
		if len(vectors[i]) == 0 {
			continue
		}
		nonZero = true
		scores[i] = cosine(queryVec, vectors[i])
	}
	if len(descriptions) > 0 && !nonZero {
		return s.degraded(len(descriptions), "all descriptions are empty after vectorization")
	}

	return SimilarityResult{Scores: scores}
}

func (s *Similarity) degraded(n int, reason string) SimilarityResult {
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = s.cfg.NeutralScore
	}
	return SimilarityResult{Scores: scores, Degraded: true, Reason: reason}
}

func tokenize(text string) []string {
	return tokenRegex.FindAllString(strings.ToLower(text), -1)
}

// buildVocabulary всегда включает термины запроса и дополняет словарь
// самыми частыми терминами корпуса до maxFeatures.
func buildVocabulary(docs [][]string, queryTokens []string, maxFeatures int) map[string]struct{} {
	vocab := make(map[string]struct{}, maxFeatures)
	for _, t := range queryTokens {
		vocab[t] = struct{}{}
	}

	freq := make(map[string]int)
	for _, tokens := range docs {
		for _, t := range tokens {
			freq[t]++
		}
	}

	terms := make([]string, 0, len(freq))
	for t := range freq {
		if _, reserved := vocab[t]; !reserved {
			terms = append(terms, t)
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	for _, t := range terms {
		if len(vocab) >= maxFeatures {
			break
		}
		vocab[t] = struct{}{}
	}
	return vocab
}

// inverseDocumentFrequency считает сглаженный idf: ln((1+n)/(1+df)) + 1.
func inverseDocumentFrequency(docs [][]string, vocab map[string]struct{}) map[string]float64 {
	df := make(map[string]int, len(vocab))
	for _, tokens := range docs {
		seen := make(map[string]struct{})
		for _, t := range tokens {
			if _, ok := vocab[t]; !ok {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(vocab))
	for t := range vocab {
		idf[t] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	return idf
}

// weigh строит L2-нормированный вектор tf*idf по терминам словаря.
func weigh(tokens []string, vocab map[string]struct{}, idf map[string]float64) map[string]float64 {
	vec := make(map[string]float64)
	for _, t := range tokens {
		if _, ok := vocab[t]; ok {
			vec[t]++
		}
	}

	var norm float64
	for t, count := range vec {
		w := count * idf[t]
		vec[t] = w
		norm += w * w
	}
	if norm == 0 {
		return map[string]float64{}
	}

	norm = math.Sqrt(norm)
	for t := range vec {
		vec[t] /= norm
	}
	return vec
}

// cosine возвращает скалярное произведение нормированных векторов, ограниченное [0, 1].
func cosine(a, b map[string]float64) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for t, w := range a {
		dot += w * b[t]
	}
	if math.IsNaN(dot) || dot < 0 {
		return 0
	}
	return math.Min(dot, 1)
}
