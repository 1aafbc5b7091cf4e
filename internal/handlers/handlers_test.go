package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/akozadaev/go_tourism_recommender/internal/catalog"
	"github.com/akozadaev/go_tourism_recommender/internal/logger"
	"github.com/akozadaev/go_tourism_recommender/internal/models"
	"github.com/akozadaev/go_tourism_recommender/internal/recommend"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	places []models.Place
	err    error
}

func (s stubSource) Name() string { return "stub" }

func (s stubSource) LoadPlaces(context.Context) ([]models.Place, error) {
	return append([]models.Place(nil), s.places...), s.err
}

func testPlaces() []models.Place {
	return []models.Place{
		{ID: 1, Name: "Candi Prambanan", Rating: 4.8, Price: 50000, Category: "Budaya", City: "Yogyakarta",
			Description: "Candi bersejarah dengan nilai budaya tinggi"},
		{ID: 2, Name: "Kota Tua", Rating: 4.2, Price: 15000, Category: "Budaya", City: "Jakarta",
			Description: "Kawasan pantai dan pelabuhan dengan kafe modern"},
		{ID: 3, Name: "Pantai Parangtritis", Rating: 4.4, Price: 10000, Category: "Bahari", City: "Yogyakarta",
			Description: "Pantai berpasir hitam dengan ombak besar"},
	}
}

func newRecommender(t *testing.T, src catalog.Source) *recommend.Recommender {
	t.Helper()
	log := logger.NewNoOpLogger()
	scorer, err := recommend.NewScorer(recommend.DefaultWeights())
	require.NoError(t, err)

	var primary *catalog.Store
	if src != nil {
		primary = catalog.NewStore(src, catalog.DefaultPriceThresholds(), log)
		primary.Load(context.Background())
	}
	builtin := catalog.NewStore(catalog.BuiltinSource{}, catalog.DefaultPriceThresholds(), log)
	builtin.Load(context.Background())

	pipeline := recommend.NewPipeline(recommend.NewSimilarity(recommend.DefaultSimilarityConfig()), scorer, log)
	return recommend.NewRecommender(primary, builtin, pipeline, recommend.DefaultLimits(), log)
}

func newRouter(t *testing.T, src catalog.Source, opts ...Option) *mux.Router {
	t.Helper()
	h := NewHandlers(newRecommender(t, src), ServiceInfo{Name: "explore-indonesia", Version: "test"}, logger.NewTestLogger(t), opts...)
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestGetRecommendations(t *testing.T) {
	r := newRouter(t, stubSource{places: testPlaces()})

	w := do(t, r, http.MethodGet, "/recommendations?min_rating=4.5&top_n=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.RecommendResponse](t, w)
	assert.Equal(t, models.SourceModel, resp.DataSource)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.Recommendations[0].ID)
	assert.Equal(t, models.PriceMid, resp.Recommendations[0].PriceCategory)
	assert.Equal(t, models.SourceModel, resp.Recommendations[0].DataSource)
}

func TestGetRecommendations_Interests(t *testing.T) {
	r := newRouter(t, stubSource{places: testPlaces()})

	w := do(t, r, http.MethodGet, "/recommendations?interests=sejarah,budaya", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.RecommendResponse](t, w)
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, 1, resp.Recommendations[0].ID)
	require.NotNil(t, resp.Recommendations[0].ContentScore)
	assert.Greater(t, *resp.Recommendations[0].ContentScore, 0.0)
}

func TestGetRecommendations_RepeatedInterests(t *testing.T) {
	r := newRouter(t, stubSource{places: testPlaces()})

	w := do(t, r, http.MethodGet, "/recommendations?interests=ombak&interests=pantai", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.RecommendResponse](t, w)
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, 3, resp.Recommendations[0].ID)
}

func TestGetRecommendations_EmptyResult(t *testing.T) {
	r := newRouter(t, stubSource{places: testPlaces()})

	w := do(t, r, http.MethodGet, "/recommendations?location=Ambon", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recommendations":[],"total":0,"data_source":"ml_model"}`, w.Body.String())
}

func TestGetRecommendations_BadRequest(t *testing.T) {
	r := newRouter(t, stubSource{places: testPlaces()})

	tests := []struct {
		name  string
		query string
	}{
		{"non-numeric rating", "min_rating=high"},
		{"rating out of range", "min_rating=6"},
		{"non-numeric top_n", "top_n=ten"},
		{"top_n zero", "top_n=0"},
		{"top_n above max", "top_n=51"},
		{"unknown price category", "price_category=luxury"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodGet, "/recommendations?"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode[ErrorResponse](t, w)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestPostRecommendations(t *testing.T) {
	r := newRouter(t, stubSource{places: testPlaces()})

	w := do(t, r, http.MethodPost, "/recommendations", `{"location":"jakarta","top_n":3}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.RecommendResponse](t, w)
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, 2, resp.Recommendations[0].ID)
}

func TestPostRecommendations_InvalidBody(t *testing.T) {
	r := newRouter(t, stubSource{places: testPlaces()})

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/recommendations", `{"location":`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/recommendations", `{"region":"Jawa"}`).Code)

	w := do(t, r, http.MethodPost, "/recommendations", `{"price_category":"free"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[ErrorResponse](t, w)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "price_category", resp.Fields[0].Field)
}

func TestRecommendations_BuiltinFallback(t *testing.T) {
	r := newRouter(t, stubSource{err: errors.New("artifact missing")})

	w := do(t, r, http.MethodGet, "/recommendations?category=Bahari", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.RecommendResponse](t, w)
	assert.Equal(t, models.SourceDummy, resp.DataSource)
	require.NotEmpty(t, resp.Recommendations)
	for _, p := range resp.Recommendations {
		assert.Equal(t, "Bahari", p.Category)
	}
}

type fakeCache struct {
	entries map[string]models.RecommendResponse
	gets    int
}

func (c *fakeCache) key(q models.Query) string {
	b, _ := json.Marshal(q)
	return string(b)
}

func (c *fakeCache) Get(_ context.Context, q models.Query) (models.RecommendResponse, bool) {
	c.gets++
	resp, ok := c.entries[c.key(q)]
	return resp, ok
}

func (c *fakeCache) Set(_ context.Context, q models.Query, resp models.RecommendResponse) {
	c.entries[c.key(q)] = resp
}

func TestRecommendations_Cache(t *testing.T) {
	cache := &fakeCache{entries: map[string]models.RecommendResponse{}}
	r := newRouter(t, stubSource{places: testPlaces()}, WithCache(cache))

	first := do(t, r, http.MethodGet, "/recommendations?location=Yogyakarta", "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Len(t, cache.entries, 1)

	cached := models.RecommendResponse{Recommendations: []models.ScoredPlace{}, DataSource: "cached"}
	for k := range cache.entries {
		cache.entries[k] = cached
	}

	second := do(t, r, http.MethodGet, "/recommendations?location=Yogyakarta", "")
	resp := decode[models.RecommendResponse](t, second)
	assert.Equal(t, "cached", resp.DataSource)
	assert.Equal(t, 2, cache.gets)
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		src        catalog.Source
		wantCode   int
		wantStatus string
	}{
		{"catalog loaded", stubSource{places: testPlaces()}, http.StatusOK, "ok"},
		{"builtin fallback", stubSource{err: errors.New("down")}, http.StatusOK, "degraded"},
		{"no source configured", nil, http.StatusOK, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newRouter(t, tt.src), http.MethodGet, "/health", "")
			assert.Equal(t, tt.wantCode, w.Code)
			resp := decode[HealthResponse](t, w)
			assert.Equal(t, tt.wantStatus, resp.Status)
		})
	}
}

func TestHealthCheck_Unavailable(t *testing.T) {
	scorer, err := recommend.NewScorer(recommend.DefaultWeights())
	require.NoError(t, err)
	pipeline := recommend.NewPipeline(recommend.NewSimilarity(recommend.DefaultSimilarityConfig()), scorer, logger.NewNoOpLogger())
	h := NewHandlers(recommend.NewRecommender(nil, nil, pipeline, recommend.DefaultLimits(), logger.NewNoOpLogger()),
		ServiceInfo{}, logger.NewNoOpLogger())

	w := httptest.NewRecorder()
	h.HealthCheck(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", decode[HealthResponse](t, w).Status)
}

func TestListPlaces(t *testing.T) {
	r := newRouter(t, stubSource{places: testPlaces()})

	w := do(t, r, http.MethodGet, "/places?location=yogyakarta&limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.PlacesResponse](t, w)
	require.Len(t, resp.Places, 1)
	assert.Equal(t, 1, resp.Places[0].ID)
	assert.Equal(t, models.SourceModel, resp.DataSource)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/places?limit=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/places?limit=abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/places?min_rating=9", "").Code)
}

func TestListPlaces_IgnoresTopN(t *testing.T) {
	r := newRouter(t, stubSource{places: testPlaces()})

	for _, raw := range []string{"0", "500", "abc"} {
		w := do(t, r, http.MethodGet, "/places?top_n="+raw, "")

		require.Equal(t, http.StatusOK, w.Code, raw)
		assert.Len(t, decode[models.PlacesResponse](t, w).Places, 3, raw)
	}
}

func TestGetPlace(t *testing.T) {
	r := newRouter(t, stubSource{places: testPlaces()})

	w := do(t, r, http.MethodGet, "/places/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Kota Tua", decode[models.Place](t, w).Name)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/places/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/places/abc", "").Code)
}

func TestGetStats(t *testing.T) {
	r := newRouter(t, stubSource{places: testPlaces()})

	w := do(t, r, http.MethodGet, "/stats", "")

	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[models.Stats](t, w)
	assert.Equal(t, 3, stats.TotalPlaces)
	assert.Equal(t, 4.47, stats.AvgRating)
	assert.Equal(t, []string{"Jakarta", "Yogyakarta"}, stats.Cities)
	assert.Equal(t, models.CategoryStat{Category: "Budaya", Count: 2}, stats.Categories[0])
}

type fakeDictionaries struct {
	err error
}

func (d fakeDictionaries) GetCategories(context.Context) ([]models.Category, error) {
	return []models.Category{{ID: 7, Name: "Tempat Ibadah"}}, d.err
}

func (d fakeDictionaries) GetCities(context.Context) ([]models.CityStat, error) {
	return []models.CityStat{{City: "Ende", PlacesCount: 1, AvgRating: 4.8, MinPrice: 20000}}, d.err
}

func TestDictionaries(t *testing.T) {
	t.Run("from catalog", func(t *testing.T) {
		r := newRouter(t, stubSource{places: testPlaces()})

		cities := decode[[]models.CityStat](t, do(t, r, http.MethodGet, "/cities", ""))
		require.Len(t, cities, 2)
		assert.Equal(t, models.CityStat{City: "Yogyakarta", PlacesCount: 2, AvgRating: 4.6, MinPrice: 10000}, cities[1])

		categories := decode[[]models.Category](t, do(t, r, http.MethodGet, "/categories", ""))
		assert.Equal(t, []models.Category{{ID: 1, Name: "Bahari"}, {ID: 2, Name: "Budaya"}}, categories)
	})

	t.Run("from database", func(t *testing.T) {
		r := newRouter(t, stubSource{places: testPlaces()}, WithDictionaries(fakeDictionaries{}))

		cities := decode[[]models.CityStat](t, do(t, r, http.MethodGet, "/cities", ""))
		assert.Equal(t, "Ende", cities[0].City)

		categories := decode[[]models.Category](t, do(t, r, http.MethodGet, "/categories", ""))
		assert.Equal(t, "Tempat Ibadah", categories[0].Name)
	})

	t.Run("database error falls back to catalog", func(t *testing.T) {
		r := newRouter(t, stubSource{places: testPlaces()}, WithDictionaries(fakeDictionaries{err: errors.New("conn refused")}))

		cities := decode[[]models.CityStat](t, do(t, r, http.MethodGet, "/cities", ""))
		assert.Len(t, cities, 2)
	})
}

func TestRoot(t *testing.T) {
	w := do(t, newRouter(t, stubSource{places: testPlaces()}), http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "explore-indonesia", body["name"])
}

func TestMiddleware(t *testing.T) {
	r := newRouter(t, stubSource{places: testPlaces()})
	r.Use(CORS, RequestID, Logging(logger.NewTestLogger(t)))

	w := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	r := newRouter(t, stubSource{places: testPlaces()})
	r.Use(RateLimit(2, time.Minute))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, do(t, r, http.MethodGet, "/health", "").Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newRouter(t, stubSource{places: testPlaces()})
	r.Use(RateLimit(0, time.Minute))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/health", "").Code)
	}
}
