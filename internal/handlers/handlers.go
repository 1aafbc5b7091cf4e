// Package handlers содержит HTTP обработчики REST API сервиса рекомендаций туристических мест.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/akozadaev/go_tourism_recommender/internal/catalog"
	"github.com/akozadaev/go_tourism_recommender/internal/logger"
	"github.com/akozadaev/go_tourism_recommender/internal/models"
	"github.com/akozadaev/go_tourism_recommender/internal/recommend"
	"github.com/akozadaev/go_tourism_recommender/internal/validation"
	"github.com/gorilla/mux"
)

// Границы параметра limit для списка мест.
const (
	defaultPlacesLimit = 20
	maxPlacesLimit     = 100
)

// Dictionaries предоставляет справочники категорий и городов (PostgreSQL).
type Dictionaries interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCities(ctx context.Context) ([]models.CityStat, error)
}

// ResponseCache кэширует полные ответы рекомендаций.
type ResponseCache interface {
	Get(ctx context.Context, q models.Query) (models.RecommendResponse, bool)
	Set(ctx context.Context, q models.Query, resp models.RecommendResponse)
}

// ServiceInfo описывает сервис для корневого эндпоинта.
type ServiceInfo struct {
	Name    string
	Version string
}

// Handlers содержит зависимости для обработки HTTP запросов.
type Handlers struct {
	recommender  *recommend.Recommender
	dictionaries Dictionaries  // может быть nil
	cache        ResponseCache // может быть nil
	info         ServiceInfo
	logger       logger.Logger
}

// Option настраивает необязательные зависимости Handlers.
type Option func(*Handlers)

// WithDictionaries подключает справочники PostgreSQL.
func WithDictionaries(d Dictionaries) Option {
	return func(h *Handlers) { h.dictionaries = d }
}

// WithCache подключает кэш ответов.
func WithCache(c ResponseCache) Option {
	return func(h *Handlers) { h.cache = c }
}

// NewHandlers создает новый экземпляр Handlers.
func NewHandlers(recommender *recommend.Recommender, info ServiceInfo, log logger.Logger, opts ...Option) *Handlers {
	h := &Handlers{
		recommender: recommender,
		info:        info,
		logger:      log.WithFields(map[string]interface{}{"component": "handlers"}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes регистрирует маршруты API.
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.Root).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/recommendations", h.GetRecommendations).Methods(http.MethodGet)
	r.HandleFunc("/recommendations", h.PostRecommendations).Methods(http.MethodPost)
	r.HandleFunc("/places", h.ListPlaces).Methods(http.MethodGet)
	r.HandleFunc("/places/{id}", h.GetPlace).Methods(http.MethodGet)
	r.HandleFunc("/stats", h.GetStats).Methods(http.MethodGet)
	r.HandleFunc("/cities", h.GetCities).Methods(http.MethodGet)
	r.HandleFunc("/categories", h.GetCategories).Methods(http.MethodGet)
}

// ErrorResponse представляет тело ответа с ошибкой.
type ErrorResponse struct {
	Error  string                   `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

// Root возвращает краткое описание сервиса.
//
// @Summary      Информация о сервисе
// @Description  Возвращает имя, версию сервиса и ссылку на документацию
// @Tags         service
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"name":    h.info.Name,
		"version": h.info.Version,
		"message": "Selamat datang! Rekomendasi destinasi wisata Indonesia",
		"docs":    "/swagger/index.html",
	})
}

// HealthResponse представляет ответ проверки работоспособности.
type HealthResponse struct {
	Status     string        `json:"status"`
	DataSource string        `json:"data_source"`
	Catalog    catalog.State `json:"catalog"`
	Builtin    catalog.State `json:"builtin"`
}

// HealthCheck обрабатывает GET запрос на проверку работоспособности сервиса.
// Сервис здоров, пока доступен хотя бы встроенный набор мест.
//
// @Summary      Проверка работоспособности сервиса
// @Description  Возвращает статус сервиса и состояние загрузки каталога
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse  "Нет доступного источника данных"
// @Router       /health [get]
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	primary, builtin := h.recommender.CatalogStates()
	_, source := h.recommender.Active()

	resp := HealthResponse{DataSource: source, Catalog: primary, Builtin: builtin}
	code := http.StatusOK
	switch source {
	case models.SourceModel:
		resp.Status = "ok"
	case models.SourceDummy:
		resp.Status = "degraded"
	default:
		resp.Status = "unavailable"
		code = http.StatusServiceUnavailable
	}

	h.writeJSON(w, code, resp)
}

// GetRecommendations обрабатывает GET запрос на получение рекомендаций.
// Интересы передаются через запятую или повтором параметра interests.
//
// @Summary      Получить рекомендации мест
// @Description  Возвращает ранжированный список мест. Жесткие фильтры: location, category, price_category, min_rating. Интересы влияют на оценку через TF-IDF сходство с описанием.
// @Tags         recommendations
// @Produce      json
// @Param        location        query     string   false  "Город"
// @Param        category        query     string   false  "Категория"
// @Param        price_category  query     string   false  "Ценовая категория"  Enums(cheap, mid, expensive)
// @Param        min_rating      query     number   false  "Минимальный рейтинг (1-5)"
// @Param        interests       query     []string false  "Интересы"  collectionFormat(csv)
// @Param        top_n           query     int      false  "Количество результатов (1-50)"  default(10)
// @Success      200  {object}  models.RecommendResponse
// @Failure      400  {object}  ErrorResponse  "Неверный запрос"
// @Router       /recommendations [get]
func (h *Handlers) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.recommend(w, r, q)
}

// PostRecommendations обрабатывает POST запрос с запросом рекомендаций в теле.
//
// @Summary      Получить рекомендации мест (JSON)
// @Description  То же, что GET /recommendations, но параметры передаются в теле запроса
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        request  body      models.Query  true  "Запрос на рекомендации"
// @Success      200      {object}  models.RecommendResponse
// @Failure      400      {object}  ErrorResponse  "Неверный запрос"
// @Router       /recommendations [post]
func (h *Handlers) PostRecommendations(w http.ResponseWriter, r *http.Request) {
	var q models.Query
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&q); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if q.TopN == 0 {
		q.TopN = h.recommender.NormalizeTopN(0)
	}
	h.recommend(w, r, q)
}

func (h *Handlers) recommend(w http.ResponseWriter, r *http.Request, q models.Query) {
	if verr := validation.ValidateStruct(&q); verr != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Fields: verr.Fields})
		return
	}

	if h.cache != nil {
		if cached, ok := h.cache.Get(r.Context(), q); ok {
			h.writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	result := h.recommender.Recommend(q)
	resp := models.RecommendResponse{
		Recommendations: result.Places,
		Total:           len(result.Places),
		DataSource:      result.DataSource,
		DegradedReason:  result.DegradedReason,
	}

	if h.cache != nil {
		h.cache.Set(r.Context(), q, resp)
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// ListPlaces обрабатывает GET запрос на получение списка мест без ранжирования.
//
// @Summary      Список мест
// @Description  Возвращает места активного каталога с жесткими фильтрами в исходном порядке
// @Tags         places
// @Produce      json
// @Param        location        query     string  false  "Город"
// @Param        category        query     string  false  "Категория"
// @Param        price_category  query     string  false  "Ценовая категория"  Enums(cheap, mid, expensive)
// @Param        min_rating      query     number  false  "Минимальный рейтинг (1-5)"
// @Param        limit           query     int     false  "Максимум записей (1-100)"  default(20)
// @Success      200  {object}  models.PlacesResponse
// @Failure      400  {object}  ErrorResponse  "Неверный запрос"
// @Router       /places [get]
func (h *Handlers) ListPlaces(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseFilters(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q.Interests = nil
	if verr := validation.ValidateStruct(&q); verr != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Fields: verr.Fields})
		return
	}

	limit := defaultPlacesLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 || limit > maxPlacesLimit {
			h.writeError(w, http.StatusBadRequest, "limit must be an integer in [1, 100]")
			return
		}
	}

	places, source := h.recommender.Active()
	filtered := recommend.ApplyHardFilters(places, q)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	h.writeJSON(w, http.StatusOK, models.PlacesResponse{
		Places:     filtered,
		Total:      len(filtered),
		DataSource: source,
	})
}

// GetPlace обрабатывает GET запрос на получение места по идентификатору.
//
// @Summary      Получить место
// @Description  Возвращает полную информацию о месте по его идентификатору
// @Tags         places
// @Produce      json
// @Param        id   path      int  true  "Идентификатор места"
// @Success      200  {object}  models.Place
// @Failure      400  {object}  ErrorResponse  "Неверный идентификатор"
// @Failure      404  {object}  ErrorResponse  "Место не найдено"
// @Failure      503  {object}  ErrorResponse  "Каталог недоступен"
// @Router       /places/{id} [get]
func (h *Handlers) GetPlace(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "Place ID must be a positive integer")
		return
	}

	place, _, err := h.recommender.Find(id)
	switch {
	case errors.Is(err, catalog.ErrPlaceNotFound):
		h.writeError(w, http.StatusNotFound, "Place not found")
		return
	case errors.Is(err, catalog.ErrNotLoaded):
		h.writeError(w, http.StatusServiceUnavailable, "Catalog unavailable")
		return
	case err != nil:
		h.logger.Error("error getting place", map[string]interface{}{"error": err, "placeId": id})
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, place)
}

// GetStats обрабатывает GET запрос на получение сводной статистики каталога.
//
// @Summary      Статистика каталога
// @Description  Возвращает число мест, средний рейтинг, распределение по категориям и список городов
// @Tags         stats
// @Produce      json
// @Success      200  {object}  models.Stats
// @Router       /stats [get]
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	places, source := h.recommender.Active()
	h.writeJSON(w, http.StatusOK, catalog.Summarize(places, source))
}

// GetCities обрабатывает GET запрос на получение агрегатов по городам.
// При подключенном PostgreSQL данные берутся из БД, иначе из активного каталога.
//
// @Summary      Список городов
// @Description  Возвращает число мест, средний рейтинг и минимальную цену по каждому городу
// @Tags         dictionaries
// @Produce      json
// @Success      200  {array}   models.CityStat
// @Router       /cities [get]
func (h *Handlers) GetCities(w http.ResponseWriter, r *http.Request) {
	if h.dictionaries != nil {
		cities, err := h.dictionaries.GetCities(r.Context())
		if err == nil {
			h.writeJSON(w, http.StatusOK, cities)
			return
		}
		h.logger.Warn("failed to read cities from database, using catalog", map[string]interface{}{"error": err})
	}

	places, _ := h.recommender.Active()
	h.writeJSON(w, http.StatusOK, catalog.CityStats(places))
}

// GetCategories обрабатывает GET запрос на получение справочника категорий.
// При подключенном PostgreSQL данные берутся из БД, иначе выводятся из каталога.
//
// @Summary      Список категорий
// @Description  Возвращает доступные категории мест
// @Tags         dictionaries
// @Produce      json
// @Success      200  {array}   models.Category
// @Router       /categories [get]
func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	if h.dictionaries != nil {
		categories, err := h.dictionaries.GetCategories(r.Context())
		if err == nil {
			h.writeJSON(w, http.StatusOK, categories)
			return
		}
		h.logger.Warn("failed to read categories from database, using catalog", map[string]interface{}{"error": err})
	}

	places, _ := h.recommender.Active()
	names := make(map[string]struct{})
	for _, p := range places {
		names[p.Category] = struct{}{}
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	categories := make([]models.Category, len(sorted))
	for i, name := range sorted {
		categories[i] = models.Category{ID: i + 1, Name: name}
	}
	h.writeJSON(w, http.StatusOK, categories)
}

// parseQuery разбирает параметры запроса. Отсутствующий top_n заменяется значением по умолчанию;
// проверку диапазонов выполняет validation.
func (h *Handlers) parseQuery(r *http.Request) (models.Query, error) {
	q, err := h.parseFilters(r)
	if err != nil {
		return q, err
	}

	if v := r.URL.Query().Get("top_n"); v != "" {
		topN, err := strconv.Atoi(v)
		if err != nil {
			return q, errors.New("top_n must be an integer")
		}
		q.TopN = topN
	}

	return q, nil
}

// parseFilters читает фильтры и интересы. TopN заполняется значением по умолчанию.
func (h *Handlers) parseFilters(r *http.Request) (models.Query, error) {
	values := r.URL.Query()
	q := models.Query{
		Location:      strings.TrimSpace(values.Get("location")),
		Category:      strings.TrimSpace(values.Get("category")),
		PriceCategory: strings.ToLower(strings.TrimSpace(values.Get("price_category"))),
		TopN:          h.recommender.NormalizeTopN(0),
	}

	if v := values.Get("min_rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return q, errors.New("min_rating must be a number")
		}
		q.MinRating = &rating
	}

	for _, raw := range values["interests"] {
		for _, interest := range strings.Split(raw, ",") {
			if interest = strings.TrimSpace(interest); interest != "" {
				q.Interests = append(q.Interests, interest)
			}
		}
	}

	return q, nil
}

func (h *Handlers) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("error encoding response", map[string]interface{}{"error": err})
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, code int, msg string) {
	h.writeJSON(w, code, ErrorResponse{Error: msg})
}
