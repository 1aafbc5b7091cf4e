// Package models содержит доменные типы сервиса рекомендаций туристических мест.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Категории цен, вычисляемые из поля Price по порогам конфигурации.
const (
	PriceCheap     = "cheap"
	PriceMid       = "mid"
	PriceExpensive = "expensive"
)

// Источники данных для ответа рекомендаций.
const (
	SourceModel      = "ml_model"
	SourcePopularity = "popularity"
	SourceDummy      = "dummy"
	SourceNone       = "none"
)

// Границы рейтинга места.
const (
	MinRating = 1.0
	MaxRating = 5.0
)

// TopNLimit совпадает с верхней границей top_n в теге validate у Query.
const TopNLimit = 50

var (
	// ErrInvalidPlace возвращается, если запись каталога не проходит проверку.
	ErrInvalidPlace = errors.New("invalid place")
)

// Place представляет туристическое место в каталоге.
// Создается один раз при загрузке каталога и далее не изменяется.
type Place struct {
	ID            int     `json:"place_id" yaml:"place_id"`
	Name          string  `json:"name" yaml:"name"`
	Description   string  `json:"description" yaml:"description"`
	Category      string  `json:"category" yaml:"category"`
	City          string  `json:"city" yaml:"city"`
	Price         int     `json:"price" yaml:"price"`
	Rating        float64 `json:"rating" yaml:"rating"`
	PriceCategory string  `json:"price_category" yaml:"-"`
}

// Validate проверяет обязательные поля места.
func (p Place) Validate() error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("%w: place_id must be positive, got %d", ErrInvalidPlace, p.ID)
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: place %d has empty name", ErrInvalidPlace, p.ID)
	case p.Price < 0:
		return fmt.Errorf("%w: place %d has negative price %d", ErrInvalidPlace, p.ID, p.Price)
	case !(p.Rating >= MinRating && p.Rating <= MaxRating):
		return fmt.Errorf("%w: place %d rating %.2f out of [%.1f, %.1f]", ErrInvalidPlace, p.ID, p.Rating, MinRating, MaxRating)
	}
	return nil
}

// Query представляет параметры запроса рекомендаций.
// Location, Category, PriceCategory и MinRating являются жесткими фильтрами,
// Interests используются только для контентного сходства.
type Query struct {
	Location      string   `json:"location,omitempty" validate:"omitempty,max=100"`
	Category      string   `json:"category,omitempty" validate:"omitempty,max=100"`
	PriceCategory string   `json:"price_category,omitempty" validate:"omitempty,oneof=cheap mid expensive"`
	MinRating     *float64 `json:"min_rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Interests     []string `json:"interests,omitempty" validate:"omitempty,max=20,dive,max=100"`
	TopN          int      `json:"top_n,omitempty" validate:"gte=1,lte=50"`
}

// HasInterests сообщает, содержит ли запрос хотя бы одно непустое ключевое слово.
func (q Query) HasInterests() bool {
	for _, interest := range q.Interests {
		if strings.TrimSpace(interest) != "" {
			return true
		}
	}
	return false
}

// ScoredPlace представляет место с рассчитанными оценками ранжирования.
// ContentScore заполнен только если переданы интересы и расчет сходства выполнен.
type ScoredPlace struct {
	Place
	ContentScore    *float64 `json:"content_score,omitempty"`
	PopularityScore float64  `json:"popularity_score"`
	PriceScore      float64  `json:"price_score"`
	FinalScore      float64  `json:"final_score"`
	DataSource      string   `json:"data_source"`
}

// RecommendResponse представляет ответ с рекомендациями.
type RecommendResponse struct {
	Recommendations []ScoredPlace `json:"recommendations"`
	Total           int           `json:"total"`
	DataSource      string        `json:"data_source"`
	DegradedReason  string        `json:"degraded_reason,omitempty"`
}

// PlacesResponse представляет ответ со списком мест без ранжирования.
type PlacesResponse struct {
	Places     []Place `json:"places"`
	Total      int     `json:"total"`
	DataSource string  `json:"data_source"`
}

// CategoryStat представляет количество мест в категории.
type CategoryStat struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Stats представляет сводную статистику по активному каталогу.
type Stats struct {
	TotalPlaces int            `json:"total_places"`
	AvgRating   float64        `json:"avg_rating"`
	Categories  []CategoryStat `json:"categories"`
	Cities      []string       `json:"cities"`
	DataSource  string         `json:"data_source"`
}

// CityStat представляет агрегаты по городу.
type CityStat struct {
	City        string  `json:"city"`
	PlacesCount int     `json:"places_count"`
	AvgRating   float64 `json:"avg_rating"`
	MinPrice    int     `json:"min_price"`
}

// Category представляет категорию из справочника PostgreSQL.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
