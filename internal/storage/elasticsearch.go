// Package storage содержит источники каталога мест: JSON-артефакт, индекс
// Elasticsearch/OpenSearch и таблицу PostgreSQL.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/akozadaev/go_tourism_recommender/internal/models"
	"github.com/elastic/go-elasticsearch/v8"
)

// searchPageSize ограничивает размер одной страницы при выгрузке индекса.
const searchPageSize = 1000

// ElasticsearchStorage предоставляет методы для работы с индексом мест в Elasticsearch/OpenSearch.
// Использует прямые HTTP запросы для совместимости с OpenSearch.
type ElasticsearchStorage struct {
	client     *elasticsearch.Client // Официальный клиент Elasticsearch
	index      string                // Имя индекса мест
	httpClient *http.Client          // HTTP клиент для прямых запросов
	baseURL    string                // Базовый URL Elasticsearch/OpenSearch
}

// NewElasticsearchStorageWithURL создает новый экземпляр ElasticsearchStorage с указанным URL.
func NewElasticsearchStorageWithURL(client *elasticsearch.Client, index string, baseURL string) *ElasticsearchStorage {
	return &ElasticsearchStorage{
		client:     client,
		index:      index,
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// NewElasticsearchStorage создает клиент и хранилище для заданного URL.
func NewElasticsearchStorage(baseURL, index string) (*ElasticsearchStorage, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:         []string{baseURL},
		DisableMetaHeader: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return NewElasticsearchStorageWithURL(client, index, baseURL), nil
}

// Name возвращает имя источника каталога.
func (es *ElasticsearchStorage) Name() string {
	return "elasticsearch"
}

// CreateIndex создает индекс с заданным маппингом.
// Если индекс уже существует, функция возвращает nil без ошибки.
func (es *ElasticsearchStorage) CreateIndex(ctx context.Context, mappingJSON string) error {
	res, err := es.client.Indices.Exists([]string{es.index}, es.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = es.client.Indices.Create(
		es.index,
		es.client.Indices.Create.WithBody(strings.NewReader(mappingJSON)),
		es.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error creating index: %s", string(body))
	}

	return nil
}

// BulkIndexPlaces индексирует несколько мест за один запрос Bulk API.
func (es *ElasticsearchStorage) BulkIndexPlaces(ctx context.Context, places []models.Place) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	for _, place := range places {
		meta := map[string]interface{}{
			"index": map[string]interface{}{
				"_index": es.index,
				"_id":    fmt.Sprint(place.ID),
			},
		}
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("failed to encode meta: %w", err)
		}
		if err := enc.Encode(place); err != nil {
			return fmt.Errorf("failed to encode place: %w", err)
		}
	}

	// Прямой HTTP запрос обходит проверку типа сервера в клиенте
	url := fmt.Sprintf("%s/_bulk?refresh=true", es.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")

	res, err := es.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to bulk index: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error bulk indexing: status %d, body: %s", res.StatusCode, string(body))
	}

	var result struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode bulk response: %w", err)
	}
	if result.Errors {
		return fmt.Errorf("bulk indexing reported item errors")
	}

	return nil
}

// LoadPlaces выгружает весь индекс, упорядоченный по place_id.
// Страницы запрашиваются через search_after.
func (es *ElasticsearchStorage) LoadPlaces(ctx context.Context) ([]models.Place, error) {
	var places []models.Place
	var after []interface{}

	for {
		hits, err := es.searchPage(ctx, after)
		if err != nil {
			return nil, err
		}
		for _, hit := range hits {
			places = append(places, hit.Source)
		}
		if len(hits) < searchPageSize {
			break
		}
		after = hits[len(hits)-1].Sort
	}

	return places, nil
}

type searchHit struct {
	Source models.Place   `json:"_source"`
	Sort   []interface{} `json:"sort"`
}

func (es *ElasticsearchStorage) searchPage(ctx context.Context, after []interface{}) ([]searchHit, error) {
	query := map[string]interface{}{
		"size":  searchPageSize,
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"sort": []map[string]interface{}{
			{"place_id": map[string]interface{}{"order": "asc"}},
		},
	}
	if after != nil {
		query["search_after"] = after
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	url := fmt.Sprintf("%s/%s/_search", es.baseURL, es.index)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := es.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("error searching: status %d, body: %s", res.StatusCode, string(body))
	}

	var result struct {
		Hits struct {
			Hits []searchHit `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Hits.Hits, nil
}
