// Package catalog содержит хранилище каталога мест, загружаемого один раз при старте,
// и встроенный резервный набор данных.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akozadaev/go_tourism_recommender/internal/logger"
	"github.com/akozadaev/go_tourism_recommender/internal/models"
)

var (
	// ErrNotLoaded возвращается при обращении к каталогу, который не загружен.
	ErrNotLoaded = errors.New("catalog not loaded")
	// ErrEmptyCatalog возвращается, если источник вернул пустой набор мест.
	ErrEmptyCatalog = errors.New("catalog is empty")
	// ErrPlaceNotFound возвращается, если места с таким идентификатором нет в каталоге.
	ErrPlaceNotFound = errors.New("place not found")
)

// Source загружает места из внешнего артефакта (файл, индекс, таблица).
type Source interface {
	Name() string
	LoadPlaces(ctx context.Context) ([]models.Place, error)
}

// Status описывает состояние загрузки каталога.
type Status string

const (
	StatusPending     Status = "pending"
	StatusLoaded      Status = "loaded"
	StatusUnavailable Status = "unavailable"
)

// State представляет результат загрузки каталога.
type State struct {
	Status   Status    `json:"status"`
	Source   string    `json:"source"`
	Places   int       `json:"places"`
	Reason   string    `json:"reason,omitempty"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
}

// Available сообщает, можно ли обслуживать запросы из каталога.
func (s State) Available() bool {
	return s.Status == StatusLoaded
}

// PriceThresholds задает границы категорий цен: price <= CheapMax - cheap,
// price <= MidMax - mid, иначе expensive.
type PriceThresholds struct {
	CheapMax int
	MidMax   int
}

// DefaultPriceThresholds возвращает пороги по умолчанию (в рупиях).
func DefaultPriceThresholds() PriceThresholds {
	return PriceThresholds{CheapMax: 25000, MidMax: 100000}
}

// Categorize возвращает категорию цены.
func (t PriceThresholds) Categorize(price int) string {
	switch {
	case price <= t.CheapMax:
		return models.PriceCheap
	case price <= t.MidMax:
		return models.PriceMid
	default:
		return models.PriceExpensive
	}
}

type snapshot struct {
	places []models.Place
	byID   map[int]int
	state  State
}

// Store хранит неизменяемый снимок каталога.
// Load выполняется ровно один раз; после этого снимок только читается.
type Store struct {
	source     Source
	thresholds PriceThresholds
	logger     logger.Logger

	once sync.Once
	snap atomic.Pointer[snapshot]
}

// NewStore создает хранилище каталога поверх заданного источника.
// source может быть nil: тогда каталог считается недоступным.
func NewStore(source Source, thresholds PriceThresholds, log logger.Logger) *Store {
	name := "none"
	if source != nil {
		name = source.Name()
	}
	s := &Store{
		source:     source,
		thresholds: thresholds,
		logger:     log.WithFields(map[string]interface{}{"component": "catalog", "source": name}),
	}
	s.snap.Store(&snapshot{state: State{Status: StatusPending, Source: name}})
	return s
}

// Load загружает каталог из источника. Повторные вызовы возвращают результат первого.
// Ошибка загрузки не возвращается наружу, а представляется состоянием StatusUnavailable.
func (s *Store) Load(ctx context.Context) State {
	s.once.Do(func() {
		s.snap.Store(s.load(ctx))
	})
	return s.State()
}

func (s *Store) load(ctx context.Context) *snapshot {
	state := s.snap.Load().state
	if s.source == nil {
		state.Status = StatusUnavailable
		state.Reason = "no catalog source configured"
		s.logger.Warn("catalog unavailable", map[string]interface{}{"reason": state.Reason})
		return &snapshot{state: state}
	}

	start := time.Now()
	places, err := s.source.LoadPlaces(ctx)
	if err == nil && len(places) == 0 {
		err = ErrEmptyCatalog
	}
	if err == nil {
		err = validatePlaces(places)
	}
	if err != nil {
		state.Status = StatusUnavailable
		state.Reason = err.Error()
		s.logger.Warn("catalog unavailable", map[string]interface{}{"reason": state.Reason})
		return &snapshot{state: state}
	}

	byID := make(map[int]int, len(places))
	for i := range places {
		places[i].PriceCategory = s.thresholds.Categorize(places[i].Price)
		byID[places[i].ID] = i
	}

	state.Status = StatusLoaded
	state.Places = len(places)
	state.LoadedAt = time.Now().UTC()
	s.logger.Info("catalog loaded", map[string]interface{}{
		"places":     len(places),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return &snapshot{places: places, byID: byID, state: state}
}

// State возвращает текущее состояние загрузки.
func (s *Store) State() State {
	return s.snap.Load().state
}

// Snapshot возвращает копию каталога. Второе значение false, если каталог не загружен.
func (s *Store) Snapshot() ([]models.Place, bool) {
	snap := s.snap.Load()
	if !snap.state.Available() {
		return nil, false
	}
	cp := make([]models.Place, len(snap.places))
	copy(cp, snap.places)
	return cp, true
}

// Find возвращает место по идентификатору.
func (s *Store) Find(id int) (models.Place, error) {
	snap := s.snap.Load()
	if !snap.state.Available() {
		return models.Place{}, ErrNotLoaded
	}
	i, ok := snap.byID[id]
	if !ok {
		return models.Place{}, fmt.Errorf("place %d: %w", id, ErrPlaceNotFound)
	}
	return snap.places[i], nil
}

func validatePlaces(places []models.Place) error {
	seen := make(map[int]struct{}, len(places))
	for _, p := range places {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate place_id %d", models.ErrInvalidPlace, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// BuiltinSource отдает встроенный набор мест как источник каталога.
type BuiltinSource struct{}

// Name возвращает имя источника.
func (BuiltinSource) Name() string { return "builtin" }

// LoadPlaces возвращает встроенные места.
func (BuiltinSource) LoadPlaces(context.Context) ([]models.Place, error) {
	return Builtin()
}
