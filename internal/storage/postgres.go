package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akozadaev/go_tourism_recommender/internal/models"
	_ "github.com/lib/pq"
)

// PostgresStorage предоставляет каталог мест и справочники из PostgreSQL.
type PostgresStorage struct {
	db *sql.DB // Подключение к базе данных PostgreSQL
}

// NewPostgresStorage создает новый экземпляр PostgresStorage и устанавливает подключение к БД.
// DSN должен быть в формате: "host=... port=... user=... password=... dbname=... sslmode=..."
func NewPostgresStorage(ctx context.Context, dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewPostgresStorageWithDB(db), nil
}

// NewPostgresStorageWithDB оборачивает уже открытое подключение.
func NewPostgresStorageWithDB(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// Close закрывает подключение к базе данных PostgreSQL.
func (ps *PostgresStorage) Close() error {
	return ps.db.Close()
}

// Ping проверяет доступность базы данных.
func (ps *PostgresStorage) Ping(ctx context.Context) error {
	return ps.db.PingContext(ctx)
}

// Name возвращает имя источника каталога.
func (ps *PostgresStorage) Name() string {
	return "postgres"
}

// LoadPlaces возвращает все места из таблицы places, упорядоченные по place_id.
func (ps *PostgresStorage) LoadPlaces(ctx context.Context) ([]models.Place, error) {
	query := `SELECT place_id, name, description, category, city, price, rating FROM places ORDER BY place_id`

	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	var places []models.Place
	for rows.Next() {
		var p models.Place
		var description sql.NullString
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&description,
			&p.Category,
			&p.City,
			&p.Price,
			&p.Rating,
		); err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		p.Description = description.String
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return places, nil
}

// GetCategories возвращает справочник категорий, отсортированный по имени.
func (ps *PostgresStorage) GetCategories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, description FROM categories ORDER BY name`

	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Description = description.String
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return categories, nil
}

// GetCities возвращает агрегаты по городам из таблицы places.
func (ps *PostgresStorage) GetCities(ctx context.Context) ([]models.CityStat, error) {
	query := `SELECT city, COUNT(*), ROUND(AVG(rating)::numeric, 2), MIN(price)
		FROM places GROUP BY city ORDER BY city`

	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	cities := []models.CityStat{}
	for rows.Next() {
		var c models.CityStat
		if err := rows.Scan(&c.City, &c.PlacesCount, &c.AvgRating, &c.MinPrice); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return cities, nil
}
