package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgres(t *testing.T) (*PostgresStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStorageWithDB(db), mock
}

func TestPostgres_LoadPlaces(t *testing.T) {
	ps, mock := newMockPostgres(t)

	rows := sqlmock.NewRows([]string{"place_id", "name", "description", "category", "city", "price", "rating"}).
		AddRow(1, "Candi Borobudur", "Candi Buddha terbesar", "Budaya", "Magelang", 50000, 4.8).
		AddRow(2, "Pantai Kuta", nil, "Bahari", "Badung", 0, 4.4)
	mock.ExpectQuery("SELECT place_id, name, description, category, city, price, rating FROM places").
		WillReturnRows(rows)

	places, err := ps.LoadPlaces(context.Background())
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "Candi Buddha terbesar", places[0].Description)
	assert.Empty(t, places[1].Description)
	assert.Equal(t, "postgres", ps.Name())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_LoadPlacesQueryError(t *testing.T) {
	ps, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT place_id").WillReturnError(errors.New("relation \"places\" does not exist"))

	_, err := ps.LoadPlaces(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query places")
}

func TestPostgres_GetCategories(t *testing.T) {
	ps, mock := newMockPostgres(t)

	rows := sqlmock.NewRows([]string{"id", "name", "description"}).
		AddRow(1, "Bahari", "Wisata pantai dan laut").
		AddRow(2, "Budaya", nil)
	mock.ExpectQuery("SELECT id, name, description FROM categories ORDER BY name").WillReturnRows(rows)

	categories, err := ps.GetCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Bahari", categories[0].Name)
	assert.Empty(t, categories[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetCities(t *testing.T) {
	ps, mock := newMockPostgres(t)

	rows := sqlmock.NewRows([]string{"city", "count", "avg", "min"}).
		AddRow("Badung", 3, 4.43, 0).
		AddRow("Yogyakarta", 2, 4.7, 15000)
	mock.ExpectQuery("SELECT city, COUNT").WillReturnRows(rows)

	cities, err := ps.GetCities(context.Background())
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, 3, cities[0].PlacesCount)
	assert.Equal(t, 15000, cities[1].MinPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ScanError(t *testing.T) {
	ps, mock := newMockPostgres(t)

	rows := sqlmock.NewRows([]string{"id", "name", "description"}).AddRow("not-a-number", "Bahari", "")
	mock.ExpectQuery("SELECT id, name, description FROM categories").WillReturnRows(rows)

	_, err := ps.GetCategories(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to scan category")
}
