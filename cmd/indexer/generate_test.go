package main

import (
	"context"
	"testing"

	"github.com/akozadaev/go_tourism_recommender/internal/catalog"
	"github.com/akozadaev/go_tourism_recommender/internal/logger"
	"github.com/akozadaev/go_tourism_recommender/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource []models.Place

func (s sliceSource) Name() string { return "generated" }

func (s sliceSource) LoadPlaces(context.Context) ([]models.Place, error) { return s, nil }

func TestGenerateSamplePlaces(t *testing.T) {
	builtin, err := catalog.Builtin()
	require.NoError(t, err)

	places := generateSamplePlaces(builtin, 200, 7)

	require.Len(t, places, len(builtin)+200)
	assert.Equal(t, builtin, places[:len(builtin)])

	// Сгенерированный набор должен загружаться в каталог без ошибок
	store := catalog.NewStore(sliceSource(places), catalog.DefaultPriceThresholds(), logger.NewNoOpLogger())
	state := store.Load(context.Background())
	assert.True(t, state.Available(), state.Reason)
}

func TestGenerateSamplePlaces_Deterministic(t *testing.T) {
	a := generateSamplePlaces(nil, 50, 42)
	b := generateSamplePlaces(nil, 50, 42)
	c := generateSamplePlaces(nil, 50, 43)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 1, a[0].ID)
}
