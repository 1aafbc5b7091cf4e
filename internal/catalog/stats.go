package catalog

import (
	"math"
	"sort"

	"github.com/akozadaev/go_tourism_recommender/internal/models"
)

// Summarize считает сводную статистику по набору мест.
func Summarize(places []models.Place, dataSource string) models.Stats {
	stats := models.Stats{
		TotalPlaces: len(places),
		Categories:  []models.CategoryStat{},
		Cities:      []string{},
		DataSource:  dataSource,
	}
	if len(places) == 0 {
		return stats
	}

	var ratingSum float64
	categories := make(map[string]int)
	cities := make(map[string]struct{})
	for _, p := range places {
		ratingSum += p.Rating
		categories[p.Category]++
		cities[p.City] = struct{}{}
	}
	stats.AvgRating = round2(ratingSum / float64(len(places)))

	for name, count := range categories {
		stats.Categories = append(stats.Categories, models.CategoryStat{Category: name, Count: count})
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		if stats.Categories[i].Count != stats.Categories[j].Count {
			return stats.Categories[i].Count > stats.Categories[j].Count
		}
		return stats.Categories[i].Category < stats.Categories[j].Category
	})

	for city := range cities {
		stats.Cities = append(stats.Cities, city)
	}
	sort.Strings(stats.Cities)

	return stats
}

// CityStats группирует места по городу. Результат отсортирован по имени города.
func CityStats(places []models.Place) []models.CityStat {
	byCity := make(map[string]*models.CityStat)
	sums := make(map[string]float64)
	for _, p := range places {
		st, ok := byCity[p.City]
		if !ok {
			st = &models.CityStat{City: p.City, MinPrice: p.Price}
			byCity[p.City] = st
		}
		st.PlacesCount++
		sums[p.City] += p.Rating
		if p.Price < st.MinPrice {
			st.MinPrice = p.Price
		}
	}

	out := make([]models.CityStat, 0, len(byCity))
	for city, st := range byCity {
		st.AvgRating = round2(sums[city] / float64(st.PlacesCount))
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].City < out[j].City })
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
