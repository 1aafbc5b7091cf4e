package main

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/akozadaev/go_tourism_recommender/internal/models"
)

type placeTemplate struct {
	category string
	prefixes []string
	phrases  []string
	minPrice int
	maxPrice int
}

var sampleCities = []string{
	"Jakarta", "Yogyakarta", "Bandung", "Semarang", "Surabaya",
	"Badung", "Gianyar", "Malang", "Makassar", "Medan",
}

var sampleTemplates = []placeTemplate{
	{
		category: "Budaya",
		prefixes: []string{"Candi", "Museum", "Keraton", "Benteng", "Kampung Adat"},
		phrases: []string{
			"situs bersejarah dengan nilai budaya tinggi",
			"koleksi sejarah dan arkeologi nusantara",
			"arsitektur kolonial dan tradisi Jawa",
			"pertunjukan tari tradisional dan gamelan",
		},
		minPrice: 0, maxPrice: 75000,
	},
	{
		category: "Bahari",
		prefixes: []string{"Pantai", "Pulau", "Teluk", "Dermaga"},
		phrases: []string{
			"pasir putih dan air laut jernih",
			"snorkeling dan menyelam di terumbu karang",
			"ombak besar untuk berselancar",
			"pemandangan matahari terbenam di tepi laut",
		},
		minPrice: 0, maxPrice: 150000,
	},
	{
		category: "Cagar Alam",
		prefixes: []string{"Gunung", "Danau", "Air Terjun", "Taman Nasional", "Hutan"},
		phrases: []string{
			"trekking alam dengan udara sejuk",
			"hutan tropis dan satwa liar",
			"kawah gunung berapi dan matahari terbit",
			"air terjun tersembunyi di tengah hutan",
		},
		minPrice: 5000, maxPrice: 400000,
	},
	{
		category: "Taman Hiburan",
		prefixes: []string{"Taman", "Dunia", "Wahana"},
		phrases: []string{
			"wahana keluarga dan permainan anak",
			"hiburan modern dan pertunjukan malam",
			"kebun binatang dan taman bermain",
		},
		minPrice: 20000, maxPrice: 300000,
	},
	{
		category: "Pusat Perbelanjaan",
		prefixes: []string{"Pasar", "Plaza", "Jalan"},
		phrases: []string{
			"kerajinan tangan dan batik lokal",
			"kuliner kaki lima dan oleh-oleh",
			"pusat belanja modern",
		},
		minPrice: 0, maxPrice: 10000,
	},
}

// generateSamplePlaces возвращает встроенные места и count сгенерированных после них.
// Результат детерминирован для заданного seed.
func generateSamplePlaces(builtin []models.Place, count int, seed int64) []models.Place {
	rng := rand.New(rand.NewSource(seed))

	places := make([]models.Place, 0, len(builtin)+count)
	places = append(places, builtin...)

	nextID := 1
	for _, p := range builtin {
		if p.ID >= nextID {
			nextID = p.ID + 1
		}
	}

	for i := 0; i < count; i++ {
		tmpl := sampleTemplates[rng.Intn(len(sampleTemplates))]
		city := sampleCities[rng.Intn(len(sampleCities))]
		prefix := tmpl.prefixes[rng.Intn(len(tmpl.prefixes))]

		// Две разные фразы описания
		first := rng.Intn(len(tmpl.phrases))
		second := (first + 1 + rng.Intn(len(tmpl.phrases)-1)) % len(tmpl.phrases)
		description := fmt.Sprintf("%s %s dengan %s",
			strings.ToUpper(tmpl.phrases[first][:1])+tmpl.phrases[first][1:], city, tmpl.phrases[second])

		price := tmpl.minPrice + rng.Intn(tmpl.maxPrice-tmpl.minPrice+1)
		price -= price % 500
		rating := math.Round((3.0+rng.Float64()*2.0)*10) / 10

		places = append(places, models.Place{
			ID:          nextID,
			Name:        fmt.Sprintf("%s %s %d", prefix, city, nextID),
			Description: description,
			Category:    tmpl.category,
			City:        city,
			Price:       price,
			Rating:      rating,
		})
		nextID++
	}

	return places
}
