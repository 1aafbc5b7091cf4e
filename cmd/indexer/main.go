package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/akozadaev/go_tourism_recommender/internal/catalog"
	"github.com/akozadaev/go_tourism_recommender/internal/config"
	"github.com/akozadaev/go_tourism_recommender/internal/logger"
	"github.com/akozadaev/go_tourism_recommender/internal/storage"
)

func main() {
	count := flag.Int("count", 100, "количество генерируемых мест")
	seed := flag.Int64("seed", 42, "seed генератора")
	out := flag.String("out", "", "путь к JSON-артефакту (по умолчанию catalog.path)")
	toES := flag.Bool("elasticsearch", false, "проиндексировать места в Elasticsearch")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	appLog := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	defer logger.Sync(appLog)

	builtin, err := catalog.Builtin()
	if err != nil {
		log.Fatalf("Built-in dataset is invalid: %v", err)
	}

	places := generateSamplePlaces(builtin, *count, *seed)
	appLog.Info("places generated", map[string]interface{}{"count": len(places), "seed": *seed})

	path := *out
	if path == "" {
		path = cfg.Catalog.Path
	}
	if err := storage.NewFileStorage(path).WritePlaces(places); err != nil {
		log.Fatalf("Error writing catalog artifact: %v", err)
	}
	appLog.Info("catalog artifact written", map[string]interface{}{"path": path})

	if !*toES {
		return
	}

	esStorage, err := storage.NewElasticsearchStorage(cfg.Database.Elasticsearch.URL, cfg.Catalog.Index)
	if err != nil {
		log.Fatalf("Error creating Elasticsearch client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if mapping := readMapping(); mapping != "" {
		if err := esStorage.CreateIndex(ctx, mapping); err != nil {
			appLog.Warn("could not create index", map[string]interface{}{"error": err})
		}
	} else {
		appLog.Warn("could not read mapping file from any location", nil)
	}

	if err := esStorage.BulkIndexPlaces(ctx, places); err != nil {
		log.Fatalf("Error indexing places: %v", err)
	}
	appLog.Info("indexing completed", map[string]interface{}{"index": cfg.Catalog.Index, "count": len(places)})
}

// readMapping ищет файл маппинга относительно рабочего каталога и бинарника.
func readMapping() string {
	paths := []string{
		"migrations/elasticsearch_mapping.json",
		"../migrations/elasticsearch_mapping.json",
		filepath.Join(filepath.Dir(os.Args[0]), "../migrations/elasticsearch_mapping.json"),
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			return string(data)
		}
	}
	return ""
}
