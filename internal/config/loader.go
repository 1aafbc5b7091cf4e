package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load загружает конфигурацию: .env, configs/config.yaml, configs/config.<env>.yaml
// и переменные окружения (например, RECOMMEND_WEIGHTS_RATING).
// Если файлы конфигурации не найдены, используются значения по умолчанию.
func Load() (*Config, error) {
	loadEnvFile()
	return LoadWithViper(viper.New(), "./configs", "../configs", "../../configs", ".")
}

// LoadWithViper загружает конфигурацию с заданным экземпляром viper и путями поиска.
func LoadWithViper(v *viper.Viper, paths ...string) (*Config, error) {
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = v.GetString("app.environment")
	}
	v.SetConfigName("config." + env)
	_ = v.MergeInConfig() // файл окружения необязателен

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.App.Environment = env

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "explore-indonesia")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.swagger_url", "http://localhost:8080/swagger/doc.json")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("catalog.source", SourceFile)
	v.SetDefault("catalog.path", "data/places.json")
	v.SetDefault("catalog.index", "places")
	v.SetDefault("catalog.load_timeout", 30*time.Second)

	v.SetDefault("database.postgres.host", "")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.database", "tourism_db")
	v.SetDefault("database.postgres.user", "tourism_user")
	v.SetDefault("database.postgres.password", "tourism_pass")
	v.SetDefault("database.postgres.sslmode", "disable")
	v.SetDefault("database.elasticsearch.url", "http://localhost:9200")
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.db", 0)

	v.SetDefault("recommend.weights.rating", 0.6)
	v.SetDefault("recommend.weights.price", 0.2)
	v.SetDefault("recommend.weights.content", 0.2)
	v.SetDefault("recommend.price.cheap_max", 25000)
	v.SetDefault("recommend.price.mid_max", 100000)
	v.SetDefault("recommend.similarity.max_features", 500)
	v.SetDefault("recommend.similarity.threshold", 0.1)
	v.SetDefault("recommend.similarity.neutral_score", 0.5)
	v.SetDefault("recommend.default_top_n", 10)
	v.SetDefault("recommend.max_top_n", 50)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.prefix", "recommend:")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", time.Minute)
}

// loadEnvFile загружает .env из текущей директории или корня проекта.
func loadEnvFile() {
	paths := []string{".env", "../.env", "../../.env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
