package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akozadaev/go_tourism_recommender/internal/models"
)

// FileStorage читает каталог мест из JSON-артефакта: массива объектов Place.
type FileStorage struct {
	path string
}

// NewFileStorage создает источник каталога для файла path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Name возвращает имя источника каталога.
func (fs *FileStorage) Name() string {
	return "file"
}

// LoadPlaces читает и декодирует артефакт. Неизвестные поля отклоняются.
func (fs *FileStorage) LoadPlaces(ctx context.Context) ([]models.Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(fs.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog artifact: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	var places []models.Place
	if err := dec.Decode(&places); err != nil {
		return nil, fmt.Errorf("failed to decode catalog artifact %s: %w", fs.path, err)
	}

	return places, nil
}

// WritePlaces атомарно записывает артефакт: во временный файл и затем rename.
func (fs *FileStorage) WritePlaces(places []models.Place) error {
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".places-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(places); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode places: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), fs.path); err != nil {
		return fmt.Errorf("failed to rename artifact: %w", err)
	}

	return nil
}
