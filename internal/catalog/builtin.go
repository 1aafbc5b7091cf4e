package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/akozadaev/go_tourism_recommender/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed builtin.yaml
var builtinRawData []byte

type builtinFile struct {
	Places []models.Place `yaml:"places"`
}

var (
	builtinOnce   sync.Once
	builtinPlaces []models.Place
	builtinErr    error
)

// Builtin возвращает копию встроенного набора мест.
// Ошибка означает дефект сборки и должна обнаруживаться при старте через ValidateBuiltin.
func Builtin() ([]models.Place, error) {
	builtinOnce.Do(func() {
		builtinPlaces, builtinErr = parseBuiltin(builtinRawData)
	})
	if builtinErr != nil {
		return nil, builtinErr
	}
	cp := make([]models.Place, len(builtinPlaces))
	copy(cp, builtinPlaces)
	return cp, nil
}

// ValidateBuiltin проверяет встроенный набор мест. Вызывается один раз при старте.
func ValidateBuiltin() error {
	_, err := Builtin()
	return err
}

func parseBuiltin(data []byte) ([]models.Place, error) {
	var f builtinFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse builtin yaml: %w", err)
	}
	if len(f.Places) == 0 {
		return nil, errors.New("catalog: builtin dataset is empty")
	}
	if err := validatePlaces(f.Places); err != nil {
		return nil, fmt.Errorf("catalog: builtin dataset: %w", err)
	}
	return f.Places, nil
}
