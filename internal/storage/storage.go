package storage

import (
	"systest/internal/config"
	"systest/internal/domain"
)

// Storage persists and loads the last run report (e.g. for the failures viewer).
type Storage interface {
	Save(report *domain.RunReport) error
	Load() (*domain.RunReport, error)
}

// JSONStorage stores the report in a JSON file under the configured results path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's results JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
