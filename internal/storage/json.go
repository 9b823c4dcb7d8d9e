package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"systest/internal/domain"
)

// Save writes the report to the configured JSON results file.
func (s *JSONStorage) Save(report *domain.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	path := s.cfg.GetResultsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}

	// Write next to the target and rename so a crash never leaves half a report
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Load reads the last report from the configured JSON results file.
func (s *JSONStorage) Load() (*domain.RunReport, error) {
	path := s.cfg.GetResultsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &report, nil
}
