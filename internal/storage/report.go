package storage

import (
	"time"

	"systest/internal/domain"
)

// NewReport builds the persisted report of a suite run
func NewReport(suiteFile string, res domain.SuiteResult) *domain.RunReport {
	passed := res.Passed()
	return &domain.RunReport{
		Meta: domain.RunReportMeta{
			RunID:           res.RunID,
			SuiteFile:       suiteFile,
			TotalTests:      passed + res.Failed,
			PassedTests:     passed,
			FailedTests:     res.Failed,
			Duration:        res.Duration.String(),
			DurationSeconds: res.Duration.Seconds(),
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Details: res.Cases,
	}
}
