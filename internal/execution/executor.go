package execution

import (
	"context"

	"systest/internal/domain"
	"systest/internal/validation"
)

// CaseRunner runs a single test case
type CaseRunner interface {
	Run(ctx context.Context, tc domain.TestCase) domain.CaseResult
}

// OutputValidator compares a consumer output file against its fixture
type OutputValidator interface {
	Validate(validationFile, outputFile string) (validation.Outcome, error)
}

// Progress receives suite progress updates
type Progress interface {
	Update(passed, failed int)
	Finish()
}

// CaseObserver is notified of every finished case
type CaseObserver interface {
	ObserveCase(result domain.CaseResult)
}
