package execution

import (
	"context"
	"time"

	"github.com/google/uuid"

	"systest/internal/domain"
	"systest/internal/logging"
)

// SuiteRunner runs test cases one after another
type SuiteRunner struct {
	runner    CaseRunner
	logger    logging.Logger
	progress  Progress
	observers []CaseObserver
}

// NewSuiteRunner creates a new SuiteRunner
func NewSuiteRunner(runner CaseRunner, logger logging.Logger) *SuiteRunner {
	return &SuiteRunner{
		runner: runner,
		logger: logger,
	}
}

// SetProgress sets the progress reporter for the suite
func (s *SuiteRunner) SetProgress(progress Progress) {
	s.progress = progress
}

// AddObserver registers an observer notified after every case
func (s *SuiteRunner) AddObserver(observer CaseObserver) {
	s.observers = append(s.observers, observer)
}

// Run executes cases sequentially. A failing case never stops later ones; an
// interrupted ctx does, and the cases left count as failed.
func (s *SuiteRunner) Run(ctx context.Context, cases []domain.TestCase) domain.SuiteResult {
	result := domain.SuiteResult{RunID: uuid.NewString()}
	startTime := time.Now()

	passed := 0
	for i, tc := range cases {
		if ctx.Err() != nil {
			left := len(cases) - i
			s.logger.Warn("Interrupted, %d test(s) not run", left)
			result.Failed += left
			break
		}

		cr := s.runner.Run(ctx, tc)
		result.Cases = append(result.Cases, cr)
		if cr.Passed {
			passed++
		} else {
			result.Failed++
		}

		for _, observer := range s.observers {
			observer.ObserveCase(cr)
		}
		if s.progress != nil {
			s.progress.Update(passed, result.Failed)
		}
	}

	if s.progress != nil {
		s.progress.Finish()
	}
	result.Duration = time.Since(startTime)
	return result
}
