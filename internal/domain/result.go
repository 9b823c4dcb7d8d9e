package domain

import "time"

// Runner names used in results and log prefixes
const (
	RunnerTransport = "transport"
	RunnerProducer  = "producer"
	RunnerConsumer  = "consumer"
)

// RunResult is the outcome of one supervised leg of a test
type RunResult struct {
	Runner   string        `json:"runner"`
	Started  bool          `json:"started"`
	Success  bool          `json:"success"`
	TimedOut bool          `json:"timed_out,omitempty"`
	ExitCode int           `json:"exit_code"`
	PID      int           `json:"pid,omitempty"`
	Duration time.Duration `json:"duration"`
	Stdout   string        `json:"stdout,omitempty"`
	Stderr   string        `json:"stderr,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// NotStarted returns the result of a leg that was never launched
func NotStarted(runner, reason string) RunResult {
	return RunResult{
		Runner:   runner,
		ExitCode: -1,
		Error:    reason,
	}
}

// Status returns a short human readable status
func (r RunResult) Status() string {
	switch {
	case !r.Started:
		return "not started"
	case r.TimedOut:
		return "timeout"
	case r.Success:
		return "ok"
	default:
		return "failed"
	}
}

// CaseResult is the outcome of one TestCase run
type CaseResult struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Passed      bool             `json:"passed"`
	Duration    time.Duration    `json:"duration"`
	Transport   RunResult        `json:"transport"`
	Producer    RunResult        `json:"producer"`
	Consumer    RunResult        `json:"consumer"`
	Validation  ValidationReport `json:"validation"`
	Error       string           `json:"error,omitempty"`
	Resolved    bool             `json:"resolved,omitempty"` // Set from the failures viewer
}

// SuiteResult aggregates the cases of one suite run
type SuiteResult struct {
	RunID    string
	Cases    []CaseResult
	Failed   int
	Duration time.Duration
}

// Passed returns the number of passing cases
func (s SuiteResult) Passed() int {
	n := 0
	for _, c := range s.Cases {
		if c.Passed {
			n++
		}
	}
	return n
}

// RunReportMeta contains metadata about a suite run
type RunReportMeta struct {
	RunID           string  `json:"run_id"`
	SuiteFile       string  `json:"suite_file"`
	TotalTests      int     `json:"total_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTests     int     `json:"failed_tests"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunReport is the persisted form of a suite run
type RunReport struct {
	Meta    RunReportMeta `json:"meta"`
	Details []CaseResult  `json:"details"`
}

// Failures returns the failed cases of the report
func (r *RunReport) Failures() []CaseResult {
	var failed []CaseResult
	for _, c := range r.Details {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}
