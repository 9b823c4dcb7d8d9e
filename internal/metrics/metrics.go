package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"systest/internal/domain"
)

const (
	MetricsNamespace = "systest"
)

// Recorder keeps the metrics of one suite run in its own registry so a run can be
// written out as a node_exporter textfile.
type Recorder struct {
	registry *prometheus.Registry

	casePassed     *prometheus.GaugeVec
	caseDuration   *prometheus.GaugeVec
	runnerSuccess  *prometheus.GaugeVec
	runnerDuration *prometheus.GaugeVec
	runnerTimeouts *prometheus.CounterVec
	validations    *prometheus.CounterVec
	suiteTests     prometheus.Gauge
	suiteFailed    prometheus.Gauge
	suiteDuration  prometheus.Gauge
}

// NewRecorder creates a Recorder with a fresh registry
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		casePassed: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "test_passed",
			Help:      "1 if the test passed, 0 otherwise",
		}, []string{"test"}),
		caseDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "test_duration_seconds",
			Help:      "Wall time of the test",
		}, []string{"test"}),
		runnerSuccess: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "runner_success",
			Help:      "1 if the runner succeeded, 0 otherwise",
		}, []string{"test", "runner"}),
		runnerDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "runner_duration_seconds",
			Help:      "Wall time of the runner process",
		}, []string{"test", "runner"}),
		runnerTimeouts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "runner_timeouts_total",
			Help:      "Count of runner processes killed for exceeding their ttl",
		}, []string{"runner"}),
		validations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "validations_total",
			Help:      "Count of output validations",
		}, []string{"result"}),
		suiteTests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "suite_tests",
			Help:      "Number of tests selected for the run",
		}),
		suiteFailed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "suite_failed_tests",
			Help:      "Number of failed tests in the run",
		}),
		suiteDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "suite_duration_seconds",
			Help:      "Wall time of the run",
		}),
	}
}

// ObserveCase records one finished test case
func (r *Recorder) ObserveCase(c domain.CaseResult) {
	r.casePassed.WithLabelValues(c.Name).Set(boolToFloat(c.Passed))
	r.caseDuration.WithLabelValues(c.Name).Set(c.Duration.Seconds())

	for _, run := range []domain.RunResult{c.Transport, c.Producer, c.Consumer} {
		if run.Runner == "" {
			continue
		}
		r.runnerSuccess.WithLabelValues(c.Name, run.Runner).Set(boolToFloat(run.Success))
		r.runnerDuration.WithLabelValues(c.Name, run.Runner).Set(run.Duration.Seconds())
		if run.TimedOut {
			r.runnerTimeouts.WithLabelValues(run.Runner).Inc()
		}
	}

	if c.Validation.Requested {
		r.validations.WithLabelValues(validationResult(c.Validation)).Inc()
	}
}

// ObserveSuite records the totals of a finished run
func (r *Recorder) ObserveSuite(res domain.SuiteResult) {
	r.suiteTests.Set(float64(res.Passed() + res.Failed))
	r.suiteFailed.Set(float64(res.Failed))
	r.suiteDuration.Set(res.Duration.Seconds())
}

// WriteTextfile writes the registry in the text exposition format to path
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}

func validationResult(v domain.ValidationReport) string {
	switch {
	case v.Error != "":
		return "error"
	case v.Match:
		return "match"
	default:
		return "mismatch"
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
