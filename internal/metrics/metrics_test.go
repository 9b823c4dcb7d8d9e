package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"systest/internal/domain"
)

func TestRecorder_ObserveCase(t *testing.T) {
	r := NewRecorder()

	r.ObserveCase(domain.CaseResult{
		Name:      "gpgga_once",
		Passed:    false,
		Duration:  2 * time.Second,
		Transport: domain.RunResult{Runner: domain.RunnerTransport, Started: true, TimedOut: true},
		Producer:  domain.RunResult{Runner: domain.RunnerProducer, Started: true, Success: true},
		Consumer:  domain.RunResult{Runner: domain.RunnerConsumer, Started: true, TimedOut: true},
		Validation: domain.ValidationReport{
			Requested: true,
			Match:     false,
		},
	})

	assert.Equal(t, 0.0, testutil.ToFloat64(r.casePassed.WithLabelValues("gpgga_once")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.caseDuration.WithLabelValues("gpgga_once")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runnerSuccess.WithLabelValues("gpgga_once", domain.RunnerProducer)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.runnerSuccess.WithLabelValues("gpgga_once", domain.RunnerConsumer)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runnerTimeouts.WithLabelValues(domain.RunnerTransport)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.validations.WithLabelValues("mismatch")))
}

func TestRecorder_SkipsUnnamedRunners(t *testing.T) {
	r := NewRecorder()
	r.ObserveCase(domain.CaseResult{Name: "a", Passed: true})

	assert.Equal(t, 0, testutil.CollectAndCount(r.runnerSuccess))
	assert.Equal(t, 0, testutil.CollectAndCount(r.validations))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveCase(domain.CaseResult{Name: "a", Passed: true})
	r.ObserveSuite(domain.SuiteResult{
		Cases:    []domain.CaseResult{{Name: "a", Passed: true}},
		Failed:   1,
		Duration: time.Second,
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(r.suiteTests))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.suiteFailed))

	path := filepath.Join(t.TempDir(), "systest.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `systest_test_passed{test="a"} 1`)
	assert.Contains(t, string(data), "systest_suite_failed_tests 1")
}
