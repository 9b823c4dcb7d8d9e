package config

import "time"

const (
	// DefaultConfigPath is the suite file used when none is given
	DefaultConfigPath = "system_tests.yaml"
	// DefaultEnvFile is loaded on startup when present
	DefaultEnvFile = ".env"
	// DefaultResultsDir is the directory holding the last run report
	DefaultResultsDir = "storage"
	// DefaultResultsFile is the last run report file name
	DefaultResultsFile = "system-test-results.json"
	// DefaultResultsTable is the MySQL table results are recorded in
	DefaultResultsTable = "system_test_results"
	// DefaultTransportApp is the pseudo-terminal pairing program
	DefaultTransportApp = "socat"
	// DefaultReadyInterval is the transport readiness poll period
	DefaultReadyInterval = 100 * time.Millisecond
	// DefaultKillGrace is how long a terminated consumer may take to exit before SIGKILL
	DefaultKillGrace = 5 * time.Second
)

// Environment variables read by LoadEnv
const (
	EnvConfigPath   = "SYSTEST_CONFIG"
	EnvProducerApp  = "SYSTEST_PRODUCER_APP"
	EnvConsumerApp  = "SYSTEST_CONSUMER_APP"
	EnvTransportApp = "SYSTEST_TRANSPORT_APP"
	EnvResultsDSN   = "SYSTEST_RESULTS_DSN"
	EnvKillGrace    = "SYSTEST_KILL_GRACE"
)
