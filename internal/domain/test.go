package domain

import "time"

// TestCase is one configured system test scenario
type TestCase struct {
	Name        string
	Description string

	// Transport endpoints linked together by the pairing process
	SendPort    string
	ReceivePort string

	TransportTTL time.Duration
	ProducerTTL  time.Duration
	ConsumerTTL  time.Duration

	TransportStart time.Duration
	ProducerStart  time.Duration
	ConsumerStart  time.Duration

	SentencesFile  string
	OutputFile     string
	ValidationFile string // Empty when no validation was requested

	// Producer tuning, only forwarded when set
	Baudrate   int
	LinePeriod time.Duration
	Continuous bool
}

// HasValidation reports whether the consumer output is checked against a fixture
func (tc TestCase) HasValidation() bool {
	return tc.ValidationFile != ""
}

// ReadyTimeout bounds the wait for the transport endpoints to appear
func (tc TestCase) ReadyTimeout() time.Duration {
	return tc.TransportStart + tc.TransportTTL
}
