package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"systest/internal/domain"
)

const validSuite = `
producer_app: ./send2serial
consumer_app: ./easynmea_app
tests:
  - name: gpgga
    description: Send GPGGA sentences once
    send_port: /tmp/ttySend
    receive_port: /tmp/ttyReceive
    transport_ttl: 5
    producer_ttl: 4
    producer_start: 1
    consumer_ttl: 3
    consumer_start: 500ms
    sentences_file: data/gpgga.txt
    output_file: out/gpgga.yaml
    validation_file: data/gpgga_expected.yaml
  - name: continuous
    description: Loop sentences until the consumer stops
    send_port: /tmp/ttySend
    receive_port: /tmp/ttyReceive
    transport_ttl: 2.5
    producer_ttl: 2
    consumer_ttl: 2
    sentences_file: data/gpgga.txt
    output_file: out/continuous.yaml
    baudrate: 115200
    line_period: 0.1
    continuous: true
`

func TestParseSuite(t *testing.T) {
	suite, err := ParseSuite("suite.yaml", []byte(validSuite))
	require.NoError(t, err)

	assert.Equal(t, "./send2serial", suite.ProducerApp)
	assert.Equal(t, "./easynmea_app", suite.ConsumerApp)
	assert.Empty(t, suite.TransportApp)
	assert.Equal(t, []string{"gpgga", "continuous"}, suite.Names())

	first := suite.Cases[0]
	assert.Equal(t, 5*time.Second, first.TransportTTL)
	assert.Equal(t, time.Duration(0), first.TransportStart)
	assert.Equal(t, time.Second, first.ProducerStart)
	assert.Equal(t, 500*time.Millisecond, first.ConsumerStart)
	assert.True(t, first.HasValidation())
	assert.Equal(t, 5*time.Second, first.ReadyTimeout())

	second := suite.Cases[1]
	assert.Equal(t, 2500*time.Millisecond, second.TransportTTL)
	assert.False(t, second.HasValidation())
	assert.Equal(t, 115200, second.Baudrate)
	assert.Equal(t, 100*time.Millisecond, second.LinePeriod)
	assert.True(t, second.Continuous)
}

func TestParseSuite_Invalid(t *testing.T) {
	entry := func(extra string) string {
		return `
producer_app: p
consumer_app: c
tests:
  - name: one
    send_port: /tmp/a
    receive_port: /tmp/b
    transport_ttl: 1
    producer_ttl: 1
    consumer_ttl: 1
    sentences_file: s.txt
    output_file: o.yaml
` + extra
	}

	tests := []struct {
		name string
		raw  string
	}{
		{name: "no tests", raw: "producer_app: p\nconsumer_app: c\n"},
		{name: "malformed yaml", raw: "tests: [\n"},
		{name: "unknown field", raw: entry("    colour: red\n")},
		{name: "negative start", raw: entry("    producer_start: -1\n")},
		{name: "bad duration", raw: entry("    consumer_start: later\n")},
		{name: "duration overflow", raw: entry("    producer_start: 1e12\n")},
		{name: "infinite duration", raw: entry("    consumer_start: .inf\n")},
		{name: "nan duration", raw: entry("    transport_start: nan\n")},
		{name: "duplicate name", raw: entry(`  - name: one
    send_port: /tmp/a
    receive_port: /tmp/b
    transport_ttl: 1
    producer_ttl: 1
    consumer_ttl: 1
    sentences_file: s.txt
    output_file: o.yaml
`)},
		{name: "same ports", raw: `
tests:
  - name: one
    send_port: /tmp/a
    receive_port: /tmp/./a
    transport_ttl: 1
    producer_ttl: 1
    consumer_ttl: 1
    sentences_file: s.txt
    output_file: o.yaml
`},
		{name: "zero ttl", raw: `
tests:
  - name: one
    send_port: /tmp/a
    receive_port: /tmp/b
    transport_ttl: 1
    producer_ttl: 0
    consumer_ttl: 1
    sentences_file: s.txt
    output_file: o.yaml
`},
		{name: "missing output", raw: `
tests:
  - name: one
    send_port: /tmp/a
    receive_port: /tmp/b
    transport_ttl: 1
    producer_ttl: 1
    consumer_ttl: 1
    sentences_file: s.txt
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSuite("suite.yaml", []byte(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConfig), "expected configuration error, got %v", err)
		})
	}
}

func TestSeconds_OutOfRange(t *testing.T) {
	for _, raw := range []string{"9300000000", "1e12", "-1e12", "inf", "NaN"} {
		t.Run(raw, func(t *testing.T) {
			var s Seconds
			err := yaml.Unmarshal([]byte(raw), &s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "out of range")
		})
	}

	var s Seconds
	require.NoError(t, yaml.Unmarshal([]byte("9000000000"), &s))
	assert.Equal(t, 9000000000*time.Second, s.Duration())
}

func TestLoadSuite_MissingFile(t *testing.T) {
	_, err := LoadSuite(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	var cfgErr *domain.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "is not a file")
}

func TestLoadSuite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system_tests.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validSuite), 0644))

	suite, err := LoadSuite(path)
	require.NoError(t, err)
	assert.Equal(t, path, suite.Path)
	assert.Len(t, suite.Cases, 2)
}

func TestSuite_ApplyOverrides(t *testing.T) {
	suite, err := ParseSuite("suite.yaml", []byte(validSuite))
	require.NoError(t, err)

	cfg := New()
	suite.ApplyOverrides(cfg)
	assert.Equal(t, "./send2serial", suite.ProducerApp)
	assert.Equal(t, DefaultTransportApp, suite.TransportApp)
	require.NoError(t, suite.CheckPrograms())

	cfg.ConsumerApp = "/opt/app"
	cfg.TransportApp = "/usr/local/bin/socat"
	suite.ApplyOverrides(cfg)
	assert.Equal(t, "/opt/app", suite.ConsumerApp)
	assert.Equal(t, "/usr/local/bin/socat", suite.TransportApp)
}

func TestSuite_CheckPrograms(t *testing.T) {
	suite := &Suite{Path: "suite.yaml", ConsumerApp: "c", TransportApp: "socat"}
	err := suite.CheckPrograms()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
}
