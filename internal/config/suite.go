package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"systest/internal/domain"
)

// Seconds is a duration written in the suite file either as a number of seconds
// (3, 0.5) or as a Go duration string ("1500ms").
type Seconds time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (s *Seconds) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a duration", value.Line)
	}
	raw := strings.TrimSpace(value.Value)
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		// float64(math.MaxInt64) rounds up to 2^63, which no Duration can hold
		ns := f * float64(time.Second)
		if math.IsNaN(ns) || math.Abs(ns) >= float64(math.MaxInt64) {
			return fmt.Errorf("line %d: duration %q out of range", value.Line, raw)
		}
		*s = Seconds(ns)
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", value.Line, raw)
	}
	*s = Seconds(d)
	return nil
}

// Duration converts to time.Duration
func (s Seconds) Duration() time.Duration { return time.Duration(s) }

// SuiteFile is the on-disk layout of a suite configuration
type SuiteFile struct {
	ProducerApp         string       `yaml:"producer_app"`
	ProducerInterpreter string       `yaml:"producer_interpreter"`
	ConsumerApp         string       `yaml:"consumer_app"`
	TransportApp        string       `yaml:"transport_app"`
	Tests               []TestConfig `yaml:"tests"`
}

// TestConfig is one entry of the tests list
type TestConfig struct {
	Name           string  `yaml:"name"`
	Description    string  `yaml:"description"`
	SendPort       string  `yaml:"send_port"`
	ReceivePort    string  `yaml:"receive_port"`
	TransportTTL   Seconds `yaml:"transport_ttl"`
	TransportStart Seconds `yaml:"transport_start"`
	ProducerTTL    Seconds `yaml:"producer_ttl"`
	ProducerStart  Seconds `yaml:"producer_start"`
	ConsumerTTL    Seconds `yaml:"consumer_ttl"`
	ConsumerStart  Seconds `yaml:"consumer_start"`
	SentencesFile  string  `yaml:"sentences_file"`
	OutputFile     string  `yaml:"output_file"`
	ValidationFile string  `yaml:"validation_file"`
	Baudrate       int     `yaml:"baudrate"`
	LinePeriod     Seconds `yaml:"line_period"`
	Continuous     bool    `yaml:"continuous"`
}

// Suite is a loaded and validated suite
type Suite struct {
	Path                string
	ProducerApp         string
	ProducerInterpreter string
	ConsumerApp         string
	TransportApp        string
	Cases               []domain.TestCase
}

// LoadSuite reads and validates the suite file at path
func LoadSuite(path string) (*Suite, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewConfigError("load suite", path, "is not a file")
		}
		return nil, &domain.ConfigError{Op: "load suite", Path: path, Err: err}
	}
	return ParseSuite(path, raw)
}

// ParseSuite validates raw suite YAML. path is only used in messages.
func ParseSuite(path string, raw []byte) (*Suite, error) {
	var file SuiteFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, &domain.ConfigError{Op: "parse suite", Path: path, Err: err}
	}

	if len(file.Tests) == 0 {
		return nil, domain.NewConfigError("parse suite", path, "suite has no tests")
	}

	suite := &Suite{
		Path:                path,
		ProducerApp:         strings.TrimSpace(file.ProducerApp),
		ProducerInterpreter: strings.TrimSpace(file.ProducerInterpreter),
		ConsumerApp:         strings.TrimSpace(file.ConsumerApp),
		TransportApp:        strings.TrimSpace(file.TransportApp),
	}

	seen := map[string]bool{}
	for i, tc := range file.Tests {
		c, err := tc.toTestCase()
		if err != nil {
			name := tc.Name
			if name == "" {
				name = fmt.Sprintf("tests[%d]", i)
			}
			return nil, domain.NewConfigError("parse suite", path, "test %s: %v", name, err)
		}
		if seen[c.Name] {
			return nil, domain.NewConfigError("parse suite", path, "duplicate test name %q", c.Name)
		}
		seen[c.Name] = true
		suite.Cases = append(suite.Cases, c)
	}

	return suite, nil
}

func (tc TestConfig) toTestCase() (domain.TestCase, error) {
	name := strings.TrimSpace(tc.Name)
	if name == "" {
		return domain.TestCase{}, fmt.Errorf("missing name")
	}
	if tc.SendPort == "" || tc.ReceivePort == "" {
		return domain.TestCase{}, fmt.Errorf("send_port and receive_port are required")
	}
	if filepath.Clean(tc.SendPort) == filepath.Clean(tc.ReceivePort) {
		return domain.TestCase{}, fmt.Errorf("send_port and receive_port must differ")
	}
	for field, ttl := range map[string]Seconds{
		"transport_ttl": tc.TransportTTL,
		"producer_ttl":  tc.ProducerTTL,
		"consumer_ttl":  tc.ConsumerTTL,
	} {
		if ttl <= 0 {
			return domain.TestCase{}, fmt.Errorf("%s must be greater than 0", field)
		}
	}
	for field, start := range map[string]Seconds{
		"transport_start": tc.TransportStart,
		"producer_start":  tc.ProducerStart,
		"consumer_start":  tc.ConsumerStart,
		"line_period":     tc.LinePeriod,
	} {
		if start < 0 {
			return domain.TestCase{}, fmt.Errorf("%s must not be negative", field)
		}
	}
	if tc.Baudrate < 0 {
		return domain.TestCase{}, fmt.Errorf("baudrate must not be negative")
	}
	if tc.SentencesFile == "" {
		return domain.TestCase{}, fmt.Errorf("sentences_file is required")
	}
	if tc.OutputFile == "" {
		return domain.TestCase{}, fmt.Errorf("output_file is required")
	}

	return domain.TestCase{
		Name:           name,
		Description:    tc.Description,
		SendPort:       tc.SendPort,
		ReceivePort:    tc.ReceivePort,
		TransportTTL:   tc.TransportTTL.Duration(),
		ProducerTTL:    tc.ProducerTTL.Duration(),
		ConsumerTTL:    tc.ConsumerTTL.Duration(),
		TransportStart: tc.TransportStart.Duration(),
		ProducerStart:  tc.ProducerStart.Duration(),
		ConsumerStart:  tc.ConsumerStart.Duration(),
		SentencesFile:  tc.SentencesFile,
		OutputFile:     tc.OutputFile,
		ValidationFile: tc.ValidationFile,
		Baudrate:       tc.Baudrate,
		LinePeriod:     tc.LinePeriod.Duration(),
		Continuous:     tc.Continuous,
	}, nil
}

// ApplyOverrides replaces program paths with the ones set in cfg
func (s *Suite) ApplyOverrides(cfg *Config) {
	if cfg.ProducerApp != "" {
		s.ProducerApp = cfg.ProducerApp
	}
	if cfg.ConsumerApp != "" {
		s.ConsumerApp = cfg.ConsumerApp
	}
	if cfg.TransportApp != "" {
		s.TransportApp = cfg.TransportApp
	}
	if s.TransportApp == "" {
		s.TransportApp = DefaultTransportApp
	}
}

// CheckPrograms verifies the programs needed to run tests are configured
func (s *Suite) CheckPrograms() error {
	if s.ProducerApp == "" {
		return domain.NewConfigError("check suite", s.Path, "producer_app is not set")
	}
	if s.ConsumerApp == "" {
		return domain.NewConfigError("check suite", s.Path, "consumer_app is not set")
	}
	if s.TransportApp == "" {
		return domain.NewConfigError("check suite", s.Path, "transport_app is not set")
	}
	return nil
}

// Names returns the test names in suite order
func (s *Suite) Names() []string {
	names := make([]string, 0, len(s.Cases))
	for _, c := range s.Cases {
		names = append(names, c.Name)
	}
	return names
}
