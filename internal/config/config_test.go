package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_GetConfigPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default path",
			config:   New(),
			expected: DefaultConfigPath,
		},
		{
			name: "with config flag",
			config: &Config{
				ConfigPath: DefaultConfigPath,
				Flags:      Flags{ConfigPath: "suites/nightly.yaml"},
			},
			expected: "suites/nightly.yaml",
		},
		{
			name:     "from environment",
			config:   &Config{ConfigPath: "/etc/systest.yaml"},
			expected: "/etc/systest.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetConfigPath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_GetResultsPath(t *testing.T) {
	cfg := New()

	path := cfg.GetResultsPath()
	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %s", path)
	}
	if filepath.Base(path) != DefaultResultsFile {
		t.Errorf("expected file %s, got %s", DefaultResultsFile, filepath.Base(path))
	}
}

func TestConfig_GetResultsDSN(t *testing.T) {
	cfg := New()
	if cfg.GetResultsDSN() != "" {
		t.Errorf("expected results database to be disabled by default")
	}

	cfg.ResultsDSN = "env@tcp(db:3306)/results"
	if cfg.GetResultsDSN() != "env@tcp(db:3306)/results" {
		t.Errorf("unexpected DSN %s", cfg.GetResultsDSN())
	}

	cfg.Flags.ResultsDSN = "flag@tcp(db:3306)/results"
	if cfg.GetResultsDSN() != "flag@tcp(db:3306)/results" {
		t.Errorf("flag should win over environment, got %s", cfg.GetResultsDSN())
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ConfigPath != DefaultConfigPath {
		t.Errorf("expected ConfigPath %s, got %s", DefaultConfigPath, cfg.ConfigPath)
	}
	if cfg.ReadyInterval != DefaultReadyInterval {
		t.Errorf("expected ReadyInterval %s, got %s", DefaultReadyInterval, cfg.ReadyInterval)
	}
	if cfg.KillGrace != DefaultKillGrace {
		t.Errorf("expected KillGrace %s, got %s", DefaultKillGrace, cfg.KillGrace)
	}
}

func TestConfig_LoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "SYSTEST_CONSUMER_APP=/opt/easynmea/app\nSYSTEST_KILL_GRACE=2s\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	// godotenv never overrides variables that are already set
	t.Setenv(EnvConsumerApp, "")
	os.Unsetenv(EnvConsumerApp)
	t.Setenv(EnvKillGrace, "")
	os.Unsetenv(EnvKillGrace)
	t.Setenv(EnvProducerApp, "/usr/bin/send2serial")

	cfg := New()
	if err := cfg.LoadEnv(envFile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ConsumerApp != "/opt/easynmea/app" {
		t.Errorf("expected consumer app from env file, got %q", cfg.ConsumerApp)
	}
	if cfg.ProducerApp != "/usr/bin/send2serial" {
		t.Errorf("expected producer app from environment, got %q", cfg.ProducerApp)
	}
	if cfg.KillGrace != 2*time.Second {
		t.Errorf("expected kill grace 2s, got %s", cfg.KillGrace)
	}
}

func TestConfig_LoadEnv_MissingFile(t *testing.T) {
	cfg := New()
	if err := cfg.LoadEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}

func TestConfig_LoadEnv_InvalidKillGrace(t *testing.T) {
	t.Setenv(EnvKillGrace, "soon")

	cfg := New()
	if err := cfg.LoadEnv(""); err == nil {
		t.Error("expected error for invalid kill grace")
	}
}
