package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"systest/internal/cli"
	"systest/internal/config"
	"systest/internal/domain"
)

const suiteYAML = `producer_app: ./producer
consumer_app: ./consumer
tests:
  - name: gpgga_once
    description: Send GPGGA once
    send_port: /tmp/ttySend
    receive_port: /tmp/ttyReceive
    transport_ttl: 2
    producer_ttl: 1
    consumer_ttl: 1
    sentences_file: gpgga.txt
    output_file: out.yaml
`

func newRoot(t *testing.T, args ...string) (*cobra.Command, *config.Config) {
	t.Helper()
	cfg := config.New()
	cfg.ResultsDir = t.TempDir()

	root := &cobra.Command{Use: "systest", SilenceUsage: true, SilenceErrors: true}
	var flags cli.Flags
	NewCommands(cfg).Register(root, &flags)
	root.SetArgs(args)
	return root, cfg
}

func writeSuite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "system_tests.yaml")
	require.NoError(t, os.WriteFile(path, []byte(suiteYAML), 0644))
	return path
}

func TestRun_MissingConfigIsConfigError(t *testing.T) {
	root, _ := newRoot(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"))

	err := root.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfig))
}

func TestRun_UnknownTestIsConfigError(t *testing.T) {
	root, _ := newRoot(t, "run", "--config", writeSuite(t), "--tests", "nope")

	err := root.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.Contains(t, err.Error(), "nope")
}

func TestRun_PositionalArgsSelectTests(t *testing.T) {
	root, cfg := newRoot(t, "run", "--config", writeSuite(t), "-l", "gpgga_once", "other")

	require.NoError(t, root.Execute())
	assert.Equal(t, []string{"gpgga_once", "other"}, cfg.Flags.Tests)
	assert.True(t, cfg.Flags.ListTests)
}

func TestList(t *testing.T) {
	root, cfg := newRoot(t, "list", "-c", writeSuite(t), "-f", "gpgga*")

	require.NoError(t, root.Execute())
	assert.Equal(t, "gpgga*", cfg.Flags.NameFilter)
}

func TestFailures_NoResults(t *testing.T) {
	root, _ := newRoot(t, "failures")

	err := root.Execute()
	assert.Error(t, err)
}

func TestExitError(t *testing.T) {
	err := error(&ExitError{Code: 3})
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "exit status 3", err.Error())
}
