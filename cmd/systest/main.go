package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"systest/internal/cli"
	"systest/internal/cli/commands"
	"systest/internal/config"
	"systest/internal/exitcodes"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "systest [test...]",
		Short:         "Serial data system test harness",
		Long:          `Runs producer/consumer system tests over a virtual serial link. Each test starts a transport that creates a linked pair of pseudo terminals, a producer that writes sentences to one end and a consumer that reads the other, then validates the consumer output.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()
	if err := cfg.LoadEnv(config.DefaultEnvFile); err != nil {
		color.Red("Error: %v", err)
		return exitcodes.ConfigError
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	cmds := commands.NewCommands(cfg)
	cmds.Register(rootCmd, &flags)

	return exitCode(rootCmd.ExecuteContext(ctx))
}

func exitCode(err error) int {
	if err == nil {
		return exitcodes.Success
	}

	var exitErr *commands.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
	return exitcodes.ConfigError
}
