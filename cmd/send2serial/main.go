package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"systest/internal/exitcodes"
	"systest/internal/logging"
	"systest/internal/sender"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	var (
		opts       sender.Options
		linePeriod float64
		debug      bool
	)

	rootCmd := &cobra.Command{
		Use:           "send2serial",
		Short:         "Open a serial connection and send data specified in a file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Flags().StringVarP(&opts.Port, "serial_port", "p", sender.DefaultPort, "The serial port to use")
	rootCmd.Flags().IntVarP(&opts.Baudrate, "baudrate", "b", sender.DefaultBaudrate, "The connection baud rate in bauds")
	rootCmd.Flags().StringVarP(&opts.SentencesFile, "sentences_file", "f", "", "Filename of the sentences file")
	rootCmd.Flags().Float64VarP(&linePeriod, "line_period", "t", 0, "Period in seconds in between sending lines")
	rootCmd.Flags().BoolVarP(&opts.Continuous, "continuous", "c", false, "Send all lines in sentences_file in a continuous loop")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "Output debug messages")
	_ = rootCmd.MarkFlagRequired("sentences_file")

	var logger logging.Logger
	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		logger = logging.New(logging.Options{Debug: debug, Stdout: os.Stdout, Stderr: os.Stderr})
		opts.LinePeriod = time.Duration(linePeriod * float64(time.Second))
		return sender.New(opts, logger).Run(cmd.Context())
	}

	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if logger == nil {
			logger = logging.New(logging.Options{Stdout: os.Stdout, Stderr: os.Stderr})
		}
		logger.Error("%v", err)
		return exitcodes.ConfigError
	}
	return exitcodes.Success
}
