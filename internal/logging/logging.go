// Package logging provides the leveled logger shared by the harness components.
//
// Debug and info records go to the normal output stream, warnings and errors to the
// error stream. Child loggers carry a tag such as "[SENT]" so captured output of the
// supervised programs can be told apart.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// Logger is the logging capability injected into every component
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	// WithPrefix returns a logger that tags every message with prefix
	WithPrefix(prefix string) Logger
	IsDebugEnabled() bool
}

// Options configures New
type Options struct {
	Debug   bool
	Stdout  io.Writer
	Stderr  io.Writer
	NoColor bool
}

type zeroLogger struct {
	log    zerolog.Logger
	prefix string
	debug  bool
}

// New creates a Logger writing through zerolog console writers
func New(opts Options) Logger {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	w := &levelSplitWriter{
		out: newConsoleWriter(opts.Stdout, opts.NoColor),
		err: newConsoleWriter(opts.Stderr, opts.NoColor),
	}

	return &zeroLogger{
		log:   zerolog.New(w).Level(level),
		debug: opts.Debug,
	}
}

// Nop returns a Logger that discards everything
func Nop() Logger {
	return &zeroLogger{log: zerolog.Nop()}
}

func (l *zeroLogger) Debug(format string, args ...interface{}) {
	l.log.Debug().Msg(l.message(format, args))
}

func (l *zeroLogger) Info(format string, args ...interface{}) {
	l.log.Info().Msg(l.message(format, args))
}

func (l *zeroLogger) Warn(format string, args ...interface{}) {
	l.log.Warn().Msg(l.message(format, args))
}

func (l *zeroLogger) Error(format string, args ...interface{}) {
	l.log.Error().Msg(l.message(format, args))
}

func (l *zeroLogger) WithPrefix(prefix string) Logger {
	p := prefix
	if l.prefix != "" {
		p = l.prefix + " " + prefix
	}
	return &zeroLogger{log: l.log, prefix: p, debug: l.debug}
}

func (l *zeroLogger) IsDebugEnabled() bool {
	return l.debug
}

func (l *zeroLogger) message(format string, args []interface{}) string {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if l.prefix == "" {
		return msg
	}
	return l.prefix + " " + msg
}

// levelSplitWriter routes warn and above to err, everything else to out
type levelSplitWriter struct {
	mu  sync.Mutex
	out io.Writer
	err io.Writer
}

func (w *levelSplitWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Write(p)
}

func (w *levelSplitWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if level >= zerolog.WarnLevel && level < zerolog.NoLevel {
		return w.err.Write(p)
	}
	return w.out.Write(p)
}

var levelColors = map[string]*color.Color{
	"debug": color.New(color.FgHiBlack),
	"info":  color.New(color.FgCyan),
	"warn":  color.New(color.FgYellow),
	"error": color.New(color.FgRed),
}

func newConsoleWriter(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    noColor,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: func(i interface{}) string {
			name, _ := i.(string)
			tag := "[" + strings.ToUpper(name) + "]"
			if c, ok := levelColors[name]; ok && !noColor {
				return c.Sprint(tag)
			}
			return tag
		},
	}
}
