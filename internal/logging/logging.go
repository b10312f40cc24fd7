// Package logging owns the process-wide zap logger used by the field model,
// the preset loader, the REPL and the HTTP server.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. Packages take a named child through
// Component rather than holding on to it.
var Logger = zap.NewNop()

// Config is the "logging" section of the config file
type Config struct {
	// Level is debug, info, warn or error. Unknown levels mean info.
	Level string `json:"level"`

	// Format is console or json
	Format string `json:"format"`

	// Output is stdout, stderr or a file path
	Output string `json:"output"`

	// Development adds stack traces to error entries
	Development bool `json:"development"`
}

// DefaultConfig keeps an interactive session quiet
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: "console",
		Output: "stderr",
	}
}

// WithVerbose lowers the level to debug when on is set
func (c Config) WithVerbose(on bool) Config {
	if on {
		c.Level = "debug"
	}
	return c
}

// New builds a logger from cfg without installing it
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	sink, err := openSink(cfg.Output)
	if err != nil {
		return nil, err
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return zap.New(zapcore.NewCore(newEncoder(cfg.Format), sink, level), opts...), nil
}

// Initialize builds a logger from cfg and installs it
func Initialize(cfg Config) error {
	logger, err := New(cfg)
	if err != nil {
		return err
	}
	Replace(logger)
	return nil
}

// Replace installs logger, e.g. an observer core in tests
func Replace(logger *zap.Logger) {
	Logger = logger
}

// Sync flushes buffered entries
func Sync() {
	_ = Logger.Sync()
}

// Component returns a child logger named after one package or surface
func Component(name string) *zap.Logger {
	return Logger.Named(name)
}

// Info logs on the unnamed logger
func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

// Error logs on the unnamed logger
func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

func newEncoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func openSink(output string) (zapcore.WriteSyncer, error) {
	switch output {
	case "stdout":
		return zapcore.AddSync(os.Stdout), nil
	case "stderr", "":
		return zapcore.AddSync(os.Stderr), nil
	}
	file, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(file), nil
}

func init() {
	if logger, err := New(DefaultConfig()); err == nil {
		Replace(logger)
	}
}
