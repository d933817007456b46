// Package logging builds the zap logger.
//
// The terminal UI owns stdout/stderr while running, so in interactive mode
// logs go to a file when debugging and are discarded otherwise. Headless
// commands log to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/dropzone/config"
)

// FileName is the debug log file inside the configured directory
const FileName = "dropzone.log"

// Mode selects the log destination
type Mode int

const (
	ModeInteractive Mode = iota // File when debugging, otherwise discarded
	ModeConsole                 // stderr
)

// New builds a logger and its cleanup function
func New(cfg config.LogConfig, mode Mode) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	switch {
	case cfg.Debug:
		dir := cfg.Dir
		if dir == "" {
			dir = "logs"
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		zc.OutputPaths = []string{filepath.Join(dir, FileName)}
		zc.ErrorOutputPaths = []string{filepath.Join(dir, FileName)}
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return build(zc)

	case mode == ModeConsole:
		zc := zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		zc.OutputPaths = []string{"stderr"}
		zc.DisableStacktrace = true
		return build(zc)

	default:
		return zap.NewNop(), func() {}, nil
	}
}

func build(zc zap.Config) (*zap.Logger, func(), error) {
	logger, err := zc.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}
