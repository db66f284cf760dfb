package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Stderr is the Logfile value that sends logs to the standard error stream.
const Stderr = "stderr"

// Config logging parameters.
type Config struct {
	Logfile string `yaml:"logfile"`
	Level   string `yaml:"level"`
}

// NewConfig creates a Config with default settings. Logs go to stderr because stdout may carry the
// automaton itself.
func NewConfig() *Config {
	return &Config{
		Logfile: Stderr,
		Level:   "warn",
	}
}

// Logger writes log records.
type Logger struct {
	*zap.SugaredLogger

	file *os.File
}

// NewLogger creates a new logger. stderr is used when cfg.Logfile is Stderr or empty.
func NewLogger(cfg *Config, stderr io.Writer) (*Logger, error) {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, errors.Wrap(err, "can not set logging level")
	}

	var (
		ws   zapcore.WriteSyncer
		file *os.File
	)
	if cfg.Logfile == "" || cfg.Logfile == Stderr {
		ws = zapcore.AddSync(stderr)
	} else {
		f, err := os.OpenFile(cfg.Logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, errors.Wrap(err, "can not open logfile")
		}
		ws, file = f, f
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(ws), lvl)
	return &Logger{
		SugaredLogger: zap.New(core).Sugar(),
		file:          file,
	}, nil
}

// Close flushes buffered records and closes the log file, if any.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// ValidateLevel checks that level is a level name NewLogger accepts.
func ValidateLevel(level string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	return nil
}
