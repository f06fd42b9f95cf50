package logging

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultLevel  = "info"
	DefaultFormat = "text"

	// DefaultMaxSize is the default size of log files, in MB.
	DefaultMaxSize = 300
)

type FileConfig struct {
	// Log filename, leave empty to disable file log.
	Filename string `toml:"filename"`
	// Max size for a single file, in MB.
	MaxSize int `toml:"max-size"`
	// Max log keep days, default is never deleting.
	MaxDays int `toml:"max-days"`
	// Maximum number of old log files to retain.
	MaxBackups int `toml:"max-backups"`
}

type Config struct {
	Level string `toml:"level"`
	// One of text or json.
	Format           string     `toml:"format"`
	DisableTimestamp bool       `toml:"disable-timestamp"`
	File             FileConfig `toml:"file"`
}

func NewDefaultConfig() Config {
	return Config{
		Level:  DefaultLevel,
		Format: DefaultFormat,
	}
}

// New builds a logger writing to stderr, or to a rotating file when
// cfg.File.Filename is set.
func New(cfg Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", cfg.Level)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if cfg.DisableTimestamp {
		encCfg.TimeKey = ""
	}

	var enc zapcore.Encoder
	switch cfg.Format {
	case "", "text", "console":
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, errors.Errorf("unsupported log format %q", cfg.Format)
	}

	return zap.New(zapcore.NewCore(enc, output(cfg.File), level), zap.AddCaller()), nil
}

func output(cfg FileConfig) zapcore.WriteSyncer {
	if cfg.Filename == "" {
		return zapcore.Lock(os.Stderr)
	}
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    maxSize,
		MaxAge:     cfg.MaxDays,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	})
}
