// Package logging builds the zap logger used by the CLI and injected into
// the pipeline as its trace sink.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes where and how logs are written.
type Config struct {
	// Level is debug, info, warn or error.
	Level string `mapstructure:"level" default:"warn" validate:"oneof=debug info warn error"`
	// Format is console or json.
	Format string `mapstructure:"format" default:"console" validate:"oneof=console json"`
	// File, when set, receives logs through a rotating writer instead of stderr.
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max-size" default:"10" validate:"gte=0"` // megabytes
	MaxBackups int    `mapstructure:"max-backups" default:"3" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max-age" default:"7" validate:"gte=0"` // days
	Compress   bool   `mapstructure:"compress"`
}

// New builds a logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch cfg.Format {
	case "", "console":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	core := zapcore.NewCore(enc, writer(cfg), level)
	return zap.New(core).Named("beautimg"), nil
}

func writer(cfg Config) zapcore.WriteSyncer {
	if cfg.File == "" {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	})
}
