package main

import (
	"fmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"os"
)

// LogConfig - Logging section of the configuration file
//   - Level is one of debug, info, warn, error
//   - Format is console or json
//   - Filename is the log file, empty logs to stderr
//   - MaxSize is the size in megabytes a log file may reach before it is rotated
//   - MaxDays is the number of days rotated files are kept, zero keeps them forever
//   - MaxBackups is the number of rotated files kept, zero keeps all
type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	Filename   string `toml:"filename"`
	MaxSize    int    `toml:"max-size"`
	MaxDays    int    `toml:"max-days"`
	MaxBackups int    `toml:"max-backups"`
}

// getLevel - Parses the configured level
func (L LogConfig) getLevel() (level zap.AtomicLevel, err error) {
	level = zap.NewAtomicLevel()
	if err = level.UnmarshalText([]byte(L.Level)); err != nil {
		err = fmt.Errorf("error while parsing log level %q: %w", L.Level, err)
	}

	return
}

// getEncoder - Returns the encoder for the configured format
func (L LogConfig) getEncoder() (encoder zapcore.Encoder, err error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch L.Format {
	case "", "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		err = fmt.Errorf("unsupported log format: %s", L.Format)
	}

	return
}

// getSyncer - Returns a rotating file syncer if a file name is configured, stderr otherwise
func (L LogConfig) getSyncer() zapcore.WriteSyncer {
	if L.Filename == "" {
		return zapcore.Lock(os.Stderr)
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   L.Filename,
		MaxSize:    L.MaxSize,
		MaxAge:     L.MaxDays,
		MaxBackups: L.MaxBackups,
		LocalTime:  true,
	})
}

// newLogger - Builds the zap logger of the tool
//   - verbose forces debug level regardless of the configured level
func newLogger(cfg LogConfig, verbose bool) (logger *zap.Logger, err error) {
	level, err := cfg.getLevel()
	if err != nil {
		return
	}
	if verbose {
		level.SetLevel(zap.DebugLevel)
	}

	encoder, err := cfg.getEncoder()
	if err != nil {
		return
	}

	core := zapcore.NewCore(encoder, cfg.getSyncer(), level)
	logger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.FatalLevel))

	return
}
