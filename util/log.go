package util

import (
	"fmt"
	"os"
	"time"

	"github.com/Atharva062006/OfflineJudge/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// InitLogger replaces the no-op logger with one built from cfg. Log lines go
// to stderr unless an output file is configured.
func InitLogger(cfg config.LogConfig) error {
	l, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     rfc3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	writeSyncer := zapcore.AddSync(os.Stderr)
	if cfg.OutputPath != "" && cfg.OutputPath != "stderr" {
		file, err := os.OpenFile(cfg.OutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writeSyncer = zapcore.AddSync(file)
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)), nil
}

func rfc3339TimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(time.RFC3339))
}

func Logger() *zap.Logger {
	return logger
}

func SyncLogger() {
	_ = logger.Sync()
}

func ErrorLog(err error, whatError string) {
	logger.Error(whatError+" error", zap.Error(err))
}

func InfoLog(msg string, data interface{}, fields ...zap.Field) {
	if data != nil {
		fields = append(fields, zap.Any("data", data))
	}
	logger.Info(msg, fields...)
}

func DebugLog(msg string, data interface{}, fields ...zap.Field) {
	if data != nil {
		fields = append(fields, zap.Any("data", data))
	}
	logger.Debug(msg, fields...)
}
