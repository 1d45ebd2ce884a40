package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the application-wide logger. It discards everything until
// InitLogger is called.
var Logger = zap.NewNop().Sugar()

// Options controls where and how much is logged
type Options struct {
	Level      string // debug, info, warn, error
	File       string // optional log file, rotated by size
	MaxSizeMB  int
	MaxBackups int
}

// InitLogger builds the console logger (stderr) and, when a file is
// configured, a rotating JSON file sink. It replaces Logger.
func InitLogger(name string, opts Options) error {
	level := zap.NewAtomicLevel()
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return err
		}
	} else {
		level.SetLevel(zapcore.WarnLevel)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stderr), level),
	}

	if opts.File != "" {
		sink := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(sink), level))
	}

	Logger = zap.New(zapcore.NewTee(cores...)).Named(name).Sugar()
	return nil
}

// Sync flushes buffered log entries
func Sync() {
	_ = Logger.Sync()
}
