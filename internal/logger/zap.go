package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// defaultZapLevel defines the fallback log level when an unknown level string is provided.
const defaultZapLevel = zapcore.DebugLevel

// toZapLevel converts a textual level to zapcore.Level using known level constants.
func toZapLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

// newCore builds a zapcore.Core on stdout. Only the JSON encoder writes timestamps.
func newCore(level zapcore.Level, format string) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if format == FormatJSON {
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg.TimeKey = ""
		encoder = zapcore.NewConsoleEncoder(cfg)
	}
	ws := zapcore.Lock(os.Stdout) // thread-safe writer
	return zapcore.NewCore(encoder, zapcore.AddSync(ws), zap.NewAtomicLevelAt(level))
}

func newZapLogger(levelStr, format string) *Logger {
	core := newCore(toZapLevel(levelStr), format)
	return &Logger{
		SugaredLogger: zap.New(core).Sugar(),
	}
}

// Nop returns a logger that discards everything. Commands that print to
// stdout use it.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}
