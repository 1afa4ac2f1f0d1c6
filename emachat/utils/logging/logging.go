package logging

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Loggers are no-ops until InitLogger runs.
var (
	AppLogger    = zap.NewNop()
	SocketLogger = zap.NewNop()
	TimerLogger  = zap.NewNop()
	ErrorLogger  = zap.NewNop()
)

type traceKey struct{}

// WithTraceID tags ctx so LogDuration can attach it.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

// InitLogger points every logger at a rotated JSON file under dir. Nothing is
// written to the terminal, which belongs to the chat screen.
func InitLogger(dir, level string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	newFile := func(name string, maxSize, maxAge int, l zapcore.LevelEnabler) *zap.Logger {
		core := zapcore.NewCore(encoder,
			zapcore.AddSync(&lumberjack.Logger{
				Filename: filepath.Join(dir, name), MaxSize: maxSize, MaxAge: maxAge, Compress: true,
			}),
			l,
		)
		return zap.New(core)
	}

	AppLogger = newFile("app.log", 100, 28, lvl)
	// frames are logged at debug, so this one ignores the configured level
	SocketLogger = newFile("socket.log", 50, 7, zap.DebugLevel)
	TimerLogger = newFile("timer.log", 50, 7, zap.InfoLevel)
	ErrorLogger = newFile("error.log", 100, 30, zap.ErrorLevel)
	return nil
}

// Sync flushes all loggers.
func Sync() {
	for _, l := range []*zap.Logger{AppLogger, SocketLogger, TimerLogger, ErrorLogger} {
		_ = l.Sync()
	}
}

// LogDuration lets you do: defer logging.LogDuration(ctx, "FuncName")()
func LogDuration(ctx context.Context, name string) func() {
	start := time.Now()
	traceID, _ := ctx.Value(traceKey{}).(string)

	return func() {
		duration := time.Since(start).Milliseconds()
		fields := []zap.Field{
			zap.String("func", name),
			zap.Int64("duration_ms", duration),
		}
		if traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}

		// write ONLY to timer.log
		TimerLogger.Info("Function timed", fields...)
	}
}
