package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	once   sync.Once
	logger *zap.SugaredLogger
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
)

// Get initializes a zap.SugaredLogger instance if it has not been initialized
// already and returns the same instance for subsequent calls.
//
// LOG_LEVEL sets the starting level and JSON_LOG switches to the JSON encoder.
func Get() *zap.SugaredLogger {
	once.Do(func() {
		if levelEnv := os.Getenv("LOG_LEVEL"); levelEnv != "" {
			if err := SetLevel(levelEnv); err != nil {
				log.Println(fmt.Errorf("invalid level, defaulting to INFO: %w", err))
			}
		}

		logger = New(zapcore.AddSync(os.Stdout), os.Getenv("JSON_LOG") != "")
	})

	return logger
}

// New builds a logger writing to w that shares the package level.
func New(w zapcore.WriteSyncer, json bool) *zap.SugaredLogger {
	productionCfg := zap.NewProductionEncoderConfig()
	productionCfg.TimeKey = "timestamp"
	productionCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	developmentCfg := zap.NewDevelopmentEncoderConfig()
	developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	encoder := zapcore.NewConsoleEncoder(developmentCfg)
	if json {
		encoder = zapcore.NewJSONEncoder(productionCfg)
	}

	core := zapcore.NewCore(encoder, w, level)

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		fields := []zapcore.Field{zap.String("go_version", buildInfo.GoVersion)}
		for _, v := range buildInfo.Settings {
			if v.Key == "vcs.revision" && len(v.Value) >= 7 {
				fields = append(fields, zap.String("git_revision", v.Value[0:7]))
				break
			}
		}

		core = core.With(fields)
	}

	return zap.New(core).Sugar()
}

// SetLevel changes the level of every logger handed out by this package.
func SetLevel(l string) error {
	parsed, err := zapcore.ParseLevel(l)
	if err != nil {
		return err
	}

	level.SetLevel(parsed)
	return nil
}

// FromCtx returns the Logger associated with the ctx. If no logger
// is associated, the default logger is returned.
func FromCtx(ctx context.Context, with ...any) *zap.SugaredLogger {
	l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger)
	if !ok {
		l = Get()
	}

	if len(with) == 0 {
		return l
	}

	return l.With(with...)
}

// WithCtx returns a copy of ctx with the Logger attached.
func WithCtx(ctx context.Context, l *zap.SugaredLogger) context.Context {
	if lp, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
		if lp == l {
			// Do not store same logger.
			return ctx
		}
	}

	return context.WithValue(ctx, ctxKey{}, l)
}

// With attaches key/value pairs to the logger carried by ctx.
func With(ctx context.Context, keysAndValues ...any) context.Context {
	return WithCtx(ctx, FromCtx(ctx, keysAndValues...))
}
