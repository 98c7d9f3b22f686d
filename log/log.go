package log

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// Init builds the process-wide logger.  Until it is called, logging is a no-op, which is what tests want.
func Init(level string, development bool) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	logger = l
	return l, nil
}

// Set replaces the process-wide logger.
func Set(l *zap.Logger) {
	logger = l
}

func L() *zap.Logger {
	return logger
}

func Sync() {
	_ = logger.Sync()
}

type RequestConfig struct {
	Skip func(c *fiber.Ctx) bool
	// GetVolunteerId extracts the volunteer id from the request.  Injected to avoid an import cycle with the session
	// package.
	GetVolunteerId func(c *fiber.Ctx) uint64
}

// NewRequestMiddleware logs one line per request once the handler chain has completed.
func NewRequestMiddleware(config RequestConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if config.Skip != nil && config.Skip(c) {
			return c.Next()
		}

		start := time.Now()
		method := c.Method()
		path := c.Path()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
		}

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}

		if config.GetVolunteerId != nil {
			if id := config.GetVolunteerId(c); id > 0 {
				fields = append(fields, zap.Uint64("volunteer_id", id))
			}
		}

		if status >= fiber.StatusInternalServerError {
			logger.Error("request", append(fields, zap.Error(err))...)
		} else {
			logger.Info("request", fields...)
		}

		return err
	}
}
