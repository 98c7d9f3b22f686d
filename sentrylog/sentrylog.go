package sentrylog

// A GORM logger that writes through zap and captures database errors in Sentry.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
	logger2 "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// Config logger config
type Config struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
	LogLevel                  logger2.LogLevel
}

// InitSentry initialises the Sentry client.  With an empty DSN Sentry stays disabled and captures are dropped.
func InitSentry(dsn string) error {
	if dsn == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		AttachStacktrace: true,
	})

	if err != nil {
		return fmt.Errorf("sentry.Init: %w", err)
	}

	return nil
}

// Flush waits for buffered events to be sent.
func Flush() {
	sentry.Flush(2 * time.Second)
}

// New returns a GORM logger that writes to l.
func New(l *zap.Logger, config Config) logger2.Interface {
	return &logger{
		Config: config,
		zap:    l.Named("gorm"),
	}
}

type logger struct {
	Config
	zap *zap.Logger
}

// LogMode log mode
func (l *logger) LogMode(level logger2.LogLevel) logger2.Interface {
	newlogger := *l
	newlogger.LogLevel = level
	return &newlogger
}

func (l *logger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger2.Info {
		l.zap.Info(fmt.Sprintf(msg, data...), zap.String("caller", utils.FileWithLineNum()))
	}
}

// Warn print warn messages
func (l *logger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger2.Warn {
		l.zap.Warn(fmt.Sprintf(msg, data...), zap.String("caller", utils.FileWithLineNum()))
	}
}

// Error print error messages
func (l *logger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger2.Error {
		m := fmt.Sprintf(msg, data...)
		l.zap.Error(m, zap.String("caller", utils.FileWithLineNum()))
		sentry.CaptureMessage(m)
	}
}

// Trace print sql message
func (l *logger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= logger2.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.LogLevel >= logger2.Error && (!errors.Is(err, gorm.ErrRecordNotFound) || !l.IgnoreRecordNotFoundError):
		sql, rows := fc()
		l.zap.Error("query failed",
			zap.Error(err),
			zap.String("caller", utils.FileWithLineNum()),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql))

		// Missing rows and unique violations are part of normal request handling, not faults.
		if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, gorm.ErrDuplicatedKey) {
			sentry.CaptureException(err)
		}
	case elapsed > l.SlowThreshold && l.SlowThreshold != 0 && l.LogLevel >= logger2.Warn:
		sql, rows := fc()
		l.zap.Warn(fmt.Sprintf("SLOW SQL >= %v", l.SlowThreshold),
			zap.String("caller", utils.FileWithLineNum()),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql))
	case l.LogLevel == logger2.Info:
		sql, rows := fc()
		l.zap.Debug("query",
			zap.String("caller", utils.FileWithLineNum()),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql))
	}
}
