package sentrylog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	logger2 "gorm.io/gorm/logger"
)

func sql() (string, int64) {
	return "SELECT * FROM volunteers", 1
}

func TestTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core), Config{
		SlowThreshold:             100 * time.Millisecond,
		IgnoreRecordNotFoundError: true,
		LogLevel:                  logger2.Warn,
	})

	ctx := context.Background()

	// Fast and successful: nothing at Warn.
	l.Trace(ctx, time.Now(), sql, nil)
	assert.Equal(t, 0, logs.Len())

	// Not found is ignored.
	l.Trace(ctx, time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Equal(t, 0, logs.Len())

	l.Trace(ctx, time.Now(), sql, errors.New("deadlock"))
	assert.Equal(t, 1, logs.FilterMessage("query failed").Len())

	l.Trace(ctx, time.Now().Add(-time.Second), sql, nil)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())

	// Silent suppresses everything.
	l.LogMode(logger2.Silent).Trace(ctx, time.Now(), sql, errors.New("deadlock"))
	assert.Equal(t, 2, logs.Len())
}

func TestInitSentryDisabled(t *testing.T) {
	assert.NoError(t, InitSentry(""))
}
