package logger

import (
	"context"
	"testing"

	"trading-journal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New(config.Logger{Level: "debug", Encoding: "console"})
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = New(config.Logger{Level: "loud"})
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := &Logger{zap.New(core)}
	scoped := base.With(StringField("request_id", "req-1"))

	assert.Same(t, base, base.FromContext(context.Background()))

	ctx := NewContext(context.Background(), scoped)
	base.InfoContext(ctx, "hello")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "hello", entry.Message)
	assert.Equal(t, "req-1", entry.ContextMap()["request_id"])
}
