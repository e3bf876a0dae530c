package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New("debug", "json")
	require.NoError(t, err)
	require.NotNil(t, l)

	_, err = New("loud", "json")
	assert.Error(t, err)
}

func TestContextMethodsAddCycleID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{Logger: zap.New(core)}

	ctx := WithCycleID(context.Background(), "cycle-1")
	l.InfoContext(ctx, "updating", StringField("symbol", "AAPL"))
	l.DebugContext(context.Background(), "no cycle")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "cycle-1", entries[0].ContextMap()["cycle_id"])
	assert.Equal(t, "AAPL", entries[0].ContextMap()["symbol"])
	_, ok := entries[1].ContextMap()["cycle_id"]
	assert.False(t, ok)
}
