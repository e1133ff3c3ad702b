package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	l, err := New("debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New("bogus")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestNamed(t *testing.T) {
	assert.NotNil(t, Named(nil, "x"))

	base := Must(New("info"))
	assert.NotPanics(t, func() { Named(base, "svc.sales").Info("hello") })
	assert.Panics(t, func() { Must(nil, assert.AnError) })
}
