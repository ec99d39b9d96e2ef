package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferLoggerCapturesLevels(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("sampling %d cores", 4)
	l.Warn("push failed: %v", "bus error")

	assert.Len(t, l.Messages, 2)
	assert.Equal(t, "debug", l.Messages[0].Level)
	assert.Equal(t, "sampling 4 cores", l.Messages[0].Message)
	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("error"))
}

func TestNoopDiscards(t *testing.T) {
	l := Noop()

	// Must not panic; nothing observable to assert beyond that.
	l.Debug("ignored")
	l.Info("ignored")
	l.Warn("ignored")
	l.Error("ignored")
}

func TestNewReturnsLogger(t *testing.T) {
	l := New("[test]")
	assert.NotNil(t, l)
}
