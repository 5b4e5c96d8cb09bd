package render

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHalfBlock(t *testing.T) {
	assert.Equal(t, '█', HalfBlock(true, true))
	assert.Equal(t, '▀', HalfBlock(true, false))
	assert.Equal(t, '▄', HalfBlock(false, true))
	assert.Equal(t, ' ', HalfBlock(false, false))
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", Clip("short", 10))
	assert.Equal(t, "abcdef...", Clip("abcdefghijklmnop", 9))
	assert.Equal(t, "ab", Clip("abcdef", 2))
	assert.Equal(t, "", Clip("abc", 0))
}

func TestLogBuffer_Wraps(t *testing.T) {
	lb := NewLogBuffer(2)
	lb.Add(LogEntry{Message: "one"})
	lb.Add(LogEntry{Message: "two"})
	lb.Add(LogEntry{Message: "three"})

	recent := lb.GetRecent(0)
	require.Len(t, recent, 2)
	assert.Equal(t, "three", recent[0].Message)
	assert.Equal(t, "two", recent[1].Message)

	lb.Clear()
	assert.Empty(t, lb.GetRecent(0))
}

func TestLogBufferHandler(t *testing.T) {
	lb := NewLogBuffer(10)
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	logger := slog.New(NewLogBufferHandler(lb, level))

	logger.Debug("hidden")
	logger.With("rom", "PONG").WithGroup("cpu").Info("step", "pc", 0x200)

	recent := lb.GetRecent(0)
	require.Len(t, recent, 1)
	assert.Equal(t, "step rom=PONG cpu.pc=512", recent[0].Message)
	assert.Equal(t, "cpu", recent[0].Source)

	level.Set(slog.LevelDebug)
	logger.Debug("visible")
	assert.Equal(t, "visible", lb.GetRecent(1)[0].Message)
}
