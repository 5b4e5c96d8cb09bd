package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeypadActions(t *testing.T) {
	for key := uint8(0); key < 16; key++ {
		act, ok := FromKey(key)
		assert.True(t, ok)
		assert.True(t, act.IsKeypad())
		assert.Equal(t, key, act.Key())
		assert.Equal(t, CategoryKeypad, GetInfo(act).Category)
	}

	_, ok := FromKey(16)
	assert.False(t, ok)
	assert.False(t, EmulatorQuit.IsKeypad())
}

func TestGetInfo(t *testing.T) {
	assert.Equal(t, "key-A", Chip8KeyA.String())
	assert.Equal(t, "quit", EmulatorQuit.String())
	assert.Equal(t, CategoryDebug, GetInfo(DebugLogLevelIncrease).Category)
	assert.Equal(t, "action-999", Action(999).String())
}
