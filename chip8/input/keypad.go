package input

import "sync"

// KeyCount is the number of keys on the hex keypad.
const KeyCount = 16

// KeypadLayout is the physical order of the hex keys
var KeypadLayout = [4][4]uint8{
	{0x1, 0x2, 0x3, 0xC},
	{0x4, 0x5, 0x6, 0xD},
	{0x7, 0x8, 0x9, 0xE},
	{0xA, 0x0, 0xB, 0xF},
}

// Keypad holds the pressed state of the sixteen CHIP-8 keys. Backends write it
// from their event loop while the engine reads it, so access is synchronized.
type Keypad struct {
	mu      sync.RWMutex
	pressed [KeyCount]bool
}

func NewKeypad() *Keypad {
	return &Keypad{}
}

func (k *Keypad) Press(key uint8) {
	if key >= KeyCount {
		return
	}
	k.mu.Lock()
	k.pressed[key] = true
	k.mu.Unlock()
}

func (k *Keypad) Release(key uint8) {
	if key >= KeyCount {
		return
	}
	k.mu.Lock()
	k.pressed[key] = false
	k.mu.Unlock()
}

// ReleaseAll clears every key, used on reset and for backends without key-up events.
func (k *Keypad) ReleaseAll() {
	k.mu.Lock()
	k.pressed = [KeyCount]bool{}
	k.mu.Unlock()
}

// IsKeyPressed reports the state of key. Indices outside 0-F are never pressed.
func (k *Keypad) IsKeyPressed(key uint8) bool {
	if key >= KeyCount {
		return false
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.pressed[key]
}

// PressedKey returns the lowest-numbered key currently held down.
func (k *Keypad) PressedKey() (uint8, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	for key, down := range k.pressed {
		if down {
			return uint8(key), true
		}
	}
	return 0, false
}

// State returns a copy of the pressed flags.
func (k *Keypad) State() [KeyCount]bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.pressed
}
