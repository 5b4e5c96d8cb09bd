package ebitengine

import (
	"sync"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

const bytesPerPixel = 4

// mailbox is the hand-off point between the emulator loop, which calls
// Backend.Update, and the ebiten game loop, which owns the window.
type mailbox struct {
	mu      sync.Mutex
	pixels  []byte
	events  []backend.InputEvent
	dirty   bool
	closed  bool // window closed by the user
	stopped bool // emulator loop finished
}

func newMailbox() *mailbox {
	return &mailbox{pixels: make([]byte, video.FramebufferSize*bytesPerPixel)}
}

// publish stores the next frame and drains the input collected so far.
func (m *mailbox) publish(frame *video.FrameBuffer) []backend.InputEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame != nil {
		framePixels(frame, m.pixels)
		m.dirty = true
	}
	events := m.events
	m.events = nil
	return events
}

// post queues input for the emulator loop.
func (m *mailbox) post(events ...backend.InputEvent) {
	if len(events) == 0 {
		return
	}
	m.mu.Lock()
	m.events = append(m.events, events...)
	m.mu.Unlock()
}

// copyPixels copies the latest frame into dst, reporting false when nothing
// changed since the last copy.
func (m *mailbox) copyPixels(dst []byte) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dirty {
		return false
	}
	copy(dst, m.pixels)
	m.dirty = false
	return true
}

// close records that the window is going away and asks the emulator to quit.
func (m *mailbox) close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.events = append(m.events, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
}

func (m *mailbox) stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}

func (m *mailbox) isStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// framePixels writes frame into dst as straight RGBA bytes, the layout
// ebiten.Image.WritePixels expects.
func framePixels(frame *video.FrameBuffer, dst []byte) {
	for i, color := range frame.ToRGBA() {
		o := i * bytesPerPixel
		dst[o] = byte(color >> 24)
		dst[o+1] = byte(color >> 16)
		dst[o+2] = byte(color >> 8)
		dst[o+3] = byte(color)
	}
}
