//go:build !ebiten

package ebitengine

import (
	"errors"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/video"
)

// ErrNotAvailable is returned when the binary was built without ebiten support
var ErrNotAvailable = errors.New("ebiten backend not available - build with -tags ebiten to enable")

// Backend stub for when ebiten is not compiled in
type Backend struct{}

// New creates a stub ebiten backend that returns an error
func New() *Backend {
	return &Backend{}
}

// Init returns an error indicating ebiten is not available
func (b *Backend) Init(config backend.BackendConfig) error {
	return ErrNotAvailable
}

// Update returns an error
func (b *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	return nil, ErrNotAvailable
}

// Cleanup does nothing
func (b *Backend) Cleanup() error {
	return nil
}

// HandleAction does nothing
func (b *Backend) HandleAction(act action.Action) {}

// Run returns an error
func (b *Backend) Run() error {
	return ErrNotAvailable
}
