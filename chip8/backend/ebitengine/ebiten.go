//go:build ebiten

package ebitengine

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

const defaultScale = 10

// Backend implements the Backend interface on top of ebiten.
// Ebiten must own the main goroutine: the emulator loop calls Update from
// another goroutine while Run blocks in the ebiten game loop.
type Backend struct {
	mail   *mailbox
	game   *game
	config backend.BackendConfig

	// Snapshot state, emulator goroutine only
	currentFrame *video.FrameBuffer
}

// New creates a new ebiten backend
func New() *Backend {
	mail := newMailbox()
	return &Backend{
		mail: mail,
		game: &game{mail: mail, pixels: make([]byte, video.FramebufferSize*bytesPerPixel)},
	}
}

// Init configures the window; it is shown once Run is called.
func (b *Backend) Init(config backend.BackendConfig) error {
	b.config = config

	scale := config.Scale
	if scale <= 0 {
		scale = defaultScale
	}
	ebiten.SetWindowSize(video.FramebufferWidth*scale, video.FramebufferHeight*scale)
	ebiten.SetWindowTitle(config.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	slog.Info("Ebiten backend initialized", "scale", scale, "rom", config.ROMName)
	return nil
}

// Update hands the frame to the game loop and returns the input it collected
func (b *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	b.currentFrame = frame
	return b.mail.publish(frame), nil
}

// Cleanup ends the game loop
func (b *Backend) Cleanup() error {
	slog.Info("Cleaning up ebiten backend")
	b.mail.stop()
	return nil
}

// HandleAction processes backend-specific actions
func (b *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorSnapshot:
		debug.TakeSnapshot(b.currentFrame, b.config.ROMName)
	case action.EmulatorQuit:
		b.mail.stop()
	}
}

// Run blocks in the ebiten game loop until Cleanup is called.
func (b *Backend) Run() error {
	return ebiten.RunGame(b.game)
}

type game struct {
	mail   *mailbox
	pixels []byte
	screen *ebiten.Image
}

func (g *game) Update() error {
	if g.mail.isStopped() {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() {
		g.mail.close()
	}

	var events []backend.InputEvent
	for key, act := range keyMapping {
		switch {
		case inpututil.IsKeyJustPressed(key):
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		case inpututil.IsKeyJustReleased(key) && act.IsKeypad():
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}
	g.mail.post(events...)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.screen == nil {
		g.screen = ebiten.NewImage(video.FramebufferWidth, video.FramebufferHeight)
	}
	if g.mail.copyPixels(g.pixels) {
		g.screen.WritePixels(g.pixels)
	}
	screen.DrawImage(g.screen, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return video.FramebufferWidth, video.FramebufferHeight
}

// ebitenKeyNameMap converts ebiten keys to key names used in default mappings
var ebitenKeyNameMap = map[ebiten.Key]string{
	ebiten.KeyDigit1: "1", ebiten.KeyDigit2: "2", ebiten.KeyDigit3: "3", ebiten.KeyDigit4: "4",
	ebiten.KeyQ: "q", ebiten.KeyW: "w", ebiten.KeyE: "e", ebiten.KeyR: "r",
	ebiten.KeyA: "a", ebiten.KeyS: "s", ebiten.KeyD: "d", ebiten.KeyF: "f",
	ebiten.KeyZ: "z", ebiten.KeyX: "x", ebiten.KeyC: "c", ebiten.KeyV: "v",

	ebiten.KeySpace:  "Space",
	ebiten.KeyP:      "p",
	ebiten.KeyN:      "n",
	ebiten.KeyM:      "m",
	ebiten.KeyF5:     "F5",
	ebiten.KeyF9:     "F9",
	ebiten.KeyF10:    "F10",
	ebiten.KeyEscape: "Escape",
	ebiten.KeyEqual:  "=",
	ebiten.KeyMinus:  "-",
}

func buildKeyMapping() map[ebiten.Key]action.Action {
	mapping := make(map[ebiten.Key]action.Action)
	for key, name := range ebitenKeyNameMap {
		if act, ok := input.GetDefaultMapping(name); ok {
			mapping[key] = act
		}
	}
	return mapping
}

// keyMapping maps ebiten keys to actions
var keyMapping = buildKeyMapping()
