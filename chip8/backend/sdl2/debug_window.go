//go:build sdl2

package sdl2

import (
	"log/slog"
	"unsafe"

	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	DebugWindowWidth  = 512
	DebugWindowHeight = 640
	DebugWindowTitle  = "CHIP-8 Memory"

	memoryMapScale = DebugWindowWidth / MemoryMapWidth
	keypadTop      = MemoryMapHeight*memoryMapScale + 32
	keypadCell     = 24
)

type DebugWindow struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	visible  bool

	data        *debug.CompleteDebugData
	needsUpdate bool
}

func NewDebugWindow() *DebugWindow {
	return &DebugWindow{
		visible:     false,
		needsUpdate: true,
	}
}

func (dw *DebugWindow) Init() error {
	window, err := sdl.CreateWindow(
		DebugWindowTitle,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		DebugWindowWidth,
		DebugWindowHeight,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		return err
	}
	dw.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return err
	}
	dw.renderer = renderer

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		MemoryMapWidth,
		MemoryMapHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		return err
	}
	dw.texture = texture

	// Initially hide the window
	dw.window.Hide()
	return nil
}

func (dw *DebugWindow) SetVisible(visible bool) {
	dw.visible = visible
	if visible {
		dw.window.Show()
		dw.needsUpdate = true
	} else {
		dw.window.Hide()
	}
}

func (dw *DebugWindow) IsVisible() bool {
	return dw.visible
}

func (dw *DebugWindow) IsInitialized() bool {
	return dw.window != nil
}

// OwnsWindow reports whether id belongs to the debug window
func (dw *DebugWindow) OwnsWindow(id uint32) bool {
	if dw.window == nil {
		return false
	}
	own, err := dw.window.GetID()
	return err == nil && own == id
}

func (dw *DebugWindow) UpdateData(data *debug.CompleteDebugData) {
	dw.data = data
	dw.needsUpdate = true
}

func (dw *DebugWindow) Render() error {
	if !dw.visible || !dw.needsUpdate {
		return nil
	}

	dw.renderer.SetDrawColor(16, 16, 16, 255)
	dw.renderer.Clear()

	if dw.data != nil {
		if err := dw.renderMemoryMap(); err != nil {
			return err
		}
		dw.renderKeypad()
	}

	dw.renderer.Present()
	dw.needsUpdate = false
	return nil
}

func (dw *DebugWindow) renderMemoryMap() error {
	pixels := MemoryMapPixels(dw.data)
	if err := dw.texture.Update(nil, unsafe.Pointer(&pixels[0]), MemoryMapWidth*bytesPerPixel); err != nil {
		return err
	}
	dst := &sdl.Rect{X: 0, Y: 0, W: MemoryMapWidth * memoryMapScale, H: MemoryMapHeight * memoryMapScale}
	return dw.renderer.Copy(dw.texture, nil, dst)
}

// renderKeypad draws the hex keypad in its physical layout, pressed keys lit
func (dw *DebugWindow) renderKeypad() {
	for row, keys := range input.KeypadLayout {
		for col, key := range keys {
			rect := &sdl.Rect{
				X: int32(16 + col*(keypadCell+4)),
				Y: int32(keypadTop + row*(keypadCell+4)),
				W: keypadCell,
				H: keypadCell,
			}
			if dw.data.Keys[key] {
				dw.renderer.SetDrawColor(240, 200, 40, 255)
				dw.renderer.FillRect(rect)
				continue
			}
			dw.renderer.SetDrawColor(96, 96, 96, 255)
			dw.renderer.DrawRect(rect)
		}
	}
}

func (dw *DebugWindow) Cleanup() error {
	if dw.texture != nil {
		dw.texture.Destroy()
	}
	if dw.renderer != nil {
		dw.renderer.Destroy()
	}
	if dw.window != nil {
		dw.window.Destroy()
	}
	slog.Debug("Debug window destroyed")
	return nil
}
