package video

import (
	"strings"

	"github.com/valerio/go-chip8/chip8/bit"
)

// Framebuffer dimensions of the CHIP-8 display.
const (
	FramebufferWidth  = 64
	FramebufferHeight = 32
	FramebufferSize   = FramebufferWidth * FramebufferHeight
)

// Pixel colors used when converting to RGBA, in 0xRRGGBBAA format.
const (
	PixelOnColor  uint32 = 0xFFFFFFFF
	PixelOffColor uint32 = 0x000000FF
)

// SpriteWidth is the fixed width in pixels of every sprite row.
const SpriteWidth = 8

// FrameBuffer is the 64x32 monochrome display memory.
// Cells are addressed as x + 64*y.
type FrameBuffer struct {
	pixels [FramebufferSize]bool
}

// NewFrameBuffer creates a frame buffer with every pixel off.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// Clear turns every pixel off.
func (fb *FrameBuffer) Clear() {
	fb.pixels = [FramebufferSize]bool{}
}

// GetPixel reports whether the pixel at x, y is on. Out of range reads are off.
func (fb *FrameBuffer) GetPixel(x, y int) bool {
	if x < 0 || x >= FramebufferWidth || y < 0 || y >= FramebufferHeight {
		return false
	}
	return fb.pixels[x+FramebufferWidth*y]
}

// TogglePixel XORs the pixel at x, y and reports a collision, i.e. whether the
// pixel was on and is now off.
//
// Coordinates past an edge are wrapped once: subtract the dimension when at or
// beyond the upper bound, add it when negative. A coordinate that is still out
// of range after the single wrap is dropped.
func (fb *FrameBuffer) TogglePixel(x, y int) bool {
	x = wrapOnce(x, FramebufferWidth)
	y = wrapOnce(y, FramebufferHeight)
	if x < 0 || x >= FramebufferWidth || y < 0 || y >= FramebufferHeight {
		return false
	}

	index := x + FramebufferWidth*y
	fb.pixels[index] = !fb.pixels[index]
	return !fb.pixels[index]
}

// DrawSprite XORs a sprite of len(sprite) rows at x, y. Each row byte is read
// most significant bit first; only set bits toggle pixels.
// Returns true if any toggle turned a pixel off.
func (fb *FrameBuffer) DrawSprite(x, y int, sprite []byte) bool {
	collision := false
	for row, line := range sprite {
		for col := 0; col < SpriteWidth; col++ {
			if !bit.IsSet(uint8(SpriteWidth-1-col), line) {
				continue
			}
			if fb.TogglePixel(x+col, y+row) {
				collision = true
			}
		}
	}
	return collision
}

// ToSlice returns a copy of the pixel states in row-major order.
func (fb *FrameBuffer) ToSlice() []bool {
	out := make([]bool, FramebufferSize)
	copy(out, fb.pixels[:])
	return out
}

// ToRGBA converts the pixel states into 0xRRGGBBAA colors.
func (fb *FrameBuffer) ToRGBA() []uint32 {
	out := make([]uint32, FramebufferSize)
	for i, on := range fb.pixels {
		if on {
			out[i] = PixelOnColor
		} else {
			out[i] = PixelOffColor
		}
	}
	return out
}

// Clone returns an independent copy of the frame buffer.
func (fb *FrameBuffer) Clone() *FrameBuffer {
	c := *fb
	return &c
}

// LitPixels returns the number of pixels that are on.
func (fb *FrameBuffer) LitPixels() int {
	count := 0
	for _, on := range fb.pixels {
		if on {
			count++
		}
	}
	return count
}

// String renders the frame as text, '#' for lit pixels and '.' otherwise,
// one line per row.
func (fb *FrameBuffer) String() string {
	var sb strings.Builder
	sb.Grow(FramebufferSize + FramebufferHeight)
	for y := 0; y < FramebufferHeight; y++ {
		for x := 0; x < FramebufferWidth; x++ {
			if fb.pixels[y*FramebufferWidth+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func wrapOnce(v, dimension int) int {
	if v >= dimension {
		return v - dimension
	}
	if v < 0 {
		return v + dimension
	}
	return v
}
