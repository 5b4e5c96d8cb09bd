package video

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTogglePixel(t *testing.T) {
	fb := NewFrameBuffer()

	assert.False(t, fb.TogglePixel(3, 4), "off to on is not a collision")
	assert.True(t, fb.GetPixel(3, 4))

	assert.True(t, fb.TogglePixel(3, 4), "on to off is a collision")
	assert.False(t, fb.GetPixel(3, 4))
}

func TestTogglePixel_Wrap(t *testing.T) {
	tests := []struct {
		name         string
		x, y         int
		wantX, wantY int
	}{
		{name: "x at width wraps to 0", x: 64, y: 0, wantX: 0, wantY: 0},
		{name: "x past width wraps once", x: 70, y: 5, wantX: 6, wantY: 5},
		{name: "y at height wraps to 0", x: 10, y: 32, wantX: 10, wantY: 0},
		{name: "negative x adds width", x: -1, y: 2, wantX: 63, wantY: 2},
		{name: "negative y adds height", x: 1, y: -2, wantX: 1, wantY: 30},
		{name: "both wrap", x: 65, y: 33, wantX: 1, wantY: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFrameBuffer()
			fb.TogglePixel(tt.x, tt.y)
			assert.True(t, fb.GetPixel(tt.wantX, tt.wantY))
			assert.Equal(t, 1, fb.LitPixels())
		})
	}
}

func TestTogglePixel_DropsPastSingleWrap(t *testing.T) {
	fb := NewFrameBuffer()
	assert.False(t, fb.TogglePixel(200, 0))
	assert.False(t, fb.TogglePixel(0, 100))
	assert.Equal(t, 0, fb.LitPixels())
}

func TestDrawSprite(t *testing.T) {
	t.Run("draws most significant bit first", func(t *testing.T) {
		fb := NewFrameBuffer()
		collision := fb.DrawSprite(0, 0, []byte{0x80, 0x01})

		assert.False(t, collision)
		assert.True(t, fb.GetPixel(0, 0))
		assert.True(t, fb.GetPixel(7, 1))
		assert.Equal(t, 2, fb.LitPixels())
	})

	t.Run("drawing twice erases and collides", func(t *testing.T) {
		fb := NewFrameBuffer()
		glyph := []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}

		assert.False(t, fb.DrawSprite(10, 10, glyph))
		assert.True(t, fb.DrawSprite(10, 10, glyph))
		assert.Equal(t, 0, fb.LitPixels())
	})

	t.Run("collision is kept once set", func(t *testing.T) {
		fb := NewFrameBuffer()
		fb.TogglePixel(0, 0)

		// first pixel collides, later pixels light up without clearing the flag
		assert.True(t, fb.DrawSprite(0, 0, []byte{0xFF}))
		assert.False(t, fb.GetPixel(0, 0))
		assert.Equal(t, 7, fb.LitPixels())
	})

	t.Run("sprite wraps at right edge", func(t *testing.T) {
		fb := NewFrameBuffer()
		fb.DrawSprite(60, 0, []byte{0xFF})

		for x := 60; x < 64; x++ {
			assert.True(t, fb.GetPixel(x, 0))
		}
		for x := 0; x < 4; x++ {
			assert.True(t, fb.GetPixel(x, 0))
		}
	})
}

func TestClearAndConversions(t *testing.T) {
	fb := NewFrameBuffer()
	fb.TogglePixel(1, 0)

	pixels := fb.ToSlice()
	assert.Len(t, pixels, FramebufferSize)
	assert.True(t, pixels[1])

	rgba := fb.ToRGBA()
	assert.Equal(t, PixelOffColor, rgba[0])
	assert.Equal(t, PixelOnColor, rgba[1])

	clone := fb.Clone()
	fb.Clear()
	assert.Equal(t, 0, fb.LitPixels())
	assert.True(t, clone.GetPixel(1, 0), "clone is independent")

	pixels[1] = false
	assert.True(t, clone.GetPixel(1, 0), "slice is a copy")
}

func TestString(t *testing.T) {
	fb := NewFrameBuffer()
	fb.TogglePixel(0, 0)
	fb.TogglePixel(63, 31)

	lines := strings.Split(strings.TrimSuffix(fb.String(), "\n"), "\n")
	require.Len(t, lines, FramebufferHeight)
	assert.Equal(t, "#"+strings.Repeat(".", 63), lines[0])
	assert.Equal(t, strings.Repeat(".", 63)+"#", lines[31])
}
