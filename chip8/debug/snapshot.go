package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/valerio/go-chip8/chip8/video"
	"golang.org/x/image/draw"
)

// SnapshotScale is the upscaling factor of saved snapshots, 64x32 is too small to look at.
const SnapshotScale = 8

// TakeSnapshot handles the snapshot action for backends
func TakeSnapshot(frame *video.FrameBuffer, romName string) {
	if frame == nil {
		slog.Warn("No frame data available for snapshot")
		return
	}

	baseName := "chip8_snapshot"
	if romName != "" {
		baseName = fmt.Sprintf("%s_snapshot", romName)
	}

	if err := SaveFramePNGToDir(frame, baseName, ""); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}

// FrameImage converts the frame buffer to an image, upscaled with nearest
// neighbour sampling so pixels stay square.
func FrameImage(frame *video.FrameBuffer, scale int) *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, video.FramebufferWidth, video.FramebufferHeight))
	for i, pixel := range frame.ToRGBA() {
		src.SetRGBA(i%video.FramebufferWidth, i/video.FramebufferWidth, color.RGBA{
			R: uint8(pixel >> 24),
			G: uint8(pixel >> 16),
			B: uint8(pixel >> 8),
			A: uint8(pixel),
		})
	}
	if scale <= 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, video.FramebufferWidth*scale, video.FramebufferHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WriteFramePNG encodes the upscaled frame as PNG to w.
func WriteFramePNG(w io.Writer, frame *video.FrameBuffer, scale int) error {
	if err := png.Encode(w, FrameImage(frame, scale)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SaveFramePNGToDir saves a framebuffer as PNG with timestamp to a specific directory
func SaveFramePNGToDir(frame *video.FrameBuffer, baseName, directory string) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.png", baseName, timestamp)

	// Determine output directory
	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		outputDir = cwd
	}

	filePath := filepath.Join(outputDir, filename)
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer file.Close()

	if err := WriteFramePNG(file, frame, SnapshotScale); err != nil {
		return err
	}

	slog.Info("Snapshot saved", "path", filePath, "size", fmt.Sprintf("%dx%d", video.FramebufferWidth*SnapshotScale, video.FramebufferHeight*SnapshotScale), "format", "PNG")
	return nil
}
