package chip8

import (
	"testing"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/headless"
)

// benchProgram draws glyphs at random positions forever
var benchProgram = []uint16{
	0xC03F, // RND V0, 0x3F
	0xC11F, // RND V1, 0x1F
	0xF229, // LD F, V2
	0xD015, // DRW V0, V1, 5
	0x7201, // ADD V2, 1
	0x1200, // JP 0x200
}

func newBenchEmulator(b *testing.B) *Emulator {
	b.Helper()
	config := DefaultConfig()
	config.Limiter = "none"
	config.Seed = 1

	emu := New(config)
	if err := emu.LoadProgram(program(benchProgram...)); err != nil {
		b.Fatalf("Failed to load program: %v", err)
	}
	emu.Start()
	return emu
}

func BenchmarkRunFrame(b *testing.B) {
	emu := newBenchEmulator(b)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := emu.RunFrame(); err != nil {
			b.Fatalf("RunFrame failed: %v", err)
		}
	}
}

func BenchmarkEmulatorHeadless(b *testing.B) {
	testCases := []struct {
		name   string
		frames int
	}{
		{"frames_100", 100},
		{"frames_1000", 1000},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			emu := newBenchEmulator(b)

			// Use large frame count to avoid quit condition allocations
			hBackend := headless.New(tc.frames*(b.N+1), headless.SnapshotConfig{})
			if err := hBackend.Init(backend.BackendConfig{Title: "Benchmark"}); err != nil {
				b.Fatalf("Failed to initialize backend: %v", err)
			}
			defer hBackend.Cleanup()

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				for frameCount := 0; frameCount < tc.frames; frameCount++ {
					if err := emu.RunFrame(); err != nil {
						b.Fatalf("RunFrame failed: %v", err)
					}
					if _, err := hBackend.Update(emu.CurrentFrame()); err != nil {
						b.Fatalf("Backend update failed: %v", err)
					}
				}
			}
		})
	}
}
