package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli"
	"github.com/valerio/go-chip8/chip8"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/ebitengine"
	"github.com/valerio/go-chip8/chip8/backend/headless"
	"github.com/valerio/go-chip8/chip8/backend/sdl2"
	"github.com/valerio/go-chip8/chip8/backend/terminal"
	"github.com/valerio/go-chip8/chip8/disasm"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timing"
	"golang.org/x/term"
)

func main() {
	app := cli.NewApp()
	app.Name = "chip8"
	app.Description = "A CHIP-8 interpreter"
	app.Usage = "chip8 [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Display backend: terminal, ebiten or sdl2",
			Value: "terminal",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a graphical interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save PNG snapshots every N frames in headless mode (0 = disabled)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.IntFlag{
			Name:  "cycles-per-frame",
			Usage: "Instructions executed per 60Hz frame",
			Value: timing.StepsPerFrame,
		},
		cli.StringFlag{
			Name:  "limiter",
			Usage: "Frame limiter: adaptive, ticker or none",
			Value: "adaptive",
		},
		cli.BoolFlag{
			Name:  "strict",
			Usage: "Stop on unknown opcodes instead of skipping them",
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "Seed for the random number instruction (0 = time based)",
		},
		cli.BoolFlag{
			Name:  "trace",
			Usage: "Log every executed instruction at debug level",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Show debug panels on start",
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Window scale for desktop backends",
			Value: 10,
		},
		cli.BoolFlag{
			Name:  "disassemble",
			Usage: "Print the ROM disassembly and exit",
		},
	}
	app.Action = runEmulator

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func romPath(c *cli.Context) (string, error) {
	if path := c.String("rom"); path != "" {
		return path, nil
	}
	if c.NArg() > 0 {
		return c.Args().Get(0), nil
	}
	cli.ShowAppHelp(c)
	return "", errors.New("no ROM path provided")
}

func configFromFlags(c *cli.Context) chip8.Config {
	config := chip8.DefaultConfig()
	config.CyclesPerFrame = c.Int("cycles-per-frame")
	config.Limiter = c.String("limiter")
	config.Strict = c.Bool("strict")
	config.Seed = c.Int64("seed")
	config.Trace = c.Bool("trace")
	return config
}

func runEmulator(c *cli.Context) error {
	path, err := romPath(c)
	if err != nil {
		return err
	}

	if c.Bool("disassemble") {
		rom, err := memory.NewROMFromFile(path)
		if err != nil {
			return err
		}
		return printDisassembly(os.Stdout, rom)
	}

	config := configFromFlags(c)
	if c.Bool("headless") {
		config.Limiter = "none"
	}

	emu, err := chip8.NewWithFile(path, config)
	if err != nil {
		return err
	}

	b, err := selectBackend(c, path)
	if err != nil {
		return err
	}

	backendConfig := backend.BackendConfig{
		Title:         fmt.Sprintf("CHIP-8 - %s", emu.ROMName()),
		ROMName:       emu.ROMName(),
		Scale:         c.Int("scale"),
		ShowDebug:     c.Bool("debug"),
		DebugProvider: emu,
	}
	if err := b.Init(backendConfig); err != nil {
		return err
	}

	// ebiten needs the main goroutine for its window
	if runner, ok := b.(backend.MainThreadRunner); ok {
		done := make(chan error, 1)
		go func() {
			err := emu.Run(b)
			b.Cleanup()
			done <- err
		}()
		if err := runner.Run(); err != nil {
			return err
		}
		return <-done
	}

	defer b.Cleanup()
	return emu.Run(b)
}

func selectBackend(c *cli.Context, romPath string) (backend.Backend, error) {
	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return nil, errors.New("headless mode requires --frames option with a positive value")
		}
		snapshotConfig, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), romPath)
		if err != nil {
			return nil, err
		}
		return headless.New(frames, snapshotConfig), nil
	}

	switch name := c.String("backend"); name {
	case "terminal":
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("terminal backend needs an interactive terminal, use --headless instead")
		}
		return terminal.New(), nil
	case "ebiten":
		return ebitengine.New(), nil
	case "sdl2":
		return sdl2.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

func printDisassembly(w io.Writer, rom *memory.ROM) error {
	data := rom.Bytes()
	for offset := 0; offset < len(data); {
		text, length := disasm.DisassembleBytes(data, offset)
		addr := memory.ProgramStart + offset
		var err error
		if length == disasm.InstructionSize {
			_, err = fmt.Fprintf(w, "0x%03X: %02X%02X  %s\n", addr, data[offset], data[offset+1], text)
		} else {
			_, err = fmt.Fprintf(w, "0x%03X: %02X    %s\n", addr, data[offset], text)
		}
		if err != nil {
			return err
		}
		offset += length
	}
	return nil
}
