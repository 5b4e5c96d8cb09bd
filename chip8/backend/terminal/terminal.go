package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/terminal/render"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	width  = video.FramebufferWidth
	height = video.FramebufferHeight

	// two framebuffer rows share one terminal row
	screenRows     = height / 2
	registerHeight = 10
	disasmHeight   = 9
	minTermWidth   = 80
	minTermHeight  = 24
	logCapacity    = 200
)

// Key expiry timeout - slightly longer than typical key repeat interval.
// Terminals report no key-up, so a key counts as held until it stops repeating.
const keyTimeout = 100 * time.Millisecond

// Backend implements the Backend interface using tcell for terminal rendering
type Backend struct {
	screen     tcell.Screen
	running    bool
	logBuffer  *render.LogBuffer
	logLevel   *slog.LevelVar
	config     backend.BackendConfig
	eventQueue []backend.InputEvent // Collect events to return
	quit       chan os.Signal

	keyStates  map[action.Action]time.Time // Last time each key was pressed
	activeKeys map[action.Action]bool      // Keys active in previous frame

	// For accessing emulator state
	debugProvider backend.DebugDataProvider
	disasmBuffer  *debug.DisasmBuffer

	// Snapshot state
	currentFrame *video.FrameBuffer // Store current frame for snapshot generation

	now func() time.Time
}

// New creates a new terminal backend drawing on the controlling terminal
func New() *Backend {
	return NewWithScreen(nil)
}

// NewWithScreen creates a terminal backend drawing on screen, which may be a
// tcell simulation screen. A nil screen is created on Init.
func NewWithScreen(screen tcell.Screen) *Backend {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	return &Backend{
		screen:   screen,
		logLevel: level,
		now:      time.Now,
	}
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config
	t.debugProvider = config.DebugProvider
	t.disasmBuffer = debug.NewDisasmBuffer(disasmHeight)
	t.eventQueue = make([]backend.InputEvent, 0)
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.running = true

	// Logs go to a panel instead of stderr, which tcell owns now
	t.logBuffer = render.NewLogBuffer(logCapacity)
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, t.logLevel)))

	slog.Info("Terminal backend initialized", "rom", config.ROMName)
	if config.ShowDebug {
		slog.Debug("Debug mode enabled")
	}

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	// Set up signal handling for graceful shutdown
	t.quit = make(chan os.Signal, 1)
	signal.Notify(t.quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	return nil
}

// Update renders a frame and processes events
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	var events []backend.InputEvent
	now := t.now()

	select {
	case <-t.quit:
		t.running = false
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
	default:
	}

	// Poll for input events synchronously
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	// Track which keys are currently active this frame
	currentlyActive := make(map[action.Action]bool)

	for act, lastPressed := range t.keyStates {
		if now.Sub(lastPressed) < keyTimeout {
			currentlyActive[act] = true

			if !t.activeKeys[act] {
				slog.Debug("Key press", "key", act)
				events = append(events, backend.InputEvent{Action: act, Type: event.Press})
			} else {
				events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
			}
		} else {
			delete(t.keyStates, act)
		}
	}

	// Check for released keys (were active last frame but not this frame)
	for act := range t.activeKeys {
		if !currentlyActive[act] {
			slog.Debug("Key release", "key", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}
	t.activeKeys = currentlyActive

	// Add emulator control events (pause, debug, etc)
	events = append(events, t.eventQueue...)
	t.eventQueue = nil

	if !t.running {
		return events, nil
	}

	t.currentFrame = frame
	t.render(frame)
	t.screen.Show()

	return events, nil
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.quit != nil {
		signal.Stop(t.quit)
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

// HandleAction processes backend-specific actions
func (t *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorSnapshot:
		debug.TakeSnapshot(t.currentFrame, t.config.ROMName)
	case action.EmulatorDebugToggle:
		t.config.ShowDebug = !t.config.ShowDebug
		if t.config.ShowDebug {
			slog.Info("Debug display enabled")
		} else {
			slog.Info("Debug display disabled")
		}
	case action.DebugLogLevelIncrease:
		t.changeLogLevel(1)
	case action.DebugLogLevelDecrease:
		t.changeLogLevel(-1)
	case action.EmulatorQuit:
		t.running = false
	}
}

// LogLevel returns the current log threshold.
func (t *Backend) LogLevel() slog.Level {
	return t.logLevel.Level()
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	var (
		act    action.Action
		exists bool
	)
	if ev.Key() == tcell.KeyRune {
		act, exists = runeMapping[ev.Rune()]
	} else {
		act, exists = keyMapping[ev.Key()]
	}
	if !exists {
		return
	}

	if act.IsKeypad() {
		t.keyStates[act] = now
		return
	}
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEscape: "Escape",
	tcell.KeyF5:     "F5",
	tcell.KeyF9:     "F9",
	tcell.KeyF10:    "F10",
}

// buildKeyMapping creates the key mapping from default mappings
func buildKeyMapping() map[tcell.Key]action.Action {
	mapping := make(map[tcell.Key]action.Action)

	for key, keyName := range tcellKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}

	mapping[tcell.KeyCtrlC] = action.EmulatorQuit

	return mapping
}

// buildRuneMapping creates the rune mapping from default mappings. Single
// character names map to themselves, upper case letters fold to lower case.
func buildRuneMapping() map[rune]action.Action {
	mapping := make(map[rune]action.Action)

	for keyName, act := range input.DefaultKeyMap {
		runes := []rune(keyName)
		if len(runes) != 1 {
			continue
		}
		mapping[runes[0]] = act
		if upper := []rune(strings.ToUpper(keyName)); upper[0] != runes[0] {
			mapping[upper[0]] = act
		}
	}
	if act, ok := input.GetDefaultMapping("Space"); ok {
		mapping[' '] = act
	}

	return mapping
}

// keyMapping maps tcell keys to actions
var keyMapping = buildKeyMapping()

// runeMapping maps runes to actions
var runeMapping = buildRuneMapping()

var logLevels = []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

// changeLogLevel moves the threshold one step; +1 shows more, -1 shows less.
func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel.Level()
	idx := 1
	for i, level := range logLevels {
		if level == oldLevel {
			idx = i
		}
	}

	idx -= direction
	if idx < 0 || idx >= len(logLevels) {
		return
	}
	t.logLevel.Set(logLevels[idx])
	slog.Warn("Log filter changed", "from", oldLevel, "to", logLevels[idx])
}

func (t *Backend) render(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	if termWidth < minTermWidth || termHeight < minTermHeight {
		t.screen.Clear()
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		t.drawText(0, termHeight/2, termWidth, msg, style)
		return
	}

	t.screen.Clear()

	dividerX := width + 1
	rightPanelX := dividerX + 2
	rightPanelWidth := termWidth - rightPanelX

	t.drawBorders(termWidth, termHeight, dividerX)
	t.drawScreen(frame)

	logsY := 1
	if t.config.ShowDebug && t.debugProvider != nil {
		data := t.debugProvider.ExtractDebugData()
		t.drawRegisters(data, rightPanelX, 1, rightPanelWidth)
		t.drawDisassembly(data, rightPanelX, registerHeight+2, rightPanelWidth)
		logsY = registerHeight + disasmHeight + 3
	}
	t.drawLogs(rightPanelX, logsY, rightPanelWidth, termHeight)
	t.drawKeypad(1, screenRows+2)
}

func (t *Backend) drawBorders(termWidth, termHeight, dividerX int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for y := 0; y < termHeight-1; y++ {
		t.screen.SetContent(dividerX, y, '│', nil, borderStyle)
	}

	title := " CHIP-8 "
	if t.config.ROMName != "" {
		title = fmt.Sprintf(" CHIP-8: %s ", t.config.ROMName)
	}
	t.drawText(1, 0, dividerX-1, title, titleStyle)

	startX := dividerX + 2
	logsTitleY := 0
	if t.config.ShowDebug {
		t.drawText(startX, 0, termWidth-startX, " Registers ", titleStyle)
		t.drawText(startX, registerHeight+1, termWidth-startX, " Disassembly ", titleStyle)
		logsTitleY = registerHeight + disasmHeight + 2
	}
	logsTitle := fmt.Sprintf(" Logs [%s] (-/+ filter) ", t.logLevel.Level())
	t.drawText(startX, logsTitleY, termWidth-startX, logsTitle, titleStyle)

	helpText := " ESC=quit SPACE=pause N=step M=frame F5=reset F9=snapshot F10=debug "
	t.drawText(0, termHeight-1, termWidth, helpText, borderStyle)
}

// drawScreen renders the 64x32 frame as 64x16 cells of half blocks
func (t *Backend) drawScreen(frame *video.FrameBuffer) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for row := 0; row < screenRows; row++ {
		for x := 0; x < width; x++ {
			top := frame.GetPixel(x, row*2)
			bottom := frame.GetPixel(x, row*2+1)
			t.screen.SetContent(x+1, row+1, render.HalfBlock(top, bottom), nil, style)
		}
	}
}

func (t *Backend) drawKeypad(startX, startY int) {
	if t.debugProvider == nil {
		return
	}
	data := t.debugProvider.ExtractDebugData()
	if data == nil {
		return
	}

	offStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	onStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	for row, keys := range input.KeypadLayout {
		for col, key := range keys {
			style := offStyle
			if data.Keys[key] {
				style = onStyle
			}
			t.drawText(startX+col*2, startY+row, 1, fmt.Sprintf("%X", key), style)
		}
	}
}

func (t *Backend) drawRegisters(data *debug.CompleteDebugData, startX, startY, width int) {
	if data == nil || data.CPU == nil || width <= 0 {
		return
	}
	cpu := data.CPU

	lines := []string{
		fmt.Sprintf("Status: %s", strings.ToUpper(data.DebuggerState.String())),
	}
	for row := 0; row < 4; row++ {
		var sb strings.Builder
		for col := 0; col < 4; col++ {
			r := row*4 + col
			fmt.Fprintf(&sb, "V%X:%02X ", r, cpu.V[r])
		}
		lines = append(lines, sb.String())
	}
	lines = append(lines,
		fmt.Sprintf("I: 0x%03X  PC: 0x%03X", cpu.I, cpu.PC),
		fmt.Sprintf("SP: %d  DT: %d  ST: %d", cpu.SP, cpu.DelayTimer, cpu.SoundTimer),
		fmt.Sprintf("Stack: %s", formatStack(cpu.Stack[:cpu.SP])),
		fmt.Sprintf("Cycles: %d  OP: %04X", cpu.Cycles, cpu.Opcode),
	)

	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	for i, line := range lines {
		if i >= registerHeight {
			break
		}
		t.drawText(startX, startY+i, width, line, style)
	}
}

func formatStack(stack []uint16) string {
	if len(stack) == 0 {
		return "-"
	}
	parts := make([]string, len(stack))
	for i, addr := range stack {
		parts[i] = fmt.Sprintf("%03X", addr)
	}
	return strings.Join(parts, " ")
}

func (t *Backend) drawDisassembly(data *debug.CompleteDebugData, startX, startY, width int) {
	if data == nil || data.CPU == nil || data.Memory == nil || width <= 0 {
		return
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	currentStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	lines := debug.CreateDisassemblyWithBuffer(data.Memory, data.CPU.PC, disasmHeight, t.disasmBuffer)
	for i, line := range lines {
		prefix, useStyle := " ", style
		if line.IsCurrent {
			prefix, useStyle = "→", currentStyle
		}
		text := fmt.Sprintf("%s0x%03X: %s", prefix, line.Address, line.Instruction)
		t.drawText(startX, startY+i, width, text, useStyle)
	}
}

func (t *Backend) drawLogs(startX, startY, width, termHeight int) {
	availableHeight := termHeight - startY - 1
	if width <= 0 || availableHeight <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, logEntry := range t.logBuffer.GetRecent(availableHeight) {
		style := infoStyle
		switch logEntry.Level {
		case slog.LevelDebug:
			style = debugStyle
		case slog.LevelWarn:
			style = warnStyle
		case slog.LevelError:
			style = errStyle
		}
		t.drawText(startX, startY+i, width, render.FormatLogEntry(logEntry), style)
	}
}

func (t *Backend) drawText(x, y, width int, text string, style tcell.Style) {
	for i, ch := range []rune(render.Clip(text, width)) {
		t.screen.SetContent(x+i, y, ch, nil, style)
	}
}
