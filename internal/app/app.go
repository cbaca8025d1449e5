package app

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"famigo/internal/bus"
	"famigo/internal/debug"
	"famigo/internal/graphics"
)

// Application is the windowed emulator shell. It implements ebiten.Game:
// every Update runs one emulated frame and every Draw blits it.
type Application struct {
	config  *Config
	console *bus.Bus
	backend *graphics.EbitengineBackend

	player1 []binding
	player2 []binding
}

// New creates the application and loads the ROM at romPath.
func New(config *Config, romPath string) (*Application, error) {
	console := bus.New()
	if err := console.LoadFile(romPath); err != nil {
		return nil, fmt.Errorf("loading %s: %w", romPath, err)
	}

	processor := graphics.NewVideoProcessor(config.Video.Brightness, config.Video.Contrast)

	return &Application{
		config:  config,
		console: console,
		backend: graphics.NewEbitengineBackend(processor),
		player1: bindings(config.Input.Player1),
		player2: bindings(config.Input.Player2),
	}, nil
}

// Run opens the window and drives the game loop until it is closed.
func (a *Application) Run() error {
	scale := a.config.Window.Scale
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowSize(256*scale, 240*scale)
	ebiten.SetWindowTitle("famigo")
	if a.config.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetVsyncEnabled(a.config.Window.VSync)

	err := ebiten.RunGame(a)
	if a.config.Debug.DumpOnExit {
		a.dumpState()
	}
	return err
}

// Update polls input, runs one frame of emulation and hands it to the
// backend.
func (a *Application) Update() error {
	a.pollInput()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) && ebiten.IsKeyPressed(ebiten.KeyControlLeft) {
		log.Println("console reset")
		a.console.Reset()
	}

	a.console.StepFrame()
	return a.backend.RenderFrame(a.console.FrameBuffer())
}

func (a *Application) pollInput() {
	for _, b := range a.player1 {
		a.console.SetButton(1, b.button, ebiten.IsKeyPressed(b.key))
	}
	for _, b := range a.player2 {
		a.console.SetButton(2, b.button, ebiten.IsKeyPressed(b.key))
	}
}

// Draw blits the most recent frame.
func (a *Application) Draw(screen *ebiten.Image) {
	a.backend.Draw(screen)
}

// Layout fixes the logical resolution at the NES output size; ebiten scales
// it to the window.
func (a *Application) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 256, 240
}

func (a *Application) dumpState() {
	vram, oam := a.console.DumpPPU()
	debug.DumpPPU(os.Stderr, vram, oam)
	debug.DumpState(os.Stderr, "CPU", a.console.CPU)
}

// RunHeadless runs the console for the given number of frames with the
// headless backend and returns the CRC32 of the final frame.
func RunHeadless(config *Config, romPath string, frames int) (uint32, error) {
	console := bus.New()
	if err := console.LoadFile(romPath); err != nil {
		return 0, fmt.Errorf("loading %s: %w", romPath, err)
	}

	backend := graphics.NewHeadlessBackend()
	for i := 0; i < frames; i++ {
		console.StepFrame()
		if err := backend.RenderFrame(console.FrameBuffer()); err != nil {
			return 0, err
		}
	}

	log.Printf("headless run: %d frames, final CRC32 %08X", backend.Frames(), backend.LastCRC())
	if config.Debug.DumpOnExit {
		vram, oam := console.DumpPPU()
		debug.DumpPPU(os.Stderr, vram, oam)
		debug.DumpState(os.Stderr, "CPU", console.CPU)
	}
	return backend.LastCRC(), nil
}
