// Package graphics provides the rendering backends the emulation loop hands
// finished frames to: an Ebitengine window for interactive play and a
// headless sink for automated runs.
package graphics

// Backend receives one finished 256x240 frame per VBlank.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	// Headless reports whether the backend renders nowhere visible.
	Headless() bool

	// RenderFrame consumes one frame of packed ARGB pixels.
	RenderFrame(frame *[256 * 240]uint32) error
}
