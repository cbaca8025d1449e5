package graphics

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// EbitengineBackend renders frames into an ebiten image that the game loop
// draws scaled to the window.
type EbitengineBackend struct {
	frameImage *ebiten.Image
	processor  *VideoProcessor
}

// NewEbitengineBackend creates the windowed backend.
func NewEbitengineBackend(processor *VideoProcessor) *EbitengineBackend {
	return &EbitengineBackend{
		frameImage: ebiten.NewImage(256, 240),
		processor:  processor,
	}
}

// Name identifies the backend in logs.
func (b *EbitengineBackend) Name() string {
	return "ebitengine"
}

// Headless reports false; this backend draws to a window.
func (b *EbitengineBackend) Headless() bool {
	return false
}

// RenderFrame uploads the frame into the backing image.
func (b *EbitengineBackend) RenderFrame(frame *[256 * 240]uint32) error {
	b.frameImage.WritePixels(b.processor.RGBA(frame))
	return nil
}

// Draw blits the latest frame onto the ebiten screen, scaled to fit.
func (b *EbitengineBackend) Draw(screen *ebiten.Image) {
	bounds := screen.Bounds()
	sx := float64(bounds.Dx()) / 256
	sy := float64(bounds.Dy()) / 240

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sx, sy)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(b.frameImage, op)
}
