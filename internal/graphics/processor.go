package graphics

import "hash/crc32"

// VideoProcessor converts the PPU's packed ARGB framebuffer into the RGBA
// byte layout the display layer wants, applying the configured brightness
// and contrast on the way.
type VideoProcessor struct {
	brightness float32
	contrast   float32

	pix []byte // reused RGBA buffer
}

// NewVideoProcessor creates a processor; 1.0 for both values is a no-op.
func NewVideoProcessor(brightness, contrast float32) *VideoProcessor {
	return &VideoProcessor{
		brightness: brightness,
		contrast:   contrast,
		pix:        make([]byte, 256*240*4),
	}
}

// RGBA returns the frame as RGBA bytes. The returned slice is reused across
// calls.
func (vp *VideoProcessor) RGBA(frame *[256 * 240]uint32) []byte {
	adjust := vp.brightness != 1.0 || vp.contrast != 1.0

	for i, pixel := range frame {
		r := uint8(pixel >> 16)
		g := uint8(pixel >> 8)
		b := uint8(pixel)

		if adjust {
			r = vp.adjust(r)
			g = vp.adjust(g)
			b = vp.adjust(b)
		}

		vp.pix[i*4+0] = r
		vp.pix[i*4+1] = g
		vp.pix[i*4+2] = b
		vp.pix[i*4+3] = 0xFF
	}
	return vp.pix
}

func (vp *VideoProcessor) adjust(c uint8) uint8 {
	v := float32(c) * vp.brightness
	v = ((v/255.0-0.5)*vp.contrast + 0.5) * 255.0
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// FrameCRC returns the CRC32 of the raw framebuffer, the fingerprint used to
// compare runs: identical state and inputs must yield identical CRCs at
// every frame boundary.
func FrameCRC(frame *[256 * 240]uint32) uint32 {
	var bytes [256 * 240 * 4]byte
	for i, pixel := range frame {
		bytes[i*4+0] = byte(pixel >> 24)
		bytes[i*4+1] = byte(pixel >> 16)
		bytes[i*4+2] = byte(pixel >> 8)
		bytes[i*4+3] = byte(pixel)
	}
	return crc32.ChecksumIEEE(bytes[:])
}
