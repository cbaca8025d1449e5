package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBAConversion(t *testing.T) {
	vp := NewVideoProcessor(1.0, 1.0)
	var frame [256 * 240]uint32
	frame[0] = 0xFF123456
	frame[1] = 0xFFFFFFFF

	pix := vp.RGBA(&frame)
	assert.Equal(t, []byte{0x12, 0x34, 0x56, 0xFF}, pix[0:4])
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, pix[4:8])
}

func TestBrightnessAdjustClamps(t *testing.T) {
	vp := NewVideoProcessor(2.0, 1.0)
	var frame [256 * 240]uint32
	frame[0] = 0xFFFF8000

	pix := vp.RGBA(&frame)
	assert.Equal(t, byte(0xFF), pix[0], "doubled red clamps at 255")
	assert.Equal(t, byte(0xFF), pix[1], "0x80 doubles to full")
	assert.Equal(t, byte(0x00), pix[2])
}

func TestFrameCRCIsStable(t *testing.T) {
	var a, b [256 * 240]uint32
	a[100] = 0xFF112233
	b[100] = 0xFF112233

	assert.Equal(t, FrameCRC(&a), FrameCRC(&b))

	b[101] = 0xFF000001
	assert.NotEqual(t, FrameCRC(&a), FrameCRC(&b))
}

func TestHeadlessBackendTracksFrames(t *testing.T) {
	hb := NewHeadlessBackend()
	var frame [256 * 240]uint32
	frame[0] = 0xFFABCDEF

	assert.NoError(t, hb.RenderFrame(&frame))
	assert.NoError(t, hb.RenderFrame(&frame))
	assert.Equal(t, uint64(2), hb.Frames())
	assert.Equal(t, FrameCRC(&frame), hb.LastCRC())
}
