package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControllerProtocol(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.SetButton(ButtonStart, true)

	// Latch: write 1 then 0
	c.Write(1)
	c.Write(0)

	// Shift order: A, B, Select, Start, Up, Down, Left, Right
	expected := []uint8{1, 0, 0, 1, 0, 0, 0, 0}
	for i, want := range expected {
		assert.Equal(t, want, c.Read(), "bit %d", i)
	}

	// All further reads return 1
	for i := 0; i < 4; i++ {
		assert.Equal(t, uint8(1), c.Read())
	}
}

func TestStrobeHeldPinsA(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.Write(1)

	for i := 0; i < 5; i++ {
		assert.Equal(t, uint8(1), c.Read())
	}

	c.SetButton(ButtonA, false)
	assert.Equal(t, uint8(0), c.Read(), "strobe high tracks the live A state")
}

func TestLatchSnapshotsButtons(t *testing.T) {
	c := New()
	c.SetButton(ButtonB, true)
	c.Write(1)
	c.Write(0)

	// Releasing after the latch must not affect the shifted bits
	c.SetButton(ButtonB, false)
	assert.Equal(t, uint8(0), c.Read()) // A
	assert.Equal(t, uint8(1), c.Read()) // B from the snapshot
}

func TestStatePortMapping(t *testing.T) {
	s := NewState()
	s.Controller1.SetButton(ButtonA, true)
	s.Controller2.SetButton(ButtonA, true)

	s.Write(0x4016, 1)
	s.Write(0x4016, 0)

	assert.Equal(t, uint8(1), s.Read(0x4016))
	// $4017 carries bit 6 from the shared bus
	assert.Equal(t, uint8(0x41), s.Read(0x4017))
}
