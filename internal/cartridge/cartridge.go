package cartridge

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
)

const (
	headerSize  = 16
	trainerSize = 512
	prgUnitSize = 16 * 1024
	chrUnitSize = 8 * 1024
)

var inesMagic = []byte{'N', 'E', 'S', 0x1A}

// Header holds the parsed iNES header fields the core cares about.
type Header struct {
	PRGUnits   uint8 // PRG ROM size in 16KB units
	CHRUnits   uint8 // CHR ROM size in 8KB units; 0 means CHR RAM
	Mapper     uint8
	Mirror     MirrorMode
	HasBattery bool
}

// Cartridge owns the PRG and CHR address buses produced by the mapper, plus
// the parsed header. It is the single object the MMU and PPU talk to.
type Cartridge struct {
	header Header
	prg    CPUBus
	chr    PPUBus
}

// parseHeader decodes the 16-byte iNES header.
func parseHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, formatErr("file too short for iNES header: %d bytes", len(data))
	}
	if !bytes.Equal(data[:4], inesMagic) {
		return Header{}, formatErr("bad magic %02X %02X %02X %02X", data[0], data[1], data[2], data[3])
	}

	flags6 := data[6]
	flags7 := data[7]

	h := Header{
		PRGUnits:   data[4],
		CHRUnits:   data[5],
		Mapper:     (flags6 >> 4) | (flags7 & 0xF0),
		HasBattery: flags6&0x02 != 0,
	}

	switch {
	case flags6&0x08 != 0:
		h.Mirror = MirrorFourScreen
	case flags6&0x01 != 0:
		h.Mirror = MirrorVertical
	default:
		h.Mirror = MirrorHorizontal
	}

	if h.PRGUnits == 0 {
		return Header{}, formatErr("PRG ROM size cannot be zero")
	}

	return h, nil
}

// Load parses an iNES image (or a zip archive containing one) and builds the
// mapper for it. All failures are *Error values with a Kind from the
// taxonomy in errors.go.
func Load(r io.Reader) (*Cartridge, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ioErr(err)
	}

	// A zipped ROM is identified by the archive magic rather than the file
	// name so Load works on plain byte streams.
	if len(data) >= 4 && bytes.Equal(data[:4], []byte{'P', 'K', 0x03, 0x04}) {
		data, err = extractFromZip(data)
		if err != nil {
			return nil, err
		}
	}

	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	offset := headerSize
	if data[6]&0x04 != 0 {
		// 512-byte trainer before PRG data; skipped, nothing maps it
		log.Printf("cartridge: skipping %d byte trainer", trainerSize)
		offset += trainerSize
	}

	prgLen := int(h.PRGUnits) * prgUnitSize
	chrLen := int(h.CHRUnits) * chrUnitSize
	if len(data) < offset+prgLen+chrLen {
		return nil, formatErr("header declares %d PRG + %d CHR units but file holds %d bytes",
			h.PRGUnits, h.CHRUnits, len(data))
	}

	prgROM := make([]uint8, prgLen)
	copy(prgROM, data[offset:offset+prgLen])

	var chrROM []uint8
	if chrLen > 0 {
		chrROM = make([]uint8, chrLen)
		copy(chrROM, data[offset+prgLen:offset+prgLen+chrLen])
	}

	cart := &Cartridge{header: h}
	switch h.Mapper {
	case 0:
		cart.prg, cart.chr = newNROM(prgROM, chrROM, h)
	case 1:
		cart.prg, cart.chr = newMMC1(prgROM, chrROM, h)
	case 2, 94:
		cart.prg, cart.chr = newUxROM(prgROM, chrROM, h)
	case 3:
		cart.prg, cart.chr = newCNROM(prgROM, chrROM, h)
	case 4:
		cart.prg, cart.chr = newMMC3(prgROM, chrROM, h)
	default:
		return nil, &Error{
			Kind:    ErrMapperUnsupported,
			Message: fmt.Sprintf("mapper %d not implemented", h.Mapper),
		}
	}

	log.Printf("cartridge: mapper %d, %d x 16KB PRG, %d x 8KB CHR, %s mirroring",
		h.Mapper, h.PRGUnits, h.CHRUnits, h.Mirror)

	return cart, nil
}

// LoadFile loads a cartridge from a .nes file or a .zip archive on disk.
func LoadFile(path string) (*Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioErr(err)
	}
	defer f.Close()
	return Load(f)
}

// extractFromZip returns the bytes of the first .nes entry in the archive.
func extractFromZip(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, formatErr("unreadable zip archive: %v", err)
	}
	for _, zf := range zr.File {
		if len(zf.Name) < 4 || zf.Name[len(zf.Name)-4:] != ".nes" {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, ioErr(err)
		}
		defer rc.Close()
		out, err := io.ReadAll(rc)
		if err != nil {
			return nil, ioErr(err)
		}
		return out, nil
	}
	return nil, formatErr("zip archive contains no .nes entry")
}

// Header returns the parsed header record.
func (c *Cartridge) Header() Header {
	return c.header
}

// CPURead services CPU reads in $4020-$FFFF.
func (c *Cartridge) CPURead(address uint16) uint8 {
	return c.prg.Read(address)
}

// CPUWrite services CPU writes in $4020-$FFFF. Writes to $8000-$FFFF reach
// both chips: the PRG chip updates PRG banking, the CHR chip observes the
// same write for CHR banking and mirroring control.
func (c *Cartridge) CPUWrite(address uint16, value uint8, cycles uint64) {
	c.prg.Write(address, value, cycles)
	if address >= 0x8000 {
		c.chr.CPUWrite(address, value, cycles)
	}
}

// PPURead services PPU reads in $0000-$3EFF.
func (c *Cartridge) PPURead(address uint16) uint8 {
	return c.chr.Read(address)
}

// PPUWrite services PPU writes in $0000-$3EFF.
func (c *Cartridge) PPUWrite(address uint16, value uint8) {
	c.chr.Write(address, value, 0)
}

// PPUPeek reads the PPU address space without mapper side effects (MMC3's
// A12 watcher), for debug dumps.
func (c *Cartridge) PPUPeek(address uint16) uint8 {
	if p, ok := c.chr.(interface{ Peek(uint16) uint8 }); ok {
		return p.Peek(address)
	}
	return c.chr.Read(address)
}

// IRQPending reports whether the mapper is asserting its IRQ line.
func (c *Cartridge) IRQPending() bool {
	if src, ok := c.chr.(irqSource); ok {
		return src.IRQPending()
	}
	return false
}
