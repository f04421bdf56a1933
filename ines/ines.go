// Package ines implements a reader for ROMs in the iNES file format, used
// for the distribution of NES binary programs.
package ines

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Magic is the 4-byte constant introducing every iNES file.
const Magic = "NES\x1a"

// Validation errors. Each stage of the decoding reports its own error so
// that a caller can tell a foreign file from a truncated dump.
var (
	ErrInvalidMagic = errors.New("invalid iNES magic number")
	ErrShortHeader  = errors.New("header shorter than 16 bytes")
	ErrShortPRG     = errors.New("incomplete PRG section")
	ErrShortCHR     = errors.New("incomplete CHR section")
	ErrShortTrainer = errors.New("incomplete TRAINER section")
)

type Rom struct {
	header
	Trainer []byte // Trainer, 512 bytes if present, or empty.
	PRG     []byte // PRG is PRG ROM data (length is multiples of 16k)
	CHR     []byte // CHR is CHR ROM data (length is multiples of 8k)
}

// Open loads a rom from file.
func Open(path string) (*Rom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rom := new(Rom)
	if _, err := rom.ReadFrom(f); err != nil {
		return nil, err
	}
	return rom, nil
}

// Decode decodes a rom from an in-memory image.
func Decode(buf []byte) (*Rom, error) {
	rom := new(Rom)
	if err := rom.decodeAll(buf); err != nil {
		return nil, err
	}
	return rom, nil
}

// ReadFrom implements the io.ReaderFrom interface.
func (rom *Rom) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	if err := rom.decodeAll(buf); err != nil {
		return 0, err
	}
	return int64(len(buf)), nil
}

func (rom *Rom) decodeAll(buf []byte) error {
	if err := rom.decode(buf); err != nil {
		return fmt.Errorf("failed to decode header: %w", err)
	}
	off := 16

	if rom.HasTrainer() {
		if len(buf) < off+512 {
			return ErrShortTrainer
		}
		rom.Trainer = buf[off : off+512]
		off += 512
	}

	if len(buf) < off+rom.prgsz {
		return ErrShortPRG
	}
	rom.PRG = buf[off : off+rom.prgsz]
	off += rom.prgsz

	if len(buf) < off+rom.chrsz {
		return ErrShortCHR
	}
	rom.CHR = buf[off : off+rom.chrsz]
	return nil
}

func (hdr *header) decode(p []byte) error {
	if len(p) < 16 {
		return ErrShortHeader
	}
	if string(p[:4]) != Magic {
		return ErrInvalidMagic
	}
	copy(hdr.raw[:], p[:16])

	hdr.prgsz = int(hdr.raw[4]) * 16384
	hdr.chrsz = int(hdr.raw[5]) * 8192
	return nil
}

type header struct {
	raw   [16]byte
	prgsz int
	chrsz int
}

// HasTrainer indicates the presence of a trainer section in the rom.
func (hdr *header) HasTrainer() bool {
	return hdr.raw[6]&0x04 != 0
}

// HasPersistent indicates the presence of persistent memory in the rom.
func (hdr *header) HasPersistent() bool {
	return hdr.raw[6]&0x02 != 0
}

// Mapper returns the mapper number, assembled from the low nibble of byte 6
// and the high nibble of byte 7.
func (hdr *header) Mapper() uint8 {
	return hdr.raw[6]>>4 | hdr.raw[7]&0xF0
}

// HasPRGRAM reports whether the cartridge carries PRG RAM. Header byte 10
// bit 4 indicates its absence.
func (hdr *header) HasPRGRAM() bool {
	return hdr.raw[10]&0x10 == 0
}

// PRGRAMSize returns the PRG RAM size in bytes. Header byte 8 counts 8KiB
// units, 0 meaning one unit for compatibility with older dumps. Returns 0
// when the absence flag is set.
func (hdr *header) PRGRAMSize() int {
	if !hdr.HasPRGRAM() {
		return 0
	}
	units := int(hdr.raw[8])
	if units == 0 {
		units = 1
	}
	return units * 8192
}

// NTMirroring is the nametable arrangement hard-wired by the cartridge.
type NTMirroring uint8

const (
	HorzMirroring NTMirroring = iota
	VertMirroring
	FourScreenMirroring
)

func (m NTMirroring) String() string {
	switch m {
	case HorzMirroring:
		return "horizontal"
	case VertMirroring:
		return "vertical"
	case FourScreenMirroring:
		return "four-screen"
	}
	return "unknown"
}

// Mirroring returns the nametable mirroring declared in header byte 6.
func (hdr *header) Mirroring() NTMirroring {
	switch {
	case hdr.raw[6]&0x08 != 0:
		return FourScreenMirroring
	case hdr.raw[6]&0x01 != 0:
		return VertMirroring
	}
	return HorzMirroring
}

// IsNES20 reports whether the header uses the NES 2.0 extension.
func (hdr *header) IsNES20() bool {
	return hdr.raw[7]&0x0C == 0x08
}

// PrintInfos writes a short human-readable description of the rom header.
func (rom *Rom) PrintInfos(w io.Writer) {
	fmt.Fprintf(w, "mapper:   %d\n", rom.Mapper())
	fmt.Fprintf(w, "PRG ROM:  %d KiB\n", rom.prgsz/1024)
	fmt.Fprintf(w, "CHR ROM:  %d KiB\n", rom.chrsz/1024)
	fmt.Fprintf(w, "PRG RAM:  %d KiB\n", rom.PRGRAMSize()/1024)
	fmt.Fprintf(w, "mirror:   %s\n", rom.Mirroring())
	fmt.Fprintf(w, "trainer:  %t\n", rom.HasTrainer())
	fmt.Fprintf(w, "battery:  %t\n", rom.HasPersistent())
}
