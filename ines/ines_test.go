package ines

import (
	"errors"
	"testing"
)

// image assembles a minimal iNES file with nprg 16KiB PRG banks and nchr
// 8KiB CHR banks.
func image(nprg, nchr int, mod func(hdr []byte)) []byte {
	hdr := make([]byte, 16)
	copy(hdr, Magic)
	hdr[4] = byte(nprg)
	hdr[5] = byte(nchr)
	if mod != nil {
		mod(hdr)
	}
	buf := append([]byte{}, hdr...)
	buf = append(buf, make([]byte, nprg*16384+nchr*8192)...)
	return buf
}

func TestDecode(t *testing.T) {
	rom, err := Decode(image(2, 1, nil))
	if err != nil {
		t.Fatal(err)
	}
	if len(rom.PRG) != 0x8000 {
		t.Errorf("PRG size = %#x, want 0x8000", len(rom.PRG))
	}
	if len(rom.CHR) != 0x2000 {
		t.Errorf("CHR size = %#x, want 0x2000", len(rom.CHR))
	}
	if rom.Mapper() != 0 {
		t.Errorf("mapper = %d, want 0", rom.Mapper())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want error
	}{
		{"short header", []byte("NES\x1a"), ErrShortHeader},
		{"bad magic", image(1, 1, func(hdr []byte) { hdr[0] = 'X' }), ErrInvalidMagic},
		{"truncated PRG", image(1, 1, nil)[:16+1000], ErrShortPRG},
		{"truncated CHR", image(1, 1, nil)[:16+16384+1000], ErrShortCHR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.buf)
			if !errors.Is(err, tt.want) {
				t.Errorf("got error %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMapperNumber(t *testing.T) {
	rom, err := Decode(image(1, 1, func(hdr []byte) {
		hdr[6] = 0x10 // low nibble of mapper id in high nibble of byte 6
		hdr[7] = 0x40 // high nibble of mapper id in high nibble of byte 7
	}))
	if err != nil {
		t.Fatal(err)
	}
	if got := rom.Mapper(); got != 0x41 {
		t.Errorf("mapper = %#x, want 0x41", got)
	}
}

func TestMirroring(t *testing.T) {
	tests := []struct {
		byte6 byte
		want  NTMirroring
	}{
		{0x00, HorzMirroring},
		{0x01, VertMirroring},
		{0x08, FourScreenMirroring},
		{0x09, FourScreenMirroring}, // four-screen wins over the mirror bit
	}
	for _, tt := range tests {
		rom, err := Decode(image(1, 1, func(hdr []byte) { hdr[6] = tt.byte6 }))
		if err != nil {
			t.Fatal(err)
		}
		if got := rom.Mirroring(); got != tt.want {
			t.Errorf("byte 6 = %#02x: mirroring = %s, want %s", tt.byte6, got, tt.want)
		}
	}
}

func TestPRGRAMSize(t *testing.T) {
	rom, _ := Decode(image(1, 1, nil))
	if got := rom.PRGRAMSize(); got != 8192 {
		t.Errorf("default PRG RAM size = %d, want 8192", got)
	}

	rom, _ = Decode(image(1, 1, func(hdr []byte) { hdr[8] = 2 }))
	if got := rom.PRGRAMSize(); got != 16384 {
		t.Errorf("PRG RAM size = %d, want 16384", got)
	}

	rom, _ = Decode(image(1, 1, func(hdr []byte) { hdr[10] = 0x10 }))
	if rom.HasPRGRAM() {
		t.Error("HasPRGRAM() = true, want false")
	}
	if got := rom.PRGRAMSize(); got != 0 {
		t.Errorf("absent PRG RAM size = %d, want 0", got)
	}
}
