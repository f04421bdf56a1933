package mappers

import (
	"testing"

	"fami/hw"
	"fami/ines"
)

// makeRom builds a minimal iNES image in memory: prgUnits 16 KiB PRG banks,
// one 8 KiB CHR bank, byte6 carrying the mirroring and mapper low nibble.
func makeRom(t *testing.T, prgUnits int, byte6 uint8) *ines.Rom {
	t.Helper()

	buf := make([]byte, 16+prgUnits*0x4000+0x2000)
	copy(buf, ines.Magic)
	buf[4] = uint8(prgUnits)
	buf[5] = 1
	buf[6] = byte6

	rom, err := ines.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	return rom
}

func TestNewCartridgeUnsupportedMapper(t *testing.T) {
	rom := makeRom(t, 1, 0x40) // mapper 4
	if _, err := NewCartridge(rom); err == nil {
		t.Fatal("expected an error for mapper 4")
	}
}

func TestNROMRejectsOddPRGSize(t *testing.T) {
	rom := makeRom(t, 3, 0)
	if _, err := NewCartridge(rom); err == nil {
		t.Fatal("expected an error for 48 KiB of PRG ROM")
	}
}

func TestNROMPRGDecode(t *testing.T) {
	cart16, err := NewCartridge(makeRom(t, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	cart32, err := NewCartridge(makeRom(t, 2, 0))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		m    hw.Mapper
		addr uint16
		want hw.Location
	}{
		{"ram", cart16.Mapper, 0x0123, hw.Location{Kind: hw.LocCPURAM, Addr: 0x0123}},
		{"ram mirror", cart16.Mapper, 0x0923, hw.Location{Kind: hw.LocCPURAM, Addr: 0x0123}},
		{"prg ram", cart16.Mapper, 0x6010, hw.Location{Kind: hw.LocPRGRAM, Addr: 0x0010}},
		{"expansion", cart16.Mapper, 0x5000, hw.Location{Kind: hw.LocNowhere}},
		{"rom start", cart16.Mapper, 0x8000, hw.Location{Kind: hw.LocPRGROM, Addr: 0x0000}},
		{"16k mirror", cart16.Mapper, 0xC123, hw.Location{Kind: hw.LocPRGROM, Addr: 0x0123}},
		{"vectors", cart16.Mapper, 0xFFFC, hw.Location{Kind: hw.LocPRGROM, Addr: 0x3FFC}},
		{"32k no mirror", cart32.Mapper, 0xC123, hw.Location{Kind: hw.LocPRGROM, Addr: 0x4123}},
		{"32k vectors", cart32.Mapper, 0xFFFC, hw.Location{Kind: hw.LocPRGROM, Addr: 0x7FFC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.ReadCPU(tt.addr); got != tt.want {
				t.Errorf("ReadCPU(%04X) = %+v, want %+v", tt.addr, got, tt.want)
			}
		})
	}
}

func TestNROMNametableMirroring(t *testing.T) {
	horz, err := NewCartridge(makeRom(t, 1, 0x00))
	if err != nil {
		t.Fatal(err)
	}
	vert, err := NewCartridge(makeRom(t, 1, 0x01))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		m    hw.Mapper
		addr uint16
		want uint16
	}{
		// Horizontal: $2000/$2400 share a table, $2800/$2C00 the other.
		{"horz A", horz.Mapper, 0x2005, 0x0005},
		{"horz A mirror", horz.Mapper, 0x2405, 0x0005},
		{"horz B", horz.Mapper, 0x2805, 0x0405},
		{"horz B mirror", horz.Mapper, 0x2C05, 0x0405},
		// Vertical: $2000/$2800 share a table, $2400/$2C00 the other.
		{"vert A", vert.Mapper, 0x2005, 0x0005},
		{"vert A mirror", vert.Mapper, 0x2805, 0x0005},
		{"vert B", vert.Mapper, 0x2405, 0x0405},
		{"vert B mirror", vert.Mapper, 0x2C05, 0x0405},
		// $3000-$3EFF repeats the nametable space.
		{"high mirror", vert.Mapper, 0x3005, 0x0005},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.ReadPPU(tt.addr)
			want := hw.Location{Kind: hw.LocPPURAM, Addr: tt.want}
			if got != want {
				t.Errorf("ReadPPU(%04X) = %+v, want %+v", tt.addr, got, want)
			}
		})
	}
}

func TestNROMPatternSpace(t *testing.T) {
	cart, err := NewCartridge(makeRom(t, 1, 0))
	if err != nil {
		t.Fatal(err)
	}

	got := cart.Mapper.ReadPPU(0x1234)
	want := hw.Location{Kind: hw.LocCHRROM, Addr: 0x1234}
	if got != want {
		t.Errorf("ReadPPU(1234) = %+v, want %+v", got, want)
	}
}
