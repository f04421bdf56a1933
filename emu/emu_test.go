package emu

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fami/hw"
	"fami/hw/snapshot"
	"fami/ines"
)

// makeTestRom assembles a 16 KiB NROM image running prog from $8000, with
// the reset vector pointing at it.
func makeTestRom(t *testing.T, prog ...byte) *ines.Rom {
	t.Helper()

	buf := make([]byte, 16+0x4000+0x2000)
	copy(buf, ines.Magic)
	buf[4] = 1 // one PRG bank
	buf[5] = 1 // one CHR bank

	prg := buf[16 : 16+0x4000]
	copy(prg, prog)
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80

	rom, err := ines.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	return rom
}

// counter is an endless loop bumping X.
//
//	$8000 LDX #$00
//	$8002 INX
//	$8003 JMP $8002
var counter = []byte{0xA2, 0x00, 0xE8, 0x4C, 0x02, 0x80}

func TestPowerUpState(t *testing.T) {
	nes, err := PowerUp(makeTestRom(t, counter...))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	nes.CPU.SetTracer(hw.NewLineTracer(&buf))
	nes.Step()

	want := "PC:8000 A:00 X:00 Y:00 P:24 SP:FD CYC:0\n"
	if got := buf.String(); got != want {
		t.Errorf("first trace line:\n got %q\nwant %q", got, want)
	}
}

func TestStepClockRatio(t *testing.T) {
	nes, err := PowerUp(makeTestRom(t, counter...))
	if err != nil {
		t.Fatal(err)
	}

	dots := nes.Bus.PPU.Dot
	nes.Step()
	if nes.CPU.Clock != 1 {
		t.Errorf("CPU clock = %d, want 1", nes.CPU.Clock)
	}
	if nes.Bus.PPU.Dot != dots+3 {
		t.Errorf("PPU at dot %d, want %d", nes.Bus.PPU.Dot, dots+3)
	}
}

func TestStepInstrLandsOnBoundary(t *testing.T) {
	nes, err := PowerUp(makeTestRom(t, counter...))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		nes.StepInstr()
		if !nes.CPU.AtFetch() {
			t.Fatalf("not at an instruction boundary after StepInstr %d", i)
		}
	}
}

func TestRunFrame(t *testing.T) {
	nes, err := PowerUp(makeTestRom(t, counter...))
	if err != nil {
		t.Fatal(err)
	}

	nes.RunFrame()
	if nes.Bus.PPU.Frames != 1 {
		t.Errorf("frames = %d, want 1", nes.Bus.PPU.Frames)
	}

	// NTSC: 341*262 dots per frame, 3 dots per CPU cycle.
	if nes.CPU.Clock < 29000 || nes.CPU.Clock > 30000 {
		t.Errorf("frame took %d CPU cycles", nes.CPU.Clock)
	}
}

func TestResetRestartsExecution(t *testing.T) {
	nes, err := PowerUp(makeTestRom(t, counter...))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20; i++ {
		nes.StepInstr()
	}
	if nes.CPU.X == 0 {
		t.Fatal("counter never ran")
	}

	nes.Reset()
	nes.StepInstr() // reset sequence
	if got := nes.CPU.PC; got != 0x8000 {
		t.Errorf("PC = %04X after reset, want 8000", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	nes, err := PowerUp(makeTestRom(t, counter...))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 50; i++ {
		nes.StepInstr()
	}

	var buf bytes.Buffer
	if err := nes.SaveState(&buf); err != nil {
		t.Fatal(err)
	}
	saved, err := snapshot.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	// Diverge, then restore.
	for i := 0; i < 100; i++ {
		nes.StepInstr()
	}
	if err := nes.LoadState(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(saved, nes.Bus.State(nes.CPU)); diff != "" {
		t.Errorf("restored state differs (-saved +loaded):\n%s", diff)
	}
}

func TestLoadStateReplaysDeterministically(t *testing.T) {
	nes, err := PowerUp(makeTestRom(t, counter...))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := nes.SaveState(&buf); err != nil {
		t.Fatal(err)
	}

	trail := func() []uint16 {
		pcs := make([]uint16, 64)
		for i := range pcs {
			nes.StepInstr()
			pcs[i] = nes.CPU.PC
		}
		return pcs
	}

	first := trail()
	if err := nes.LoadState(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatal(err)
	}
	second := trail()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("replay diverged (-first +second):\n%s", diff)
	}
}
