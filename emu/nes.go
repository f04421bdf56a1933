package emu

import (
	"fmt"
	"io"

	"fami/hw"
	"fami/hw/mappers"
	"fami/hw/snapshot"
	"fami/ines"
)

// NES couples a CPU and its bus into a runnable machine.
type NES struct {
	CPU *hw.CPU
	Bus *hw.Bus
	Rom *ines.Rom
}

// PowerUp assembles a machine around the given ROM and brings it to
// power-on state, ready to execute from the reset vector.
func PowerUp(rom *ines.Rom) (*NES, error) {
	cart, err := mappers.NewCartridge(rom)
	if err != nil {
		return nil, fmt.Errorf("power up failed: %w", err)
	}

	bus := hw.NewBus(cart)
	cpu := hw.NewCPU(bus)
	cpu.PowerUp()

	return &NES{CPU: cpu, Bus: bus, Rom: rom}, nil
}

// Step advances the machine by one CPU clock cycle; the PPU runs three
// dots per CPU cycle.
func (nes *NES) Step() {
	nes.CPU.Step()
	nes.Bus.PPU.Tick()
	nes.Bus.PPU.Tick()
	nes.Bus.PPU.Tick()
}

// StepInstr advances the machine to the next instruction boundary,
// running at least one cycle.
func (nes *NES) StepInstr() {
	nes.Step()
	nes.syncToBoundary()
}

func (nes *NES) syncToBoundary() {
	for !nes.CPU.AtFetch() && !nes.CPU.Halted() {
		nes.Step()
	}
}

// RunFrame runs the machine until the PPU finishes the current frame.
func (nes *NES) RunFrame() {
	frames := nes.Bus.PPU.Frames
	for nes.Bus.PPU.Frames == frames {
		nes.Step()
	}
}

// Reset pulls the reset line. The CPU services it at its next fetch.
func (nes *NES) Reset() {
	nes.Bus.Reset = true
}

// SaveState brings the machine to an instruction boundary and writes its
// state to w.
func (nes *NES) SaveState(w io.Writer) error {
	nes.syncToBoundary()
	return snapshot.Encode(w, nes.Bus.State(nes.CPU))
}

// LoadState restores a state previously written by SaveState. The
// cartridge must be the same ROM.
func (nes *NES) LoadState(r io.Reader) error {
	s, err := snapshot.Decode(r)
	if err != nil {
		return err
	}
	nes.Bus.SetState(nes.CPU, s)
	return nil
}
