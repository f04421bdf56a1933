// Package snapshot defines the serializable machine state and its JSON
// codec. States are taken at instruction boundaries, so no mid-instruction
// micro-state needs to survive a round trip.
package snapshot

// Version is bumped on any incompatible change to the state layout.
const Version = 1

type NES struct {
	Version int
	CPU     CPU
	RAM     []byte
	PRGRAM  []byte
	PPU     PPU
}

type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       uint8

	Clock  int64
	Halted bool
}

type PPU struct {
	Ctrl    uint8
	Mask    uint8
	Status  uint8
	OAMAddr uint8

	VRAMAddr   uint16
	VRAMTemp   uint16
	FineX      uint8
	WriteLatch bool

	OpenBus    uint8
	PPUDataBuf uint8

	Dot      int
	Scanline int
	Frames   uint64
	OddFrame bool

	RAM     []byte
	Palette []byte
	OAM     []byte
}
