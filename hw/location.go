package hw

//go:generate go tool stringer -type=LocKind -trimprefix=Loc

// LocKind identifies the storage class a bus address resolved to.
type LocKind uint8

const (
	// LocNowhere is open bus: no storage answers the address.
	LocNowhere LocKind = iota

	// LocAPU is the audio register scratch area (no behavior implemented).
	LocAPU

	// LocCPURAM is the console's 2 KiB internal work RAM.
	LocCPURAM

	// CPU-visible PPU ports.
	LocPPUCtrl
	LocPPUMask
	LocPPUStatus
	LocOAMAddr
	LocOAMData
	LocPPUScroll
	LocPPUAddr
	LocPPUData
	LocOAMDMA

	// Cartridge storage.
	LocPRGRAM
	LocPRGROM
	LocCHRROM

	// LocPPURAM is the PPU's internal VRAM (nametables).
	LocPPURAM
)

// A Location is the result of mapper address classification: which storage
// a CPU or PPU address resolves to, and at which offset within it. It is
// the contract between Mapper and Bus: the mapper decides "where", the bus
// performs the access and its side effects.
type Location struct {
	Kind LocKind
	Addr uint16
}

func nowhere() Location { return Location{Kind: LocNowhere} }

func at(kind LocKind, addr uint16) Location {
	return Location{Kind: kind, Addr: addr}
}
