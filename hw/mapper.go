package hw

// A Mapper classifies CPU and PPU addresses into Locations. Implementations
// must be pure functions of the address: no side effects, no mutable state.
// Reads and writes are classified separately because some cartridge hardware
// decodes them differently (e.g. writes into a ROM window hitting a bank
// select latch).
type Mapper interface {
	ReadCPU(addr uint16) Location
	WriteCPU(addr uint16) Location
	ReadPPU(addr uint16) Location
	WritePPU(addr uint16) Location
}

// DecodeCPUPlatform classifies the console-fixed part of the CPU address
// space ($0000-$401F): internal RAM, PPU ports and the APU scratch area.
// Mappers call it first and only decode cartridge space themselves.
// The second return value is false for addresses the platform does not
// decode (cartridge space, $4020 and up).
func DecodeCPUPlatform(addr uint16) (Location, bool) {
	switch {
	case addr < 0x2000:
		// 2 KiB of work RAM, mirrored every 0x800.
		return at(LocCPURAM, addr%0x0800), true

	case addr < 0x4000:
		// The 8 PPU ports, mirrored every 8 bytes.
		switch addr % 8 {
		case 0:
			return at(LocPPUCtrl, 0), true
		case 1:
			return at(LocPPUMask, 0), true
		case 2:
			return at(LocPPUStatus, 0), true
		case 3:
			return at(LocOAMAddr, 0), true
		case 4:
			return at(LocOAMData, 0), true
		case 5:
			return at(LocPPUScroll, 0), true
		case 6:
			return at(LocPPUAddr, 0), true
		default:
			return at(LocPPUData, 0), true
		}

	case addr == 0x4014:
		return at(LocOAMDMA, 0), true

	case addr < 0x4018:
		return at(LocAPU, addr-0x4000), true

	case addr < 0x4020:
		// Test-mode registers, disabled on production consoles.
		return nowhere(), true
	}
	return nowhere(), false
}
