package hw

import (
	"fami/emu/log"
)

// Bus is the CPU-side memory bus. It owns work RAM and the interrupt
// lines, and routes every access through the cartridge mapper's Location
// classification.
type Bus struct {
	RAM [0x800]uint8
	APU [0x18]uint8 // register scratch, no audio behind it

	PPU  *PPU
	Cart *Cartridge

	// Signal lines, polled by the CPU at instruction fetch.
	Reset bool
	NMI   bool
	IRQ   bool
}

func NewBus(cart *Cartridge) *Bus {
	b := &Bus{
		PPU:  NewPPU(),
		Cart: cart,
	}
	b.PPU.bus = b
	return b
}

// StartVblank raises the vblank status flag and, if PPUCTRL enables it,
// pulls the NMI line.
func (b *Bus) StartVblank() {
	SetBit8(&b.PPU.status, vblank)
	if GetBit8(b.PPU.ctrl, nmiEnable) {
		b.NMI = true
	}
}

// ReadCPU reads one byte from the CPU address space. Reads from write-only
// PPU ports return the open-bus latch; every PPU port access refreshes it.
func (b *Bus) ReadCPU(addr uint16) uint8 {
	loc := b.Cart.Mapper.ReadCPU(addr)

	switch loc.Kind {
	case LocCPURAM:
		return b.RAM[loc.Addr]
	case LocPRGROM:
		return b.Cart.ReadPRG(loc.Addr)
	case LocPRGRAM:
		if !b.Cart.HasPRGRAM() {
			log.ModBus.WarnZ("read from absent PRG RAM").Hex16("addr", addr).End()
			return 0
		}
		return b.Cart.PRGRAM[loc.Addr]
	case LocAPU:
		return b.APU[loc.Addr]

	case LocPPUStatus:
		val := b.PPU.ReadSTATUS()
		b.PPU.latch = val
		return val
	case LocOAMData:
		val := b.PPU.ReadOAMDATA()
		b.PPU.latch = val
		return val
	case LocPPUData:
		val := b.PPU.ReadDATA()
		b.PPU.latch = val
		return val
	case LocPPUCtrl, LocPPUMask, LocOAMAddr, LocPPUScroll, LocPPUAddr, LocOAMDMA:
		// Write-only ports read back the open bus.
		return b.PPU.latch

	case LocNowhere:
		log.ModBus.WarnZ("read at unmapped address").Hex16("addr", addr).End()
		return 0
	default:
		log.ModBus.WarnZ("unexpected CPU read classification").
			Hex16("addr", addr).
			Stringer("loc", loc.Kind).
			End()
		return 0
	}
}

// WriteCPU writes one byte to the CPU address space.
func (b *Bus) WriteCPU(addr uint16, val uint8) {
	loc := b.Cart.Mapper.WriteCPU(addr)

	switch loc.Kind {
	case LocCPURAM:
		b.RAM[loc.Addr] = val
	case LocPRGRAM:
		if !b.Cart.HasPRGRAM() {
			log.ModBus.WarnZ("write to absent PRG RAM").
				Hex16("addr", addr).
				Hex8("val", val).
				End()
			return
		}
		b.Cart.PRGRAM[loc.Addr] = val
	case LocPRGROM:
		log.ModBus.WarnZ("write to PRG ROM discarded").
			Hex16("addr", addr).
			Hex8("val", val).
			End()
	case LocAPU:
		b.APU[loc.Addr] = val

	case LocPPUCtrl:
		b.PPU.latch = val
		b.PPU.WriteCTRL(val)
	case LocPPUMask:
		b.PPU.latch = val
		b.PPU.WriteMASK(val)
	case LocPPUStatus:
		b.PPU.latch = val
		log.ModBus.WarnZ("write to PPUSTATUS discarded").Hex8("val", val).End()
	case LocOAMAddr:
		b.PPU.latch = val
		b.PPU.WriteOAMADDR(val)
	case LocOAMData:
		b.PPU.latch = val
		b.PPU.WriteOAMDATA(val)
	case LocPPUScroll:
		b.PPU.latch = val
		b.PPU.WriteSCROLL(val)
	case LocPPUAddr:
		b.PPU.latch = val
		b.PPU.WriteADDR(val)
	case LocPPUData:
		b.PPU.latch = val
		b.PPU.WriteDATA(val)
	case LocOAMDMA:
		b.PPU.WriteOAMDMA(val)

	case LocNowhere:
		log.ModBus.WarnZ("write at unmapped address").
			Hex16("addr", addr).
			Hex8("val", val).
			End()
	default:
		log.ModBus.WarnZ("unexpected CPU write classification").
			Hex16("addr", addr).
			Stringer("loc", loc.Kind).
			End()
	}
}

// PeekCPU reads without side effects: PPU ports return the open-bus latch
// instead of going through their read logic. The tracer and the debugger
// use it to inspect memory.
func (b *Bus) PeekCPU(addr uint16) uint8 {
	loc := b.Cart.Mapper.ReadCPU(addr)

	switch loc.Kind {
	case LocCPURAM:
		return b.RAM[loc.Addr]
	case LocPRGROM:
		return b.Cart.ReadPRG(loc.Addr)
	case LocPRGRAM:
		if !b.Cart.HasPRGRAM() {
			return 0
		}
		return b.Cart.PRGRAM[loc.Addr]
	case LocAPU:
		return b.APU[loc.Addr]
	case LocPPUCtrl, LocPPUMask, LocPPUStatus, LocOAMAddr, LocOAMData,
		LocPPUScroll, LocPPUAddr, LocPPUData, LocOAMDMA:
		return b.PPU.latch
	default:
		return 0
	}
}
