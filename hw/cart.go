package hw

// Cartridge holds the memory a game ships with. PRG and CHR are read-only
// for the process lifetime; PRGRAM is working memory, zero-length when the
// header declares it absent.
type Cartridge struct {
	PRG    []byte
	CHR    []byte
	PRGRAM []byte

	Mapper Mapper
}

// HasPRGRAM reports whether the cartridge carries working RAM.
func (c *Cartridge) HasPRGRAM() bool {
	return len(c.PRGRAM) != 0
}

// ReadPRG reads PRG ROM at off. off must come from a mapper Location, which
// guarantees it is within bounds.
func (c *Cartridge) ReadPRG(off uint16) uint8 {
	return c.PRG[off]
}

// ReadCHR reads CHR ROM at off.
func (c *Cartridge) ReadCHR(off uint16) uint8 {
	if int(off) >= len(c.CHR) {
		return 0
	}
	return c.CHR[off]
}
