package hw

import "testing"

func TestIncCoarseX(t *testing.T) {
	var a VRAMAddr
	for i := 0; i < 31; i++ {
		a.IncCoarseX()
	}
	if a.CoarseX() != 31 {
		t.Fatalf("coarse X = %d, want 31", a.CoarseX())
	}

	a.IncCoarseX()
	if a.CoarseX() != 0 {
		t.Errorf("coarse X = %d, want 0", a.CoarseX())
	}
	if a&ntHorzMask == 0 {
		t.Error("horizontal nametable not toggled on wrap")
	}
}

func TestIncFineY(t *testing.T) {
	var a VRAMAddr

	for i := 0; i < 7; i++ {
		a.IncFineY()
	}
	if a.FineY() != 7 || a.CoarseY() != 0 {
		t.Fatalf("fineY=%d coarseY=%d", a.FineY(), a.CoarseY())
	}

	a.IncFineY()
	if a.FineY() != 0 || a.CoarseY() != 1 {
		t.Errorf("fineY=%d coarseY=%d, want 0 and 1", a.FineY(), a.CoarseY())
	}
}

func TestIncFineYRow29TogglesNametable(t *testing.T) {
	var a VRAMAddr
	a.SetCoarseY(29)
	a.SetFineY(7)

	a.IncFineY()
	if a.CoarseY() != 0 {
		t.Errorf("coarse Y = %d, want 0", a.CoarseY())
	}
	if a&ntVertMask == 0 {
		t.Error("vertical nametable not toggled")
	}
}

func TestIncFineYRow31WrapsWithoutToggle(t *testing.T) {
	var a VRAMAddr
	a.SetCoarseY(31)
	a.SetFineY(7)

	a.IncFineY()
	if a.CoarseY() != 0 {
		t.Errorf("coarse Y = %d, want 0", a.CoarseY())
	}
	if a&ntVertMask != 0 {
		t.Error("vertical nametable must not toggle from row 31")
	}
}

func TestCopyXY(t *testing.T) {
	var v, tmp VRAMAddr
	tmp.SetCoarseX(17)
	tmp.SetCoarseY(11)
	tmp.SetFineY(5)
	tmp.SetNametables(0b11)

	v.CopyX(tmp)
	if v.CoarseX() != 17 || v&ntHorzMask == 0 {
		t.Errorf("after CopyX: %015b", v)
	}
	if v.CoarseY() != 0 || v.FineY() != 0 || v&ntVertMask != 0 {
		t.Errorf("CopyX touched vertical bits: %015b", v)
	}

	v.CopyY(tmp)
	if v.CoarseY() != 11 || v.FineY() != 5 || v&ntVertMask == 0 {
		t.Errorf("after CopyY: %015b", v)
	}
}

func TestTileAndAttrAddr(t *testing.T) {
	var a VRAMAddr
	a.SetCoarseX(4)
	a.SetCoarseY(9)
	a.SetNametables(0b01)

	if got := a.TileAddr(); got != 0x2524 {
		t.Errorf("TileAddr = %04X, want 2524", got)
	}
	if got := a.AttrAddr(); got != 0x27D1 {
		t.Errorf("AttrAddr = %04X, want 27D1", got)
	}
	// Coarse (4, 9): right column, top row of its 2x2 quadrant.
	if got := a.AttrShift(); got != 0 {
		t.Errorf("AttrShift = %d, want 0", got)
	}
}
