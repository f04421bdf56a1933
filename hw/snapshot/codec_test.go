package snapshot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testState() *NES {
	ram := make([]byte, 0x800)
	for i := range ram {
		ram[i] = byte(i)
	}
	return &NES{
		Version: Version,
		CPU: CPU{
			A: 0x12, X: 0x34, Y: 0x56,
			SP:     0xF0,
			PC:     0xC123,
			P:      0x65,
			Clock:  123456789,
			Halted: false,
		},
		RAM:    ram,
		PRGRAM: make([]byte, 0x2000),
		PPU: PPU{
			Ctrl:       0x90,
			Mask:       0x1E,
			Status:     0x80,
			OAMAddr:    0x04,
			VRAMAddr:   0x2108,
			VRAMTemp:   0x2000,
			FineX:      5,
			WriteLatch: true,
			OpenBus:    0xAB,
			PPUDataBuf: 0xCD,
			Dot:        120,
			Scanline:   241,
			Frames:     42,
			OddFrame:   true,
			RAM:        make([]byte, 0x800),
			Palette:    make([]byte, 0x20),
			OAM:        make([]byte, 0x100),
		},
	}
}

func TestRoundTrip(t *testing.T) {
	want := testState()

	var buf bytes.Buffer
	if err := Encode(&buf, want); err != nil {
		t.Fatal(err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	s := testState()
	s.Version = Version + 1

	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(&buf); err == nil {
		t.Fatal("expected a version error")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode(strings.NewReader("not json")); err == nil {
		t.Fatal("expected a decoding error")
	}
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testState()); err != nil {
		t.Fatal(err)
	}

	// Splice an extra field into the object; old readers must skip it.
	doc := bytes.Replace(buf.Bytes(),
		[]byte(`{"version":`),
		[]byte(`{"future":{"a":[1,2]},"version":`), 1)

	if _, err := Decode(bytes.NewReader(doc)); err != nil {
		t.Fatal(err)
	}
}
