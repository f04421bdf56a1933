package snapshot

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-faster/jx"
)

// Encode writes s to w as a single JSON object.
func Encode(w io.Writer, s *NES) error {
	var e jx.Encoder

	e.Obj(func(e *jx.Encoder) {
		e.Field("version", func(e *jx.Encoder) { e.Int(s.Version) })
		e.Field("cpu", func(e *jx.Encoder) { encodeCPU(e, &s.CPU) })
		e.Field("ram", func(e *jx.Encoder) { e.Base64(s.RAM) })
		e.Field("prgram", func(e *jx.Encoder) { e.Base64(s.PRGRAM) })
		e.Field("ppu", func(e *jx.Encoder) { encodePPU(e, &s.PPU) })
	})

	_, err := w.Write(e.Bytes())
	return err
}

func encodeCPU(e *jx.Encoder, c *CPU) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("a", func(e *jx.Encoder) { e.Int(int(c.A)) })
		e.Field("x", func(e *jx.Encoder) { e.Int(int(c.X)) })
		e.Field("y", func(e *jx.Encoder) { e.Int(int(c.Y)) })
		e.Field("sp", func(e *jx.Encoder) { e.Int(int(c.SP)) })
		e.Field("pc", func(e *jx.Encoder) { e.Int(int(c.PC)) })
		e.Field("p", func(e *jx.Encoder) { e.Int(int(c.P)) })
		e.Field("clock", func(e *jx.Encoder) { e.Int64(c.Clock) })
		e.Field("halted", func(e *jx.Encoder) { e.Bool(c.Halted) })
	})
}

func encodePPU(e *jx.Encoder, p *PPU) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("ctrl", func(e *jx.Encoder) { e.Int(int(p.Ctrl)) })
		e.Field("mask", func(e *jx.Encoder) { e.Int(int(p.Mask)) })
		e.Field("status", func(e *jx.Encoder) { e.Int(int(p.Status)) })
		e.Field("oamaddr", func(e *jx.Encoder) { e.Int(int(p.OAMAddr)) })
		e.Field("v", func(e *jx.Encoder) { e.Int(int(p.VRAMAddr)) })
		e.Field("t", func(e *jx.Encoder) { e.Int(int(p.VRAMTemp)) })
		e.Field("finex", func(e *jx.Encoder) { e.Int(int(p.FineX)) })
		e.Field("w", func(e *jx.Encoder) { e.Bool(p.WriteLatch) })
		e.Field("openbus", func(e *jx.Encoder) { e.Int(int(p.OpenBus)) })
		e.Field("rbuf", func(e *jx.Encoder) { e.Int(int(p.PPUDataBuf)) })
		e.Field("dot", func(e *jx.Encoder) { e.Int(p.Dot) })
		e.Field("scanline", func(e *jx.Encoder) { e.Int(p.Scanline) })
		e.Field("frames", func(e *jx.Encoder) { e.UInt64(p.Frames) })
		e.Field("odd", func(e *jx.Encoder) { e.Bool(p.OddFrame) })
		e.Field("ram", func(e *jx.Encoder) { e.Base64(p.RAM) })
		e.Field("palette", func(e *jx.Encoder) { e.Base64(p.Palette) })
		e.Field("oam", func(e *jx.Encoder) { e.Base64(p.OAM) })
	})
}

// Decode reads a state previously written by Encode.
func Decode(r io.Reader) (*NES, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	s := new(NES)
	d := jx.DecodeBytes(buf)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "version":
			s.Version, err = d.Int()
			return err
		case "cpu":
			return decodeCPU(d, &s.CPU)
		case "ram":
			s.RAM, err = d.Base64()
			return err
		case "prgram":
			s.PRGRAM, err = d.Base64()
			return err
		case "ppu":
			return decodePPU(d, &s.PPU)
		default:
			return d.Skip()
		}
	}); err != nil {
		return nil, fmt.Errorf("corrupt state: %w", err)
	}

	if s.Version != Version {
		return nil, errors.New("unsupported state version")
	}
	return s, nil
}

func decodeU8(d *jx.Decoder, dst *uint8) error {
	v, err := d.Int()
	*dst = uint8(v)
	return err
}

func decodeCPU(d *jx.Decoder, c *CPU) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "a":
			return decodeU8(d, &c.A)
		case "x":
			return decodeU8(d, &c.X)
		case "y":
			return decodeU8(d, &c.Y)
		case "sp":
			return decodeU8(d, &c.SP)
		case "pc":
			v, err := d.Int()
			c.PC = uint16(v)
			return err
		case "p":
			return decodeU8(d, &c.P)
		case "clock":
			c.Clock, err = d.Int64()
			return err
		case "halted":
			c.Halted, err = d.Bool()
			return err
		default:
			return d.Skip()
		}
	})
}

func decodePPU(d *jx.Decoder, p *PPU) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "ctrl":
			return decodeU8(d, &p.Ctrl)
		case "mask":
			return decodeU8(d, &p.Mask)
		case "status":
			return decodeU8(d, &p.Status)
		case "oamaddr":
			return decodeU8(d, &p.OAMAddr)
		case "v":
			v, err := d.Int()
			p.VRAMAddr = uint16(v)
			return err
		case "t":
			v, err := d.Int()
			p.VRAMTemp = uint16(v)
			return err
		case "finex":
			return decodeU8(d, &p.FineX)
		case "w":
			p.WriteLatch, err = d.Bool()
			return err
		case "openbus":
			return decodeU8(d, &p.OpenBus)
		case "rbuf":
			return decodeU8(d, &p.PPUDataBuf)
		case "dot":
			p.Dot, err = d.Int()
			return err
		case "scanline":
			p.Scanline, err = d.Int()
			return err
		case "frames":
			p.Frames, err = d.UInt64()
			return err
		case "odd":
			p.OddFrame, err = d.Bool()
			return err
		case "ram":
			p.RAM, err = d.Base64()
			return err
		case "palette":
			p.Palette, err = d.Base64()
			return err
		case "oam":
			p.OAM, err = d.Base64()
			return err
		default:
			return d.Skip()
		}
	})
}
