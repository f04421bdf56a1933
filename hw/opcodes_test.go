package hw

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"fami/tests"
)

func TestAllOpcodesAreImplemented(t *testing.T) {
	for opcode, op := range opsTable {
		if op.name == "" {
			t.Errorf("opcode %02x not implemented", opcode)
		}
	}
}

// TestOpcodes checks every opcode against the Tom Harte single-step suite:
// 10000 cases per opcode, each a single instruction with initial and final
// machine state plus the exact cycle count.
func TestOpcodes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long test")
	}

	dir := tests.TomHarteProcTestsPath(t)

	for opcode := range 256 {
		op := uint8(opcode)
		opstr := fmt.Sprintf("%02x", opcode)
		switch {
		case opsTable[op].kind == kKIL:
			t.Run(opstr, func(t *testing.T) { t.Skip("jam opcode") })
		case isUnstable(op):
			t.Run(opstr, func(t *testing.T) { t.Skip("unstable opcode") })
		default:
			t.Run(opstr, testOpcode(filepath.Join(dir, opstr+".json")))
		}
	}
}

func testOpcode(path string) func(t *testing.T) {
	return func(t *testing.T) {
		t.Parallel()

		buf, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}

		type (
			CPUState struct {
				PC  int     `json:"pc"`
				SP  int     `json:"s"`
				A   int     `json:"a"`
				X   int     `json:"x"`
				Y   int     `json:"y"`
				P   int     `json:"p"`
				RAM [][]int `json:"ram"`
			}
			TestCase struct {
				Name    string   `json:"name"`
				Initial CPUState `json:"initial"`
				Final   CPUState `json:"final"`
				Cycles  [][]any  `json:"cycles"`
			}
		)
		var cases []TestCase
		if err := json.Unmarshal(buf, &cases); err != nil {
			t.Fatal(err)
		}

		for _, tt := range cases {
			t.Run(tt.Name, func(t *testing.T) {
				bus, cpu := newFlatBus()
				cpu.A = uint8(tt.Initial.A)
				cpu.X = uint8(tt.Initial.X)
				cpu.Y = uint8(tt.Initial.Y)
				cpu.P = P(tt.Initial.P)
				cpu.SP = uint8(tt.Initial.SP)
				cpu.PC = uint16(tt.Initial.PC)

				for _, row := range tt.Initial.RAM {
					bus.Cart.PRGRAM[row[0]] = uint8(row[1])
				}

				for range tt.Cycles {
					cpu.Step()
				}

				checkReg := func(name string, got, want int) {
					if got != want {
						t.Errorf("%s = %02x, want %02x", name, got, want)
					}
				}
				checkReg("PC", int(cpu.PC), tt.Final.PC)
				checkReg("SP", int(cpu.SP), tt.Final.SP)
				checkReg("A", int(cpu.A), tt.Final.A)
				checkReg("X", int(cpu.X), tt.Final.X)
				checkReg("Y", int(cpu.Y), tt.Final.Y)
				checkReg("P", int(cpu.P), tt.Final.P)

				if !cpu.AtFetch() {
					t.Errorf("not at an instruction boundary after %d cycles", len(tt.Cycles))
				}

				for _, row := range tt.Final.RAM {
					addr, want := uint16(row[0]), uint8(row[1])
					if got := bus.Cart.PRGRAM[addr]; got != want {
						t.Errorf("ram[%04x] = %02x, want %02x", addr, got, want)
					}
				}
			})
		}
	}
}
