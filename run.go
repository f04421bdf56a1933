package main

import (
	"os"
	"os/signal"
	"runtime/pprof"

	"fami/emu"
	"fami/ines"
)

// emuMain runs the emulator directly with the given rom.
func emuMain(args Run) {
	rom, err := ines.Open(args.RomPath)
	checkf(err, "failed to open rom")
	if rom.IsNES20() {
		fatalf("nes 2.0 roms are not supported yet")
	}

	cfg := emu.LoadConfigOrDefault()
	if args.Trace != nil {
		cfg.TraceOut = args.Trace
	}
	if args.NoSpeedLimit {
		cfg.Emulation.NoSpeedLimit = true
	}

	nes, err := emu.PowerUp(rom)
	checkf(err, "failed to start emulator")
	emulator := emu.New(nes, cfg)

	if args.CPUProfile != "" {
		f, err := os.Create(args.CPUProfile)
		checkf(err, "failed to create cpu profile file")
		checkf(pprof.StartCPUProfile(f), "failed to start cpu profile")
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		emulator.Stop()
	}()

	if args.Frames > 0 {
		for range args.Frames {
			nes.RunFrame()
			if nes.CPU.Halted() {
				break
			}
		}
		if cfg.TraceOut != nil {
			cfg.TraceOut.Close()
		}
	} else {
		emulator.Run()
	}

	if args.Screenshot != "" {
		checkf(emulator.Screenshot(args.Screenshot), "failed to write screenshot")
	}
}
