package emu

import (
	"fmt"
	"image/png"
	"os"
	"sync/atomic"
	"time"

	"fami/emu/log"
	"fami/hw"
)

// NTSC frame rate, and the wall-clock budget of one frame.
const ntscFPS = 60.0988

var frameNanos = float64(time.Second) / ntscFPS
var framePeriod = time.Duration(frameNanos)

// Emulator drives a NES machine in real time, frame by frame.
type Emulator struct {
	NES *NES
	cfg Config

	quit   atomic.Bool
	paused atomic.Bool
}

func New(nes *NES, cfg Config) *Emulator {
	if err := log.EnableDebugModulesByName(cfg.General.DebugModules); err != nil {
		log.ModEmu.WarnZ("bad debug_modules config").Error("err", err).End()
	}
	if cfg.TraceOut != nil {
		nes.CPU.SetTracer(hw.NewLineTracer(cfg.TraceOut))
	}
	return &Emulator{NES: nes, cfg: cfg}
}

// Stop makes Run return after the current frame.
func (e *Emulator) Stop() {
	e.quit.Store(true)
}

func (e *Emulator) SetPaused(paused bool) {
	e.paused.Store(paused)
}

// Run executes frames until Stop is called or the CPU jams, pacing them at
// NTSC speed unless configured otherwise.
func (e *Emulator) Run() {
	start := time.Now()
	next := start
	frames := 0

	for !e.quit.Load() {
		if e.paused.Load() {
			time.Sleep(framePeriod)
			next = time.Now()
			continue
		}

		e.NES.RunFrame()
		frames++

		if e.NES.CPU.Halted() {
			log.ModEmu.WarnZ("CPU jammed, stopping").End()
			break
		}

		if !e.cfg.Emulation.NoSpeedLimit {
			next = next.Add(framePeriod)
			time.Sleep(time.Until(next))
		}
	}

	elapsed := time.Since(start)
	log.ModEmu.InfoZ("emulation stopped").
		Int("frames", frames).
		String("fps", fmt.Sprintf("%.2f", float64(frames)/elapsed.Seconds())).
		End()

	if e.cfg.TraceOut != nil {
		e.cfg.TraceOut.Close()
	}
}

// Screenshot writes the last completed frame to path as PNG.
func (e *Emulator) Screenshot(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, e.NES.Bus.PPU.RenderRGBA()); err != nil {
		return fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return nil
}
