// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	stdio "io"
	"io/fs"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/x64emu/cpu"
	"github.com/ezrec/x64emu/internal"
	"github.com/ezrec/x64emu/io"
	"github.com/ezrec/x64emu/x86"
)

const (
	CONSOLE_BASE = uint64(0xffff_ffff_ffff_f000) // Console register window.
)

// Emulator state. CPU + DRAM + devices.
type Emulator struct {
	Verbose bool // If set, enables verbose logging.
	*x86.Cpu     // Reference to the CPU model.

	Dram    *cpu.DRAM  // Main memory.
	Console io.Console // Console device, at CONSOLE_BASE.
	Rom     io.Rom     // ROM device, once attached.
	Image   io.Image   // Memory image storage.

	romAttached bool
}

// NewEmulator creates a new emulator with a DRAM window at dramBase of at
// least dramSize bytes, and the console.
func NewEmulator(dramBase uint64, dramSize uint64) (emu *Emulator, err error) {
	emu = &Emulator{
		Cpu:  x86.NewCpu(),
		Dram: cpu.NewDRAM(dramBase, dramSize),
	}

	emu.Console.Base = CONSOLE_BASE

	err = emu.Cpu.AddDevice(emu.Dram)
	if err != nil {
		return
	}

	err = emu.Cpu.AddDevice(&emu.Console)
	if err != nil {
		return
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	emulator_defines := map[string]string{
		"DRAM_BASE":    fmt.Sprintf("%#v", emu.Dram.StartAddress()),
		"DRAM_SIZE":    fmt.Sprintf("%#v", emu.Dram.Size()),
		"CONSOLE_BASE": fmt.Sprintf("%#v", CONSOLE_BASE),
	}

	seqs := []iter.Seq2[string, string]{
		maps.All(emulator_defines),
		emu.Cpu.Defines(),
		emu.Console.Defines(),
	}
	if emu.romAttached {
		seqs = append(seqs, emu.Rom.Defines())
	}

	return internal.IterSeq2Concat(seqs...)
}

// AttachRom maps a read only copy of data at base.
func (emu *Emulator) AttachRom(base uint64, data []byte) (err error) {
	if emu.romAttached {
		err = ErrRomAttached
		return
	}

	emu.Rom = io.Rom{
		Base: base,
		Data: append([]byte(nil), data...),
	}

	err = emu.Cpu.AddDevice(&emu.Rom)
	if err != nil {
		emu.Rom = io.Rom{}
		return
	}

	emu.romAttached = true

	return
}

// Load copies all of r into DRAM at address, backing memory as needed.
func (emu *Emulator) Load(address uint64, r stdio.Reader) (err error) {
	emu.Dram.Verbose = emu.Verbose

	defer func() {
		if err != nil {
			err = &ErrLoad{Address: address, Err: err}
		}
	}()

	data, err := stdio.ReadAll(r)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: load 0x%x (%d bytes)", address, len(data))
	}

	if len(data) == 0 {
		return
	}

	err = emu.Dram.AllocRange(address, uint64(len(data)))
	if err != nil {
		return
	}

	err = emu.Dram.WriteBytes(address, data)
	return
}

// LoadImage restores saved DRAM segments.
func (emu *Emulator) LoadImage(filesys fs.FS) (err error) {
	emu.Image.Verbose = emu.Verbose
	return emu.Image.Load(emu.Dram, filesys)
}

// SaveImage saves the allocated DRAM segments.
func (emu *Emulator) SaveImage(filesys io.CreateFS) (err error) {
	emu.Image.Verbose = emu.Verbose
	return emu.Image.Save(emu.Dram, filesys)
}

// Reset the processor and devices. The instruction pointer is set to the
// ROM base if a ROM is attached, otherwise to the DRAM base.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Dram.Verbose = emu.Verbose
	emu.Console.Verbose = emu.Verbose

	emu.Cpu.Reset()
	emu.Console.Reset()

	if emu.romAttached {
		emu.Cpu.Registers.Rip = emu.Rom.Base
	} else {
		emu.Cpu.Registers.Rip = emu.Dram.StartAddress()
	}
}

// Close the emulator. The processor and console are reset, and all
// devices are detached.
func (emu *Emulator) Close() (err error) {
	emu.Cpu.Reset()
	emu.Console.Reset()
	emu.Cpu.Bus.Reset()
	emu.Rom = io.Rom{}
	emu.romAttached = false

	return
}
