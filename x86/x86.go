// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package x86

import (
	"encoding/binary"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/x64emu/cpu"
	"github.com/ezrec/x64emu/internal"
)

// Cpu is an x86-64 processor model: registers, MMU mode and the physical
// address bus. It does not execute instructions.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Registers Registers // Register file.
	Mmu       Mmu       // Paging mode.
	Bus       cpu.Bus   // Physical address space.
}

var _ cpu.Cpu = (*Cpu)(nil)

// NewCpu creates a Cpu in real mode with zeroed registers and no devices.
func NewCpu() (cp *Cpu) {
	cp = &Cpu{}
	return
}

// GeneralRegisterSize is 8 bytes.
func (cp *Cpu) GeneralRegisterSize() int {
	return 8
}

// Endianness is little-endian.
func (cp *Cpu) Endianness() cpu.Endianness {
	return cpu.ENDIAN_LITTLE
}

// AddDevice attaches a device to the bus.
func (cp *Cpu) AddDevice(dev cpu.Device) (err error) {
	cp.Bus.Verbose = cp.Verbose
	return cp.Bus.Attach(dev)
}

// Features returns the available features. Paging is enabled outside of
// real mode.
func (cp *Cpu) Features() cpu.Features {
	return cpu.Features{
		Simd:   true,
		Paging: cp.Mmu.PagingMode() != PAGING_MODE_REAL,
	}
}

// Reset zeroes the registers and returns to real mode. Devices stay attached.
func (cp *Cpu) Reset() {
	cp.Registers.Reset()
	cp.Mmu.SetPagingMode(PAGING_MODE_REAL)
}

// Fetch reads an operand at a width, zero extended.
func (cp *Cpu) Fetch(op Operand, width Width) (value uint64, err error) {
	if !width.Valid() {
		err = ErrWidthInvalid
		return
	}

	switch op.Kind {
	case OPERAND_REG:
		value = cp.Registers.Read(op.Reg, width)
	case OPERAND_IMM:
		value = op.Imm & width.Mask()
	case OPERAND_MEM:
		address := op.Mem.EffectiveAddress(&cp.Registers)
		var data []byte
		data, err = cp.Bus.ReadBytes(address, uint64(width.Bits()/8))
		if err != nil {
			return
		}
		var word [8]byte
		copy(word[:], data)
		value = binary.LittleEndian.Uint64(word[:])
	default:
		err = ErrOperandInvalid
		return
	}

	if cp.Verbose {
		log.Printf("x86: fetch %v.%d = 0x%x", op, width.Bits(), value)
	}

	return
}

// Store writes an operand at a width. Immediates cannot be stored to.
// Widths other than WIDTH_8 to WIDTH_64, such as WIDTH_UNKNOWN, fail with
// ErrWidthInvalid, as they do for Fetch.
func (cp *Cpu) Store(op Operand, width Width, value uint64) (err error) {
	if !width.Valid() {
		err = ErrWidthInvalid
		return
	}

	if cp.Verbose {
		log.Printf("x86: store %v.%d = 0x%x", op, width.Bits(), value)
	}

	switch op.Kind {
	case OPERAND_REG:
		cp.Registers.Write(op.Reg, width, value)
	case OPERAND_MEM:
		address := op.Mem.EffectiveAddress(&cp.Registers)
		var word [8]byte
		binary.LittleEndian.PutUint64(word[:], value)
		err = cp.Bus.WriteBytes(address, word[:width.Bits()/8])
	default:
		err = ErrOperandInvalid
	}

	return
}

func (cp *Cpu) String() string {
	return fmt.Sprintf("%vmode: %v\n", cp.Registers.String(), cp.Mmu.PagingMode())
}

var _x86_defines = map[string]string{
	"GENERAL_REGISTER_SIZE": "8",
	"SIMD_COUNT":            fmt.Sprintf("%v", SIMD_COUNT),
	"PAGING_MODE_REAL":      fmt.Sprintf("%d", PAGING_MODE_REAL),
	"PAGING_MODE_PROTECTED": fmt.Sprintf("%d", PAGING_MODE_PROTECTED),
	"PAGING_MODE_LONG":      fmt.Sprintf("%d", PAGING_MODE_LONG),
	"PAGING_MODE_LONG_LA57": fmt.Sprintf("%d", PAGING_MODE_LONG_LA57),
}

// flagDefines yields FLAG_CARRY, FLAG_PARITY, ... for each named RFLAGS bit.
func flagDefines() iter.Seq2[string, string] {
	return func(yield func(key string, value string) bool) {
		for _, entry := range flagNames {
			if !yield(entry.define, fmt.Sprintf("%#x", uint64(entry.flag))) {
				return
			}
		}
	}
}

// Defines returns the paging modes and the RFLAGS bits.
func (cp *Cpu) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_x86_defines), flagDefines())
}
