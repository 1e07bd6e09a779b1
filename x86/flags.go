// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package x86

import (
	"fmt"
	"math/bits"
	"strings"
)

// Flags is the RFLAGS bit set.
type Flags uint64

const (
	FLAG_CARRY                     = Flags(1 << 0)
	FLAG_PARITY                    = Flags(1 << 2)
	FLAG_ADJUST                    = Flags(1 << 4)
	FLAG_ZERO                      = Flags(1 << 6)
	FLAG_SIGN                      = Flags(1 << 7)
	FLAG_TRAP                      = Flags(1 << 8)
	FLAG_INTERRUPT                 = Flags(1 << 9)
	FLAG_DIRECTION                 = Flags(1 << 10)
	FLAG_OVERFLOW                  = Flags(1 << 11)
	FLAG_IOPL0                     = Flags(1 << 12)
	FLAG_IOPL1                     = Flags(1 << 13)
	FLAG_NESTED                    = Flags(1 << 14)
	FLAG_RESUME                    = Flags(1 << 16)
	FLAG_VIRTUAL8086               = Flags(1 << 17)
	FLAG_ALIGNMENT                 = Flags(1 << 18)
	FLAG_VIRTUAL_INTERRUPT         = Flags(1 << 19)
	FLAG_VIRTUAL_INTERRUPT_PENDING = Flags(1 << 20)
	FLAG_ID                        = Flags(1 << 21)
	FLAG_AES                       = Flags(1 << 30)
	FLAG_ALTERNATE_INSTRUCTION_SET = Flags(1 << 31)

	FLAG_IOPL_MASK  = FLAG_IOPL0 | FLAG_IOPL1 // I/O privilege level field.
	FLAG_IOPL_SHIFT = 12
)

// flagNames in bit order, with the short name shown by String and the
// name of the constant.
var flagNames = []struct {
	flag   Flags
	name   string
	define string
}{
	{FLAG_CARRY, "cf", "FLAG_CARRY"},
	{FLAG_PARITY, "pf", "FLAG_PARITY"},
	{FLAG_ADJUST, "af", "FLAG_ADJUST"},
	{FLAG_ZERO, "zf", "FLAG_ZERO"},
	{FLAG_SIGN, "sf", "FLAG_SIGN"},
	{FLAG_TRAP, "tf", "FLAG_TRAP"},
	{FLAG_INTERRUPT, "if", "FLAG_INTERRUPT"},
	{FLAG_DIRECTION, "df", "FLAG_DIRECTION"},
	{FLAG_OVERFLOW, "of", "FLAG_OVERFLOW"},
	{FLAG_IOPL0, "iopl0", "FLAG_IOPL0"},
	{FLAG_IOPL1, "iopl1", "FLAG_IOPL1"},
	{FLAG_NESTED, "nt", "FLAG_NESTED"},
	{FLAG_RESUME, "rf", "FLAG_RESUME"},
	{FLAG_VIRTUAL8086, "vm", "FLAG_VIRTUAL8086"},
	{FLAG_ALIGNMENT, "ac", "FLAG_ALIGNMENT"},
	{FLAG_VIRTUAL_INTERRUPT, "vif", "FLAG_VIRTUAL_INTERRUPT"},
	{FLAG_VIRTUAL_INTERRUPT_PENDING, "vip", "FLAG_VIRTUAL_INTERRUPT_PENDING"},
	{FLAG_ID, "id", "FLAG_ID"},
	{FLAG_AES, "aes", "FLAG_AES"},
	{FLAG_ALTERNATE_INSTRUCTION_SET, "ai", "FLAG_ALTERNATE_INSTRUCTION_SET"},
}

// FLAG_ALL is every named flag.
var FLAG_ALL = func() (all Flags) {
	for _, entry := range flagNames {
		all |= entry.flag
	}
	return
}()

// Has returns true if all of the flags in mask are set.
func (fl Flags) Has(mask Flags) bool {
	return fl&mask == mask
}

// Any returns true if any of the flags in mask are set.
func (fl Flags) Any(mask Flags) bool {
	return fl&mask != 0
}

// Set the flags in mask.
func (fl *Flags) Set(mask Flags) {
	*fl |= mask
}

// Clear the flags in mask.
func (fl *Flags) Clear(mask Flags) {
	*fl &^= mask
}

// Toggle the flags in mask.
func (fl *Flags) Toggle(mask Flags) {
	*fl ^= mask
}

// Assign sets the flags in mask if value is true, otherwise clears them.
func (fl *Flags) Assign(mask Flags, value bool) {
	if value {
		fl.Set(mask)
	} else {
		fl.Clear(mask)
	}
}

// IOPL returns the I/O privilege level, 0 to 3.
func (fl Flags) IOPL() uint8 {
	return uint8((fl & FLAG_IOPL_MASK) >> FLAG_IOPL_SHIFT)
}

// SetIOPL sets the I/O privilege level. Only the low two bits of level are used.
func (fl *Flags) SetIOPL(level uint8) {
	*fl = (*fl &^ FLAG_IOPL_MASK) | ((Flags(level) << FLAG_IOPL_SHIFT) & FLAG_IOPL_MASK)
}

// String lists the names of the set flags, in bit order, separated by '|'.
// Reserved bits are shown in hex.
func (fl Flags) String() string {
	if fl == 0 {
		return "-"
	}

	names := make([]string, 0, bits.OnesCount64(uint64(fl)))
	for _, entry := range flagNames {
		if fl.Has(entry.flag) {
			names = append(names, entry.name)
		}
	}
	if rest := fl &^ FLAG_ALL; rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint64(rest)))
	}

	return strings.Join(names, "|")
}
