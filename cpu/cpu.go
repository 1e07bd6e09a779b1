// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// Endianness is the byte order of multi-byte values in memory.
type Endianness int

//go:generate go tool stringer -linecomment -type=Endianness
const (
	ENDIAN_LITTLE = Endianness(0) // little-endian
	ENDIAN_BIG    = Endianness(1) // big-endian
)

// Features are the optional capabilities of a Cpu.
type Features struct {
	Simd   bool // Vector registers are present.
	Paging bool // Virtual memory is enabled.
}

// Cpu is the contract of an instruction set model.
type Cpu interface {
	// GeneralRegisterSize returns the size of a general register in bytes.
	GeneralRegisterSize() int
	// Endianness returns the byte order of the Cpu.
	Endianness() Endianness
	// AddDevice maps a device into the physical address space.
	AddDevice(dev Device) error
	// Features returns the currently available features.
	Features() Features
}
