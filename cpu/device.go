// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// Addressable is implemented by all byte addressable memory.
//
// Accesses are validated in order: alignment (ErrUnaligned), address
// window (ErrOutOfBounds), and backing storage (ErrAddressNotMapped).
type Addressable interface {
	// Read8 reads a byte.
	Read8(address uint64) (value uint8, err error)
	// ReadBytes reads size bytes. The returned slice is a copy.
	ReadBytes(address uint64, size uint64) (data []byte, err error)
	// Write8 writes a byte.
	Write8(address uint64, value uint8) (err error)
	// WriteBytes writes all of data starting at address.
	WriteBytes(address uint64, data []byte) (err error)
}

// Device is an Addressable mapped at a window of the address space.
type Device interface {
	Addressable
	// Name returns the name of the device.
	Name() string
	// StartAddress returns the first address of the device window.
	StartAddress() uint64
	// EndAddress returns the address after the last address of the window.
	EndAddress() uint64
}
