// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"

	"github.com/ezrec/x64emu/translate"
)

var f = translate.From

var (
	// Memory access errors
	ErrAddressNotMapped = errors.New(f("address not mapped"))
)

// ErrOutOfBounds is returned when an access falls outside of the
// address window of the device.
type ErrOutOfBounds struct {
	Address uint64
	Size    uint64
}

func (err ErrOutOfBounds) Error() string {
	return f("address 0x%x size 0x%x out of bounds", err.Address, err.Size)
}

func (err ErrOutOfBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrOutOfBounds)
	return
}

// ErrUnaligned is returned when an address violates the alignment
// of the device.
type ErrUnaligned struct {
	Address uint64
}

func (err ErrUnaligned) Error() string {
	return f("address 0x%x unaligned", err.Address)
}

func (err ErrUnaligned) Is(target error) (ok bool) {
	_, ok = target.(ErrUnaligned)
	return
}

// ErrAddressAlreadyMapped is returned when an allocation or device
// collides with existing memory starting at Address.
type ErrAddressAlreadyMapped struct {
	Address uint64
}

func (err ErrAddressAlreadyMapped) Error() string {
	return f("address 0x%x already mapped", err.Address)
}

func (err ErrAddressAlreadyMapped) Is(target error) (ok bool) {
	_, ok = target.(ErrAddressAlreadyMapped)
	return
}
