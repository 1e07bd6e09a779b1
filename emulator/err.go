package emulator

import (
	"errors"

	"github.com/ezrec/x64emu/translate"
)

var f = translate.From

var (
	// Emulator errors
	ErrRomAttached = errors.New(f("rom already attached"))
)

// ErrLoad indicates the address of a failed load.
type ErrLoad struct {
	Address uint64
	Err     error
}

func (err *ErrLoad) Error() string {
	return f("load 0x%x: %v", err.Address, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}
