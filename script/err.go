package script

import (
	"errors"

	"github.com/ezrec/x64emu/translate"
)

var f = translate.From

var (
	// Argument errors
	ErrLaneCount  = errors.New(f("lane count invalid"))
	ErrValueRange = errors.New(f("value out of range"))
)

// ErrRegisterUnknown is the name of an unknown register.
type ErrRegisterUnknown string

func (err ErrRegisterUnknown) Error() string {
	return f("register %v unknown", string(err))
}

// ErrLaneKindUnknown is the name of an unknown lane kind.
type ErrLaneKindUnknown string

func (err ErrLaneKindUnknown) Error() string {
	return f("lane kind %v unknown", string(err))
}

// ErrPagingModeUnknown is the name of an unknown paging mode.
type ErrPagingModeUnknown string

func (err ErrPagingModeUnknown) Error() string {
	return f("paging mode %v unknown", string(err))
}
