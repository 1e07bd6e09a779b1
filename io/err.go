package io

import (
	"errors"

	"github.com/ezrec/x64emu/translate"
)

var f = translate.From

var (
	// Device errors
	ErrReadOnly = errors.New(f("device read only"))
)

// ErrImage indicates the image file that failed to save or restore.
type ErrImage struct {
	Name string
	Err  error
}

func (err *ErrImage) Error() string {
	return f("image %v: %v", err.Name, err.Err)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}
