package x86

import (
	"errors"

	"github.com/ezrec/x64emu/translate"
)

var f = translate.From

var (
	// Operand errors
	ErrOperandInvalid = errors.New(f("operand invalid"))
	ErrWidthInvalid   = errors.New(f("width invalid"))
)

var (
	// Assembler errors
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandCount    = errors.New(f("operand count"))
	ErrOperandWidth    = errors.New(f("operand width mismatch"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrScaleInvalid    = errors.New(f("scale invalid"))
)

// ErrSyntax indicates the text that failed to parse.
type ErrSyntax struct {
	Text string
	Err  error
}

func (err *ErrSyntax) Error() string {
	return f("'%v' %v", err.Text, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
