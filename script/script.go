// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package script

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/x64emu/emulator"
	"github.com/ezrec/x64emu/x86"
)

// Script runs Starlark programs against an emulator.
//
// The emulator defines are predeclared as integers, along with builtins to
// allocate and access memory, and to inspect and modify the registers.
type Script struct {
	Verbose  bool               // If set, logs each builtin call.
	Output   io.Writer          // Destination of print(), os.Stdout if nil.
	Emulator *emulator.Emulator // Emulator to operate on.
}

type builtinFunc func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// builtin wraps fn as a Starlark builtin.
func (sc *Script) builtin(name string, fn builtinFunc) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		value, err = fn(args, kwargs)
		if sc.Verbose {
			log.Printf("script: %v%v => %v, %v", b.Name(), args, value, err)
		}
		return
	})
}

// predeclared returns the defines and builtins.
func (sc *Script) predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	for key, str := range sc.Emulator.Defines() {
		value, err := strconv.ParseUint(str, 0, 64)
		if err != nil {
			// Ignore non-integer defines.
			continue
		}
		pred[key] = starlark.MakeUint64(value)
	}

	for name, fn := range map[string]builtinFunc{
		"alloc":     sc.alloc,
		"read8":     sc.read8,
		"read":      sc.read,
		"write8":    sc.write8,
		"write":     sc.write,
		"reg":       sc.reg,
		"set_reg":   sc.setReg,
		"lanes":     sc.lanes,
		"set_lanes": sc.setLanes,
		"paging":    sc.paging,
		"fetch":     sc.fetch,
		"store":     sc.store,
	} {
		pred[name] = sc.builtin(name, fn)
	}

	return
}

// Exec runs the Starlark program src, returning its globals.
func (sc *Script) Exec(name string, src any) (globals starlark.StringDict, err error) {
	output := sc.Output
	if output == nil {
		output = os.Stdout
	}

	thread := starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(output, msg)
		},
	}
	opts := syntax.FileOptions{}

	return starlark.ExecFileOptions(&opts, &thread, name, src, sc.predeclared())
}

// alloc(address, size) backs memory, returning the start of its segment.
func (sc *Script) alloc(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var address, size uint64
	err = starlark.UnpackArgs("alloc", args, kwargs, "address", &address, "size", &size)
	if err != nil {
		return
	}

	start, err := sc.Emulator.Dram.Alloc(address, size)
	if err != nil {
		return
	}

	value = starlark.MakeUint64(start)
	return
}

// read8(address) reads a byte from the bus.
func (sc *Script) read8(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var address uint64
	err = starlark.UnpackArgs("read8", args, kwargs, "address", &address)
	if err != nil {
		return
	}

	b, err := sc.Emulator.Cpu.Bus.Read8(address)
	if err != nil {
		return
	}

	value = starlark.MakeInt(int(b))
	return
}

// read(address, size) reads bytes from the bus.
func (sc *Script) read(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var address, size uint64
	err = starlark.UnpackArgs("read", args, kwargs, "address", &address, "size", &size)
	if err != nil {
		return
	}

	data, err := sc.Emulator.Cpu.Bus.ReadBytes(address, size)
	if err != nil {
		return
	}

	value = starlark.Bytes(data)
	return
}

// write8(address, value) writes a byte to the bus.
func (sc *Script) write8(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var address uint64
	var b uint8
	err = starlark.UnpackArgs("write8", args, kwargs, "address", &address, "value", &b)
	if err != nil {
		return
	}

	value = starlark.None
	err = sc.Emulator.Cpu.Bus.Write8(address, b)
	return
}

// write(address, data) writes bytes to the bus.
func (sc *Script) write(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var address uint64
	var data starlark.Bytes
	err = starlark.UnpackArgs("write", args, kwargs, "address", &address, "data", &data)
	if err != nil {
		return
	}

	value = starlark.None
	err = sc.Emulator.Cpu.Bus.WriteBytes(address, []byte(data))
	return
}

// reg(name) reads a general purpose register at the width of its name,
// or rip or rflags.
func (sc *Script) reg(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name string
	err = starlark.UnpackArgs("reg", args, kwargs, "name", &name)
	if err != nil {
		return
	}

	regs := &sc.Emulator.Cpu.Registers

	switch name {
	case "rip":
		value = starlark.MakeUint64(regs.Rip)
	case "rflags":
		value = starlark.MakeUint64(uint64(regs.Rflags))
	default:
		gpr, width, ok := x86.LookupRegister(name)
		if !ok {
			err = ErrRegisterUnknown(name)
			return
		}
		value = starlark.MakeUint64(regs.Read(gpr, width))
	}

	return
}

// set_reg(name, value) writes a register. Negative values are stored in
// two's complement.
func (sc *Script) setReg(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name string
	var arg starlark.Value
	err = starlark.UnpackArgs("set_reg", args, kwargs, "name", &name, "value", &arg)
	if err != nil {
		return
	}

	u, err := asUint64(arg)
	if err != nil {
		return
	}

	regs := &sc.Emulator.Cpu.Registers

	switch name {
	case "rip":
		regs.Rip = u
	case "rflags":
		regs.Rflags = x86.Flags(u)
	default:
		gpr, width, ok := x86.LookupRegister(name)
		if !ok {
			err = ErrRegisterUnknown(name)
			return
		}
		regs.Write(gpr, width, u)
	}

	value = starlark.None
	return
}

// lookupLanes finds the named register and lane kind.
func lookupLanes(view string, kind string) (simdKind x86.SimdKind, index int, lanes laneKind, err error) {
	simdKind, index, ok := x86.LookupSimd(view)
	if !ok {
		err = ErrRegisterUnknown(view)
		return
	}

	lanes, ok = laneKinds[kind]
	if !ok {
		err = ErrLaneKindUnknown(kind)
		return
	}

	return
}

// lanes(view, kind, n) returns the first n lanes of a vector register, as
// a list of int or float.
func (sc *Script) lanes(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var view, kind string
	var n int
	err = starlark.UnpackArgs("lanes", args, kwargs, "view", &view, "kind", &kind, "n", &n)
	if err != nil {
		return
	}

	simdKind, index, lanes, err := lookupLanes(view, kind)
	if err != nil {
		return
	}

	simd := sc.Emulator.Cpu.Registers.View(simdKind, index)
	err = lanes.checkCount(simd.Width(), n)
	if err != nil {
		return
	}

	value = starlark.NewList(lanes.read(simd, n))
	return
}

// set_lanes(view, kind, values) writes the leading lanes of a vector
// register.
func (sc *Script) setLanes(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var view, kind string
	var iterable starlark.Iterable
	err = starlark.UnpackArgs("set_lanes", args, kwargs, "view", &view, "kind", &kind, "values", &iterable)
	if err != nil {
		return
	}

	simdKind, index, lanes, err := lookupLanes(view, kind)
	if err != nil {
		return
	}

	var values []starlark.Value
	iter := iterable.Iterate()
	defer iter.Done()
	var item starlark.Value
	for iter.Next(&item) {
		values = append(values, item)
	}

	simd := sc.Emulator.Cpu.Registers.ViewMut(simdKind, index)
	err = lanes.checkCount(simd.Width(), len(values))
	if err != nil {
		return
	}

	value = starlark.None
	err = lanes.write(simd, values)
	return
}

var pagingModes = []x86.PagingMode{
	x86.PAGING_MODE_REAL,
	x86.PAGING_MODE_PROTECTED,
	x86.PAGING_MODE_LONG,
	x86.PAGING_MODE_LONG_LA57,
}

// paging(mode=None) returns the paging mode name, after setting it to mode
// if given by name or number.
func (sc *Script) paging(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var mode starlark.Value = starlark.None
	err = starlark.UnpackArgs("paging", args, kwargs, "mode?", &mode)
	if err != nil {
		return
	}

	mmu := &sc.Emulator.Cpu.Mmu

	switch mode := mode.(type) {
	case starlark.NoneType:
	case starlark.String:
		found := false
		for _, pm := range pagingModes {
			if pm.String() == string(mode) {
				mmu.SetPagingMode(pm)
				found = true
				break
			}
		}
		if !found {
			err = ErrPagingModeUnknown(string(mode))
			return
		}
	case starlark.Int:
		n, ok := mode.Int64()
		if !ok || n < 0 || n >= int64(len(pagingModes)) {
			err = ErrPagingModeUnknown(mode.String())
			return
		}
		mmu.SetPagingMode(pagingModes[n])
	default:
		err = ErrPagingModeUnknown(mode.String())
		return
	}

	value = starlark.String(mmu.PagingMode().String())
	return
}

// parseOperand parses an operand, defaulting to 64 bits wide.
func parseOperand(text string) (op x86.Operand, width x86.Width, err error) {
	op, width, err = x86.ParseOperand(text)
	if width == x86.WIDTH_UNKNOWN {
		width = x86.WIDTH_64
	}
	return
}

// fetch(operand) reads an operand such as 'word [rbx + 8]'.
func (sc *Script) fetch(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var text string
	err = starlark.UnpackArgs("fetch", args, kwargs, "operand", &text)
	if err != nil {
		return
	}

	op, width, err := parseOperand(text)
	if err != nil {
		return
	}

	u, err := sc.Emulator.Cpu.Fetch(op, width)
	if err != nil {
		return
	}

	value = starlark.MakeUint64(u)
	return
}

// store(operand, value) writes an operand.
func (sc *Script) store(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var text string
	var arg starlark.Value
	err = starlark.UnpackArgs("store", args, kwargs, "operand", &text, "value", &arg)
	if err != nil {
		return
	}

	op, width, err := parseOperand(text)
	if err != nil {
		return
	}

	u, err := asUint64(arg)
	if err != nil {
		return
	}

	value = starlark.None
	err = sc.Emulator.Cpu.Store(op, width, u)
	return
}
