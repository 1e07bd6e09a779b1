// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package x86

import (
	"strconv"
	"strings"
)

// operandArity is the number of destination and source operands of each Op.
var operandArity = map[Op]struct{ dest, src int }{
	OP_MOV: {1, 1}, OP_ADD: {1, 1}, OP_SUB: {1, 1}, OP_IMUL: {1, 1},
	OP_AND: {1, 1}, OP_OR: {1, 1}, OP_XOR: {1, 1}, OP_CMP: {1, 1}, OP_TEST: {1, 1},
	OP_POP: {1, 0}, OP_INC: {1, 0}, OP_DEC: {1, 0}, OP_NOT: {1, 0}, OP_NEG: {1, 0},
	OP_PUSH: {0, 1}, OP_IDIV: {0, 1}, OP_JMP: {0, 1}, OP_JE: {0, 1}, OP_JZ: {0, 1},
	OP_JNZ: {0, 1}, OP_JG: {0, 1}, OP_JGE: {0, 1}, OP_JL: {0, 1}, OP_JLE: {0, 1},
	OP_CALL: {0, 1},
	OP_RET:  {0, 0},
}

// opMap is a map of mnemonics to Op.
var opMap = func() map[string]Op {
	ops := map[string]Op{}
	for op := range operandArity {
		ops[op.String()] = op
	}
	return ops
}()

// sizeMap is a map of memory operand size prefixes to widths.
var sizeMap = map[string]Width{
	"byte":  WIDTH_8,
	"word":  WIDTH_16,
	"dword": WIDTH_32,
	"qword": WIDTH_64,
}

// WIDTH_UNKNOWN is the width of an operand with no implied size.
const WIDTH_UNKNOWN = Width(-1)

// parseNumber parses a signed or unsigned integer in any base prefix.
func parseNumber(text string) (value uint64, err error) {
	if strings.HasPrefix(text, "-") {
		var signed int64
		signed, err = strconv.ParseInt(text, 0, 64)
		value = uint64(signed)
		return
	}

	return strconv.ParseUint(text, 0, 64)
}

// ParseOperand parses an Intel syntax operand: a register, an integer, or
// a memory reference such as 'dword [rbx + rsi*4 + 8]'. The width is that
// of the register or size prefix, or WIDTH_UNKNOWN.
func ParseOperand(text string) (op Operand, width Width, err error) {
	op, width, err = parseOperand(text)
	if err != nil {
		err = &ErrSyntax{Text: text, Err: err}
	}
	return
}

func parseOperand(text string) (op Operand, width Width, err error) {
	text = strings.ToLower(strings.TrimSpace(text))
	width = WIDTH_UNKNOWN

	if gpr, w, ok := LookupRegister(text); ok {
		op = Reg(gpr)
		width = w
		return
	}

	if !strings.HasSuffix(text, "]") {
		var value uint64
		value, err = parseNumber(text)
		if err != nil {
			err = ErrOperandInvalid
			return
		}
		op = Imm(value)
		return
	}

	prefix, ref, ok := strings.Cut(strings.TrimSuffix(text, "]"), "[")
	if !ok {
		err = ErrOperandInvalid
		return
	}

	prefix = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(prefix), "ptr"))
	if len(prefix) != 0 {
		width, ok = sizeMap[prefix]
		if !ok {
			err = ErrOperandInvalid
			return
		}
	}

	var addr Addressing
	addr, err = parseAddressing(ref)
	if err != nil {
		return
	}

	op = Mem(addr)
	return
}

// parseAddressing parses the terms of a memory reference.
func parseAddressing(ref string) (addr Addressing, err error) {
	var hasBase, hasIndex, hasDisp bool
	addr.Scale = 1

	// Normalize subtraction into the addition of a negative term.
	ref = strings.ReplaceAll(strings.ReplaceAll(ref, " ", ""), "-", "+-")

	for _, term := range strings.Split(ref, "+") {
		if len(term) == 0 {
			continue
		}

		left, right, scaled := strings.Cut(term, "*")
		if scaled {
			if _, _, ok := LookupRegister(left); !ok {
				left, right = right, left
			}
			var scale uint64
			scale, err = strconv.ParseUint(right, 0, 8)
			if err != nil || (scale != 1 && scale != 2 && scale != 4 && scale != 8) {
				err = ErrScaleInvalid
				return
			}
			if hasIndex {
				err = ErrOperandInvalid
				return
			}
			addr.Index, err = addressRegister(left)
			if err != nil {
				return
			}
			addr.Scale = uint8(scale)
			hasIndex = true
			continue
		}

		if _, _, ok := LookupRegister(term); ok {
			var gpr Gpr
			gpr, err = addressRegister(term)
			if err != nil {
				return
			}
			switch {
			case !hasBase:
				addr.Base = gpr
				hasBase = true
			case !hasIndex:
				addr.Index = gpr
				hasIndex = true
			default:
				err = ErrOperandInvalid
				return
			}
			continue
		}

		var value uint64
		value, err = parseNumber(term)
		if err != nil {
			err = ErrOperandInvalid
			return
		}
		addr.Displacement += value
		hasDisp = true
	}

	scaled := addr.Scale != 1

	switch {
	case hasBase && hasIndex && scaled && hasDisp:
		addr.Mode = ADDRESSING_BASE_INDEX_SCALE_DISP
	case hasBase && hasIndex && scaled:
		addr.Mode = ADDRESSING_BASE_INDEX_SCALE
	case hasBase && hasIndex && hasDisp:
		addr.Mode = ADDRESSING_BASE_INDEX_DISP
	case hasBase && hasIndex:
		addr.Mode = ADDRESSING_BASE_INDEX
	case hasBase && hasDisp:
		addr.Mode = ADDRESSING_BASE_DISP
	case hasBase:
		addr.Mode = ADDRESSING_BASE
	case hasIndex && !scaled:
		// A lone index register is a base.
		addr.Base, addr.Index = addr.Index, 0
		addr.Mode = ADDRESSING_BASE_DISP
		if !hasDisp {
			addr.Mode = ADDRESSING_BASE
		}
	case hasIndex:
		addr.Mode = ADDRESSING_INDEX_SCALE_DISP
	case hasDisp:
		addr.Mode = ADDRESSING_DISP
	default:
		err = ErrOperandInvalid
	}

	return
}

// addressRegister parses a 64-bit register name.
func addressRegister(name string) (gpr Gpr, err error) {
	gpr, width, ok := LookupRegister(name)
	if !ok || width != WIDTH_64 {
		err = ErrRegisterInvalid
	}
	return
}

// ParseInstr parses an Intel syntax instruction such as 'add eax, 4',
// returning the operand width. Operands of unknown width are 64-bit.
func ParseInstr(line string) (instr Instr, width Width, err error) {
	defer func() {
		if err != nil {
			err = &ErrSyntax{Text: line, Err: err}
		}
	}()

	mnemonic, rest, _ := strings.Cut(strings.TrimSpace(line), " ")

	op, ok := opMap[strings.ToLower(mnemonic)]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}
	instr.Op = op

	var operands []string
	if rest = strings.TrimSpace(rest); len(rest) != 0 {
		operands = strings.Split(rest, ",")
	}

	arity := operandArity[op]
	if len(operands) != arity.dest+arity.src {
		err = ErrOperandCount
		return
	}

	width = WIDTH_UNKNOWN
	slots := []*Operand{}
	if arity.dest != 0 {
		slots = append(slots, &instr.Dest)
	}
	if arity.src != 0 {
		slots = append(slots, &instr.Src)
	}

	for n, text := range operands {
		var w Width
		*slots[n], w, err = parseOperand(text)
		if err != nil {
			return
		}
		if w == WIDTH_UNKNOWN {
			continue
		}
		if width != WIDTH_UNKNOWN && width != w {
			err = ErrOperandWidth
			return
		}
		width = w
	}

	if arity.dest != 0 && instr.Dest.Kind == OPERAND_IMM {
		err = ErrOperandInvalid
		return
	}

	if width == WIDTH_UNKNOWN {
		width = WIDTH_64
	}

	return
}
