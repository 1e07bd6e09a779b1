package x86

import (
	"fmt"
)

//go:generate go tool stringer -linecomment -type=Op
//go:generate go tool stringer -linecomment -type=AddressingMode
//go:generate go tool stringer -linecomment -type=OperandKind

// Op is an instruction mnemonic.
type Op int

const (
	OP_MOV  = Op(iota) // mov
	OP_PUSH            // push
	OP_POP             // pop
	OP_ADD             // add
	OP_SUB             // sub
	OP_INC             // inc
	OP_DEC             // dec
	OP_IMUL            // imul
	OP_IDIV            // idiv
	OP_AND             // and
	OP_OR              // or
	OP_XOR             // xor
	OP_NOT             // not
	OP_NEG             // neg
	OP_CMP             // cmp
	OP_TEST            // test
	OP_JMP             // jmp
	OP_JE              // je
	OP_JZ              // jz
	OP_JNZ             // jnz
	OP_JG              // jg
	OP_JGE             // jge
	OP_JL              // jl
	OP_JLE             // jle
	OP_CALL            // call
	OP_RET             // ret
)

// AddressingMode selects which parts of an Addressing are summed.
type AddressingMode int

const (
	ADDRESSING_DISP                  = AddressingMode(iota) // disp
	ADDRESSING_BASE                                         // base
	ADDRESSING_BASE_INDEX                                   // base+index
	ADDRESSING_BASE_DISP                                    // base+disp
	ADDRESSING_BASE_INDEX_DISP                              // base+index+disp
	ADDRESSING_BASE_INDEX_SCALE                             // base+index*scale
	ADDRESSING_INDEX_SCALE_DISP                             // index*scale+disp
	ADDRESSING_BASE_INDEX_SCALE_DISP                        // base+index*scale+disp
)

// Addressing is a memory operand.
type Addressing struct {
	Mode         AddressingMode
	Base         Gpr
	Index        Gpr
	Scale        uint8
	Displacement uint64
}

// EffectiveAddress sums the parts of the address selected by the mode,
// wrapping at 64 bits.
func (addr Addressing) EffectiveAddress(regs *Registers) (address uint64) {
	var base, index, disp bool
	scale := uint64(1)

	switch addr.Mode {
	case ADDRESSING_DISP:
		disp = true
	case ADDRESSING_BASE:
		base = true
	case ADDRESSING_BASE_INDEX:
		base, index = true, true
	case ADDRESSING_BASE_DISP:
		base, disp = true, true
	case ADDRESSING_BASE_INDEX_DISP:
		base, index, disp = true, true, true
	case ADDRESSING_BASE_INDEX_SCALE:
		base, index = true, true
		scale = uint64(addr.Scale)
	case ADDRESSING_INDEX_SCALE_DISP:
		index, disp = true, true
		scale = uint64(addr.Scale)
	case ADDRESSING_BASE_INDEX_SCALE_DISP:
		base, index, disp = true, true, true
		scale = uint64(addr.Scale)
	}

	if base {
		address += regs.Read64(addr.Base)
	}
	if index {
		address += regs.Read64(addr.Index) * scale
	}
	if disp {
		address += addr.Displacement
	}

	return
}

func (addr Addressing) String() string {
	return fmt.Sprintf("[%v %v %v*%d 0x%x]", addr.Mode, addr.Base, addr.Index, addr.Scale, addr.Displacement)
}

// OperandKind is the location of an operand.
type OperandKind int

const (
	OPERAND_REG = OperandKind(iota) // reg
	OPERAND_MEM                     // mem
	OPERAND_IMM                     // imm
)

// Operand is a register, memory or immediate operand.
type Operand struct {
	Kind OperandKind
	Reg  Gpr
	Mem  Addressing
	Imm  uint64
}

// Reg returns a register operand.
func Reg(gpr Gpr) Operand {
	return Operand{Kind: OPERAND_REG, Reg: gpr}
}

// Mem returns a memory operand.
func Mem(addr Addressing) Operand {
	return Operand{Kind: OPERAND_MEM, Mem: addr}
}

// Imm returns an immediate operand.
func Imm(value uint64) Operand {
	return Operand{Kind: OPERAND_IMM, Imm: value}
}

func (op Operand) String() string {
	switch op.Kind {
	case OPERAND_REG:
		return op.Reg.String()
	case OPERAND_MEM:
		return op.Mem.String()
	case OPERAND_IMM:
		return fmt.Sprintf("0x%x", op.Imm)
	}
	return op.Kind.String()
}

// Instr is a decoded instruction. Unused operands are zero.
type Instr struct {
	Op   Op
	Dest Operand
	Src  Operand
}
