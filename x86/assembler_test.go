package x86

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOperand(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text  string
		op    Operand
		width Width
	}{
		{"rax", Reg(RAX), WIDTH_64},
		{" R10D ", Reg(R10), WIDTH_32},
		{"sil", Reg(RSI), WIDTH_8},
		{"0x10", Imm(0x10), WIDTH_UNKNOWN},
		{"-1", Imm(^uint64(0)), WIDTH_UNKNOWN},
		{"[0x1000]", Mem(Addressing{Mode: ADDRESSING_DISP, Scale: 1, Displacement: 0x1000}), WIDTH_UNKNOWN},
		{"byte [rbx]", Mem(Addressing{Mode: ADDRESSING_BASE, Base: RBX, Scale: 1}), WIDTH_8},
		{"word ptr [rbx+rsi]", Mem(Addressing{Mode: ADDRESSING_BASE_INDEX, Base: RBX, Index: RSI, Scale: 1}), WIDTH_16},
		{"[rbp - 8]", Mem(Addressing{Mode: ADDRESSING_BASE_DISP, Base: RBP, Scale: 1, Displacement: ^uint64(7)}), WIDTH_UNKNOWN},
		{"[rbx + rcx + 4]", Mem(Addressing{Mode: ADDRESSING_BASE_INDEX_DISP, Base: RBX, Index: RCX, Scale: 1, Displacement: 4}), WIDTH_UNKNOWN},
		{"dword [rbx + rsi*4]", Mem(Addressing{Mode: ADDRESSING_BASE_INDEX_SCALE, Base: RBX, Index: RSI, Scale: 4}), WIDTH_32},
		{"[8*r9 + 0x20]", Mem(Addressing{Mode: ADDRESSING_INDEX_SCALE_DISP, Index: R9, Scale: 8, Displacement: 0x20}), WIDTH_UNKNOWN},
		{"qword [rax + rdi*2 + 6]", Mem(Addressing{Mode: ADDRESSING_BASE_INDEX_SCALE_DISP, Base: RAX, Index: RDI, Scale: 2, Displacement: 6}), WIDTH_64},
		{"[rsi*1]", Mem(Addressing{Mode: ADDRESSING_BASE, Base: RSI, Scale: 1}), WIDTH_UNKNOWN},
	}

	for _, entry := range table {
		op, width, err := ParseOperand(entry.text)
		assert.NoError(err, entry.text)
		assert.Equal(entry.op, op, entry.text)
		assert.Equal(entry.width, width, entry.text)
	}
}

func TestParseOperand_Errors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text string
		err  error
	}{
		{"bogus", ErrOperandInvalid},
		{"[eax]", ErrRegisterInvalid},
		{"[rax*3]", ErrScaleInvalid},
		{"[rax + rbx + rcx]", ErrOperandInvalid},
		{"[rax*2 + rbx*2]", ErrOperandInvalid},
		{"tword [rax]", ErrOperandInvalid},
		{"[]", ErrOperandInvalid},
		{"rax]", ErrOperandInvalid},
	}

	for _, entry := range table {
		_, _, err := ParseOperand(entry.text)
		assert.ErrorIs(err, entry.err, entry.text)

		var syntax *ErrSyntax
		assert.ErrorAs(err, &syntax)
	}
}

func TestParseInstr(t *testing.T) {
	assert := assert.New(t)

	instr, width, err := ParseInstr("add eax, 4")
	assert.NoError(err)
	assert.Equal(Instr{Op: OP_ADD, Dest: Reg(RAX), Src: Imm(4)}, instr)
	assert.Equal(WIDTH_32, width)

	instr, width, err = ParseInstr("MOV qword [rsp + 8], rbx")
	assert.NoError(err)
	assert.Equal(OP_MOV, instr.Op)
	assert.Equal(OPERAND_MEM, instr.Dest.Kind)
	assert.Equal(Reg(RBX), instr.Src)
	assert.Equal(WIDTH_64, width)

	instr, width, err = ParseInstr("push 0x10")
	assert.NoError(err)
	assert.Equal(Instr{Op: OP_PUSH, Src: Imm(0x10)}, instr)
	assert.Equal(WIDTH_64, width)

	instr, _, err = ParseInstr("inc byte [rdi]")
	assert.NoError(err)
	assert.Equal(OPERAND_MEM, instr.Dest.Kind)
	assert.Equal(Operand{}, instr.Src)

	instr, _, err = ParseInstr("ret")
	assert.NoError(err)
	assert.Equal(Instr{Op: OP_RET}, instr)

	_, _, err = ParseInstr("hlt")
	assert.ErrorIs(err, ErrOpcodeInvalid)

	_, _, err = ParseInstr("mov rax")
	assert.ErrorIs(err, ErrOperandCount)

	_, _, err = ParseInstr("ret 4")
	assert.ErrorIs(err, ErrOperandCount)

	_, _, err = ParseInstr("mov eax, bx")
	assert.ErrorIs(err, ErrOperandWidth)

	_, _, err = ParseInstr("mov 4, eax")
	assert.ErrorIs(err, ErrOperandInvalid)

	_, _, err = ParseInstr("add rax, [rbx*5]")
	assert.ErrorIs(err, ErrScaleInvalid)

	// The failing line is reported once.
	_, _, err = ParseInstr("mov rax, bogus")
	assert.ErrorIs(err, ErrOperandInvalid)
	assert.Equal("'mov rax, bogus' operand invalid", err.Error())
	var syntax *ErrSyntax
	assert.ErrorAs(err, &syntax)
	assert.NotErrorAs(syntax.Err, &syntax)
}

func TestParseInstr_Execute(t *testing.T) {
	assert := assert.New(t)

	cp, _ := newTestCpu(t)
	cp.Registers.Write64(RBX, 0x10000)

	instr, width, err := ParseInstr("mov dword [rbx + 0x40], 0xcafe")
	assert.NoError(err)

	value, err := cp.Fetch(instr.Src, width)
	assert.NoError(err)
	assert.NoError(cp.Store(instr.Dest, width, value))

	value, err = cp.Fetch(Mem(Addressing{Mode: ADDRESSING_DISP, Displacement: 0x10040}), WIDTH_32)
	assert.NoError(err)
	assert.Equal(uint64(0xcafe), value)
}
