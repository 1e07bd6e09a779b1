// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package x86

import (
	"fmt"
)

// Gpr is a general purpose register, in instruction encoding order.
type Gpr int

const (
	RAX = Gpr(0)
	RCX = Gpr(1)
	RDX = Gpr(2)
	RBX = Gpr(3)
	RSP = Gpr(4)
	RBP = Gpr(5)
	RSI = Gpr(6)
	RDI = Gpr(7)
	R8  = Gpr(8)
	R9  = Gpr(9)
	R10 = Gpr(10)
	R11 = Gpr(11)
	R12 = Gpr(12)
	R13 = Gpr(13)
	R14 = Gpr(14)
	R15 = Gpr(15)

	GPR_COUNT = 16 // Number of general purpose registers.
)

// Width is the access width of a general purpose register.
type Width int

const (
	WIDTH_8  = Width(0) // al, cl, ...
	WIDTH_16 = Width(1) // ax, cx, ...
	WIDTH_32 = Width(2) // eax, ecx, ...
	WIDTH_64 = Width(3) // rax, rcx, ...
)

// Valid returns true for WIDTH_8 through WIDTH_64.
func (w Width) Valid() bool {
	return w >= WIDTH_8 && w <= WIDTH_64
}

// Bits returns the width in bits.
func (w Width) Bits() int {
	return 8 << w
}

// Mask returns the mask of the bits accessible at the width.
func (w Width) Mask() uint64 {
	return ^uint64(0) >> (64 - w.Bits())
}

var gprNames = [4][GPR_COUNT]string{
	WIDTH_8: {"al", "cl", "dl", "bl", "spl", "bpl", "sil", "dil",
		"r8b", "r9b", "r10b", "r11b", "r12b", "r13b", "r14b", "r15b"},
	WIDTH_16: {"ax", "cx", "dx", "bx", "sp", "bp", "si", "di",
		"r8w", "r9w", "r10w", "r11w", "r12w", "r13w", "r14w", "r15w"},
	WIDTH_32: {"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi",
		"r8d", "r9d", "r10d", "r11d", "r12d", "r13d", "r14d", "r15d"},
	WIDTH_64: {"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi",
		"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15"},
}

type gprAlias struct {
	gpr   Gpr
	width Width
}

var gprLookup = func() map[string]gprAlias {
	lookup := map[string]gprAlias{}
	for width, names := range gprNames {
		for gpr, name := range names {
			lookup[name] = gprAlias{gpr: Gpr(gpr), width: Width(width)}
		}
	}
	return lookup
}()

// Name of the register when accessed at a width.
func (gpr Gpr) Name(width Width) string {
	return gprNames[width][gpr]
}

// String returns the 64-bit name of the register.
func (gpr Gpr) String() string {
	if gpr < 0 || gpr >= GPR_COUNT {
		return fmt.Sprintf("Gpr(%d)", int(gpr))
	}
	return gpr.Name(WIDTH_64)
}

// LookupRegister finds a general purpose register by any of its names.
func LookupRegister(name string) (gpr Gpr, width Width, ok bool) {
	alias, ok := gprLookup[name]
	if ok {
		gpr = alias.gpr
		width = alias.width
	}
	return
}

// Registers is the x86-64 register file.
//
// Every width of a general purpose register aliases the same 64-bit word.
// Writes at any width zero-extend the value into the whole word.
// Register and lane indices are not validated.
type Registers struct {
	Rip    uint64 // Instruction pointer.
	Rflags Flags  // Status and control flags.

	gpr  [GPR_COUNT]uint64
	simd [SIMD_COUNT]Avx512Register
}

// NewRegisters creates a zeroed register file.
func NewRegisters() (regs *Registers) {
	regs = &Registers{}
	return
}

// Reset zeroes all registers.
func (regs *Registers) Reset() {
	*regs = Registers{}
}

// Read returns the register at a width, zero extended.
func (regs *Registers) Read(gpr Gpr, width Width) uint64 {
	return regs.gpr[gpr] & width.Mask()
}

// Write stores the low width bits of value into the register, zeroing the
// remainder of the word.
func (regs *Registers) Write(gpr Gpr, width Width, value uint64) {
	regs.gpr[gpr] = value & width.Mask()
}

// Read64 reads rax, rcx, ...
func (regs *Registers) Read64(gpr Gpr) uint64 {
	return regs.gpr[gpr]
}

// Read32 reads eax, ecx, ...
func (regs *Registers) Read32(gpr Gpr) uint32 {
	return uint32(regs.gpr[gpr])
}

// Read16 reads ax, cx, ...
func (regs *Registers) Read16(gpr Gpr) uint16 {
	return uint16(regs.gpr[gpr])
}

// Read8 reads al, cl, ...
func (regs *Registers) Read8(gpr Gpr) uint8 {
	return uint8(regs.gpr[gpr])
}

// Write64 writes rax, rcx, ...
func (regs *Registers) Write64(gpr Gpr, value uint64) {
	regs.gpr[gpr] = value
}

// Write32 writes eax, ecx, ...
func (regs *Registers) Write32(gpr Gpr, value uint32) {
	regs.gpr[gpr] = uint64(value)
}

// Write16 writes ax, cx, ...
func (regs *Registers) Write16(gpr Gpr, value uint16) {
	regs.gpr[gpr] = uint64(value)
}

// Write8 writes al, cl, ...
func (regs *Registers) Write8(gpr Gpr, value uint8) {
	regs.gpr[gpr] = uint64(value)
}

// Xmm returns a view of the low 16 bytes of a vector register.
func (regs *Registers) Xmm(index int) XmmView {
	return regs.simd[index].Xmm()
}

// Ymm returns a view of the low 32 bytes of a vector register.
func (regs *Registers) Ymm(index int) YmmView {
	return regs.simd[index].Ymm()
}

// Zmm returns a view of a whole vector register.
func (regs *Registers) Zmm(index int) ZmmView {
	return regs.simd[index].Zmm()
}

// XmmMut returns a writable view of the low 16 bytes of a vector register.
func (regs *Registers) XmmMut(index int) XmmViewMut {
	return regs.simd[index].XmmMut()
}

// YmmMut returns a writable view of the low 32 bytes of a vector register.
func (regs *Registers) YmmMut(index int) YmmViewMut {
	return regs.simd[index].YmmMut()
}

// ZmmMut returns a writable view of a whole vector register.
func (regs *Registers) ZmmMut(index int) ZmmViewMut {
	return regs.simd[index].ZmmMut()
}

// String returns the register state as a string.
func (regs *Registers) String() (text string) {
	for gpr := range Gpr(GPR_COUNT) {
		val := regs.gpr[gpr]
		text += fmt.Sprintf("% 6s: %08X_%08X\n", gpr, val>>32, val&0xffffffff)
	}
	text += fmt.Sprintf("% 6s: %08X_%08X\n", "rip", regs.Rip>>32, regs.Rip&0xffffffff)
	text += fmt.Sprintf("% 6s: %v\n", "rflags", regs.Rflags)

	return
}
