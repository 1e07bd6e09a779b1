// Package x86 models the x86-64 register file and its memory-facing shell.
//
// Registers holds the sixteen general purpose registers, whose 64, 32, 16 and
// 8-bit names alias one word each, along with rip, rflags, and sixteen 512-bit
// vector registers. The vector registers are accessed through XMM, YMM and
// ZMM views that share the same bytes and decode them as typed lanes.
//
// Cpu attaches devices to a bus, reports features, and fetches or stores
// instruction operands. It does not decode or execute instructions.
package x86
