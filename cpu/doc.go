// Package cpu implements the instruction-set independent memory model of the
// emulator.
//
// Memory-like components implement Addressable, and Device when they occupy a
// window of the physical address space. DRAM is a sparse Device whose backing
// storage is allocated on demand in 4 KiB granular segments, and Bus routes
// accesses among the attached devices.
//
// The package also defines the Cpu contract that an instruction-set model
// fulfils, and the generic Simd vector type used for vector register lanes.
package cpu
