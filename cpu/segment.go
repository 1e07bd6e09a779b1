// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// segment is a contiguous range of backing storage owned by a DRAM.
type segment struct {
	start uint64
	data  []byte
}

func (seg *segment) end() uint64 {
	return seg.start + uint64(len(seg.data))
}

func (seg *segment) contains(address uint64) bool {
	return address >= seg.start && address < seg.end()
}

// containsRange returns true if [address, address+size) lies in the segment.
func (seg *segment) containsRange(address uint64, size uint64) bool {
	if !seg.contains(address) {
		return false
	}
	return size <= seg.end()-address
}

// offset of address in the segment. The DRAM only hands a segment addresses
// it contains; anything else is an allocator defect.
func (seg *segment) offset(address uint64, size uint64) uint64 {
	if !seg.containsRange(address, size) {
		panic(fmt.Sprintf("segment [0x%x, 0x%x) does not contain [0x%x, +0x%x)",
			seg.start, seg.end(), address, size))
	}
	return address - seg.start
}

func (seg *segment) read8(address uint64) uint8 {
	return seg.data[seg.offset(address, 1)]
}

func (seg *segment) readBytes(address uint64, size uint64) []byte {
	offset := seg.offset(address, size)
	data := make([]byte, size)
	copy(data, seg.data[offset:offset+size])
	return data
}

func (seg *segment) write8(address uint64, value uint8) {
	seg.data[seg.offset(address, 1)] = value
}

func (seg *segment) writeBytes(address uint64, data []byte) {
	offset := seg.offset(address, uint64(len(data)))
	copy(seg.data[offset:], data)
}

// grow the tail of the segment with zeros so it ends at end.
func (seg *segment) grow(end uint64) {
	if end <= seg.end() {
		return
	}
	seg.data = append(seg.data, make([]byte, end-seg.end())...)
}

// growBackward moves the start of the segment down to start, and its end up
// to end if that is further, keeping the existing bytes at their addresses.
func (seg *segment) growBackward(start uint64, end uint64) {
	end = max(end, seg.end())
	data := make([]byte, end-start)
	copy(data[seg.start-start:], seg.data)
	seg.start = start
	seg.data = data
}

// absorb copies the bytes of other, which must start inside or just after
// the segment, growing the segment as needed.
func (seg *segment) absorb(other *segment) {
	seg.grow(other.end())
	copy(seg.data[other.start-seg.start:], other.data)
}
