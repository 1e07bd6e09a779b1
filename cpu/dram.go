// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"slices"

	"github.com/ezrec/x64emu/internal"
)

const (
	BLOCK_SIZE         = 1 << 12 // Allocation address granularity.
	DEFAULT_ALLOC_SIZE = 1 << 12 // Smallest allocation.
)

// DRAM is a sparse memory device. Backing storage is allocated on demand
// with Alloc, as segments inside of the device window.
type DRAM struct {
	Verbose bool // Set to enable verbose logging.

	segments    []*segment // Sorted by start address, never overlapping.
	baseAddress uint64
	size        uint64
	alignment   uint64
}

var _ Device = (*DRAM)(nil)

// NewDRAM creates a DRAM at baseAddress. The size is rounded up to the
// next power of two.
func NewDRAM(baseAddress uint64, size uint64) (dram *DRAM) {
	dram = &DRAM{
		baseAddress: baseAddress,
		size:        internal.NextPowerOfTwo(size),
		alignment:   1,
	}

	return
}

// Name of the device.
func (dram *DRAM) Name() string {
	return "DRAM"
}

// StartAddress is the base address of the DRAM.
func (dram *DRAM) StartAddress() uint64 {
	return dram.baseAddress
}

// EndAddress is the address after the end of the DRAM window.
func (dram *DRAM) EndAddress() uint64 {
	return dram.baseAddress + dram.size
}

// Size of the DRAM window in bytes.
func (dram *DRAM) Size() uint64 {
	return dram.size
}

// Alignment required of all accessed addresses.
func (dram *DRAM) Alignment() uint64 {
	return dram.alignment
}

// SetAlignment sets the required alignment of accesses, which must be a
// power of two.
func (dram *DRAM) SetAlignment(alignment uint64) {
	if !internal.IsPowerOfTwo(alignment) {
		panic(fmt.Sprintf("dram: alignment %d is not a power of two", alignment))
	}
	dram.alignment = alignment
}

// Segments iterates over the start address and contents of each allocated
// segment, in ascending address order. The contents must not be retained.
func (dram *DRAM) Segments() iter.Seq2[uint64, []byte] {
	return func(yield func(start uint64, data []byte) bool) {
		for _, seg := range dram.segments {
			if !yield(seg.start, seg.data) {
				return
			}
		}
	}
}

// Alloc backs memory near addressHint with at least sizeHint bytes.
//
// The address is rounded down to the block size, and the size rounded up
// to a power of two of at least DEFAULT_ALLOC_SIZE. An allocation that
// touches or overlaps the start of an existing segment grows that segment
// down, and one that begins at the end of an existing segment extends it.
// Returns the start address of the segment backing the allocation.
//
// Segments never leave the window: a block that starts below the base of
// the window is backed from the base, and an allocation that runs past its
// end is cut short.
func (dram *DRAM) Alloc(addressHint uint64, sizeHint uint64) (address uint64, err error) {
	if sizeHint > dram.size || addressHint < dram.baseAddress || addressHint >= dram.EndAddress() {
		err = ErrOutOfBounds{Address: addressHint, Size: sizeHint}
		return
	}

	block := addressHint &^ (BLOCK_SIZE - 1)

	size := sizeHint + (addressHint - block)
	if size < DEFAULT_ALLOC_SIZE {
		size = DEFAULT_ALLOC_SIZE
	} else {
		size = internal.NextPowerOfTwo(size)
	}

	end := block + min(size, dram.EndAddress()-block)
	address = max(block, dram.baseAddress)
	size = end - address

	if dram.Verbose {
		log.Printf("dram: alloc 0x%x+0x%x => [0x%x, 0x%x)", addressHint, sizeHint, address, address+size)
	}

	for n, seg := range dram.segments {
		if seg.contains(address) {
			err = ErrAddressAlreadyMapped{Address: seg.start}
			return
		}

		if seg.end() == address {
			seg.grow(address + size)
			dram.coalesce(n)
			address = seg.start
			return
		}

		if address < seg.start && address+size >= seg.start {
			seg.growBackward(address, address+size)
			dram.coalesce(n)
			return
		}
	}

	dram.insert(&segment{
		start: address,
		data:  make([]byte, size),
	})

	return
}

// AllocRange backs every block of [address, address+size) that is not
// already backed, so that the whole range lies in a single segment.
func (dram *DRAM) AllocRange(address uint64, size uint64) (err error) {
	err = dram.checkAccess(address, size)
	if err != nil {
		return
	}

	end := address + size
	for start := address; start < end; {
		if _, ok := dram.lookup(start); !ok {
			_, err = dram.Alloc(start, end-start)
			if err != nil {
				return
			}
		}

		next := (start &^ (BLOCK_SIZE - 1)) + BLOCK_SIZE
		if next <= start {
			break
		}
		start = next
	}

	return
}

// insert a segment at its sorted position.
func (dram *DRAM) insert(seg *segment) {
	n, _ := slices.BinarySearchFunc(dram.segments, seg.start, func(s *segment, start uint64) int {
		switch {
		case s.start < start:
			return -1
		case s.start > start:
			return 1
		}
		return 0
	})
	dram.segments = slices.Insert(dram.segments, n, seg)
}

// coalesce merges into segment n all of the following segments it now
// reaches.
func (dram *DRAM) coalesce(n int) {
	seg := dram.segments[n]
	next := n + 1
	for next < len(dram.segments) && dram.segments[next].start <= seg.end() {
		if dram.Verbose {
			log.Printf("dram: merge [0x%x, 0x%x) into [0x%x, 0x%x)",
				dram.segments[next].start, dram.segments[next].end(), seg.start, seg.end())
		}
		seg.absorb(dram.segments[next])
		next++
	}
	dram.segments = slices.Delete(dram.segments, n+1, next)
}

// lookup finds the segment containing address.
func (dram *DRAM) lookup(address uint64) (seg *segment, ok bool) {
	// Index of the first segment starting after address.
	n, _ := slices.BinarySearchFunc(dram.segments, address, func(s *segment, address uint64) int {
		if s.start <= address {
			return -1
		}
		return 1
	})
	if n == 0 {
		return
	}

	seg = dram.segments[n-1]
	ok = seg.contains(address)
	return
}

// checkAccess validates alignment and the address window.
func (dram *DRAM) checkAccess(address uint64, size uint64) (err error) {
	if address%dram.alignment != 0 {
		err = ErrUnaligned{Address: address}
		return
	}

	if address < dram.baseAddress || address >= dram.EndAddress() {
		err = ErrOutOfBounds{Address: address, Size: size}
		return
	}

	if size > dram.EndAddress()-address {
		err = ErrOutOfBounds{Address: address, Size: size}
		return
	}

	return
}

// backing validates the access, and finds the segment holding all of it.
func (dram *DRAM) backing(address uint64, size uint64) (seg *segment, err error) {
	err = dram.checkAccess(address, size)
	if err != nil {
		return
	}

	seg, ok := dram.lookup(address)
	if !ok || !seg.containsRange(address, size) {
		err = ErrAddressNotMapped
		return
	}

	return
}

// Read8 reads a byte.
func (dram *DRAM) Read8(address uint64) (value uint8, err error) {
	seg, err := dram.backing(address, 1)
	if err != nil {
		return
	}

	value = seg.read8(address)
	return
}

// ReadBytes reads a copy of size bytes.
func (dram *DRAM) ReadBytes(address uint64, size uint64) (data []byte, err error) {
	seg, err := dram.backing(address, size)
	if err != nil {
		return
	}

	data = seg.readBytes(address, size)
	return
}

// Write8 writes a byte.
func (dram *DRAM) Write8(address uint64, value uint8) (err error) {
	seg, err := dram.backing(address, 1)
	if err != nil {
		return
	}

	seg.write8(address, value)
	return
}

// WriteBytes writes data at address.
func (dram *DRAM) WriteBytes(address uint64, data []byte) (err error) {
	seg, err := dram.backing(address, uint64(len(data)))
	if err != nil {
		return
	}

	seg.writeBytes(address, data)
	return
}
