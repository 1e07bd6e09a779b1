// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package x86

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unsafe"

	"github.com/ezrec/x64emu/cpu"
)

const (
	SIMD_COUNT = 16 // Number of vector registers.

	XMM_SIZE = 16 // Bytes in an XMM view.
	YMM_SIZE = 32 // Bytes in a YMM view.
	ZMM_SIZE = 64 // Bytes in a ZMM view, and in a vector register.
)

// Lane is the element type of a vector register lane.
type Lane interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// Avx512Register is the storage of a single 512-bit vector register.
type Avx512Register struct {
	data [ZMM_SIZE]byte
}

// Xmm returns a view of bytes 0 to 15.
func (reg *Avx512Register) Xmm() XmmView {
	return XmmView{laneView{data: reg.data[0:XMM_SIZE]}}
}

// Ymm returns a view of bytes 0 to 31.
func (reg *Avx512Register) Ymm() YmmView {
	return YmmView{laneView{data: reg.data[0:YMM_SIZE]}}
}

// Zmm returns a view of bytes 0 to 63.
func (reg *Avx512Register) Zmm() ZmmView {
	return ZmmView{laneView{data: reg.data[:]}}
}

// XmmMut returns a writable view of bytes 0 to 15.
func (reg *Avx512Register) XmmMut() XmmViewMut {
	return XmmViewMut{laneViewMut{laneView{data: reg.data[0:XMM_SIZE]}}}
}

// YmmMut returns a writable view of bytes 0 to 31.
func (reg *Avx512Register) YmmMut() YmmViewMut {
	return YmmViewMut{laneViewMut{laneView{data: reg.data[0:YMM_SIZE]}}}
}

// ZmmMut returns a writable view of bytes 0 to 63.
func (reg *Avx512Register) ZmmMut() ZmmViewMut {
	return ZmmViewMut{laneViewMut{laneView{data: reg.data[:]}}}
}

// View is a read view of the leading bytes of a vector register.
type View interface {
	// Width of the view in bytes.
	Width() int
	// Bytes returns a copy of the viewed bytes.
	Bytes() []byte

	lanes() []byte
}

// ViewMut is a writable view of the leading bytes of a vector register.
type ViewMut interface {
	View
	// SetBytes copies data over the leading bytes of the view.
	SetBytes(data []byte)
}

type laneView struct {
	data []byte
}

func (lv laneView) Width() int {
	return len(lv.data)
}

func (lv laneView) Bytes() []byte {
	return append([]byte(nil), lv.data...)
}

func (lv laneView) lanes() []byte {
	return lv.data
}

type laneViewMut struct {
	laneView
}

func (lv laneViewMut) SetBytes(data []byte) {
	if len(data) > len(lv.data) {
		panic(fmt.Sprintf("x86: %d bytes do not fit a %d byte view", len(data), len(lv.data)))
	}
	copy(lv.data, data)
}

// XmmView is a read view of a 128-bit vector register.
type XmmView struct{ laneView }

// YmmView is a read view of a 256-bit vector register.
type YmmView struct{ laneView }

// ZmmView is a read view of a 512-bit vector register.
type ZmmView struct{ laneView }

// XmmViewMut is a writable view of a 128-bit vector register.
type XmmViewMut struct{ laneViewMut }

// YmmViewMut is a writable view of a 256-bit vector register.
type YmmViewMut struct{ laneViewMut }

// ZmmViewMut is a writable view of a 512-bit vector register.
type ZmmViewMut struct{ laneViewMut }

// AsYmm narrows the view to its leading 32 bytes.
func (v ZmmView) AsYmm() YmmView {
	return YmmView{laneView{data: v.data[0:YMM_SIZE]}}
}

// AsXmm narrows the view to its leading 16 bytes.
func (v ZmmView) AsXmm() XmmView {
	return XmmView{laneView{data: v.data[0:XMM_SIZE]}}
}

// AsXmm narrows the view to its leading 16 bytes.
func (v YmmView) AsXmm() XmmView {
	return XmmView{laneView{data: v.data[0:XMM_SIZE]}}
}

// AsYmm narrows the view to its leading 32 bytes.
func (v ZmmViewMut) AsYmm() YmmViewMut {
	return YmmViewMut{laneViewMut{laneView{data: v.data[0:YMM_SIZE]}}}
}

// AsXmm narrows the view to its leading 16 bytes.
func (v ZmmViewMut) AsXmm() XmmViewMut {
	return XmmViewMut{laneViewMut{laneView{data: v.data[0:XMM_SIZE]}}}
}

// AsXmm narrows the view to its leading 16 bytes.
func (v YmmViewMut) AsXmm() XmmViewMut {
	return XmmViewMut{laneViewMut{laneView{data: v.data[0:XMM_SIZE]}}}
}

// View returns the read view of the same bytes.
func (v XmmViewMut) View() XmmView {
	return XmmView{v.laneView}
}

// View returns the read view of the same bytes.
func (v YmmViewMut) View() YmmView {
	return YmmView{v.laneView}
}

// View returns the read view of the same bytes.
func (v ZmmViewMut) View() ZmmView {
	return ZmmView{v.laneView}
}

// laneSize returns the size of T in bytes.
func laneSize[T Lane]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// checkLanes panics unless n lanes of T evenly divide the view.
func checkLanes[T Lane](width int, n int) (size int) {
	size = laneSize[T]()
	count := width / size
	if n < 1 || n > count || count%n != 0 {
		var zero T
		panic(fmt.Sprintf("x86: %T x %d does not fit a %d byte view", zero, n, width))
	}
	return
}

// ReadLanes decodes the first n little-endian lanes of T in the view.
// n must evenly divide the number of T lanes that fit the view.
func ReadLanes[T Lane](view View, n int) (value cpu.Simd[T]) {
	data := view.lanes()
	size := checkLanes[T](len(data), n)

	value = cpu.NewSimd[T](n)
	for i := range n {
		value[i] = decodeLane[T](data[i*size:])
	}

	return
}

// WriteLanes encodes the lanes of value, little-endian, into the leading
// bytes of the view. Bytes past the last lane are unchanged.
func WriteLanes[T Lane](view ViewMut, value cpu.Simd[T]) {
	data := view.lanes()
	size := checkLanes[T](len(data), value.Len())

	for i, lane := range value {
		encodeLane(data[i*size:], lane)
	}
}

func decodeLane[T Lane](data []byte) (value T) {
	switch lane := any(&value).(type) {
	case *int8:
		*lane = int8(data[0])
	case *uint8:
		*lane = data[0]
	case *int16:
		*lane = int16(binary.LittleEndian.Uint16(data))
	case *uint16:
		*lane = binary.LittleEndian.Uint16(data)
	case *int32:
		*lane = int32(binary.LittleEndian.Uint32(data))
	case *uint32:
		*lane = binary.LittleEndian.Uint32(data)
	case *int64:
		*lane = int64(binary.LittleEndian.Uint64(data))
	case *uint64:
		*lane = binary.LittleEndian.Uint64(data)
	case *float32:
		*lane = math.Float32frombits(binary.LittleEndian.Uint32(data))
	case *float64:
		*lane = math.Float64frombits(binary.LittleEndian.Uint64(data))
	}
	return
}

func encodeLane[T Lane](data []byte, value T) {
	switch lane := any(value).(type) {
	case int8:
		data[0] = uint8(lane)
	case uint8:
		data[0] = lane
	case int16:
		binary.LittleEndian.PutUint16(data, uint16(lane))
	case uint16:
		binary.LittleEndian.PutUint16(data, lane)
	case int32:
		binary.LittleEndian.PutUint32(data, uint32(lane))
	case uint32:
		binary.LittleEndian.PutUint32(data, lane)
	case int64:
		binary.LittleEndian.PutUint64(data, uint64(lane))
	case uint64:
		binary.LittleEndian.PutUint64(data, lane)
	case float32:
		binary.LittleEndian.PutUint32(data, math.Float32bits(lane))
	case float64:
		binary.LittleEndian.PutUint64(data, math.Float64bits(lane))
	}
}

func (lv laneView) ReadI8(n int) cpu.Simd[int8]     { return ReadLanes[int8](lv, n) }
func (lv laneView) ReadI16(n int) cpu.Simd[int16]   { return ReadLanes[int16](lv, n) }
func (lv laneView) ReadI32(n int) cpu.Simd[int32]   { return ReadLanes[int32](lv, n) }
func (lv laneView) ReadI64(n int) cpu.Simd[int64]   { return ReadLanes[int64](lv, n) }
func (lv laneView) ReadU8(n int) cpu.Simd[uint8]    { return ReadLanes[uint8](lv, n) }
func (lv laneView) ReadU16(n int) cpu.Simd[uint16]  { return ReadLanes[uint16](lv, n) }
func (lv laneView) ReadU32(n int) cpu.Simd[uint32]  { return ReadLanes[uint32](lv, n) }
func (lv laneView) ReadU64(n int) cpu.Simd[uint64]  { return ReadLanes[uint64](lv, n) }
func (lv laneView) ReadF32(n int) cpu.Simd[float32] { return ReadLanes[float32](lv, n) }
func (lv laneView) ReadF64(n int) cpu.Simd[float64] { return ReadLanes[float64](lv, n) }

func (lv laneViewMut) WriteI8(value cpu.Simd[int8])     { WriteLanes(lv, value) }
func (lv laneViewMut) WriteI16(value cpu.Simd[int16])   { WriteLanes(lv, value) }
func (lv laneViewMut) WriteI32(value cpu.Simd[int32])   { WriteLanes(lv, value) }
func (lv laneViewMut) WriteI64(value cpu.Simd[int64])   { WriteLanes(lv, value) }
func (lv laneViewMut) WriteU8(value cpu.Simd[uint8])    { WriteLanes(lv, value) }
func (lv laneViewMut) WriteU16(value cpu.Simd[uint16])  { WriteLanes(lv, value) }
func (lv laneViewMut) WriteU32(value cpu.Simd[uint32])  { WriteLanes(lv, value) }
func (lv laneViewMut) WriteU64(value cpu.Simd[uint64])  { WriteLanes(lv, value) }
func (lv laneViewMut) WriteF32(value cpu.Simd[float32]) { WriteLanes(lv, value) }
func (lv laneViewMut) WriteF64(value cpu.Simd[float64]) { WriteLanes(lv, value) }

// SimdKind is the view size of a named vector register.
type SimdKind int

const (
	SIMD_XMM = SimdKind(XMM_SIZE)
	SIMD_YMM = SimdKind(YMM_SIZE)
	SIMD_ZMM = SimdKind(ZMM_SIZE)
)

// LookupSimd parses a vector register name, xmm0 to zmm15.
func LookupSimd(name string) (kind SimdKind, index int, ok bool) {
	if len(name) < 4 {
		return
	}

	switch name[:3] {
	case "xmm":
		kind = SIMD_XMM
	case "ymm":
		kind = SIMD_YMM
	case "zmm":
		kind = SIMD_ZMM
	default:
		return
	}

	digits := name[3:]
	if strings.HasPrefix(digits, "0") && len(digits) > 1 {
		return
	}
	index, err := strconv.Atoi(digits)
	if err != nil || index < 0 || index >= SIMD_COUNT {
		return
	}

	ok = true
	return
}

// View returns the read view of a kind of a vector register.
func (regs *Registers) View(kind SimdKind, index int) View {
	switch kind {
	case SIMD_XMM:
		return regs.Xmm(index)
	case SIMD_YMM:
		return regs.Ymm(index)
	default:
		return regs.Zmm(index)
	}
}

// ViewMut returns the writable view of a kind of a vector register.
func (regs *Registers) ViewMut(kind SimdKind, index int) ViewMut {
	switch kind {
	case SIMD_XMM:
		return regs.XmmMut(index)
	case SIMD_YMM:
		return regs.YmmMut(index)
	default:
		return regs.ZmmMut(index)
	}
}
