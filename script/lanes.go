package script

import (
	"unsafe"

	"go.starlark.net/starlark"

	"github.com/ezrec/x64emu/cpu"
	"github.com/ezrec/x64emu/x86"
)

// laneKind reads and writes the lanes of a vector register view as
// Starlark values.
type laneKind struct {
	size  int
	read  func(view x86.View, n int) []starlark.Value
	write func(view x86.ViewMut, values []starlark.Value) error
}

var laneKinds = map[string]laneKind{
	"i8":  signedLanes[int8](),
	"i16": signedLanes[int16](),
	"i32": signedLanes[int32](),
	"i64": signedLanes[int64](),
	"u8":  unsignedLanes[uint8](),
	"u16": unsignedLanes[uint16](),
	"u32": unsignedLanes[uint32](),
	"u64": unsignedLanes[uint64](),
	"f32": floatLanes[float32](),
	"f64": floatLanes[float64](),
}

// checkCount validates n lanes of size bytes against the view width.
func (kind laneKind) checkCount(width int, n int) (err error) {
	count := width / kind.size
	if n < 1 || n > count || count%n != 0 {
		err = ErrLaneCount
	}
	return
}

func sizeOf[T x86.Lane]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// asUint64 accepts any Starlark int that fits in 64 bits, signed or not.
func asUint64(value starlark.Value) (u uint64, err error) {
	i, ok := value.(starlark.Int)
	if !ok {
		err = ErrValueRange
		return
	}

	u, ok = i.Uint64()
	if ok {
		return
	}

	s, ok := i.Int64()
	if !ok {
		err = ErrValueRange
		return
	}

	u = uint64(s)
	return
}

func signedLanes[T int8 | int16 | int32 | int64]() laneKind {
	return laneKind{
		size: sizeOf[T](),
		read: func(view x86.View, n int) (values []starlark.Value) {
			for _, lane := range x86.ReadLanes[T](view, n) {
				values = append(values, starlark.MakeInt64(int64(lane)))
			}
			return
		},
		write: func(view x86.ViewMut, values []starlark.Value) (err error) {
			lanes := cpu.NewSimd[T](len(values))
			for n, value := range values {
				var u uint64
				u, err = asUint64(value)
				if err != nil {
					return
				}
				lanes[n] = T(u)
			}
			x86.WriteLanes(view, lanes)
			return
		},
	}
}

func unsignedLanes[T uint8 | uint16 | uint32 | uint64]() laneKind {
	return laneKind{
		size: sizeOf[T](),
		read: func(view x86.View, n int) (values []starlark.Value) {
			for _, lane := range x86.ReadLanes[T](view, n) {
				values = append(values, starlark.MakeUint64(uint64(lane)))
			}
			return
		},
		write: func(view x86.ViewMut, values []starlark.Value) (err error) {
			lanes := cpu.NewSimd[T](len(values))
			for n, value := range values {
				var u uint64
				u, err = asUint64(value)
				if err != nil {
					return
				}
				lanes[n] = T(u)
			}
			x86.WriteLanes(view, lanes)
			return
		},
	}
}

func floatLanes[T float32 | float64]() laneKind {
	return laneKind{
		size: sizeOf[T](),
		read: func(view x86.View, n int) (values []starlark.Value) {
			for _, lane := range x86.ReadLanes[T](view, n) {
				values = append(values, starlark.Float(float64(lane)))
			}
			return
		},
		write: func(view x86.ViewMut, values []starlark.Value) (err error) {
			lanes := cpu.NewSimd[T](len(values))
			for n, value := range values {
				fv, ok := starlark.AsFloat(value)
				if !ok {
					err = ErrValueRange
					return
				}
				lanes[n] = T(fv)
			}
			x86.WriteLanes(view, lanes)
			return
		},
	}
}
