// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"golang.org/x/exp/constraints"
)

// Element is the type of a single vector lane.
type Element interface {
	constraints.Integer | constraints.Float
}

// Simd is a vector of lanes, as read from or written to a vector register.
type Simd[T Element] []T

// NewSimd creates a zeroed vector of n lanes.
func NewSimd[T Element](n int) Simd[T] {
	return make(Simd[T], n)
}

// FromArray creates a vector holding a copy of the lanes.
func FromArray[T Element](lanes ...T) Simd[T] {
	simd := NewSimd[T](len(lanes))
	copy(simd, lanes)
	return simd
}

// Len returns the number of lanes.
func (simd Simd[T]) Len() int {
	return len(simd)
}

// Index returns lane i.
func (simd Simd[T]) Index(i int) T {
	return simd[i]
}
