package utils

import (
	"golang.org/x/exp/constraints"
)

const BitsPerByte = 8

// Returns the size in bits of n bytes
func Bits(bytes int) int {
	return bytes * BitsPerByte
}

// Returns an all ones bitmask of n bits of the given unsigned integer type
func AllOnes[T constraints.Unsigned](bits int) T {
	if bits <= 0 {
		return 0
	}

	if bits >= 64 {
		return ^T(0)
	}

	return (T(1) << bits) - T(1)
}

// Rounds value up to the next multiple of alignment. Zero alignment leaves value untouched.
func AlignUp[T constraints.Unsigned](value T, alignment T) T {
	if alignment == 0 {
		return value
	}

	return (value + alignment - 1) / alignment * alignment
}

// Returns the smallest power of two number of bytes able to hold the given bits
func StorageBytes(bits int) uint64 {
	bytes := AlignUp(uint64(max(bits, 1)), BitsPerByte) / BitsPerByte

	size := uint64(1)
	for size < bytes {
		size <<= 1
	}

	return size
}

// Implements a read view over an unsigned interger, allowing extracting bit ranges easily
type BitView[T constraints.Unsigned] struct {
	Bits *T
}

// Returns the viewed unsigned int value
func (v BitView[T]) Value() T {
	return *v.Bits
}

// Extracts a range of bits given a first bit and a width
func (v BitView[T]) Read(bit int, width int) T {
	mask := AllOnes[T](width)
	return (v.Value() >> bit) & mask
}

// Creates a bit view out of an unsigned int
func CreateBitView[T constraints.Unsigned](value *T) BitView[T] {
	return BitView[T]{
		Bits: value,
	}
}
