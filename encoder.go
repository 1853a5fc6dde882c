package sortedlist

import (
	"encoding/binary"
	"math"
)

// Encoder appends the bytes a Digest is computed over for value to dst.
type Encoder[T any] interface {
	Encode(dst []byte, value T) (p []byte, err error)
}

// EncoderFunc adapts a function to an Encoder.
type EncoderFunc[T any] func(dst []byte, value T) (p []byte, err error)

func (fn EncoderFunc[T]) Encode(dst []byte, value T) (p []byte, err error) {
	p, err = fn(dst, value)
	return
}

// fixedEncoder writes the 64 bits returned by the func in big endian.
type fixedEncoder[T any] func(value T) uint64

func (fn fixedEncoder[T]) Encode(dst []byte, value T) (p []byte, err error) {
	p = binary.BigEndian.AppendUint64(dst, fn(value))
	return
}

func Uint64Encoder() Encoder[uint64] {
	return fixedEncoder[uint64](func(value uint64) uint64 {
		return value
	})
}

func Int64Encoder() Encoder[int64] {
	return fixedEncoder[int64](func(value int64) uint64 {
		return uint64(value)
	})
}

func Float64Encoder() Encoder[float64] {
	return fixedEncoder[float64](math.Float64bits)
}

func StringEncoder() Encoder[string] {
	return EncoderFunc[string](func(dst []byte, value string) ([]byte, error) {
		return append(dst, value...), nil
	})
}
