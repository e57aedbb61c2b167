package strict

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"math"

	"github.com/x448/float16"
)

// F16 is an IEEE 754 half precision float kept as its bit pattern.
type F16 float16.Float16

func NewF16(f float32) F16 { return F16(float16.Fromfloat32(f)) }

func (f F16) Float32() float32 { return float16.Float16(f).Float32() }
func (f F16) Bits() uint16     { return uint16(f) }

func (f F16) StrictEncode(w *Writer) error {
	return w.writePrimitive(PrimF16, binary.LittleEndian.AppendUint16(w.buf[:0], uint16(f)))
}

func (f *F16) StrictDecode(r *Reader) error {
	var b [2]byte
	if err := r.readPrimitive(b[:]); err != nil {
		return err
	}
	*f = F16(float16.Frombits(binary.LittleEndian.Uint16(b[:])))
	return nil
}

type (
	F32 float32
	F64 float64
)

func (f F32) StrictEncode(w *Writer) error {
	return w.writePrimitive(PrimF32, binary.LittleEndian.AppendUint32(w.buf[:0], math.Float32bits(float32(f))))
}

func (f *F32) StrictDecode(r *Reader) error {
	var b [4]byte
	if err := r.readPrimitive(b[:]); err != nil {
		return err
	}
	*f = F32(math.Float32frombits(binary.LittleEndian.Uint32(b[:])))
	return nil
}

func (f F64) StrictEncode(w *Writer) error {
	return w.writePrimitive(PrimF64, binary.LittleEndian.AppendUint64(w.buf[:0], math.Float64bits(float64(f))))
}

func (f *F64) StrictDecode(r *Reader) error {
	var b [8]byte
	if err := r.readPrimitive(b[:]); err != nil {
		return err
	}
	*f = F64(math.Float64frombits(binary.LittleEndian.Uint64(b[:])))
	return nil
}

// Compare orders floats by bit pattern: negative values descend
// below positive ones, -0 sorts before +0 and NaNs sort by payload at
// both ends. Every distinct encoding is a distinct key.
func (f F16) Compare(o F16) int { return cmp.Compare(floatKey(uint64(f), 16), floatKey(uint64(o), 16)) }
func (f F32) Compare(o F32) int {
	return cmp.Compare(floatKey(uint64(math.Float32bits(float32(f))), 32), floatKey(uint64(math.Float32bits(float32(o))), 32))
}
func (f F64) Compare(o F64) int {
	return cmp.Compare(floatKey(math.Float64bits(float64(f)), 64), floatKey(math.Float64bits(float64(o)), 64))
}

// floatKey maps an IEEE bit pattern of the given width onto an
// unsigned key with the same order as the values.
func floatKey(bits uint64, width uint) uint64 {
	sign := uint64(1) << (width - 1)
	mask := sign | (sign - 1)
	if bits&sign != 0 {
		return ^bits & mask
	}
	return bits | sign
}

// Extended, quadruple and octuple precision floats are carried as
// their little-endian bit patterns without arithmetic.
type (
	F80  [10]byte
	F128 [16]byte
	F256 [32]byte
)

func (f F80) StrictEncode(w *Writer) error   { return w.writePrimitive(PrimF80, f[:]) }
func (f F128) StrictEncode(w *Writer) error  { return w.writePrimitive(PrimF128, f[:]) }
func (f F256) StrictEncode(w *Writer) error  { return w.writePrimitive(PrimF256, f[:]) }
func (f *F80) StrictDecode(r *Reader) error  { return r.readPrimitive(f[:]) }
func (f *F128) StrictDecode(r *Reader) error { return r.readPrimitive(f[:]) }
func (f *F256) StrictDecode(r *Reader) error { return r.readPrimitive(f[:]) }

// Compare orders bit patterns, not numeric values.
func (f F80) Compare(o F80) int   { return bytes.Compare(f[:], o[:]) }
func (f F128) Compare(o F128) int { return bytes.Compare(f[:], o[:]) }
func (f F256) Compare(o F256) int { return bytes.Compare(f[:], o[:]) }
