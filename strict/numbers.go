package strict

import (
	"cmp"
	"encoding/binary"
	"math/big"
)

// Fixed width integers. Each type encodes as its little-endian bytes
// and is tagged by the matching Primitive.
type (
	U8  uint8
	U16 uint16
	U24 uint32
	U32 uint32
	U64 uint64
	I8  int8
	I16 int16
	I24 int32
	I32 int32
	I64 int64
)

const (
	maxU24 = 1<<24 - 1
	minI24 = -1 << 23
	maxI24 = 1<<23 - 1
)

func rangeError(typ string, lo, hi, v int64) *ValueOutOfRangeError {
	return &ValueOutOfRangeError{Type: typ, Min: big.NewInt(lo), Max: big.NewInt(hi), Value: big.NewInt(v)}
}

func (v U8) StrictEncode(w *Writer) error {
	w.buf[0] = byte(v)
	return w.writePrimitive(PrimU8, w.buf[:1])
}

func (v *U8) StrictDecode(r *Reader) error {
	b, err := r.readByte()
	*v = U8(b)
	return err
}

func (v U16) StrictEncode(w *Writer) error {
	return w.writePrimitive(PrimU16, binary.LittleEndian.AppendUint16(w.buf[:0], uint16(v)))
}

func (v *U16) StrictDecode(r *Reader) error {
	var b [2]byte
	if err := r.readPrimitive(b[:]); err != nil {
		return err
	}
	*v = U16(binary.LittleEndian.Uint16(b[:]))
	return nil
}

// NewU24 checks that v fits into three bytes.
func NewU24(v uint32) (U24, error) {
	if v > maxU24 {
		return 0, rangeError("U24", 0, maxU24, int64(v))
	}
	return U24(v), nil
}

func (v U24) StrictEncode(w *Writer) error {
	if v > maxU24 {
		return rangeError("U24", 0, maxU24, int64(v))
	}
	binary.LittleEndian.PutUint32(w.buf[:4], uint32(v))
	return w.writePrimitive(PrimU24, w.buf[:3])
}

func (v *U24) StrictDecode(r *Reader) error {
	var b [4]byte
	if err := r.readPrimitive(b[:3]); err != nil {
		return err
	}
	*v = U24(binary.LittleEndian.Uint32(b[:]))
	return nil
}

func (v U32) StrictEncode(w *Writer) error {
	return w.writePrimitive(PrimU32, binary.LittleEndian.AppendUint32(w.buf[:0], uint32(v)))
}

func (v *U32) StrictDecode(r *Reader) error {
	var b [4]byte
	if err := r.readPrimitive(b[:]); err != nil {
		return err
	}
	*v = U32(binary.LittleEndian.Uint32(b[:]))
	return nil
}

func (v U64) StrictEncode(w *Writer) error {
	return w.writePrimitive(PrimU64, binary.LittleEndian.AppendUint64(w.buf[:0], uint64(v)))
}

func (v *U64) StrictDecode(r *Reader) error {
	var b [8]byte
	if err := r.readPrimitive(b[:]); err != nil {
		return err
	}
	*v = U64(binary.LittleEndian.Uint64(b[:]))
	return nil
}

func (v I8) StrictEncode(w *Writer) error {
	w.buf[0] = byte(v)
	return w.writePrimitive(PrimI8, w.buf[:1])
}

func (v *I8) StrictDecode(r *Reader) error {
	b, err := r.readByte()
	*v = I8(b)
	return err
}

func (v I16) StrictEncode(w *Writer) error {
	return w.writePrimitive(PrimI16, binary.LittleEndian.AppendUint16(w.buf[:0], uint16(v)))
}

func (v *I16) StrictDecode(r *Reader) error {
	var b [2]byte
	if err := r.readPrimitive(b[:]); err != nil {
		return err
	}
	*v = I16(binary.LittleEndian.Uint16(b[:]))
	return nil
}

// NewI24 checks that v fits into three bytes of two's complement.
func NewI24(v int32) (I24, error) {
	if v < minI24 || v > maxI24 {
		return 0, rangeError("I24", minI24, maxI24, int64(v))
	}
	return I24(v), nil
}

func (v I24) StrictEncode(w *Writer) error {
	if v < minI24 || v > maxI24 {
		return rangeError("I24", minI24, maxI24, int64(v))
	}
	binary.LittleEndian.PutUint32(w.buf[:4], uint32(v))
	return w.writePrimitive(PrimI24, w.buf[:3])
}

func (v *I24) StrictDecode(r *Reader) error {
	var b [4]byte
	if err := r.readPrimitive(b[:3]); err != nil {
		return err
	}
	if b[2]&0x80 != 0 {
		b[3] = 0xFF
	}
	*v = I24(int32(binary.LittleEndian.Uint32(b[:])))
	return nil
}

func (v I32) StrictEncode(w *Writer) error {
	return w.writePrimitive(PrimI32, binary.LittleEndian.AppendUint32(w.buf[:0], uint32(v)))
}

func (v *I32) StrictDecode(r *Reader) error {
	var b [4]byte
	if err := r.readPrimitive(b[:]); err != nil {
		return err
	}
	*v = I32(int32(binary.LittleEndian.Uint32(b[:])))
	return nil
}

func (v I64) StrictEncode(w *Writer) error {
	return w.writePrimitive(PrimI64, binary.LittleEndian.AppendUint64(w.buf[:0], uint64(v)))
}

func (v *I64) StrictDecode(r *Reader) error {
	var b [8]byte
	if err := r.readPrimitive(b[:]); err != nil {
		return err
	}
	*v = I64(int64(binary.LittleEndian.Uint64(b[:])))
	return nil
}

func (v U8) Compare(o U8) int   { return cmp.Compare(v, o) }
func (v U16) Compare(o U16) int { return cmp.Compare(v, o) }
func (v U24) Compare(o U24) int { return cmp.Compare(v, o) }
func (v U32) Compare(o U32) int { return cmp.Compare(v, o) }
func (v U64) Compare(o U64) int { return cmp.Compare(v, o) }
func (v I8) Compare(o I8) int   { return cmp.Compare(v, o) }
func (v I16) Compare(o I16) int { return cmp.Compare(v, o) }
func (v I24) Compare(o I24) int { return cmp.Compare(v, o) }
func (v I32) Compare(o I32) int { return cmp.Compare(v, o) }
func (v I64) Compare(o I64) int { return cmp.Compare(v, o) }

// Non-zero naturals. Zero is rejected on construction, on encode and
// on decode with ErrZeroNatural.
type (
	NonZeroU8  uint8
	NonZeroU16 uint16
	NonZeroU32 uint32
	NonZeroU64 uint64
)

func NewNonZeroU8(v uint8) (NonZeroU8, error) {
	if v == 0 {
		return 0, ErrZeroNatural
	}
	return NonZeroU8(v), nil
}

func NewNonZeroU16(v uint16) (NonZeroU16, error) {
	if v == 0 {
		return 0, ErrZeroNatural
	}
	return NonZeroU16(v), nil
}

func NewNonZeroU32(v uint32) (NonZeroU32, error) {
	if v == 0 {
		return 0, ErrZeroNatural
	}
	return NonZeroU32(v), nil
}

func NewNonZeroU64(v uint64) (NonZeroU64, error) {
	if v == 0 {
		return 0, ErrZeroNatural
	}
	return NonZeroU64(v), nil
}

func (v NonZeroU8) StrictEncode(w *Writer) error {
	if v == 0 {
		return ErrZeroNatural
	}
	w.buf[0] = byte(v)
	return w.writePrimitive(PrimN8, w.buf[:1])
}

func (v *NonZeroU8) StrictDecode(r *Reader) error {
	b, err := r.readByte()
	if err != nil {
		return err
	}
	if b == 0 {
		return ErrZeroNatural
	}
	*v = NonZeroU8(b)
	return nil
}

func (v NonZeroU16) StrictEncode(w *Writer) error {
	if v == 0 {
		return ErrZeroNatural
	}
	return w.writePrimitive(PrimN16, binary.LittleEndian.AppendUint16(w.buf[:0], uint16(v)))
}

func (v *NonZeroU16) StrictDecode(r *Reader) error {
	var b [2]byte
	if err := r.readPrimitive(b[:]); err != nil {
		return err
	}
	n := binary.LittleEndian.Uint16(b[:])
	if n == 0 {
		return ErrZeroNatural
	}
	*v = NonZeroU16(n)
	return nil
}

func (v NonZeroU32) StrictEncode(w *Writer) error {
	if v == 0 {
		return ErrZeroNatural
	}
	return w.writePrimitive(PrimN32, binary.LittleEndian.AppendUint32(w.buf[:0], uint32(v)))
}

func (v *NonZeroU32) StrictDecode(r *Reader) error {
	var b [4]byte
	if err := r.readPrimitive(b[:]); err != nil {
		return err
	}
	n := binary.LittleEndian.Uint32(b[:])
	if n == 0 {
		return ErrZeroNatural
	}
	*v = NonZeroU32(n)
	return nil
}

func (v NonZeroU64) StrictEncode(w *Writer) error {
	if v == 0 {
		return ErrZeroNatural
	}
	return w.writePrimitive(PrimN64, binary.LittleEndian.AppendUint64(w.buf[:0], uint64(v)))
}

func (v *NonZeroU64) StrictDecode(r *Reader) error {
	var b [8]byte
	if err := r.readPrimitive(b[:]); err != nil {
		return err
	}
	n := binary.LittleEndian.Uint64(b[:])
	if n == 0 {
		return ErrZeroNatural
	}
	*v = NonZeroU64(n)
	return nil
}

func (NonZeroU8) StrictDumb() Encoder  { return NonZeroU8(1) }
func (NonZeroU16) StrictDumb() Encoder { return NonZeroU16(1) }
func (NonZeroU32) StrictDumb() Encoder { return NonZeroU32(1) }
func (NonZeroU64) StrictDumb() Encoder { return NonZeroU64(1) }

func (v NonZeroU8) Compare(o NonZeroU8) int   { return cmp.Compare(v, o) }
func (v NonZeroU16) Compare(o NonZeroU16) int { return cmp.Compare(v, o) }
func (v NonZeroU32) Compare(o NonZeroU32) int { return cmp.Compare(v, o) }
func (v NonZeroU64) Compare(o NonZeroU64) int { return cmp.Compare(v, o) }

// Byte is a raw byte. It encodes like U8 but carries the BYTE tag.
type Byte byte

func (b Byte) StrictEncode(w *Writer) error {
	w.buf[0] = byte(b)
	return w.writePrimitive(BYTE, w.buf[:1])
}

func (b *Byte) StrictDecode(r *Reader) error {
	v, err := r.readByte()
	*b = Byte(v)
	return err
}

func (b Byte) Compare(o Byte) int { return cmp.Compare(b, o) }

// Unit is the empty value and encodes to no bytes.
type Unit struct{}

func (Unit) StrictEncode(w *Writer) error { return w.writePrimitive(UNIT, nil) }
func (*Unit) StrictDecode(*Reader) error  { return nil }
func (Unit) Compare(Unit) int             { return 0 }

// Bool is encoded as the enum StdLib.Bool with false=0 and true=1.
type Bool bool

var boolType = NewEnum(LibStd, "Bool", Seq("false", "true")...)

func (b Bool) StrictEncode(w *Writer) error {
	var ord uint8
	if b {
		ord = 1
	}
	return w.WriteEnum(boolType, ord)
}

func (b *Bool) StrictDecode(r *Reader) error {
	ord, err := r.ReadEnum(boolType)
	if err != nil {
		return err
	}
	*b = ord == 1
	return nil
}

func (b Bool) Compare(o Bool) int {
	switch {
	case b == o:
		return 0
	case bool(o):
		return -1
	default:
		return 1
	}
}
