package strict

import (
	"math/big"
	"slices"
)

// Wide integers hold their little-endian two's complement bytes. Use
// the Big conversions for arithmetic.
type (
	U128  [16]byte
	U256  [32]byte
	U512  [64]byte
	U1024 [128]byte
	I128  [16]byte
	I256  [32]byte
	I512  [64]byte
	I1024 [128]byte
)

// putBig writes v into le as len(le) bytes of little-endian two's
// complement, failing when v does not fit.
func putBig(le []byte, v *big.Int, signed bool, typ string) error {
	bits := uint(len(le) * 8)
	lo, hi := new(big.Int), new(big.Int).Lsh(big.NewInt(1), bits)
	if signed {
		hi.Rsh(hi, 1)
		lo.Neg(hi)
	}
	hi.Sub(hi, big.NewInt(1))
	if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return &ValueOutOfRangeError{Type: typ, Min: lo, Max: hi, Value: new(big.Int).Set(v)}
	}
	u := new(big.Int).Set(v)
	if u.Sign() < 0 {
		u.Add(u, new(big.Int).Lsh(big.NewInt(1), bits))
	}
	clear(le)
	be := u.Bytes()
	for i, b := range be {
		le[len(be)-1-i] = b
	}
	return nil
}

func bigOf(le []byte, signed bool) *big.Int {
	be := slices.Clone(le)
	slices.Reverse(be)
	v := new(big.Int).SetBytes(be)
	if signed && len(le) > 0 && le[len(le)-1]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(len(le)*8)))
	}
	return v
}

// compareLE orders little-endian integers of equal width.
func compareLE(a, b []byte, signed bool) int {
	n := len(a) - 1
	if signed && a[n]&0x80 != b[n]&0x80 {
		if a[n]&0x80 != 0 {
			return -1
		}
		return 1
	}
	for i := n; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

func U128FromBig(v *big.Int) (U128, error) {
	var x U128
	err := putBig(x[:], v, false, "U128")
	return x, err
}

func U256FromBig(v *big.Int) (U256, error) {
	var x U256
	err := putBig(x[:], v, false, "U256")
	return x, err
}

func U512FromBig(v *big.Int) (U512, error) {
	var x U512
	err := putBig(x[:], v, false, "U512")
	return x, err
}

func U1024FromBig(v *big.Int) (U1024, error) {
	var x U1024
	err := putBig(x[:], v, false, "U1024")
	return x, err
}

func I128FromBig(v *big.Int) (I128, error) {
	var x I128
	err := putBig(x[:], v, true, "I128")
	return x, err
}

func I256FromBig(v *big.Int) (I256, error) {
	var x I256
	err := putBig(x[:], v, true, "I256")
	return x, err
}

func I512FromBig(v *big.Int) (I512, error) {
	var x I512
	err := putBig(x[:], v, true, "I512")
	return x, err
}

func I1024FromBig(v *big.Int) (I1024, error) {
	var x I1024
	err := putBig(x[:], v, true, "I1024")
	return x, err
}

func (u U128) Big() *big.Int  { return bigOf(u[:], false) }
func (u U256) Big() *big.Int  { return bigOf(u[:], false) }
func (u U512) Big() *big.Int  { return bigOf(u[:], false) }
func (u U1024) Big() *big.Int { return bigOf(u[:], false) }
func (i I128) Big() *big.Int  { return bigOf(i[:], true) }
func (i I256) Big() *big.Int  { return bigOf(i[:], true) }
func (i I512) Big() *big.Int  { return bigOf(i[:], true) }
func (i I1024) Big() *big.Int { return bigOf(i[:], true) }

func (u U128) StrictEncode(w *Writer) error  { return w.writePrimitive(PrimU128, u[:]) }
func (u U256) StrictEncode(w *Writer) error  { return w.writePrimitive(PrimU256, u[:]) }
func (u U512) StrictEncode(w *Writer) error  { return w.writePrimitive(PrimU512, u[:]) }
func (u U1024) StrictEncode(w *Writer) error { return w.writePrimitive(PrimU1024, u[:]) }
func (i I128) StrictEncode(w *Writer) error  { return w.writePrimitive(PrimI128, i[:]) }
func (i I256) StrictEncode(w *Writer) error  { return w.writePrimitive(PrimI256, i[:]) }
func (i I512) StrictEncode(w *Writer) error  { return w.writePrimitive(PrimI512, i[:]) }
func (i I1024) StrictEncode(w *Writer) error { return w.writePrimitive(PrimI1024, i[:]) }

func (u *U128) StrictDecode(r *Reader) error  { return r.readPrimitive(u[:]) }
func (u *U256) StrictDecode(r *Reader) error  { return r.readPrimitive(u[:]) }
func (u *U512) StrictDecode(r *Reader) error  { return r.readPrimitive(u[:]) }
func (u *U1024) StrictDecode(r *Reader) error { return r.readPrimitive(u[:]) }
func (i *I128) StrictDecode(r *Reader) error  { return r.readPrimitive(i[:]) }
func (i *I256) StrictDecode(r *Reader) error  { return r.readPrimitive(i[:]) }
func (i *I512) StrictDecode(r *Reader) error  { return r.readPrimitive(i[:]) }
func (i *I1024) StrictDecode(r *Reader) error { return r.readPrimitive(i[:]) }

func (u U128) Compare(o U128) int   { return compareLE(u[:], o[:], false) }
func (u U256) Compare(o U256) int   { return compareLE(u[:], o[:], false) }
func (u U512) Compare(o U512) int   { return compareLE(u[:], o[:], false) }
func (u U1024) Compare(o U1024) int { return compareLE(u[:], o[:], false) }
func (i I128) Compare(o I128) int   { return compareLE(i[:], o[:], true) }
func (i I256) Compare(o I256) int   { return compareLE(i[:], o[:], true) }
func (i I512) Compare(o I512) int   { return compareLE(i[:], o[:], true) }
func (i I1024) Compare(o I1024) int { return compareLE(i[:], o[:], true) }
