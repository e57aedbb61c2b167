package strict

import (
	"fmt"
	"math"
)

const (
	MaxU8  = math.MaxUint8
	MaxU16 = math.MaxUint16
	MaxU24 = 1<<24 - 1
	MaxU32 = math.MaxUint32
)

// Sizing is an inclusive [Min, Max] element count bound.
type Sizing struct {
	Min uint64 `cbor:"min" yaml:"min"`
	Max uint64 `cbor:"max" yaml:"max"`
}

var (
	SizingOne         = Sizing{Min: 1, Max: 1}
	SizingU8          = Sizing{Min: 0, Max: MaxU8}
	SizingU16         = Sizing{Min: 0, Max: MaxU16}
	SizingU24         = Sizing{Min: 0, Max: MaxU24}
	SizingU32         = Sizing{Min: 0, Max: MaxU32}
	SizingU8NonEmpty  = Sizing{Min: 1, Max: MaxU8}
	SizingU16NonEmpty = Sizing{Min: 1, Max: MaxU16}
)

var sizingType = NewStruct(LibStrictTypes, "Sizing", "min", "max")

func NewSizing(lo, hi uint64) Sizing {
	if lo > hi {
		panic(fmt.Sprintf("strict: sizing min %d exceeds max %d", lo, hi))
	}
	return Sizing{Min: lo, Max: hi}
}

// FixedSizing is the sizing of a collection with exactly n elements.
func FixedSizing(n uint64) Sizing { return Sizing{Min: n, Max: n} }

func (s Sizing) Contains(n uint64) bool { return s.Min <= n && n <= s.Max }

// Check returns a *ConfinementError when n lies outside of s.
func (s Sizing) Check(n uint64) error {
	if !s.Contains(n) {
		return &ConfinementError{Len: n, Sizing: s}
	}
	return nil
}

// prefixWidth is the byte width of the length prefix for collections
// confined by s.
func (s Sizing) prefixWidth() int {
	switch {
	case s.Max <= MaxU8:
		return 1
	case s.Max <= MaxU16:
		return 2
	case s.Max <= MaxU24:
		return 3
	case s.Max <= MaxU32:
		return 4
	}
	panic(fmt.Sprintf("strict: sizing max %#x does not fit a u32 length prefix", s.Max))
}

func (s Sizing) String() string {
	switch {
	case s.Min == 0 && s.Max == MaxU16:
		return ""
	case s.Min == s.Max:
		return fmt.Sprintf(" ^ %d", s.Min)
	case s.Min == 0:
		return fmt.Sprintf(" ^ ..%#x", s.Max)
	case s.Max == MaxU16:
		return fmt.Sprintf(" ^ %d..", s.Min)
	default:
		return fmt.Sprintf(" ^ %d..%#x", s.Min, s.Max)
	}
}

func (s Sizing) StrictEncode(w *Writer) error {
	return w.WriteStruct(sizingType).
		Field("min", U64(s.Min)).
		Field("max", U64(s.Max)).
		Complete()
}

func (s *Sizing) StrictDecode(r *Reader) error {
	var lo, hi U64
	if err := r.ReadStruct(sizingType).
		Field("min", &lo).
		Field("max", &hi).
		Complete(); err != nil {
		return err
	}
	if lo > hi {
		return &DataIntegrityError{Reason: fmt.Sprintf("sizing min %d exceeds max %d", lo, hi)}
	}
	*s = Sizing{Min: uint64(lo), Max: uint64(hi)}
	return nil
}

// Bound supplies the static sizing of a confined type. Implementations
// are empty marker structs used as type parameters.
type Bound interface {
	Sizing() Sizing
}

type (
	// Tiny confines to 0..=0xFF elements.
	Tiny struct{}
	// Small confines to 0..=0xFFFF elements.
	Small struct{}
	// Medium confines to 0..=0xFFFFFF elements.
	Medium struct{}
	// Large confines to 0..=0xFFFFFFFF elements.
	Large struct{}
	// NonEmptyTiny confines to 1..=0xFF elements.
	NonEmptyTiny struct{}
	// NonEmptySmall confines to 1..=0xFFFF elements.
	NonEmptySmall struct{}
)

func (Tiny) Sizing() Sizing          { return SizingU8 }
func (Small) Sizing() Sizing         { return SizingU16 }
func (Medium) Sizing() Sizing        { return SizingU24 }
func (Large) Sizing() Sizing         { return SizingU32 }
func (NonEmptyTiny) Sizing() Sizing  { return SizingU8NonEmpty }
func (NonEmptySmall) Sizing() Sizing { return SizingU16NonEmpty }

func sizingOf[B Bound]() Sizing {
	var b B
	return b.Sizing()
}

type (
	// LenN fixes an Array to N elements.
	Len2  struct{}
	Len3  struct{}
	Len4  struct{}
	Len8  struct{}
	Len16 struct{}
	Len32 struct{}
)

func (Len2) Sizing() Sizing  { return FixedSizing(2) }
func (Len3) Sizing() Sizing  { return FixedSizing(3) }
func (Len4) Sizing() Sizing  { return FixedSizing(4) }
func (Len8) Sizing() Sizing  { return FixedSizing(8) }
func (Len16) Sizing() Sizing { return FixedSizing(16) }
func (Len32) Sizing() Sizing { return FixedSizing(32) }
