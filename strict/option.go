package strict

import (
	"bytes"
	"errors"
	"fmt"
	"math"
)

// optionType is the unnamed union StdLib none=0 | some=1.
var optionType = NewUnion(LibStd, "", Seq("none", "some")...)

// Option holds either nothing or one value of T.
type Option[T Encoder] struct {
	v  T
	ok bool
}

func Some[T Encoder](v T) Option[T] { return Option[T]{v: v, ok: true} }
func None[T Encoder]() Option[T]    { return Option[T]{} }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.v, o.ok }
func (o Option[T]) IsSome() bool   { return o.ok }

func (o Option[T]) StrictEncode(w *Writer) error {
	u := w.WriteUnion(optionType).
		DefineUnit("none").
		DefineNewtype("some", dumbOf[T]()).
		Complete()
	if o.ok {
		u.WriteNewtype("some", o.v)
	} else {
		u.WriteUnit("none")
	}
	return u.Complete()
}

func (o *Option[T]) StrictDecode(r *Reader) error {
	return r.ReadUnion(optionType, func(v Variant, u *UnionReader) error {
		if v.Ord == 0 {
			*o = Option[T]{}
			return u.Unit()
		}
		var x T
		if err := u.Newtype(asDecoder(&x)); err != nil {
			return err
		}
		*o = Some(x)
		return nil
	})
}

func (Option[T]) StrictDumb() Encoder { return Option[T]{} }

// Compare orders None before every Some. Payloads are ordered by
// their own Compare method when T has one and by their strict
// encodings otherwise.
func (o Option[T]) Compare(other Option[T]) int {
	switch {
	case !o.ok && !other.ok:
		return 0
	case !o.ok:
		return -1
	case !other.ok:
		return 1
	}
	if c, ok := any(o.v).(interface{ Compare(T) int }); ok {
		return c.Compare(other.v)
	}
	return compareEncoded(o.v, other.v)
}

func compareEncoded(a, b Encoder) int {
	ea, errA := Serialize(a, math.MaxInt)
	eb, errB := Serialize(b, math.MaxInt)
	if errA != nil || errB != nil {
		panic(fmt.Sprintf("strict: comparing values which fail to encode: %v", errors.Join(errA, errB)))
	}
	return bytes.Compare(ea, eb)
}
