package strict

var (
	tuple2Type = NewTuple(LibStd, "", 2)
	tuple3Type = NewTuple(LibStd, "", 3)
)

// Tuple2 is an unnamed pair.
type Tuple2[A, B Encoder] struct {
	First  A
	Second B
}

func Pair[A, B Encoder](a A, b B) Tuple2[A, B] { return Tuple2[A, B]{First: a, Second: b} }

func (t Tuple2[A, B]) StrictEncode(w *Writer) error {
	return w.WriteTuple(tuple2Type).Field(t.First).Field(t.Second).Complete()
}

func (t *Tuple2[A, B]) StrictDecode(r *Reader) error {
	return r.ReadTuple(tuple2Type).
		Field(asDecoder(&t.First)).
		Field(asDecoder(&t.Second)).
		Complete()
}

func (Tuple2[A, B]) StrictDumb() Encoder {
	return Tuple2[A, B]{First: dumbValue[A](), Second: dumbValue[B]()}
}

// Tuple3 is an unnamed triple.
type Tuple3[A, B, C Encoder] struct {
	First  A
	Second B
	Third  C
}

func Triple[A, B, C Encoder](a A, b B, c C) Tuple3[A, B, C] {
	return Tuple3[A, B, C]{First: a, Second: b, Third: c}
}

func (t Tuple3[A, B, C]) StrictEncode(w *Writer) error {
	return w.WriteTuple(tuple3Type).Field(t.First).Field(t.Second).Field(t.Third).Complete()
}

func (t *Tuple3[A, B, C]) StrictDecode(r *Reader) error {
	return r.ReadTuple(tuple3Type).
		Field(asDecoder(&t.First)).
		Field(asDecoder(&t.Second)).
		Field(asDecoder(&t.Third)).
		Complete()
}

func (Tuple3[A, B, C]) StrictDumb() Encoder {
	return Tuple3[A, B, C]{First: dumbValue[A](), Second: dumbValue[B](), Third: dumbValue[C]()}
}
