package strict

const testLib = "TestLib"

var (
	wordType   = NewTuple(testLib, "Word", 1)
	blobType   = NewStruct(testLib, "Blob", "data")
	noteType   = NewStruct(testLib, "Note", "data")
	pointType  = NewStruct(testLib, "Point", "x", "y")
	sampleType = NewUnion(testLib, "Sample", V(0, "first"), V(1, "second"), V(2, "third"), V(3, "fourth"), V(4, "fifth"))
	treeType   = NewUnion(testLib, "Tree", V(0, "leaf"), V(1, "node"))
	colorType  = NewEnum(testLib, "Color", V(0, "red"), V(1, "green"), V(7, "blue"))
)

// word is a newtype around U16.
type word struct{ v U16 }

func (w word) StrictEncode(sw *Writer) error { return sw.WriteNewtype(wordType, w.v) }
func (w *word) StrictDecode(r *Reader) error { return r.ReadNewtype(wordType, &w.v) }

type blob struct{ data Bytes[Small] }

func (b blob) StrictEncode(w *Writer) error {
	return w.WriteStruct(blobType).Field("data", b.data).Complete()
}

func (b *blob) StrictDecode(r *Reader) error {
	return r.ReadStruct(blobType).Field("data", &b.data).Complete()
}

// note keeps ephemeral off the wire; decoding resets it to false.
type note struct {
	data      String[Small]
	ephemeral bool
}

func (n note) StrictEncode(w *Writer) error {
	return w.WriteStruct(noteType).Field("data", n.data).Complete()
}

func (n *note) StrictDecode(r *Reader) error {
	n.ephemeral = false
	return r.ReadStruct(noteType).Field("data", &n.data).Complete()
}

type point struct{ x, y I16 }

func (p point) StrictEncode(w *Writer) error {
	return w.WriteStruct(pointType).Field("x", p.x).Field("y", p.y).Complete()
}

func (p *point) StrictDecode(r *Reader) error {
	return r.ReadStruct(pointType).Field("x", &p.x).Field("y", &p.y).Complete()
}

func (p point) Compare(o point) int {
	if c := p.x.Compare(o.x); c != 0 {
		return c
	}
	return p.y.Compare(o.y)
}

// sample is a five variant union: first(U8), second(U16, U8), third,
// fourth{word U16, flag Bool} and fifth.
type sample struct {
	kind uint8
	b    U8
	w    U16
	flag Bool
}

func (s sample) StrictEncode(w *Writer) error {
	u := w.WriteUnion(sampleType).
		DefineNewtype("first", U8(0)).
		DefineTuple("second", U16(0), U8(0)).
		DefineUnit("third").
		DefineStruct("fourth", F("word", U16(0)), F("flag", Bool(false))).
		DefineUnit("fifth").
		Complete()
	switch s.kind {
	case 0:
		u.WriteNewtype("first", s.b)
	case 1:
		u.WriteTuple("second", func(t *TupleWriter) { t.Field(s.w).Field(s.b) })
	case 2:
		u.WriteUnit("third")
	case 3:
		u.WriteStruct("fourth", func(st *StructWriter) { st.Field("word", s.w).Field("flag", s.flag) })
	default:
		u.WriteUnit("fifth")
	}
	return u.Complete()
}

func (s *sample) StrictDecode(r *Reader) error {
	return r.ReadUnion(sampleType, func(v Variant, u *UnionReader) error {
		*s = sample{kind: v.Ord}
		switch v.Ord {
		case 0:
			return u.Newtype(&s.b)
		case 1:
			return u.Tuple(2, func(t *TupleReader) { t.Field(&s.w).Field(&s.b) })
		case 3:
			return u.Struct([]string{"word", "flag"}, func(st *StructReader) {
				st.Field("word", &s.w).Field("flag", &s.flag)
			})
		default:
			return u.Unit()
		}
	})
}

// tree is recursive through the list held by its node variant.
type tree struct {
	leaf     U8
	children List[tree, Tiny]
	node     bool
}

func (t tree) StrictEncode(w *Writer) error {
	u := w.WriteUnion(treeType).
		DefineNewtype("leaf", U8(0)).
		DefineNewtype("node", List[tree, Tiny]{}).
		Complete()
	if t.node {
		u.WriteNewtype("node", t.children)
	} else {
		u.WriteNewtype("leaf", t.leaf)
	}
	return u.Complete()
}

func (t *tree) StrictDecode(r *Reader) error {
	return r.ReadUnion(treeType, func(v Variant, u *UnionReader) error {
		*t = tree{node: v.Ord == 1}
		if t.node {
			return u.Newtype(&t.children)
		}
		return u.Newtype(&t.leaf)
	})
}

type color uint8

func (c color) StrictEncode(w *Writer) error { return w.WriteEnum(colorType, uint8(c)) }

func (c *color) StrictDecode(r *Reader) error {
	ord, err := r.ReadEnum(colorType)
	*c = color(ord)
	return err
}
