package strict

import (
	"encoding/binary"
	"fmt"
	"io"
	"slices"
)

// Encoder is implemented by every value with a strict encoding.
type Encoder interface {
	StrictEncode(w *Writer) error
}

// Writer encodes values into a byte sink with a size ceiling. Struct,
// tuple and union encoders open scopes on the writer's scope stack;
// only the innermost open scope accepts writes. A Writer which
// returned an error must be discarded.
type Writer struct {
	sink   *limitWriter
	scopes []fmt.Stringer
	rec    *recorder
	buf    [8]byte
}

// NewWriter returns a Writer refusing to write more than limit bytes
// to w.
func NewWriter(w io.Writer, limit int) *Writer {
	return &Writer{sink: &limitWriter{w: w, limit: limit}}
}

// Count reports the number of bytes written so far.
func (w *Writer) Count() int { return w.sink.count }

// Encode writes v and checks that it closed every scope it opened.
func (w *Writer) Encode(v Encoder) error { return w.encodeValue(v) }

func (w *Writer) encodeValue(v Encoder) error {
	depth := len(w.scopes)
	if err := v.StrictEncode(w); err != nil {
		w.scopes = w.scopes[:depth]
		return err
	}
	if len(w.scopes) != depth {
		panic(fmt.Sprintf("strict: %T left %s open", v, w.scopes[len(w.scopes)-1]))
	}
	return nil
}

func (w *Writer) push(s fmt.Stringer) { w.scopes = append(w.scopes, s) }

func (w *Writer) pop(s fmt.Stringer) {
	w.assertTop(s)
	w.scopes = w.scopes[:len(w.scopes)-1]
}

func (w *Writer) assertTop(s fmt.Stringer) {
	if n := len(w.scopes); n == 0 || w.scopes[n-1] != s {
		panic(fmt.Sprintf("strict: write to %s while it is not the innermost open scope", s))
	}
}

func (w *Writer) writeRaw(p []byte) error {
	_, err := w.sink.Write(p)
	return err
}

func (w *Writer) writeByte(b byte) error {
	w.buf[0] = b
	return w.writeRaw(w.buf[:1])
}

// writePrimitive writes the little-endian bytes of a fixed width value
// tagged p.
func (w *Writer) writePrimitive(p Primitive, le []byte) error {
	if w.rec != nil {
		w.rec.leaf(&TypeNode{Kind: NodePrimitive, Prim: p.String(), Code: uint8(p)})
	}
	return w.writeRaw(le)
}

// writeLen writes the length prefix of a collection confined by s.
func (w *Writer) writeLen(n int, s Sizing) error {
	if err := s.Check(uint64(n)); err != nil {
		return err
	}
	width := s.prefixWidth()
	binary.LittleEndian.PutUint32(w.buf[:4], uint32(n))
	return w.writeRaw(w.buf[:width])
}

func typeNode(kind NodeKind, d *Descriptor) *TypeNode {
	return &TypeNode{Kind: kind, Lib: d.lib.String(), Name: d.name.String()}
}

// StructWriter writes the fields of a struct in declared order.
type StructWriter struct {
	w      *Writer
	owner  string
	fields []FieldName
	next   int
	err    error
	rec    recState
	done   bool
}

func (w *Writer) WriteStruct(d *Descriptor) *StructWriter {
	d.mustKind(KindStruct)
	return w.openStruct(d.String(), d.fields, typeNode(NodeStruct, d))
}

func (w *Writer) openStruct(owner string, fields []FieldName, node *TypeNode) *StructWriter {
	s := &StructWriter{w: w, owner: owner, fields: fields}
	s.rec = w.recordOpen(node)
	w.push(s)
	return s
}

func (s *StructWriter) String() string { return "struct " + s.owner }

// Field encodes the value of the next declared field. It panics when
// name is undeclared, already written or out of order. After a failed
// field the remaining fields are skipped and Complete reports the
// error.
func (s *StructWriter) Field(name string, v Encoder) *StructWriter {
	s.w.assertTop(s)
	idx := slices.IndexFunc(s.fields, func(f FieldName) bool { return f.s == name })
	switch {
	case idx < 0:
		panic(fmt.Sprintf("strict: field %s is not declared by %s", name, s.owner))
	case idx < s.next:
		panic(fmt.Sprintf("strict: field %s of %s is written twice", name, s.owner))
	case idx > s.next:
		panic(fmt.Sprintf("strict: field %s of %s is written before %s", name, s.owner, s.fields[s.next]))
	}
	s.next++
	if s.err != nil {
		return s
	}
	s.w.recordField(name)
	s.err = s.w.encodeValue(v)
	return s
}

// Complete closes the scope. It panics if a declared field was never
// written.
func (s *StructWriter) Complete() error {
	if s.done {
		return s.err
	}
	s.done = true
	s.w.pop(s)
	s.w.recordClose(s.rec)
	if s.err == nil && s.next < len(s.fields) {
		panic(fmt.Sprintf("strict: %s completed without field %s", s, s.fields[s.next]))
	}
	return s.err
}

// TupleWriter writes positional fields.
type TupleWriter struct {
	w     *Writer
	owner string
	count int
	next  int
	err   error
	rec   recState
	done  bool
}

func (w *Writer) WriteTuple(d *Descriptor) *TupleWriter {
	d.mustKind(KindTuple)
	return w.openTuple(d.String(), d.count, typeNode(NodeTuple, d))
}

// WriteNewtype writes a single field tuple.
func (w *Writer) WriteNewtype(d *Descriptor, v Encoder) error {
	if d.count != 1 {
		panic(fmt.Sprintf("strict: %s has %d fields and is not a newtype", d, d.count))
	}
	return w.WriteTuple(d).Field(v).Complete()
}

func (w *Writer) openTuple(owner string, count int, node *TypeNode) *TupleWriter {
	t := &TupleWriter{w: w, owner: owner, count: count}
	t.rec = w.recordOpen(node)
	w.push(t)
	return t
}

func (t *TupleWriter) String() string { return "tuple " + t.owner }

func (t *TupleWriter) Field(v Encoder) *TupleWriter {
	t.w.assertTop(t)
	if t.next >= t.count {
		panic(fmt.Sprintf("strict: %s has only %d fields", t, t.count))
	}
	t.next++
	if t.err != nil {
		return t
	}
	t.err = t.w.encodeValue(v)
	return t
}

func (t *TupleWriter) Complete() error {
	if t.done {
		return t.err
	}
	t.done = true
	t.w.pop(t)
	t.w.recordClose(t.rec)
	if t.err == nil && t.next < t.count {
		panic(fmt.Sprintf("strict: %s completed after %d of %d fields", t, t.next, t.count))
	}
	return t.err
}

type variantShape uint8

const (
	shapeUnit variantShape = iota + 1
	shapeTuple
	shapeStruct
)

func (s variantShape) String() string {
	switch s {
	case shapeUnit:
		return "unit"
	case shapeTuple:
		return "tuple"
	case shapeStruct:
		return "struct"
	default:
		return "undefined"
	}
}

type variantDef struct {
	variant Variant
	shape   variantShape
	count   int
	fields  []FieldName
}

// Field names a struct variant field together with a dumb value of its
// type.
type Field struct {
	Name string
	Dumb Encoder
}

func F(name string, dumb Encoder) Field { return Field{Name: name, Dumb: dumb} }

// UnionDefiner is the first phase of writing a union: every variant of
// the descriptor is defined as unit, tuple or struct shaped before one
// of them is written.
type UnionDefiner struct {
	w    *Writer
	desc *Descriptor
	defs []variantDef
	node *TypeNode
	rec  recState
}

func (w *Writer) WriteUnion(d *Descriptor) *UnionDefiner {
	d.mustKind(KindUnion)
	u := &UnionDefiner{w: w, desc: d, defs: make([]variantDef, len(d.variants))}
	for i, v := range d.variants {
		u.defs[i].variant = v
	}
	if w.rec != nil {
		u.node = typeNode(NodeUnion, d)
		u.rec = w.rec.open(u.node)
	}
	w.push(u)
	return u
}

func (u *UnionDefiner) String() string { return "union " + u.desc.String() }

func (u *UnionDefiner) define(name string, shape variantShape, fields []FieldName, dumbs []Encoder) *UnionDefiner {
	u.w.assertTop(u)
	def := u.lookup(name)
	if def.shape != 0 {
		panic(fmt.Sprintf("strict: variant %s of %s is defined twice", name, u.desc))
	}
	def.shape = shape
	def.count = len(dumbs)
	def.fields = fields
	if u.rec == recPushed {
		vn := VariantNode{Ord: def.variant.Ord, Name: name, Shape: shape.String()}
		for i, dumb := range dumbs {
			f := FieldNode{Type: u.w.describe(dumb)}
			if fields != nil {
				f.Name = fields[i].s
			}
			vn.Fields = append(vn.Fields, f)
		}
		u.node.Variants = append(u.node.Variants, vn)
	}
	return u
}

func (u *UnionDefiner) lookup(name string) *variantDef {
	for i := range u.defs {
		if u.defs[i].variant.Name.s == name {
			return &u.defs[i]
		}
	}
	panic(fmt.Sprintf("strict: variant %s is not declared by %s", name, u.desc))
}

func (u *UnionDefiner) DefineUnit(name string) *UnionDefiner {
	return u.define(name, shapeUnit, nil, nil)
}

// DefineNewtype defines a tuple variant holding a single value of the
// type of dumb.
func (u *UnionDefiner) DefineNewtype(name string, dumb Encoder) *UnionDefiner {
	return u.define(name, shapeTuple, nil, []Encoder{dumb})
}

func (u *UnionDefiner) DefineTuple(name string, dumbs ...Encoder) *UnionDefiner {
	if len(dumbs) == 0 {
		panic(fmt.Sprintf("strict: tuple variant %s of %s has no fields", name, u.desc))
	}
	return u.define(name, shapeTuple, nil, dumbs)
}

func (u *UnionDefiner) DefineStruct(name string, fields ...Field) *UnionDefiner {
	if len(fields) == 0 {
		panic(fmt.Sprintf("strict: struct variant %s of %s has no fields", name, u.desc))
	}
	names := make([]FieldName, len(fields))
	dumbs := make([]Encoder, len(fields))
	for i, f := range fields {
		names[i] = MustFieldName(f.Name)
		if slices.Contains(names[:i], names[i]) {
			panic(fmt.Sprintf("strict: struct variant %s of %s repeats field %s", name, u.desc, f.Name))
		}
		dumbs[i] = f.Dumb
	}
	return u.define(name, shapeStruct, names, dumbs)
}

// Complete ends the definition phase. It panics if a declared variant
// was left undefined.
func (u *UnionDefiner) Complete() *UnionWriter {
	u.w.assertTop(u)
	for _, def := range u.defs {
		if def.shape == 0 {
			panic(fmt.Sprintf("strict: %s completed without defining variant %s", u, def.variant.Name))
		}
	}
	if u.node != nil {
		sortVariants(u.node.Variants)
	}
	u.w.recordClose(u.rec)
	u.w.mute()
	uw := &UnionWriter{w: u.w, desc: u.desc, defs: u.defs, chosen: -1}
	u.w.scopes[len(u.w.scopes)-1] = uw
	return uw
}

// UnionWriter writes exactly one defined variant.
type UnionWriter struct {
	w      *Writer
	desc   *Descriptor
	defs   []variantDef
	chosen int
	err    error
	done   bool
}

func (u *UnionWriter) String() string { return "union " + u.desc.String() }

func (u *UnionWriter) begin(name string, shape variantShape) *variantDef {
	u.w.assertTop(u)
	idx := -1
	for i := range u.defs {
		if u.defs[i].variant.Name.s == name {
			idx = i
			break
		}
	}
	switch {
	case idx < 0:
		panic(fmt.Sprintf("strict: variant %s is not declared by %s", name, u.desc))
	case u.defs[idx].shape != shape:
		panic(fmt.Sprintf("strict: variant %s of %s is defined as %s but written as %s", name, u.desc, u.defs[idx].shape, shape))
	case u.chosen >= 0:
		panic(fmt.Sprintf("strict: %s writes variant %s after %s", u, name, u.defs[u.chosen].variant.Name))
	}
	u.chosen = idx
	return &u.defs[idx]
}

func (u *UnionWriter) WriteUnit(name string) *UnionWriter {
	def := u.begin(name, shapeUnit)
	u.err = u.w.writeByte(def.variant.Ord)
	return u
}

func (u *UnionWriter) WriteNewtype(name string, v Encoder) *UnionWriter {
	return u.WriteTuple(name, func(t *TupleWriter) { t.Field(v) })
}

// WriteTuple writes the ordinal of a tuple variant and passes the
// payload scope to fn. The scope is completed after fn returns.
func (u *UnionWriter) WriteTuple(name string, fn func(t *TupleWriter)) *UnionWriter {
	def := u.begin(name, shapeTuple)
	if u.err = u.w.writeByte(def.variant.Ord); u.err != nil {
		return u
	}
	t := u.w.openTuple(u.desc.String()+"."+name, def.count, nil)
	fn(t)
	u.err = t.Complete()
	return u
}

func (u *UnionWriter) WriteStruct(name string, fn func(s *StructWriter)) *UnionWriter {
	def := u.begin(name, shapeStruct)
	if u.err = u.w.writeByte(def.variant.Ord); u.err != nil {
		return u
	}
	s := u.w.openStruct(u.desc.String()+"."+name, def.fields, nil)
	fn(s)
	u.err = s.Complete()
	return u
}

// Complete closes the union scope. It panics if no variant was written.
func (u *UnionWriter) Complete() error {
	if u.done {
		return u.err
	}
	u.done = true
	u.w.pop(u)
	u.w.unmute()
	if u.chosen < 0 {
		panic(fmt.Sprintf("strict: %s completed without writing a variant", u))
	}
	return u.err
}

// WriteEnum writes the ordinal of a data-less variant. It panics if ord
// is not in the descriptor's table.
func (w *Writer) WriteEnum(d *Descriptor, ord uint8) error {
	d.mustKind(KindEnum)
	if _, ok := d.VariantByOrd(ord); !ok {
		panic(fmt.Sprintf("strict: %d is not an ordinal of enum %s", ord, d))
	}
	if w.describing() {
		n := typeNode(NodeEnum, d)
		for _, v := range d.variants {
			n.Variants = append(n.Variants, VariantNode{Ord: v.Ord, Name: v.Name.s, Shape: shapeUnit.String()})
		}
		sortVariants(n.Variants)
		w.rec.leaf(n)
	}
	return w.writeByte(ord)
}
