package strict

import (
	"encoding/binary"
	"fmt"
	"io"
	"slices"
)

// Decoder is implemented by pointers to values with a strict encoding.
type Decoder interface {
	StrictDecode(r *Reader) error
}

// Reader decodes values from a byte source with a size ceiling. It
// mirrors Writer: every struct, tuple and union decoder opens a scope
// which must consume each declared field exactly once. A Reader which
// returned an error must be discarded.
type Reader struct {
	src    *limitReader
	scopes []fmt.Stringer
	buf    [8]byte
}

// NewReader returns a Reader refusing to consume more than limit bytes
// of r.
func NewReader(r io.Reader, limit int) *Reader {
	return &Reader{src: &limitReader{r: r, limit: limit}}
}

// Count reports the number of bytes consumed so far.
func (r *Reader) Count() int { return r.src.count }

// Decode reads v and checks that it closed every scope it opened.
func (r *Reader) Decode(v Decoder) error { return r.decodeValue(v) }

func (r *Reader) decodeValue(v Decoder) error {
	depth := len(r.scopes)
	if err := v.StrictDecode(r); err != nil {
		r.scopes = r.scopes[:depth]
		return err
	}
	if len(r.scopes) != depth {
		panic(fmt.Sprintf("strict: %T left %s open", v, r.scopes[len(r.scopes)-1]))
	}
	return nil
}

func (r *Reader) push(s fmt.Stringer) { r.scopes = append(r.scopes, s) }

func (r *Reader) pop(s fmt.Stringer) {
	r.assertTop(s)
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Reader) assertTop(s fmt.Stringer) {
	if n := len(r.scopes); n == 0 || r.scopes[n-1] != s {
		panic(fmt.Sprintf("strict: read from %s while it is not the innermost open scope", s))
	}
}

func (r *Reader) readPrimitive(le []byte) error { return r.src.readFull(le) }

func (r *Reader) readByte() (byte, error) {
	if err := r.src.readFull(r.buf[:1]); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

// readBytes reads n raw bytes, checking the session budget before it
// allocates.
func (r *Reader) readBytes(n int) ([]byte, error) {
	if err := r.src.reserve(n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := r.src.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// readLen reads the length prefix of a collection confined by s and
// checks it against s before any element is read.
func (r *Reader) readLen(s Sizing) (int, error) {
	width := s.prefixWidth()
	var b [4]byte
	if err := r.src.readFull(b[:width]); err != nil {
		return 0, err
	}
	n := binary.LittleEndian.Uint32(b[:])
	if err := s.Check(uint64(n)); err != nil {
		return 0, err
	}
	return int(n), nil
}

func asDecoder(p any) Decoder {
	d, ok := p.(Decoder)
	if !ok {
		panic(fmt.Sprintf("strict: %T does not implement Decoder", p))
	}
	return d
}

// StructReader reads the fields of a struct in declared order.
type StructReader struct {
	r      *Reader
	owner  string
	fields []FieldName
	next   int
	err    error
	done   bool
}

func (r *Reader) ReadStruct(d *Descriptor) *StructReader {
	d.mustKind(KindStruct)
	return r.openStruct(d.String(), d.fields)
}

func (r *Reader) openStruct(owner string, fields []FieldName) *StructReader {
	s := &StructReader{r: r, owner: owner, fields: fields}
	r.push(s)
	return s
}

func (s *StructReader) String() string { return "struct " + s.owner }

// Field decodes the next declared field into dst. It panics when name
// is undeclared, already read or out of order. After a failed field
// the remaining fields are skipped and Complete reports the error.
func (s *StructReader) Field(name string, dst Decoder) *StructReader {
	s.r.assertTop(s)
	idx := slices.IndexFunc(s.fields, func(f FieldName) bool { return f.s == name })
	switch {
	case idx < 0:
		panic(fmt.Sprintf("strict: field %s is not declared by %s", name, s.owner))
	case idx < s.next:
		panic(fmt.Sprintf("strict: field %s of %s is read twice", name, s.owner))
	case idx > s.next:
		panic(fmt.Sprintf("strict: field %s of %s is read before %s", name, s.owner, s.fields[s.next]))
	}
	s.next++
	if s.err == nil {
		s.err = s.r.decodeValue(dst)
	}
	return s
}

// Complete closes the scope. It panics if a declared field was never
// read.
func (s *StructReader) Complete() error {
	if s.done {
		return s.err
	}
	s.done = true
	s.r.pop(s)
	if s.err == nil && s.next < len(s.fields) {
		panic(fmt.Sprintf("strict: %s completed without field %s", s, s.fields[s.next]))
	}
	return s.err
}

// TupleReader reads positional fields.
type TupleReader struct {
	r     *Reader
	owner string
	count int
	next  int
	err   error
	done  bool
}

func (r *Reader) ReadTuple(d *Descriptor) *TupleReader {
	d.mustKind(KindTuple)
	return r.openTuple(d.String(), d.count)
}

// ReadNewtype reads a single field tuple into dst.
func (r *Reader) ReadNewtype(d *Descriptor, dst Decoder) error {
	if d.count != 1 {
		panic(fmt.Sprintf("strict: %s has %d fields and is not a newtype", d, d.count))
	}
	return r.ReadTuple(d).Field(dst).Complete()
}

func (r *Reader) openTuple(owner string, count int) *TupleReader {
	t := &TupleReader{r: r, owner: owner, count: count}
	r.push(t)
	return t
}

func (t *TupleReader) String() string { return "tuple " + t.owner }

func (t *TupleReader) Field(dst Decoder) *TupleReader {
	t.r.assertTop(t)
	if t.next >= t.count {
		panic(fmt.Sprintf("strict: %s has only %d fields", t, t.count))
	}
	t.next++
	if t.err == nil {
		t.err = t.r.decodeValue(dst)
	}
	return t
}

func (t *TupleReader) Complete() error {
	if t.done {
		return t.err
	}
	t.done = true
	t.r.pop(t)
	if t.err == nil && t.next < t.count {
		panic(fmt.Sprintf("strict: %s completed after %d of %d fields", t, t.next, t.count))
	}
	return t.err
}

// UnionReader reads the payload of the variant named by a union tag.
type UnionReader struct {
	r       *Reader
	desc    *Descriptor
	variant Variant
	read    bool
}

// ReadUnion reads a union tag and hands the matching variant to fn,
// which must read its payload through ur exactly once. A tag outside
// of the descriptor's table yields a *UnionTagError.
func (r *Reader) ReadUnion(d *Descriptor, fn func(v Variant, ur *UnionReader) error) error {
	d.mustKind(KindUnion)
	tag, err := r.readByte()
	if err != nil {
		return err
	}
	v, ok := d.VariantByOrd(tag)
	if !ok {
		return &UnionTagError{Type: d.TypeName(), Tag: tag}
	}
	ur := &UnionReader{r: r, desc: d, variant: v}
	depth := len(r.scopes)
	r.push(ur)
	if err := fn(v, ur); err != nil {
		r.scopes = r.scopes[:depth]
		return err
	}
	r.pop(ur)
	if !ur.read {
		panic(fmt.Sprintf("strict: payload of variant %s was not read by %s", v.Name, ur))
	}
	return nil
}

func (u *UnionReader) String() string { return "union " + u.desc.String() }

func (u *UnionReader) Variant() Variant { return u.variant }

func (u *UnionReader) begin() {
	u.r.assertTop(u)
	if u.read {
		panic(fmt.Sprintf("strict: payload of variant %s of %s is read twice", u.variant.Name, u.desc))
	}
	u.read = true
}

func (u *UnionReader) owner() string { return u.desc.String() + "." + u.variant.Name.s }

// Unit accepts a variant without payload.
func (u *UnionReader) Unit() error {
	u.begin()
	return nil
}

func (u *UnionReader) Newtype(dst Decoder) error {
	return u.Tuple(1, func(t *TupleReader) { t.Field(dst) })
}

// Tuple reads a payload of count positional fields through fn.
func (u *UnionReader) Tuple(count int, fn func(t *TupleReader)) error {
	u.begin()
	t := u.r.openTuple(u.owner(), count)
	fn(t)
	return t.Complete()
}

// Struct reads a payload with the given fields through fn.
func (u *UnionReader) Struct(fields []string, fn func(s *StructReader)) error {
	u.begin()
	names := make([]FieldName, len(fields))
	for i, f := range fields {
		names[i] = MustFieldName(f)
	}
	s := u.r.openStruct(u.owner(), names)
	fn(s)
	return s.Complete()
}

// ReadEnum reads the ordinal of a data-less variant. A byte outside of
// the descriptor's table yields an *EnumTagError.
func (r *Reader) ReadEnum(d *Descriptor) (uint8, error) {
	d.mustKind(KindEnum)
	tag, err := r.readByte()
	if err != nil {
		return 0, err
	}
	if _, ok := d.VariantByOrd(tag); !ok {
		return 0, &EnumTagError{Type: d.TypeName(), Tag: tag}
	}
	return tag, nil
}
