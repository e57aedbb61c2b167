package strict

import "strings"

// IdentMaxLen is the longest identifier accepted by any name type.
const IdentMaxLen = 100

const (
	LibStd         = "StdLib"
	LibStrictTypes = "StrictTypes"
)

var identSizing = Sizing{Min: 1, Max: IdentMaxLen}

func validateIdent(s string, first, rest *CharSet) error {
	if s == "" {
		return ErrEmptyIdent
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 0x80:
			return &IdentError{Kind: IdentNonASCII, Input: s, Pos: i, Char: ch}
		case i == 0 && !first.Contains(ch):
			return &IdentError{Kind: IdentNonAlphabetic, Input: s, Pos: i, Char: ch}
		case i > 0 && !rest.Contains(ch):
			return &IdentError{Kind: IdentInvalidChar, Input: s, Pos: i, Char: ch}
		}
	}
	return identSizing.Check(uint64(len(s)))
}

func writeIdent(w *Writer, s string, first, rest *CharSet) error {
	if s == "" {
		return ErrEmptyIdent
	}
	w.recordLeaf(&TypeNode{Kind: NodeRString, First: first.Name(), Rest: rest.Name(), Sizing: &identSizing})
	if err := w.writeLen(len(s), identSizing); err != nil {
		return err
	}
	return w.writeRaw([]byte(s))
}

func readIdent(r *Reader, first, rest *CharSet) (string, error) {
	n, err := r.readLen(identSizing)
	if err != nil {
		return "", err
	}
	buf, err := r.readBytes(n)
	if err != nil {
		return "", err
	}
	s := string(buf)
	if err := validateIdent(s, first, rest); err != nil {
		return "", err
	}
	return s, nil
}

// Ident is a name made of [A-Za-z_][A-Za-z0-9_]*, 1 to 100 bytes long.
// The zero Ident is invalid and refuses to encode.
type Ident struct{ s string }

func NewIdent(s string) (Ident, error) {
	if err := validateIdent(s, alphaLodash, AlphaNumLodash); err != nil {
		return Ident{}, err
	}
	return Ident{s: s}, nil
}

func MustIdent(s string) Ident {
	id, err := NewIdent(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (i Ident) String() string      { return i.s }
func (i Ident) IsZero() bool        { return i.s == "" }
func (i Ident) Compare(o Ident) int { return strings.Compare(i.s, o.s) }
func (Ident) StrictDumb() Encoder   { return Ident{s: "Dumb"} }
func (i Ident) StrictEncode(w *Writer) error {
	return writeIdent(w, i.s, alphaLodash, AlphaNumLodash)
}

func (i *Ident) StrictDecode(r *Reader) error {
	s, err := readIdent(r, alphaLodash, AlphaNumLodash)
	if err != nil {
		return err
	}
	i.s = s
	return nil
}

// TypeName names a type and starts with an upper case letter.
type TypeName struct{ s string }

func NewTypeName(s string) (TypeName, error) {
	if err := validateIdent(s, AlphaCaps, AlphaNumLodash); err != nil {
		return TypeName{}, err
	}
	return TypeName{s: s}, nil
}

func MustTypeName(s string) TypeName {
	n, err := NewTypeName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n TypeName) String() string         { return n.s }
func (n TypeName) IsZero() bool           { return n.s == "" }
func (n TypeName) Compare(o TypeName) int { return strings.Compare(n.s, o.s) }
func (TypeName) StrictDumb() Encoder      { return TypeName{s: "Dumb"} }
func (n TypeName) StrictEncode(w *Writer) error {
	return writeIdent(w, n.s, AlphaCaps, AlphaNumLodash)
}

func (n *TypeName) StrictDecode(r *Reader) error {
	s, err := readIdent(r, AlphaCaps, AlphaNumLodash)
	if err != nil {
		return err
	}
	n.s = s
	return nil
}

// LibName names a type library and starts with an upper case letter.
type LibName struct{ s string }

func NewLibName(s string) (LibName, error) {
	if err := validateIdent(s, AlphaCaps, AlphaNumLodash); err != nil {
		return LibName{}, err
	}
	return LibName{s: s}, nil
}

func MustLibName(s string) LibName {
	n, err := NewLibName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n LibName) String() string        { return n.s }
func (n LibName) IsZero() bool          { return n.s == "" }
func (n LibName) Compare(o LibName) int { return strings.Compare(n.s, o.s) }
func (LibName) StrictDumb() Encoder     { return LibName{s: "Dumb"} }
func (n LibName) StrictEncode(w *Writer) error {
	return writeIdent(w, n.s, AlphaCaps, AlphaNumLodash)
}

func (n *LibName) StrictDecode(r *Reader) error {
	s, err := readIdent(r, AlphaCaps, AlphaNumLodash)
	if err != nil {
		return err
	}
	n.s = s
	return nil
}

// FieldName names a struct field or a variant and starts with a lower
// case letter or an underscore.
type FieldName struct{ s string }

// VariantName names a union or enum variant.
type VariantName = FieldName

func NewFieldName(s string) (FieldName, error) {
	if err := validateIdent(s, alphaSmallLodash, AlphaNumLodash); err != nil {
		return FieldName{}, err
	}
	return FieldName{s: s}, nil
}

func MustFieldName(s string) FieldName {
	n, err := NewFieldName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func NewVariantName(s string) (VariantName, error) { return NewFieldName(s) }
func MustVariantName(s string) VariantName         { return MustFieldName(s) }

func (n FieldName) String() string          { return n.s }
func (n FieldName) IsZero() bool            { return n.s == "" }
func (n FieldName) Compare(o FieldName) int { return strings.Compare(n.s, o.s) }
func (FieldName) StrictDumb() Encoder       { return FieldName{s: "dumb"} }
func (n FieldName) StrictEncode(w *Writer) error {
	return writeIdent(w, n.s, alphaSmallLodash, AlphaNumLodash)
}

func (n *FieldName) StrictDecode(r *Reader) error {
	s, err := readIdent(r, alphaSmallLodash, AlphaNumLodash)
	if err != nil {
		return err
	}
	n.s = s
	return nil
}
