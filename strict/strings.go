package strict

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// Bytes is a byte string confined by B. It encodes as a length prefix
// followed by the raw bytes.
type Bytes[B Bound] struct{ b []byte }

// NewBytes copies p after checking its length against B.
func NewBytes[B Bound](p []byte) (Bytes[B], error) {
	if err := sizingOf[B]().Check(uint64(len(p))); err != nil {
		return Bytes[B]{}, err
	}
	return Bytes[B]{b: bytes.Clone(p)}, nil
}

func MustBytes[B Bound](p []byte) Bytes[B] {
	b, err := NewBytes[B](p)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Bytes[B]) Bytes() []byte          { return bytes.Clone(b.b) }
func (b Bytes[B]) Len() int               { return len(b.b) }
func (b Bytes[B]) Compare(o Bytes[B]) int { return bytes.Compare(b.b, o.b) }

func (b Bytes[B]) StrictEncode(w *Writer) error {
	s := sizingOf[B]()
	if err := w.writeLen(len(b.b), s); err != nil {
		return err
	}
	w.describeCollection(NodeList, s, func() Encoder { return U8(0) }, nil, nil)
	return w.writeRaw(b.b)
}

func (b *Bytes[B]) StrictDecode(r *Reader) error {
	n, err := r.readLen(sizingOf[B]())
	if err != nil {
		return err
	}
	buf, err := r.readBytes(n)
	if err != nil {
		return err
	}
	b.b = buf
	return nil
}

// String is a UTF-8 string whose byte length is confined by B.
type String[B Bound] struct{ s string }

func NewString[B Bound](s string) (String[B], error) {
	if err := sizingOf[B]().Check(uint64(len(s))); err != nil {
		return String[B]{}, err
	}
	if pos := invalidUTF8(s); pos >= 0 {
		return String[B]{}, &UTF8Error{Pos: pos}
	}
	return String[B]{s: s}, nil
}

func MustString[B Bound](s string) String[B] {
	v, err := NewString[B](s)
	if err != nil {
		panic(err)
	}
	return v
}

func invalidUTF8(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

func (s String[B]) String() string          { return s.s }
func (s String[B]) Len() int                { return len(s.s) }
func (s String[B]) Compare(o String[B]) int { return strings.Compare(s.s, o.s) }

func (s String[B]) StrictEncode(w *Writer) error {
	sz := sizingOf[B]()
	w.recordLeaf(&TypeNode{Kind: NodeUnicode, Sizing: &sz})
	if err := w.writeLen(len(s.s), sz); err != nil {
		return err
	}
	return w.writeRaw([]byte(s.s))
}

func (s *String[B]) StrictDecode(r *Reader) error {
	n, err := r.readLen(sizingOf[B]())
	if err != nil {
		return err
	}
	buf, err := r.readBytes(n)
	if err != nil {
		return err
	}
	str := string(buf)
	if pos := invalidUTF8(str); pos >= 0 {
		return &UTF8Error{Pos: pos}
	}
	s.s = str
	return nil
}

// ASCII is a string of printable ASCII characters confined by B.
type ASCII[B Bound] struct{ s string }

func NewASCII[B Bound](s string) (ASCII[B], error) {
	if err := sizingOf[B]().Check(uint64(len(s))); err != nil {
		return ASCII[B]{}, err
	}
	if err := checkASCII([]byte(s)); err != nil {
		return ASCII[B]{}, err
	}
	return ASCII[B]{s: s}, nil
}

func MustASCII[B Bound](s string) ASCII[B] {
	v, err := NewASCII[B](s)
	if err != nil {
		panic(err)
	}
	return v
}

func checkASCII(p []byte) error {
	for i, ch := range p {
		if !AsciiPrintable.Contains(ch) {
			return &ASCIIError{Pos: i, Char: ch}
		}
	}
	return nil
}

func (s ASCII[B]) String() string         { return s.s }
func (s ASCII[B]) Len() int               { return len(s.s) }
func (s ASCII[B]) Compare(o ASCII[B]) int { return strings.Compare(s.s, o.s) }

func (s ASCII[B]) StrictEncode(w *Writer) error {
	sz := sizingOf[B]()
	w.recordLeaf(&TypeNode{Kind: NodeASCII, Sizing: &sz})
	if err := w.writeLen(len(s.s), sz); err != nil {
		return err
	}
	return w.writeRaw([]byte(s.s))
}

func (s *ASCII[B]) StrictDecode(r *Reader) error {
	n, err := r.readLen(sizingOf[B]())
	if err != nil {
		return err
	}
	buf, err := r.readBytes(n)
	if err != nil {
		return err
	}
	if err := checkASCII(buf); err != nil {
		return err
	}
	s.s = string(buf)
	return nil
}

// RString is a string restricted to the alphabet A and confined by B.
type RString[A Alphabet, B Bound] struct{ s string }

func NewRString[A Alphabet, B Bound](s string) (RString[A, B], error) {
	if err := sizingOf[B]().Check(uint64(len(s))); err != nil {
		return RString[A, B]{}, err
	}
	if err := checkRString[A]([]byte(s)); err != nil {
		return RString[A, B]{}, err
	}
	return RString[A, B]{s: s}, nil
}

func MustRString[A Alphabet, B Bound](s string) RString[A, B] {
	v, err := NewRString[A, B](s)
	if err != nil {
		panic(err)
	}
	return v
}

func checkRString[A Alphabet](p []byte) error {
	var a A
	if pos, set := checkAlphabet(p, a.First(), a.Rest()); pos >= 0 {
		return &CharsetError{Charset: set.Name(), Pos: pos, Char: p[pos]}
	}
	return nil
}

func (s RString[A, B]) String() string              { return s.s }
func (s RString[A, B]) Len() int                    { return len(s.s) }
func (s RString[A, B]) Compare(o RString[A, B]) int { return strings.Compare(s.s, o.s) }

func (s RString[A, B]) StrictEncode(w *Writer) error {
	var a A
	sz := sizingOf[B]()
	w.recordLeaf(&TypeNode{Kind: NodeRString, First: a.First().Name(), Rest: a.Rest().Name(), Sizing: &sz})
	if err := w.writeLen(len(s.s), sz); err != nil {
		return err
	}
	return w.writeRaw([]byte(s.s))
}

func (s *RString[A, B]) StrictDecode(r *Reader) error {
	n, err := r.readLen(sizingOf[B]())
	if err != nil {
		return err
	}
	buf, err := r.readBytes(n)
	if err != nil {
		return err
	}
	if err := checkRString[A](buf); err != nil {
		return err
	}
	s.s = string(buf)
	return nil
}

// Dumb values hold the shortest content allowed by B.

func (Bytes[B]) StrictDumb() Encoder {
	return Bytes[B]{b: make([]byte, sizingOf[B]().Min)}
}

func (String[B]) StrictDumb() Encoder {
	return String[B]{s: strings.Repeat("?", int(sizingOf[B]().Min))}
}

func (ASCII[B]) StrictDumb() Encoder {
	return ASCII[B]{s: strings.Repeat("?", int(sizingOf[B]().Min))}
}

func (RString[A, B]) StrictDumb() Encoder {
	var a A
	n := int(sizingOf[B]().Min)
	if n == 0 {
		return RString[A, B]{}
	}
	return RString[A, B]{s: string(a.First().lowest()) + strings.Repeat(string(a.Rest().lowest()), n-1)}
}
