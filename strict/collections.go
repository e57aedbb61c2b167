package strict

import (
	"bytes"
	"fmt"
	"slices"
)

// Ordered is implemented by set elements and map keys. Compare must be
// a total order consistent with equality of encodings.
type Ordered[T any] interface {
	Encoder
	Compare(other T) int
}

// List is a sequence confined by B.
type List[T Encoder, B Bound] struct{ items []T }

func NewList[T Encoder, B Bound](items ...T) (List[T, B], error) {
	if err := sizingOf[B]().Check(uint64(len(items))); err != nil {
		return List[T, B]{}, err
	}
	return List[T, B]{items: slices.Clone(items)}, nil
}

func MustList[T Encoder, B Bound](items ...T) List[T, B] {
	l, err := NewList[T, B](items...)
	if err != nil {
		panic(err)
	}
	return l
}

func (l List[T, B]) Len() int   { return len(l.items) }
func (l List[T, B]) At(i int) T { return l.items[i] }
func (l List[T, B]) Items() []T { return slices.Clone(l.items) }

// Push appends v unless the list is already at its maximum length.
func (l *List[T, B]) Push(v T) error {
	if err := sizingOf[B]().Check(uint64(len(l.items) + 1)); err != nil {
		return err
	}
	l.items = append(l.items, v)
	return nil
}

func (l List[T, B]) StrictEncode(w *Writer) error {
	s := sizingOf[B]()
	if err := w.writeLen(len(l.items), s); err != nil {
		return err
	}
	if err := writeItems(w, l.items); err != nil {
		return err
	}
	w.describeCollection(NodeList, s, dumbOf[T], nil, nil)
	return nil
}

func (l *List[T, B]) StrictDecode(r *Reader) error {
	n, err := r.readLen(sizingOf[B]())
	if err != nil {
		return err
	}
	items := make([]T, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		var v T
		if err := r.decodeValue(asDecoder(&v)); err != nil {
			return err
		}
		items = append(items, v)
	}
	l.items = items
	return nil
}

func (List[T, B]) StrictDumb() Encoder {
	return List[T, B]{items: dumbItems[T](sizingOf[B]().Min)}
}

// writeItems encodes elements with type recording muted. The element
// type is described once from its dumb value instead.
func writeItems[T Encoder](w *Writer, items []T) error {
	w.mute()
	defer w.unmute()
	for _, v := range items {
		if err := w.encodeValue(v); err != nil {
			return err
		}
	}
	return nil
}

func dumbItems[T any](n uint64) []T {
	items := make([]T, n)
	for i := range items {
		items[i] = dumbValue[T]()
	}
	return items
}

// Set is a duplicate-free collection confined by B. Elements are kept
// and encoded in ascending order.
type Set[T Ordered[T], B Bound] struct{ items []T }

// NewSet sorts items and drops repeated elements before checking the
// resulting size against B.
func NewSet[T Ordered[T], B Bound](items ...T) (Set[T, B], error) {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b T) int { return a.Compare(b) })
	sorted = slices.CompactFunc(sorted, func(a, b T) bool { return a.Compare(b) == 0 })
	if err := sizingOf[B]().Check(uint64(len(sorted))); err != nil {
		return Set[T, B]{}, err
	}
	return Set[T, B]{items: sorted}, nil
}

func MustSet[T Ordered[T], B Bound](items ...T) Set[T, B] {
	s, err := NewSet[T, B](items...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Set[T, B]) Len() int   { return len(s.items) }
func (s Set[T, B]) Items() []T { return slices.Clone(s.items) }

func (s Set[T, B]) Contains(v T) bool {
	_, found := slices.BinarySearchFunc(s.items, v, func(a, b T) int { return a.Compare(b) })
	return found
}

// Insert adds v and reports whether it was absent.
func (s *Set[T, B]) Insert(v T) (bool, error) {
	i, found := slices.BinarySearchFunc(s.items, v, func(a, b T) int { return a.Compare(b) })
	if found {
		return false, nil
	}
	if err := sizingOf[B]().Check(uint64(len(s.items) + 1)); err != nil {
		return false, err
	}
	s.items = slices.Insert(s.items, i, v)
	return true, nil
}

func (s Set[T, B]) StrictEncode(w *Writer) error {
	sz := sizingOf[B]()
	if err := w.writeLen(len(s.items), sz); err != nil {
		return err
	}
	if err := writeItems(w, s.items); err != nil {
		return err
	}
	w.describeCollection(NodeSet, sz, dumbOf[T], nil, nil)
	return nil
}

// StrictDecode accepts only strictly ascending elements, which makes
// the encoding of every set unique.
func (s *Set[T, B]) StrictDecode(r *Reader) error {
	n, err := r.readLen(sizingOf[B]())
	if err != nil {
		return err
	}
	items := make([]T, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		var v T
		if err := r.decodeValue(asDecoder(&v)); err != nil {
			return err
		}
		if i > 0 {
			switch c := items[i-1].Compare(v); {
			case c > 0:
				return ErrBrokenSetOrder
			case c == 0:
				return ErrRepeatedSetValue
			}
		}
		items = append(items, v)
	}
	s.items = items
	return nil
}

func (Set[T, B]) StrictDumb() Encoder {
	return Set[T, B]{items: dumbItems[T](sizingOf[B]().Min)}
}

// Entry is one key-value pair of a Map.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Map is a key-value collection confined by B with entries kept and
// encoded in ascending key order.
type Map[K Ordered[K], V Encoder, B Bound] struct{ entries []Entry[K, V] }

// NewMap sorts entries by key. For repeated keys the last entry wins.
func NewMap[K Ordered[K], V Encoder, B Bound](entries ...Entry[K, V]) (Map[K, V, B], error) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry[K, V]) int { return a.Key.Compare(b.Key) })
	out := sorted[:0]
	for _, e := range sorted {
		if n := len(out); n > 0 && out[n-1].Key.Compare(e.Key) == 0 {
			out[n-1] = e
			continue
		}
		out = append(out, e)
	}
	if err := sizingOf[B]().Check(uint64(len(out))); err != nil {
		return Map[K, V, B]{}, err
	}
	return Map[K, V, B]{entries: out}, nil
}

func MustMap[K Ordered[K], V Encoder, B Bound](entries ...Entry[K, V]) Map[K, V, B] {
	m, err := NewMap[K, V, B](entries...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Map[K, V, B]) Len() int               { return len(m.entries) }
func (m Map[K, V, B]) Entries() []Entry[K, V] { return slices.Clone(m.entries) }

func (m Map[K, V, B]) search(k K) (int, bool) {
	return slices.BinarySearchFunc(m.entries, k, func(e Entry[K, V], k K) int { return e.Key.Compare(k) })
}

func (m Map[K, V, B]) Get(k K) (V, bool) {
	if i, ok := m.search(k); ok {
		return m.entries[i].Value, true
	}
	var zero V
	return zero, false
}

// Insert sets the value of k, failing only when a new key would exceed
// the maximum size.
func (m *Map[K, V, B]) Insert(k K, v V) error {
	i, found := m.search(k)
	if found {
		m.entries[i].Value = v
		return nil
	}
	if err := sizingOf[B]().Check(uint64(len(m.entries) + 1)); err != nil {
		return err
	}
	m.entries = slices.Insert(m.entries, i, Entry[K, V]{Key: k, Value: v})
	return nil
}

func (m Map[K, V, B]) StrictEncode(w *Writer) error {
	sz := sizingOf[B]()
	if err := w.writeLen(len(m.entries), sz); err != nil {
		return err
	}
	w.mute()
	for _, e := range m.entries {
		if err := w.encodeValue(e.Key); err != nil {
			w.unmute()
			return err
		}
		if err := w.encodeValue(e.Value); err != nil {
			w.unmute()
			return err
		}
	}
	w.unmute()
	w.describeCollection(NodeMap, sz, nil, dumbOf[K], dumbOf[V])
	return nil
}

// StrictDecode accepts only strictly ascending keys.
func (m *Map[K, V, B]) StrictDecode(r *Reader) error {
	n, err := r.readLen(sizingOf[B]())
	if err != nil {
		return err
	}
	entries := make([]Entry[K, V], 0, min(n, 1024))
	for i := 0; i < n; i++ {
		var e Entry[K, V]
		if err := r.decodeValue(asDecoder(&e.Key)); err != nil {
			return err
		}
		if err := r.decodeValue(asDecoder(&e.Value)); err != nil {
			return err
		}
		if i > 0 {
			switch c := entries[i-1].Key.Compare(e.Key); {
			case c > 0:
				return ErrBrokenMapOrder
			case c == 0:
				return ErrRepeatedMapValue
			}
		}
		entries = append(entries, e)
	}
	m.entries = entries
	return nil
}

func (Map[K, V, B]) StrictDumb() Encoder {
	n := sizingOf[B]().Min
	entries := make([]Entry[K, V], n)
	for i := range entries {
		entries[i] = Entry[K, V]{Key: dumbValue[K](), Value: dumbValue[V]()}
	}
	return Map[K, V, B]{entries: entries}
}

// Array is a fixed length sequence. N must be a Bound with Min equal
// to Max; no length prefix is written. The zero Array holds N zero
// elements.
type Array[T Encoder, N Bound] struct{ items []T }

func arrayLen[N Bound]() int {
	s := sizingOf[N]()
	if s.Min != s.Max {
		panic(fmt.Sprintf("strict: array length bound %v is not fixed", s))
	}
	return int(s.Min)
}

func NewArray[T Encoder, N Bound](items ...T) (Array[T, N], error) {
	if n := arrayLen[N](); len(items) != n {
		return Array[T, N]{}, &ConfinementError{Len: uint64(len(items)), Sizing: FixedSizing(uint64(n))}
	}
	return Array[T, N]{items: slices.Clone(items)}, nil
}

func MustArray[T Encoder, N Bound](items ...T) Array[T, N] {
	a, err := NewArray[T, N](items...)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Array[T, N]) Len() int { return arrayLen[N]() }

func (a Array[T, N]) Items() []T {
	if a.items == nil {
		return make([]T, arrayLen[N]())
	}
	return slices.Clone(a.items)
}

func (a Array[T, N]) StrictEncode(w *Writer) error {
	if err := writeItems(w, a.Items()); err != nil {
		return err
	}
	w.describeCollection(NodeArray, FixedSizing(uint64(arrayLen[N]())), dumbOf[T], nil, nil)
	return nil
}

func (a *Array[T, N]) StrictDecode(r *Reader) error {
	items := make([]T, arrayLen[N]())
	for i := range items {
		if err := r.decodeValue(asDecoder(&items[i])); err != nil {
			return err
		}
	}
	a.items = items
	return nil
}

func (Array[T, N]) StrictDumb() Encoder {
	return Array[T, N]{items: dumbItems[T](uint64(arrayLen[N]()))}
}

func writeFixed(w *Writer, p []byte) error {
	w.describeCollection(NodeArray, FixedSizing(uint64(len(p))), func() Encoder { return Byte(0) }, nil, nil)
	return w.writeRaw(p)
}

// Bytes16 is a fixed 16 byte array.
type Bytes16 [16]byte

func (b Bytes16) StrictEncode(w *Writer) error  { return writeFixed(w, b[:]) }
func (b *Bytes16) StrictDecode(r *Reader) error { return r.src.readFull(b[:]) }
func (b Bytes16) Compare(o Bytes16) int         { return bytes.Compare(b[:], o[:]) }

// Bytes20 is a fixed 20 byte array, the size of a RIPEMD-160 digest.
type Bytes20 [20]byte

func (b Bytes20) StrictEncode(w *Writer) error  { return writeFixed(w, b[:]) }
func (b *Bytes20) StrictDecode(r *Reader) error { return r.src.readFull(b[:]) }
func (b Bytes20) Compare(o Bytes20) int         { return bytes.Compare(b[:], o[:]) }

// Bytes32 is a fixed 32 byte array used for hashes and identifiers.
type Bytes32 [32]byte

func (b Bytes32) StrictEncode(w *Writer) error  { return writeFixed(w, b[:]) }
func (b *Bytes32) StrictDecode(r *Reader) error { return r.src.readFull(b[:]) }
func (b Bytes32) Compare(o Bytes32) int         { return bytes.Compare(b[:], o[:]) }

// Bytes64 is a fixed 64 byte array.
type Bytes64 [64]byte

func (b Bytes64) StrictEncode(w *Writer) error  { return writeFixed(w, b[:]) }
func (b *Bytes64) StrictDecode(r *Reader) error { return r.src.readFull(b[:]) }
func (b Bytes64) Compare(o Bytes64) int         { return bytes.Compare(b[:], o[:]) }
