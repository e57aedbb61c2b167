package strict

import (
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"
	"strings"
)

type NodeKind string

const (
	NodePrimitive NodeKind = "primitive"
	NodeUnicode   NodeKind = "unicode"
	NodeASCII     NodeKind = "ascii"
	NodeRString   NodeKind = "rstring"
	NodeList      NodeKind = "list"
	NodeSet       NodeKind = "set"
	NodeMap       NodeKind = "map"
	NodeArray     NodeKind = "array"
	NodeTuple     NodeKind = "tuple"
	NodeStruct    NodeKind = "struct"
	NodeUnion     NodeKind = "union"
	NodeEnum      NodeKind = "enum"
	// NodeRef points back at a named type which is already being
	// described further up the tree.
	NodeRef NodeKind = "ref"
)

// TypeNode is one node of the type tree recorded while a value is
// encoded.
type TypeNode struct {
	Kind     NodeKind      `cbor:"kind" yaml:"kind"`
	Lib      string        `cbor:"lib,omitempty" yaml:"lib,omitempty"`
	Name     string        `cbor:"name,omitempty" yaml:"name,omitempty"`
	Prim     string        `cbor:"prim,omitempty" yaml:"prim,omitempty"`
	Code     uint8         `cbor:"code,omitempty" yaml:"code,omitempty"`
	First    string        `cbor:"first,omitempty" yaml:"first,omitempty"`
	Rest     string        `cbor:"rest,omitempty" yaml:"rest,omitempty"`
	Sizing   *Sizing       `cbor:"sizing,omitempty" yaml:"sizing,omitempty"`
	Len      int           `cbor:"len,omitempty" yaml:"len,omitempty"`
	Fields   []FieldNode   `cbor:"fields,omitempty" yaml:"fields,omitempty"`
	Variants []VariantNode `cbor:"variants,omitempty" yaml:"variants,omitempty"`
	Elem     *TypeNode     `cbor:"elem,omitempty" yaml:"elem,omitempty"`
	Key      *TypeNode     `cbor:"key,omitempty" yaml:"key,omitempty"`
	Value    *TypeNode     `cbor:"value,omitempty" yaml:"value,omitempty"`
}

// FieldNode is a struct field, or a tuple field when Name is empty.
type FieldNode struct {
	Name string    `cbor:"name,omitempty" yaml:"name,omitempty"`
	Type *TypeNode `cbor:"type" yaml:"type"`
}

type VariantNode struct {
	Ord    uint8       `cbor:"ord" yaml:"ord"`
	Name   string      `cbor:"name" yaml:"name"`
	Shape  string      `cbor:"shape" yaml:"shape"`
	Fields []FieldNode `cbor:"fields,omitempty" yaml:"fields,omitempty"`
}

// TypeKey returns "Lib.Name" for named types and "" otherwise.
func (n *TypeNode) TypeKey() string {
	if n.Name == "" {
		return ""
	}
	return n.Lib + "." + n.Name
}

func (n *TypeNode) String() string {
	if n == nil {
		return "?"
	}
	if key := n.TypeKey(); key != "" {
		return key
	}
	switch n.Kind {
	case NodePrimitive:
		return n.Prim
	case NodeUnicode:
		return "[Unicode" + sizingSuffix(n.Sizing) + "]"
	case NodeASCII:
		return "[AsciiPrintable" + sizingSuffix(n.Sizing) + "]"
	case NodeRString:
		return "[" + n.First + " " + n.Rest + sizingSuffix(n.Sizing) + "]"
	case NodeList:
		return "[" + n.Elem.String() + sizingSuffix(n.Sizing) + "]"
	case NodeSet:
		return "{" + n.Elem.String() + sizingSuffix(n.Sizing) + "}"
	case NodeMap:
		return "{" + n.Key.String() + " -> " + n.Value.String() + sizingSuffix(n.Sizing) + "}"
	case NodeArray:
		return fmt.Sprintf("[%s ^ %d]", n.Elem, n.Len)
	case NodeTuple, NodeStruct:
		return "(" + fieldList(n.Fields) + ")"
	case NodeUnion, NodeEnum:
		parts := make([]string, len(n.Variants))
		for i, v := range n.Variants {
			parts[i] = v.Name
			if len(v.Fields) > 0 {
				parts[i] += "(" + fieldList(v.Fields) + ")"
			}
		}
		return strings.Join(parts, " | ")
	}
	return string(n.Kind)
}

func sizingSuffix(s *Sizing) string {
	if s == nil {
		return ""
	}
	return s.String()
}

func fieldList(fields []FieldNode) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		if f.Name != "" {
			parts[i] = f.Name + " " + f.Type.String()
		} else {
			parts[i] = f.Type.String()
		}
	}
	return strings.Join(parts, ", ")
}

type recState uint8

const (
	recSkip recState = iota
	recPushed
	recMuted
)

// recorder builds a TypeNode tree from the events of a Writer.
type recorder struct {
	root   *TypeNode
	stack  []*TypeNode
	mute   int
	active map[string]int
	err    error
}

func (rc *recorder) attach(n *TypeNode) {
	if len(rc.stack) == 0 {
		if rc.root == nil {
			rc.root = n
		}
		return
	}
	parent := rc.stack[len(rc.stack)-1]
	switch parent.Kind {
	case NodeStruct:
		if k := len(parent.Fields); k > 0 && parent.Fields[k-1].Type == nil {
			parent.Fields[k-1].Type = n
		}
	case NodeTuple:
		parent.Fields = append(parent.Fields, FieldNode{Type: n})
	}
}

func (rc *recorder) leaf(n *TypeNode) {
	if rc.mute == 0 {
		rc.attach(n)
	}
}

func (rc *recorder) open(n *TypeNode) recState {
	if rc.mute > 0 {
		return recSkip
	}
	key := n.TypeKey()
	if key != "" && rc.active[key] > 0 {
		rc.attach(&TypeNode{Kind: NodeRef, Lib: n.Lib, Name: n.Name})
		rc.mute++
		return recMuted
	}
	rc.attach(n)
	rc.stack = append(rc.stack, n)
	if key != "" {
		rc.active[key]++
	}
	return recPushed
}

func (rc *recorder) close(st recState) {
	switch st {
	case recPushed:
		n := rc.stack[len(rc.stack)-1]
		rc.stack = rc.stack[:len(rc.stack)-1]
		if key := n.TypeKey(); key != "" {
			rc.active[key]--
		}
	case recMuted:
		rc.mute--
	}
}

func (rc *recorder) field(name string) {
	if rc.mute > 0 || len(rc.stack) == 0 {
		return
	}
	if top := rc.stack[len(rc.stack)-1]; top.Kind == NodeStruct {
		top.Fields = append(top.Fields, FieldNode{Name: name})
	}
}

func (rc *recorder) fail(err error) {
	if rc.err == nil {
		rc.err = err
	}
}

func (w *Writer) recordLeaf(n *TypeNode) {
	if w.rec != nil {
		w.rec.leaf(n)
	}
}

func (w *Writer) recordOpen(n *TypeNode) recState {
	if w.rec == nil || n == nil {
		return recSkip
	}
	return w.rec.open(n)
}

func (w *Writer) recordClose(st recState) {
	if w.rec != nil {
		w.rec.close(st)
	}
}

func (w *Writer) recordField(name string) {
	if w.rec != nil {
		w.rec.field(name)
	}
}

func (w *Writer) mute() {
	if w.rec != nil {
		w.rec.mute++
	}
}

func (w *Writer) unmute() {
	if w.rec != nil {
		w.rec.mute--
	}
}

// describing reports whether type events of this writer are recorded.
func (w *Writer) describing() bool { return w.rec != nil && w.rec.mute == 0 }

// describe records the type of dumb on a scratch writer which shares
// the set of types currently being described.
func (w *Writer) describe(dumb Encoder) *TypeNode {
	if !w.describing() {
		return nil
	}
	sub := &recorder{active: w.rec.active}
	dw := &Writer{sink: &limitWriter{w: io.Discard, limit: math.MaxInt}, rec: sub}
	if err := dw.encodeValue(dumb); err != nil {
		w.rec.fail(err)
		return nil
	}
	if sub.err != nil {
		w.rec.fail(sub.err)
	}
	return sub.root
}

// describeCollection records a collection node after its elements were
// written with recording muted.
func (w *Writer) describeCollection(kind NodeKind, s Sizing, elem, key, value func() Encoder) {
	if !w.describing() {
		return
	}
	n := &TypeNode{Kind: kind}
	if kind == NodeArray {
		n.Len = int(s.Max)
	} else {
		n.Sizing = &s
	}
	if elem != nil {
		n.Elem = w.describe(elem())
	}
	if key != nil {
		n.Key = w.describe(key())
	}
	if value != nil {
		n.Value = w.describe(value())
	}
	w.rec.leaf(n)
}

// Dumber supplies the placeholder value used to describe a type when no
// real instance is at hand. Types without it are described through
// their zero value.
type Dumber interface {
	StrictDumb() Encoder
}

type missingDumb struct{ typ string }

func (m missingDumb) StrictEncode(*Writer) error {
	return fmt.Errorf("strict: %s supplies no dumb value", m.typ)
}

func dumbOf[T any]() Encoder {
	var zero T
	// Pointers are described through the value they point at.
	if t := reflect.TypeOf((*T)(nil)).Elem(); t.Kind() == reflect.Pointer {
		zero, _ = reflect.New(t.Elem()).Interface().(T)
	}
	if d, ok := any(zero).(Dumber); ok {
		return d.StrictDumb()
	}
	if e, ok := any(zero).(Encoder); ok {
		return e
	}
	return missingDumb{typ: reflect.TypeOf((*T)(nil)).Elem().String()}
}

// dumbValue returns the dumb value of T, or its zero value when the
// dumb value has another type.
func dumbValue[T any]() T {
	v, _ := dumbOf[T]().(T)
	return v
}

// Describe encodes v into a discarding sink and returns the tree of
// types the encoding went through. Values of the same type always
// produce the same tree, so v is usually the type's dumb value.
func Describe(v Encoder) (*TypeNode, error) {
	rec := &recorder{active: map[string]int{}}
	w := &Writer{sink: &limitWriter{w: io.Discard, limit: math.MaxInt}, rec: rec}
	if err := w.encodeValue(v); err != nil {
		return nil, err
	}
	if rec.err != nil {
		return nil, rec.err
	}
	if rec.root == nil {
		return nil, errors.New("strict: encoding recorded no type")
	}
	return rec.root, nil
}

func sortVariants(vs []VariantNode) {
	slices.SortFunc(vs, func(a, b VariantNode) int { return int(a.Ord) - int(b.Ord) })
}
