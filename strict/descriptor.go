package strict

import (
	"fmt"
	"slices"
)

// UnnamedType is reported in errors about types which have no name.
const UnnamedType = "__unnamed"

type Kind uint8

const (
	KindStruct Kind = iota + 1
	KindTuple
	KindUnion
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindTuple:
		return "tuple"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Variant is one entry of a union or enum variant table.
type Variant struct {
	Name VariantName
	Ord  uint8
}

var variantType = NewStruct(LibStrictTypes, "Variant", "name", "ord")

// V builds a variant with an explicit ordinal.
func V(ord uint8, name string) Variant {
	return Variant{Name: MustVariantName(name), Ord: ord}
}

// Seq builds variants numbered from zero in the given order.
func Seq(names ...string) []Variant {
	if len(names) > 256 {
		panic("strict: a variant table holds at most 256 variants")
	}
	out := make([]Variant, len(names))
	for i, n := range names {
		out[i] = V(uint8(i), n)
	}
	return out
}

func (v Variant) String() string { return fmt.Sprintf("%s(%d)", v.Name, v.Ord) }

func (v Variant) StrictEncode(w *Writer) error {
	return w.WriteStruct(variantType).
		Field("name", v.Name).
		Field("ord", U8(v.Ord)).
		Complete()
}

func (v *Variant) StrictDecode(r *Reader) error {
	var ord U8
	if err := r.ReadStruct(variantType).
		Field("name", &v.Name).
		Field("ord", &ord).
		Complete(); err != nil {
		return err
	}
	v.Ord = uint8(ord)
	return nil
}

func (Variant) StrictDumb() Encoder { return V(0, "dumb") }

// Descriptor is the immutable schema of a struct, tuple, union or enum.
// Descriptors are built once per type, usually into a package level
// variable, and consulted by every Writer and Reader scope of the type.
type Descriptor struct {
	lib      LibName
	name     TypeName
	kind     Kind
	fields   []FieldName
	count    int
	variants []Variant
}

func newDescriptor(lib, name string, kind Kind) *Descriptor {
	d := &Descriptor{lib: MustLibName(lib), kind: kind}
	if name != "" {
		d.name = MustTypeName(name)
	}
	return d
}

// NewStruct describes a struct with the given field names in wire
// order. It panics on a repeated field name.
func NewStruct(lib, name string, fields ...string) *Descriptor {
	d := newDescriptor(lib, name, KindStruct)
	if len(fields) == 0 {
		panic(fmt.Sprintf("strict: struct %s declares no fields", d))
	}
	d.fields = make([]FieldName, 0, len(fields))
	for _, f := range fields {
		fn := MustFieldName(f)
		if slices.Contains(d.fields, fn) {
			panic(fmt.Sprintf("strict: struct %s repeats field %s", d, f))
		}
		d.fields = append(d.fields, fn)
	}
	d.count = len(d.fields)
	return d
}

// NewTuple describes a tuple of count positional fields. An empty name
// describes an unnamed tuple.
func NewTuple(lib, name string, count int) *Descriptor {
	d := newDescriptor(lib, name, KindTuple)
	if count < 1 {
		panic(fmt.Sprintf("strict: tuple %s declares no fields", d))
	}
	d.count = count
	return d
}

// NewUnion describes a union over variants. It panics on repeated
// ordinals or names.
func NewUnion(lib, name string, variants ...Variant) *Descriptor {
	d := newDescriptor(lib, name, KindUnion)
	d.setVariants(variants)
	return d
}

// NewEnum describes a union whose variants carry no data.
func NewEnum(lib, name string, variants ...Variant) *Descriptor {
	d := newDescriptor(lib, name, KindEnum)
	d.setVariants(variants)
	return d
}

func (d *Descriptor) setVariants(variants []Variant) {
	if len(variants) == 0 {
		panic(fmt.Sprintf("strict: %s %s declares no variants", d.kind, d))
	}
	d.variants = make([]Variant, 0, len(variants))
	for _, v := range variants {
		if v.Name.IsZero() {
			panic(fmt.Sprintf("strict: %s %s declares an unnamed variant", d.kind, d))
		}
		for _, seen := range d.variants {
			if seen.Ord == v.Ord {
				panic(fmt.Sprintf("strict: %s %s repeats ordinal %d", d.kind, d, v.Ord))
			}
			if seen.Name == v.Name {
				panic(fmt.Sprintf("strict: %s %s repeats variant %s", d.kind, d, v.Name))
			}
		}
		d.variants = append(d.variants, v)
	}
}

func (d *Descriptor) Lib() LibName { return d.lib }
func (d *Descriptor) Kind() Kind   { return d.kind }

// Name returns the type name and whether the type is named at all.
func (d *Descriptor) Name() (TypeName, bool) { return d.name, !d.name.IsZero() }

// TypeName returns the type name, or UnnamedType.
func (d *Descriptor) TypeName() string {
	if d.name.IsZero() {
		return UnnamedType
	}
	return d.name.String()
}

func (d *Descriptor) String() string { return d.lib.String() + "." + d.TypeName() }

func (d *Descriptor) Fields() []FieldName { return slices.Clone(d.fields) }
func (d *Descriptor) FieldCount() int     { return d.count }
func (d *Descriptor) Variants() []Variant { return slices.Clone(d.variants) }

func (d *Descriptor) VariantByOrd(ord uint8) (Variant, bool) {
	for _, v := range d.variants {
		if v.Ord == ord {
			return v, true
		}
	}
	return Variant{}, false
}

func (d *Descriptor) VariantByName(name string) (Variant, bool) {
	for _, v := range d.variants {
		if v.Name.String() == name {
			return v, true
		}
	}
	return Variant{}, false
}

func (d *Descriptor) mustKind(k Kind) {
	if d.kind != k {
		panic(fmt.Sprintf("strict: %s is a %s, not a %s", d, d.kind, k))
	}
}
