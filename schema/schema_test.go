package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/strict-types/strict-encoding-sub000/internal/testutil/testlog"
	"github.com/strict-types/strict-encoding-sub000/strict"
)

var (
	pointType = strict.NewStruct("Geo", "Point", "x", "y")
	// pointAlt has the same name as pointType but another shape.
	pointAlt = strict.NewStruct("Geo", "Point", "x", "y", "z")
	pairType = strict.NewStruct("Geo", "Pair", "a", "b")
)

type point struct{ x, y strict.I32 }

func (p point) StrictEncode(w *strict.Writer) error {
	return w.WriteStruct(pointType).Field("x", p.x).Field("y", p.y).Complete()
}

type point3 struct{ x, y, z strict.I32 }

func (p point3) StrictEncode(w *strict.Writer) error {
	return w.WriteStruct(pointAlt).Field("x", p.x).Field("y", p.y).Field("z", p.z).Complete()
}

// pair has the shape of point under another name.
type pair struct{ a, b strict.I32 }

func (p pair) StrictEncode(w *strict.Writer) error {
	return w.WriteStruct(pairType).Field("a", p.a).Field("b", p.b).Complete()
}

func TestRegisterAndLookup(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()

	typ, err := r.Register(point{})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if typ.Key() != "Geo.Point" || typ.ID.IsZero() {
		t.Fatalf("unexpected type: %+v", typ)
	}

	again, err := r.Register(point{x: 5})
	require.NoError(t, err)
	require.Same(t, typ, again)

	got, ok := r.Lookup("Geo", "Point")
	require.True(t, ok)
	require.Same(t, typ, got)
	got, ok = r.LookupID(typ.ID)
	require.True(t, ok)
	require.Same(t, typ, got)
	_, ok = r.LookupKey("Geo.Missing")
	require.False(t, ok)

	_, err = r.Register(point3{})
	if !errors.Is(err, ErrTypeConflict) {
		t.Fatalf("expected ErrTypeConflict, got %v", err)
	}

	_, err = r.Register(strict.U8(0))
	require.ErrorIs(t, err, ErrUnnamedType)
}

func TestSemIDDependsOnShapeAndName(t *testing.T) {
	testlog.Start(t)

	p, err := strict.Describe(point{})
	require.NoError(t, err)
	p2, err := strict.Describe(point{x: 1, y: -1})
	require.NoError(t, err)
	q, err := strict.Describe(pair{})
	require.NoError(t, err)

	idP, err := ComputeSemID(p)
	require.NoError(t, err)
	idP2, err := ComputeSemID(p2)
	require.NoError(t, err)
	idQ, err := ComputeSemID(q)
	require.NoError(t, err)

	require.Equal(t, idP, idP2)
	require.NotEqual(t, idP, idQ)

	parsed, err := ParseSemID(idP.String())
	require.NoError(t, err)
	require.Equal(t, idP, parsed)
	_, err = ParseSemID("abcd")
	require.ErrorIs(t, err, ErrInvalidSemID)
}

func TestCBORRoundTrip(t *testing.T) {
	testlog.Start(t)

	tree, err := strict.Describe(strict.MustMap[strict.TypeName, strict.Option[strict.U16], strict.Tiny]())
	require.NoError(t, err)

	data, err := MarshalCBOR(tree)
	require.NoError(t, err)
	again, err := MarshalCBOR(tree)
	require.NoError(t, err)
	require.Equal(t, data, again)

	back, err := UnmarshalCBOR(data)
	require.NoError(t, err)
	require.Equal(t, tree, back)
}

func TestDocumentExport(t *testing.T) {
	testlog.Start(t)
	r := NewStdRegistry()
	r.MustRegister(point{})

	doc := r.Document()
	keys := make([]string, 0, len(doc.Types))
	for _, typ := range doc.Types {
		keys = append(keys, typ.Key())
	}
	require.Equal(t, []string{"Geo.Point", "StdLib.Bool", "StrictTypes.Sizing", "StrictTypes.Variant"}, keys)

	text, err := doc.EncodeYAML()
	require.NoError(t, err)
	require.Contains(t, string(text), "name: Point")

	back, err := DecodeYAML(text)
	require.NoError(t, err)
	require.Len(t, back.Types, 4)
	require.Equal(t, doc.Types[0].ID, back.Types[0].ID)
	require.Equal(t, doc.Types[0].Tree, back.Types[0].Tree)

	bin, err := doc.EncodeCBOR()
	require.NoError(t, err)
	require.NotEmpty(t, bin)
}

func TestDefaultRegistryHoldsStdTypes(t *testing.T) {
	testlog.Start(t)

	typ, ok := Lookup(strict.LibStd, "Bool")
	require.True(t, ok)
	require.Equal(t, strict.NodeEnum, typ.Tree.Kind)
	require.NotEmpty(t, All())
}

// Default is built during package initialization, so its ids must match
// ids computed once the package is fully loaded.
func TestDefaultRegistryIDsMatchRuntimeIDs(t *testing.T) {
	testlog.Start(t)

	fresh := NewStdRegistry()
	require.Len(t, All(), len(fresh.All()))
	for _, typ := range fresh.All() {
		got, ok := Default.LookupKey(typ.Key())
		require.True(t, ok, typ.Key())
		require.Equal(t, typ.ID, got.ID, typ.Key())
		require.False(t, got.ID.IsZero(), typ.Key())
	}
}
