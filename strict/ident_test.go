package strict

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/strict-types/strict-encoding-sub000/internal/testutil/testlog"
)

func TestIdentValidation(t *testing.T) {
	testlog.Start(t)

	cases := []struct {
		name  string
		build func(string) error
		input string
		kind  IdentErrorKind
		pos   int
	}{
		{"ident digit first", identCtor(NewIdent), "1abc", IdentNonAlphabetic, 0},
		{"ident dash", identCtor(NewIdent), "ab-c", IdentInvalidChar, 2},
		{"type lower first", identCtor(NewTypeName), "point", IdentNonAlphabetic, 0},
		{"type underscore first", identCtor(NewTypeName), "_Point", IdentNonAlphabetic, 0},
		{"lib space", identCtor(NewLibName), "Std Lib", IdentInvalidChar, 3},
		{"field upper first", identCtor(NewFieldName), "Data", IdentNonAlphabetic, 0},
		{"field non ascii", identCtor(NewFieldName), "dätä", IdentNonASCII, 1},
		{"first violation wins", identCtor(NewIdent), "a-é", IdentInvalidChar, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var identErr *IdentError
			require.ErrorAs(t, tc.build(tc.input), &identErr)
			require.Equal(t, tc.kind, identErr.Kind)
			require.Equal(t, tc.pos, identErr.Pos)
			require.Equal(t, tc.input, identErr.Input)
		})
	}

	for _, ok := range []string{"_", "_private", "x1", "A"} {
		_, err := NewIdent(ok)
		require.NoError(t, err, ok)
	}
	_, err := NewFieldName("_skip")
	require.NoError(t, err)
	_, err = NewTypeName("Point3D")
	require.NoError(t, err)
}

func identCtor[T any](ctor func(string) (T, error)) func(string) error {
	return func(s string) error {
		_, err := ctor(s)
		return err
	}
}

func TestIdentLength(t *testing.T) {
	testlog.Start(t)

	_, err := NewIdent("")
	require.ErrorIs(t, err, ErrEmptyIdent)

	_, err = NewIdent(strings.Repeat("a", IdentMaxLen))
	require.NoError(t, err)

	_, err = NewIdent(strings.Repeat("a", IdentMaxLen+1))
	var confErr *ConfinementError
	require.ErrorAs(t, err, &confErr)
	require.Equal(t, uint64(IdentMaxLen+1), confErr.Len)

	// Character errors are reported before length errors.
	_, err = NewIdent("-" + strings.Repeat("a", IdentMaxLen))
	var identErr *IdentError
	require.ErrorAs(t, err, &identErr)
}

func TestIdentWireForm(t *testing.T) {
	testlog.Start(t)

	require.Equal(t, []byte{0x04, 'D', 'a', 't', 'a'}, mustSerialize(t, MustTypeName("Data")))

	var n TypeName
	var identErr *IdentError
	require.ErrorAs(t, Deserialize([]byte{0x04, 'd', 'a', 't', 'a'}, &n, testLimit), &identErr)

	var confErr *ConfinementError
	require.ErrorAs(t, Deserialize([]byte{0x00}, &n, testLimit), &confErr)
	require.ErrorAs(t, Deserialize([]byte{101}, &n, testLimit), &confErr)

	_, err := Serialize(Ident{}, testLimit)
	require.ErrorIs(t, err, ErrEmptyIdent)

	require.Equal(t, -1, MustFieldName("a").Compare(MustFieldName("b")))
	require.Equal(t, "some", MustVariantName("some").String())
}

func TestRestrictedStrings(t *testing.T) {
	testlog.Start(t)

	_, err := NewRString[HexChars, Tiny]("deadBEEF")
	var csErr *CharsetError
	require.ErrorAs(t, err, &csErr)
	require.Equal(t, 4, csErr.Pos)
	require.Equal(t, "HexDecSmall", csErr.Charset)

	_, err = NewRString[SlugChars, Tiny]("9lives")
	require.ErrorAs(t, err, &csErr)
	require.Equal(t, "Alpha", csErr.Charset)

	slug := MustRString[SlugChars, Tiny]("front-page")
	require.Equal(t, "front-page", slug.String())

	dumb, ok := RString[IdentChars, NonEmptyTiny]{}.StrictDumb().(RString[IdentChars, NonEmptyTiny])
	require.True(t, ok)
	require.Equal(t, "A", dumb.String())

	require.True(t, AlphaNumDash.Contains('-'))
	require.False(t, AlphaNum.Contains('-'))
	require.True(t, AsciiPrintable.Contains('~'))
	require.False(t, AsciiPrintable.Contains(0x7F))
	custom := NewCharSet("Vowels", "aeiou")
	require.True(t, custom.Contains('e'))
	require.False(t, custom.Contains('b'))
}
