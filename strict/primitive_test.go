package strict

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/strict-types/strict-encoding-sub000/internal/testutil/testlog"
)

func TestPrimitiveCodes(t *testing.T) {
	testlog.Start(t)

	cases := []struct {
		p     Primitive
		class NumClass
		size  uint16
		name  string
	}{
		{PrimU8, ClassUnsigned, 1, "U8"},
		{PrimU24, ClassUnsigned, 3, "U24"},
		{PrimU160, ClassUnsigned, 20, "U160"},
		{PrimU256, ClassUnsigned, 32, "U256"},
		{PrimU512, ClassUnsigned, 64, "U512"},
		{PrimU1024, ClassUnsigned, 128, "U1024"},
		{PrimI64, ClassSigned, 8, "I64"},
		{PrimI1024, ClassSigned, 128, "I1024"},
		{PrimN128, ClassNonZero, 16, "N128"},
		{PrimF16, ClassFloat, 2, "F16"},
		{PrimF80, ClassFloat, 10, "F80"},
		{PrimF256, ClassFloat, 32, "F256"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.class, tc.p.Class(), tc.name)
		require.Equal(t, tc.size, tc.p.ByteSize(), tc.name)
		require.Equal(t, tc.name, tc.p.String())
		require.Equal(t, tc.p, NewPrimitive(tc.class, tc.size), tc.name)

		parsed, err := ParsePrimitive(uint8(tc.p))
		require.NoError(t, err)
		require.Equal(t, tc.p, parsed)
	}

	require.Equal(t, "()", UNIT.String())
	require.Equal(t, uint16(1), BYTE.ByteSize())
	require.Equal(t, uint16(2), F16B.ByteSize())
	require.Equal(t, "F16b", F16B.String())
}

func TestParsePrimitiveRejectsUnknownCodes(t *testing.T) {
	testlog.Start(t)

	for _, code := range []uint8{0x80, 0x09, 0x27, 0xC3, 0xA0} {
		_, err := ParsePrimitive(code)
		var integrity *DataIntegrityError
		require.ErrorAs(t, err, &integrity, "code %#x", code)
	}

	require.Panics(t, func() { NewPrimitive(ClassNonZero, 32) })
	require.Panics(t, func() { NewPrimitive(ClassFloat, 3) })
}

func TestSizingDisplay(t *testing.T) {
	testlog.Start(t)

	require.Equal(t, "", SizingU16.String())
	require.Equal(t, " ^ ..0xff", SizingU8.String())
	require.Equal(t, " ^ 1..", SizingU16NonEmpty.String())
	require.Equal(t, " ^ 1..0xff", SizingU8NonEmpty.String())
	require.Equal(t, " ^ 32", FixedSizing(32).String())
	require.Equal(t, " ^ ..0xffffff", SizingU24.String())

	require.True(t, SizingU8.Contains(255))
	require.False(t, SizingU8NonEmpty.Contains(0))
	require.Panics(t, func() { NewSizing(3, 2) })

	require.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0, 0xFF, 0, 0, 0, 0, 0, 0, 0}, mustSerialize(t, SizingU8NonEmpty))
}
