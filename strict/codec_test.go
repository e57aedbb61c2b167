package strict

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/strict-types/strict-encoding-sub000/internal/testutil/testlog"
)

const testLimit = 1 << 20

func mustSerialize(t *testing.T, v Encoder) []byte {
	t.Helper()
	b, err := Serialize(v, testLimit)
	require.NoError(t, err)
	return b
}

func TestNumericWidthVectors(t *testing.T) {
	testlog.Start(t)

	require.Equal(t, []byte{0x02, 0x01}, mustSerialize(t, U16(258)))

	var u16 U16
	require.NoError(t, Deserialize([]byte{0x02, 0x01}, &u16, testLimit))
	require.Equal(t, U16(258), u16)

	var u8 U8
	require.NoError(t, Deserialize([]byte{0xFF}, &u8, testLimit))
	require.Equal(t, U8(255), u8)
}

func TestNewtypeVector(t *testing.T) {
	testlog.Start(t)

	got := mustSerialize(t, word{v: 0xCAFE})
	require.Equal(t, []byte{0xFE, 0xCA}, got)

	var back word
	require.NoError(t, Deserialize(got, &back, testLimit))
	require.Equal(t, U16(0xCAFE), back.v)
}

func TestConfinedBytesVector(t *testing.T) {
	testlog.Start(t)

	data := []byte{0xCA, 0xFE, 0xDE, 0xAD, 0xBE, 0xD8, 0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xFF, 0x00, 0x01}
	got := mustSerialize(t, blob{data: MustBytes[Small](data)})
	require.Equal(t, append([]byte{0x10, 0x00}, data...), got)

	var back blob
	require.NoError(t, Deserialize(got, &back, testLimit))
	require.Equal(t, data, back.data.Bytes())
}

func TestUnionVectors(t *testing.T) {
	testlog.Start(t)

	cases := []struct {
		name string
		v    sample
		want []byte
	}{
		{"newtype", sample{kind: 0, b: 0xC8}, []byte{0x00, 0xC8}},
		{"tuple", sample{kind: 1, w: 0x0102, b: 0x03}, []byte{0x01, 0x02, 0x01, 0x03}},
		{"unit", sample{kind: 2}, []byte{0x02}},
		{"struct", sample{kind: 3, w: 7, flag: true}, []byte{0x03, 0x07, 0x00, 0x01}},
		{"last unit", sample{kind: 4}, []byte{0x04}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mustSerialize(t, tc.v)
			require.Equal(t, tc.want, got)

			var back sample
			require.NoError(t, Deserialize(got, &back, testLimit))
			require.Equal(t, tc.v, back)
		})
	}
}

func TestSkippedFieldVector(t *testing.T) {
	testlog.Start(t)

	got := mustSerialize(t, note{data: MustString[Small]("String"), ephemeral: true})
	require.Equal(t, []byte{0x06, 0x00, 'S', 't', 'r', 'i', 'n', 'g'}, got)

	back := note{ephemeral: true}
	require.NoError(t, Deserialize(got, &back, testLimit))
	require.Equal(t, "String", back.data.String())
	require.False(t, back.ephemeral)
}

type roundTrip struct {
	name string
	v    Encoder
	dst  Decoder
}

func TestRoundTrip(t *testing.T) {
	testlog.Start(t)

	u24, err := NewU24(0xABCDEF)
	require.NoError(t, err)
	i24, err := NewI24(-5)
	require.NoError(t, err)
	nz, err := NewNonZeroU32(9)
	require.NoError(t, err)

	cases := []roundTrip{
		{"u8", U8(7), new(U8)},
		{"u24", u24, new(U24)},
		{"u32", U32(math.MaxUint32), new(U32)},
		{"u64", U64(1 << 60), new(U64)},
		{"i8", I8(-128), new(I8)},
		{"i16", I16(-2), new(I16)},
		{"i24", i24, new(I24)},
		{"i32", I32(math.MinInt32), new(I32)},
		{"i64", I64(-1), new(I64)},
		{"nonzero", nz, new(NonZeroU32)},
		{"byte", Byte(0xAB), new(Byte)},
		{"bool", Bool(true), new(Bool)},
		{"unit", Unit{}, new(Unit)},
		{"f16", NewF16(1.5), new(F16)},
		{"f32", F32(-0.25), new(F32)},
		{"f64", F64(math.Pi), new(F64)},
		{"f80", F80{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, new(F80)},
		{"ascii", MustASCII[Tiny]("hello, world"), new(ASCII[Tiny])},
		{"unicode", MustString[Medium]("żółw"), new(String[Medium])},
		{"rstring", MustRString[IdentChars, Tiny]("_ab9"), new(RString[IdentChars, Tiny])},
		{"list", MustList[I16, Small](1, -1, 3), new(List[I16, Small])},
		{"set", MustSet[U16, Tiny](9, 3, 5), new(Set[U16, Tiny])},
		{"map", MustMap[TypeName, U8, Tiny](Entry[TypeName, U8]{MustTypeName("B"), 2}, Entry[TypeName, U8]{MustTypeName("A"), 1}), new(Map[TypeName, U8, Tiny])},
		{"array", MustArray[U8, Len3](1, 2, 3), new(Array[U8, Len3])},
		{"bytes32", Bytes32{31: 0xFF}, new(Bytes32)},
		{"option some", Some(U16(5)), new(Option[U16])},
		{"option none", None[U16](), new(Option[U16])},
		{"pair", Pair(U8(1), Bool(false)), new(Tuple2[U8, Bool])},
		{"triple", Triple(U8(1), I8(-1), MustString[Tiny]("x")), new(Tuple3[U8, I8, String[Tiny]])},
		{"struct", point{x: -3, y: 4}, new(point)},
		{"tree", tree{node: true, children: MustList[tree, Tiny](tree{leaf: 1}, tree{node: true})}, new(tree)},
		{"enum", color(7), new(color)},
		{"sizing", SizingU16NonEmpty, new(Sizing)},
		{"variant", V(3, "some"), new(Variant)},
		{"ident", MustIdent("_x1"), new(Ident)},
		{"lib", MustLibName("StdLib"), new(LibName)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := mustSerialize(t, tc.v)
			n, err := SerializedLen(tc.v, testLimit)
			require.NoError(t, err)
			require.Equal(t, len(data), n)

			require.NoError(t, Deserialize(data, tc.dst, testLimit))
			again, ok := tc.dst.(Encoder)
			require.True(t, ok)
			require.Equal(t, data, mustSerialize(t, again))
		})
	}
}

func TestFloatBitPatterns(t *testing.T) {
	testlog.Start(t)

	require.Equal(t, []byte{0x00, 0x3C}, mustSerialize(t, NewF16(1)))
	require.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, mustSerialize(t, F32(1)))
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xF0, 0xBF}, mustSerialize(t, F64(-1)))
	require.Len(t, mustSerialize(t, F256{}), 32)
}

func TestMalformedInput(t *testing.T) {
	testlog.Start(t)

	var b Bool
	var tagErr *EnumTagError
	require.ErrorAs(t, Deserialize([]byte{0x02}, &b, testLimit), &tagErr)
	require.Equal(t, uint8(2), tagErr.Tag)
	require.Equal(t, "Bool", tagErr.Type)

	var c color
	require.ErrorAs(t, Deserialize([]byte{0x02}, &c, testLimit), &tagErr)
	require.NoError(t, Deserialize([]byte{0x07}, &c, testLimit))

	var s sample
	var unionErr *UnionTagError
	require.ErrorAs(t, Deserialize([]byte{0x05}, &s, testLimit), &unionErr)
	require.Equal(t, "Sample", unionErr.Type)

	var nz NonZeroU8
	require.ErrorIs(t, Deserialize([]byte{0x00}, &nz, testLimit), ErrZeroNatural)

	var str String[Small]
	var utfErr *UTF8Error
	require.ErrorAs(t, Deserialize([]byte{0x02, 0x00, 'a', 0xFF}, &str, testLimit), &utfErr)
	require.Equal(t, 1, utfErr.Pos)

	var ascii ASCII[Tiny]
	var asciiErr *ASCIIError
	require.ErrorAs(t, Deserialize([]byte{0x02, 'o', 0x07}, &ascii, testLimit), &asciiErr)
	require.Equal(t, byte(0x07), asciiErr.Char)

	var dec RString[DecChars, Tiny]
	var csErr *CharsetError
	require.ErrorAs(t, Deserialize([]byte{0x03, '1', '2', 'a'}, &dec, testLimit), &csErr)
	require.Equal(t, 2, csErr.Pos)
	require.Equal(t, "Dec", csErr.Charset)

	var sz Sizing
	var integrity *DataIntegrityError
	require.ErrorAs(t, Deserialize([]byte{2, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0}, &sz, testLimit), &integrity)
}

func TestOutOfRangeValues(t *testing.T) {
	testlog.Start(t)

	var rangeErr *ValueOutOfRangeError
	_, err := NewU24(1 << 24)
	require.ErrorAs(t, err, &rangeErr)
	_, err = NewI24(-1<<23 - 1)
	require.ErrorAs(t, err, &rangeErr)
	_, err = NewNonZeroU64(0)
	require.ErrorIs(t, err, ErrZeroNatural)

	_, err = Serialize(U24(1<<24), testLimit)
	require.ErrorAs(t, err, &rangeErr)
	_, err = Serialize(NonZeroU16(0), testLimit)
	require.ErrorIs(t, err, ErrZeroNatural)

	var i24 I24
	require.NoError(t, Deserialize([]byte{0xFF, 0xFF, 0xFF}, &i24, testLimit))
	require.Equal(t, I24(-1), i24)
}

func TestTrailingAndTruncatedInput(t *testing.T) {
	testlog.Start(t)

	var u16 U16
	err := Deserialize([]byte{0x01, 0x02, 0x03}, &u16, testLimit)
	require.ErrorIs(t, err, ErrDataNotEntirelyConsumed)

	err = Deserialize([]byte{0x01}, &u16, testLimit)
	require.ErrorIs(t, err, ErrTruncated)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var bs Bytes[Small]
	err = Deserialize([]byte{0x05, 0x00, 1, 2}, &bs, testLimit)
	require.ErrorIs(t, err, ErrTruncated)

	// Decode leaves the rest of a stream alone.
	r := bytes.NewReader([]byte{0x01, 0x02, 0x03})
	require.NoError(t, Decode(r, &u16, testLimit))
	require.Equal(t, 1, r.Len())
}

func TestSizeLimit(t *testing.T) {
	testlog.Start(t)

	_, err := Serialize(U32(1), 3)
	require.ErrorIs(t, err, ErrSizeLimit)

	n, err := Encode(io.Discard, point{x: 1, y: 2}, 3)
	require.ErrorIs(t, err, ErrSizeLimit)
	require.Equal(t, 2, n)

	var bs Bytes[Large]
	err = Deserialize([]byte{0xFF, 0xFF, 0xFF, 0x00}, &bs, 64)
	require.ErrorIs(t, err, ErrSizeLimit)
	require.False(t, errors.Is(err, ErrTruncated))
}
