package strict

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/strict-types/strict-encoding-sub000/internal/testutil/testlog"
)

func TestWideIntegers(t *testing.T) {
	testlog.Start(t)

	two64 := new(big.Int).Lsh(big.NewInt(1), 64)
	u, err := U128FromBig(two64)
	require.NoError(t, err)
	data := mustSerialize(t, u)
	require.Len(t, data, 16)
	require.Equal(t, byte(1), data[8])
	require.Zero(t, two64.Cmp(u.Big()))

	minusOne, err := I128FromBig(big.NewInt(-1))
	require.NoError(t, err)
	for _, b := range mustSerialize(t, minusOne) {
		require.Equal(t, byte(0xFF), b)
	}
	require.Zero(t, big.NewInt(-1).Cmp(minusOne.Big()))

	var rangeErr *ValueOutOfRangeError
	_, err = U256FromBig(big.NewInt(-1))
	require.ErrorAs(t, err, &rangeErr)
	_, err = I128FromBig(new(big.Int).Lsh(big.NewInt(1), 127))
	require.ErrorAs(t, err, &rangeErr)

	lowest := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 1023))
	i, err := I1024FromBig(lowest)
	require.NoError(t, err)
	require.Zero(t, lowest.Cmp(i.Big()))

	one, err := I128FromBig(big.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, -1, minusOne.Compare(one))
	require.Equal(t, 1, one.Compare(minusOne))

	small, err := U512FromBig(big.NewInt(0xFF))
	require.NoError(t, err)
	large, err := U512FromBig(big.NewInt(0x100))
	require.NoError(t, err)
	require.Equal(t, -1, small.Compare(large))

	var back U1024
	require.NoError(t, Deserialize(make([]byte, 128), &back, testLimit))
	require.Zero(t, back.Big().Sign())
}
