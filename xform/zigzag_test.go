package xform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZigZagRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 2, -2, 100, -100, math.MaxInt64, math.MinInt64}

	for _, v := range values {
		u := ZigZagEncode64(v)
		got := ZigZagDecode64(u)
		require.Equal(t, v, got, "value %d", v)
	}
}

func TestZigZagSmallValuesEncodeSmall(t *testing.T) {
	require.Equal(t, uint64(0), ZigZagEncode64(0))
	require.Equal(t, uint64(1), ZigZagEncode64(-1))
	require.Equal(t, uint64(2), ZigZagEncode64(1))
	require.Equal(t, uint64(3), ZigZagEncode64(-2))
	require.Equal(t, uint64(4), ZigZagEncode64(2))
}
