package varint

import (
	"math"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutNextBijection(t *testing.T) {
	require := require.New(t)

	values := []uint64{0, 1, 127, 128, 16383, 16384, 1 << 34, math.MaxUint32, math.MaxUint64}
	buf := make([]byte, 0)
	for range values {
		buf = append(buf, make([]byte, MaxLen)...)
	}

	w := NewWriter(buf)
	for _, v := range values {
		require.True(w.Put(v))
	}

	r := NewReader(w.Bytes())
	for _, want := range values {
		got, ok := r.Next()
		require.True(ok)
		require.Equal(want, got)
	}
}

func TestEncodedLengthMatchesBitLength(t *testing.T) {
	require := require.New(t)

	cases := []uint64{0, 1, 2, 127, 128, 129, 1<<14 - 1, 1 << 14, math.MaxUint64}
	for _, v := range cases {
		buf := make([]byte, MaxLen)
		w := NewWriter(buf)
		require.True(w.Put(v))

		wantLen := 1
		if v != 0 {
			wantLen = (bits.Len64(v) + 6) / 7
		}
		require.Equal(wantLen, w.Pos(), "value %d", v)
	}
}

func TestPutZeroIsSingleByte(t *testing.T) {
	require := require.New(t)

	buf := make([]byte, MaxLen)
	w := NewWriter(buf)
	require.True(w.Put(0))
	require.Equal([]byte{0x00}, w.Bytes())
}

func TestPutFailsWithoutAdvancingCursor(t *testing.T) {
	require := require.New(t)

	buf := make([]byte, 1)
	w := NewWriter(buf)
	require.False(w.Put(200)) // needs 2 bytes
	require.Equal(0, w.Pos())

	require.True(w.Put(100)) // fits in the single byte
	require.Equal(1, w.Pos())
}

func TestTPutAllOrNothing(t *testing.T) {
	require := require.New(t)

	buf := make([]byte, 3)
	w := NewWriter(buf)

	// Each of these needs 1 byte; the fourth would overflow so none commit.
	require.False(w.TPut([]uint64{10, 20, 30, 40}))
	require.Equal(0, w.Pos())

	require.True(w.TPut([]uint64{10, 20, 30}))
	require.Equal(3, w.Pos())
}

func TestReaderRejectsTruncation(t *testing.T) {
	require := require.New(t)

	buf := make([]byte, MaxLen)
	w := NewWriter(buf)
	require.True(w.Put(1 << 40))

	truncated := w.Bytes()[:len(w.Bytes())-1]
	r := NewReader(truncated)
	_, ok := r.Next()
	require.False(ok)
}

func TestRawFields(t *testing.T) {
	require := require.New(t)

	buf := make([]byte, 10)
	w := NewWriter(buf)
	require.True(w.PutRawUint16(0xBEEF))
	require.True(w.PutRawUint64(0x1122334455667788))

	r := NewReader(w.Bytes())
	v16, ok := r.ReadRawUint16()
	require.True(ok)
	require.Equal(uint16(0xBEEF), v16)

	v64, ok := r.ReadRawUint64()
	require.True(ok)
	require.Equal(uint64(0x1122334455667788), v64)
}

func TestAllocateAndPatch(t *testing.T) {
	require := require.New(t)

	buf := make([]byte, 16)
	w := NewWriter(buf)
	off, ok := w.Allocate(2)
	require.True(ok)
	require.True(w.Put(42))

	w.PatchUint16(off, 7)

	r := NewReader(w.Bytes())
	patched, ok := r.ReadRawUint16()
	require.True(ok)
	require.Equal(uint16(7), patched)

	v, ok := r.Next()
	require.True(ok)
	require.Equal(uint64(42), v)
}
