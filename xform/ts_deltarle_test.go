package xform

import (
	"testing"

	"github.com/rethinkts/blockcodec/varint"
	"github.com/stretchr/testify/require"
)

func TestTimestampEncoderRegularSamplingCollapses(t *testing.T) {
	buf := make([]byte, 4096)
	w := varint.NewWriter(buf)
	enc := NewTimestampEncoder(w)

	ts := make([]uint64, ChunkSize)
	for i := range ts {
		ts[i] = uint64(1000 + i*100)
	}

	require.True(t, enc.PutChunk(ts))
	// prev=0 -> first delta 1000, then 15 equal deltas of 100: two RLE pairs.
	require.LessOrEqual(t, w.Pos(), 6)
}

func TestTimestampRoundTrip(t *testing.T) {
	buf := make([]byte, 4096)
	w := varint.NewWriter(buf)
	enc := NewTimestampEncoder(w)

	chunk1 := []uint64{0, 1, 3, 7, 15, 31, 63, 127, 128, 129, 130, 131, 200, 200, 200, 500}
	chunk2 := make([]uint64, ChunkSize)
	for i := range chunk2 {
		chunk2[i] = 500 + uint64(i*10)
	}

	require.True(t, enc.PutChunk(chunk1))
	require.True(t, enc.PutChunk(chunk2))

	r := varint.NewReader(buf[:w.Pos()])
	dec := NewTimestampDecoder(r)

	var got []uint64
	for i := 0; i < 2*ChunkSize; i++ {
		v, ok := dec.Next()
		require.True(t, ok)
		got = append(got, v)
	}

	require.Equal(t, append(append([]uint64{}, chunk1...), chunk2...), got)
}

func TestTimestampEncoderTransactionalOnOverflow(t *testing.T) {
	buf := make([]byte, 3) // not enough room for anything
	w := varint.NewWriter(buf)
	enc := NewTimestampEncoder(w)

	ts := make([]uint64, ChunkSize)
	for i := range ts {
		ts[i] = uint64(i)
	}

	require.False(t, enc.PutChunk(ts))
	require.Equal(t, 0, w.Pos())
}

func TestTimestampDecoderRejectsTruncation(t *testing.T) {
	buf := make([]byte, 4096)
	w := varint.NewWriter(buf)
	enc := NewTimestampEncoder(w)

	ts := make([]uint64, ChunkSize)
	require.True(t, enc.PutChunk(ts))

	r := varint.NewReader(buf[:w.Pos()-1]) // truncate the last byte
	dec := NewTimestampDecoder(r)

	ok := true
	var lastOK bool
	for ok {
		_, lastOK = dec.Next()
		ok = lastOK
	}
	require.False(t, lastOK)
}
