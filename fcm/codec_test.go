package fcm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTripChunk(t *testing.T, values []float64) []float64 {
	t.Helper()

	buf := make([]byte, MaxChunkBytes)
	enc := NewEncoder(buf, NewPredictor(DefaultTableSize))
	require.True(t, enc.PutChunk(values))

	dec := NewDecoder(enc.Bytes(), NewPredictor(DefaultTableSize))
	out := make([]float64, ChunkSize)
	require.True(t, dec.NextChunk(out))

	return out
}

func TestCodecRoundTripConstantValues(t *testing.T) {
	values := make([]float64, ChunkSize)
	for i := range values {
		values[i] = 42.0
	}

	got := roundTripChunk(t, values)
	require.Equal(t, values, got)
}

func TestCodecRoundTripVariedValues(t *testing.T) {
	values := []float64{
		0, 1, -1, 3.14159, -3.14159, 1e10, -1e-10, 100, 100, 100.0001,
		math.MaxFloat64, -math.MaxFloat64, math.SmallestNonzeroFloat64, 0, -0.0, 123456.789,
	}
	require.Len(t, values, ChunkSize)

	got := roundTripChunk(t, values)
	require.Equal(t, values, got)
}

func TestCodecBitTransparentForNaNAndInf(t *testing.T) {
	values := make([]float64, ChunkSize)
	values[0] = math.NaN()
	values[1] = math.Inf(1)
	values[2] = math.Inf(-1)
	for i := 3; i < ChunkSize; i++ {
		values[i] = float64(i)
	}

	got := roundTripChunk(t, values)

	require.True(t, math.IsNaN(got[0]))
	require.Equal(t, float64Bits(math.NaN()), float64Bits(got[0]))
	require.Equal(t, math.Inf(1), got[1])
	require.Equal(t, math.Inf(-1), got[2])
	for i := 3; i < ChunkSize; i++ {
		require.Equal(t, values[i], got[i])
	}
}

func TestCodecZeroValueElidesAllBytes(t *testing.T) {
	buf := make([]byte, MaxChunkBytes)
	enc := NewEncoder(buf, NewPredictor(DefaultTableSize))

	values := make([]float64, ChunkSize) // all zero; prediction starts at 0 too
	require.True(t, enc.PutChunk(values))

	// Every pair's flag nibble pair is (8<<4)|8 = 0x88, one byte per pair, no
	// trailing significant bytes at all.
	require.Equal(t, ChunkSize/2, len(enc.Bytes()))
	for _, b := range enc.Bytes() {
		require.Equal(t, byte(0x88), b)
	}
}

func TestEncoderRejectsWrongLength(t *testing.T) {
	buf := make([]byte, MaxChunkBytes)
	enc := NewEncoder(buf, NewPredictor(DefaultTableSize))
	require.False(t, enc.PutChunk(make([]float64, ChunkSize-1)))
}

func TestEncoderRejectsInsufficientRoom(t *testing.T) {
	buf := make([]byte, MaxChunkBytes-1)
	enc := NewEncoder(buf, NewPredictor(DefaultTableSize))
	require.False(t, enc.PutChunk(make([]float64, ChunkSize)))
	require.Equal(t, 0, enc.Pos())
}

func TestDecoderRejectsTruncatedBuffer(t *testing.T) {
	buf := make([]byte, MaxChunkBytes)
	enc := NewEncoder(buf, NewPredictor(DefaultTableSize))

	values := []float64{1.5, 2.25, 3.75, 100.125, -5.5, 6.25, 0, 1,
		2, 3, 4, 5, 6, 7, 8, 9}
	require.True(t, enc.PutChunk(values))

	truncated := enc.Bytes()[:len(enc.Bytes())-1]
	dec := NewDecoder(truncated, NewPredictor(DefaultTableSize))

	out := make([]float64, ChunkSize)
	require.False(t, dec.NextChunk(out))
}

func TestMultipleChunksShareLearnedPredictions(t *testing.T) {
	buf := make([]byte, 4*MaxChunkBytes)
	pred := NewPredictor(DefaultTableSize)
	enc := NewEncoder(buf, pred)

	chunk1 := make([]float64, ChunkSize)
	for i := range chunk1 {
		chunk1[i] = 7.0
	}
	chunk2 := make([]float64, ChunkSize)
	for i := range chunk2 {
		chunk2[i] = 7.0
	}

	require.True(t, enc.PutChunk(chunk1))
	posAfterFirst := enc.Pos()
	require.True(t, enc.PutChunk(chunk2))

	// Second chunk of identical, already-learned values should compress to
	// the same minimal per-pair flag-only encoding as the zero case once the
	// predictor has locked onto the repeating pattern.
	secondChunkBytes := enc.Pos() - posAfterFirst
	require.Equal(t, ChunkSize/2, secondChunkBytes)

	dec := NewDecoder(enc.Bytes(), NewPredictor(DefaultTableSize))
	out1 := make([]float64, ChunkSize)
	out2 := make([]float64, ChunkSize)
	require.True(t, dec.NextChunk(out1))
	require.True(t, dec.NextChunk(out2))
	require.Equal(t, chunk1, out1)
	require.Equal(t, chunk2, out2)
}
