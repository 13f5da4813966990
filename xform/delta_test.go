package xform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeltaWriterAndReaderRoundTrip(t *testing.T) {
	values := []uint64{10, 15, 15, 12, 100, 100, 0, 5}

	var w DeltaWriter
	var r DeltaReader

	for _, v := range values {
		d := w.Delta(v)
		got := r.Undelta(d)
		require.Equal(t, v, got)
	}
}

func TestDeltaWriterFirstDeltaIsAbsoluteValue(t *testing.T) {
	var w DeltaWriter
	require.Equal(t, uint64(42), w.Delta(42))
}

func TestDeltaWriterHandlesWraparound(t *testing.T) {
	var w DeltaWriter
	var r DeltaReader

	d1 := w.Delta(5)
	got1 := r.Undelta(d1)
	require.Equal(t, uint64(5), got1)

	d2 := w.Delta(2) // decreasing value wraps in the unsigned domain
	got2 := r.Undelta(d2)
	require.Equal(t, uint64(2), got2)
}
