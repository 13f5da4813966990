package xform

import "github.com/rethinkts/blockcodec/varint"

// RLEWriter run-length-encodes a sequence of uint64 values as (repeat-count,
// value) pairs onto a varint.Writer. A pending run is carried in writer
// state; a differing value flushes the pending pair and begins a new run.
//
// This is the standalone, composable form of the RLE filter described in the
// design. block.Writer's TimestampEncoder inlines the same logic per chunk
// for performance, but the wire output is identical.
type RLEWriter struct {
	w    *varint.Writer
	prev uint64
	reps uint64
}

// NewRLEWriter creates an RLE writer over w.
func NewRLEWriter(w *varint.Writer) *RLEWriter {
	return &RLEWriter{w: w}
}

// Put encodes one value, possibly extending the current run.
func (e *RLEWriter) Put(v uint64) bool {
	if v != e.prev {
		if e.reps != 0 {
			if !e.w.Put(e.reps) || !e.w.Put(e.prev) {
				return false
			}
		}

		e.prev = v
		e.reps = 0
	}

	e.reps++

	return true
}

// Commit flushes the final pending run. It always writes one (reps, value)
// pair, even if Put was never called (reps=0, value=0) — callers that need
// zero writes for an empty run must avoid calling Commit in that case.
func (e *RLEWriter) Commit() bool {
	ok := e.w.Put(e.reps) && e.w.Put(e.prev)
	e.reps = 0
	e.prev = 0

	return ok
}

// RLEReader decodes the inverse of RLEWriter/Commit: a stream of (reps,
// value) pairs, expanded one value at a time.
type RLEReader struct {
	r    *varint.Reader
	prev uint64
	reps uint64
}

// NewRLEReader creates an RLE reader over r.
func NewRLEReader(r *varint.Reader) *RLEReader {
	return &RLEReader{r: r}
}

// Next returns the next value in the run-length-encoded sequence.
func (e *RLEReader) Next() (uint64, bool) {
	if e.reps == 0 {
		reps, ok := e.r.Next()
		if !ok {
			return 0, false
		}

		val, ok := e.r.Next()
		if !ok {
			return 0, false
		}

		if reps == 0 {
			return 0, false
		}

		e.reps = reps
		e.prev = val
	}

	e.reps--

	return e.prev, true
}
