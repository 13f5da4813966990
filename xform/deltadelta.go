package xform

import (
	"github.com/rethinkts/blockcodec/internal/pool"
)

// DeltaDeltaChunkSize is the chunk width used by DeltaDeltaWriter/Reader.
const DeltaDeltaChunkSize = 16

// DeltaDeltaWriter implements the per-chunk-bias delta transform described
// alongside the authoritative timestamp stack: for each chunk of
// DeltaDeltaChunkSize values it computes value-to-value deltas (continuous
// across chunk boundaries via prev), subtracts the chunk's minimum delta,
// and writes the minimum followed by the non-negative residuals.
//
// It is defined for cases where second-order differences are near-zero, but
// is not wired into block.Writer/block.Reader — see DESIGN.md for why this
// path is kept unused rather than deleted.
//
// Grounded on the delta-of-delta encoder shape in the teacher's timestamp
// encoder (buffer growth, panic-after-Finish lifecycle), adapted to the
// chunked min-subtraction algorithm this variant actually specifies.
type DeltaDeltaWriter struct {
	buf      *pool.ByteBuffer
	prev     int64
	scratch  [DeltaDeltaChunkSize]int64
	tempByte [10]byte
}

// NewDeltaDeltaWriter creates a chunked delta-with-bias encoder.
func NewDeltaDeltaWriter() *DeltaDeltaWriter {
	return &DeltaDeltaWriter{buf: pool.GetBlobBuffer()}
}

// PutChunk encodes exactly DeltaDeltaChunkSize signed values.
//
// Wire format per chunk: zigzag+varint(min-delta), then
// DeltaDeltaChunkSize plain varints (delta - min, always >= 0).
func (e *DeltaDeltaWriter) PutChunk(values []int64) bool {
	if len(values) != DeltaDeltaChunkSize {
		return false
	}

	prev := e.prev
	min := int64(0)
	for i, v := range values {
		delta := v - prev
		prev = v
		e.scratch[i] = delta
		if i == 0 || delta < min {
			min = delta
		}
	}

	e.appendSigned(min)
	for _, d := range e.scratch {
		e.appendUnsigned(uint64(d - min)) //nolint:gosec // d-min >= 0 by construction
	}

	e.prev = prev

	return true
}

func (e *DeltaDeltaWriter) appendUnsigned(v uint64) {
	e.buf.Grow(10)
	n := 0
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			e.tempByte[n] = b | 0x80
			n++

			continue
		}
		e.tempByte[n] = b
		n++

		break
	}
	e.buf.MustWrite(e.tempByte[:n])
}

func (e *DeltaDeltaWriter) appendSigned(v int64) {
	e.appendUnsigned(ZigZagEncode64(v))
}

// Bytes returns the encoded byte slice written so far.
func (e *DeltaDeltaWriter) Bytes() []byte { return e.buf.Bytes() }

// Finish returns the writer's buffer to the pool. The writer is unusable
// afterward.
func (e *DeltaDeltaWriter) Finish() {
	if e.buf != nil {
		pool.PutBlobBuffer(e.buf)
		e.buf = nil
	}
}

// DeltaDeltaReader decodes the inverse of DeltaDeltaWriter.
type DeltaDeltaReader struct {
	data []byte
	pos  int
	prev int64
}

// NewDeltaDeltaReader creates a reader over data.
func NewDeltaDeltaReader(data []byte) *DeltaDeltaReader {
	return &DeltaDeltaReader{data: data}
}

// NextChunk decodes DeltaDeltaChunkSize values into out, which must have
// that length.
func (d *DeltaDeltaReader) NextChunk(out []int64) bool {
	if len(out) != DeltaDeltaChunkSize {
		return false
	}

	minZigzag, ok := d.nextVarint()
	if !ok {
		return false
	}
	min := ZigZagDecode64(minZigzag)

	prev := d.prev
	for i := range out {
		residual, ok := d.nextVarint()
		if !ok {
			return false
		}

		delta := int64(residual) + min //nolint:gosec
		prev += delta
		out[i] = prev
	}

	d.prev = prev

	return true
}

func (d *DeltaDeltaReader) nextVarint() (uint64, bool) {
	var v uint64
	var shift uint
	for {
		if d.pos >= len(d.data) {
			return 0, false
		}

		b := d.data[d.pos]
		d.pos++
		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return v, true
		}

		shift += 7
		if shift >= 64 {
			return 0, false
		}
	}
}
