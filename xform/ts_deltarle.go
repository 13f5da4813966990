package xform

import "github.com/rethinkts/blockcodec/varint"

// ChunkSize is the number of samples flushed together as one logical unit by
// the block codec (see block.Writer). It is defined here, rather than in the
// block package, because it bounds the fixed scratch buffers below.
const ChunkSize = 16

// maxPairsPerChunk is the worst case: every delta in the chunk differs from
// its predecessor, producing one (repeat, value) RLE pair per sample, i.e.
// 2*ChunkSize varints in pairBuf.
const maxPairsPerChunk = ChunkSize * 2

// TimestampEncoder implements the authoritative timestamp compression stack
// for u64 timestamps: Delta -> RLE -> VarInt.
//
// The delta term (prevTS) is continuous across the whole block: each call to
// PutChunk computes deltas against the last timestamp accepted by the
// previous chunk. The RLE term, by contrast, is local to each chunk: its
// run state is force-flushed at the end of every PutChunk call, which is
// what makes each chunk's timestamp sub-stream self-describing in the
// interleaved block payload without a per-chunk size prefix.
type TimestampEncoder struct {
	w       *varint.Writer
	prevTS  uint64
	pairBuf [maxPairsPerChunk]uint64
}

// NewTimestampEncoder creates a timestamp encoder writing into w.
func NewTimestampEncoder(w *varint.Writer) *TimestampEncoder {
	return &TimestampEncoder{w: w}
}

// PutChunk encodes exactly len(ts) timestamps (normally ChunkSize) as one
// transactional unit: either the whole chunk reaches the byte stream, or
// none of it does and prevTS is left unchanged.
func (e *TimestampEncoder) PutChunk(ts []uint64) bool {
	pairs := e.pairBuf[:0]

	var runVal, reps uint64
	prevTS := e.prevTS
	for _, t := range ts {
		delta := t - prevTS
		prevTS = t

		if delta != runVal {
			if reps != 0 {
				pairs = append(pairs, reps, runVal)
			}

			runVal = delta
			reps = 0
		}

		reps++
	}
	pairs = append(pairs, reps, runVal)

	if !e.w.TPut(pairs) {
		return false
	}

	e.prevTS = prevTS

	return true
}

// TimestampDecoder decodes the VarInt -> RLE -> Delta -> u64 inverse of
// TimestampEncoder. It is stateful and strictly sequential: each Next call
// advances through the shared byte stream.
type TimestampDecoder struct {
	r      *varint.Reader
	curTS  uint64
	runVal uint64
	reps   uint64
}

// NewTimestampDecoder creates a timestamp decoder reading from r.
func NewTimestampDecoder(r *varint.Reader) *TimestampDecoder {
	return &TimestampDecoder{r: r}
}

// Next decodes and returns the next timestamp. ok is false on truncation or
// a malformed (zero-length) run.
func (d *TimestampDecoder) Next() (ts uint64, ok bool) {
	if d.reps == 0 {
		reps, ok := d.r.Next()
		if !ok {
			return 0, false
		}

		val, ok := d.r.Next()
		if !ok {
			return 0, false
		}

		if reps == 0 {
			return 0, false
		}

		d.reps = reps
		d.runVal = val
	}

	d.reps--
	d.curTS += d.runVal

	return d.curTS, true
}
