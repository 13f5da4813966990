package fcm

import "math/bits"

// ChunkSize is the number of values encoded together as one unit. It mirrors
// the sample chunk width used by the timestamp stack and must stay in sync
// with it, since a block chunk flush always pairs the two.
const ChunkSize = 16

// MaxChunkBytes is the worst-case encoded size of one ChunkSize-value chunk:
// 8 pairs, each up to 1 flag byte plus 8+8 significant bytes when neither
// value's prediction matches at all (lz=0 for both).
const MaxChunkBytes = (ChunkSize / 2) * (1 + 8 + 8)

// Encoder writes float64 values as the XOR-with-prediction, leading-zero-byte
// elided wire format, pairing two values under one flag byte. It writes
// directly into a caller-owned, fixed-capacity byte slice and never
// allocates.
type Encoder struct {
	buf  []byte
	pos  int
	pred *Predictor
}

// NewEncoder creates an encoder writing into buf starting at offset 0, using
// pred as its prediction table. The caller is responsible for resetting pred
// at the start of a new block.
func NewEncoder(buf []byte, pred *Predictor) *Encoder {
	return &Encoder{buf: buf, pred: pred}
}

// Pos returns the current write cursor.
func (e *Encoder) Pos() int { return e.pos }

// Seek repositions the write cursor. block.Writer uses this to keep the
// timestamp stream's varint.Writer and this encoder advancing over the same
// shared buffer, one chunk's worth of timestamps then values at a time.
func (e *Encoder) Seek(pos int) { e.pos = pos }

// Remaining returns the number of unused bytes left in buf.
func (e *Encoder) Remaining() int { return len(e.buf) - e.pos }

// Bytes returns the portion of buf written so far.
func (e *Encoder) Bytes() []byte { return e.buf[:e.pos] }

// PutChunk encodes exactly ChunkSize values as ChunkSize/2 flag-prefixed
// pairs. It fails, leaving the cursor unchanged, if fewer than MaxChunkBytes
// remain — the same conservative, no-partial-write contract as
// varint.Writer.TPut, sized for the true worst case rather than the average.
func (e *Encoder) PutChunk(values []float64) bool {
	if len(values) != ChunkSize {
		return false
	}

	if e.Remaining() < MaxChunkBytes {
		return false
	}

	for i := 0; i < ChunkSize; i += 2 {
		e.putPair(values[i], values[i+1])
	}

	return true
}

func (e *Encoder) putPair(a, b float64) {
	flagA, nA, bytesA := e.code(a)
	flagB, nB, bytesB := e.code(b)

	e.buf[e.pos] = (flagA << 4) | flagB
	e.pos++

	copy(e.buf[e.pos:], bytesA[:nA])
	e.pos += nA

	copy(e.buf[e.pos:], bytesB[:nB])
	e.pos += nB
}

// code computes one value's flag nibble, significant byte count, and
// significant bytes (little-endian, low n bytes of the XOR), advancing the
// predictor.
func (e *Encoder) code(v float64) (flag byte, n int, out [8]byte) {
	actual := float64Bits(v)
	predicted := e.pred.PredictAndUpdate(actual)
	xor := actual ^ predicted

	lz := leadingZeroBytes(xor)
	n = 8 - lz
	for i := 0; i < n; i++ {
		out[i] = byte(xor >> (8 * i))
	}

	return byte(lz), n, out
}

// Decoder reverses Encoder: given the flag-prefixed byte stream and a
// predictor in the same state the encoder started from, it reproduces the
// original values exactly, including NaN and infinity bit patterns.
type Decoder struct {
	buf  []byte
	pos  int
	pred *Predictor
}

// NewDecoder creates a decoder reading from buf starting at offset 0.
func NewDecoder(buf []byte, pred *Predictor) *Decoder {
	return &Decoder{buf: buf, pred: pred}
}

// Pos returns the current read cursor.
func (d *Decoder) Pos() int { return d.pos }

// Seek repositions the read cursor, mirroring Encoder.Seek.
func (d *Decoder) Seek(pos int) { d.pos = pos }

// NextChunk decodes ChunkSize values into out, which must have that length.
// ok is false if buf is truncated mid-pair.
func (d *Decoder) NextChunk(out []float64) bool {
	if len(out) != ChunkSize {
		return false
	}

	for i := 0; i < ChunkSize; i += 2 {
		a, b, ok := d.nextPair()
		if !ok {
			return false
		}

		out[i] = a
		out[i+1] = b
	}

	return true
}

func (d *Decoder) nextPair() (a, b float64, ok bool) {
	if d.pos >= len(d.buf) {
		return 0, 0, false
	}

	flagByte := d.buf[d.pos]
	d.pos++

	flagA := flagByte >> 4
	flagB := flagByte & 0x0f

	a, ok = d.decodeOne(flagA)
	if !ok {
		return 0, 0, false
	}

	b, ok = d.decodeOne(flagB)
	if !ok {
		return 0, 0, false
	}

	return a, b, true
}

func (d *Decoder) decodeOne(flag byte) (float64, bool) {
	n := 8 - int(flag)
	if n < 0 || n > 8 || d.pos+n > len(d.buf) {
		return 0, false
	}

	var xor uint64
	for i := 0; i < n; i++ {
		xor |= uint64(d.buf[d.pos+i]) << (8 * i)
	}
	d.pos += n

	predicted := d.pred.PredictNext()
	actual := xor ^ predicted
	d.pred.Update(actual)

	return bitsToFloat64(actual), true
}

// leadingZeroBytes returns the number of all-zero bytes at the high-order
// end of v (0..8). v == 0 yields 8, matching the "no bytes follow" edge case
// where the prediction equals the actual value exactly.
func leadingZeroBytes(v uint64) int {
	return bits.LeadingZeros64(v) / 8
}
