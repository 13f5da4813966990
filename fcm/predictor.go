// Package fcm implements a finite-context-method predictor for float64
// time-series values and the XOR/leading-zero-byte codec built on top of it.
//
// The predictor keeps a fixed-size table of recently seen bit patterns
// indexed by a rolling hash; the codec writes only the bytes where a value's
// bits differ from the table's prediction, eliding matching leading bytes.
package fcm

import "math"

// DefaultTableSize is the table size used when a block's size does not
// otherwise dictate one. It sits in the 128-512 entry range recommended for
// a block in the few-KiB range.
const DefaultTableSize = 256

// Predictor is a fixed, never-resized hash table of the last-seen bit
// pattern at each hash bucket, used to guess the next float64 before it
// arrives. It holds no dynamic state beyond the table itself: construction
// performs the only allocation in its lifetime.
type Predictor struct {
	table    []uint64
	mask     uint64
	lastHash uint64
}

// NewPredictor creates a predictor with a table of tableSize entries.
// tableSize must be a power of two; it is rounded up to the next power of
// two otherwise.
func NewPredictor(tableSize int) *Predictor {
	size := nextPowerOfTwo(tableSize)

	return &Predictor{
		table: make([]uint64, size),
		mask:  uint64(size - 1),
	}
}

// Reset zeros the table and the rolling hash, as required at the start of
// every new block.
func (p *Predictor) Reset() {
	for i := range p.table {
		p.table[i] = 0
	}
	p.lastHash = 0
}

// PredictNext returns the bit pattern predicted for the next value.
func (p *Predictor) PredictNext() uint64 {
	return p.table[p.lastHash]
}

// Update records v's bit pattern at the current hash bucket and advances the
// rolling hash for the next prediction.
func (p *Predictor) Update(bits uint64) {
	p.table[p.lastHash] = bits
	p.lastHash = ((p.lastHash << 6) ^ (bits >> 48)) & p.mask
}

// PredictAndUpdate is a convenience wrapper combining PredictNext with the
// Update call that must follow once the actual value is known, mirroring the
// predict-then-learn sequence both the encoder and decoder perform per
// value.
func (p *Predictor) PredictAndUpdate(actualBits uint64) (predicted uint64) {
	predicted = p.PredictNext()
	p.Update(actualBits)

	return predicted
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	size := 1
	for size < n {
		size <<= 1
	}

	return size
}

func float64Bits(v float64) uint64 { return math.Float64bits(v) }

func bitsToFloat64(v uint64) float64 { return math.Float64frombits(v) }
