// Package blockcodec is the top-level convenience entry point for the block
// storage and compression subsystem: packing (series id, timestamp, value)
// samples into fixed-size blocks and reading them back.
//
// Most callers only need this package and its two constructors; the
// component packages (varint, xform, fcm, block, compress, seriesid) are
// exported for callers building a custom pipeline (e.g. a block store that
// wants to compress sealed blocks with a non-default algorithm before
// writing them to disk).
package blockcodec

import (
	"github.com/rethinkts/blockcodec/block"
	"github.com/rethinkts/blockcodec/compress"
)

// Writer packs samples for one series into a block.
type Writer = block.Writer

// Reader streams samples back out of a sealed block.
type Reader = block.Reader

// Option configures predictor sizing shared by NewWriter and NewReader.
type Option = block.Option

// WithPredictorTableSize overrides the FCM predictor's table size. Writer
// and Reader for the same block must agree on this value.
func WithPredictorTableSize(n int) Option {
	return block.WithPredictorTableSize(n)
}

// NewWriter constructs a Writer over buf for seriesID. See block.NewWriter
// for the full contract.
func NewWriter(buf []byte, seriesID uint64, opts ...Option) (*Writer, error) {
	return block.NewWriter(buf, seriesID, opts...)
}

// NewReader constructs a Reader over a sealed block's bytes. See
// block.NewReader for the full contract.
func NewReader(buf []byte, opts ...Option) (*Reader, error) {
	return block.NewReader(buf, opts...)
}

// SealAndCompress commits w and compresses the sealed bytes with algorithm,
// returning the compressed block ready for handoff to a block store.
func SealAndCompress(w *Writer, algorithm compress.Algorithm) ([]byte, error) {
	w.Commit()

	codec, err := compress.GetCodec(algorithm)
	if err != nil {
		return nil, err
	}

	return codec.Compress(w.Bytes())
}
