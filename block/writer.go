package block

import (
	"github.com/rethinkts/blockcodec/errs"
	"github.com/rethinkts/blockcodec/fcm"
	"github.com/rethinkts/blockcodec/internal/options"
	"github.com/rethinkts/blockcodec/varint"
	"github.com/rethinkts/blockcodec/xform"
)

// roomForChunk is the conservative worst-case byte cost of flushing one full
// chunk: 16 timestamps, RLE-expanded into as many as 32 varints (one pair
// per differing delta) at up to varint.MaxLen bytes each, plus one FCM
// chunk's worst case (every value mispredicted).
const roomForChunk = xform.ChunkSize*2*varint.MaxLen + fcm.MaxChunkBytes

// config holds writer construction options.
type config struct {
	predictorTableSize int
}

// Option configures a Writer at construction.
type Option = options.Option[*config]

// WithPredictorTableSize overrides the FCM predictor's table size. It must
// be called before NewWriter; the table size is fixed for the block's
// lifetime and must match the size the corresponding Reader is given.
func WithPredictorTableSize(n int) Option {
	return options.NoError(func(c *config) {
		c.predictorTableSize = n
	})
}

// Writer packs (timestamp, value) samples belonging to one series into a
// caller-owned, fixed-size buffer. It buffers up to ChunkSize-1 samples in
// scratch and flushes a full chunk transactionally through the timestamp and
// FCM compressors. It performs no allocation after construction.
type Writer struct {
	vw     *varint.Writer
	tsEnc  *xform.TimestampEncoder
	fcmEnc *fcm.Encoder

	nchunksOff int
	ntailOff   int
	nchunks    uint16

	sealed      bool
	sealedBytes int

	tsScratch  [ChunkSize]uint64
	valScratch [ChunkSize]float64
	scratchLen int
}

// NewWriter constructs a writer over buf for the given series id. buf's full
// length is the block's usable size; callers that want a smaller logical
// block than their allocation should pass a sub-slice.
//
// Construction fails if buf is too small to hold the header and a single
// worst-case chunk.
func NewWriter(buf []byte, seriesID uint64, opts ...Option) (*Writer, error) {
	if len(buf) < HeaderSize+roomForChunk {
		return nil, errs.ErrBadArgument
	}

	cfg := &config{predictorTableSize: fcm.DefaultTableSize}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	vw := varint.NewWriter(buf)

	nchunksOff, ntailOff, ok := writeHeader(vw, seriesID)
	if !ok {
		return nil, errs.ErrBadArgument
	}

	return &Writer{
		vw:         vw,
		tsEnc:      xform.NewTimestampEncoder(vw),
		fcmEnc:     fcm.NewEncoder(buf, fcm.NewPredictor(cfg.predictorTableSize)),
		nchunksOff: nchunksOff,
		ntailOff:   ntailOff,
	}, nil
}

// Put buffers one sample. Every ChunkSize-th sample triggers a transactional
// flush of the whole chunk. It returns errs.ErrStateError once the writer
// has been sealed, and errs.ErrOverflow if the block has no room left for
// another chunk — in the overflow case the sample is not consumed and
// remains available via ReadTailElements.
func (w *Writer) Put(ts uint64, value float64) error {
	if w.sealed {
		return errs.ErrStateError
	}

	w.tsScratch[w.scratchLen] = ts
	w.valScratch[w.scratchLen] = value
	w.scratchLen++

	if w.scratchLen < ChunkSize {
		return nil
	}

	if !w.flushChunk() {
		w.scratchLen--

		return errs.ErrOverflow
	}

	w.scratchLen = 0
	w.nchunks++

	return nil
}

// flushChunk attempts to encode the current full scratch chunk, restoring
// the shared cursor on any failure so no partial chunk ever reaches the
// buffer.
func (w *Writer) flushChunk() bool {
	if w.vw.Remaining() < roomForChunk {
		return false
	}

	start := w.vw.Pos()

	if !w.tsEnc.PutChunk(w.tsScratch[:]) {
		w.vw.Seek(start)

		return false
	}

	w.fcmEnc.Seek(w.vw.Pos())
	if !w.fcmEnc.PutChunk(w.valScratch[:]) {
		w.vw.Seek(start)

		return false
	}

	w.vw.Seek(w.fcmEnc.Pos())

	return true
}

// Commit seals the block: it backfills the header's nchunks and ntail
// fields and returns the total number of bytes used (header plus payload).
// The scratch tail samples are not persisted; use ReadTailElements first if
// they must survive.
//
// Commit is idempotent: calling it again returns the same byte count
// without altering the sealed content.
func (w *Writer) Commit() int {
	if w.sealed {
		return w.sealedBytes
	}

	w.vw.PatchUint16(w.nchunksOff, w.nchunks)
	w.vw.PatchUint16(w.ntailOff, uint16(w.scratchLen)) //nolint:gosec // scratchLen < ChunkSize

	w.sealed = true
	w.sealedBytes = w.vw.Pos()

	return w.sealedBytes
}

// ReadTailElements copies the current scratch (not-yet-flushed) samples
// into outTS and outVal, which must each have length >= GetWriteIndex() -
// nchunks*ChunkSize. It returns the number of samples copied.
func (w *Writer) ReadTailElements(outTS []uint64, outVal []float64) int {
	n := copy(outTS, w.tsScratch[:w.scratchLen])
	copy(outVal, w.valScratch[:w.scratchLen])

	return n
}

// GetWriteIndex returns the total number of samples accepted so far,
// flushed or not.
func (w *Writer) GetWriteIndex() uint64 {
	return uint64(w.nchunks)*ChunkSize + uint64(w.scratchLen)
}

// Bytes returns the portion of the backing buffer written so far: the
// header plus every flushed chunk. Before Commit this excludes the header's
// final nchunks/ntail values (still zeroed placeholders); after Commit it
// is exactly the sealed block.
func (w *Writer) Bytes() []byte {
	return w.vw.Bytes()
}
