package block

import (
	"github.com/rethinkts/blockcodec/errs"
	"github.com/rethinkts/blockcodec/fcm"
	"github.com/rethinkts/blockcodec/internal/options"
	"github.com/rethinkts/blockcodec/varint"
	"github.com/rethinkts/blockcodec/xform"
)

// readerState is the reader's lifecycle state.
type readerState int

const (
	stateReady readerState = iota
	stateExhausted
	stateCorrupt
)

// Reader decodes a sealed block produced by Writer, one sample at a time, in
// strictly sequential order. It allocates its fixed-size chunk decode
// buffers on construction and nowhere else.
type Reader struct {
	r      *varint.Reader
	tsDec  *xform.TimestampDecoder
	fcmDec *fcm.Decoder

	version  uint16
	seriesID uint64
	nchunks  uint16

	state    readerState
	returned uint64 // samples returned so far

	tsChunk  [ChunkSize]uint64
	valChunk [ChunkSize]float64
	chunkPos int // index into tsChunk/valChunk of the next sample to return; == ChunkSize means exhausted
}

// NewReader parses buf's header and prepares to decode its payload. It
// returns errs.ErrBadArgument if buf is too small to hold a header, and
// errs.ErrCorrupt if the version is unrecognized or ntail is out of range.
func NewReader(buf []byte, opts ...Option) (*Reader, error) {
	if len(buf) < HeaderSize {
		return nil, errs.ErrBadArgument
	}

	cfg := &config{predictorTableSize: fcm.DefaultTableSize}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	r := varint.NewReader(buf)

	h, ok := readHeader(r)
	if !ok {
		return nil, errs.ErrCorrupt
	}

	if h.version != Version {
		return nil, errs.ErrCorrupt
	}

	return &Reader{
		r:        r,
		tsDec:    xform.NewTimestampDecoder(r),
		fcmDec:   fcm.NewDecoder(buf, fcm.NewPredictor(cfg.predictorTableSize)),
		version:  h.version,
		seriesID: h.seriesID,
		nchunks:  h.nchunks,
		chunkPos: ChunkSize,
	}, nil
}

// GetID returns the block's series id.
func (r *Reader) GetID() uint64 { return r.seriesID }

// Version returns the block's format version.
func (r *Reader) Version() uint16 { return r.version }

// NElements returns the authoritative decodable sample count
// (nchunks * ChunkSize). The tail samples recorded in the header are not
// included since they are not present in the sealed payload.
func (r *Reader) NElements() uint64 {
	return uint64(r.nchunks) * ChunkSize
}

// Next decodes and returns the next sample. ok is false once the block is
// exhausted or on any corruption; once false is returned the reader is
// terminal and must not be called again.
func (r *Reader) Next() (ts uint64, value float64, ok bool) {
	switch r.state {
	case stateExhausted, stateCorrupt:
		return 0, 0, false
	}

	if r.chunkPos >= ChunkSize {
		if r.returned >= r.NElements() {
			r.state = stateExhausted

			return 0, 0, false
		}

		if !r.fillChunk() {
			r.state = stateCorrupt

			return 0, 0, false
		}
	}

	ts = r.tsChunk[r.chunkPos]
	value = r.valChunk[r.chunkPos]
	r.chunkPos++
	r.returned++

	return ts, value, true
}

func (r *Reader) fillChunk() bool {
	for i := 0; i < ChunkSize; i++ {
		t, ok := r.tsDec.Next()
		if !ok {
			return false
		}

		r.tsChunk[i] = t
	}

	r.fcmDec.Seek(r.r.Pos())
	if !r.fcmDec.NextChunk(r.valChunk[:]) {
		return false
	}
	r.r.Seek(r.fcmDec.Pos())

	r.chunkPos = 0

	return true
}
