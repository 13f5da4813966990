// Package block implements the fixed-size, single-series sample block: a
// writer that packs (timestamp, value) samples into chunks of 16 through the
// timestamp and FCM compressors, and a reader that streams them back out.
package block

import "github.com/rethinkts/blockcodec/varint"

// Version is the only header version this package currently writes and the
// only one its reader accepts.
const Version uint16 = 1

// HeaderSize is the fixed width, in bytes, of the block prefix: version (2),
// nchunks (2), ntail (2), series id (8).
const HeaderSize = 14

// ChunkSize is the number of samples flushed together as one unit.
const ChunkSize = 16

// header is the decoded form of the 14-byte block prefix.
type header struct {
	version  uint16
	nchunks  uint16
	ntail    uint16
	seriesID uint64
}

// writeHeader stamps a header onto w at the current cursor (expected to be
// 0), reserving offsets for nchunks/ntail so they can be patched at commit.
// It returns those offsets.
func writeHeader(w *varint.Writer, seriesID uint64) (nchunksOff, ntailOff int, ok bool) {
	if !w.PutRawUint16(Version) {
		return 0, 0, false
	}

	nchunksOff, ok = w.Allocate(2)
	if !ok {
		return 0, 0, false
	}

	ntailOff, ok = w.Allocate(2)
	if !ok {
		return 0, 0, false
	}

	w.PatchUint16(nchunksOff, 0)
	w.PatchUint16(ntailOff, 0)

	if !w.PutRawUint64(seriesID) {
		return 0, 0, false
	}

	return nchunksOff, ntailOff, true
}

// readHeader parses the 14-byte prefix from r.
func readHeader(r *varint.Reader) (h header, ok bool) {
	version, ok := r.ReadRawUint16()
	if !ok {
		return header{}, false
	}

	nchunks, ok := r.ReadRawUint16()
	if !ok {
		return header{}, false
	}

	ntail, ok := r.ReadRawUint16()
	if !ok {
		return header{}, false
	}

	if ntail > ChunkSize-1 {
		return header{}, false
	}

	seriesID, ok := r.ReadRawUint64()
	if !ok {
		return header{}, false
	}

	return header{version: version, nchunks: nchunks, ntail: ntail, seriesID: seriesID}, true
}
