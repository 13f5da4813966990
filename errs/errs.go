// Package errs defines the sentinel errors returned by the block codec.
//
// Callers should use errors.Is against these sentinels rather than comparing
// error strings.
package errs

import "errors"

var (
	// ErrOverflow is returned by Writer.Put when there is no room left in the
	// block for another chunk or sample. It is not fatal: the caller should
	// commit the current block and start a new one for the rejected sample.
	ErrOverflow = errors.New("block: overflow, no room for chunk")

	// ErrBadArgument is returned when a writer is constructed with a buffer
	// too small to hold the header and a single chunk, or a reader is given
	// a buffer too small to hold the header.
	ErrBadArgument = errors.New("block: bad argument")

	// ErrCorrupt is returned by NewReader for an unrecognized block version or
	// an out-of-range tail count. Corruption found while decoding the payload
	// (a truncated varint or FCM run, an invalid flag nibble) is not reported
	// as this error: Reader.Next returns ok=false, the same result as normal
	// exhaustion.
	ErrCorrupt = errors.New("block: corrupt data")

	// ErrStateError is returned when an operation is invalid for the current
	// lifecycle state of a writer, e.g. Put after Commit.
	ErrStateError = errors.New("block: invalid state")
)
