// Package seriesid derives the opaque 64-bit series identifiers stored in a
// block header from series names. It provides no reverse (id to name)
// lookup; name/id assignment lives in the registry the codec treats as an
// external collaborator.
package seriesid

import "github.com/cespare/xxhash/v2"

// FromName derives a series id from its human-readable name via xxHash64.
// Collisions are not detected here; a name/id registry deduplicating by full
// name is expected to own that concern.
func FromName(name string) uint64 {
	return xxhash.Sum64String(name)
}
