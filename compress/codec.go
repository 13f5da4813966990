package compress

import "fmt"

// Algorithm identifies a compression algorithm applied to a sealed block's
// bytes before they are handed off to storage.
type Algorithm int

const (
	// None disables compression; Compress/Decompress are no-ops.
	None Algorithm = iota
	// Zstd selects Zstandard, favoring compression ratio over speed.
	Zstd
	// S2 selects klauspost/compress's Snappy-compatible S2 format, balancing
	// ratio and speed.
	S2
	// LZ4 selects LZ4, favoring decompression speed.
	LZ4
)

// String returns the algorithm's name, used in error messages.
func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Compressor provides compression for sealed block bytes.
//
// The interface is optimized for the block codec's output, which is
// typically 1-2 chunk's worth of interleaved varint and FCM bytes per block:
//   - Timestamp sub-stream: delta+RLE encoded, highly compressible
//   - Value sub-stream: FCM-encoded, entropy varies with predictor hit rate
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor mirrors Compressor for the reverse direction. Separate
// interfaces allow asymmetric implementations where compression and
// decompression have different performance characteristics or resource
// requirements.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original
	// sealed block bytes.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats provides detailed information about a compression
// operation, useful for monitoring and choosing an algorithm per workload.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used.
	Algorithm Algorithm

	// OriginalSize is the size of input data before compression.
	OriginalSize int64

	// CompressedSize is the size of data after compression.
	CompressedSize int64

	// CompressionTimeNs is the time taken to compress the data.
	CompressionTimeNs int64

	// DecompressionTimeNs is the time taken to decompress the data (if applicable).
	DecompressionTimeNs int64
}

// CompressionRatio returns the compression ratio (compressed size / original
// size). Values less than 1.0 indicate successful compression.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec is a factory function that creates a Codec for algorithm,
// naming target (the caller's usage) in the error on an unrecognized value.
func CreateCodec(algorithm Algorithm, target string) (Codec, error) {
	switch algorithm {
	case None:
		return NewNoOpCompressor(), nil
	case Zstd:
		return NewZstdCompressor(), nil
	case S2:
		return NewS2Compressor(), nil
	case LZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, algorithm)
	}
}

var builtinCodecs = map[Algorithm]Codec{
	None: NewNoOpCompressor(),
	Zstd: NewZstdCompressor(),
	S2:   NewS2Compressor(),
	LZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for algorithm.
func GetCodec(algorithm Algorithm) (Codec, error) {
	if codec, ok := builtinCodecs[algorithm]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression algorithm: %s", algorithm)
}
