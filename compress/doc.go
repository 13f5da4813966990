// Package compress provides compression and decompression codecs applied to
// sealed block bytes produced by the block package.
//
// This package offers multiple general-purpose compression algorithms.
// Compression is a layer on top of the block codec's own domain-specific
// compression (delta+RLE for timestamps, FCM for values); it squeezes out
// whatever byte-level redundancy remains once a block is sealed.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// **NoOp Compression** (compress.None)
//
//	codec := compress.NewNoOpCompressor()
//	compressed, _ := codec.Compress(data)  // Returns data unchanged
//	original, _ := codec.Decompress(compressed)  // Returns data unchanged
//
// Use when a sealed block is already dense (small, well-predicted FCM
// streams) or when CPU is more critical than the marginal storage cost.
//
// **Zstandard (Zstd)** (compress.Zstd)
//
//	codec := compress.NewZstdCompressor()
//	compressed, _ := codec.Compress(data)  // Best compression ratio
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: best ratio of the supported algorithms
//   - Speed: moderate (compression ~400 MB/s, decompression ~1000 MB/s)
//   - Memory: pooled encoder/decoder, ~2-4 MB working set
//
// Best for cold storage, archival, or network-bandwidth-constrained
// transmission of sealed blocks.
//
// **S2 (Snappy Alternative)** (compress.S2)
//
//	codec := compress.NewS2Compressor()
//	compressed, _ := codec.Compress(data)
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: good, roughly Snappy-compatible ratio
//   - Speed: fast (compression ~1000 MB/s, decompression ~2000 MB/s)
//
// Best for hot-path ingestion where latency matters more than the last bit
// of storage savings.
//
// **LZ4** (compress.LZ4)
//
//	codec := compress.NewLZ4Compressor()
//	compressed, _ := codec.Compress(data)
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: moderate
//   - Speed: very fast decompression, the fastest of the supported algorithms
//
// Best for query-heavy workloads where decompression, not compression,
// dominates the read path.
//
// # Memory Management
//
// All codec implementations pool their internal encoders/decoders where the
// underlying library supports reuse (zstd, LZ4), to keep steady-state
// compression allocation-free.
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use across goroutines.
package compress
