// Package compress implements the codec layer for embedded resource
// bytes. Every entry in a resource table carries a Codec tag that says
// how its stored bytes were encoded at build time; this package turns
// stored bytes back into logical bytes and verifies the recorded
// logical length on the way out.
package compress

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies the compression algorithm used for an entry's
// stored bytes. Tags are emitted into generated tables (one per entry),
// so their numeric values are format constants.
type Codec uint8

const (
	// CodecNone marks entries whose stored bytes equal the logical
	// bytes. Used when compression is disabled at build time, or when
	// the generator found the content incompressible.
	CodecNone Codec = 0

	// CodecZstd marks zstd-compressed entries. Default for source
	// text and other text-like content.
	CodecZstd Codec = 1

	// CodecLZ4 marks LZ4 block-compressed entries. Faster decode,
	// lower ratio; meant for binary content.
	CodecLZ4 Codec = 2
)

// String returns the human-readable name of the codec.
func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecZstd:
		return "zstd"
	case CodecLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCodec parses a codec from its string representation.
func ParseCodec(name string) (Codec, error) {
	switch name {
	case "none":
		return CodecNone, nil
	case "zstd":
		return CodecZstd, nil
	case "lz4":
		return CodecLZ4, nil
	default:
		return 0, fmt.Errorf("unknown codec: %q", name)
	}
}

// zstdEncoder and zstdDecoder are shared across all calls; both are
// safe for concurrent use and stateless in EncodeAll/DecodeAll mode.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("compress: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("compress: zstd decoder initialization failed: " + err.Error())
	}
}

// errIncompressible is returned when the encoded output would not be
// smaller than the input. Callers should fall back to CodecNone.
var errIncompressible = errors.New("compress: data is incompressible")

// IsIncompressible reports whether err indicates that data could not
// be encoded smaller than its original size.
func IsIncompressible(err error) bool {
	return errors.Is(err, errIncompressible)
}

// Compress encodes data with the given codec. For CodecNone the input
// is returned unchanged (no copy). Returns an incompressible error if
// the output would be at least as large as the input.
func Compress(data []byte, codec Codec) ([]byte, error) {
	switch codec {
	case CodecNone:
		return data, nil

	case CodecZstd:
		compressed := zstdEncoder.EncodeAll(data, nil)
		if len(compressed) >= len(data) {
			return nil, errIncompressible
		}
		return compressed, nil

	case CodecLZ4:
		bound := lz4.CompressBlockBound(len(data))
		destination := make([]byte, bound)

		written, err := lz4.CompressBlock(data, destination, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		// CompressBlock returns 0 when it determines the input is
		// incompressible.
		if written == 0 || written >= len(data) {
			return nil, errIncompressible
		}
		return destination[:written], nil

	default:
		return nil, fmt.Errorf("unsupported codec: %d", codec)
	}
}

// Decompress decodes stored bytes back into logical bytes. The size
// argument is the recorded logical length and must match the decoded
// output exactly; a mismatch is reported as an error, never as
// truncated or padded data.
func Decompress(data []byte, codec Codec, size int) ([]byte, error) {
	switch codec {
	case CodecNone:
		if len(data) != size {
			return nil, fmt.Errorf("stored bytes: size %d does not match recorded %d", len(data), size)
		}
		return data, nil

	case CodecZstd:
		result, err := zstdDecoder.DecodeAll(data, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(result) != size {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), size)
		}
		return result, nil

	case CodecLZ4:
		destination := make([]byte, size)
		read, err := lz4.UncompressBlock(data, destination)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != size {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, size)
		}
		return destination, nil

	default:
		return nil, fmt.Errorf("unsupported codec: %d", codec)
	}
}
