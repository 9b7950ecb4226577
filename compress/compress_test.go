package compress

import (
	"bytes"
	"strings"
	"testing"
)

func TestRoundtrip(t *testing.T) {
	data := []byte(strings.Repeat("some compressible text content\n", 100))

	for _, codec := range []Codec{CodecZstd, CodecLZ4} {
		t.Run(codec.String(), func(t *testing.T) {
			stored, err := Compress(data, codec)
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			if len(stored) >= len(data) {
				t.Fatalf("no size reduction: %d -> %d", len(data), len(stored))
			}

			result, err := Decompress(stored, codec, len(data))
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if !bytes.Equal(result, data) {
				t.Error("roundtrip content mismatch")
			}
		})
	}
}

func TestCompress_NonePassthrough(t *testing.T) {
	data := []byte("as-is")

	stored, err := Compress(data, CodecNone)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if &stored[0] != &data[0] {
		t.Error("CodecNone should return the input without copying")
	}

	result, err := Decompress(stored, CodecNone, len(data))
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal(result, data) {
		t.Error("passthrough content mismatch")
	}
}

func TestCompress_Incompressible(t *testing.T) {
	// Too short to win anything.
	_, err := Compress([]byte("hi"), CodecZstd)
	if !IsIncompressible(err) {
		t.Errorf("expected incompressible error, got %v", err)
	}
}

func TestDecompress_SizeMismatch(t *testing.T) {
	data := []byte(strings.Repeat("length checked\n", 100))

	for _, codec := range []Codec{CodecZstd, CodecLZ4} {
		stored, err := Compress(data, codec)
		if err != nil {
			t.Fatalf("Compress failed: %v", err)
		}

		if _, err := Decompress(stored, codec, len(data)-1); err == nil {
			t.Errorf("%s: accepted a wrong recorded size", codec)
		}
	}

	if _, err := Decompress([]byte("abc"), CodecNone, 2); err == nil {
		t.Error("none: accepted a wrong recorded size")
	}
}

func TestDecompress_GarbageInput(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef}

	for _, codec := range []Codec{CodecZstd, CodecLZ4} {
		if _, err := Decompress(garbage, codec, 1024); err == nil {
			t.Errorf("%s: accepted garbage input", codec)
		}
	}
}

func TestParseCodec(t *testing.T) {
	for _, codec := range []Codec{CodecNone, CodecZstd, CodecLZ4} {
		parsed, err := ParseCodec(codec.String())
		if err != nil {
			t.Fatalf("ParseCodec(%s) failed: %v", codec, err)
		}
		if parsed != codec {
			t.Errorf("ParseCodec(%s) = %v", codec, parsed)
		}
	}

	if _, err := ParseCodec("gzip"); err == nil {
		t.Error("expected an error for unknown codec")
	}
}
