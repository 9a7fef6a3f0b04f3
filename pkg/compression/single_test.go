package compression

import (
	"testing"

	"github.com/relayhq/httpbody/pkg/encoding"
)

func TestDecodeSingleRoundTrip(t *testing.T) {
	plain := []byte("the quick brown fox jumps over the lazy dog, 12 times")

	tests := []encoding.ContentEncoding{
		encoding.Gzip,
		encoding.Deflate,
		encoding.Brotli,
		encoding.Zstd,
	}

	for _, enc := range tests {
		enc := enc
		t.Run(enc.String(), func(t *testing.T) {
			compressed := compressFixture(t, plain, enc)
			got, err := DecodeSingle(compressed, enc)
			if err != nil {
				t.Fatalf("DecodeSingle(%v) error: %v", enc, err)
			}
			if string(got) != string(plain) {
				t.Fatalf("DecodeSingle(%v) = %q, want %q", enc, got, plain)
			}
		})
	}
}

// TestCompressAliasDecodesAsZstd pins the historical "Compress" alias:
// data compressed as zstd must decode under the Compress token too.
func TestCompressAliasDecodesAsZstd(t *testing.T) {
	plain := []byte("alias me")
	compressed := compressFixture(t, plain, encoding.Zstd)

	got, err := DecodeSingle(compressed, encoding.Compress)
	if err != nil {
		t.Fatalf("DecodeSingle(Compress) error: %v", err)
	}
	if string(got) != string(plain) {
		t.Fatalf("DecodeSingle(Compress) = %q, want %q", got, plain)
	}
}

func TestDecodeSingleIdentity(t *testing.T) {
	data := []byte("raw bytes")
	got, err := DecodeSingle(data, encoding.Identity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(data) {
		t.Fatalf("identity must return input unchanged")
	}
}

func TestDecodeSingleUnknownEncoding(t *testing.T) {
	_, err := DecodeSingle([]byte("x"), encoding.Unknown("vnd.custom"))
	if err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}

func TestDecodeSingleCorruptGzip(t *testing.T) {
	_, err := DecodeSingle([]byte{0x1f, 0x8b, 0x00, 0x00}, encoding.Gzip)
	if err == nil {
		t.Fatalf("expected error for truncated gzip stream")
	}
}

func TestDecodeSingleCountingConsumesWholeStream(t *testing.T) {
	plain := []byte("count my bytes please")
	compressed := compressFixture(t, plain, encoding.Gzip)

	_, consumed, err := DecodeSingleCounting(compressed, encoding.Gzip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if consumed != int64(len(compressed)) {
		t.Fatalf("consumed = %d, want %d (whole stream)", consumed, len(compressed))
	}
}

func TestDecodeSingleCountingStopsAtStreamEnd(t *testing.T) {
	plain := []byte("main fragment only")
	compressed := compressFixture(t, plain, encoding.Deflate)
	concatenated := append(append([]byte(nil), compressed...), []byte("EXTRA-APPENDED-BYTES")...)

	out, consumed, err := DecodeSingleCounting(concatenated, encoding.Deflate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != string(plain) {
		t.Fatalf("out = %q, want %q", out, plain)
	}
	if consumed != int64(len(compressed)) {
		t.Fatalf("consumed = %d, want exactly %d (the deflate stream, none of the appended bytes)", consumed, len(compressed))
	}
}
