package compression

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/relayhq/httpbody/pkg/encoding"
)

// compressFixture builds a compressed payload for the given encoding,
// used only by this package's tests to build inputs for the decode path. There is no production encoder — spec's
// Non-goals exclude it.
func compressFixture(t *testing.T, data []byte, enc encoding.ContentEncoding) []byte {
	t.Helper()

	switch {
	case enc.Equal(encoding.Gzip):
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			t.Fatalf("gzip fixture: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("gzip fixture close: %v", err)
		}
		return buf.Bytes()

	case enc.Equal(encoding.Deflate):
		var buf bytes.Buffer
		w, err := flate.NewWriter(&buf, flate.DefaultCompression)
		if err != nil {
			t.Fatalf("deflate fixture: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("deflate fixture: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("deflate fixture close: %v", err)
		}
		return buf.Bytes()

	case enc.Equal(encoding.Brotli):
		var buf bytes.Buffer
		w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
		if _, err := w.Write(data); err != nil {
			t.Fatalf("brotli fixture: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("brotli fixture close: %v", err)
		}
		return buf.Bytes()

	case enc.IsZstdBehaviour():
		w, err := zstd.NewWriter(nil)
		if err != nil {
			t.Fatalf("zstd fixture: %v", err)
		}
		defer w.Close()
		return w.EncodeAll(data, nil)

	case enc.Equal(encoding.Identity):
		return data

	default:
		t.Fatalf("compressFixture: no fixture encoder for %v", enc)
		return nil
	}
}
