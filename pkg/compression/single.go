// Package compression decodes a single content-coding layer: gzip,
// deflate, brotli, and zstd (with "compress" aliased to zstd behaviour
// per spec §3). Only decoding is production API — spec's Non-goals
// exclude exposing the encode side as part of this codec; encoders exist
// only as test fixtures (fixtures_test.go here, and small helpers of
// their own in the pkg/decompress and pkg/decode tests) to build
// compressed inputs for the decode tests.
package compression

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/relayhq/httpbody/pkg/encoding"
	"github.com/relayhq/httpbody/pkg/errors"
)

// DecodeSingle undoes exactly one content-coding layer. Identity and
// Chunked are not compression layers; callers should never reach this
// function with those.
func DecodeSingle(data []byte, enc encoding.ContentEncoding) ([]byte, error) {
	out, _, err := DecodeSingleCounting(data, enc)
	return out, err
}

// DecodeSingleCounting is DecodeSingle plus the number of input bytes the
// decoder actually consumed. The multi-layer decoder (pkg/decompress)
// needs this to tell whether a layer consumed an entire concatenated
// main+extra buffer or stopped partway through it (spec §4.6).
func DecodeSingleCounting(data []byte, enc encoding.ContentEncoding) ([]byte, int64, error) {
	switch {
	case enc.Equal(encoding.Gzip):
		return decodeGzipCounting(data)
	case enc.Equal(encoding.Deflate):
		return decodeDeflateCounting(data)
	case enc.Equal(encoding.Brotli):
		return decodeBrotliCounting(data)
	case enc.IsZstdBehaviour(): // Zstd or its Compress alias
		return decodeZstdCounting(data)
	case enc.Equal(encoding.Identity):
		return data, int64(len(data)), nil
	default:
		return nil, 0, errors.NewError(errors.ErrorTypeDecodeUnknownEncoding,
			"no decoder for content-coding "+enc.String(), enc.String(), data)
	}
}

func decodeGzipCounting(data []byte) ([]byte, int64, error) {
	cr := &countingReader{r: bytes.NewReader(data)}
	r, err := gzip.NewReader(cr)
	if err != nil {
		return nil, cr.n, errors.NewError(errors.ErrorTypeCompressionError,
			"invalid gzip stream: "+err.Error(), "gzip", data)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, cr.n, errors.NewError(errors.ErrorTypeCompressionError,
			"gzip decompression failed: "+err.Error(), "gzip", data)
	}
	return out, cr.n, nil
}

// countingReader tracks how many bytes have been pulled from the
// underlying reader, mirroring flate2's total_in() — used by the
// multi-layer decoder to tell whether a deflate stream consumed the
// whole input or stopped partway through a concatenated main+extra
// buffer (spec §4.6's "did the inner decoder consume everything" check).
//
// It implements io.ByteReader itself so compress/flate's reader does not
// wrap it in its own read-ahead buffer (it only does that for readers
// lacking ReadByte) — without this, flate would over-read into whatever
// bytes follow the stream and the consumed count would be meaningless.
type countingReader struct {
	r *bytes.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.n++
	}
	return b, err
}

// decodeDeflateCounting returns the decoded bytes alongside the number
// of input bytes the flate reader actually consumed.
func decodeDeflateCounting(data []byte) ([]byte, int64, error) {
	cr := &countingReader{r: bytes.NewReader(data)}
	r := flate.NewReader(cr)
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, cr.n, errors.NewError(errors.ErrorTypeCompressionError,
			"deflate decompression failed: "+err.Error(), "deflate", data)
	}
	return out, cr.n, nil
}

func decodeBrotliCounting(data []byte) ([]byte, int64, error) {
	cr := &countingReader{r: bytes.NewReader(data)}
	r := brotli.NewReader(cr)
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, cr.n, errors.NewError(errors.ErrorTypeCompressionError,
			"brotli decompression failed: "+err.Error(), "brotli", data)
	}
	return out, cr.n, nil
}

func decodeZstdCounting(data []byte) ([]byte, int64, error) {
	cr := &countingReader{r: bytes.NewReader(data)}
	d, err := zstd.NewReader(cr)
	if err != nil {
		return nil, cr.n, errors.NewError(errors.ErrorTypeCompressionError,
			"invalid zstd stream: "+err.Error(), "zstd", data)
	}
	defer d.Close()

	out, err := io.ReadAll(d)
	if err != nil {
		return nil, cr.n, errors.NewError(errors.ErrorTypeCompressionError,
			"zstd decompression failed: "+err.Error(), "zstd", data)
	}
	return out, cr.n, nil
}
