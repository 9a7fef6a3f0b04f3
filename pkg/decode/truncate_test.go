package decode

import (
	"testing"

	"github.com/relayhq/httpbody/pkg/encoding"
	"github.com/relayhq/httpbody/pkg/headers"
)

func buildTestHeaders() *headers.OrderedHeaders {
	h := headers.NewOrderedHeaders()
	h.Set("Host", "example.com")
	h.Set("Content-Encoding", "gzip, br")
	h.Set("X-Unrelated", "1")
	h.Add("Content-Encoding", "deflate")
	return h
}

// TestTruncateEncodingHeadersDropsLaterHeaders covers the case where the
// failure happened in an earlier (lower-index) header: any
// Content-Encoding header that was fully consumed before the failure
// (i.e. at a higher position, undone earlier in the reverse walk) is
// removed outright, while the failing header itself keeps whatever
// encodings were never attempted.
func TestTruncateEncodingHeadersDropsLaterHeaders(t *testing.T) {
	hdrs := buildTestHeaders()
	infos := []encoding.EncodingInfo{
		encoding.NewEncodingInfo(1, []encoding.ContentEncoding{encoding.Gzip, encoding.Brotli}),
		encoding.NewEncodingInfo(3, []encoding.ContentEncoding{encoding.Deflate}),
	}

	// Failure occurred in header 1 at its rightmost (first-undone)
	// token, br — compressionIndex 0. Header 3 (undone in full before
	// header 1 was even reached) is dropped entirely; header 1 keeps
	// "gzip", the encoding that was never attempted.
	truncateEncodingHeaders(hdrs, infos, 1, 0)

	var ceValues []string
	for _, hh := range hdrs.All() {
		if hh.Name == "Content-Encoding" {
			ceValues = append(ceValues, hh.Value)
		}
	}
	if len(ceValues) != 1 || ceValues[0] != "gzip" {
		t.Fatalf("Content-Encoding headers = %v, want exactly [\"gzip\"]", ceValues)
	}
	if hdrs.Get("Host") != "example.com" {
		t.Fatalf("unrelated headers must be left alone")
	}
}

// TestTruncateEncodingHeadersKeepsUntouchedPrefix covers the case where
// only the rightmost token of the failing header should be dropped; the
// encodings to its left (not yet attempted) remain on the header.
func TestTruncateEncodingHeadersKeepsUntouchedPrefix(t *testing.T) {
	hdrs := headers.NewOrderedHeaders()
	hdrs.Set("Content-Encoding", "gzip, deflate, br")

	infos := []encoding.EncodingInfo{
		encoding.NewEncodingInfo(0, []encoding.ContentEncoding{encoding.Gzip, encoding.Deflate, encoding.Brotli}),
	}

	// br is rightmost (compressionIndex 0); it failed, so only "gzip,
	// deflate" should remain.
	truncateEncodingHeaders(hdrs, infos, 0, 0)

	if got, want := hdrs.Get("Content-Encoding"), "gzip, deflate"; got != want {
		t.Fatalf("Content-Encoding = %q, want %q", got, want)
	}
}

// TestTruncateEncodingHeadersRemovesWhenFullyConsumed covers a failing
// header whose only token is the one that failed — no untried encoding
// is left of it, so the header itself disappears.
func TestTruncateEncodingHeadersRemovesWhenFullyConsumed(t *testing.T) {
	hdrs := headers.NewOrderedHeaders()
	hdrs.Set("Content-Encoding", "gzip")
	hdrs.Set("Host", "example.com")

	infos := []encoding.EncodingInfo{
		encoding.NewEncodingInfo(0, []encoding.ContentEncoding{encoding.Gzip}),
	}

	truncateEncodingHeaders(hdrs, infos, 0, 0)

	if hdrs.Has("Content-Encoding") {
		t.Fatalf("expected Content-Encoding to be fully removed")
	}
	if !hdrs.Has("Host") {
		t.Fatalf("unrelated header must survive")
	}
}
