package encoding

import (
	"testing"

	"github.com/relayhq/httpbody/pkg/headers"
)

func TestFromTokenKnownEncodings(t *testing.T) {
	tests := []struct {
		token string
		want  ContentEncoding
	}{
		{"br", Brotli},
		{"BR", Brotli},
		{"compress", Compress},
		{"deflate", Deflate},
		{"gzip", Gzip},
		{"GZIP", Gzip},
		{"identity", Identity},
		{"zstd", Zstd},
		{"chunked", Chunked},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got := FromToken(tt.token)
			if !got.Equal(tt.want) {
				t.Errorf("FromToken(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestFromTokenUnknown(t *testing.T) {
	got := FromToken("hola")
	if !got.IsUnknown() {
		t.Fatalf("expected unknown encoding")
	}
	if got.String() != "hola" {
		t.Fatalf("String() = %q, want %q", got.String(), "hola")
	}
}

// TestCompressAliasesToZstd pins down the historical aliasing called out
// in spec §3: Compress must behave exactly like Zstd wherever the codec
// asks "is this zstd".
func TestCompressAliasesToZstd(t *testing.T) {
	if !Compress.IsZstdBehaviour() {
		t.Fatalf("Compress must alias Zstd behaviour")
	}
	if !Zstd.IsZstdBehaviour() {
		t.Fatalf("Zstd must report zstd behaviour")
	}
	if Brotli.IsZstdBehaviour() {
		t.Fatalf("Brotli must not report zstd behaviour")
	}
}

func TestParseEncodingInfo(t *testing.T) {
	info := ParseEncodingInfo(2, "gzip, deflate, br, compress,")
	want := []ContentEncoding{Gzip, Deflate, Brotli, Compress}
	got := info.Encodings()
	if len(got) != len(want) {
		t.Fatalf("got %d encodings, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("encodings[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if info.HeaderIndex != 2 {
		t.Errorf("HeaderIndex = %d, want 2", info.HeaderIndex)
	}
}

func TestEncodingInfoPopPush(t *testing.T) {
	info := NewEncodingInfo(0, []ContentEncoding{Gzip, Brotli})

	last, ok := info.PopLast()
	if !ok || !last.Equal(Brotli) {
		t.Fatalf("PopLast() = %v, %v; want Brotli, true", last, ok)
	}
	if len(info.Encodings()) != 1 {
		t.Fatalf("after pop, len = %d, want 1", len(info.Encodings()))
	}

	info.PushLast(Brotli)
	if len(info.Encodings()) != 2 {
		t.Fatalf("after push, len = %d, want 2", len(info.Encodings()))
	}
	last, ok = info.Last()
	if !ok || !last.Equal(Brotli) {
		t.Fatalf("Last() = %v, %v; want Brotli, true", last, ok)
	}
}

func TestEncodingInfoString(t *testing.T) {
	info := NewEncodingInfo(0, []ContentEncoding{Brotli, Deflate, Gzip})
	if got, want := info.String(), "br, deflate, gzip"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestTransferTypePrecedence(t *testing.T) {
	if !(TransferUnknown.Precedence() < TransferClose.Precedence()) {
		t.Fatalf("Unknown must precede Close")
	}
	if !(TransferClose.Precedence() < ContentLength(0).Precedence()) {
		t.Fatalf("Close must precede ContentLength")
	}
	if !(ContentLength(0).Precedence() < TransferChunked.Precedence()) {
		t.Fatalf("ContentLength must precede Chunked")
	}
}

func TestFromContentLengthValue(t *testing.T) {
	if got := FromContentLengthValue("100"); got.Precedence() != ContentLength(100).Precedence() {
		t.Fatalf("expected ContentLength kind")
	}
	if n, ok := FromContentLengthValue("100").Len(); !ok || n != 100 {
		t.Fatalf("Len() = %d, %v; want 100, true", n, ok)
	}
	if got := FromContentLengthValue("not-a-number"); !got.Equal(TransferClose) {
		t.Fatalf("expected Close on parse failure, got %v", got)
	}
	if got := FromContentLengthValue("-1"); !got.Equal(TransferClose) {
		t.Fatalf("expected Close on negative length, got %v", got)
	}
}

func TestBodyHeaderUpdateTransferTypeHighestWins(t *testing.T) {
	var bh BodyHeader
	bh.UpdateTransferType(TransferClose)
	bh.UpdateTransferType(ContentLength(10))
	bh.UpdateTransferType(TransferClose) // must not downgrade

	if !bh.TransferType.Equal(ContentLength(10)) {
		t.Fatalf("TransferType = %v, want ContentLength(10)", bh.TransferType)
	}
}

func TestBodyHeaderIsChunkedTE(t *testing.T) {
	bh := BodyHeader{
		TransferEncoding: []EncodingInfo{
			NewEncodingInfo(0, []ContentEncoding{Gzip, Chunked}),
		},
	}
	if !bh.IsChunkedTE() {
		t.Fatalf("expected IsChunkedTE true")
	}

	bh2 := BodyHeader{
		TransferEncoding: []EncodingInfo{
			NewEncodingInfo(0, []ContentEncoding{Gzip}),
		},
	}
	if bh2.IsChunkedTE() {
		t.Fatalf("expected IsChunkedTE false")
	}
}

func TestParseBodyHeaderMergesPrecedence(t *testing.T) {
	hdrs := headers.NewOrderedHeaders()
	hdrs.Set("Content-Length", "10")
	hdrs.Set("Transfer-Encoding", "chunked")
	hdrs.Set("Content-Encoding", "gzip, br")
	hdrs.Set("Content-Type", "application/json")

	bh := ParseBodyHeader(hdrs)

	if !bh.IsChunkedTE() {
		t.Fatalf("expected IsChunkedTE true")
	}
	if !bh.TransferType.Equal(TransferChunked) {
		t.Fatalf("TransferType = %v, want TransferChunked (chunked outranks Content-Length)", bh.TransferType)
	}
	if len(bh.ContentEncoding) != 1 || len(bh.ContentEncoding[0].Encodings()) != 2 {
		t.Fatalf("ContentEncoding = %v, want one header with 2 tokens", bh.ContentEncoding)
	}
	if !bh.HasContentType || bh.ContentType != ContentTypeApplication {
		t.Fatalf("ContentType = %v, HasContentType = %v", bh.ContentType, bh.HasContentType)
	}
}

func TestParseBodyHeaderContentLengthOnly(t *testing.T) {
	hdrs := headers.NewOrderedHeaders()
	hdrs.Set("Content-Length", "42")

	bh := ParseBodyHeader(hdrs)
	if bh.IsChunkedTE() {
		t.Fatalf("expected IsChunkedTE false")
	}
	n, ok := bh.TransferType.Len()
	if !ok || n != 42 {
		t.Fatalf("TransferType.Len() = %d, %v; want 42, true", n, ok)
	}
}

func TestContentTypeFromMajorType(t *testing.T) {
	tests := map[string]ContentType{
		"text":        ContentTypeText,
		"Application": ContentTypeApplication,
		"image":       ContentTypeImage,
		"bogus":       ContentTypeUnknown,
	}
	for major, want := range tests {
		if got := ContentTypeFromMajorType(major); got != want {
			t.Errorf("ContentTypeFromMajorType(%q) = %v, want %v", major, got, want)
		}
	}
}
