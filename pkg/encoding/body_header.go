package encoding

import "github.com/relayhq/httpbody/pkg/headers"

// ContentType is the coarse MIME major-type this codec cares about — just
// enough to let a host message answer "is this text/json/etc" without
// pulling in a full MIME parser (that lives outside this codec's scope).
type ContentType int

const (
	ContentTypeUnknown ContentType = iota
	ContentTypeText
	ContentTypeApplication
	ContentTypeImage
	ContentTypeAudio
	ContentTypeVideo
	ContentTypeMultipart
)

// ContentTypeFromMajorType maps the part of a Content-Type header before
// the "/" to a ContentType.
func ContentTypeFromMajorType(major string) ContentType {
	switch lowerASCII(major) {
	case "text":
		return ContentTypeText
	case "application":
		return ContentTypeApplication
	case "image":
		return ContentTypeImage
	case "audio":
		return ContentTypeAudio
	case "video":
		return ContentTypeVideo
	case "multipart":
		return ContentTypeMultipart
	default:
		return ContentTypeUnknown
	}
}

// BodyHeader is the summary of body-affecting headers the orchestrator
// works from, derived once from the host message's header map.
type BodyHeader struct {
	TransferEncoding []EncodingInfo
	ContentEncoding  []EncodingInfo
	ContentType      ContentType
	HasContentType   bool
	TransferType     TransferType
	HasTransferType  bool
}

// IsChunkedTE reports whether any Transfer-Encoding header names chunked.
func (b *BodyHeader) IsChunkedTE() bool {
	for i := range b.TransferEncoding {
		for _, enc := range b.TransferEncoding[i].Encodings() {
			if enc.Equal(Chunked) {
				return true
			}
		}
	}
	return false
}

// UpdateTransferType applies the "highest-precedence wins" merge rule
// from spec §3: Unknown < Close < ContentLength < Chunked.
func (b *BodyHeader) UpdateTransferType(t TransferType) {
	if !b.HasTransferType || t.Precedence() >= b.TransferType.Precedence() {
		b.TransferType = t
		b.HasTransferType = true
	}
}

// ParseBodyHeader derives a BodyHeader summary from a message's header
// map: every Transfer-Encoding and Content-Encoding header is parsed into
// an EncodingInfo tagged with its position, Content-Type's major type is
// classified, and TransferType is resolved by the precedence merge rule
// across every Transfer-Encoding/Content-Length header present.
func ParseBodyHeader(hdrs *headers.OrderedHeaders) *BodyHeader {
	bh := &BodyHeader{}

	for i, h := range hdrs.All() {
		switch {
		case strEqualFold(h.Name, "Transfer-Encoding"):
			info := ParseEncodingInfo(i, h.Value)
			bh.TransferEncoding = append(bh.TransferEncoding, info)
			if containsChunked(info) {
				bh.UpdateTransferType(TransferChunked)
			}

		case strEqualFold(h.Name, "Content-Encoding"):
			bh.ContentEncoding = append(bh.ContentEncoding, ParseEncodingInfo(i, h.Value))

		case strEqualFold(h.Name, "Content-Length"):
			bh.UpdateTransferType(FromContentLengthValue(h.Value))

		case strEqualFold(h.Name, "Content-Type"):
			major := h.Value
			for j, c := range major {
				if c == '/' {
					major = major[:j]
					break
				}
			}
			bh.ContentType = ContentTypeFromMajorType(major)
			bh.HasContentType = true
		}
	}

	return bh
}

func containsChunked(info EncodingInfo) bool {
	for _, enc := range info.Encodings() {
		if enc.Equal(Chunked) {
			return true
		}
	}
	return false
}

func strEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return lowerASCII(a) == lowerASCII(b)
}
