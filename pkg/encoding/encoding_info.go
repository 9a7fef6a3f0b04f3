package encoding

import "strings"

// EncodingInfo is the parsed encoding list of a single header, together
// with the position of that header in the message's header map at parse
// time (see spec §3).
type EncodingInfo struct {
	HeaderIndex int
	encodings   []ContentEncoding
}

// NewEncodingInfo builds an EncodingInfo directly from its parts.
func NewEncodingInfo(headerIndex int, encodings []ContentEncoding) EncodingInfo {
	return EncodingInfo{HeaderIndex: headerIndex, encodings: encodings}
}

// ParseEncodingInfo parses a comma-separated encoding list header value
// (e.g. "gzip, deflate, br") into an EncodingInfo for the header found at
// headerIndex. Empty tokens (from trailing commas or repeated separators)
// are dropped.
func ParseEncodingInfo(headerIndex int, value string) EncodingInfo {
	parts := strings.Split(value, ",")
	encodings := make([]ContentEncoding, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		encodings = append(encodings, FromToken(p))
	}
	return EncodingInfo{HeaderIndex: headerIndex, encodings: encodings}
}

// Encodings returns the ordered encoding list, left-to-right as the
// sender applied them.
func (e *EncodingInfo) Encodings() []ContentEncoding {
	return e.encodings
}

// Last returns the rightmost (outermost, applied-last-by-the-sender)
// encoding, if any.
func (e *EncodingInfo) Last() (ContentEncoding, bool) {
	if len(e.encodings) == 0 {
		return ContentEncoding{}, false
	}
	return e.encodings[len(e.encodings)-1], true
}

// PopLast removes and returns the rightmost encoding.
func (e *EncodingInfo) PopLast() (ContentEncoding, bool) {
	if len(e.encodings) == 0 {
		return ContentEncoding{}, false
	}
	last := e.encodings[len(e.encodings)-1]
	e.encodings = e.encodings[:len(e.encodings)-1]
	return last, true
}

// PushLast appends an encoding back onto the right.
func (e *EncodingInfo) PushLast(enc ContentEncoding) {
	e.encodings = append(e.encodings, enc)
}

// IsEmpty reports whether all encodings have been consumed.
func (e *EncodingInfo) IsEmpty() bool {
	return len(e.encodings) == 0
}

// String reconstructs the comma-separated header value.
func (e *EncodingInfo) String() string {
	tokens := make([]string, len(e.encodings))
	for i, enc := range e.encodings {
		tokens[i] = enc.String()
	}
	return strings.Join(tokens, ", ")
}
