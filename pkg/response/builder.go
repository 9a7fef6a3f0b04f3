package response

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/relayhq/httpbody/pkg/message"
)

// bodyBytes returns whatever bytes the response currently holds for its
// body, whichever form it is in.
func (r *Response) bodyBytes() []byte {
	if r.body.Kind == message.BodyRaw {
		return r.body.Raw
	}
	return r.body.Chunk
}

// Build reconstructs the HTTP response from parsed components, preserving
// the original line ending when available.
func (r *Response) Build() []byte {
	var buf bytes.Buffer

	lineSep := r.LineSeparator
	if lineSep == "" {
		lineSep = "\r\n"
	}

	statusLine := fmt.Sprintf("%s %d %s%s", r.Version, r.StatusCode, r.StatusText, lineSep)
	buf.WriteString(statusLine)

	buf.Write(r.Headers.Build())
	buf.WriteString(lineSep)

	if body := r.bodyBytes(); len(body) > 0 {
		buf.Write(body)
	}

	return buf.Bytes()
}

// BuildString reconstructs the HTTP response as a string.
func (r *Response) BuildString() string {
	return string(r.Build())
}

// UpdateContentLength updates the Content-Length header based on body size.
func (r *Response) UpdateContentLength() {
	body := r.bodyBytes()
	if len(body) > 0 {
		r.Headers.Set("Content-Length", strconv.Itoa(len(body)))
	} else {
		r.Headers.Del("Content-Length")
	}
}
