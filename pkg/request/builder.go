package request

import (
	"bytes"
	"strconv"

	"github.com/relayhq/httpbody/pkg/message"
)

// bodyBytes returns whatever bytes the request currently holds for its
// body, whichever form it is in.
func (r *Request) bodyBytes() []byte {
	if r.body.Kind == message.BodyRaw {
		return r.body.Raw
	}
	return r.body.Chunk
}

// Build reconstructs the HTTP request from parsed components, preserving
// the original line ending when available.
func (r *Request) Build() []byte {
	var buf bytes.Buffer

	lineSep := r.LineSeparator
	if lineSep == "" {
		lineSep = "\r\n"
	}

	buf.WriteString(r.Method)
	buf.WriteString(" ")
	buf.WriteString(r.URL)
	buf.WriteString(" ")
	buf.WriteString(r.Version)
	buf.WriteString(lineSep)

	buf.Write(r.Headers.Build())
	buf.WriteString(lineSep)

	if body := r.bodyBytes(); len(body) > 0 {
		buf.Write(body)
	}

	return buf.Bytes()
}

// BuildString reconstructs the HTTP request as a string.
func (r *Request) BuildString() string {
	return string(r.Build())
}

// UpdateContentLength updates the Content-Length header based on body size.
func (r *Request) UpdateContentLength() {
	body := r.bodyBytes()
	if len(body) > 0 {
		r.Headers.Set("Content-Length", strconv.Itoa(len(body)))
	} else {
		r.Headers.Del("Content-Length")
	}
}
