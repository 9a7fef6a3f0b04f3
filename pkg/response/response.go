// Package response models a parsed HTTP response and implements the
// message.Collaborator contract so decode.Orchestrator can drive its body
// through the chunked/content-encoding pipeline.
package response

import (
	"strconv"
	"strings"

	"github.com/relayhq/httpbody/pkg/encoding"
	"github.com/relayhq/httpbody/pkg/headers"
	"github.com/relayhq/httpbody/pkg/message"
)

// Response represents a parsed HTTP response.
type Response struct {
	Version    string                  // HTTP version (HTTP/1.1, HTTP/2, etc.)
	StatusCode int                     // HTTP status code (200, 404, etc.)
	StatusText string                  // Status text (OK, Not Found, etc.)
	Headers    *headers.OrderedHeaders // Headers with preserved order
	Raw        []byte                  // Original raw response data

	body      message.Body
	extraBody []byte
	bodyHdr   *encoding.BodyHeader

	// LineSeparator is the original line separator (\r\n or \n).
	LineSeparator string
}

// NewResponse creates a new Response instance.
func NewResponse() *Response {
	return &Response{
		Headers:       headers.NewOrderedHeaders(),
		LineSeparator: "\r\n",
		bodyHdr:       &encoding.BodyHeader{},
	}
}

// Clone creates a deep copy of the response.
func (r *Response) Clone() *Response {
	clone := NewResponse()
	clone.Version = r.Version
	clone.StatusCode = r.StatusCode
	clone.StatusText = r.StatusText
	clone.LineSeparator = r.LineSeparator

	clone.Raw = append([]byte(nil), r.Raw...)
	clone.body = message.Body{
		Kind:  r.body.Kind,
		Raw:   append([]byte(nil), r.body.Raw...),
		Chunk: append([]byte(nil), r.body.Chunk...),
	}
	clone.extraBody = append([]byte(nil), r.extraBody...)

	bh := *r.bodyHdr
	clone.bodyHdr = &bh

	for _, h := range r.Headers.All() {
		clone.Headers.Add(h.Name, h.Value)
	}

	return clone
}

// GetContentLength returns the Content-Length header value as an integer.
func (r *Response) GetContentLength() int {
	lengthStr := strings.TrimSpace(r.Headers.Get("Content-Length"))
	if lengthStr == "" {
		return 0
	}
	length, err := strconv.Atoi(lengthStr)
	if err != nil {
		return 0
	}
	return length
}

// GetContentType returns the Content-Type header value (trimmed).
func (r *Response) GetContentType() string {
	return strings.TrimSpace(r.Headers.Get("Content-Type"))
}

// GetContentEncoding returns the Content-Encoding header value (trimmed).
func (r *Response) GetContentEncoding() string {
	return strings.TrimSpace(r.Headers.Get("Content-Encoding"))
}

// GetServer returns the Server header value (trimmed).
func (r *Response) GetServer() string {
	return strings.TrimSpace(r.Headers.Get("Server"))
}

// IsSuccessful returns true if the response has a 2xx status code.
func (r *Response) IsSuccessful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect returns true if the response has a 3xx status code.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError returns true if the response has a 4xx status code.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError returns true if the response has a 5xx status code.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// GetRedirectLocation returns the Location header for redirects (trimmed).
func (r *Response) GetRedirectLocation() string {
	if r.IsRedirect() {
		return strings.TrimSpace(r.Headers.Get("Location"))
	}
	return ""
}

// ============================================================================
// message.Collaborator
// ============================================================================

// GetBody returns the response's current body (raw or still chunk-framed).
func (r *Response) GetBody() message.Body { return r.body }

// SetBody replaces the body with fully-decoded raw bytes.
func (r *Response) SetBody(data []byte) { r.body = message.NewRawBody(data) }

// TakeExtraBody returns and clears any trailing fragment the transport
// layer could not account for within Content-Length/chunk framing.
func (r *Response) TakeExtraBody() []byte {
	e := r.extraBody
	r.extraBody = nil
	return e
}

// SetExtraBody records an unresolved trailing fragment back onto the response.
func (r *Response) SetExtraBody(data []byte) { r.extraBody = data }

// BodyHeader returns the summary of body-affecting headers, computed once
// at parse time.
func (r *Response) BodyHeader() *encoding.BodyHeader { return r.bodyHdr }

var _ message.Collaborator = (*Response)(nil)
