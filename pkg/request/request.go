// Package request models a parsed HTTP request and implements the
// message.Collaborator contract so decode.Orchestrator can drive its body
// through the chunked/content-encoding pipeline.
package request

import (
	"strings"

	"github.com/relayhq/httpbody/pkg/encoding"
	"github.com/relayhq/httpbody/pkg/headers"
	"github.com/relayhq/httpbody/pkg/message"
)

// Request represents a parsed HTTP request.
type Request struct {
	Method  string                  // HTTP method (GET, POST, etc.)
	URL     string                  // Request URL/path (full URL with query string)
	Version string                  // HTTP version (HTTP/1.1, HTTP/2, etc.)
	Headers *headers.OrderedHeaders // Headers with preserved order
	Raw     []byte                  // Original raw request data

	body      message.Body
	extraBody []byte
	bodyHdr   *encoding.BodyHeader

	// LineSeparator is the original line separator (\r\n or \n).
	LineSeparator string
}

// NewRequest creates a new Request instance.
func NewRequest() *Request {
	return &Request{
		Headers:       headers.NewOrderedHeaders(),
		LineSeparator: "\r\n",
		bodyHdr:       &encoding.BodyHeader{},
	}
}

// Clone creates a deep copy of the request.
func (r *Request) Clone() *Request {
	clone := NewRequest()
	clone.Method = r.Method
	clone.URL = r.URL
	clone.Version = r.Version
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

// GetContentLength returns the Content-Length header value (trimmed).
func (r *Request) GetContentLength() string {
	return strings.TrimSpace(r.Headers.Get("Content-Length"))
}

// GetContentType returns the Content-Type header value (trimmed).
func (r *Request) GetContentType() string {
	return strings.TrimSpace(r.Headers.Get("Content-Type"))
}

// GetHost returns the Host header value (trimmed).
func (r *Request) GetHost() string {
	return strings.TrimSpace(r.Headers.Get("Host"))
}

// GetUserAgent returns the User-Agent header value (trimmed).
func (r *Request) GetUserAgent() string {
	return strings.TrimSpace(r.Headers.Get("User-Agent"))
}

// IsHTTPS checks if the request URL targets HTTPS.
func (r *Request) IsHTTPS() bool {
	return strings.HasPrefix(strings.ToLower(r.URL), "https://")
}

// ============================================================================
// message.Collaborator
// ============================================================================

// GetBody returns the request's current body (raw or still chunk-framed).
func (r *Request) GetBody() message.Body { return r.body }

// SetBody replaces the body with fully-decoded raw bytes.
func (r *Request) SetBody(data []byte) { r.body = message.NewRawBody(data) }

// TakeExtraBody returns and clears any trailing fragment the transport
// layer could not account for within Content-Length/chunk framing.
func (r *Request) TakeExtraBody() []byte {
	e := r.extraBody
	r.extraBody = nil
	return e
}

// SetExtraBody records an unresolved trailing fragment back onto the request.
func (r *Request) SetExtraBody(data []byte) { r.extraBody = data }

// BodyHeader returns the summary of body-affecting headers, computed once
// at parse time.
func (r *Request) BodyHeader() *encoding.BodyHeader { return r.bodyHdr }

var _ message.Collaborator = (*Request)(nil)
