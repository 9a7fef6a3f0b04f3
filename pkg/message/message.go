// Package message defines the host-message collaborator contract the
// decode orchestrator depends on. A host message — an HTTP request or
// response — implements Collaborator so the orchestrator can read and
// mutate its body and headers without depending on a concrete request
// or response type.
package message

import (
	"github.com/relayhq/httpbody/pkg/encoding"
	"github.com/relayhq/httpbody/pkg/headers"
)

// BodyKind tags which variant a Body holds.
type BodyKind int

const (
	// BodyRaw is a plain byte body (no chunked transfer framing).
	BodyRaw BodyKind = iota
	// BodyChunked is a body still in RFC 7230 §4.1 chunk framing.
	BodyChunked
)

// Body is a message body, either raw bytes or still chunk-framed.
type Body struct {
	Kind  BodyKind
	Raw   []byte
	Chunk []byte // the raw chunked wire bytes, undecoded
}

// NewRawBody wraps data as a raw, unchunked body.
func NewRawBody(data []byte) Body {
	return Body{Kind: BodyRaw, Raw: data}
}

// NewChunkedBody wraps the raw wire bytes of a still chunk-framed body.
func NewChunkedBody(data []byte) Body {
	return Body{Kind: BodyChunked, Chunk: data}
}

// Collaborator is the capability surface the decode orchestrator needs
// from a host message (spec §6). Implemented by *request.Request and
// *response.Response.
type Collaborator interface {
	// GetBody returns the message's current body.
	GetBody() Body
	// SetBody replaces the message's body with fully-decoded raw bytes.
	SetBody(data []byte)
	// TakeExtraBody returns and clears any body fragment the transport
	// layer could not account for within Content-Length/chunk framing
	// (spec §4.6).
	TakeExtraBody() []byte
	// SetExtraBody records an unresolved trailing fragment back onto the
	// message, for a caller that wants to inspect it after a partial
	// decode.
	SetExtraBody(data []byte)

	// BodyHeader returns the summary of body-affecting headers, derived
	// once from Headers() when the message was parsed.
	BodyHeader() *encoding.BodyHeader
	// Headers returns the message's header map.
	Headers() *headers.OrderedHeaders
}
