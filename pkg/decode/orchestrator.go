// Package decode drives the end-to-end body decode pipeline described
// in spec §4.7: undo chunked transfer framing if present, undo every
// advertised content-coding layer, and leave the host message holding a
// fully decoded body with headers that accurately describe what's left
// of it.
package decode

import (
	"strconv"

	"github.com/relayhq/httpbody/pkg/chunked"
	"github.com/relayhq/httpbody/pkg/decompress"
	"github.com/relayhq/httpbody/pkg/encoding"
	"github.com/relayhq/httpbody/pkg/headers"
	"github.com/relayhq/httpbody/pkg/message"
	"go.uber.org/zap"
)

// Orchestrator runs the decode pipeline against a message.Collaborator.
// The zero value is ready to use; Logger is optional and nil-safe.
type Orchestrator struct {
	Logger *zap.Logger
}

// NewOrchestrator builds an Orchestrator. logger may be nil.
func NewOrchestrator(logger *zap.Logger) *Orchestrator {
	return &Orchestrator{Logger: logger}
}

// Decode runs msg's body through the pipeline: Start -> TransferEncoding
// -> ContentEncoding -> UpdateContentLength[AndErr] -> End (spec §4.7). A
// body with no chunked framing, no content-coding, and no extra fragment
// is left untouched; a body that partially decodes has its header map
// truncated to match what actually came out, and the partial error is
// returned alongside (the caller decides whether that is fatal).
func (o *Orchestrator) Decode(msg message.Collaborator) error {
	body := msg.GetBody()
	bh := msg.BodyHeader()
	hdrs := msg.Headers()

	main := body.Raw
	extra := msg.TakeExtraBody()

	hasChunkedTE := body.Kind == message.BodyChunked || bh.IsChunkedTE()
	hasTE := hasChunkedTE || len(bh.TransferEncoding) > 0

	if hasTE {
		if hasChunkedTE {
			decoded, trailers, chunkExtra, err := chunked.Decode(body.Chunk)
			if err != nil {
				return err
			}
			main = decoded
			if len(chunkExtra) > 0 {
				extra = append(append([]byte(nil), extra...), chunkExtra...)
			}
			if trailers != nil && trailers.Len() > 0 {
				promoteTrailers(hdrs, trailers)
			}
		}

		if len(bh.TransferEncoding) > 0 {
			out, leftoverExtra, err := decompress.DecodeMulti(o.Logger, main, extra, bh.TransferEncoding)
			if err != nil {
				if partial, ok := err.(*decompress.PartialError); ok {
					o.warnPartial("transfer-encoding", partial)
					truncateEncodingHeaders(hdrs, bh.TransferEncoding, partial.HeaderIndex, partial.CompressionIndex)
					msg.SetBody(partial.PartialBody)
					updateContentLength(msg, len(partial.PartialBody))
					return partial
				}
				return err
			}
			main = out
			extra = leftoverExtra
		}

		// Every te layer (chunked framing plus any compression on top of
		// it) decoded cleanly: no Transfer-Encoding header may survive
		// naming an applied encoding (spec §3).
		removeEncodingHeaders(hdrs, bh.TransferEncoding)
	}

	if len(bh.ContentEncoding) > 0 {
		out, leftoverExtra, err := decompress.DecodeMulti(o.Logger, main, extra, bh.ContentEncoding)
		if err != nil {
			if partial, ok := err.(*decompress.PartialError); ok {
				o.warnPartial("content-encoding", partial)
				truncateEncodingHeaders(hdrs, bh.ContentEncoding, partial.HeaderIndex, partial.CompressionIndex)
				msg.SetBody(partial.PartialBody)
				updateContentLength(msg, len(partial.PartialBody))
				return partial
			}
			return err
		}
		main = out
		extra = leftoverExtra
		removeEncodingHeaders(hdrs, bh.ContentEncoding)
	}

	if !hasTE && len(bh.ContentEncoding) == 0 && len(extra) == 0 {
		// Nothing to do: Start's "else -> End" transition. Leave the
		// message untouched rather than rewriting Content-Length for a
		// body that was never carried through this pipeline.
		return nil
	}

	if len(extra) > 0 {
		main = append(main, extra...)
	}
	msg.SetBody(main)
	updateContentLength(msg, len(main))
	return nil
}

func (o *Orchestrator) warnPartial(layer string, partial *decompress.PartialError) {
	if o.Logger == nil {
		return
	}
	o.Logger.Warn("partial "+layer+" decode",
		zap.Int("header_index", partial.HeaderIndex),
		zap.Int("compression_index", partial.CompressionIndex),
		zap.Error(partial.Cause))
}

// promoteTrailers appends every trailer header onto the message's main
// header map and removes every occurrence of the Trailer header itself
// — original_source's chunked_to_raw conversion removes ALL positions of
// Trailer, not just the first, which is why this calls DelAll rather
// than Del.
func promoteTrailers(hdrs *headers.OrderedHeaders, trailers *headers.OrderedHeaders) {
	for _, h := range trailers.All() {
		hdrs.Add(h.Name, h.Value)
	}
	hdrs.DelAll("Trailer")
}

func updateContentLength(msg message.Collaborator, n int) {
	hdrs := msg.Headers()
	bh := msg.BodyHeader()

	value := strconv.Itoa(n)
	if idx, ok := hdrs.HasHeaderKey("Content-Length"); ok {
		hdrs.UpdateValueAtPosition(idx, value)
	} else {
		hdrs.InsertHeader("Content-Length", value)
	}
	bh.UpdateTransferType(encoding.ContentLength(n))
}
