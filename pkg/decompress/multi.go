package decompress

import (
	"fmt"

	"github.com/relayhq/httpbody/pkg/compression"
	"github.com/relayhq/httpbody/pkg/encoding"
	"go.uber.org/zap"
)

// PartialError reports that some, but not all, of a body's advertised
// Content-Encoding layers were undone before a layer failed. Unlike a
// corrupt body (the outermost layer itself is unreadable), a partial
// decode still has a usable result: the caller gets back what was
// recovered plus the coordinates of the layer that failed, so it can
// truncate the advertised encoding list down to what is actually true of
// the body it is holding (spec §4.7).
type PartialError struct {
	PartialBody      []byte
	HeaderIndex      int
	CompressionIndex int
	Cause            error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("partial decode: header %d, layer %d: %v",
		e.HeaderIndex, e.CompressionIndex, e.Cause)
}

func (e *PartialError) Unwrap() error { return e.Cause }

// CorruptError reports that the outermost content-coding layer refused
// its input outright — none of the advertised encodings could be
// undone, so there is no partial result worth returning.
type CorruptError struct {
	Cause error
}

func (e *CorruptError) Error() string { return "corrupt body: " + e.Cause.Error() }
func (e *CorruptError) Unwrap() error { return e.Cause }

// DecodeMulti undoes every content-coding layer advertised across infos,
// which must already be ordered as the headers appeared on the wire.
// Layers are undone outermost-first: the last header in infos is
// examined before the first, and within a header the rightmost
// (outermost, applied-last-by-the-sender) token is undone before the
// leftmost, mirroring the order a compressing proxy would have applied
// them in (spec §4.6). A Chunked token is skipped like Identity — it
// names transfer framing, not a compression layer, and the caller is
// expected to have already undone it before calling DecodeMulti.
//
// extra is the optional trailing fragment surfaced by a chunked body's
// "extra" record or a body whose transport framing left bytes
// unaccounted for; it is resolved against the outermost layer only — an
// inner layer's "extra" is, by definition, not a separate fragment
// anymore once the outer layer has folded it back into the main stream.
func DecodeMulti(logger *zap.Logger, main, extra []byte, infos []encoding.EncodingInfo) (body []byte, leftoverExtra []byte, err error) {
	layerIndex := 0
	currentExtra := extra

	for h := len(infos) - 1; h >= 0; h-- {
		info := infos[h]
		encodings := append([]encoding.ContentEncoding(nil), info.Encodings()...)

		for c := len(encodings) - 1; c >= 0; c-- {
			enc := encodings[c]
			if enc.Equal(encoding.Identity) || enc.Equal(encoding.Chunked) {
				layerIndex++
				continue
			}

			if len(currentExtra) > 0 && layerIndex == 0 {
				res := ResolveOutermost(logger, main, currentExtra, enc)
				if res.MainErr != nil {
					return nil, nil, &CorruptError{Cause: res.MainErr}
				}
				main = res.MainOut
				switch res.Relation {
				case RelationMainPlusExtra:
					currentExtra = nil
				case RelationExtraSeparate:
					currentExtra = res.ExtraOut
				case RelationExtraRaw:
					currentExtra = res.ExtraOut
				}
				layerIndex++
				continue
			}

			out, decErr := compression.DecodeSingle(main, enc)
			if decErr != nil {
				if layerIndex == 0 {
					return nil, nil, &CorruptError{Cause: decErr}
				}
				return main, currentExtra, &PartialError{
					PartialBody:      main,
					HeaderIndex:      info.HeaderIndex,
					CompressionIndex: len(encodings) - 1 - c,
					Cause:            decErr,
				}
			}
			main = out
			layerIndex++
		}
	}

	return main, currentExtra, nil
}
