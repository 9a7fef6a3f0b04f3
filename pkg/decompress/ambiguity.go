// Package decompress resolves the multi-layer Content-Encoding stack and
// the "extra" body ambiguity described in spec §4.6: when a chunked body
// (or a Content-Length body followed by trailing bytes) yields a second,
// separate byte fragment after the main body, it is not obvious up front
// whether that fragment is raw data, was compressed on its own, or was
// compressed together with the main fragment as one continuous stream.
package decompress

import (
	"github.com/relayhq/httpbody/pkg/compression"
	"github.com/relayhq/httpbody/pkg/encoding"
	"go.uber.org/zap"
)

// ExtraRelation classifies how a trailing "extra" fragment relates to
// the main body, once the outermost content-coding layer has been
// examined.
type ExtraRelation int

const (
	// RelationNone means there was no extra fragment to classify.
	RelationNone ExtraRelation = iota
	// RelationMainPlusExtra means main and extra are one continuous
	// compressed stream; decoding main alone did not consume it fully,
	// but decoding main+extra concatenated does.
	RelationMainPlusExtra
	// RelationExtraSeparate means main decoded completely on its own,
	// and extra is an independently compressed stream under the same
	// outermost encoding.
	RelationExtraSeparate
	// RelationExtraRaw means neither the combined nor the separate
	// guess decoded; extra is carried through unchanged.
	RelationExtraRaw
)

// Resolution is the outcome of resolving one outermost layer against an
// optional extra fragment.
type Resolution struct {
	Relation ExtraRelation
	MainOut  []byte
	ExtraOut []byte
	MainErr  error
	ExtraErr error
}

// ResolveOutermost decodes main (and, if present, extra) against a single
// content-coding layer, choosing between RelationMainPlusExtra,
// RelationExtraSeparate, and RelationExtraRaw, following spec §4.6's
// decision rules in order: try extra as a separately-compressed fragment
// first, but only when it passes the magic-byte sniff for enc; only if
// that sniff fails, or the subsequent decode of extra or of main-alone
// fails, does it fall back to hypothesizing a concatenated main+extra
// stream; if that also fails, extra is carried through raw.
func ResolveOutermost(logger *zap.Logger, main, extra []byte, enc encoding.ContentEncoding) Resolution {
	if len(extra) == 0 {
		out, err := compression.DecodeSingle(main, enc)
		return Resolution{Relation: RelationNone, MainOut: out, MainErr: err}
	}

	if sniffed, ok := compression.SniffMagicBytes(extra); ok &&
		(sniffed.Equal(enc) || (sniffed.IsZstdBehaviour() && enc.IsZstdBehaviour())) {
		extraOut, extraErr := compression.DecodeSingle(extra, enc)
		if extraErr == nil {
			mainOut, mainErr := compression.DecodeSingle(main, enc)
			if mainErr == nil {
				return Resolution{
					Relation: RelationExtraSeparate,
					MainOut:  mainOut,
					ExtraOut: extraOut,
				}
			}
			if logger != nil {
				logger.Debug("extra decoded separately but main did not; hypothesizing a concatenated stream",
					zap.String("encoding", enc.String()), zap.Error(mainErr))
			}
		} else if logger != nil {
			logger.Debug("extra sniffed as compressed but did not decode separately; hypothesizing a concatenated stream",
				zap.String("encoding", enc.String()), zap.Error(extraErr))
		}
	}

	// Either the sniff failed, or the separate-extra hypothesis didn't
	// hold up — try main and extra as one concatenated stream.
	combined := make([]byte, 0, len(main)+len(extra))
	combined = append(combined, main...)
	combined = append(combined, extra...)
	combinedOut, consumed, combinedErr := compression.DecodeSingleCounting(combined, enc)
	consumedWholeExtra := false
	if combinedErr == nil {
		if enc.Equal(encoding.Deflate) {
			consumedWholeExtra = consumed == int64(len(combined))
		} else {
			consumedWholeExtra = consumed > int64(len(main))
		}
	}
	if combinedErr == nil && consumedWholeExtra {
		return Resolution{
			Relation: RelationMainPlusExtra,
			MainOut:  combinedOut,
		}
	}

	if logger != nil {
		logger.Debug("main+extra concatenation guess abandoned; treating extra as raw",
			zap.String("encoding", enc.String()), zap.Error(combinedErr))
	}

	// Neither guess worked cleanly. Decode main on its own and carry
	// extra through raw.
	mainOut, mainErr := compression.DecodeSingle(main, enc)
	return Resolution{
		Relation: RelationExtraRaw,
		MainOut:  mainOut,
		MainErr:  mainErr,
		ExtraOut: extra,
	}
}
