package decode

import (
	"github.com/relayhq/httpbody/pkg/encoding"
	"github.com/relayhq/httpbody/pkg/headers"
)

// truncateEncodingHeaders commits a partial decode back onto the
// message's header map, so the headers describe exactly the encodings
// still actually present on the body the caller is left holding (spec
// §4.7). This is deliberately the only place that converts a
// decompress.PartialError's (headerIndex, compressionIndex) coordinates
// into header-map mutations. headerIndex is the failing header's
// position in the header map (its EncodingInfo.HeaderIndex);
// compressionIndex counts the failing token from the right of that
// header's encoding list, the opposite direction from how the tokens are
// stored, and is mirrored here into a forward token index.
//
// infos must be the same encoding-info list DecodeMulti was given, in
// the same order. Headers whose HeaderIndex is greater than the failing
// header's (i.e. headers the reverse walk fully consumed before hitting
// the failure) are removed outright. The failing header itself is
// truncated to the encodings that were never attempted; if none remain,
// it too is removed.
func truncateEncodingHeaders(hdrs *headers.OrderedHeaders, infos []encoding.EncodingInfo, headerIndex, compressionIndex int) {
	sorted := sortByHeaderIndexDesc(infos)

	for _, info := range sorted {
		switch {
		case info.HeaderIndex > headerIndex:
			hdrs.RemoveAtPosition(info.HeaderIndex)

		case info.HeaderIndex == headerIndex:
			tokens := info.Encodings()
			// compressionIndex counts from the rightmost (last-undone)
			// token; the forward index of the failing token is the
			// mirror image of that.
			failingForwardIndex := len(tokens) - 1 - compressionIndex
			if failingForwardIndex < 0 {
				failingForwardIndex = 0
			}
			kept := tokens[:failingForwardIndex]
			if len(kept) == 0 {
				hdrs.RemoveAtPosition(info.HeaderIndex)
				continue
			}
			keptInfo := encoding.NewEncodingInfo(info.HeaderIndex, kept)
			hdrs.UpdateValueAtPosition(info.HeaderIndex, keptInfo.String())
		}
	}
}

// removeEncodingHeaders removes every header position named in infos
// outright — used once a Transfer-Encoding or Content-Encoding layer set
// has been fully, successfully decoded, so no header remains naming an
// applied encoding (spec §3's post-orchestration invariant).
func removeEncodingHeaders(hdrs *headers.OrderedHeaders, infos []encoding.EncodingInfo) {
	for _, info := range sortByHeaderIndexDesc(infos) {
		hdrs.RemoveAtPosition(info.HeaderIndex)
	}
}

// sortByHeaderIndexDesc returns a copy of infos ordered from the highest
// HeaderIndex to the lowest, so callers can remove header positions one
// at a time without an earlier removal shifting the position of one
// still to be examined.
func sortByHeaderIndexDesc(infos []encoding.EncodingInfo) []encoding.EncodingInfo {
	sorted := append([]encoding.EncodingInfo(nil), infos...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].HeaderIndex > sorted[i].HeaderIndex {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	return sorted
}
