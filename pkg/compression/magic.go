package compression

import "github.com/relayhq/httpbody/pkg/encoding"

// SniffMagicBytes inspects a body's leading bytes and reports the
// content-coding it was compressed with, when that coding has a
// reliable magic number. gzip and zstd/compress have fixed signatures;
// deflate's raw zlib header is a narrower heuristic (first byte 0x78,
// second byte one of a known set) carried over from the teacher's
// detector. Brotli, identity, chunked, and unknown tokens have no
// reliable magic bytes and are never returned — sniffing them would
// produce false positives (spec §4.4).
func SniffMagicBytes(data []byte) (encoding.ContentEncoding, bool) {
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		return encoding.Gzip, true
	}

	if len(data) >= 4 && data[0] == 0x28 && data[1] == 0xb5 && data[2] == 0x2f && data[3] == 0xfd {
		return encoding.Zstd, true
	}

	if len(data) >= 2 && data[0] == 0x78 {
		switch data[1] {
		case 0x01, 0x5e, 0x9c, 0xda:
			return encoding.Deflate, true
		}
	}

	return encoding.ContentEncoding{}, false
}
