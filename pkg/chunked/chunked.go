// Package chunked implements an incremental RFC 7230 §4.1 chunked
// transfer-encoding reader. It is incremental by design: a reader is fed
// bytes as they arrive and re-entered on each call, rather than handed a
// complete buffer up front, so a partial chunk at the end of a TCP read
// never forces the caller to buffer and retry from scratch.
package chunked

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/relayhq/httpbody/pkg/cursor"
	"github.com/relayhq/httpbody/pkg/errors"
	"github.com/relayhq/httpbody/pkg/headers"
)

// RecordKind tags the variant a ChunkRecord carries.
type RecordKind int

const (
	// RecordSize is a parsed chunk-size line (extensions discarded).
	RecordSize RecordKind = iota
	// RecordChunk is a chunk's data, minus its trailing CRLF.
	RecordChunk
	// RecordLastChunk is the zero-size chunk that ends the body.
	RecordLastChunk
	// RecordTrailers carries the trailer header block, if any.
	RecordTrailers
	// RecordEndCRLF is the final CRLF after the (possibly empty) trailer
	// block.
	RecordEndCRLF
	// RecordExtra is any bytes left over in the cursor once End is
	// reached — data belonging to the next message, or to a separately
	// compressed "extra" body fragment (spec §4.6).
	RecordExtra
)

// ChunkRecord is one unit of progress the reader reports back to its
// caller. Exactly one field is meaningful, selected by Kind.
type ChunkRecord struct {
	Kind     RecordKind
	Size     int64
	Chunk    []byte
	Trailers *headers.OrderedHeaders
	Extra    []byte
}

type readerState int

const (
	stateReadSize readerState = iota
	stateReadChunk
	stateLastChunk
	stateReadTrailers
	stateEndCRLF
	stateEnd
	stateFailed
)

// Reader drives the chunk-by-chunk state machine described in spec §4.1.
// Next is called repeatedly with a Cursor that is appended to as more
// bytes arrive; each call either returns a ChunkRecord and advances the
// cursor, or returns (ChunkRecord{}, false, nil) meaning "not enough
// bytes yet, append more and call again".
//
// A Reader is single-use and not safe for concurrent calls to Next.
type Reader struct {
	state       readerState
	chunkRemain int64
	err         error
}

// NewReader creates a Reader positioned to read the first chunk-size
// line.
func NewReader() *Reader {
	return &Reader{state: stateReadSize}
}

// Err returns the terminal parse error, if the reader entered the Failed
// state.
func (r *Reader) Err() error {
	return r.err
}

// Done reports whether the reader has reached the End state (the whole
// chunked body, including its terminating CRLF, has been consumed).
func (r *Reader) Done() bool {
	return r.state == stateEnd
}

// Next advances the state machine by at most one record. ok is false
// when the cursor does not yet hold enough bytes to make progress; the
// caller should append more data and call Next again without otherwise
// changing the cursor.
func (r *Reader) Next(c *cursor.Cursor) (rec ChunkRecord, ok bool, err error) {
	switch r.state {
	case stateFailed:
		return ChunkRecord{}, false, r.err

	case stateReadSize:
		return r.readSize(c)

	case stateReadChunk:
		return r.readChunk(c)

	case stateLastChunk:
		return r.readLastChunkCRLF(c)

	case stateReadTrailers:
		return r.readTrailers(c)

	case stateEndCRLF:
		return r.readEndCRLF(c)

	case stateEnd:
		remaining := c.Remaining()
		if len(remaining) == 0 {
			return ChunkRecord{}, false, nil
		}
		data := append([]byte(nil), remaining...)
		c.Advance(len(remaining))
		return ChunkRecord{Kind: RecordExtra, Extra: data}, true, nil
	}

	return ChunkRecord{}, false, nil
}

// findCRLF locates the first "\r\n" in buf, or -1.
func findCRLF(buf []byte) int {
	for i := 0; i+1 < len(buf); i++ {
		if buf[i] == '\r' && buf[i+1] == '\n' {
			return i
		}
	}
	return -1
}

func (r *Reader) fail(err error) (ChunkRecord, bool, error) {
	r.state = stateFailed
	r.err = err
	return ChunkRecord{}, false, err
}

func (r *Reader) readSize(c *cursor.Cursor) (ChunkRecord, bool, error) {
	remaining := c.Remaining()
	lineEnd := findCRLF(remaining)
	if lineEnd == -1 {
		return ChunkRecord{}, false, nil
	}

	line := string(remaining[:lineEnd])
	sizeToken := line
	if idx := strings.IndexByte(line, ';'); idx != -1 {
		sizeToken = line[:idx]
	}
	sizeToken = strings.TrimSpace(sizeToken)

	size, parseErr := strconv.ParseInt(sizeToken, 16, 64)
	if parseErr != nil || size < 0 {
		return r.fail(errors.NewError(errors.ErrorTypeChunkSizeParse,
			fmt.Sprintf("invalid chunk size %q", line), line, remaining[:lineEnd]))
	}

	c.Advance(lineEnd + 2)

	if size == 0 {
		r.state = stateLastChunk
		return ChunkRecord{Kind: RecordLastChunk}, true, nil
	}

	r.chunkRemain = size
	r.state = stateReadChunk
	return ChunkRecord{Kind: RecordSize, Size: size}, true, nil
}

func (r *Reader) readChunk(c *cursor.Cursor) (ChunkRecord, bool, error) {
	remaining := c.Remaining()
	need := int(r.chunkRemain) + 2 // chunk data plus trailing CRLF
	if len(remaining) < need {
		return ChunkRecord{}, false, nil
	}

	if remaining[r.chunkRemain] != '\r' || remaining[r.chunkRemain+1] != '\n' {
		return r.fail(errors.NewError(errors.ErrorTypeInvalidFormat,
			"chunk data not terminated by CRLF", "", remaining[:need]))
	}

	chunkData := make([]byte, r.chunkRemain)
	copy(chunkData, remaining[:r.chunkRemain])
	c.Advance(need)

	r.state = stateReadSize
	return ChunkRecord{Kind: RecordChunk, Chunk: chunkData}, true, nil
}

// readLastChunkCRLF peeks ahead: per original_source's chunked_reader,
// after the zero-size chunk line the next bytes are either trailer
// header lines or the bare terminating CRLF. Both are handled by
// ReadTrailers, which treats an immediate CRLF as "zero trailers".
func (r *Reader) readLastChunkCRLF(c *cursor.Cursor) (ChunkRecord, bool, error) {
	r.state = stateReadTrailers
	return r.readTrailers(c)
}

// readTrailers consumes the trailer-part (RFC 7230 §4.1.2): zero or more
// complete header lines, each already CRLF-terminated. It stops at, but
// does not consume, the blank line that follows — that final CRLF
// belongs to the EndCRLF state, except when there are zero trailer
// lines: then the remaining bytes start directly with "\r\n", which IS
// the terminator, so this consumes it and yields EndCRLF directly
// instead of an empty Trailers record followed by a second EndCRLF.
func (r *Reader) readTrailers(c *cursor.Cursor) (ChunkRecord, bool, error) {
	remaining := c.Remaining()

	if len(remaining) >= 2 && remaining[0] == '\r' && remaining[1] == '\n' {
		c.Advance(2)
		r.state = stateEnd
		return ChunkRecord{Kind: RecordEndCRLF}, true, nil
	}

	end := -1
	for i := 0; i+3 < len(remaining); i++ {
		if remaining[i] == '\r' && remaining[i+1] == '\n' &&
			remaining[i+2] == '\r' && remaining[i+3] == '\n' {
			end = i + 2 // include the terminating line's own CRLF
			break
		}
	}
	if end == -1 {
		return ChunkRecord{}, false, nil
	}

	trailerBlock := remaining[:end]
	trailerHeaders, parseErr := headers.ParseHeaders(trailerBlock)
	if parseErr != nil {
		return r.fail(errors.NewError(errors.ErrorTypeMalformedHeader,
			"malformed trailer block", "", trailerBlock))
	}

	c.Advance(end)
	r.state = stateEndCRLF
	return ChunkRecord{Kind: RecordTrailers, Trailers: trailerHeaders}, true, nil
}

func (r *Reader) readEndCRLF(c *cursor.Cursor) (ChunkRecord, bool, error) {
	remaining := c.Remaining()
	if len(remaining) < 2 {
		return ChunkRecord{}, false, nil
	}
	if remaining[0] != '\r' || remaining[1] != '\n' {
		return r.fail(errors.NewError(errors.ErrorTypeInvalidFormat,
			"missing terminating CRLF after trailers", "", remaining[:2]))
	}
	c.Advance(2)
	r.state = stateEnd
	return ChunkRecord{Kind: RecordEndCRLF}, true, nil
}

// Decode runs a Reader to completion (or to its first unresolvable
// partial state) against a fully-buffered chunked body, returning the
// concatenated chunk data and any trailers. It is the non-incremental
// entry point used by the decode orchestrator and by tests; streaming
// callers drive a Reader directly instead.
func Decode(chunkedBody []byte) (body []byte, trailers *headers.OrderedHeaders, extra []byte, err error) {
	c := cursor.New(chunkedBody)
	r := NewReader()
	trailers = headers.NewOrderedHeaders()

	var out []byte
	for {
		rec, ok, nextErr := r.Next(c)
		if nextErr != nil {
			return out, trailers, nil, nextErr
		}
		if !ok {
			// Ran out of bytes mid-record: what we have is a partial
			// decode, not an error.
			return out, trailers, c.Remaining(), nil
		}
		switch rec.Kind {
		case RecordChunk:
			out = append(out, rec.Chunk...)
		case RecordTrailers:
			trailers = rec.Trailers
		case RecordExtra:
			return out, trailers, rec.Extra, nil
		case RecordEndCRLF:
			// keep looping; a following Next call will surface any
			// leftover bytes as RecordExtra once in stateEnd.
		}
		if r.Done() && len(c.Remaining()) == 0 {
			return out, trailers, nil, nil
		}
	}
}
