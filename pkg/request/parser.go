package request

import (
	"bytes"
	"strings"

	"github.com/relayhq/httpbody/pkg/encoding"
	"github.com/relayhq/httpbody/pkg/errors"
	"github.com/relayhq/httpbody/pkg/headers"
	"github.com/relayhq/httpbody/pkg/message"
)

// headerBodySeps are the blank lines that end a header block, tried in
// order so both conventional and bare-LF framed messages parse.
var headerBodySeps = [][]byte{[]byte("\r\n\r\n"), []byte("\n\n")}

// Parse parses raw HTTP request data with fault tolerance. The body is
// sliced out of the original bytes verbatim — it is never put through a
// line scanner, since a chunked or compressed body is binary and a
// scanner would corrupt it.
func Parse(data []byte) (*Request, error) {
	if len(data) == 0 {
		return nil, errors.NewError(errors.ErrorTypeInvalidFormat,
			"empty request data", "parse", data)
	}

	req := NewRequest()
	req.Raw = append([]byte(nil), data...)

	lineEnd := bytes.IndexByte(data, '\n')
	if lineEnd == -1 {
		return nil, errors.NewError(errors.ErrorTypeInvalidFormat,
			"no request line found", "parse", data)
	}
	requestLine := strings.TrimRight(string(data[:lineEnd]), "\r\n")
	if err := req.parseRequestLine(requestLine); err != nil {
		return nil, err
	}

	req.LineSeparator = "\n"
	if lineEnd > 0 && data[lineEnd-1] == '\r' {
		req.LineSeparator = "\r\n"
	}

	rest := data[lineEnd+1:]

	headerEnd := -1
	sepLen := 0
	for _, sep := range headerBodySeps {
		if idx := bytes.Index(rest, sep); idx != -1 {
			headerEnd = idx
			sepLen = len(sep)
			break
		}
	}

	var headerBlock, bodyBytes []byte
	if headerEnd == -1 {
		headerBlock = rest
	} else {
		headerBlock = rest[:headerEnd]
		bodyBytes = rest[headerEnd+sepLen:]
	}

	if len(headerBlock) > 0 {
		parsedHeaders, err := headers.ParseHeaders(headerBlock)
		if err != nil {
			req.Headers = headers.NewOrderedHeaders()
		} else {
			req.Headers = parsedHeaders
		}
	}

	bh := encoding.ParseBodyHeader(req.Headers)
	req.bodyHdr = bh

	if bh.IsChunkedTE() {
		req.body = message.NewChunkedBody(bodyBytes)
	} else {
		main, extra := splitOnContentLength(bh, bodyBytes)
		req.body = message.NewRawBody(main)
		req.extraBody = extra
	}

	return req, nil
}

// splitOnContentLength separates the bytes a Content-Length header
// actually accounts for from anything left trailing behind them — a
// fragment a transport layer left unaccounted for, surfaced to the
// decode orchestrator as the message's "extra" body (spec §4.6).
func splitOnContentLength(bh *encoding.BodyHeader, body []byte) (main, extra []byte) {
	if n, ok := bh.TransferType.Len(); ok && n >= 0 && n < len(body) {
		return body[:n], body[n:]
	}
	return body, nil
}

// parseRequestLine parses the HTTP request line with fault tolerance.
func (r *Request) parseRequestLine(line string) error {
	parts := strings.Fields(line)

	if len(parts) < 2 {
		return errors.NewError(errors.ErrorTypeInvalidFormat,
			"invalid request line format", "parseRequestLine", []byte(line))
	}

	r.Method = strings.ToUpper(parts[0])
	if r.Method == "" {
		return errors.NewError(errors.ErrorTypeInvalidMethod,
			"empty HTTP method", "parseRequestLine", []byte(line))
	}

	r.URL = parts[1]
	if r.URL == "" {
		return errors.NewError(errors.ErrorTypeInvalidURL,
			"empty URL/path", "parseRequestLine", []byte(line))
	}

	if len(parts) >= 3 {
		r.Version = parts[2]
	} else {
		r.Version = "HTTP/1.1"
	}

	if !strings.HasPrefix(strings.ToUpper(r.Version), "HTTP/") {
		r.Version = "HTTP/1.1"
	}

	return nil
}
