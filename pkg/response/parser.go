package response

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/relayhq/httpbody/pkg/encoding"
	"github.com/relayhq/httpbody/pkg/errors"
	"github.com/relayhq/httpbody/pkg/headers"
	"github.com/relayhq/httpbody/pkg/message"
)

var headerBodySeps = [][]byte{[]byte("\r\n\r\n"), []byte("\n\n")}

// Parse parses raw HTTP response data with fault tolerance. The body is
// sliced out of the original bytes verbatim, never routed through a line
// scanner, so a chunked or compressed body survives intact for the decode
// orchestrator to process.
func Parse(data []byte) (*Response, error) {
	if len(data) == 0 {
		return nil, errors.NewError(errors.ErrorTypeInvalidFormat,
			"empty response data", "parse", data)
	}

	resp := NewResponse()
	resp.Raw = append([]byte(nil), data...)

	lineEnd := bytes.IndexByte(data, '\n')
	if lineEnd == -1 {
		return nil, errors.NewError(errors.ErrorTypeInvalidFormat,
			"no status line found", "parse", data)
	}
	statusLine := strings.TrimRight(string(data[:lineEnd]), "\r\n")
	if err := resp.parseStatusLine(statusLine); err != nil {
		return nil, err
	}

	resp.LineSeparator = "\n"
	if lineEnd > 0 && data[lineEnd-1] == '\r' {
		resp.LineSeparator = "\r\n"
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
			resp.Headers = headers.NewOrderedHeaders()
		} else {
			resp.Headers = parsedHeaders
		}
	}

	bh := encoding.ParseBodyHeader(resp.Headers)
	resp.bodyHdr = bh

	if bh.IsChunkedTE() {
		resp.body = message.NewChunkedBody(bodyBytes)
	} else {
		main, extra := splitOnContentLength(bh, bodyBytes)
		resp.body = message.NewRawBody(main)
		resp.extraBody = extra
	}

	return resp, nil
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

// parseStatusLine parses the HTTP status line with fault tolerance.
func (r *Response) parseStatusLine(line string) error {
	parts := strings.Fields(line)

	if len(parts) < 2 {
		return errors.NewError(errors.ErrorTypeInvalidFormat,
			"invalid status line format", "parseStatusLine", []byte(line))
	}

	r.Version = parts[0]
	if !strings.HasPrefix(strings.ToUpper(r.Version), "HTTP/") {
		r.Version = "HTTP/1.1"
	}

	statusCodeStr := parts[1]
	statusCode, err := strconv.Atoi(statusCodeStr)
	if err != nil {
		return errors.NewError(errors.ErrorTypeInvalidStatusCode,
			"invalid status code: "+statusCodeStr, "parseStatusLine", []byte(line))
	}
	r.StatusCode = statusCode

	if len(parts) >= 3 {
		r.StatusText = strings.Join(parts[2:], " ")
	} else {
		r.StatusText = getDefaultStatusText(statusCode)
	}

	return nil
}

// getDefaultStatusText provides default status text for common HTTP status codes.
func getDefaultStatusText(statusCode int) string {
	switch statusCode {
	case 100:
		return "Continue"
	case 101:
		return "Switching Protocols"
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 204:
		return "No Content"
	case 301:
		return "Moved Permanently"
	case 302:
		return "Found"
	case 304:
		return "Not Modified"
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 500:
		return "Internal Server Error"
	case 502:
		return "Bad Gateway"
	case 503:
		return "Service Unavailable"
	default:
		return "Unknown"
	}
}
