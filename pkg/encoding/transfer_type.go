package encoding

import "strconv"

// TransferType classifies how a message's body is delimited. Ordering
// matters: Unknown < Close < ContentLength < Chunked, used by the
// "highest-precedence wins" merge rule in BodyHeader.UpdateTransferType.
type TransferType struct {
	kind transferTypeKind
	n    int // only meaningful when kind == transferContentLength
}

type transferTypeKind int

const (
	transferUnknown transferTypeKind = iota
	transferClose
	transferContentLength
	transferChunked
)

var (
	TransferUnknown = TransferType{kind: transferUnknown}
	TransferClose   = TransferType{kind: transferClose}
	TransferChunked = TransferType{kind: transferChunked}
)

// ContentLength builds a TransferType carrying the advertised length.
func ContentLength(n int) TransferType {
	return TransferType{kind: transferContentLength, n: n}
}

// Len returns the advertised length and whether t is a ContentLength kind.
func (t TransferType) Len() (int, bool) {
	return t.n, t.kind == transferContentLength
}

// Precedence returns t's rank in the Unknown < Close < ContentLength <
// Chunked ordering, for the "highest precedence wins" merge rule.
func (t TransferType) Precedence() int {
	return int(t.kind)
}

// FromContentLengthValue parses a Content-Length header value into a
// TransferType: a valid non-negative integer yields ContentLength(n);
// anything else (the connection cannot be framed by length) yields Close.
func FromContentLengthValue(value string) TransferType {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return TransferClose
	}
	return ContentLength(n)
}

func (t TransferType) Equal(other TransferType) bool {
	if t.kind != other.kind {
		return false
	}
	if t.kind == transferContentLength {
		return t.n == other.n
	}
	return true
}
