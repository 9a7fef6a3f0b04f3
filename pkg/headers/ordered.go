package headers

import (
	"strings"
	"sync"
)

// Header represents a single HTTP header.
type Header struct {
	Name  string
	Value string
}

// OrderedHeaders preserves the order of HTTP headers, allows duplicate
// names (Set-Cookie, Trailer-promoted trailers, repeated encoding
// headers), and exposes position-indexed mutation. Position indexing is
// what the decode orchestrator needs: an EncodingInfo.HeaderIndex is a
// position into this list at the time the BodyHeader summary was built,
// and partial-decode truncation (spec §4.7) mutates a header purely by
// its position, never by re-searching for it by name.
type OrderedHeaders struct {
	mu      sync.RWMutex
	entries []Header
}

// NewOrderedHeaders creates an empty OrderedHeaders.
func NewOrderedHeaders() *OrderedHeaders {
	return &OrderedHeaders{entries: make([]Header, 0)}
}

// Set adds a header, or updates the value of the first existing header
// with the same name (case-insensitive).
func (h *OrderedHeaders) Set(name, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.entries {
		if strings.EqualFold(h.entries[i].Name, name) {
			h.entries[i].Value = value
			return
		}
	}
	h.entries = append(h.entries, Header{Name: name, Value: value})
}

// SetAfter adds or updates a header, placing a new entry after the first
// occurrence of afterHeader.
func (h *OrderedHeaders) SetAfter(name, value, afterHeader string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.entries {
		if strings.EqualFold(h.entries[i].Name, name) {
			h.entries[i].Value = value
			return
		}
	}

	insertPos := len(h.entries)
	for i := range h.entries {
		if strings.EqualFold(h.entries[i].Name, afterHeader) {
			insertPos = i + 1
			break
		}
	}
	h.insertAt(insertPos, Header{Name: name, Value: value})
}

// SetBefore adds or updates a header, placing a new entry before the
// first occurrence of beforeHeader.
func (h *OrderedHeaders) SetBefore(name, value, beforeHeader string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.entries {
		if strings.EqualFold(h.entries[i].Name, name) {
			h.entries[i].Value = value
			return
		}
	}

	insertPos := len(h.entries)
	for i := range h.entries {
		if strings.EqualFold(h.entries[i].Name, beforeHeader) {
			insertPos = i
			break
		}
	}
	h.insertAt(insertPos, Header{Name: name, Value: value})
}

// SetAt adds or updates a header at a specific index position.
func (h *OrderedHeaders) SetAt(name, value string, index int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.entries {
		if strings.EqualFold(h.entries[i].Name, name) {
			h.entries[i].Value = value
			return
		}
	}
	if index < 0 || index > len(h.entries) {
		index = len(h.entries)
	}
	h.insertAt(index, Header{Name: name, Value: value})
}

func (h *OrderedHeaders) insertAt(index int, entry Header) {
	h.entries = append(h.entries, Header{})
	copy(h.entries[index+1:], h.entries[index:])
	h.entries[index] = entry
}

// Get retrieves the value of the first header matching name
// (case-insensitive).
func (h *OrderedHeaders) Get(name string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i := range h.entries {
		if strings.EqualFold(h.entries[i].Name, name) {
			return h.entries[i].Value
		}
	}
	return ""
}

// GetRaw retrieves the original-case name of the first header matching
// name.
func (h *OrderedHeaders) GetRaw(name string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i := range h.entries {
		if strings.EqualFold(h.entries[i].Name, name) {
			return h.entries[i].Name
		}
	}
	return ""
}

// Has reports whether any header matches name (case-insensitive).
func (h *OrderedHeaders) Has(name string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i := range h.entries {
		if strings.EqualFold(h.entries[i].Name, name) {
			return true
		}
	}
	return false
}

// HasHeaderKey returns the position of the first header matching name,
// and whether one was found.
func (h *OrderedHeaders) HasHeaderKey(name string) (int, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i := range h.entries {
		if strings.EqualFold(h.entries[i].Name, name) {
			return i, true
		}
	}
	return -1, false
}

// Del removes the first header matching name.
func (h *OrderedHeaders) Del(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.entries {
		if strings.EqualFold(h.entries[i].Name, name) {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			return
		}
	}
}

// DelAll removes every header matching name.
func (h *OrderedHeaders) DelAll(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := h.entries[:0]
	for _, e := range h.entries {
		if !strings.EqualFold(e.Name, name) {
			kept = append(kept, e)
		}
	}
	h.entries = kept
}

// Add appends a new header without merging into an existing one (for
// multi-value headers like Set-Cookie).
func (h *OrderedHeaders) Add(name, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, Header{Name: name, Value: value})
}

// All returns every header in order. The returned slice is a copy; it is
// safe to range over it while separately mutating the header map.
func (h *OrderedHeaders) All() []Header {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Header, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of headers.
func (h *OrderedHeaders) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// ============================================================================
// Position-indexed mutation (host-message collaborator contract, spec §6)
// ============================================================================

// At returns the header at position i and whether i was in range.
func (h *OrderedHeaders) At(i int) (Header, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return Header{}, false
	}
	return h.entries[i], true
}

// RemoveAtPosition removes the header at position i, if in range.
func (h *OrderedHeaders) RemoveAtPosition(i int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i < 0 || i >= len(h.entries) {
		return
	}
	h.entries = append(h.entries[:i], h.entries[i+1:]...)
}

// UpdateValueAtPosition replaces the value of the header at position i.
func (h *OrderedHeaders) UpdateValueAtPosition(i int, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i < 0 || i >= len(h.entries) {
		return
	}
	h.entries[i].Value = value
}

// InsertHeader appends a new header at the end of the list, returning its
// position.
func (h *OrderedHeaders) InsertHeader(name, value string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, Header{Name: name, Value: value})
	return len(h.entries) - 1
}

// TruncateValueAtPosition truncates the header value at position i at the
// first occurrence of token, dropping token and everything to its right
// along with any preceding ", " or " " separator (spec §4.7). If token is
// not found the value is left unchanged.
func (h *OrderedHeaders) TruncateValueAtPosition(i int, token string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i < 0 || i >= len(h.entries) {
		return
	}
	value := h.entries[i].Value
	idx := strings.Index(value, token)
	if idx == -1 {
		return
	}
	prefix := value[:idx]
	prefix = strings.TrimRight(prefix, " ")
	prefix = strings.TrimSuffix(prefix, ",")
	prefix = strings.TrimRight(prefix, " ")
	h.entries[i].Value = prefix
}
