package headerkit

import "iter"

// Header stores protocol header field names and their values. Since header
// field names are case-insensitive, the Header methods are case-insensitive
// as well, while the casing a name was last written with is kept and
// surfaced during iteration and serialization.
//
// The zero value is an empty header ready for use; the backing storage is
// created on first write. Copies made after that share it.
//
// A Header is not safe for concurrent use.
type Header struct {
	m *CaseInsensitiveMap[[]string]
}

// NewHeader creates a new, empty header table.
func NewHeader() Header {
	return Header{m: NewCaseInsensitiveMap[[]string]()}
}

func (h *Header) init() *CaseInsensitiveMap[[]string] {
	if h.m == nil {
		h.m = NewCaseInsensitiveMap[[]string]()
	}
	return h.m
}

// Set sets the header field associated with key to the single value.
// It replaces any existing values and the remembered casing of key.
func (h *Header) Set(key, value string) {
	h.init().Put(key, []string{value})
}

// Add appends value to the field associated with key, compared
// case-insensitively. The casing of key becomes the remembered one.
func (h *Header) Add(key, value string) {
	m := h.init()
	values, _ := m.Get(key)
	m.Put(key, append(values, value))
}

// Get returns the first value associated with the given key, compared
// case-insensitively, or "" if the field is absent.
func (h *Header) Get(key string) string {
	if h.m == nil {
		return ""
	}
	if values, ok := h.m.Get(key); ok && len(values) > 0 {
		return values[0]
	}
	return ""
}

// Values returns all values associated with the given key, compared
// case-insensitively. The returned slice is shared with the header and must
// not be modified.
func (h *Header) Values(key string) []string {
	if h.m == nil {
		return nil
	}
	values, _ := h.m.Get(key)
	return values
}

// Has reports whether the header contains the given field.
func (h *Header) Has(key string) bool {
	return h.m != nil && h.m.Contains(key)
}

// Del deletes the field associated with key, compared case-insensitively.
func (h *Header) Del(key string) {
	if h.m != nil {
		h.m.Remove(key)
	}
}

// Len returns the number of distinct fields stored.
func (h *Header) Len() int {
	if h.m == nil {
		return 0
	}
	return h.m.Len()
}

// Entries returns an iterator over the stored fields. Each entry carries the
// field name in its last-written casing and the field's values.
func (h *Header) Entries() iter.Seq[Entry[[]string]] {
	if h.m == nil {
		return func(yield func(Entry[[]string]) bool) {}
	}
	return h.m.Entries()
}

// Clone returns a deep copy of the header.
func (h *Header) Clone() Header {
	clone := NewHeader()
	for entry := range h.Entries() {
		values := make([]string, len(entry.Value()))
		copy(values, entry.Value())
		clone.m.Put(entry.Key(), values)
	}
	return clone
}
