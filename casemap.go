package headerkit

import (
	"errors"
	"fmt"
	"iter"
)

// ErrReadOnlyEntry is returned by Entry.SetValue. Entries yielded during
// iteration are read-only views; values can only be replaced through
// CaseInsensitiveMap.Put so that key folding is never bypassed.
// It matches errors.ErrUnsupported under errors.Is.
var ErrReadOnlyEntry = fmt.Errorf("headerkit: entry is read-only: %w", errors.ErrUnsupported)

// Entry is a read-only view of a single (key, value) pair stored in a
// CaseInsensitiveMap. Key returns the original casing of whichever key
// string was last written for its slot, never the folded form.
type Entry[V any] struct {
	key   string
	value V
}

// Key returns the originally supplied key string, with its casing intact.
func (e Entry[V]) Key() string {
	return e.key
}

// Value returns the stored value.
func (e Entry[V]) Value() V {
	return e.value
}

// SetValue always fails with ErrReadOnlyEntry.
// Mutate the map with Put instead.
func (e Entry[V]) SetValue(_ V) error {
	return ErrReadOnlyEntry
}

// CaseInsensitiveMap maps string keys to values of type V. Key lookup,
// insertion and removal ignore letter case, using a fixed case folding that
// does not depend on the process locale, while the original casing of each
// key is preserved and surfaced by Entries.
//
// When two differently-cased keys fold to the same slot, the most recent Put
// wins: it replaces both the stored value and the remembered casing.
//
// A CaseInsensitiveMap is not safe for concurrent use. Callers that share
// one across goroutines must serialize access themselves.
type CaseInsensitiveMap[V any] struct {
	slots map[string]Entry[V]
}

// NewCaseInsensitiveMap returns an empty map ready for use.
func NewCaseInsensitiveMap[V any]() *CaseInsensitiveMap[V] {
	return &CaseInsensitiveMap[V]{
		slots: make(map[string]Entry[V]),
	}
}

// Get returns the value stored under key, compared case-insensitively.
// The second return value reports whether a matching slot exists.
func (m *CaseInsensitiveMap[V]) Get(key string) (V, bool) {
	entry, ok := m.slots[foldKey(key)]
	return entry.value, ok
}

// Put stores value under key and returns the value previously occupying the
// slot, if any. Writing a key that folds equal to an existing one is not an
// error: the new value and the new casing replace the old ones.
func (m *CaseInsensitiveMap[V]) Put(key string, value V) (V, bool) {
	folded := foldKey(key)
	previous, ok := m.slots[folded]
	m.slots[folded] = Entry[V]{key: key, value: value}
	return previous.value, ok
}

// Contains reports whether a slot matching key exists. It has no side
// effects and does not construct a value.
func (m *CaseInsensitiveMap[V]) Contains(key string) bool {
	_, ok := m.slots[foldKey(key)]
	return ok
}

// Remove deletes the slot matching key and returns the removed value.
// Removing an absent key is not an error.
func (m *CaseInsensitiveMap[V]) Remove(key string) (V, bool) {
	folded := foldKey(key)
	entry, ok := m.slots[folded]
	if ok {
		delete(m.slots, folded)
	}
	return entry.value, ok
}

// PutAll applies Put for every pair of other, in other's iteration order.
//
// Use this method with caution. If other contains keys that are duplicates
// when compared case-insensitively, only the last one applied survives: the
// earlier values and casings are silently lost. This last-write-wins
// behavior is deliberate and callers may depend on it.
func (m *CaseInsensitiveMap[V]) PutAll(other map[string]V) {
	for key, value := range other {
		m.Put(key, value)
	}
}

// Len returns the number of distinct folded slots currently stored.
func (m *CaseInsensitiveMap[V]) Len() int {
	return len(m.slots)
}

// Entries returns an iterator over the current contents of the map. Each
// yielded Entry carries the originally supplied key casing. Removing the
// yielded key via Remove during iteration is supported and takes effect
// immediately; any other concurrent mutation is undefined, as the map is
// not thread-safe.
func (m *CaseInsensitiveMap[V]) Entries() iter.Seq[Entry[V]] {
	return func(yield func(Entry[V]) bool) {
		for _, entry := range m.slots {
			if !yield(entry) {
				return
			}
		}
	}
}
