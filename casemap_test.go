package headerkit

import (
	"errors"
	"strings"
	"testing"
)

func TestCaseInsensitiveLookup(t *testing.T) {
	m := NewCaseInsensitiveMap[int]()
	m.Put("Content-Type", 1)

	variants := []string{
		"Content-Type",
		"content-type",
		"CONTENT-TYPE",
		"cOnTeNt-TyPe",
	}

	for _, variant := range variants {
		value, ok := m.Get(variant)
		if !ok {
			t.Errorf("Get(%q) reported absent, expected present", variant)
		}
		if value != 1 {
			t.Errorf("Get(%q) = %d, expected 1", variant, value)
		}
		if !m.Contains(variant) {
			t.Errorf("Contains(%q) = false, expected true", variant)
		}
	}

	if m.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", m.Len())
	}
}

func TestCasingPreservation(t *testing.T) {
	m := NewCaseInsensitiveMap[string]()
	m.Put("Content-Type", "text/html")

	count := 0
	for entry := range m.Entries() {
		count++
		if entry.Key() != "Content-Type" {
			t.Errorf("entry key = %q, expected original casing \"Content-Type\"", entry.Key())
		}
		if entry.Value() != "text/html" {
			t.Errorf("entry value = %q, expected \"text/html\"", entry.Value())
		}
	}
	if count != 1 {
		t.Errorf("iterated %d entries, expected 1", count)
	}
}

func TestOverwriteLastCasingWins(t *testing.T) {
	m := NewCaseInsensitiveMap[int]()

	if _, ok := m.Put("A", 1); ok {
		t.Error("first Put reported a previous value")
	}

	previous, ok := m.Put("a", 2)
	if !ok {
		t.Error("second Put did not report a previous value")
	}
	if previous != 1 {
		t.Errorf("second Put returned previous value %d, expected 1", previous)
	}

	if m.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", m.Len())
	}

	value, ok := m.Get("A")
	if !ok || value != 2 {
		t.Errorf("Get(\"A\") = %d, %t, expected 2, true", value, ok)
	}

	for entry := range m.Entries() {
		if entry.Key() != "a" {
			t.Errorf("entry key = %q, expected last writer's casing \"a\"", entry.Key())
		}
	}
}

func TestAbsentKey(t *testing.T) {
	m := NewCaseInsensitiveMap[int]()

	if value, ok := m.Get("missing"); ok || value != 0 {
		t.Errorf("Get on empty map = %d, %t, expected 0, false", value, ok)
	}
	if value, ok := m.Remove("missing"); ok || value != 0 {
		t.Errorf("Remove on empty map = %d, %t, expected 0, false", value, ok)
	}
	if m.Contains("missing") {
		t.Error("Contains on empty map = true, expected false")
	}
	if m.Contains("") {
		t.Error("Contains(\"\") on empty map = true, expected false")
	}
}

func TestEmptyStringKey(t *testing.T) {
	m := NewCaseInsensitiveMap[int]()
	m.Put("", 7)

	if value, ok := m.Get(""); !ok || value != 7 {
		t.Errorf("Get(\"\") = %d, %t, expected 7, true", value, ok)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", m.Len())
	}
}

func TestPutAllCollisionIsLossy(t *testing.T) {
	m := NewCaseInsensitiveMap[int]()
	m.PutAll(map[string]int{
		"X": 1,
		"x": 2,
	})

	if m.Len() != 1 {
		t.Errorf("Len() = %d after colliding PutAll, expected 1", m.Len())
	}

	// Go does not define map iteration order, so either write may have been
	// applied last; only one of them survived either way.
	value, ok := m.Get("X")
	if !ok {
		t.Fatal("Get(\"X\") reported absent after PutAll")
	}
	if value != 1 && value != 2 {
		t.Errorf("Get(\"X\") = %d, expected 1 or 2", value)
	}
}

func TestPutAllAppliesEveryEntry(t *testing.T) {
	m := NewCaseInsensitiveMap[int]()
	m.PutAll(map[string]int{
		"Accept":       1,
		"Content-Type": 2,
		"Host":         3,
	})

	if m.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", m.Len())
	}
	for _, key := range []string{"accept", "CONTENT-TYPE", "Host"} {
		if !m.Contains(key) {
			t.Errorf("Contains(%q) = false after PutAll", key)
		}
	}
}

func TestEntrySetValueRejected(t *testing.T) {
	m := NewCaseInsensitiveMap[int]()
	m.Put("Host", 1)

	for entry := range m.Entries() {
		err := entry.SetValue(99)
		if err == nil {
			t.Fatal("SetValue succeeded, expected ErrReadOnlyEntry")
		}
		if !errors.Is(err, ErrReadOnlyEntry) {
			t.Errorf("SetValue error = %v, expected ErrReadOnlyEntry", err)
		}
		if !errors.Is(err, errors.ErrUnsupported) {
			t.Errorf("SetValue error %v does not match errors.ErrUnsupported", err)
		}
	}

	if value, _ := m.Get("host"); value != 1 {
		t.Errorf("stored value changed to %d after rejected SetValue, expected 1", value)
	}
}

func TestRemoveDuringIteration(t *testing.T) {
	m := NewCaseInsensitiveMap[int]()
	m.Put("A", 1)
	m.Put("B", 2)
	m.Put("C", 3)

	for entry := range m.Entries() {
		if entry.Key() == "B" {
			if _, ok := m.Remove(entry.Key()); !ok {
				t.Error("Remove of yielded key reported absent")
			}
			if m.Len() != 2 {
				t.Errorf("Len() = %d immediately after removal, expected 2", m.Len())
			}
		}
	}

	if m.Contains("b") {
		t.Error("removed key still present after iteration")
	}
}

func TestSizeMatchesEnumeration(t *testing.T) {
	m := NewCaseInsensitiveMap[int]()

	ops := []struct {
		remove bool
		key    string
		value  int
	}{
		{false, "Accept", 1},
		{false, "ACCEPT", 2},
		{false, "Host", 3},
		{false, "User-Agent", 4},
		{true, "host", 0},
		{false, "user-agent", 5},
		{true, "Missing", 0},
	}

	for _, op := range ops {
		if op.remove {
			m.Remove(op.key)
		} else {
			m.Put(op.key, op.value)
		}

		count := 0
		seen := make(map[string]bool)
		for entry := range m.Entries() {
			count++
			folded := strings.ToLower(entry.Key())
			if seen[folded] {
				t.Errorf("folded key %q yielded twice", folded)
			}
			seen[folded] = true
		}
		if count != m.Len() {
			t.Errorf("enumerated %d entries but Len() = %d", count, m.Len())
		}
	}

	if m.Len() != 2 {
		t.Errorf("final Len() = %d, expected 2", m.Len())
	}
}

func TestEntriesSnapshotAtCallTime(t *testing.T) {
	m := NewCaseInsensitiveMap[int]()
	m.Put("A", 1)

	entries := m.Entries()
	m.Put("B", 2)

	// The sequence is lazy: a pass started now must see the current contents.
	count := 0
	for range entries {
		count++
	}
	if count != 2 {
		t.Errorf("iterated %d entries, expected 2", count)
	}
}

func TestEarlyIterationStop(t *testing.T) {
	m := NewCaseInsensitiveMap[int]()
	m.Put("A", 1)
	m.Put("B", 2)
	m.Put("C", 3)

	count := 0
	for range m.Entries() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("iterated %d entries before break, expected 2", count)
	}
}

func TestGenericValueTypes(t *testing.T) {
	type endpoint struct {
		host string
		port int
	}

	m := NewCaseInsensitiveMap[endpoint]()
	m.Put("Origin", endpoint{host: "example.com", port: 443})

	value, ok := m.Get("ORIGIN")
	if !ok {
		t.Fatal("Get reported absent for struct value")
	}
	if value.host != "example.com" || value.port != 443 {
		t.Errorf("unexpected struct value %+v", value)
	}
}
