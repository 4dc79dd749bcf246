package form

import "strings"

// TagSet is the ordered value set behind a chip editor. Entries are trimmed
// and never empty. Duplicates are allowed on append; removal takes exactly
// one occurrence.
type TagSet struct {
	values []string
}

// NewTagSet splits a raw comma-separated string into a tag set, trimming
// entries and discarding empties.
func NewTagSet(raw string) *TagSet {
	t := &TagSet{}
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			t.values = append(t.values, v)
		}
	}
	return t
}

// Append adds one trimmed entry. Whitespace-only input is rejected.
func (t *TagSet) Append(raw string) bool {
	v := strings.TrimSpace(raw)
	if v == "" {
		return false
	}
	t.values = append(t.values, v)
	return true
}

// RemoveAt drops the entry at index i.
func (t *TagSet) RemoveAt(i int) {
	if i < 0 || i >= len(t.values) {
		return
	}
	t.values = append(t.values[:i], t.values[i+1:]...)
}

// RemoveLast drops the most recently added entry.
func (t *TagSet) RemoveLast() {
	if len(t.values) > 0 {
		t.values = t.values[:len(t.values)-1]
	}
}

// Len returns the number of entries.
func (t *TagSet) Len() int {
	return len(t.values)
}

// Values returns a copy of the entries in order.
func (t *TagSet) Values() []string {
	out := make([]string, len(t.values))
	copy(out, t.values)
	return out
}

// Serialize flattens the set with the wire delimiter.
func (t *TagSet) Serialize() string {
	return strings.Join(t.values, ",")
}
