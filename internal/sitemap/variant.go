package sitemap

import "fmt"

// Variant is one complete, named navigation tree (one per brand/deployment).
type Variant struct {
	Name    string
	Entries []Entry
}

// Validate checks that the variant has top-level entries and that every
// entry in the tree is well formed.
func (v Variant) Validate() error {
	if len(v.Entries) == 0 {
		return fmt.Errorf("variant %q: %w", v.Name, ErrEmptyVariant)
	}
	for _, e := range v.Entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("variant %q: %w", v.Name, err)
		}
	}
	return nil
}

// Walk visits every entry depth-first, parents before children.
// Top-level entries have depth 0. Returning false stops the walk.
func (v Variant) Walk(fn func(e Entry, depth int) bool) {
	walk(v.Entries, 0, fn)
}

func walk(entries []Entry, depth int, fn func(Entry, int) bool) bool {
	for _, e := range entries {
		if !fn(e, depth) {
			return false
		}
		if !walk(e.Children, depth+1, fn) {
			return false
		}
	}
	return true
}

// Count returns the number of entries in the whole tree.
func (v Variant) Count() int {
	n := 0
	v.Walk(func(Entry, int) bool {
		n++
		return true
	})
	return n
}

// Find returns the entry reached by following labels from the top level.
func (v Variant) Find(labels ...string) (Entry, bool) {
	if len(labels) == 0 {
		return Entry{}, false
	}
	entries := v.Entries
	var found Entry
	for _, label := range labels {
		i := indexOf(entries, label)
		if i < 0 {
			return Entry{}, false
		}
		found = entries[i]
		entries = found.Children
	}
	return found, true
}

// ActiveTrail returns the labels of the active chain for location, from the
// top level down to the deepest active descendant. The first active sibling
// wins at every level. Nil when no top-level entry is active.
func (v Variant) ActiveTrail(location string) []string {
	var trail []string
	entries := v.Entries
	for {
		next := -1
		for i, e := range entries {
			if e.IsActive(location) {
				next = i
				break
			}
		}
		if next < 0 {
			return trail
		}
		trail = append(trail, entries[next].Label)
		entries = entries[next].Children
	}
}

// Labels returns every label in the tree, in walk order.
func (v Variant) Labels() []string {
	labels := make([]string, 0, 8)
	v.Walk(func(e Entry, _ int) bool {
		labels = append(labels, e.Label)
		return true
	})
	return labels
}

// Clone returns a deep copy that shares nothing mutable with v.
func (v Variant) Clone() Variant {
	return Variant{Name: v.Name, Entries: cloneEntries(v.Entries)}
}

func indexOf(entries []Entry, label string) int {
	for i, e := range entries {
		if e.Label == label {
			return i
		}
	}
	return -1
}
