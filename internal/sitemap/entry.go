package sitemap

import (
	"errors"
	"fmt"
)

// HostPlaceholder is the token a renderer replaces with the current host
// before emitting a link. Entries only store the templated string.
const HostPlaceholder = "HOSTNAME"

var (
	ErrEmptyLabel   = errors.New("entry label is empty")
	ErrEmptyPath    = errors.New("entry path is empty")
	ErrEmptyVariant = errors.New("variant has no entries")
)

// Entry is one node of a navigation tree.
type Entry struct {
	// Label is the human-readable text of the link.
	Label string

	// Path is either a root-relative path ("/act") or a templated URL
	// carrying HostPlaceholder ("HOSTNAME/act").
	Path string

	// Subdomained marks destinations living on another subdomain than the
	// current page. Only the renderer cares about it.
	Subdomained bool

	// Children are rendered below the entry, in order.
	Children []Entry

	// Matches decides whether the entry is the current section.
	// A nil matcher is never active.
	Matches Matcher
}

// IsActive reports whether the entry should be marked as the current section
// for the given location.
func (e Entry) IsActive(location string) bool {
	if e.Matches == nil {
		return false
	}
	return e.Matches.Match(location)
}

// Validate checks the entry and all its descendants.
func (e Entry) Validate() error {
	if e.Label == "" {
		return ErrEmptyLabel
	}
	if e.Path == "" {
		return fmt.Errorf("%q: %w", e.Label, ErrEmptyPath)
	}
	for _, child := range e.Children {
		if err := child.Validate(); err != nil {
			return fmt.Errorf("%s > %w", e.Label, err)
		}
	}
	return nil
}

// clone returns a deep copy of the tree rooted at e. Matchers are immutable
// values and are shared.
func (e Entry) clone() Entry {
	out := e
	if e.Children != nil {
		out.Children = cloneEntries(e.Children)
	}
	return out
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.clone()
	}
	return out
}
