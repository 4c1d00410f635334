package sitemap

import (
	"errors"
	"fmt"
	"strings"
)

var ErrTargetNotFound = errors.New("override target not found")

// Override patches one entry of a shared base tree for a specific brand.
type Override struct {
	// Target is the label path of the entry to patch, from the top level.
	Target []string

	// Path replaces the entry path when non-nil.
	Path *string

	// Subdomained replaces the entry flag when non-nil.
	Subdomained *bool

	// Matches replaces the entry matcher when non-nil.
	Matches Matcher

	// Insert adds children right after the child labelled InsertAfter,
	// or at the end when InsertAfter is empty.
	InsertAfter string
	Insert      []Entry

	// Remove drops the children with these labels.
	Remove []string
}

// Apply builds a new variant from base with every override applied in order.
// base is never modified.
func Apply(name string, base []Entry, overrides ...Override) (Variant, error) {
	v := Variant{Name: name, Entries: cloneEntries(base)}
	for _, o := range overrides {
		if err := o.apply(v.Entries); err != nil {
			return Variant{}, fmt.Errorf("variant %q: %w", name, err)
		}
	}
	return v, nil
}

func (o Override) apply(entries []Entry) error {
	target := resolve(entries, o.Target)
	if target == nil {
		return fmt.Errorf("%w: %s", ErrTargetNotFound, strings.Join(o.Target, " > "))
	}
	if o.Path != nil {
		target.Path = *o.Path
	}
	if o.Subdomained != nil {
		target.Subdomained = *o.Subdomained
	}
	if o.Matches != nil {
		target.Matches = o.Matches
	}
	if len(o.Remove) > 0 {
		kept := target.Children[:0:0]
		for _, c := range target.Children {
			if !contains(o.Remove, c.Label) {
				kept = append(kept, c)
			}
		}
		target.Children = kept
	}
	if len(o.Insert) > 0 {
		at := len(target.Children)
		if o.InsertAfter != "" {
			i := indexOf(target.Children, o.InsertAfter)
			if i < 0 {
				return fmt.Errorf("%w: %s > %s", ErrTargetNotFound, strings.Join(o.Target, " > "), o.InsertAfter)
			}
			at = i + 1
		}
		children := make([]Entry, 0, len(target.Children)+len(o.Insert))
		children = append(children, target.Children[:at]...)
		children = append(children, cloneEntries(o.Insert)...)
		children = append(children, target.Children[at:]...)
		target.Children = children
	}
	return nil
}

// resolve returns a pointer into entries following the label path.
func resolve(entries []Entry, labels []string) *Entry {
	if len(labels) == 0 {
		return nil
	}
	var cur *Entry
	for _, label := range labels {
		i := indexOf(entries, label)
		if i < 0 {
			return nil
		}
		cur = &entries[i]
		entries = cur.Children
	}
	return cur
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
