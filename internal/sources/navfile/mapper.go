package navfile

import (
	"errors"
	"fmt"
	"sort"

	"github.com/MrSnakeDoc/sidenav/internal/sitemap"
)

// Mapper converts a sitemap Document into a sitemap.Catalog
type Mapper struct {
	cel *celCompiler
}

// NewMapper creates a new mapper instance
func NewMapper() (*Mapper, error) {
	c, err := newCELCompiler()
	if err != nil {
		return nil, err
	}
	return &Mapper{cel: c}, nil
}

// MapCatalog builds and validates the catalog described by doc
func (m *Mapper) MapCatalog(doc Document) (*sitemap.Catalog, error) {
	if len(doc.Variants) == 0 {
		return nil, errors.New("no variants found in sitemap document")
	}

	base, err := m.mapEntries(doc.Base)
	if err != nil {
		return nil, fmt.Errorf("base: %w", err)
	}

	names := make([]string, 0, len(doc.Variants))
	for name := range doc.Variants {
		names = append(names, name)
	}
	sort.Strings(names)

	variants := make([]sitemap.Variant, 0, len(names))
	for _, name := range names {
		v, err := m.mapVariant(name, doc.Variants[name], base)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}

	selector := sitemap.Selector{Default: doc.Default}
	for _, r := range doc.Select {
		selector.Rules = append(selector.Rules, sitemap.Rule{Marker: r.Marker, Variant: r.Variant})
	}

	return sitemap.NewCatalog(variants, selector)
}

func (m *Mapper) mapVariant(name string, spec VariantSpec, base []sitemap.Entry) (sitemap.Variant, error) {
	if len(spec.Entries) > 0 {
		if len(spec.Overrides) > 0 {
			return sitemap.Variant{}, fmt.Errorf("variant %q: entries and overrides are mutually exclusive", name)
		}
		entries, err := m.mapEntries(spec.Entries)
		if err != nil {
			return sitemap.Variant{}, fmt.Errorf("variant %q: %w", name, err)
		}
		return sitemap.Variant{Name: name, Entries: entries}, nil
	}

	overrides := make([]sitemap.Override, 0, len(spec.Overrides))
	for _, o := range spec.Overrides {
		mapped, err := m.mapOverride(o)
		if err != nil {
			return sitemap.Variant{}, fmt.Errorf("variant %q: %w", name, err)
		}
		overrides = append(overrides, mapped)
	}
	return sitemap.Apply(name, base, overrides...)
}

func (m *Mapper) mapOverride(o OverrideSpec) (sitemap.Override, error) {
	insert, err := m.mapEntries(o.Insert)
	if err != nil {
		return sitemap.Override{}, err
	}
	out := sitemap.Override{
		Target:      o.Target,
		Path:        o.Path,
		Subdomained: o.Subdomained,
		InsertAfter: o.InsertAfter,
		Insert:      insert,
		Remove:      o.Remove,
	}
	if o.Match != nil {
		if out.Matches, err = m.mapMatch(o.Match); err != nil {
			return sitemap.Override{}, err
		}
	}
	return out, nil
}

func (m *Mapper) mapEntries(specs []EntrySpec) ([]sitemap.Entry, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	entries := make([]sitemap.Entry, 0, len(specs))
	for _, s := range specs {
		matcher, err := m.mapMatch(s.Match)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s.Label, err)
		}
		children, err := m.mapEntries(s.Children)
		if err != nil {
			return nil, fmt.Errorf("%s > %w", s.Label, err)
		}
		entries = append(entries, sitemap.Entry{
			Label:       s.Label,
			Path:        s.Path,
			Subdomained: s.Subdomained,
			Children:    children,
			Matches:     matcher,
		})
	}
	return entries, nil
}

// mapMatch combines every field set in spec with AND. A missing or empty
// spec never matches.
func (m *Mapper) mapMatch(spec *MatchSpec) (sitemap.Matcher, error) {
	if spec == nil || spec.Never {
		return sitemap.Never(), nil
	}

	var parts []sitemap.Matcher
	switch len(spec.Contains) {
	case 0:
	case 1:
		parts = append(parts, sitemap.Contains(spec.Contains[0]))
	default:
		anyOf := make([]sitemap.Matcher, 0, len(spec.Contains))
		for _, p := range spec.Contains {
			anyOf = append(anyOf, sitemap.Contains(p))
		}
		parts = append(parts, sitemap.AnyOf(anyOf...))
	}
	for _, p := range spec.All {
		parts = append(parts, sitemap.Contains(p))
	}
	if spec.Suffix != "" {
		parts = append(parts, sitemap.HasSuffix(spec.Suffix))
	}
	if spec.CEL != "" {
		cm, err := m.cel.compile(spec.CEL)
		if err != nil {
			return nil, err
		}
		parts = append(parts, cm)
	}

	switch len(parts) {
	case 0:
		return sitemap.Never(), nil
	case 1:
		return parts[0], nil
	default:
		return sitemap.AllOf(parts...), nil
	}
}
