package sitemap

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNoDefault      = errors.New("selector has no default variant")
	ErrUnknownVariant = errors.New("unknown variant")
)

// Rule maps an origin marker substring to a variant name.
type Rule struct {
	Marker  string
	Variant string
}

// Selector picks a variant name from an origin identifier.
// Rules are evaluated in order, first match wins; Default applies otherwise.
type Selector struct {
	Rules   []Rule
	Default string
}

// Pick returns the variant name for origin. It never fails: an origin that
// carries no marker resolves to the default.
func (s Selector) Pick(origin string) string {
	for _, r := range s.Rules {
		if r.Marker != "" && strings.Contains(origin, r.Marker) {
			return r.Variant
		}
	}
	return s.Default
}

// Catalog holds every known variant and the selector choosing between them.
// A Catalog is immutable once built.
type Catalog struct {
	variants map[string]Variant
	selector Selector
}

// NewCatalog validates variants and selector together. Every name the
// selector can return must exist.
func NewCatalog(variants []Variant, selector Selector) (*Catalog, error) {
	if selector.Default == "" {
		return nil, ErrNoDefault
	}
	byName := make(map[string]Variant, len(variants))
	for _, v := range variants {
		if v.Name == "" {
			return nil, errors.New("variant name is empty")
		}
		if _, dup := byName[v.Name]; dup {
			return nil, fmt.Errorf("duplicate variant %q", v.Name)
		}
		if err := v.Validate(); err != nil {
			return nil, err
		}
		byName[v.Name] = v.Clone()
	}
	if _, ok := byName[selector.Default]; !ok {
		return nil, fmt.Errorf("default %q: %w", selector.Default, ErrUnknownVariant)
	}
	for _, r := range selector.Rules {
		if r.Marker == "" {
			return nil, fmt.Errorf("rule for %q has an empty marker", r.Variant)
		}
		if _, ok := byName[r.Variant]; !ok {
			return nil, fmt.Errorf("rule %q: %q: %w", r.Marker, r.Variant, ErrUnknownVariant)
		}
	}
	return &Catalog{variants: byName, selector: selector}, nil
}

// Select returns a copy of the variant applicable to origin.
func (c *Catalog) Select(origin string) Variant {
	return c.variants[c.selector.Pick(origin)].Clone()
}

// Variant returns a copy of a variant by name.
func (c *Catalog) Variant(name string) (Variant, bool) {
	v, ok := c.variants[name]
	if !ok {
		return Variant{}, false
	}
	return v.Clone(), true
}

// Names returns the variant names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.variants))
	for name := range c.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Selector returns a copy of the catalog selector.
func (c *Catalog) Selector() Selector {
	rules := make([]Rule, len(c.selector.Rules))
	copy(rules, c.selector.Rules)
	return Selector{Rules: rules, Default: c.selector.Default}
}

// Len returns the number of variants.
func (c *Catalog) Len() int { return len(c.variants) }

// Provider exposes the single variant chosen for one origin. The choice is
// made once, when the provider is built.
type Provider struct {
	variant Variant
}

// NewProvider selects the variant for origin from c.
func NewProvider(c *Catalog, origin string) *Provider {
	return &Provider{variant: c.Select(origin)}
}

// Variant returns a copy of the selected tree. Callers may modify it freely.
func (p *Provider) Variant() Variant { return p.variant.Clone() }

// Name returns the selected variant name.
func (p *Provider) Name() string { return p.variant.Name }
