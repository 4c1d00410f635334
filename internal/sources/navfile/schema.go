package navfile

// Document is the root structure of a sitemap YAML file.
type Document struct {
	// Default is the variant served when no selection rule matches.
	Default string `yaml:"default"`

	// Select rules are evaluated in order, first match wins.
	Select []SelectRule `yaml:"select,omitempty"`

	// Base is the tree shared by variants declaring overrides.
	Base []EntrySpec `yaml:"base,omitempty"`

	// Variants maps a variant name to its definition.
	Variants map[string]VariantSpec `yaml:"variants"`
}

// SelectRule maps an origin marker substring to a variant.
type SelectRule struct {
	Marker  string `yaml:"marker"`
	Variant string `yaml:"variant"`
}

// VariantSpec either lists a complete tree (Entries) or patches Base (Overrides).
// An empty spec is Base as is.
type VariantSpec struct {
	Entries   []EntrySpec    `yaml:"entries,omitempty"`
	Overrides []OverrideSpec `yaml:"overrides,omitempty"`
}

// EntrySpec is one navigation entry.
type EntrySpec struct {
	Label       string      `yaml:"label"`
	Path        string      `yaml:"path"`
	Subdomained bool        `yaml:"subdomained,omitempty"`
	Match       *MatchSpec  `yaml:"match,omitempty"`
	Children    []EntrySpec `yaml:"children,omitempty"`
}

// MatchSpec declares when an entry is active. Every field that is set must
// hold; a spec with nothing set never matches.
type MatchSpec struct {
	Contains []string `yaml:"contains,omitempty"` // any of
	All      []string `yaml:"all,omitempty"`      // all of
	Suffix   string   `yaml:"suffix,omitempty"`
	Never    bool     `yaml:"never,omitempty"`
	CEL      string   `yaml:"cel,omitempty"` // boolean expression over `url`
}

// OverrideSpec patches one entry of Base.
type OverrideSpec struct {
	Target      []string    `yaml:"target"`
	Path        *string     `yaml:"path,omitempty"`
	Subdomained *bool       `yaml:"subdomained,omitempty"`
	Match       *MatchSpec  `yaml:"match,omitempty"`
	InsertAfter string      `yaml:"insertAfter,omitempty"`
	Insert      []EntrySpec `yaml:"insert,omitempty"`
	Remove      []string    `yaml:"remove,omitempty"`
}
