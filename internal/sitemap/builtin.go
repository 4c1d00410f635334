package sitemap

// Built-in brands.
const (
	BrandNewCongress   = "bnc"
	JusticeDemocrats   = "jd"
	JusticeDemsMarker  = "justicedialer"
	DefaultVariantName = BrandNewCongress
)

// baseEntries is the tree shared by every built-in brand. A fresh copy is
// returned on each call.
func baseEntries() []Entry {
	return []Entry{
		{
			Label:       "Join",
			Path:        HostPlaceholder,
			Subdomained: false,
			Matches:     Never(),
		},
		{
			Label:   "Candidates",
			Path:    HostPlaceholder + "/candidates",
			Matches: Contains("/candidates"),
		},
		{
			Label: "Action",
			Path:  "/act",
			Matches: AnyOf(
				Contains("/act"),
				Contains("/form/submit-event"),
				Contains("/form/teams"),
			),
			Children: []Entry{
				{
					Label: "Action Portal",
					Path:  HostPlaceholder + "/act",
					// "/act/sub" contains "/act" but is a deeper page.
					Matches: AllOf(Contains("/act"), HasSuffix("act")),
				},
				{
					Label:   "Attend an Event",
					Path:    HostPlaceholder + "/events",
					Matches: Never(),
				},
				{
					Label:   "Any special skills?",
					Path:    HostPlaceholder + "/form/special-skills",
					Matches: Never(),
				},
			},
		},
		{
			Label:   "Platform",
			Path:    HostPlaceholder + "/platform",
			Matches: Contains("/plan"),
		},
	}
}

func strPtr(s string) *string { return &s }

// brandOverrides lists how each built-in brand departs from the base tree.
func brandOverrides() map[string][]Override {
	return map[string][]Override{
		BrandNewCongress: nil,
		JusticeDemocrats: {
			{
				Target:      []string{"Action"},
				Path:        strPtr(HostPlaceholder + "/act"),
				InsertAfter: "Attend an Event",
				Insert: []Entry{
					{
						Label:   "Host an Event",
						Path:    HostPlaceholder + "/form/submit-event",
						Matches: Contains("/form/submit-event"),
					},
					{
						Label:   "Join a National Team",
						Path:    HostPlaceholder + "/form/teams",
						Matches: Never(),
					},
				},
			},
		},
	}
}

// BuiltinNames returns the built-in brand names.
func BuiltinNames() []string {
	return []string{BrandNewCongress, JusticeDemocrats}
}

// BuildVariant returns a freshly built navigation tree for a built-in brand.
// Unknown names get the default brand, so the call cannot fail.
func BuildVariant(name string) Variant {
	overrides, ok := brandOverrides()[name]
	if !ok {
		name = DefaultVariantName
		overrides = nil
	}
	v, err := Apply(name, baseEntries(), overrides...)
	if err != nil {
		// The built-in overrides are covered by tests; reaching this is a programming error.
		panic(err)
	}
	return v
}

// DefaultSelector is the built-in origin rule set.
func DefaultSelector() Selector {
	return Selector{
		Rules:   []Rule{{Marker: JusticeDemsMarker, Variant: JusticeDemocrats}},
		Default: DefaultVariantName,
	}
}

// DefaultCatalog builds the catalog of built-in brands.
func DefaultCatalog() *Catalog {
	names := BuiltinNames()
	variants := make([]Variant, 0, len(names))
	for _, name := range names {
		variants = append(variants, BuildVariant(name))
	}
	c, err := NewCatalog(variants, DefaultSelector())
	if err != nil {
		panic(err)
	}
	return c
}

// SelectVariant returns the built-in variant for origin: Justice Democrats
// when the origin carries the justicedialer marker, Brand New Congress otherwise.
func SelectVariant(origin string) Variant {
	return BuildVariant(DefaultSelector().Pick(origin))
}
