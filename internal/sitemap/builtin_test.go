package sitemap

import (
	"reflect"
	"testing"
)

func TestSelectVariant(t *testing.T) {
	tests := []struct {
		origin string
		want   string
	}{
		{origin: "https://justicedialer.example.com", want: JusticeDemocrats},
		{origin: "http://staging.justicedialer.com:8080", want: JusticeDemocrats},
		{origin: "https://bnc.example.com", want: BrandNewCongress},
		{origin: "https://JusticeDialer.example.com", want: BrandNewCongress},
		{origin: "", want: BrandNewCongress},
		{origin: "not a url at all", want: BrandNewCongress},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			v := SelectVariant(tt.origin)
			if v.Name != tt.want {
				t.Errorf("SelectVariant(%q) = %s, want %s", tt.origin, v.Name, tt.want)
			}
			if !reflect.DeepEqual(v, BuildVariant(tt.want)) {
				t.Errorf("SelectVariant(%q) differs from BuildVariant(%q)", tt.origin, tt.want)
			}
		})
	}
}

func TestBuildVariantIdempotent(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			a := BuildVariant(name)
			b := BuildVariant(name)
			if !reflect.DeepEqual(a, b) {
				t.Fatalf("two builds of %s are not structurally equal", name)
			}

			// No shared state between constructions.
			a.Entries[2].Children[0].Label = "mutated"
			a.Entries[0].Label = "mutated"
			if b.Entries[2].Children[0].Label != "Action Portal" || b.Entries[0].Label != "Join" {
				t.Error("mutating one build leaked into another")
			}
			if c := BuildVariant(name); c.Entries[0].Label != "Join" {
				t.Error("mutating a build leaked into later builds")
			}
		})
	}
}

func TestBuildVariantUnknownFallsBackToDefault(t *testing.T) {
	v := BuildVariant("nope")
	if v.Name != DefaultVariantName {
		t.Errorf("BuildVariant(nope).Name = %s, want %s", v.Name, DefaultVariantName)
	}
}

func TestBuiltinShape(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			v := BuildVariant(name)
			if err := v.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if len(v.Entries) == 0 {
				t.Fatal("variant has no top-level entries")
			}
			v.Walk(func(e Entry, depth int) bool {
				if e.Matches == nil {
					t.Errorf("%s has no matcher", e.Label)
				}
				if depth > 1 {
					t.Errorf("%s is deeper than the built-in data", e.Label)
				}
				return true
			})
		})
	}
}

func TestBuiltinLabels(t *testing.T) {
	bnc := BuildVariant(BrandNewCongress).Labels()
	wantBNC := []string{
		"Join", "Candidates", "Action",
		"Action Portal", "Attend an Event", "Any special skills?",
		"Platform",
	}
	if !reflect.DeepEqual(bnc, wantBNC) {
		t.Errorf("bnc labels = %v, want %v", bnc, wantBNC)
	}

	jd := BuildVariant(JusticeDemocrats).Labels()
	wantJD := []string{
		"Join", "Candidates", "Action",
		"Action Portal", "Attend an Event", "Host an Event", "Join a National Team", "Any special skills?",
		"Platform",
	}
	if !reflect.DeepEqual(jd, wantJD) {
		t.Errorf("jd labels = %v, want %v", jd, wantJD)
	}
}

func TestBuiltinPaths(t *testing.T) {
	bncAction, _ := BuildVariant(BrandNewCongress).Find("Action")
	if bncAction.Path != "/act" {
		t.Errorf("bnc Action path = %s, want /act", bncAction.Path)
	}
	jdAction, _ := BuildVariant(JusticeDemocrats).Find("Action")
	if jdAction.Path != "HOSTNAME/act" {
		t.Errorf("jd Action path = %s, want HOSTNAME/act", jdAction.Path)
	}
	join, _ := BuildVariant(JusticeDemocrats).Find("Join")
	if join.Path != HostPlaceholder || join.Subdomained {
		t.Errorf("Join = %+v, want path HOSTNAME and not subdomained", join)
	}
}

func TestAlwaysInactiveEntries(t *testing.T) {
	locations := []string{
		"",
		"https://x/",
		"https://x/act",
		"https://x/events",
		"https://x/form/teams",
		"https://x/form/special-skills",
	}
	for _, name := range BuiltinNames() {
		v := BuildVariant(name)
		v.Walk(func(e Entry, _ int) bool {
			if _, never := e.Matches.(neverMatcher); !never {
				return true
			}
			for _, loc := range append(locations, e.Path) {
				if e.IsActive(loc) {
					t.Errorf("%s/%s: IsActive(%q) = true for an always-inactive entry", name, e.Label, loc)
				}
			}
			return true
		})
	}
}

func TestActionEntry(t *testing.T) {
	for _, name := range BuiltinNames() {
		action, ok := BuildVariant(name).Find("Action")
		if !ok {
			t.Fatalf("%s: Action not found", name)
		}
		for _, loc := range []string{"https://x/act", "https://x/form/submit-event", "https://x/form/teams"} {
			if !action.IsActive(loc) {
				t.Errorf("%s: Action.IsActive(%q) = false, want true", name, loc)
			}
		}
		if action.IsActive("https://x/unrelated") {
			t.Errorf("%s: Action.IsActive(unrelated) = true, want false", name)
		}
	}
}

func TestActionPortalSuffixRefinement(t *testing.T) {
	portal, ok := BuildVariant(BrandNewCongress).Find("Action", "Action Portal")
	if !ok {
		t.Fatal("Action Portal not found")
	}

	tests := []struct {
		location string
		want     bool
	}{
		{location: "https://x/act", want: true},
		{location: "https://x/act/sub", want: false},
		{location: "https://x/form/submit-event", want: false},
		// Unanchored: any path containing /act and ending in act.
		{location: "https://x/act/react", want: true},
		{location: "https://x/react", want: false},
	}
	for _, tt := range tests {
		if got := portal.IsActive(tt.location); got != tt.want {
			t.Errorf("Action Portal.IsActive(%q) = %v, want %v", tt.location, got, tt.want)
		}
	}
}

func TestUnanchoredMatchingBoundaries(t *testing.T) {
	v := BuildVariant(BrandNewCongress)
	action, _ := v.Find("Action")
	candidates, _ := v.Find("Candidates")
	platform, _ := v.Find("Platform")

	tests := []struct {
		name     string
		entry    Entry
		location string
		want     bool
	}{
		{name: "action matches /action", entry: action, location: "https://x/action", want: true},
		{name: "action matches /actors", entry: action, location: "https://x/actors", want: true},
		{name: "action matches query", entry: action, location: "https://x/?from=/act", want: true},
		{name: "candidates matches subpage", entry: candidates, location: "https://x/candidates/jane", want: true},
		{name: "candidates singular", entry: candidates, location: "https://x/candidate", want: false},
		{name: "platform matches /plan", entry: platform, location: "https://x/plan", want: true},
		{name: "platform own path does not contain /plan", entry: platform, location: "https://x/platform", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.IsActive(tt.location); got != tt.want {
				t.Errorf("%s.IsActive(%q) = %v, want %v", tt.entry.Label, tt.location, got, tt.want)
			}
		})
	}
}

func TestHostAnEventOnlyInJD(t *testing.T) {
	if _, ok := BuildVariant(BrandNewCongress).Find("Action", "Host an Event"); ok {
		t.Error("bnc should not have Host an Event")
	}
	host, ok := BuildVariant(JusticeDemocrats).Find("Action", "Host an Event")
	if !ok {
		t.Fatal("jd should have Host an Event")
	}
	if !host.IsActive("https://x/form/submit-event") {
		t.Error("Host an Event should be active on /form/submit-event")
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if got := c.Select("https://justicedialer.com").Name; got != JusticeDemocrats {
		t.Errorf("Select(justicedialer) = %s", got)
	}
	if got := c.Select("https://other.com").Name; got != BrandNewCongress {
		t.Errorf("Select(other) = %s", got)
	}
}
