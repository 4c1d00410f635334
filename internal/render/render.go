// Package render turns a navigation variant into links ready for a sidebar:
// host placeholders resolved and active flags evaluated for one location.
package render

import (
	"net"
	"strings"

	"github.com/MrSnakeDoc/sidenav/internal/sitemap"
)

// Link is the rendered form of a sitemap.Entry.
type Link struct {
	Label       string `json:"label" yaml:"label"`
	Href        string `json:"href" yaml:"href"`
	Subdomained bool   `json:"subdomained,omitempty" yaml:"subdomained,omitempty"`
	Active      bool   `json:"active" yaml:"active"`
	Children    []Link `json:"children,omitempty" yaml:"children,omitempty"`
}

// Base is the scheme and host links are resolved against.
type Base struct {
	Scheme string // defaults to https
	Host   string // may carry a port
}

// ParseBase extracts a Base from an origin such as "https://bnc.example.com".
// A bare host is accepted and gets the https scheme.
func ParseBase(origin string) Base {
	origin = strings.TrimSpace(origin)
	scheme := "https"
	if i := strings.Index(origin, "://"); i >= 0 {
		scheme = origin[:i]
		origin = origin[i+3:]
	}
	if i := strings.IndexAny(origin, "/?#"); i >= 0 {
		origin = origin[:i]
	}
	return Base{Scheme: scheme, Host: origin}
}

// Origin returns scheme://host, or an empty string when no host is known.
func (b Base) Origin() string {
	if b.Host == "" {
		return ""
	}
	scheme := b.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + b.Host
}

// parent returns the base with the first DNS label of the host removed.
// Hosts with two labels or fewer, and IP addresses, are returned unchanged.
func (b Base) parent() Base {
	host, port, err := net.SplitHostPort(b.Host)
	if err != nil {
		host, port = b.Host, ""
	}
	if net.ParseIP(host) != nil {
		return b
	}
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return b
	}
	host = strings.Join(labels[1:], ".")
	if port != "" {
		host = net.JoinHostPort(host, port)
	}
	return Base{Scheme: b.Scheme, Host: host}
}

// ResolvePath substitutes the host placeholder in path. Subdomained
// destinations resolve against the parent domain of the base host.
// Paths without the placeholder are returned as they are.
func ResolvePath(path string, base Base, subdomained bool) string {
	if !strings.Contains(path, sitemap.HostPlaceholder) {
		return path
	}
	if subdomained {
		base = base.parent()
	}
	return strings.ReplaceAll(path, sitemap.HostPlaceholder, base.Origin())
}

// Render evaluates every entry of v against location and resolves every path.
func Render(v sitemap.Variant, location string, base Base) []Link {
	return renderEntries(v.Entries, location, base)
}

func renderEntries(entries []sitemap.Entry, location string, base Base) []Link {
	if len(entries) == 0 {
		return nil
	}
	links := make([]Link, 0, len(entries))
	for _, e := range entries {
		links = append(links, Link{
			Label:       e.Label,
			Href:        ResolvePath(e.Path, base, e.Subdomained),
			Subdomained: e.Subdomained,
			Active:      e.IsActive(location),
			Children:    renderEntries(e.Children, location, base),
		})
	}
	return links
}

// Active returns the labels of every active link, depth-first.
func Active(links []Link) []string {
	var out []string
	for _, l := range links {
		if l.Active {
			out = append(out, l.Label)
		}
		out = append(out, Active(l.Children)...)
	}
	return out
}
