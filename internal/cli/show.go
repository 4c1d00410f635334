package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/sidenav/internal/render"
)

// Output formats of the show command.
const (
	FormatTree = "tree"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type showOptions struct {
	origin string
	url    string
	host   string
	file   string
	output string
}

type shownSitemap struct {
	Variant     string        `json:"variant" yaml:"variant"`
	Origin      string        `json:"origin" yaml:"origin"`
	Location    string        `json:"location,omitempty" yaml:"location,omitempty"`
	Links       []render.Link `json:"links" yaml:"links"`
	ActiveTrail []string      `json:"active_trail" yaml:"active_trail"`
}

func newShowCmd() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the navigation tree selected for an origin",
		Example: "  sidenav show --origin https://call.justicedialer.com --url https://call.justicedialer.com/act\n" +
			"  sidenav show --file sitemap.yaml --origin https://bnc.example.com -o json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.origin, "origin", "", "origin identifier used to select the brand")
	f.StringVar(&opts.url, "url", "", "current page location used for active flags")
	f.StringVar(&opts.host, "host", "", "origin links are resolved against (defaults to --origin)")
	f.StringVar(&opts.file, "file", "", "sitemap YAML file (defaults to the built-in brands)")
	f.StringVarP(&opts.output, "output", "o", FormatTree, "output format: tree, json or yaml")

	return cmd
}

func runShow(w io.Writer, opts *showOptions) error {
	catalog, err := loadCatalog(opts.file)
	if err != nil {
		return err
	}

	v := catalog.Select(opts.origin)
	baseOrigin := opts.host
	if baseOrigin == "" {
		baseOrigin = opts.origin
	}
	base := render.ParseBase(baseOrigin)

	trail := v.ActiveTrail(opts.url)
	if trail == nil {
		trail = []string{}
	}
	shown := shownSitemap{
		Variant:     v.Name,
		Origin:      base.Origin(),
		Location:    opts.url,
		Links:       render.Render(v, opts.url, base),
		ActiveTrail: trail,
	}

	switch opts.output {
	case FormatTree:
		_, err = io.WriteString(w, formatTree(shown))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(shown)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(shown); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("invalid output %q: valid values are tree, json, yaml", opts.output)
	}
}

// formatTree draws the links as a tree, active entries marked with "*".
func formatTree(s shownSitemap) string {
	tree := treeprint.NewWithRoot(s.Variant)
	addLinks(tree, s.Links)
	return tree.String()
}

func addLinks(branch treeprint.Tree, links []render.Link) {
	for _, l := range links {
		text := l.Label + "  " + l.Href
		if l.Active {
			text = "* " + text
		}
		if len(l.Children) == 0 {
			branch.AddNode(text)
			continue
		}
		addLinks(branch.AddBranch(text), l.Children)
	}
}
