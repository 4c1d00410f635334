package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newVariantsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "variants",
		Short: "List the variants and the origin rules selecting them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVariants(cmd.OutOrStdout(), file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "sitemap YAML file (defaults to the built-in brands)")

	return cmd
}

func runVariants(w io.Writer, file string) error {
	catalog, err := loadCatalog(file)
	if err != nil {
		return err
	}
	sel := catalog.Selector()

	for _, name := range catalog.Names() {
		v, _ := catalog.Variant(name)
		marker := ""
		if name == sel.Default {
			marker = " (default)"
		}
		if _, err := fmt.Fprintf(w, "%s%s: %d entries\n", name, marker, v.Count()); err != nil {
			return err
		}
	}
	for _, r := range sel.Rules {
		if _, err := fmt.Fprintf(w, "origin contains %q -> %s\n", r.Marker, r.Variant); err != nil {
			return err
		}
	}
	return nil
}
