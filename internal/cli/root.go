// Package cli holds the sidenav command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/sidenav/internal/version"
)

// NewRootCmd builds the sidenav command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sidenav",
		Short: "Serve brand-specific sidebar navigation trees",
		Long: "sidenav selects the navigation tree of the brand serving a page, " +
			"marks the entries matching the current location and serves the result over HTTP.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetVersionTemplate(version.String() + "\n")

	root.AddCommand(
		newServeCmd(),
		newShowCmd(),
		newVariantsCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}
