package options

import (
	"github.com/spf13/cobra"
)

// ProjectOptions select what `folio projects` prints.
type ProjectOptions struct {
	Tag    string
	Search string
	All    bool
	Random bool
	Pick   bool
	// Base resolves relative attachment URLs when sizing files.
	Base string
}

func AddProjectArgs(cmd *cobra.Command, o *ProjectOptions) {
	cmd.Flags().StringVarP(&o.Tag, "tag", "t", "",
		"Only projects carrying this tag.")
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only projects whose title, description or tags contain this text.")
	cmd.Flags().BoolVar(&o.All, "all", false,
		"List the whole catalog grouped by visibility.")
	cmd.Flags().BoolVar(&o.Random, "random", false,
		"Show one random project.")
	cmd.Flags().BoolVarP(&o.Pick, "interactive", "i", false,
		"Pick a project from a searchable list.")
	cmd.Flags().StringVar(&o.Base, "base-url", "",
		"Site URL that relative file links are resolved against.")
}
