package options

import (
	"github.com/spf13/cobra"
)

// TerminalOptions
type TerminalOptions struct {
	Plain bool
	Open  bool
}

func AddTerminalArgs(cmd *cobra.Command, o *TerminalOptions) {
	cmd.Flags().BoolVar(&o.Plain, "plain", false,
		"Use the line REPL instead of the full-screen UI.")
	cmd.Flags().BoolVar(&o.Open, "open", false,
		"Start with the terminal overlay open.")
}
