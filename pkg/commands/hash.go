package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/folio/pkg/runner/hash"
)

func addHash(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "hash [password]",
		Short: "Print the digest to configure as the terminal password.",
		Long: `Prints the lowercase hex SHA-256 digest of a password. Put the result
in .folio.yaml as "digest" or export it as FOLIO_DIGEST.

Without an argument the password is read from a masked prompt, or as one
line from stdin when it is not a terminal.`,
		Example: `
folio hash
folio hash opensesame
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			h := hash.Hash{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			if len(args) > 0 {
				h.Password = args[0]
			}
			return h.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
