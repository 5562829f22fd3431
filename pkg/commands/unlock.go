package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/folio/pkg/runner/unlock"
)

func addUnlock(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Clear a terminal lockout.",
		Example: `
folio unlock
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer e.close()

			u := unlock.Unlock{Lockout: e.lock, Bus: e.bus, Out: cmd.OutOrStdout()}
			return u.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
