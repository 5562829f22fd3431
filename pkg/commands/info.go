package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/folio/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about configuration and where state is stored.",
		Example: `
folio info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			s := info.Info{
				Config:  e.cfg,
				Catalog: e.catalog,
				Lockout: e.lock,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
