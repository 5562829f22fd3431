package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/folio/pkg/commands/options"
	"tableflip.dev/folio/pkg/runner/plain"
	"tableflip.dev/folio/pkg/runner/ui"
	"tableflip.dev/folio/pkg/terminal"
	"tableflip.dev/folio/pkg/tui/app"
)

func addTerminal(topLevel *cobra.Command) {
	to := &options.TerminalOptions{}

	cmd := &cobra.Command{
		Use:     "terminal",
		Aliases: []string{"ui"},
		Short:   "Browse the portfolio and its terminal.",
		Long: `Opens the full-screen portfolio browser. Press ctrl+t (or ctrl+@) to
toggle the terminal overlay and type "help" for its commands.

When stdin is not a terminal, or with --plain, the terminal runs as a line
REPL instead: one command per line, navigation printed as "→ /path".`,
		Example: `
folio terminal
folio terminal --open
echo projects | folio terminal
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			usePlain := to.Plain || !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd())

			e, err := loadEnv(!usePlain)
			if err != nil {
				return err
			}
			defer e.close()

			if usePlain {
				ctrl := terminal.New(terminal.Options{
					Catalog:   e.catalog,
					Verifier:  e.verifier,
					Lockout:   e.lock,
					Navigator: plain.Navigate(cmd.OutOrStdout()),
					Bus:       e.bus,
					Greeting:  e.profile.Greeting(),
					Logger:    e.log.Named("terminal"),
				})
				p := plain.Plain{Controller: ctrl, In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
				return p.Do(cmd.Context())
			}

			u := ui.UI{
				Options: app.Options{
					Catalog:      e.catalog,
					Profile:      e.profile,
					Verifier:     e.verifier,
					Lockout:      e.lock,
					Bus:          e.bus,
					Contact:      e.contact(),
					Logger:       e.log,
					OpenTerminal: to.Open,
				},
				Store: e.kv,
			}
			return u.Do(cmd.Context())
		},
	}
	options.AddTerminalArgs(cmd, to)

	topLevel.AddCommand(cmd)
}
