package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/folio/pkg/runner/serve"
	"tableflip.dev/folio/pkg/web"
)

func addServe(topLevel *cobra.Command) {
	var addr, base string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog, contact form and terminal sessions over HTTP.",
		Example: `
folio serve
folio serve --addr 127.0.0.1:9000
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer e.close()

			if addr == "" {
				addr = e.cfg.Addr
			}
			s := serve.Serve{
				Addr: addr,
				Options: web.Options{
					Catalog:  e.catalog,
					Profile:  e.profile,
					Verifier: e.verifier,
					Lockout:  e.lock,
					Bus:      e.bus,
					Contact:  e.contact(),
					Sizer:    e.sizer(base),
					Logger:   e.log,
					RateLimit: web.RateLimitConfig{
						RequestsPerSecond: float64(e.cfg.Rate.RPS),
						Burst:             e.cfg.Rate.Burst,
					},
					Origins: e.cfg.CORS.Origins,
				},
			}
			return s.Do(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address. Defaults to the configured addr.")
	cmd.Flags().StringVar(&base, "base-url", "", "Site URL that relative file links are resolved against.")

	topLevel.AddCommand(cmd)
}
