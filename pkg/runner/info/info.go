package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/folio/pkg/config"
	"tableflip.dev/folio/pkg/lockout"
	"tableflip.dev/folio/pkg/project"
)

// Info reports where folio reads its settings and keeps its state.
type Info struct {
	Config  *config.Config
	Catalog *project.Catalog
	Lockout *lockout.Tracker
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	if n.Out == nil {
		n.Out = color.Output
	}
	if n.Config == nil {
		var err error
		if n.Config, err = config.Load(); err != nil {
			return err
		}
	}

	if override := os.Getenv("FOLIO_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(n.Out, "FOLIO_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(n.Out, "FOLIO_CONFIG_PATH env var not set")
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("config file:", orNone(n.Config.File))
	tbl.AddRow("store:", n.Config.Store)
	switch n.Config.Store {
	case "sqlite":
		tbl.AddRow("database:", n.Config.SQLite)
	case "memory":
	default:
		tbl.AddRow("path:", n.Config.Path)
	}
	tbl.AddRow("catalog:", orValue(n.Config.Catalog, "embedded"))
	if n.Catalog != nil {
		tbl.AddRow("projects:", fmt.Sprintf("%d (%d public, %d in terminal)", n.Catalog.Len(), len(n.Catalog.Public()), len(n.Catalog.Terminal())))
	}
	tbl.AddRow("password:", orValue(n.Config.Digest, "built-in digest"))
	tbl.AddRow("contact:", orValue(n.Config.Contact.Endpoint, "simulated"))
	tbl.AddRow("listen:", n.Config.Addr)

	if n.Lockout != nil {
		if left, locked := n.Lockout.Remaining(); locked {
			tbl.AddRow("terminal:", color.RedString(lockout.Message(left)))
		} else {
			tbl.AddRow("terminal:", color.GreenString("unlocked"))
		}
	}
	_, _ = fmt.Fprintln(n.Out, tbl)
	return nil
}

func orNone(s string) string { return orValue(s, "none") }

func orValue(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
