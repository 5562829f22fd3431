package unlock

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/folio/pkg/events"
	"tableflip.dev/folio/pkg/lockout"
)

// Unlock removes the terminal lockout record.
type Unlock struct {
	Lockout *lockout.Tracker
	// Bus, when set, is told the lockout changed.
	Bus *events.Bus
	Out io.Writer
}

func (n *Unlock) Do(ctx context.Context) error {
	if n.Out == nil {
		n.Out = color.Output
	}
	left, locked := n.Lockout.Remaining()
	if err := n.Lockout.Clear(); err != nil {
		return err
	}
	if n.Bus != nil {
		n.Bus.Publish(events.TopicLockoutChanged)
	}
	if !locked {
		_, _ = fmt.Fprintln(n.Out, "terminal was not locked")
		return nil
	}
	_, _ = fmt.Fprintf(n.Out, "%s terminal unlocked (%d minute(s) were left)\n", color.GreenString("✔"), lockout.Minutes(left))
	return nil
}
