package terminal

import "tableflip.dev/folio/pkg/lockout"

// State is a serializable snapshot of a session.
type State struct {
	Open     bool     `json:"open"`
	Mode     string   `json:"mode"`
	Masked   bool     `json:"masked"`
	Attempts int      `json:"attempts"`
	Input    string   `json:"input"`
	Output   []string `json:"output"`
	// LockedMinutes is the rounded-up remaining lockout, zero when unlocked.
	LockedMinutes int `json:"lockedMinutes,omitempty"`
}

// Snapshot captures the session for rendering elsewhere. A masked input is
// never included.
func (c *Controller) Snapshot() State {
	s := State{
		Open:     c.IsOpen(),
		Mode:     c.mode.String(),
		Masked:   c.Masked(),
		Attempts: c.attempts,
		Output:   c.Output(),
	}
	if !s.Masked {
		s.Input = c.input
	}
	if left, locked := c.Locked(); locked {
		s.LockedMinutes = lockout.Minutes(left)
	}
	return s
}
