// Package terminal implements the portfolio's easter-egg console: a command
// table with tab completion, a password-gated listing of every project, and
// a persisted lockout after repeated failures.
//
// A Controller is not safe for concurrent use except for Open, Close, Toggle
// and IsOpen. Callers serialize everything else.
package terminal

import (
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/folio/pkg/auth"
	"tableflip.dev/folio/pkg/events"
	"tableflip.dev/folio/pkg/lockout"
	"tableflip.dev/folio/pkg/project"
)

// Navigator performs route changes on behalf of the terminal.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Mode decides how the next submitted line is interpreted.
type Mode int

const (
	// Normal dispatches lines to the command table.
	Normal Mode = iota
	// AwaitingPassword treats the next line as the hidden listing's password.
	AwaitingPassword
	// AwaitingProjectSelection treats the next line as a project number or
	// "random".
	AwaitingProjectSelection
)

func (m Mode) String() string {
	switch m {
	case AwaitingPassword:
		return "awaiting-password"
	case AwaitingProjectSelection:
		return "awaiting-project-selection"
	default:
		return "normal"
	}
}

// Mask replaces each rune of a password in the echoed transcript.
const Mask = "•"

// Options configures a Controller. Catalog and Verifier are required.
type Options struct {
	Catalog   *project.Catalog
	Verifier  *auth.Verifier
	Lockout   *lockout.Tracker
	Navigator Navigator
	// Bus receives lockout-changed announcements. Attach subscribes to it
	// separately.
	Bus *events.Bus
	// Rand drives random picks. Nil uses the global source.
	Rand     *rand.Rand
	Greeting string
	Logger   *zap.Logger
}

// listing is the project list the next numeric selection indexes into.
type listing struct {
	authenticated bool
	projects      []project.Project
}

// Controller is one terminal session.
type Controller struct {
	open atomic.Bool

	output   []string
	mode     Mode
	attempts int
	input    string
	listing  listing

	catalog  *project.Catalog
	verifier *auth.Verifier
	lock     *lockout.Tracker
	nav      Navigator
	bus      *events.Bus
	rand     *rand.Rand
	log      *zap.Logger

	subMu       sync.Mutex
	unsubscribe func()
}

// New builds a closed terminal whose transcript holds only the greeting. An
// expired lockout record is cleared on the way.
func New(opts Options) *Controller {
	c := &Controller{
		catalog:  opts.Catalog,
		verifier: opts.Verifier,
		lock:     opts.Lockout,
		nav:      opts.Navigator,
		bus:      opts.Bus,
		rand:     opts.Rand,
		log:      opts.Logger,
	}
	if c.nav == nil {
		c.nav = NavigatorFunc(func(string) {})
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if opts.Greeting != "" {
		c.output = []string{opts.Greeting}
	}
	if left, locked := c.Locked(); locked {
		c.log.Debug("terminal starts locked", zap.Duration("remaining", left))
	}
	return c
}

// Attach subscribes the controller to open requests on bus. Attaching again
// replaces the previous subscription.
func (c *Controller) Attach(bus *events.Bus) {
	c.Detach()
	if bus == nil {
		return
	}
	unsub := bus.Subscribe(events.TopicOpenTerminal, c.Open)
	c.subMu.Lock()
	c.unsubscribe = unsub
	c.subMu.Unlock()
}

// Detach drops the subscription made by Attach, if any.
func (c *Controller) Detach() {
	c.subMu.Lock()
	unsub := c.unsubscribe
	c.unsubscribe = nil
	c.subMu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Open shows the terminal.
func (c *Controller) Open() { c.open.Store(true) }

// Close hides the terminal. Mode and transcript are kept.
func (c *Controller) Close() { c.open.Store(false) }

// Toggle flips visibility and returns the new state.
func (c *Controller) Toggle() bool {
	for {
		was := c.open.Load()
		if c.open.CompareAndSwap(was, !was) {
			return !was
		}
	}
}

// IsOpen reports whether the terminal is visible.
func (c *Controller) IsOpen() bool { return c.open.Load() }

// Escape closes an open terminal and reports whether it did.
func (c *Controller) Escape() bool {
	return c.open.CompareAndSwap(true, false)
}

// Output returns a copy of the transcript.
func (c *Controller) Output() []string {
	return append([]string{}, c.output...)
}

// Mode returns the current input mode.
func (c *Controller) Mode() Mode { return c.mode }

// Attempts returns the number of failed passwords in the current gate.
func (c *Controller) Attempts() int { return c.attempts }

// Input returns the uncommitted line.
func (c *Controller) Input() string { return c.input }

// SetInput replaces the uncommitted line.
func (c *Controller) SetInput(s string) { c.input = s }

// Masked reports whether the input line is a password and must not be shown.
func (c *Controller) Masked() bool { return c.mode == AwaitingPassword }

// Selection returns the projects a numeric selection would index, or nil
// outside AwaitingProjectSelection.
func (c *Controller) Selection() []project.Project {
	if c.mode != AwaitingProjectSelection {
		return nil
	}
	return append([]project.Project(nil), c.listing.projects...)
}

// Locked reports the remaining lockout, if any.
func (c *Controller) Locked() (time.Duration, bool) {
	if c.lock == nil {
		return 0, false
	}
	return c.lock.Remaining()
}

// Enter submits the uncommitted line.
func (c *Controller) Enter() { c.Submit(c.input) }

// Submit interprets line according to the current mode and clears the input.
func (c *Controller) Submit(line string) {
	c.input = ""

	if isClear(line) {
		c.clear()
		return
	}
	if c.mode == Normal && strings.TrimSpace(line) == "" {
		return
	}

	c.echo(line)
	dispatch[c.mode](c, line)
}

var dispatch = [...]func(*Controller, string){
	Normal:                   (*Controller).command,
	AwaitingPassword:         (*Controller).password,
	AwaitingProjectSelection: (*Controller).selection,
}

func (c *Controller) echo(line string) {
	if c.mode == AwaitingPassword {
		line = strings.Repeat(Mask, len([]rune(line)))
	}
	c.print("> " + line)
}

func (c *Controller) print(lines ...string) {
	c.output = append(c.output, lines...)
}

func (c *Controller) navigate(path string) {
	c.log.Debug("terminal navigate", zap.String("path", path))
	c.nav.Navigate(path)
}

func (c *Controller) clear() {
	c.output = nil
	c.mode = Normal
	c.attempts = 0
	c.listing = listing{}
}

func isClear(line string) bool {
	return strings.ToLower(strings.TrimSpace(line)) == "clear"
}
