package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/folio/pkg/events"
	"tableflip.dev/folio/pkg/lockout"
	"tableflip.dev/folio/pkg/project"
)

func (c *Controller) password(line string) {
	if c.verifier.Verify(line) {
		c.log.Info("terminal access granted", zap.Int("failed_attempts", c.attempts))
		c.attempts = 0
		c.grant()
		return
	}

	c.attempts++
	if c.attempts < lockout.MaxAttempts {
		c.print(fmt.Sprintf("Incorrect password. Attempt %d/%d. Try again:", c.attempts, lockout.MaxAttempts))
		return
	}

	c.mode = Normal
	c.attempts = 0
	if c.lock != nil {
		if _, err := c.lock.Lock(lockout.Duration); err != nil {
			c.log.Warn("persist terminal lockout", zap.Error(err))
		} else if c.bus != nil {
			c.bus.Publish(events.TopicLockoutChanged)
		}
	}
	c.print(
		"Access denied. Too many failed attempts.",
		fmt.Sprintf("This command is locked for %d minutes.", lockout.Minutes(lockout.Duration)),
	)
}

// grant prints the grouped listing of the whole catalog and keeps its order
// for the selection that follows.
func (c *Controller) grant() {
	groups := c.catalog.Grouped()
	c.listing = listing{authenticated: true, projects: project.Flatten(groups)}
	c.mode = AwaitingProjectSelection

	c.print("Access granted. Listing all projects (including hidden):", "")
	n := 1
	for _, g := range groups {
		if len(g.Projects) == 0 {
			continue
		}
		c.print(g.Visibility.Header())
		for _, p := range g.Projects {
			c.print(fmt.Sprintf("  %d. %s", n, p.Title))
			n++
		}
		c.print("")
	}
	c.print("Enter a number to navigate to any project.")
}

func (c *Controller) selection(line string) {
	choice := strings.ToLower(strings.TrimSpace(line))
	if choice == "random" {
		c.random()
		return
	}

	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(c.listing.projects) {
		c.print(fmt.Sprintf("Invalid selection. Please enter a number between 1 and %d, or type 'random'.", len(c.listing.projects)))
		return
	}
	p := c.listing.projects[n-1]
	c.finishSelection()
	c.navigate(p.Path())
	c.print(fmt.Sprintf("Navigating to %s...", p.Title))
}

// random picks from the terminal listing when ungated and from the random
// eligible set after authentication. An empty pool still ends the selection.
func (c *Controller) random() {
	pool := c.catalog.Terminal()
	if c.listing.authenticated {
		pool = c.catalog.RandomEligible()
	}
	c.finishSelection()

	p, ok := project.Random(c.rand, pool)
	if !ok {
		c.print("No projects available for random selection.")
		return
	}
	c.navigate(p.Path())
	c.print(fmt.Sprintf("Navigating to random project: %s...", p.Title))
}

func (c *Controller) finishSelection() {
	c.mode = Normal
	c.listing = listing{}
}
