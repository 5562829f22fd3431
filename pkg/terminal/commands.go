package terminal

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/folio/pkg/lockout"
)

type command struct {
	name   string
	desc   string
	hidden bool
}

// commands is the Normal-mode table in help order.
var commands = []command{
	{name: "help", desc: "Show this help message"},
	{name: "about", desc: "View about information"},
	{name: "projects", desc: "List all projects"},
	{name: "sub-projects", desc: "Navigate to a specific project (numbered list)"},
	{name: "contact", desc: "Go to contact page"},
	{name: "resume", desc: "View resume"},
	{name: "clear", desc: "Clear terminal"},
	{name: "exit", desc: "Close terminal"},
	{name: "sudo access-all", hidden: true},
}

var actions = map[string]func(*Controller){
	"help":            (*Controller).help,
	"about":           goTo("/", "About"),
	"projects":        goTo("/projects", "Projects"),
	"sub-projects":    (*Controller).subProjects,
	"contact":         goTo("/contact", "Contact"),
	"resume":          goTo("/resume", "Resume"),
	"clear":           (*Controller).clear,
	"exit":            (*Controller).exit,
	"sudo access-all": (*Controller).sudo,
}

// Commands returns the public command names in help order.
func Commands() []string {
	var names []string
	for _, cmd := range commands {
		if !cmd.hidden {
			names = append(names, cmd.name)
		}
	}
	return names
}

func (c *Controller) command(line string) {
	name := strings.ToLower(strings.TrimSpace(line))
	run, ok := actions[name]
	if !ok {
		c.log.Debug("unknown terminal command", zap.String("input", line))
		c.print(fmt.Sprintf("Command not recognized: %s. Type \"help\" for available commands.", line))
		return
	}
	run(c)
}

func (c *Controller) help() {
	width := 0
	for _, cmd := range commands {
		if !cmd.hidden && len(cmd.name) > width {
			width = len(cmd.name)
		}
	}
	c.print("Available commands:")
	for _, cmd := range commands {
		if cmd.hidden {
			continue
		}
		c.print(fmt.Sprintf("- %-*s : %s", width, cmd.name, cmd.desc))
	}
}

func goTo(path, page string) func(*Controller) {
	return func(c *Controller) {
		c.navigate(path)
		c.print(fmt.Sprintf("Navigating to %s page...", page))
	}
}

func (c *Controller) exit() {
	c.Close()
	c.print("Terminal closed.")
}

func (c *Controller) subProjects() {
	c.listing = listing{projects: c.catalog.Terminal()}
	c.mode = AwaitingProjectSelection

	c.print("Select a project:")
	for i, p := range c.listing.projects {
		c.print(fmt.Sprintf("%d. %s", i+1, p.Title))
	}
	c.print("", "Enter a number to navigate, or type 'random' for a random project.")
}

func (c *Controller) sudo() {
	if left, locked := c.Locked(); locked {
		c.print(lockout.Message(left))
		return
	}
	c.mode = AwaitingPassword
	c.attempts = 0
	c.print("Enter password:")
}

// Complete applies tab completion to input and returns the resulting line.
// A unique prefix match replaces the line; several matches are printed and
// leave it unchanged.
func (c *Controller) Complete(input string) string {
	c.input = input
	if c.mode != Normal {
		return c.input
	}
	prefix := strings.ToLower(strings.TrimSpace(input))
	if prefix == "" {
		return c.input
	}

	var matches []string
	for _, name := range Commands() {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 0:
	case 1:
		c.input = matches[0]
	default:
		c.print("> "+input, strings.Join(matches, "  "))
	}
	return c.input
}
