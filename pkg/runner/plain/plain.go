// Package plain runs the portfolio terminal as a line-oriented REPL on
// stdin/stdout, for hosts without a full-screen terminal.
package plain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"tableflip.dev/folio/pkg/terminal"
)

// Prompt is printed before each line is read.
const Prompt = "folio> "

// Plain drives one terminal session.
type Plain struct {
	// Controller is the session. It is opened on start and the loop ends
	// when it closes.
	Controller *terminal.Controller

	In  io.Reader
	Out io.Writer
	// TTY forces interactive behavior. When nil it is detected from In.
	TTY *bool

	in      *bufio.Reader
	printed int
}

// Navigate prints a navigation request. Pass it as the controller's
// Navigator.
func Navigate(out io.Writer) terminal.NavigatorFunc {
	return func(path string) {
		_, _ = fmt.Fprintf(out, "%s %s\n", color.CyanString("→"), path)
	}
}

func (p *Plain) interactive() bool {
	if p.TTY != nil {
		return *p.TTY
	}
	f, ok := p.In.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func (p *Plain) Do(ctx context.Context) error {
	if p.In == nil {
		p.In = os.Stdin
	}
	if p.Out == nil {
		p.Out = color.Output
	}
	tty := p.interactive()
	c := p.Controller
	c.Open()
	p.flush(false)

	p.in = bufio.NewReader(p.In)
	for c.IsOpen() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		var line string
		var err error
		if tty && c.Masked() {
			line, err = p.password()
		} else {
			if tty {
				_, _ = fmt.Fprint(p.Out, color.GreenString(Prompt))
			}
			line, err = p.in.ReadString('\n')
			if errors.Is(err, io.EOF) && line != "" {
				err = nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		c.Submit(strings.TrimRight(line, "\r\n"))
		p.flush(tty)
	}
	return nil
}

// password reads a secret without echoing it. The prompt reads from the same
// buffer as the command lines, and no further than the end of the secret.
func (p *Plain) password() (string, error) {
	prompt := promptui.Prompt{
		Label:       "Password",
		Mask:        []rune(terminal.Mask)[0],
		HideEntered: true,
		Stdin:       io.NopCloser(&lineReader{r: p.in}),
		Stdout:      nopCloser{p.Out},
	}
	return prompt.Run()
}

// lineReader hands out r one byte at a time and reports EOF after the first
// line ending. In raw mode Enter arrives as '\r'.
type lineReader struct {
	r    *bufio.Reader
	done bool
}

func (l *lineReader) Read(b []byte) (int, error) {
	if l.done {
		return 0, io.EOF
	}
	if len(b) == 0 {
		return 0, nil
	}
	c, err := l.r.ReadByte()
	if err != nil {
		l.done = true
		return 0, err
	}
	if c == '\n' || c == '\r' {
		l.done = true
	}
	b[0] = c
	return 1, nil
}

// flush prints transcript lines added since the last call. On a terminal the
// echo of the submitted line is skipped since the user just typed it.
func (p *Plain) flush(skipEcho bool) {
	lines := p.Controller.Output()
	if len(lines) < p.printed {
		// cleared
		p.printed = 0
	}
	fresh := lines[p.printed:]
	p.printed = len(lines)
	if skipEcho && len(fresh) > 0 && strings.HasPrefix(fresh[0], "> ") {
		fresh = fresh[1:]
	}
	for _, l := range fresh {
		_, _ = fmt.Fprintln(p.Out, l)
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
