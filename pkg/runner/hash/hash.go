package hash

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

	"tableflip.dev/folio/pkg/auth"
)

// Hash prints the digest to configure as the terminal password.
type Hash struct {
	// Password to hash. When empty it is read from In: through a masked,
	// confirmed prompt on a terminal, as one line otherwise.
	Password string

	In  io.Reader
	Out io.Writer
}

func (n *Hash) Do(ctx context.Context) error {
	if n.In == nil {
		n.In = os.Stdin
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	pw := n.Password
	if pw == "" {
		var err error
		if pw, err = n.read(); err != nil {
			return err
		}
	}
	if pw == "" {
		return errors.New("empty password")
	}
	_, err := fmt.Fprintln(n.Out, auth.Hash(pw))
	return err
}

func (n *Hash) read() (string, error) {
	if f, ok := n.In.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		pw, err := n.prompt("Password", nil)
		if err != nil {
			return "", err
		}
		_, err = n.prompt("Confirm", func(s string) error {
			if s != pw {
				return errors.New("passwords do not match")
			}
			return nil
		})
		return pw, err
	}
	line, err := bufio.NewReader(n.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (n *Hash) prompt(label string, validate promptui.ValidateFunc) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Mask:     '•',
		Validate: validate,
		Stdin:    io.NopCloser(n.In),
	}
	return p.Run()
}
