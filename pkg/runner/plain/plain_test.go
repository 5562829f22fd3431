package plain

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/folio/pkg/auth"
	"tableflip.dev/folio/pkg/lockout"
	"tableflip.dev/folio/pkg/project"
	"tableflip.dev/folio/pkg/store"
	"tableflip.dev/folio/pkg/terminal"
)

func run(t *testing.T, script string) (string, []string) {
	t.Helper()
	out, paths, _ := runMode(t, script, false)
	return out, paths
}

func runMode(t *testing.T, script string, tty bool) (string, []string, *terminal.Controller) {
	t.Helper()
	cat, err := project.Default()
	require.NoError(t, err)
	v, err := auth.NewVerifier(auth.Hash("opensesame"))
	require.NoError(t, err)

	var out bytes.Buffer
	var paths []string
	nav := Navigate(&out)
	c := terminal.New(terminal.Options{
		Catalog:  cat,
		Verifier: v,
		Lockout:  lockout.New(store.NewMemory(), nil),
		Navigator: terminal.NavigatorFunc(func(path string) {
			paths = append(paths, path)
			nav(path)
		}),
		Greeting: "hello there",
	})
	p := &Plain{Controller: c, In: strings.NewReader(script), Out: &out, TTY: &tty}
	require.NoError(t, p.Do(context.Background()))
	return out.String(), paths, c
}

func TestPlainPrintsTranscript(t *testing.T) {
	out, paths := run(t, "help\nresume\nexit\nprojects\n")
	assert.True(t, strings.HasPrefix(out, "hello there\n"))
	assert.Contains(t, out, "> help\n")
	assert.Contains(t, out, "→ /resume\n")
	// exit ends the loop before the last line is read
	assert.Equal(t, []string{"/resume"}, paths)
}

func TestPlainEndsOnEOF(t *testing.T) {
	out, paths := run(t, "contact")
	assert.Contains(t, out, "> contact\n")
	assert.Equal(t, []string{"/contact"}, paths)
}

func TestPlainMasksPassword(t *testing.T) {
	out, paths := run(t, "sudo access-all\nopensesame\n1\n")
	assert.NotContains(t, out, "opensesame")
	assert.Contains(t, out, "> "+strings.Repeat(terminal.Mask, len("opensesame")))
	assert.Contains(t, out, "Access granted.")
	require.Len(t, paths, 1)
	assert.Equal(t, "/projects/rubiks-cube-robot", paths[0])
}

func TestPlainAfterClear(t *testing.T) {
	out, _ := run(t, "help\nclear\nabout\n")
	assert.Contains(t, out, "> about\n")
	assert.Equal(t, 1, strings.Count(out, "hello there"))
}

func TestInteractivePasswordKeepsTypeAhead(t *testing.T) {
	out, paths, c := runMode(t, "sudo access-all\nopensesame\n1\n", true)
	assert.Equal(t, terminal.Normal, c.Mode())
	assert.Contains(t, out, "Access granted.")
	assert.NotContains(t, out, "opensesame")
	require.Len(t, paths, 1)
	assert.Equal(t, "/projects/rubiks-cube-robot", paths[0])
}

func TestLineReaderStopsAtLineEnd(t *testing.T) {
	for _, end := range []string{"\n", "\r"} {
		buf := bufio.NewReader(strings.NewReader("secret" + end + "next\n"))
		got, err := io.ReadAll(&lineReader{r: buf})
		require.NoError(t, err)
		assert.Equal(t, "secret"+end, string(got))

		rest, err := buf.ReadString('\n')
		require.NoError(t, err)
		assert.Equal(t, "next\n", rest)
	}
}
