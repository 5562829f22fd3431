// Package console renders a terminal.Controller as a Bubble Tea overlay: a
// scrolling transcript above a single prompt line.
package console

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wrap"

	"tableflip.dev/folio/pkg/terminal"
	"tableflip.dev/folio/pkg/tui/theme"
)

// Title is shown in the overlay's frame.
const Title = "terminal"

// Model is the overlay. It owns the prompt widget; the transcript and the
// session state live in the controller.
type Model struct {
	ctrl     *terminal.Controller
	th       theme.ConsoleTheme
	input    textinput.Model
	viewport viewport.Model

	width  int
	height int
}

// New wraps ctrl.
func New(ctrl *terminal.Controller, th theme.ConsoleTheme) *Model {
	in := textinput.New()
	in.Prompt = "> "
	in.PromptStyle = th.Prompt
	in.EchoCharacter = []rune(terminal.Mask)[0]
	in.CharLimit = 256
	in.Focus()

	m := &Model{
		ctrl:     ctrl,
		th:       th,
		input:    in,
		viewport: viewport.New(1, 1),
	}
	m.SetSize(80, 12)
	return m
}

// Controller exposes the wrapped session.
func (m *Model) Controller() *terminal.Controller { return m.ctrl }

// Visible reports whether the overlay should be drawn.
func (m *Model) Visible() bool { return m.ctrl.IsOpen() }

// SetSize sets the outer dimensions of the overlay.
func (m *Model) SetSize(width, height int) {
	if width < 20 {
		width = 20
	}
	if height < 5 {
		height = 5
	}
	m.width, m.height = width, height

	innerW := width - m.th.Frame.GetHorizontalFrameSize()
	innerH := height - m.th.Frame.GetVerticalFrameSize()
	// title and prompt take one line each
	m.viewport.Width = max(innerW, 1)
	m.viewport.Height = max(innerH-2, 1)
	m.input.Width = max(innerW-len(m.input.Prompt)-1, 1)
	m.Sync()
}

// Sync copies the controller state into the widgets.
func (m *Model) Sync() {
	if m.ctrl.Masked() {
		m.input.EchoMode = textinput.EchoPassword
	} else {
		m.input.EchoMode = textinput.EchoNormal
	}
	if m.input.Value() != m.ctrl.Input() {
		m.input.SetValue(m.ctrl.Input())
		m.input.CursorEnd()
	}

	lines := m.ctrl.Output()
	for i, l := range lines {
		lines[i] = wrap.String(l, m.viewport.Width)
	}
	m.viewport.SetContent(m.th.Output.Render(strings.Join(lines, "\n")))
	m.viewport.GotoBottom()
}

// Update handles keys while the overlay is visible. It reports whether the
// message was consumed.
func (m *Model) Update(msg tea.Msg) (bool, tea.Cmd) {
	if !m.Visible() {
		return false, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}

	switch key.Type {
	case tea.KeyEnter:
		m.ctrl.SetInput(m.input.Value())
		m.ctrl.Enter()
		m.Sync()
		return true, nil
	case tea.KeyTab:
		m.ctrl.Complete(m.input.Value())
		m.Sync()
		return true, nil
	case tea.KeyEsc:
		m.ctrl.Escape()
		return true, nil
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return true, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetInput(m.input.Value())
	return true, cmd
}

// View renders the overlay, or "" while it is closed.
func (m *Model) View() string {
	if !m.Visible() {
		return ""
	}
	body := strings.Join([]string{
		m.th.Title.Render(Title),
		m.viewport.View(),
		m.input.View(),
	}, "\n")
	return m.th.Frame.Width(m.width - m.th.Frame.GetHorizontalBorderSize()).Render(body)
}
