// Package markdown renders Markdown with Glamour inside a scrollable,
// bordered viewport.
package markdown

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Options configures a Model.
type Options struct {
	// Style is a Glamour standard style name. Empty means "dark".
	Style string
	// Plain strips ANSI sequences from the rendered output.
	Plain bool
	Frame lipgloss.Style
}

// Model is a Markdown document viewer.
type Model struct {
	viewport viewport.Model
	width    int
	height   int

	source string
	style  string
	plain  bool
	frame  lipgloss.Style
	err    error
}

// New constructs a viewer sized to the provided bounds.
func New(width, height int, opts Options) *Model {
	if opts.Style == "" {
		opts.Style = "dark"
	}
	vp := viewport.New(max(width, 1), max(height, 1))
	vp.MouseWheelEnabled = true
	m := &Model{
		viewport: vp,
		style:    opts.Style,
		plain:    opts.Plain,
		frame:    opts.Frame,
	}
	m.SetSize(width, height)
	return m
}

// Update forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return cmd
}

// View renders the document inside its frame.
func (m *Model) View() string {
	body := m.viewport.View()
	if body == "" && m.err != nil {
		body = "document unavailable: " + m.err.Error()
	}
	return m.frame.Width(m.width).Render(body)
}

// SetMarkdown replaces the document and scrolls to the top.
func (m *Model) SetMarkdown(src string) {
	m.source = src
	m.render()
}

// Err reports the last render failure.
func (m *Model) Err() error { return m.err }

// SetSize configures the dimensions and re-renders the markdown to fit.
func (m *Model) SetSize(width, height int) {
	minWidth, minHeight := 32, 4
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	m.viewport.Width = max(width-m.frame.GetHorizontalFrameSize(), 1)
	m.viewport.Height = max(height-m.frame.GetVerticalFrameSize(), 1)
	m.render()
}

func (m *Model) render() {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(max(m.viewport.Width, 10)),
	)
	if err != nil {
		m.fail(err)
		return
	}

	content, err := renderer.Render(strings.TrimSpace(m.source))
	if err != nil {
		m.fail(err)
		return
	}
	if m.plain {
		content = ansi.Strip(content)
	}

	m.err = nil
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func (m *Model) fail(err error) {
	m.err = err
	m.viewport.SetContent("document unavailable: " + err.Error())
}
