// Package contactform is the TUI rendition of the contact page form.
package contactform

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/folio/pkg/contact"
	"tableflip.dev/folio/pkg/tui/theme"
)

// SubmittedMsg reports the outcome of a submission.
type SubmittedMsg struct {
	Err error
}

// Status is the form's delivery state.
type Status int

const (
	Idle Status = iota
	Sending
	Sent
	Failed
)

var fields = []struct {
	key, label, placeholder string
}{
	{"name", "Name", "Your name"},
	{"email", "Email", "you@example.com"},
	{"subject", "Subject", "What is this about?"},
	{"message", "Message", "Your message"},
}

// Model holds one text input per form field.
type Model struct {
	client *contact.Client
	th     theme.Theme
	inputs []textinput.Model
	focus  int

	status Status
	errs   map[string]string
	width  int
}

// New builds an empty form that submits through client.
func New(client *contact.Client, th theme.Theme) *Model {
	m := &Model{client: client, th: th}
	for _, f := range fields {
		in := textinput.New()
		in.Placeholder = f.placeholder
		in.Prompt = ""
		in.CharLimit = 2000
		m.inputs = append(m.inputs, in)
	}
	m.inputs[0].Focus()
	return m
}

// SetWidth sizes the inputs.
func (m *Model) SetWidth(w int) {
	m.width = w
	for i := range m.inputs {
		m.inputs[i].Width = max(w-12, 10)
	}
}

// Form returns the current values.
func (m *Model) Form() contact.Form {
	return contact.Form{
		Name:    m.inputs[0].Value(),
		Email:   m.inputs[1].Value(),
		Subject: m.inputs[2].Value(),
		Message: m.inputs[3].Value(),
	}
}

// Status reports the delivery state.
func (m *Model) Status() Status { return m.status }

// Errors returns the per-field validation messages of the last attempt.
func (m *Model) Errors() map[string]string { return m.errs }

// Update handles keys and submission results.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SubmittedMsg:
		m.finish(msg.Err)
		return nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			m.move(1)
			return nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.move(-1)
			return nil
		case tea.KeyEnter:
			if m.focus < len(m.inputs)-1 {
				m.move(1)
				return nil
			}
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *Model) move(delta int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *Model) submit() tea.Cmd {
	if m.status == Sending {
		return nil
	}
	form := m.Form()
	if err := form.Validate(); err != nil {
		m.finish(err)
		return nil
	}
	m.status = Sending
	m.errs = nil
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return SubmittedMsg{Err: client.Submit(ctx, form)}
	}
}

func (m *Model) finish(err error) {
	var verr *contact.ValidationError
	switch {
	case err == nil:
		m.status = Sent
		m.errs = nil
		for i := range m.inputs {
			m.inputs[i].Reset()
		}
		m.inputs[m.focus].Blur()
		m.focus = 0
		m.inputs[0].Focus()
	case errors.As(err, &verr):
		m.status = Idle
		m.errs = verr.Fields
	default:
		m.status = Failed
		m.errs = nil
	}
}

// View renders the form.
func (m *Model) View() string {
	var b strings.Builder
	for i, f := range fields {
		label := m.th.List.Muted.Render(f.label + ":")
		if i == m.focus {
			label = m.th.List.Selected.Render(f.label + ":")
		}
		b.WriteString(label + " " + m.inputs[i].View() + "\n")
		if msg, ok := m.errs[f.key]; ok {
			b.WriteString("  " + m.th.Footer.Alert.Render(msg) + "\n")
		}
	}
	b.WriteString("\n")
	switch m.status {
	case Sending:
		b.WriteString(m.th.Footer.Status.Render("Sending..."))
	case Sent:
		b.WriteString(m.th.Footer.Status.Render("Message sent successfully!"))
	case Failed:
		b.WriteString(m.th.Footer.Alert.Render("Failed to send message. Please try again later."))
	default:
		b.WriteString(m.th.Footer.Help.Render("tab: next field  enter: send"))
	}
	return b.String()
}
