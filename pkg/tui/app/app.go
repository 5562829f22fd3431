// Package app is the full-screen portfolio browser: About, Projects, Contact
// and Resume pages with the terminal overlay on top.
package app

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"tableflip.dev/folio/pkg/auth"
	"tableflip.dev/folio/pkg/contact"
	"tableflip.dev/folio/pkg/events"
	"tableflip.dev/folio/pkg/lockout"
	"tableflip.dev/folio/pkg/project"
	"tableflip.dev/folio/pkg/store"
	"tableflip.dev/folio/pkg/terminal"
	"tableflip.dev/folio/pkg/tui/components/console"
	"tableflip.dev/folio/pkg/tui/components/contactform"
	"tableflip.dev/folio/pkg/tui/components/markdown"
	"tableflip.dev/folio/pkg/tui/components/panel"
	"tableflip.dev/folio/pkg/tui/theme"
)

// Options configures the browser. Catalog, Verifier and Lockout are required.
type Options struct {
	Catalog  *project.Catalog
	Profile  project.Profile
	Verifier *auth.Verifier
	Lockout  *lockout.Tracker
	Bus      *events.Bus
	Contact  *contact.Client
	// Watch streams store changes made by other processes. Optional.
	Watch  <-chan store.Event
	Logger *zap.Logger
	// Plain disables colors and borders.
	Plain bool
	// OpenTerminal starts with the overlay shown.
	OpenTerminal bool
}

type busMsg events.Topic

type storeMsg store.Event

// lockTickMsg refreshes the lockout countdown.
type lockTickMsg struct{}

// lockTick is how often the footer countdown is refreshed while locked.
const lockTick = 5 * time.Second

// Model is the root Bubble Tea model.
type Model struct {
	catalog *project.Catalog
	profile project.Profile
	bus     *events.Bus
	log     *zap.Logger
	th      theme.Theme

	width  int
	height int

	page     Page
	projects []project.Project
	selected int
	current  project.Project

	about   panel.Model
	resume  panel.Model
	detail  *markdown.Model
	form    *contactform.Model
	console *console.Model

	watch  <-chan store.Event
	busCh  chan tea.Msg
	unsubs []func()

	status  string
	ticking bool
}

// New builds the browser on the About page with the terminal closed.
func New(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Bus == nil {
		opts.Bus = events.New()
	}
	if opts.Contact == nil {
		opts.Contact = contact.NewClient(contact.Options{Logger: opts.Logger})
	}
	th, style := theme.Default(), "dark"
	if opts.Plain {
		th, style = theme.Plain(), "notty"
	}

	m := &Model{
		catalog:  opts.Catalog,
		profile:  opts.Profile,
		bus:      opts.Bus,
		log:      opts.Logger,
		th:       th,
		projects: opts.Catalog.Public(),
		about:    panel.New(th.Panel),
		resume:   panel.New(th.Panel),
		detail:   markdown.New(80, 20, markdown.Options{Style: style, Plain: opts.Plain}),
		form:     contactform.New(opts.Contact, th),
		watch:    opts.Watch,
		busCh:    make(chan tea.Msg, 8),
	}

	ctrl := terminal.New(terminal.Options{
		Catalog:   opts.Catalog,
		Verifier:  opts.Verifier,
		Lockout:   opts.Lockout,
		Navigator: terminal.NavigatorFunc(m.navigate),
		Bus:       opts.Bus,
		Greeting:  opts.Profile.Greeting(),
		Logger:    opts.Logger.Named("terminal"),
	})
	ctrl.Attach(opts.Bus)
	if opts.OpenTerminal {
		ctrl.Open()
	}
	m.console = console.New(ctrl, th.Console)

	for _, topic := range []events.Topic{events.TopicOpenTerminal, events.TopicLockoutChanged} {
		m.unsubs = append(m.unsubs, opts.Bus.Subscribe(topic, m.forward(topic)))
	}

	m.about.SetContent(opts.Profile.Name, append([]string{opts.Profile.Headline, ""}, opts.Profile.About...))
	m.resume.SetContent("Resume", m.resumeLines())
	m.refreshStatus()
	return m
}

// forward turns a bus topic into a message for the program loop. Bursts
// collapse into whatever is already queued.
func (m *Model) forward(topic events.Topic) events.Handler {
	return func() {
		select {
		case m.busCh <- busMsg(topic):
		default:
		}
	}
}

// Close releases bus subscriptions.
func (m *Model) Close() {
	m.console.Controller().Detach()
	for _, u := range m.unsubs {
		u()
	}
	m.unsubs = nil
}

// Page reports the visible page.
func (m *Model) Page() Page { return m.page }

// Console exposes the terminal overlay.
func (m *Model) Console() *console.Model { return m.console }

// Status is the footer's status text.
func (m *Model) Status() string { return m.status }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitBus(), m.waitStore(), m.watchLockout())
}

// watchLockout schedules one countdown refresh while the terminal is locked.
// At most one tick is in flight.
func (m *Model) watchLockout() tea.Cmd {
	if m.status == "" || m.ticking {
		return nil
	}
	m.ticking = true
	return tea.Tick(lockTick, func(time.Time) tea.Msg { return lockTickMsg{} })
}

func (m *Model) waitBus() tea.Cmd {
	ch := m.busCh
	return func() tea.Msg { return <-ch }
}

func (m *Model) waitStore() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	ch := m.watch
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return storeMsg(ev)
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if tick := m.watchLockout(); tick != nil {
		cmd = tea.Batch(cmd, tick)
	}
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return nil

	case busMsg:
		if events.Topic(msg) == events.TopicLockoutChanged {
			m.refreshStatus()
		}
		m.console.Sync()
		m.layout()
		return m.waitBus()

	case storeMsg:
		if msg.Key == lockout.Key {
			m.log.Debug("lockout record changed on disk", zap.Bool("removed", msg.Removed))
			m.refreshStatus()
		}
		return m.waitStore()

	case lockTickMsg:
		m.ticking = false
		m.refreshStatus()
		return nil

	case contactform.SubmittedMsg:
		return m.form.Update(msg)

	case tea.KeyMsg:
		cmd := m.key(msg)
		m.layout()
		return cmd
	}
	return nil
}

func (m *Model) key(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "ctrl+@", "ctrl+t":
		// ctrl+` reaches most terminals as ctrl+@
		m.console.Controller().Toggle()
		m.console.Sync()
		return nil
	case "`":
		// only opens; once open the console takes it as text
		if !m.console.Visible() {
			m.console.Controller().Open()
			m.console.Sync()
			return nil
		}
	}

	if consumed, cmd := m.console.Update(msg); consumed {
		m.afterConsole()
		return cmd
	}

	if m.page == PageContact {
		if msg.Type == tea.KeyEsc {
			m.show(PageAbout)
			return nil
		}
		if msg.Type != tea.KeyLeft && msg.Type != tea.KeyRight {
			return m.form.Update(msg)
		}
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "o":
		// the header's terminal button
		m.bus.Publish(events.TopicOpenTerminal)
		m.console.Sync()
	case "right", "l":
		m.show(m.page.next())
	case "left", "h":
		m.show(m.page.prev())
	case "1", "2", "3", "4":
		m.show(tabs[msg.String()[0]-'1'])
	}

	switch m.page {
	case PageProjects:
		m.projectKey(msg)
	case PageProject:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyBackspace:
			m.show(PageProjects)
		default:
			return m.detail.Update(msg)
		}
	}
	return nil
}

func (m *Model) projectKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.projects)-1 {
			m.selected++
		}
	case "enter":
		if len(m.projects) > 0 {
			m.navigate(m.projects[m.selected].Path())
		}
	case "r":
		if p, ok := project.Random(nil, m.catalog.RandomEligible()); ok {
			m.navigate(p.Path())
		}
	}
}

// afterConsole refreshes anything a submitted line may have changed.
func (m *Model) afterConsole() {
	m.refreshStatus()
}

func (m *Model) refreshStatus() {
	if left, locked := m.console.Controller().Locked(); locked {
		m.status = lockout.Message(left)
		return
	}
	m.status = ""
}

func (m *Model) layout() {
	if m.width <= 0 {
		return
	}
	w := max(m.width, 20)
	m.about.SetWidth(min(w, 100))
	m.resume.SetWidth(min(w, 100))
	m.form.SetWidth(min(w, 100))
	m.detail.SetSize(w, max(m.bodyHeight(), 4))
	m.console.SetSize(w, max(m.height/2, 8))
}

// bodyHeight is what is left for the page once header, footer and an open
// console are drawn.
func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	h := m.height - 3
	if m.console.Visible() {
		h -= max(m.height/2, 8)
	}
	return max(h, 1)
}

// View implements tea.Model.
func (m *Model) View() string {
	parts := []string{m.header(), fit(m.body(), m.bodyHeight())}
	if v := m.console.View(); v != "" {
		parts = append(parts, v)
	}
	parts = append(parts, m.footer())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) header() string {
	items := []string{m.th.Header.Brand.Render(m.profile.Name)}
	for _, p := range tabs {
		style := m.th.Header.Tab
		if p == m.page || (p == PageProjects && m.page == PageProject) {
			style = m.th.Header.ActiveTab
		}
		items = append(items, style.Render(p.String()))
	}
	items = append(items, m.th.Header.Tab.Render("[o] terminal"))
	return m.th.Header.Bar.Render(lipgloss.JoinHorizontal(lipgloss.Top, items...))
}

func (m *Model) footer() string {
	if m.status != "" {
		return m.th.Footer.Alert.Render(m.status)
	}
	help := "←/→ pages  o/ctrl+t terminal  q quit"
	if m.console.Visible() {
		help = "enter run  tab complete  esc close"
	}
	return m.th.Footer.Help.Render(help)
}

// fit pads or truncates s to exactly h lines. A non-positive h leaves s
// alone.
func fit(s string, h int) string {
	if h <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
