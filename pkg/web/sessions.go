package web

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/folio/pkg/events"
	"tableflip.dev/folio/pkg/terminal"
)

var (
	errNoSession = errors.New("web: terminal session not found")
	errTooMany   = errors.New("web: too many terminal sessions")
)

// recorder remembers the last path a controller asked to navigate to while
// serving one request.
type recorder struct{ path string }

func (r *recorder) Navigate(path string) { r.path = path }

// session pairs a controller with the lock that serializes its requests.
type session struct {
	mu       sync.Mutex
	ctrl     *terminal.Controller
	nav      *recorder
	lastSeen time.Time
}

// do runs fn with the session locked and returns the navigation it caused,
// if any.
func (s *session) do(now time.Time, fn func(c *terminal.Controller)) (terminal.State, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.path = ""
	fn(s.ctrl)
	s.lastSeen = now
	return s.ctrl.Snapshot(), s.nav.path
}

type sessions struct {
	mu    sync.Mutex
	items map[string]*session
	bus   *events.Bus
	max   int
	idle  time.Duration
	now   func() time.Time

	newController func(nav terminal.Navigator) *terminal.Controller
	onChange      func(n int)
}

func (m *sessions) create() (string, *session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked()
	if m.max > 0 && len(m.items) >= m.max {
		return "", nil, errTooMany
	}

	nav := &recorder{}
	s := &session{ctrl: m.newController(nav), nav: nav, lastSeen: m.now()}
	s.ctrl.Attach(m.bus)

	id := uuid.NewString()
	m.items[id] = s
	m.changedLocked()
	return id, s, nil
}

func (m *sessions) get(id string) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[id]
	if !ok {
		return nil, errNoSession
	}
	return s, nil
}

func (m *sessions) remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[id]
	if !ok {
		return errNoSession
	}
	s.ctrl.Detach()
	delete(m.items, id)
	m.changedLocked()
	return nil
}

func (m *sessions) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// sweepLocked drops sessions idle for longer than m.idle.
func (m *sessions) sweepLocked() {
	if m.idle <= 0 {
		return
	}
	now := m.now()
	for id, s := range m.items {
		s.mu.Lock()
		stale := now.Sub(s.lastSeen) > m.idle
		s.mu.Unlock()
		if stale {
			s.ctrl.Detach()
			delete(m.items, id)
		}
	}
	m.changedLocked()
}

func (m *sessions) changedLocked() {
	if m.onChange != nil {
		m.onChange(len(m.items))
	}
}
