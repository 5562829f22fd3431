// Package web serves the portfolio catalog, the contact form and remote
// terminal sessions over HTTP.
package web

import (
	"context"
	"errors"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tableflip.dev/folio/pkg/auth"
	"tableflip.dev/folio/pkg/contact"
	"tableflip.dev/folio/pkg/events"
	"tableflip.dev/folio/pkg/files"
	"tableflip.dev/folio/pkg/lockout"
	"tableflip.dev/folio/pkg/project"
	"tableflip.dev/folio/pkg/terminal"
)

// Options configures a Server. Catalog, Verifier and Lockout are required.
type Options struct {
	Catalog  *project.Catalog
	Profile  project.Profile
	Verifier *auth.Verifier
	Lockout  *lockout.Tracker
	// Bus is shared by every terminal session. Nil creates one.
	Bus     *events.Bus
	Contact *contact.Client
	Sizer   *files.Sizer
	Logger  *zap.Logger

	RateLimit RateLimitConfig
	Origins   []string

	// MaxSessions caps live terminal sessions. Zero means 1024.
	MaxSessions int
	// SessionIdle is how long an untouched session survives. Zero means one
	// hour.
	SessionIdle time.Duration
	// Now is the session clock; tests replace it.
	Now func() time.Time
}

// Server is the HTTP surface.
type Server struct {
	catalog  *project.Catalog
	profile  project.Profile
	verifier *auth.Verifier
	lock     *lockout.Tracker
	bus      *events.Bus
	contact  *contact.Client
	sizer    *files.Sizer
	log      *zap.Logger
	metrics  *Metrics
	sessions *sessions

	engine *gin.Engine
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Bus == nil {
		opts.Bus = events.New()
	}
	if opts.Contact == nil {
		opts.Contact = contact.NewClient(contact.Options{Logger: opts.Logger})
	}
	if opts.Sizer == nil {
		opts.Sizer = files.NewSizer(files.Options{Logger: opts.Logger})
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 1024
	}
	if opts.SessionIdle <= 0 {
		opts.SessionIdle = time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		catalog:  opts.Catalog,
		profile:  opts.Profile,
		verifier: opts.Verifier,
		lock:     opts.Lockout,
		bus:      opts.Bus,
		contact:  opts.Contact,
		sizer:    opts.Sizer,
		log:      opts.Logger,
		metrics:  NewMetrics(),
	}
	s.sessions = &sessions{
		items:         make(map[string]*session),
		bus:           opts.Bus,
		max:           opts.MaxSessions,
		idle:          opts.SessionIdle,
		now:           opts.Now,
		newController: s.newController,
		onChange:      func(n int) { s.metrics.SessionsActive.Set(float64(n)) },
	}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.engine.Use(RequestLogger(s.log))
	s.engine.Use(CORS(opts.Origins))
	s.engine.Use(s.metrics.Middleware())
	s.engine.Use(RateLimit(opts.RateLimit))
	s.routes()
	return s
}

func (s *Server) newController(nav terminal.Navigator) *terminal.Controller {
	return terminal.New(terminal.Options{
		Catalog:   s.catalog,
		Verifier:  s.verifier,
		Lockout:   s.lock,
		Navigator: nav,
		Bus:       s.bus,
		Rand:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Greeting:  s.profile.Greeting(),
		Logger:    s.log.Named("terminal"),
	})
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/healthz", s.health)
	r.GET("/metrics", s.metrics.Handler())

	api := r.Group("/api")
	api.GET("/profile", s.getProfile)
	api.POST("/contact", s.postContact)

	projects := api.Group("/projects")
	projects.GET("", s.listProjects)
	projects.GET("/random", s.randomProject)
	projects.GET("/:id", s.getProject)
	projects.GET("/:id/files", s.projectFiles)

	term := api.Group("/terminal")
	term.POST("", s.createSession)
	term.POST("/open", s.openAll)
	term.GET("/:id", s.getSession)
	term.DELETE("/:id", s.deleteSession)
	term.POST("/:id/input", s.submitLine)
	term.POST("/:id/complete", s.complete)
	term.POST("/:id/open", s.sessionAction(func(c *terminal.Controller) { c.Open() }))
	term.POST("/:id/close", s.sessionAction(func(c *terminal.Controller) { c.Close() }))
	term.POST("/:id/toggle", s.sessionAction(func(c *terminal.Controller) { c.Toggle() }))
	term.POST("/:id/escape", s.sessionAction(func(c *terminal.Controller) { c.Escape() }))
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
