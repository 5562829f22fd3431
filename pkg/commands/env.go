package commands

import (
	"io"

	"go.uber.org/zap"

	"tableflip.dev/folio/pkg/auth"
	"tableflip.dev/folio/pkg/config"
	"tableflip.dev/folio/pkg/contact"
	"tableflip.dev/folio/pkg/events"
	"tableflip.dev/folio/pkg/files"
	"tableflip.dev/folio/pkg/lockout"
	"tableflip.dev/folio/pkg/logging"
	"tableflip.dev/folio/pkg/project"
	"tableflip.dev/folio/pkg/store"
)

// env is everything a command needs, resolved from config.
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	kv       store.KV
	catalog  *project.Catalog
	profile  project.Profile
	verifier *auth.Verifier
	lock     *lockout.Tracker
	bus      *events.Bus
}

// loadEnv resolves config, logging and state. Full-screen commands pass
// quiet so log lines go to the configured file instead of stderr.
func loadEnv(quiet bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, bus: events.New()}
	if quiet {
		e.log = logging.ToFile(cfg.Log.File, cfg.Log.Level)
	} else {
		e.log, err = logging.New(logging.Config{Level: cfg.Log.Level, Development: cfg.Log.Development})
		if err != nil {
			return nil, err
		}
	}

	if e.catalog, err = project.Load(cfg.Catalog); err != nil {
		return nil, err
	}
	if e.profile, err = project.DefaultProfile(); err != nil {
		return nil, err
	}
	digest := cfg.Digest
	if digest == "" {
		digest = auth.DefaultDigest
	}
	if e.verifier, err = auth.NewVerifier(digest); err != nil {
		return nil, err
	}
	if e.kv, err = store.Load(cfg); err != nil {
		return nil, err
	}
	e.lock = lockout.New(e.kv, e.log.Named("lockout"))
	e.log.Debug("environment loaded",
		zap.String("config", cfg.File),
		zap.String("store", cfg.Store),
		zap.Int("projects", e.catalog.Len()))
	return e, nil
}

func (e *env) contact() *contact.Client {
	return contact.NewClient(contact.Options{
		Endpoint: e.cfg.Contact.Endpoint,
		Timeout:  e.cfg.Contact.Timeout,
		Retries:  2,
		Logger:   e.log.Named("contact"),
	})
}

func (e *env) sizer(base string) *files.Sizer {
	return files.NewSizer(files.Options{BaseURL: base, Logger: e.log.Named("files")})
}

func (e *env) close() {
	if c, ok := e.kv.(io.Closer); ok {
		if err := c.Close(); err != nil {
			e.log.Warn("close store", zap.Error(err))
		}
	}
	_ = e.log.Sync()
}
