package footnotes

import "log/slog"

// Session owns the footnote state of one build. Construct one per build, pass
// it to every render, and Reset it before an unrelated build reuses it.
type Session struct {
	cfg      Config
	registry *Registry
	report   Reporter
}

// NewSession constructs a Session with DefaultConfig adjusted by options.
func NewSession(options ...Option) *Session {
	cfg := DefaultConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.BackLinkLabel == nil {
		cfg.BackLinkLabel = DefaultBackLinkLabel
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	report := cfg.Reporter
	if report == nil {
		report = LogReporter(cfg.Logger)
	}

	return &Session{
		cfg:      cfg,
		registry: NewRegistry(),
		report:   report,
	}
}

// Config returns the effective configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Registry exposes the underlying store.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Entries returns the entries of doc in definition order.
func (s *Session) Entries(doc string) []Entry {
	return s.registry.Entries(doc)
}

// Dispose drops the state of a single document.
func (s *Session) Dispose(doc string) {
	s.registry.Dispose(doc)
}

// Reset drops all state so the session can serve an independent build.
func (s *Session) Reset() {
	s.registry.Reset()
}

func (s *Session) emit(diagnostics []Diagnostic) {
	for _, d := range diagnostics {
		s.report(d)
	}
}
