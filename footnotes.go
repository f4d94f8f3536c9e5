package footnotes

import (
	"context"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	core "github.com/goliatone/go-footnotes/pkg/footnotes"
	"github.com/goliatone/go-footnotes/pkg/render/template/gotemplate"
	"github.com/goliatone/go-footnotes/pkg/site"
)

// Session aliases the footnote session so callers can stay on the root
// package for common flows.
type Session = core.Session

// Option configures a Session.
type Option = core.Option

// Entry is a registered footnote definition.
type Entry = core.Entry

// Diagnostic is a non-fatal footnote problem reported during rendering.
type Diagnostic = core.Diagnostic

// Report aliases site.Report for Build callers.
type Report = site.Report

// NewSession exposes the session constructor from the top-level module.
func NewSession(options ...Option) *Session {
	return core.NewSession(options...)
}

// RenderDocument renders the template name from files as a single footnote
// document and returns the resolved HTML along with any diagnostics. Each call
// uses a fresh session.
func RenderDocument(files fs.FS, name string, data any, options ...Option) (string, []Diagnostic, error) {
	collector := &core.Collector{}
	options = append(options, core.WithReporter(collector.Report))
	session := core.NewSession(options...)

	engine, err := gotemplate.New(gotemplate.WithFS(files), gotemplate.WithSession(session))
	if err != nil {
		return "", nil, fmt.Errorf("footnotes: configure engine: %w", err)
	}
	html, err := engine.RenderDocument(name, name, data)
	if err != nil {
		return "", nil, err
	}
	return html, collector.Diagnostics(), nil
}

// Build renders every page below contentDir into outputDir.
func Build(ctx context.Context, contentDir, outputDir string, options ...site.Option) (Report, error) {
	options = append([]site.Option{
		site.WithContentDir(contentDir),
		site.WithOutputDir(outputDir),
	}, options...)
	builder, err := site.New(options...)
	if err != nil {
		return Report{}, err
	}
	return builder.Build(ctx)
}

// WithThemeSelector forwards a go-theme selector to the site builder so
// theme tokens reach templates and footnote styling.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) site.Option {
	return site.WithThemeSelector(selector, name, variant)
}

// WithFootnoteOptions forwards session options to the site builder.
func WithFootnoteOptions(options ...Option) site.Option {
	return site.WithFootnoteOptions(options...)
}
