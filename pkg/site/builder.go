package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	theme "github.com/goliatone/go-theme"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-footnotes/pkg/footnotes"
	"github.com/goliatone/go-footnotes/pkg/render/template/gotemplate"
)

const defaultExtension = ".tpl"

// Option customises the builder.
type Option func(*Builder)

// WithContentFS sets the filesystem holding page templates.
func WithContentFS(fsys fs.FS) Option {
	return func(b *Builder) {
		b.content = fsys
		b.contentDir = ""
	}
}

// WithContentDir loads page templates from a directory on disk. Template
// names in extends and include tags resolve against dir.
func WithContentDir(dir string) Option {
	return func(b *Builder) {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return
		}
		b.content = os.DirFS(dir)
		b.contentDir = dir
	}
}

// WithTemplateFuncs exposes functions to every page. Values of type
// pongo2.FilterFunction are registered as filters; other functions become
// callable globals.
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(b *Builder) {
		if len(funcs) == 0 {
			return
		}
		if b.funcs == nil {
			b.funcs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			b.funcs[name] = fn
		}
	}
}

// WithOutputDir writes rendered pages below dir. Without it Build only
// returns the rendered bytes.
func WithOutputDir(dir string) Option {
	return func(b *Builder) {
		b.outputDir = strings.TrimSpace(dir)
	}
}

// WithExtension sets the page template extension.
func WithExtension(ext string) Option {
	return func(b *Builder) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		b.extension = trimmed
	}
}

// WithConcurrency bounds how many pages render at once. Values below one use
// GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(b *Builder) {
		b.concurrency = n
	}
}

// WithData exposes site-wide values to every page.
func WithData(data map[string]any) Option {
	return func(b *Builder) {
		if len(data) == 0 {
			return
		}
		if b.data == nil {
			b.data = make(map[string]any, len(data))
		}
		for key, value := range data {
			b.data[key] = value
		}
	}
}

// WithLogger sets the logger for build progress and footnote diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithFootnoteOptions configures the session created for each build.
func WithFootnoteOptions(options ...footnotes.Option) Option {
	return func(b *Builder) {
		b.footnoteOptions = append(b.footnoteOptions, options...)
	}
}

// WithThemeSelector resolves name/variant through selector at build time.
// Theme tokens are exposed to templates as theme.tokens and the footnotes.*
// tokens override the footnote configuration.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(b *Builder) {
		b.selector = selector
		b.themeName = name
		b.themeVariant = variant
	}
}

// WithThemeManifest is WithThemeSelector for a single manifest.
func WithThemeManifest(manifest *theme.Manifest, variant string) Option {
	return func(b *Builder) {
		if manifest == nil {
			return
		}
		b.selector = ManifestSelector{Manifest: manifest}
		b.themeName = manifest.Name
		b.themeVariant = variant
	}
}

// Builder renders every page of a content tree.
type Builder struct {
	content         fs.FS
	contentDir      string
	funcs           map[string]any
	outputDir       string
	extension       string
	concurrency     int
	data            map[string]any
	logger          *slog.Logger
	footnoteOptions []footnotes.Option
	selector        theme.ThemeSelector
	themeName       string
	themeVariant    string
}

// Page is the result of rendering one page.
type Page struct {
	// Path is the page's path in the content filesystem and its document key.
	Path string
	// Output is the slash-separated output path relative to the output dir.
	Output      string
	HTML        []byte
	Footnotes   int
	Diagnostics []footnotes.Diagnostic
}

// Report summarises a build.
type Report struct {
	Pages []Page
}

// Diagnostics returns the diagnostics of every page in page order.
func (r Report) Diagnostics() []footnotes.Diagnostic {
	var out []footnotes.Diagnostic
	for _, page := range r.Pages {
		out = append(out, page.Diagnostics...)
	}
	return out
}

// New constructs a Builder. A content filesystem is required.
func New(options ...Option) (*Builder, error) {
	b := &Builder{
		extension: defaultExtension,
		logger:    slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.content == nil {
		return nil, errors.New("site: content filesystem is required")
	}
	if b.concurrency < 1 {
		b.concurrency = runtime.GOMAXPROCS(0)
	}
	return b, nil
}

// Build renders all pages. Footnote state is created for the build and
// discarded when it returns, so consecutive builds are independent.
func (b *Builder) Build(ctx context.Context) (Report, error) {
	if ctx == nil {
		return Report{}, errors.New("site: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	pages, err := b.discover()
	if err != nil {
		return Report{}, err
	}

	themeCtx, err := b.resolveTheme()
	if err != nil {
		return Report{}, err
	}

	collector := &footnotes.Collector{}
	options := []footnotes.Option{footnotes.WithLogger(b.logger)}
	options = append(options, b.footnoteOptions...)
	options = append(options, themeCtx.footnoteOptions()...)
	options = append(options, footnotes.WithReporter(footnotes.Tee(collector.Report, footnotes.LogReporter(b.logger))))
	session := footnotes.NewSession(options...)
	defer session.Reset()

	globals := map[string]any{}
	if len(b.data) > 0 {
		globals["site"] = b.data
	}
	if data := themeCtx.data(); data != nil {
		globals["theme"] = data
	}

	engineOptions := []gotemplate.Option{
		gotemplate.WithExtension(b.extension),
		gotemplate.WithGlobalData(globals),
		gotemplate.WithTemplateFunc(b.funcs),
		gotemplate.WithSession(session),
	}
	if b.contentDir != "" {
		engineOptions = append(engineOptions, gotemplate.WithBaseDir(b.contentDir))
	} else {
		engineOptions = append(engineOptions, gotemplate.WithFS(b.content))
	}
	engine, err := gotemplate.New(engineOptions...)
	if err != nil {
		return Report{}, fmt.Errorf("site: configure template engine: %w", err)
	}

	results := make([]Page, len(pages))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(b.concurrency)
	for i, pagePath := range pages {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			page, err := b.renderPage(engine, session, pagePath)
			if err != nil {
				return err
			}
			results[i] = page
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Report{}, err
	}

	for i := range results {
		results[i].Diagnostics = collector.ForDocument(results[i].Path)
	}
	b.logger.Info("site built", slog.Int("pages", len(results)), slog.Int("diagnostics", len(collector.Diagnostics())))
	return Report{Pages: results}, nil
}

func (b *Builder) renderPage(engine *gotemplate.Engine, session *footnotes.Session, pagePath string) (Page, error) {
	output := strings.TrimSuffix(pagePath, b.extension) + ".html"
	html, err := engine.RenderDocument(pagePath, pagePath, map[string]any{
		"page": map[string]any{
			"path":      pagePath,
			"inputPath": pagePath,
			"output":    output,
		},
	})
	if err != nil {
		return Page{}, fmt.Errorf("site: render %s: %w", pagePath, err)
	}

	page := Page{
		Path:      pagePath,
		Output:    output,
		HTML:      []byte(html),
		Footnotes: len(session.Entries(pagePath)),
	}
	if b.outputDir != "" {
		target := filepath.Join(b.outputDir, filepath.FromSlash(output))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return Page{}, fmt.Errorf("site: mkdir for %s: %w", output, err)
		}
		if err := os.WriteFile(target, page.HTML, 0o644); err != nil {
			return Page{}, fmt.Errorf("site: write %s: %w", output, err)
		}
	}

	b.logger.Debug("page rendered", slog.String("page", pagePath), slog.Int("footnotes", page.Footnotes))
	return page, nil
}

// discover lists page templates in lexical order. Files and directories whose
// name starts with an underscore are layouts and partials, not pages.
func (b *Builder) discover() ([]string, error) {
	var pages []string
	err := fs.WalkDir(b.content, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := entry.Name()
		if entry.IsDir() {
			if p != "." && strings.HasPrefix(name, "_") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, "_") || path.Ext(name) != b.extension {
			return nil
		}
		pages = append(pages, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("site: discover pages: %w", err)
	}
	return pages, nil
}
