// Package config loads footnote site configuration from YAML or JSON files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-footnotes/pkg/footnotes"
)

const (
	DefaultContentDir = "content"
	DefaultOutputDir  = "public"
	DefaultExtension  = ".tpl"
)

// File is the on-disk configuration document.
type File struct {
	Footnotes Footnotes `json:"footnotes" yaml:"footnotes"`
	Build     Build     `json:"build" yaml:"build"`
	Theme     Theme     `json:"theme,omitempty" yaml:"theme,omitempty"`
}

// Footnotes mirrors footnotes.Config in serialisable form.
type Footnotes struct {
	Title         string            `json:"title,omitempty" yaml:"title,omitempty"`
	TitleID       string            `json:"titleId,omitempty" yaml:"titleId,omitempty"`
	BaseClass     string            `json:"baseClass,omitempty" yaml:"baseClass,omitempty"`
	Classes       footnotes.Classes `json:"classes,omitempty" yaml:"classes,omitempty"`
	BackLinkLabel string            `json:"backLinkLabel,omitempty" yaml:"backLinkLabel,omitempty"`
	Sanitize      bool              `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`
}

// Build configures the site builder.
type Build struct {
	Content     string         `json:"content" yaml:"content"`
	Output      string         `json:"output" yaml:"output"`
	Extension   string         `json:"extension" yaml:"extension"`
	Concurrency int            `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	Data        map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// Theme declares a single theme manifest inline.
type Theme struct {
	Name     string                       `json:"name,omitempty" yaml:"name,omitempty"`
	Variant  string                       `json:"variant,omitempty" yaml:"variant,omitempty"`
	Tokens   map[string]string            `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Variants map[string]map[string]string `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() File {
	return File{
		Footnotes: Footnotes{
			Title:     footnotes.DefaultTitle,
			TitleID:   footnotes.DefaultTitleID,
			BaseClass: footnotes.DefaultBaseClass,
		},
		Build: Build{
			Content:   DefaultContentDir,
			Output:    DefaultOutputDir,
			Extension: DefaultExtension,
		},
	}
}

// Load reads path and resolves relative build directories against the
// directory holding the file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return File{}, err
	}

	base := filepath.Dir(path)
	cfg.Build.Content = resolvePath(base, cfg.Build.Content)
	cfg.Build.Output = resolvePath(base, cfg.Build.Output)
	return cfg, nil
}

// Parse decodes a JSON or YAML document and fills unset fields with defaults.
func Parse(data []byte, source string) (File, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return File{}, fmt.Errorf("config: file %s is empty", source)
	}

	var cfg File
	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = File{}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return File{}, fmt.Errorf("config: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return File{}, fmt.Errorf("config: %s: %w", source, err)
	}
	return cfg, nil
}

// Write serialises cfg as YAML.
func Write(path string, cfg File) error {
	payload, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate reports settings the builder cannot honour.
func (f File) Validate() error {
	if f.Build.Concurrency < 0 {
		return errors.New("build.concurrency must not be negative")
	}
	if strings.ContainsAny(f.Footnotes.TitleID, " \t\n\"") {
		return fmt.Errorf("footnotes.titleId %q is not a valid element id", f.Footnotes.TitleID)
	}
	if f.Theme.Variant != "" && f.Theme.Name == "" {
		return errors.New("theme.variant requires theme.name")
	}
	return nil
}

// Options converts the footnote section into session options.
func (f Footnotes) Options() []footnotes.Option {
	options := []footnotes.Option{
		footnotes.WithTitle(f.Title),
		footnotes.WithTitleID(f.TitleID),
		footnotes.WithBaseClass(f.BaseClass),
		footnotes.WithClasses(f.Classes),
	}
	if strings.TrimSpace(f.BackLinkLabel) != "" {
		options = append(options, footnotes.WithBackLinkLabel(footnotes.LabelTemplate(f.BackLinkLabel)))
	}
	if f.Sanitize {
		options = append(options, footnotes.WithSanitizer(footnotes.DescriptionSanitizer()))
	}
	return options
}

// Manifest converts the inline theme into a go-theme manifest. It returns nil
// when no theme is configured.
func (t Theme) Manifest() *theme.Manifest {
	if strings.TrimSpace(t.Name) == "" {
		return nil
	}
	manifest := &theme.Manifest{
		Name:    t.Name,
		Version: "inline",
		Tokens:  cloneTokens(t.Tokens),
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for name, tokens := range t.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: cloneTokens(tokens)}
		}
	}
	return manifest
}

func (f *File) applyDefaults() {
	defaults := Default()
	if strings.TrimSpace(f.Footnotes.Title) == "" {
		f.Footnotes.Title = defaults.Footnotes.Title
	}
	if strings.TrimSpace(f.Footnotes.TitleID) == "" {
		f.Footnotes.TitleID = defaults.Footnotes.TitleID
	}
	if strings.TrimSpace(f.Footnotes.BaseClass) == "" {
		f.Footnotes.BaseClass = defaults.Footnotes.BaseClass
	}
	if strings.TrimSpace(f.Build.Content) == "" {
		f.Build.Content = defaults.Build.Content
	}
	if strings.TrimSpace(f.Build.Output) == "" {
		f.Build.Output = defaults.Build.Output
	}
	ext := strings.TrimSpace(f.Build.Extension)
	switch {
	case ext == "":
		ext = defaults.Build.Extension
	case !strings.HasPrefix(ext, "."):
		ext = "." + ext
	}
	f.Build.Extension = ext
}

func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func cloneTokens(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
