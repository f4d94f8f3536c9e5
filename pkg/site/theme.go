package site

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-footnotes/pkg/footnotes"
)

// Theme tokens read by the builder to override footnote configuration.
const (
	TokenFootnotesTitle     = "footnotes.title"
	TokenFootnotesTitleID   = "footnotes.title-id"
	TokenFootnotesBaseClass = "footnotes.base-class"
	TokenFootnotesBackLink  = "footnotes.back-link-label"
)

// ManifestSelector serves a single in-memory manifest.
type ManifestSelector struct {
	Manifest *theme.Manifest
}

var _ theme.ThemeSelector = ManifestSelector{}

// Select returns the manifest when name is empty or matches it. An empty
// variant selects the base tokens only.
func (s ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s.Manifest == nil {
		return nil, fmt.Errorf("site: no theme manifest configured")
	}
	if name != "" && name != s.Manifest.Name {
		return nil, fmt.Errorf("site: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := s.Manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("site: theme %q has no variant %q", s.Manifest.Name, variant)
		}
	}
	return &theme.Selection{
		Theme:    s.Manifest.Name,
		Variant:  variant,
		Manifest: s.Manifest,
	}, nil
}

type themeContext struct {
	Name    string
	Variant string
	Tokens  map[string]string
}

func (b *Builder) resolveTheme() (*themeContext, error) {
	if b.selector == nil {
		return nil, nil
	}
	selection, err := b.selector.Select(b.themeName, b.themeVariant)
	if err != nil {
		return nil, fmt.Errorf("site: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}

	ctx := &themeContext{
		Name:    selection.Theme,
		Variant: selection.Variant,
		Tokens:  make(map[string]string),
	}
	if manifest := selection.Manifest; manifest != nil {
		for key, value := range manifest.Tokens {
			ctx.Tokens[key] = value
		}
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			for key, value := range variant.Tokens {
				ctx.Tokens[key] = value
			}
		}
	}
	return ctx, nil
}

func (t *themeContext) footnoteOptions() []footnotes.Option {
	if t == nil {
		return nil
	}
	var options []footnotes.Option
	if v := t.Tokens[TokenFootnotesTitle]; v != "" {
		options = append(options, footnotes.WithTitle(v))
	}
	if v := t.Tokens[TokenFootnotesTitleID]; v != "" {
		options = append(options, footnotes.WithTitleID(v))
	}
	if v := t.Tokens[TokenFootnotesBaseClass]; v != "" {
		options = append(options, footnotes.WithBaseClass(v))
	}
	if v := t.Tokens[TokenFootnotesBackLink]; strings.TrimSpace(v) != "" {
		options = append(options, footnotes.WithBackLinkLabel(footnotes.LabelTemplate(v)))
	}
	return options
}

func (t *themeContext) data() map[string]any {
	if t == nil {
		return nil
	}
	tokens := make(map[string]any, len(t.Tokens))
	for key, value := range t.Tokens {
		tokens[key] = value
	}
	return map[string]any{
		"name":    t.Name,
		"variant": t.Variant,
		"tokens":  tokens,
	}
}
