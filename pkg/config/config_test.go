package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-footnotes/pkg/footnotes"
)

const sampleYAML = `
footnotes:
  title: Notes
  titleId: notes-title
  baseClass: Kitty
  classes:
    container: footer
    listItem: item
  backLinkLabel: "Go to {n}"
  sanitize: true
build:
  content: pages
  output: dist
  extension: html
  concurrency: 4
  data:
    site: Example
theme:
  name: paper
  variant: dark
  tokens:
    footnotes.title: Paper notes
  variants:
    dark:
      footnotes.base-class: Dark
`

func TestParse_YAML(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML), "footnotes.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := File{
		Footnotes: Footnotes{
			Title:         "Notes",
			TitleID:       "notes-title",
			BaseClass:     "Kitty",
			Classes:       footnotes.Classes{Container: "footer", ListItem: "item"},
			BackLinkLabel: "Go to {n}",
			Sanitize:      true,
		},
		Build: Build{
			Content:     "pages",
			Output:      "dist",
			Extension:   ".html",
			Concurrency: 4,
			Data:        map[string]any{"site": "Example"},
		},
		Theme: Theme{
			Name:     "paper",
			Variant:  "dark",
			Tokens:   map[string]string{"footnotes.title": "Paper notes"},
			Variants: map[string]map[string]string{"dark": {"footnotes.base-class": "Dark"}},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_JSONAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{"footnotes": {"title": "Refs"}}`), "footnotes.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Footnotes.Title != "Refs" {
		t.Fatalf("expected title from file, got %q", cfg.Footnotes.Title)
	}
	defaults := Default()
	if cfg.Footnotes.TitleID != defaults.Footnotes.TitleID || cfg.Footnotes.BaseClass != defaults.Footnotes.BaseClass {
		t.Fatalf("expected footnote defaults, got %+v", cfg.Footnotes)
	}
	if diff := cmp.Diff(defaults.Build, cfg.Build); diff != "" {
		t.Fatalf("build defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":            "  \n",
		"invalid":          "footnotes: [unclosed",
		"negative workers": "build:\n  concurrency: -1\n",
		"bad title id":     "footnotes:\n  titleId: \"has space\"\n",
		"variant no theme": "theme:\n  variant: dark\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(input), "bad.yaml"); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoad_ResolvesRelativeDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site", "footnotes.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("build:\n  content: pages\n  output: /abs/out\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Build.Content != filepath.Join(dir, "site", "pages") {
		t.Fatalf("unexpected content dir %q", cfg.Build.Content)
	}
	if cfg.Build.Output != "/abs/out" {
		t.Fatalf("absolute output should be kept, got %q", cfg.Build.Output)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "footnotes.yaml")
	cfg := Default()
	cfg.Footnotes.Title = "Written"

	if err := Write(path, cfg); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "title: Written") {
		t.Fatalf("expected yaml output, got:\n%s", data)
	}

	loaded, err := Parse(data, path)
	if err != nil {
		t.Fatalf("parse written config: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFootnotes_Options(t *testing.T) {
	section := Footnotes{
		Title:         "Notes",
		BaseClass:     "Kitty",
		BackLinkLabel: "Jump {n}",
		Sanitize:      true,
	}
	session := footnotes.NewSession(section.Options()...)
	cfg := session.Config()

	if cfg.Title != "Notes" || cfg.BaseClass != "Kitty" || cfg.TitleID != footnotes.DefaultTitleID {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Sanitizer == nil {
		t.Fatalf("expected sanitizer to be configured")
	}
	if got := cfg.BackLinkLabel(footnotes.Entry{}, 2); got != "Jump 3" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestTheme_Manifest(t *testing.T) {
	if (Theme{}).Manifest() != nil {
		t.Fatalf("expected nil manifest without a name")
	}

	manifest := Theme{
		Name:     "paper",
		Tokens:   map[string]string{"a": "1"},
		Variants: map[string]map[string]string{"dark": {"a": "2"}},
	}.Manifest()
	if manifest.Name != "paper" || manifest.Tokens["a"] != "1" {
		t.Fatalf("unexpected manifest %+v", manifest)
	}
	if manifest.Variants["dark"].Tokens["a"] != "2" {
		t.Fatalf("variant tokens not copied: %+v", manifest.Variants)
	}
}
