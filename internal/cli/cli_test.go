package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-footnotes/pkg/config"
)

type scriptedPrompter struct {
	answers  map[string]string
	confirm  bool
	messages []string
}

func (p *scriptedPrompter) Input(prompt InputPrompt) (string, error) {
	p.messages = append(p.messages, prompt.Message)
	if answer, ok := p.answers[prompt.Message]; ok {
		if prompt.Validator != nil {
			if err := prompt.Validator(answer); err != nil {
				return "", err
			}
		}
		return answer, nil
	}
	return prompt.Default, nil
}

func (p *scriptedPrompter) Confirm(message string, def bool) (bool, error) {
	p.messages = append(p.messages, message)
	return p.confirm, nil
}

func run(t *testing.T, prompter Prompter, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(&out, prompter)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "footnotes.yaml"), `
footnotes:
  title: Notes
build:
  content: pages
  output: out
`)
	writeFile(t, filepath.Join(dir, "pages", "index.tpl"),
		`{% footnoteref "a" %}see{% endfootnoteref %}{% footnoteref "a" "Alpha" %}def{% endfootnoteref %}{% footnotes %}`)

	out, err := run(t, nil, "build", "--config", filepath.Join(dir, "footnotes.yaml"), "--log-level", "error")
	if err != nil {
		t.Fatalf("build: %v\n%s", err, out)
	}
	if !strings.Contains(out, "built 1 page(s)") || !strings.Contains(out, "(0 diagnostic(s))") {
		t.Fatalf("unexpected summary: %q", out)
	}

	html, err := os.ReadFile(filepath.Join(dir, "out", "index.html"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{`id="a-ref"`, `id="a-ref-2"`, `>Notes</h2>`, "Alpha"} {
		if !strings.Contains(string(html), want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestBuildCommand_StrictFailsOnDiagnostics(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pages", "index.tpl"), `{% footnoteref "missing" %}x{% endfootnoteref %}`)

	args := []string{"build", "--content", filepath.Join(dir, "pages"), "--output", filepath.Join(dir, "out"), "--log-level", "error"}
	if _, err := run(t, nil, args...); err != nil {
		t.Fatalf("non-strict build should succeed: %v", err)
	}
	if _, err := run(t, nil, append(args, "--strict")...); err == nil {
		t.Fatal("strict build should fail on unresolved footnotes")
	}
}

func TestBuildCommand_ExplicitConfigMustExist(t *testing.T) {
	if _, err := run(t, nil, "build", "--config", filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for a missing explicit config")
	}
}

func TestRootCommand_InvalidLogFormat(t *testing.T) {
	if _, err := run(t, nil, "build", "--log-format", "xml"); err == nil || !strings.Contains(err.Error(), "log-format") {
		t.Fatalf("expected log format error, got %v", err)
	}
}

func TestInitCommand_Wizard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site", "footnotes.yaml")
	prompter := &scriptedPrompter{
		answers: map[string]string{
			"Footnote list title:": "  References ",
			"Output directory:":    "dist",
		},
		confirm: false,
	}

	out, err := run(t, prompter, "init", "--config", path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "wrote "+path) {
		t.Fatalf("unexpected output %q", out)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	want := config.Default()
	want.Footnotes.Title = "References"
	want.Footnotes.BackLinkLabel = "Back to reference {n}"
	want.Build.Content = filepath.Join(filepath.Dir(path), "content")
	want.Build.Output = filepath.Join(filepath.Dir(path), "dist")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if len(prompter.messages) != 7 {
		t.Fatalf("expected 7 questions, got %v", prompter.messages)
	}
}

func TestInitCommand_RejectsInvalidAnswer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "footnotes.yaml")
	prompter := &scriptedPrompter{answers: map[string]string{"Title element id:": "has space"}}
	if _, err := run(t, prompter, "init", "--config", path); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("config should not be written, stat err = %v", err)
	}
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "footnotes.yaml")
	writeFile(t, path, "footnotes: {}\n")

	if _, err := run(t, nil, "init", "--yes", "--config", path); err == nil {
		t.Fatal("expected error when config exists")
	}
	if _, err := run(t, nil, "init", "--yes", "--force", "--config", path); err != nil {
		t.Fatalf("forced init: %v", err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Footnotes.Title != config.Default().Footnotes.Title {
		t.Fatalf("expected default title, got %q", got.Footnotes.Title)
	}
}
