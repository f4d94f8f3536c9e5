package footnotes

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// DiagnosticKind classifies a non-fatal footnote anomaly.
type DiagnosticKind string

const (
	// DiagnosticUnresolved marks a placeholder whose id was never defined.
	DiagnosticUnresolved DiagnosticKind = "unresolved"
	// DiagnosticDuplicate marks a second definition for an already defined id.
	DiagnosticDuplicate DiagnosticKind = "duplicate"
	// DiagnosticInvalidID marks a reference without an id.
	DiagnosticInvalidID DiagnosticKind = "invalid-id"
)

// Diagnostic describes one anomaly. Each occurrence produces its own
// diagnostic; they are not deduplicated.
type Diagnostic struct {
	Kind     DiagnosticKind
	Document string
	ID       string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Document, d.Message)
}

// Reporter receives diagnostics. It is called outside of registry locks.
type Reporter func(Diagnostic)

// LogReporter logs each diagnostic at warn level.
func LogReporter(logger *slog.Logger) Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return func(d Diagnostic) {
		logger.LogAttrs(context.Background(), slog.LevelWarn, d.Message,
			slog.String("doc", d.Document),
			slog.String("id", d.ID),
			slog.String("kind", string(d.Kind)),
		)
	}
}

// Tee fans a diagnostic out to every non-nil reporter.
func Tee(reporters ...Reporter) Reporter {
	return func(d Diagnostic) {
		for _, r := range reporters {
			if r != nil {
				r(d)
			}
		}
	}
}

// Collector accumulates diagnostics in arrival order. It is safe for
// concurrent use.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// Report appends d. Pass c.Report wherever a Reporter is expected.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// Diagnostics returns a copy of everything collected so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.items...)
}

// ForDocument returns the diagnostics reported for doc.
func (c *Collector) ForDocument(doc string) []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Diagnostic
	for _, d := range c.items {
		if d.Document == doc {
			out = append(out, d)
		}
	}
	return out
}

func unresolvedDiagnostic(doc, id string) Diagnostic {
	return Diagnostic{
		Kind:     DiagnosticUnresolved,
		Document: doc,
		ID:       id,
		Message:  fmt.Sprintf("footnote %q was referenced but has no given description", id),
	}
}

func duplicateDiagnostic(doc, id string) Diagnostic {
	return Diagnostic{
		Kind:     DiagnosticDuplicate,
		Document: doc,
		ID:       id,
		Message:  fmt.Sprintf("footnote %q is already defined; later description ignored", id),
	}
}

func invalidIDDiagnostic(doc string) Diagnostic {
	return Diagnostic{
		Kind:     DiagnosticInvalidID,
		Document: doc,
		Message:  "footnote reference without an id rendered as plain text",
	}
}
