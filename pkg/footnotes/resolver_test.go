package footnotes

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve_DefinitionThenReference(t *testing.T) {
	session, collector := newTestSession(t)

	first := session.Resolve("post.md", "Alice", "a", "D")
	second := session.Resolve("post.md", "Bob", "a", "")

	want := []Reference{
		{Kind: KindAnchor, ID: "a", Content: "Alice", AnchorID: "a-ref", Index: 1},
		{Kind: KindAnchor, ID: "a", Content: "Bob", AnchorID: "a-ref-2", Index: 1},
	}
	if diff := cmp.Diff(want, []Reference{first, second}); diff != "" {
		t.Fatalf("references mismatch (-want +got):\n%s", diff)
	}
	if d := collector.Diagnostics(); len(d) != 0 {
		t.Fatalf("expected no diagnostics, got %v", d)
	}
}

func TestRef_AnchorMarkup(t *testing.T) {
	session, _ := newTestSession(t)

	got := session.Ref("post.md", "CSS counters", "css-counters", "CSS counters are variables.")
	want := `<a class="Footnotes__ref" href="#css-counters-note" id="css-counters-ref" data-footnote-index="1" aria-describedby="footnotes-label" role="doc-noteref">CSS counters</a>`
	if got != want {
		t.Fatalf("anchor mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestRef_PlaceholderMarkup(t *testing.T) {
	session, _ := newTestSession(t)

	got := session.Ref("orphan.md", "CSS counters", "css-counters", "")
	want := `<span data-footnote-placeholder data-footnote-id="css-counters">CSS counters</span>`
	if got != want {
		t.Fatalf("placeholder mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestResolve_ForwardReference(t *testing.T) {
	session, _ := newTestSession(t)
	const doc = "late.md"

	alice := session.Ref(doc, "Alice", "b", "")
	bob := session.Ref(doc, "Bob", "b", "Def")

	if !strings.Contains(alice, "data-footnote-placeholder") {
		t.Fatalf("expected placeholder before definition, got %s", alice)
	}
	if !strings.Contains(bob, `id="b-ref-2"`) {
		t.Fatalf("expected definition to take b-ref-2, got %s", bob)
	}

	out := session.Rewrite(doc, "<p>"+alice+bob+"</p>"+session.List(doc))
	if strings.Contains(out, "data-footnote-placeholder") {
		t.Fatalf("placeholder survived rewrite: %s", out)
	}
	if diff := cmp.Diff([]string{"b-ref", "b-ref-2"}, anchorIDs(out)[:2]); diff != "" {
		t.Fatalf("anchor ids mismatch (-want +got):\n%s", diff)
	}
	if strings.Count(out, `data-footnote-index="1"`) != 2 {
		t.Fatalf("expected both anchors to share index 1: %s", out)
	}
	if !strings.Contains(out, `id="b-ref" data-footnote-index="1" aria-describedby="footnotes-label" role="doc-noteref">Alice</a>`) {
		t.Fatalf("expected Alice to become the bare anchor: %s", out)
	}
}

func TestResolve_SuffixesAreContiguous(t *testing.T) {
	tests := []struct {
		name         string
		placeholders int
		after        int
		want         []string
	}{
		{name: "no placeholders", placeholders: 0, after: 1, want: []string{"n-ref", "n-ref-2"}},
		{name: "one placeholder", placeholders: 1, after: 0, want: []string{"n-ref", "n-ref-2"}},
		{name: "three placeholders", placeholders: 3, after: 0, want: []string{"n-ref", "n-ref-2", "n-ref-3", "n-ref-4"}},
		{name: "placeholder then trailing references", placeholders: 1, after: 2, want: []string{"n-ref", "n-ref-2", "n-ref-3", "n-ref-4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, _ := newTestSession(t)
			const doc = "suffix.md"

			var b strings.Builder
			for i := 0; i < tt.placeholders; i++ {
				b.WriteString(session.Ref(doc, "before", "n", ""))
			}
			b.WriteString(session.Ref(doc, "definition", "n", "the note"))
			for i := 0; i < tt.after; i++ {
				b.WriteString(session.Ref(doc, "after", "n", ""))
			}

			got := anchorIDs(session.Rewrite(doc, b.String()))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("anchor ids mismatch (-want +got):\n%s", diff)
			}

			entry, _ := session.Registry().Lookup(doc, "n")
			if entry.RefCount != len(tt.want) {
				t.Fatalf("expected RefCount %d, got %d", len(tt.want), entry.RefCount)
			}
		})
	}
}

func TestResolve_EmptyDescriptionIsAbsent(t *testing.T) {
	session, collector := newTestSession(t)

	ref := session.Resolve("post.md", "x", "blank", "   ")
	if ref.Kind != KindPlaceholder {
		t.Fatalf("expected placeholder for blank description, got %v", ref.Kind)
	}
	if entries := session.Entries("post.md"); len(entries) != 0 {
		t.Fatalf("blank description must not define an entry, got %+v", entries)
	}
	if len(collector.Diagnostics()) != 0 {
		t.Fatalf("expected no diagnostics before rewrite")
	}
}

func TestResolve_DuplicateDefinitionAttaches(t *testing.T) {
	session, collector := newTestSession(t)
	const doc = "dup.md"

	session.Resolve(doc, "a", "first", "one")
	session.Resolve(doc, "b", "other", "two")
	ref := session.Resolve(doc, "c", "first", "replacement")

	want := Reference{Kind: KindAnchor, ID: "first", Content: "c", AnchorID: "first-ref-2", Index: 1}
	if diff := cmp.Diff(want, ref); diff != "" {
		t.Fatalf("reference mismatch (-want +got):\n%s", diff)
	}

	entries := session.Entries(doc)
	if len(entries) != 2 || entries[0].Description != "one" || entries[1].Index != 2 {
		t.Fatalf("duplicate definition corrupted entries: %+v", entries)
	}

	diagnostics := collector.Diagnostics()
	if len(diagnostics) != 1 || diagnostics[0].Kind != DiagnosticDuplicate || diagnostics[0].ID != "first" {
		t.Fatalf("expected one duplicate diagnostic, got %+v", diagnostics)
	}
}

func TestResolve_EmptyIDDegradesToText(t *testing.T) {
	session, collector := newTestSession(t)

	got := session.Ref("post.md", "plain", " ", "desc")
	if got != "plain" {
		t.Fatalf("expected plain content, got %q", got)
	}
	diagnostics := collector.Diagnostics()
	if len(diagnostics) != 1 || diagnostics[0].Kind != DiagnosticInvalidID {
		t.Fatalf("expected invalid id diagnostic, got %+v", diagnostics)
	}
}

func TestResolve_IndexFollowsDefinitionOrder(t *testing.T) {
	session, _ := newTestSession(t)
	const doc = "order.md"

	session.Resolve(doc, "ref", "late", "")
	session.Resolve(doc, "def", "early", "E")
	late := session.Resolve(doc, "def", "late", "L")

	if late.Index != 2 {
		t.Fatalf("expected index by definition order (2), got %d", late.Index)
	}
	entries := session.Entries(doc)
	if entries[0].ID != "early" || entries[1].ID != "late" {
		t.Fatalf("unexpected definition order: %+v", entries)
	}
}
