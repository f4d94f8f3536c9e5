package footnotes

import (
	"strings"

	"golang.org/x/net/html"
)

// Rewrite replaces the placeholder markers in the fully rendered text of doc.
// It runs once per document, after every occurrence has been resolved.
// Markers are processed left to right: a marker whose id is defined becomes
// an anchor whose suffix is taken from the slots reserved for it, or from a
// fresh slot when the reservation is exhausted; a marker whose id was never
// defined becomes its plain content and reports an unresolved diagnostic.
// Anchor markup is never matched, so resolved text passes through unchanged.
func (s *Session) Rewrite(doc, text string) string {
	if !strings.Contains(text, placeholderOpen) {
		return text
	}

	rw := &rewriter{session: s, doc: doc, seen: make(map[string]int)}
	// A document without state has no entries, so every marker is unresolved.
	if d := s.registry.existing(doc); d != nil {
		d.mu.Lock()
		rw.d = d
	}
	out := rw.rewrite(text)
	if rw.d != nil {
		rw.d.mu.Unlock()
	}

	s.emit(rw.diagnostics)
	return out
}

type rewriter struct {
	session     *Session
	doc         string
	d           *document
	seen        map[string]int
	diagnostics []Diagnostic
}

func (rw *rewriter) rewrite(text string) string {
	var b strings.Builder
	for {
		start := strings.Index(text, placeholderOpen)
		if start < 0 {
			b.WriteString(text)
			return b.String()
		}

		m, ok := scanPlaceholder(text[start:])
		if !ok {
			cut := start + len(placeholderOpen)
			b.WriteString(text[:cut])
			text = text[cut:]
			continue
		}

		b.WriteString(text[:start])
		b.WriteString(rw.replace(m))
		text = text[start+m.length:]
	}
}

func (rw *rewriter) replace(m marker) string {
	var e *Entry
	if rw.d != nil {
		e = rw.d.entries[m.id]
	}
	if e == nil {
		rw.diagnostics = append(rw.diagnostics, unresolvedDiagnostic(rw.doc, m.id))
		return rw.rewrite(m.content)
	}

	rw.seen[m.id]++
	slot := rw.seen[m.id]
	if slot > e.Reserved {
		slot = rw.d.claim(e)
	}
	// Claim the outer slot first; nested markers follow it in text order.
	content := rw.rewrite(m.content)
	return rw.session.anchorMarkup(e.ID, AnchorID(e.ID, slot), e.Index, content)
}

type marker struct {
	id      string
	content string
	length  int
}

// scanPlaceholder parses the marker at the start of s. The content is
// tokenized so nested <span> elements are balanced and tags inside comments
// or raw text elements are ignored; the marker ends at its own closing tag.
func scanPlaceholder(s string) (marker, bool) {
	z := html.NewTokenizer(strings.NewReader(s))
	if z.Next() != html.StartTagToken {
		return marker{}, false
	}
	id, ok := placeholderID(z)
	if !ok {
		return marker{}, false
	}

	contentStart := len(z.Raw())
	offset := contentStart
	depth := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return marker{}, false
		}
		size := len(z.Raw())

		switch tt {
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "span" {
				depth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "span" {
				if depth == 0 {
					return marker{id: id, content: s[contentStart:offset], length: offset + size}, true
				}
				depth--
			}
		}
		offset += size
	}
}

// placeholderID reads the footnote id from the current start tag when it is a
// placeholder span.
func placeholderID(z *html.Tokenizer) (string, bool) {
	name, hasAttr := z.TagName()
	if string(name) != "span" {
		return "", false
	}
	var (
		id          string
		placeholder bool
		found       bool
	)
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		switch string(key) {
		case "data-footnote-placeholder":
			placeholder = true
		case "data-footnote-id":
			id, found = string(val), true
		}
	}
	return id, placeholder && found
}
