package footnotes

import "strings"

// Kind tells how a reference occurrence was rendered.
type Kind int

const (
	// KindText is a reference degraded to its plain content.
	KindText Kind = iota
	// KindAnchor is a finished link to the definition.
	KindAnchor
	// KindPlaceholder is a forward reference awaiting the rewrite pass.
	KindPlaceholder
)

func (k Kind) String() string {
	switch k {
	case KindAnchor:
		return "anchor"
	case KindPlaceholder:
		return "placeholder"
	default:
		return "text"
	}
}

// Reference is the outcome of resolving one occurrence.
type Reference struct {
	Kind     Kind
	ID       string
	Content  string
	AnchorID string
	Index    int
}

// Resolve handles one reference occurrence of id in doc. Occurrences of a
// document must be resolved in document order.
//
// A non-blank description defines the footnote unless the id is already
// defined, in which case the occurrence attaches to the existing entry and a
// duplicate diagnostic is reported. A blank description is the same as none:
// the occurrence attaches to the existing entry or, when there is none yet,
// becomes a placeholder.
func (s *Session) Resolve(doc, content, id, description string) Reference {
	id = strings.TrimSpace(id)
	if id == "" {
		s.emit([]Diagnostic{invalidIDDiagnostic(doc)})
		return Reference{Kind: KindText, Content: content}
	}
	defining := strings.TrimSpace(description) != ""

	var diagnostics []Diagnostic
	ref := func() Reference {
		d := s.registry.acquire(doc)
		defer d.mu.Unlock()

		if e, ok := d.entries[id]; ok {
			if defining {
				diagnostics = append(diagnostics, duplicateDiagnostic(doc, id))
			}
			return anchorReference(e, d.claim(e), content)
		}
		if !defining {
			d.pending[id]++
			return Reference{Kind: KindPlaceholder, ID: id, Content: content}
		}
		e := d.define(id, description)
		return anchorReference(e, e.RefCount, content)
	}()

	s.emit(diagnostics)
	return ref
}

// Ref resolves an occurrence and returns its markup: an anchor, a
// placeholder marker, or the bare content.
func (s *Session) Ref(doc, content, id, description string) string {
	return s.Markup(s.Resolve(doc, content, id, description))
}

// Markup renders a resolved reference.
func (s *Session) Markup(ref Reference) string {
	switch ref.Kind {
	case KindAnchor:
		return s.anchorMarkup(ref.ID, ref.AnchorID, ref.Index, ref.Content)
	case KindPlaceholder:
		return placeholderMarkup(ref.ID, ref.Content)
	default:
		return ref.Content
	}
}

func anchorReference(e *Entry, slot int, content string) Reference {
	return Reference{
		Kind:     KindAnchor,
		ID:       e.ID,
		Content:  content,
		AnchorID: AnchorID(e.ID, slot),
		Index:    e.Index,
	}
}
