package footnotes

import (
	"html"
	"strconv"
	"strings"
)

// AnchorID returns the element id of the reference occupying slot. Slot 1 is
// the bare anchor; later slots carry a numeric suffix.
func AnchorID(id string, slot int) string {
	if slot <= 1 {
		return id + "-ref"
	}
	return id + "-ref-" + strconv.Itoa(slot)
}

// NoteID returns the element id of the list item holding the definition.
func NoteID(id string) string {
	return id + "-note"
}

type attr struct {
	key   string
	value string
}

func attrs(pairs ...attr) string {
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, pair.key+`="`+html.EscapeString(pair.value)+`"`)
	}
	return strings.Join(parts, " ")
}

func (s *Session) anchorMarkup(id, anchorID string, index int, content string) string {
	return "<a " + attrs(
		attr{"class", s.cfg.className("ref", s.cfg.Classes.Ref)},
		attr{"href", "#" + NoteID(id)},
		attr{"id", anchorID},
		attr{"data-footnote-index", strconv.Itoa(index)},
		attr{"aria-describedby", s.cfg.TitleID},
		attr{"role", "doc-noteref"},
	) + ">" + content + "</a>"
}

const placeholderOpen = `<span data-footnote-placeholder data-footnote-id="`

func placeholderMarkup(id, content string) string {
	return placeholderOpen + html.EscapeString(id) + `">` + content + `</span>`
}
