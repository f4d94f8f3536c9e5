package footnotes

import (
	"html"
	"strings"
)

// List renders the end-of-document footnote list for doc. It returns an
// empty string when the document defines no footnotes. Every back-link
// targets the bare anchor of its entry.
func (s *Session) List(doc string) string {
	entries := s.registry.Entries(doc)
	if len(entries) == 0 {
		return ""
	}

	items := make([]string, 0, len(entries))
	for position, entry := range entries {
		items = append(items, s.listItem(entry, position))
	}

	container := attrs(
		attr{"role", "doc-endnotes"},
		attr{"class", s.cfg.className("", s.cfg.Classes.Container)},
	)
	title := attrs(
		attr{"id", s.cfg.TitleID},
		attr{"class", s.cfg.className("title", s.cfg.Classes.Title)},
	)
	list := attrs(attr{"class", s.cfg.className("list", s.cfg.Classes.List)})

	var b strings.Builder
	b.WriteString("\n  <footer " + container + ">")
	b.WriteString("\n    <h2 " + title + ">" + html.EscapeString(s.cfg.Title) + "</h2>")
	b.WriteString("\n    <ol " + list + ">" + strings.Join(items, "\n") + "</ol>")
	b.WriteString("\n  </footer>")
	return b.String()
}

func (s *Session) listItem(entry Entry, position int) string {
	item := attrs(
		attr{"id", NoteID(entry.ID)},
		attr{"class", s.cfg.className("list-item", s.cfg.Classes.ListItem)},
	)
	backLink := attrs(
		attr{"class", s.cfg.className("back-link", s.cfg.Classes.BackLink)},
		attr{"href", "#" + AnchorID(entry.ID, 1)},
		attr{"aria-label", s.cfg.BackLinkLabel(entry, position)},
		attr{"role", "doc-backlink"},
	)

	description := entry.Description
	if s.cfg.Sanitizer != nil {
		description = s.cfg.Sanitizer.Sanitize(description)
	}
	return "<li " + item + ">" + description + " <a " + backLink + ">↩</a></li>"
}
