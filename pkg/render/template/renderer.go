package template

import (
	"io"
)

// TemplateRenderer is the general-purpose rendering seam.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// DocumentRenderer renders a template as one footnote document: references
// are resolved against doc while the template executes and placeholders are
// rewritten once the output is complete. name may be a template path or
// inline template content.
type DocumentRenderer interface {
	RenderDocument(doc, name string, data any, out ...io.Writer) (string, error)
}
