// Package template defines the template renderer contract used to host
// footnote directives. The gotemplate subpackage implements it on pongo2 and
// registers the footnoteref and footnotes tags.
package template
