// Package site builds a tree of page templates into HTML. Each page is one
// footnote document keyed by its path in the content filesystem; pages are
// rendered concurrently against a session that lives for a single Build.
package site
