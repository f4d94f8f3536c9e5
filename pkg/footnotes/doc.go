// Package footnotes registers footnote definitions and reference occurrences
// per document, assigns anchor ids and shared display indices, and resolves
// forward references through a two-phase protocol: references that arrive
// before their definition are emitted as placeholder markers, and a rewrite
// pass over the finished document replaces them once every definition is
// known.
//
// A Session owns the Registry for one build. Every operation takes the
// document key explicitly; documents never share state and may be rendered
// concurrently.
package footnotes
