package footnotes

import (
	"regexp"
	"testing"
)

var anchorIDPattern = regexp.MustCompile(`<a [^>]*\bid="([^"]+)"`)

func newTestSession(t *testing.T, options ...Option) (*Session, *Collector) {
	t.Helper()

	collector := &Collector{}
	options = append(options, WithReporter(collector.Report))
	return NewSession(options...), collector
}

func anchorIDs(markup string) []string {
	var ids []string
	for _, match := range anchorIDPattern.FindAllStringSubmatch(markup, -1) {
		ids = append(ids, match[1])
	}
	return ids
}
