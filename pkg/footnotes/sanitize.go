package footnotes

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// DescriptionSanitizer returns the shared policy used for footnote
// descriptions: user-generated-content markup with ids and classes kept so
// descriptions can link to other notes.
func DescriptionSanitizer() Sanitizer {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("id", "class").Globally()
		policy.AllowAttrs("role", "aria-label").OnElements("a", "span")
		descriptionPolicy = policy
	})
	return descriptionPolicy
}
