package vanilla

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	fragmentPolicyOnce sync.Once
	fragmentPolicy     *bluemonday.Policy
)

// FragmentPolicy returns the policy applied to rendered fragments. It admits
// exactly the markup the built-in templates emit so custom templates cannot
// smuggle scripts or event handlers through record fields. Image sources may
// be http(s), file or data:image URLs, or relative paths.
func FragmentPolicy() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("ul", "li", "h3", "p", "div", "span", "button", "img")

		policy.AllowAttrs("class", "id").Globally()
		policy.AllowDataAttributes()

		policy.AllowAttrs("type", "aria-controls", "aria-expanded").OnElements("button")
		policy.AllowAttrs("alt", "src").OnElements("img")
		policy.AllowStandardURLs()
		policy.AllowURLSchemes("file")
		policy.AllowDataURIImages()

		fragmentPolicy = policy
	})
	return fragmentPolicy
}
