package messages

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

const maxSanitizePasses = 4

// sanitizeTemplate strips markup from externally supplied templates. Messages
// are plain text; renderers decide how to escape them. Entity-encoded markup
// is decoded and stripped again until the text is stable; text that is still
// changing after maxSanitizePasses stays escaped.
func sanitizeTemplate(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	policy := templateSanitizer()
	for pass := 0; pass < maxSanitizePasses; pass++ {
		cleaned := policy.Sanitize(text)
		next := strings.TrimSpace(html.UnescapeString(cleaned))
		if next == text {
			return next
		}
		text = next
	}
	return strings.TrimSpace(policy.Sanitize(text))
}

func templateSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
