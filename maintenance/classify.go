package maintenance

import "strings"

// maxTemplateNameLen is the longest string still treated as a template name
// or path rather than template content.
const maxTemplateNameLen = 100

// IsTemplateContent reports whether s is template source rather than a
// built-in name or redirect path.
func IsTemplateContent(s string) bool {
	return strings.Contains(s, "<") || strings.Contains(s, "\n") || len(s) > maxTemplateNameLen
}

// IsRedirectPath reports whether s names a site path visitors should be
// redirected to instead of seeing a maintenance page.
func IsRedirectPath(s string) bool {
	return strings.HasPrefix(s, "/") && !strings.Contains(s, ".") && !IsTemplateContent(s)
}
