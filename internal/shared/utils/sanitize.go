package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeUserText strips any HTML from user-supplied free text such as
// room names and usernames, and trims surrounding whitespace.
func SanitizeUserText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
