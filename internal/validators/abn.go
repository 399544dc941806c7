// Package validators holds stateless format checks used by the form layer.
package validators

import "regexp"

// Two digits then three groups of three, each group boundary allowing a
// single optional space, with optional surrounding whitespace.
var businessNumberPattern = regexp.MustCompile(`^\s*\d{2}\s?\d{3}\s?\d{3}\s?\d{3}\s*$`)

// IsValidBusinessNumber reports whether the string looks like an 11-digit
// national business number ("11 222 333 444" or "11222333444"). A failed
// check is a soft warning only: callers surface it to the user and still
// accept the submission.
func IsValidBusinessNumber(s string) bool {
	return businessNumberPattern.MatchString(s)
}
