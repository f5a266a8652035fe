package services

import (
	"regexp"
	"strings"
)

var decimalPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,4})?$`)

func normalizeInputString(s string) string {
	return strings.TrimSpace(s)
}

// isDecimalString reports whether s is a well-formed non-negative decimal
// amount. Prices and totals travel as text end to end; this is the only gate
// before they are persisted verbatim.
func isDecimalString(s string) bool {
	return decimalPattern.MatchString(s)
}
