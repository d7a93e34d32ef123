// Package repair implements the repair planner, the label
// Sanitizer (§4.6), and PreviousSeen (§3/§5).
package repair

import (
	"strings"

	"github.com/distr1/depfix"
)

// SanitizeLabel applies both label-sanitizer transformations, in
// order: (1) macro-generated fan-out targets collapse to their source
// macro call by truncating at "_auto_gen_"; (2) the result is
// canonicalized (colon-appended if missing). SanitizeLabel is
// idempotent: SanitizeLabel(SanitizeLabel(x)) == SanitizeLabel(x).
func SanitizeLabel(s string) string {
	if idx := strings.Index(s, "_auto_gen_"); idx >= 0 {
		s = s[:idx]
	}
	return string(depfix.Canonicalize(s))
}
