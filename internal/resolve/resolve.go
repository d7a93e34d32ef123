// Package resolve implements the Resolver: given a failing
// ErrorInfo and a class name, it produces an ordered candidate list of
// target labels by combining the static Index Table with heuristic
// path guesses.
package resolve

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/distr1/depfix"
	"github.com/distr1/depfix/internal/index"
)

// Flavors are the source-root directory names path guesses are rooted
// under. bazel-fe's expand_target_to_guesses recognizes exactly these
// two JVM source layouts.
var Flavors = []string{"java", "scala"}

// Forbidden is the static target-kind -> forbidden-label-set map: labels
// that are implicit toolchain dependencies for a given rule kind and
// must never be proposed.
type Forbidden map[string]map[string]bool

// Candidate is one ranked resolver output: a frequency (0 for
// heuristic path guesses) and the label it was derived for.
type Candidate struct {
	Freq  uint16
	Label string
}

// GetCandidates implements the resolver's five-step candidate algorithm.
func GetCandidates(table *index.Table, forbidden Forbidden, targetKind, className string) []Candidate {
	var out []Candidate

	if entries, ok := table.Get(className); ok {
		forbiddenSet := forbidden[targetKind]
		for _, e := range entries {
			if forbiddenSet != nil && forbiddenSet[e.Label] {
				continue
			}
			out = append(out, Candidate{Freq: e.Freq, Label: e.Label})
		}
	}

	for _, guess := range pathGuesses(className) {
		out = append(out, Candidate{Freq: 0, Label: guess})
	}

	for i := range out {
		out[i].Label = string(depfix.Canonicalize(out[i].Label))
	}

	slices.SortStableFunc(out, func(a, b Candidate) bool {
		return a.Freq > b.Freq
	})

	return out
}

// pathGuesses implements step 3 of §4.4: split the class name on '.',
// truncate at the first segment beginning with an uppercase letter (the
// class-vs-package heuristic), and — if more than 3 package segments
// remain — emit one guess per configured flavor (two in all).
func pathGuesses(className string) []string {
	segments := strings.Split(className, ".")
	prefix := segments
	for i, seg := range segments {
		if seg != "" && isUpper(seg[0]) {
			prefix = segments[:i]
			break
		}
	}
	if len(prefix) <= 3 {
		return nil
	}
	joined := strings.Join(prefix, "/")
	guesses := make([]string, 0, len(Flavors))
	for _, flavor := range Flavors {
		guesses = append(guesses, "//src/main/"+flavor+"/"+joined)
	}
	return guesses
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
