package repair

import (
	"context"
	"log"
	"strings"

	"github.com/distr1/depfix/internal/editor"
	"github.com/distr1/depfix/internal/event"
	"github.com/distr1/depfix/internal/index"
	"github.com/distr1/depfix/internal/resolve"
)

// IsPotentiallyValidTarget reports whether label's on-disk package
// directory contains a BUILD file, or label does not begin with "//"
// (in which case it can't be checked locally and is assumed valid).
// NewFilesystemValidator builds one that resolves labels relative to a
// workspace root path.
type IsPotentiallyValidTarget func(label string) bool

// Planner is the repair planner: for one ActionFailed with
// a non-empty list of extracted requests, it applies at most one
// dependency addition per request-class.
type Planner struct {
	Table     *index.Table
	Forbidden resolve.Forbidden
	Editor    editor.Editor
	Seen      *PreviousSeen
	IsValid   IsPotentiallyValidTarget
	Log       *log.Logger

	// ExtraIgnore is a fixed list of known-noise labels (e.g. a
	// target's generated companion targets) folded into every ignore
	// set before candidate search, independent of print_deps and
	// PreviousSeen. See SPEC_FULL.md §D.3.
	ExtraIgnore []string
}

// Plan implements the per-failure planning algorithm. It returns the
// number of dependencies actually added.
func (p *Planner) Plan(ctx context.Context, info event.ErrorInfo, requests []event.ClassImportRequest) (actionsCompleted int, err error) {
	if len(requests) == 0 {
		return 0, nil
	}

	pruned := pruneBroaderDuplicates(requests)
	sortByPriorityDesc(pruned)

	failingLabel := SanitizeLabel(string(info.Label))

	ignore := make(map[string]bool)
	ignore[failingLabel] = true
	for _, l := range p.ExtraIgnore {
		ignore[SanitizeLabel(l)] = true
	}

	prevSet := p.Seen.Take(failingLabel)
	for l := range prevSet {
		ignore[l] = true
	}

	deps, depsErr := p.Editor.PrintDeps(ctx, string(info.Label))
	if depsErr != nil {
		if p.Log != nil {
			p.Log.Printf("repair: print_deps(%s) failed, continuing with a best-effort ignore set: %v", info.Label, depsErr)
		}
	} else {
		for _, d := range deps {
			ignore[SanitizeLabel(d)] = true
		}
	}

	localSeen := make(map[string]bool)

	for _, req := range pruned {
		for _, className := range subAttempts(req) {
			candidates := resolve.GetCandidates(p.Table, p.Forbidden, info.TargetKind, className)
			stop := false
			for _, cand := range candidates {
				target := SanitizeLabel(cand.Label)
				if ignore[target] {
					continue
				}
				if p.IsValid != nil && !p.IsValid(target) {
					continue
				}
				if localSeen[target] {
					stop = true
					break
				}
				if addErr := p.Editor.AddDependency(ctx, string(info.Label), target); addErr != nil {
					if p.Log != nil {
						p.Log.Printf("repair: add_dependency(%s, %s) failed, skipping candidate: %v", info.Label, target, addErr)
					}
					continue
				}
				actionsCompleted++
				localSeen[target] = true
				stop = true
				break
			}
			if stop {
				break
			}
		}
	}

	updated := make(map[string]bool, len(ignore)+len(localSeen))
	for l := range ignore {
		updated[l] = true
	}
	for l := range localSeen {
		updated[l] = true
	}
	p.Seen.Put(failingLabel, updated)

	return actionsCompleted, nil
}

// pruneBroaderDuplicates drops request R if some other request R' has a
// different class name, R's class name is a substring of R''s, and R'
// is not exact_only.
func pruneBroaderDuplicates(requests []event.ClassImportRequest) []event.ClassImportRequest {
	var out []event.ClassImportRequest
	for _, r := range requests {
		pruned := false
		for _, other := range requests {
			if other.ClassName == r.ClassName {
				continue
			}
			if !other.ExactOnly && strings.Contains(other.ClassName, r.ClassName) {
				pruned = true
				break
			}
		}
		if !pruned {
			out = append(out, r)
		}
	}
	return out
}

func sortByPriorityDesc(requests []event.ClassImportRequest) {
	// Stable insertion sort: request counts per failure are small and
	// stability (preserving extractor emission order among equal
	// priorities) matters more than asymptotic speed here.
	for i := 1; i < len(requests); i++ {
		j := i
		for j > 0 && requests[j-1].Priority < requests[j].Priority {
			requests[j-1], requests[j] = requests[j], requests[j-1]
			j--
		}
	}
}

// subAttempts builds the ordered list of
// progressively broader class names to try for one request.
func subAttempts(req event.ClassImportRequest) []string {
	if req.ExactOnly {
		return []string{req.ClassName}
	}
	segments := strings.Split(req.ClassName, ".")
	attempts := make([]string, 0, len(segments))
	for i := len(segments); i >= 1; i-- {
		attempts = append(attempts, strings.Join(segments[:i], "."))
	}
	return attempts
}
