// Package editor defines the external BUILD-file editor collaborator:
// the one side effect the repair planner is allowed to perform. depfix
// never edits source or BUILD files itself.
package editor

import "context"

// Editor is the interface the repair planner consults. Errors from
// PrintDeps are fatal for the current failure only (best-effort ignore
// set); errors from AddDependency are a per-candidate skip.
type Editor interface {
	// PrintDeps returns the labels the given target already depends on,
	// as the editor prints them; the planner sanitizes them itself.
	PrintDeps(ctx context.Context, label string) ([]string, error)

	// AddDependency adds dep as a dependency of target, editing the
	// BUILD file on disk.
	AddDependency(ctx context.Context, target, dep string) error
}
