// Package event defines the decoded build-event data model and the
// Hydrator that turns raw, per-event protocol messages into per-label
// ErrorInfo values annotated with the target's rule kind.
package event

import "github.com/distr1/depfix"

// File is a reference to an action's output, either inline bytes or a
// "file://" URI. Only URIs with that scheme are ever read by an
// extractor; anything else (e.g. http://, or a bare path with another
// scheme) is treated as opaque and ignored.
type File struct {
	URI     string
	Inline  []byte
	HasData bool // true if Inline should be preferred over reading URI
}

// AbortReason enumerates why the builder aborted a build outright,
// independent of any single target's failure.
type AbortReason int

const (
	AbortUnknown AbortReason = iota
	AbortUnknownCommand
	AbortUnresolvedDeps
	AbortLoadingFailure
	AbortAnalysisFailure
	AbortUserInterrupted
)

// Source is the decoded event stream the core consumes. Decoding the
// wire protocol itself (the build-event protocol transport) is an
// out-of-scope external collaborator; Source is the boundary depfix's
// core is built against.
type Source interface {
	// Events returns a channel of already-decoded events, closed once
	// the source is exhausted (e.g. the underlying connection closed).
	Events() <-chan Raw
}

// Raw is one of the event shapes the event source emits, in arrival
// order. Exactly one of the typed fields is non-nil per event.
type Raw struct {
	TargetConfigured *TargetConfigured
	ActionCompleted  *ActionCompleted
	TestFailure      *TestFailure
	Aborted          *Aborted
	Progress         *Progress
	TargetComplete   *TargetComplete
	BuildCompleted   bool
	LifecycleEvent   bool
}

type TargetConfigured struct {
	Label    depfix.Label
	RuleKind string
}

type ActionCompleted struct {
	Label   depfix.Label
	Success bool
	Stdout  *File
	Stderr  *File
}

type TestFailure struct {
	Label       depfix.Label
	FailedFiles []File
}

type Aborted struct {
	Label       depfix.Label // may be empty
	HasLabel    bool
	Reason      AbortReason
	Description string
}

type Progress struct {
	Stdout string
	Stderr string
}

type TargetComplete struct {
	Label       depfix.Label
	TargetKind  string
	OutputFiles []File
}

// ErrorInfo is the hydrated, per-event failure record the rest of the
// pipeline (extractors, resolver, planner) consumes. Kind says which
// variant it is; each variant sets only the fields it uses (BazelAbort
// and TargetComplete also reuse Label, and TargetComplete reuses
// TargetKind).
type Kind int

const (
	KindActionFailed Kind = iota
	KindBazelAbort
	KindProgress
	KindTargetComplete
)

type ErrorInfo struct {
	Kind Kind

	// ActionFailed
	Label       depfix.Label
	OutputFiles []File
	TargetKind  string // "" if unknown

	// BazelAbort
	AbortHasLabel bool
	AbortReason   AbortReason
	Description   string

	// Progress
	Stdout string
	Stderr string

	// TargetComplete (indexer only)
	CompleteOutputFiles []File
}

// SrcFn names the extractor family that produced a ClassImportRequest,
// e.g. "scala.object_not_found" or "java.package_does_not_exist".
type SrcFn string

// ClassImportRequest is a hypothesis, extracted from a diagnostic, that
// a specific class or package must be provided by some target.
type ClassImportRequest struct {
	ClassName string
	ExactOnly bool
	SrcFn     SrcFn
	Priority  int
}
