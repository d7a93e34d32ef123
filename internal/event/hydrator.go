package event

import "github.com/distr1/depfix"

// Hydrator buffers per-target context (rule kind) so that later failure
// events can be annotated with their target's kind. State is reset on
// every BuildCompleted, matching one builder invocation's lifetime.
//
// Hydrate is not safe for concurrent use; the event source delivers one
// Raw event at a time, in arrival order, and Hydrate must be called from
// a single goroutine (see internal/driver, which owns that goroutine).
type Hydrator struct {
	kinds map[depfix.Label]string
}

func NewHydrator() *Hydrator {
	return &Hydrator{kinds: make(map[depfix.Label]string)}
}

// Hydrate consumes one Raw event and returns the ErrorInfo values it
// produces (zero, one, or — for BuildCompleted — the sentinel signal via
// done=true) plus whether the caller should treat this as end-of-stream.
func (h *Hydrator) Hydrate(raw Raw) (out []ErrorInfo, done bool) {
	switch {
	case raw.TargetConfigured != nil:
		tc := raw.TargetConfigured
		h.kinds[depfix.Canonicalize(string(tc.Label))] = tc.RuleKind
		return nil, false

	case raw.ActionCompleted != nil:
		ac := raw.ActionCompleted
		if ac.Success {
			return nil, false
		}
		var files []File
		if ac.Stdout != nil {
			files = append(files, *ac.Stdout)
		}
		if ac.Stderr != nil {
			files = append(files, *ac.Stderr)
		}
		return []ErrorInfo{{
			Kind:        KindActionFailed,
			Label:       ac.Label,
			OutputFiles: files,
			TargetKind:  h.kinds[depfix.Canonicalize(string(ac.Label))],
		}}, false

	case raw.TestFailure != nil:
		tf := raw.TestFailure
		return []ErrorInfo{{
			Kind:        KindActionFailed,
			Label:       tf.Label,
			OutputFiles: tf.FailedFiles,
			TargetKind:  h.kinds[depfix.Canonicalize(string(tf.Label))],
		}}, false

	case raw.Aborted != nil:
		ab := raw.Aborted
		return []ErrorInfo{{
			Kind:          KindBazelAbort,
			Label:         ab.Label,
			AbortHasLabel: ab.HasLabel,
			AbortReason:   ab.Reason,
			Description:   ab.Description,
		}}, false

	case raw.Progress != nil:
		p := raw.Progress
		return []ErrorInfo{{
			Kind:   KindProgress,
			Stdout: p.Stdout,
			Stderr: p.Stderr,
		}}, false

	case raw.TargetComplete != nil:
		tcpl := raw.TargetComplete
		kind, known := h.kinds[depfix.Canonicalize(string(tcpl.Label))]
		if !known {
			return nil, false
		}
		return []ErrorInfo{{
			Kind:                KindTargetComplete,
			Label:               tcpl.Label,
			TargetKind:          kind,
			CompleteOutputFiles: tcpl.OutputFiles,
		}}, false

	case raw.BuildCompleted:
		h.kinds = make(map[depfix.Label]string)
		return nil, true

	default:
		// LifecycleEvent or an empty Raw: nothing to hydrate.
		return nil, false
	}
}
