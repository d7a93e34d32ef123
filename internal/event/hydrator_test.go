package event

import (
	"testing"

	"github.com/distr1/depfix"
)

func TestHydratorAnnotatesTargetKind(t *testing.T) {
	h := NewHydrator()

	out, done := h.Hydrate(Raw{TargetConfigured: &TargetConfigured{
		Label:    depfix.Label("//foo/bar:baz"),
		RuleKind: "scala_library",
	}})
	if done || len(out) != 0 {
		t.Fatalf("TargetConfigured should not emit ErrorInfo, got %v done=%v", out, done)
	}

	out, _ = h.Hydrate(Raw{ActionCompleted: &ActionCompleted{
		Label:   depfix.Label("//foo/bar:baz"),
		Success: false,
		Stdout:  &File{URI: "file:///tmp/out.log"},
	}})
	if len(out) != 1 {
		t.Fatalf("expected one ErrorInfo, got %d", len(out))
	}
	if out[0].TargetKind != "scala_library" {
		t.Fatalf("TargetKind = %q, want scala_library", out[0].TargetKind)
	}
	if len(out[0].OutputFiles) != 1 {
		t.Fatalf("expected 1 output file, got %d", len(out[0].OutputFiles))
	}
}

func TestHydratorSuccessfulActionEmitsNothing(t *testing.T) {
	h := NewHydrator()
	out, _ := h.Hydrate(Raw{ActionCompleted: &ActionCompleted{
		Label:   depfix.Label("//foo:bar"),
		Success: true,
	}})
	if len(out) != 0 {
		t.Fatalf("successful action should emit nothing, got %v", out)
	}
}

func TestHydratorResetsOnBuildCompleted(t *testing.T) {
	h := NewHydrator()
	h.Hydrate(Raw{TargetConfigured: &TargetConfigured{
		Label:    depfix.Label("//foo:bar"),
		RuleKind: "java_library",
	}})

	_, done := h.Hydrate(Raw{BuildCompleted: true})
	if !done {
		t.Fatalf("BuildCompleted should signal done")
	}

	out, _ := h.Hydrate(Raw{ActionCompleted: &ActionCompleted{
		Label:   depfix.Label("//foo:bar"),
		Success: false,
	}})
	if len(out) != 1 {
		t.Fatalf("expected one ErrorInfo, got %d", len(out))
	}
	if out[0].TargetKind != "" {
		t.Fatalf("TargetKind after reset = %q, want empty", out[0].TargetKind)
	}
}

func TestHydratorUnknownLabelActionCompletedHasEmptyKind(t *testing.T) {
	h := NewHydrator()
	out, _ := h.Hydrate(Raw{ActionCompleted: &ActionCompleted{
		Label:   depfix.Label("//never/configured:x"),
		Success: false,
	}})
	if len(out) != 1 || out[0].TargetKind != "" {
		t.Fatalf("got %+v, want single ErrorInfo with empty TargetKind", out)
	}
}

func TestHydratorTargetCompleteRequiresKnownKind(t *testing.T) {
	h := NewHydrator()
	out, _ := h.Hydrate(Raw{TargetComplete: &TargetComplete{
		Label: depfix.Label("//never/configured:x"),
	}})
	if len(out) != 0 {
		t.Fatalf("TargetComplete for unconfigured label should emit nothing, got %v", out)
	}

	h.Hydrate(Raw{TargetConfigured: &TargetConfigured{
		Label:    depfix.Label("//foo:bar"),
		RuleKind: "java_library",
	}})
	out, _ = h.Hydrate(Raw{TargetComplete: &TargetComplete{
		Label: depfix.Label("//foo:bar"),
	}})
	if len(out) != 1 || out[0].TargetKind != "java_library" {
		t.Fatalf("got %+v, want single ErrorInfo with kind java_library", out)
	}
}
