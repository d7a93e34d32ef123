package indexer

import (
	"context"
	"encoding/json"
	"strings"

	"golang.org/x/xerrors"

	"github.com/distr1/depfix/internal/event"
)

// TargetComplete pairs a compiled label with the output files the
// builder reported for it. Only the labels Compile was given are built
// (Run takes them from QueryKinds, so from the configured rule kinds);
// the event's own target kind is not checked.
type TargetComplete struct {
	Label       string
	OutputFiles []event.File
}

// Compile implements step 3 of the indexer's protocol: compile the
// collected labels in batches of at most CompileBatchSize, and collect
// the output files of each resulting TargetComplete event (only their
// file:// URIs are read later, by ClassesForTarget).
//
// The builder is invoked once per batch with
// --build_event_json_file=/dev/stdout, so it writes its build events to
// stdout, and that stream is decoded the same newline-delimited-JSON way
// internal/driver's listener does, since both sit downstream of the
// same abstract, already-decoded event.Source boundary.
func Compile(ctx context.Context, runner BuilderRunner, labels []string) ([]TargetComplete, error) {
	var completes []TargetComplete
	for _, batch := range batchStrings(labels, CompileBatchSize) {
		out, err := runner.Run(ctx, append([]string{"build", "--build_event_json_file=/dev/stdout"}, batch...))
		if err != nil {
			return nil, xerrors.Errorf("batched compile: %w", err)
		}
		tcs, err := parseTargetCompletes(out)
		if err != nil {
			return nil, err
		}
		completes = append(completes, tcs...)
	}
	return completes, nil
}

func parseTargetCompletes(out []byte) ([]TargetComplete, error) {
	var completes []TargetComplete
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var raw event.Raw
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			continue // tolerate interleaved non-event stdout lines
		}
		if raw.TargetComplete == nil {
			continue
		}
		tc := raw.TargetComplete
		completes = append(completes, TargetComplete{
			Label:       string(tc.Label),
			OutputFiles: tc.OutputFiles,
		})
	}
	return completes, nil
}
