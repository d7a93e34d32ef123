package editor

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"golang.org/x/xerrors"
)

// ExecEditor shells out to an external BUILD-file editor binary (e.g. a
// buildozer-compatible tool) found on $PATH. It is the production
// implementation of Editor; tests use a fake in-memory Editor instead.
type ExecEditor struct {
	// Path is the editor binary, e.g. "buildozer".
	Path string
}

func NewExecEditor(path string) *ExecEditor {
	return &ExecEditor{Path: path}
}

func (e *ExecEditor) PrintDeps(ctx context.Context, label string) ([]string, error) {
	cmd := exec.CommandContext(ctx, e.Path, "print deps", label)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, xerrors.Errorf("%v: %w", cmd.Args, err)
	}
	fields := strings.Fields(stdout.String())
	return fields, nil
}

func (e *ExecEditor) AddDependency(ctx context.Context, target, dep string) error {
	cmd := exec.CommandContext(ctx, e.Path, "add deps "+dep, target)
	if err := cmd.Run(); err != nil {
		return xerrors.Errorf("%v: %w", cmd.Args, err)
	}
	return nil
}
