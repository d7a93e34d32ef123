package indexer

import (
	"bytes"
	"context"
	"os/exec"

	"golang.org/x/xerrors"
)

// BuilderRunner invokes the builder subprocess for one query or compile
// call and returns its captured stdout. Both the production
// implementation (below) and tests substitute this, the same way
// internal/driver substitutes event.Source for the build-event
// transport.
type BuilderRunner interface {
	Run(ctx context.Context, args []string) ([]byte, error)
}

// ExecBuilderRunner shells out to the real builder binary.
type ExecBuilderRunner struct {
	BuilderPath string
}

func (r ExecBuilderRunner) Run(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.BuilderPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, xerrors.Errorf("%s %v: %w (stderr: %s)", r.BuilderPath, args, err, stderr.String())
	}
	return stdout.Bytes(), nil
}
