// Package driver implements the outer retry loop: it runs the builder
// as a child process with event-reporting flags injected, drives one
// pipeline (hydrate -> extract -> resolve -> repair) per iteration to
// quiescence, and retries up to a fixed iteration cap.
package driver

import (
	"bufio"
	"context"
	"io"
	"log"
	"net"
	"os"
	"os/exec"
	"sync"

	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/distr1/depfix"
	"github.com/distr1/depfix/internal/editor"
	"github.com/distr1/depfix/internal/event"
	"github.com/distr1/depfix/internal/extract"
	"github.com/distr1/depfix/internal/index"
	"github.com/distr1/depfix/internal/repair"
	"github.com/distr1/depfix/internal/resolve"
)

// DefaultMaxIterations is the outer retry cap.
const DefaultMaxIterations = 15

// Options configures one depfix run.
type Options struct {
	// BindAddress is the -bind_address flag value, empty if unset.
	BindAddress string
	// Argv is the trailing variadic builder invocation, e.g.
	// ["bazel", "build", "//..."].
	Argv []string
	// MaxIterations caps the outer retry loop; 0 means
	// DefaultMaxIterations.
	MaxIterations int

	Table     *index.Table
	Forbidden resolve.Forbidden
	Editor    editor.Editor
	IsValid   repair.IsPotentiallyValidTarget

	// SourceDir is the workspace root the Java extractor resolves
	// relative source-file paths named in diagnostics against.
	SourceDir string

	Log *log.Logger
}

// Driver is the Outer Driver.
type Driver struct {
	opts       Options
	seen       *repair.PreviousSeen
	interrupts *interruptForwarder
}

func New(opts Options) *Driver {
	if opts.MaxIterations == 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.Log == nil {
		opts.Log = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &Driver{
		opts:       opts,
		seen:       repair.NewPreviousSeen(),
		interrupts: newInterruptForwarder(),
	}
}

// iterationResult is one builder invocation's outcome.
type iterationResult struct {
	actionsCompleted int
	exitCode         int
}

// Run executes the retry loop and returns the final builder exit code.
// It stops early when exit_code == 0 or actions_completed == 0, and
// otherwise runs until the iteration cap is reached.
func (d *Driver) Run(ctx context.Context) (int, error) {
	addr := pickBindAddress(d.opts.BindAddress)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return 0, xerrors.Errorf("binding build-event listener on %s: %w", addr, err)
	}
	depfix.RegisterAtExit(ln.Close)

	lastExit := 0
	for iter := 0; iter < d.opts.MaxIterations; iter++ {
		res, err := d.runIteration(ctx, ln, addr)
		if err != nil {
			return 0, xerrors.Errorf("iteration %d: %w", iter, err)
		}
		lastExit = res.exitCode
		d.opts.Log.Printf("depfix: iteration %d: exit=%d actions_completed=%d", iter, res.exitCode, res.actionsCompleted)
		if res.exitCode == 0 || res.actionsCompleted == 0 {
			break
		}
	}
	return lastExit, nil
}

func (d *Driver) runIteration(ctx context.Context, ln net.Listener, addr string) (iterationResult, error) {
	argv := injectEventFlags(d.opts.Argv, addr)
	if len(argv) == 0 {
		return iterationResult{}, xerrors.New("empty builder argv")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stdoutR, stdoutW := io.Pipe()
	stderrR, stderrW := io.Pipe()
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	if err := cmd.Start(); err != nil {
		return iterationResult{}, xerrors.Errorf("spawning builder: %w", err)
	}
	d.interrupts.setChild(cmd.Process.Pid)
	defer d.interrupts.clearChild()

	src := newListenerSource(ln, d.opts.Log)

	var eg errgroup.Group
	eg.Go(func() error {
		passthrough(stdoutR, os.Stdout)
		return nil
	})
	eg.Go(func() error {
		passthrough(stderrR, os.Stderr)
		return nil
	})

	actionsCompleted := 0
	eg.Go(func() error {
		n, err := d.drain(ctx, src)
		actionsCompleted = n
		return err
	})

	waitErr := cmd.Wait()
	stdoutW.Close()
	stderrW.Close()
	_ = eg.Wait()

	exitCode := 0
	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return iterationResult{}, xerrors.Errorf("waiting for builder: %w", waitErr)
		}
	}
	return iterationResult{actionsCompleted: actionsCompleted, exitCode: exitCode}, nil
}

// drain runs one iteration's pipeline (hydrate -> extract -> repair) to
// quiescence and returns the total actions_completed.
func (d *Driver) drain(ctx context.Context, src event.Source) (int, error) {
	infoCh := make(chan event.ErrorInfo, 256)
	go event.Run(ctx, src.Events(), infoCh)

	total := 0
	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)
	for info := range infoCh {
		info := info
		if info.Kind != event.KindActionFailed {
			continue
		}
		eg.Go(func() error {
			requests := extract.Extract(d.opts.Log, info, d.opts.SourceDir)
			if len(requests) == 0 {
				return nil
			}
			p := &repair.Planner{
				Table:     d.opts.Table,
				Forbidden: d.opts.Forbidden,
				Editor:    d.opts.Editor,
				Seen:      d.seen,
				IsValid:   d.opts.IsValid,
				Log:       d.opts.Log,
			}
			n, err := p.Plan(egCtx, info, requests)
			if err != nil {
				return err
			}
			mu.Lock()
			total += n
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return total, err
	}
	return total, nil
}

// injectEventFlags inserts the build-event reporting flags immediately
// after the first recognized subcommand.
func injectEventFlags(argv []string, addr string) []string {
	flags := []string{
		"--build_event_publish_all_actions",
		"--color", "yes",
		"--bes_backend", "grpc://" + addr,
	}
	out := make([]string, 0, len(argv)+len(flags))
	inserted := false
	for _, a := range argv {
		out = append(out, a)
		if !inserted && (a == "build" || a == "test") {
			out = append(out, flags...)
			inserted = true
		}
	}
	return out
}

func passthrough(r io.Reader, w io.Writer) {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		io.Copy(w, r)
		return
	}
	// Piped/non-interactive: pass through line-buffered so output from
	// concurrent stdout/stderr copies doesn't interleave mid-line.
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		io.WriteString(w, scanner.Text()+"\n")
	}
}
