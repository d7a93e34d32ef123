// Command depfix wraps a JVM monorepo build, auto-repairing missing
// BUILD-file dependencies it observes through the build-event stream
// and retrying, up to a fixed number of iterations.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/distr1/depfix"
	"github.com/distr1/depfix/internal/config"
	"github.com/distr1/depfix/internal/driver"
	"github.com/distr1/depfix/internal/editor"
	"github.com/distr1/depfix/internal/index"
	"github.com/distr1/depfix/internal/repair"
)

var (
	debug         = flag.Bool("debug", false, "enable debug mode: format error messages with additional detail")
	bindAddress   = flag.String("bind_address", "", "host:port the build-event listener binds to (default: $BIND_ADDRESS or a random port)")
	indexPath     = flag.String("index_file", "", "path to the class->target index table (required)")
	buildozerPath = flag.String("buildozer", "buildozer", "path to the buildozer-compatible BUILD file editor")
	workspaceRoot = flag.String("workspace_root", ".", "root directory BUILD-file existence checks are resolved against")
	maxIterations = flag.Int("max_iterations", driver.DefaultMaxIterations, "cap on outer repair/retry iterations")
)

func funcmain() error {
	flag.Parse()

	if *indexPath == "" {
		return fmt.Errorf("-index_file is required")
	}
	argv := flag.Args()
	if len(argv) == 0 {
		return fmt.Errorf("syntax: depfix [options] <builder> <build|test> [args...]")
	}

	table, err := index.Load(*indexPath)
	if err != nil {
		return fmt.Errorf("loading index table: %w", err)
	}

	d := driver.New(driver.Options{
		BindAddress:   *bindAddress,
		Argv:          argv,
		MaxIterations: *maxIterations,
		Table:         table,
		Forbidden:     config.DefaultForbidden(),
		Editor:        editor.NewExecEditor(*buildozerPath),
		IsValid:       repair.NewFilesystemValidator(*workspaceRoot),
		SourceDir:     *workspaceRoot,
		Log:           log.New(os.Stderr, "depfix: ", log.LstdFlags),
	})

	// Interrupts are handled by the driver's own child-aware forwarder:
	// the builder child must receive the signal directly rather than
	// have a plain context canceled out from under it mid-iteration.
	exitCode, runErr := d.Run(context.Background())
	if atErr := depfix.RunAtExit(); atErr != nil && runErr == nil {
		runErr = atErr
	}
	if runErr != nil {
		if *debug {
			return fmt.Errorf("%+v", runErr)
		}
		return runErr
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

func main() {
	if err := funcmain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
