// Package indexer implements the offline Indexer: it queries the
// builder for every JVM target's output archives, extracts the class
// names each one provides, ranks candidate targets by how many other
// targets depend on them, and writes the resulting class->target Index
// Table that the online resolver consumes.
package indexer

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/distr1/depfix/internal/index"
)

// DefaultJVMRuleKinds are the rule kinds the indexer queries for and
// whose compiled archives it opens.
var DefaultJVMRuleKinds = []string{
	"scala_library",
	"scala_macro_library",
	"java_library",
}

// QueryBatchSize bounds how many kind() expressions are unioned into a
// single query invocation, and CompileBatchSize how many labels go into
// a single build invocation, to stay under argv limits.
const (
	QueryBatchSize   = 2000
	CompileBatchSize = 1000
)

// Options configures one indexing run.
type Options struct {
	Runner         BuilderRunner
	WorkspaceName  string
	ExtraBlacklist []string
	RuleKinds      []string
	OutputPath     string
	Log            *log.Logger
}

// Run executes the indexer's full protocol and writes the index file
// at opts.OutputPath.
func Run(ctx context.Context, opts Options) error {
	if opts.RuleKinds == nil {
		opts.RuleKinds = DefaultJVMRuleKinds
	}
	if opts.Log == nil {
		opts.Log = log.New(log.Writer(), "indexer: ", log.LstdFlags)
	}

	roots, err := Roots(ctx, opts.Runner, opts.WorkspaceName, opts.ExtraBlacklist)
	if err != nil {
		return xerrors.Errorf("enumerating roots: %w", err)
	}
	opts.Log.Printf("indexer: %d target roots", len(roots))

	labels, err := QueryKinds(ctx, opts.Runner, opts.RuleKinds, roots)
	if err != nil {
		return xerrors.Errorf("querying target kinds: %w", err)
	}
	opts.Log.Printf("indexer: %d candidate targets", len(labels))
	if len(labels) == 0 {
		return xerrors.New("no targets found for the configured rule kinds")
	}

	completes, err := Compile(ctx, opts.Runner, labels)
	if err != nil {
		return xerrors.Errorf("compiling targets: %w", err)
	}

	classesByTarget := make(map[string][]string, len(completes))
	var eg errgroup.Group
	var mu sync.Mutex
	for _, tc := range completes {
		tc := tc
		eg.Go(func() error {
			classes, err := ClassesForTarget(tc)
			if err != nil {
				opts.Log.Printf("indexer: extracting classes for %s: %v", tc.Label, err)
				return nil
			}
			mu.Lock()
			classesByTarget[string(tc.Label)] = classes
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	targets := make([]string, 0, len(classesByTarget))
	for t := range classesByTarget {
		targets = append(targets, t)
	}
	popularity, err := Popularity(ctx, opts.Runner, targets)
	if err != nil {
		return xerrors.Errorf("computing target popularity: %w", err)
	}

	table := Invert(classesByTarget, popularity)
	if err := index.Write(opts.OutputPath, table); err != nil {
		return xerrors.Errorf("writing index file: %w", err)
	}
	return nil
}
