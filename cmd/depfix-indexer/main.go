// Command depfix-indexer populates the class->target index table that
// depfix's resolver consults, by querying and compiling a monorepo
// offline and inverting the class names its JVM targets produce.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/distr1/depfix/internal/indexer"
)

var (
	builderPath   = flag.String("builder", "bazel", "path to the builder binary")
	workspaceName = flag.String("workspace_name", "", "this workspace's own name, excluded from external-root enumeration")
	output        = flag.String("output", "", "path to write the index file to (required)")
	blacklistFlag = flag.String("blacklist", "", "comma-separated extra target-root patterns to exclude")
	ruleKindsFlag = flag.String("rule_kinds", "", "comma-separated rule kinds to index (default: built-in JVM library kinds)")
)

func funcmain() error {
	flag.Parse()

	if *output == "" {
		return fmt.Errorf("-output is required")
	}

	opts := indexer.Options{
		Runner:        indexer.ExecBuilderRunner{BuilderPath: *builderPath},
		WorkspaceName: *workspaceName,
		OutputPath:    *output,
		Log:           log.New(os.Stderr, "depfix-indexer: ", log.LstdFlags),
	}
	if *blacklistFlag != "" {
		opts.ExtraBlacklist = strings.Split(*blacklistFlag, ",")
	}
	if *ruleKindsFlag != "" {
		opts.RuleKinds = strings.Split(*ruleKindsFlag, ",")
	}

	return indexer.Run(context.Background(), opts)
}

func main() {
	if err := funcmain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
