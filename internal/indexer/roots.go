package indexer

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"golang.org/x/xerrors"
)

// DefaultBlacklistPatterns are workspace-root expressions that are
// never indexed regardless of caller configuration: the current
// workspace's own root is covered separately by excluding its name.
var DefaultBlacklistPatterns = []string{
	"@local_jdk//...",
	"@bazel_tools//...",
}

// Roots implements step 1 of the indexer's protocol: list every
// external workspace root known to the builder, union it with the
// local "//..." root, and drop anything matching workspaceName (the
// current workspace, queried by its own name) or extraBlacklist.
func Roots(ctx context.Context, runner BuilderRunner, workspaceName string, extraBlacklist []string) ([]string, error) {
	out, err := runner.Run(ctx, []string{"query", "//external:*", "--output=label"})
	if err != nil {
		return nil, xerrors.Errorf("querying external workspace roots: %w", err)
	}

	blacklisted := make(map[string]bool, len(extraBlacklist)+len(DefaultBlacklistPatterns))
	for _, b := range DefaultBlacklistPatterns {
		blacklisted[b] = true
	}
	for _, b := range extraBlacklist {
		blacklisted[b] = true
	}

	roots := []string{"//..."}
	seen := map[string]bool{"//...": true}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		name := externalWorkspaceName(line)
		if name == "" || name == workspaceName {
			continue
		}
		root := "@" + name + "//..."
		if blacklisted[root] || seen[root] {
			continue
		}
		seen[root] = true
		roots = append(roots, root)
	}
	return roots, nil
}

// externalWorkspaceName extracts "name" from a "//external:name" label
// line, or "" if the line isn't shaped that way.
func externalWorkspaceName(line string) string {
	const prefix = "//external:"
	if !strings.HasPrefix(line, prefix) {
		return ""
	}
	return strings.TrimPrefix(line, prefix)
}
