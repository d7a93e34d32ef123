package extract

import (
	"io/ioutil"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/distr1/depfix/internal/event"
)

var (
	rePackageDoesNotExist = regexp.MustCompile(`(\S+\.java).*error: package (\S+) does not exist`)
	reCannotFindSymbol    = regexp.MustCompile(`^(\S+\.java):(\d+):.*error: cannot find symbol\s*$`)
	reImportLine          = regexp.MustCompile(`^\s*import\s+(?:static\s+)?([\w.]+?)(\.\*)?\s*;`)
)

type importInfo struct {
	prefix    string // fully-qualified import target, without trailing ".*"
	wildcard  bool
}

// importCache is a side-effect-free, per-failure cache of parsed import
// statements keyed by source file path, so a file referenced by
// multiple diagnostics (or multiple output files of the same failure)
// is only ever parsed once.
type importCache struct {
	byFile map[string]map[int]importInfo // file -> line number -> import
}

func newImportCache() *importCache {
	return &importCache{byFile: make(map[string]map[int]importInfo)}
}

func (c *importCache) imports(path string) map[int]importInfo {
	if m, ok := c.byFile[path]; ok {
		return m
	}
	m := make(map[int]importInfo)
	b, err := ioutil.ReadFile(path)
	if err == nil {
		for i, line := range splitLines(string(b)) {
			match := reImportLine.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			m[i+1] = importInfo{prefix: match[1], wildcard: match[2] != ""}
		}
	}
	c.byFile[path] = m
	return m
}

// wildcardPrefixes returns every wildcard import's package prefix in path.
func (c *importCache) wildcardPrefixes(path string) []string {
	var out []string
	for _, imp := range c.imports(path) {
		if imp.wildcard {
			out = append(out, imp.prefix)
		}
	}
	return out
}

type javaRequest struct {
	req        event.ClassImportRequest
	sourceFile string
}

func extractJava(input string, sourceDir string, cache *importCache) []event.ClassImportRequest {
	// Relative source paths in diagnostics are resolved against sourceDir.
	sourcePath := func(p string) string {
		if sourceDir == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(sourceDir, p)
	}

	var collected []javaRequest

	for _, line := range splitLines(input) {
		if m := rePackageDoesNotExist.FindStringSubmatch(line); m != nil {
			collected = append(collected, javaRequest{
				req: event.ClassImportRequest{
					ClassName: m[2],
					ExactOnly: false,
					SrcFn:     "java.package_does_not_exist",
					Priority:  1,
				},
				sourceFile: sourcePath(m[1]),
			})
		}
		if m := reCannotFindSymbol.FindStringSubmatch(line); m != nil {
			srcFile := sourcePath(m[1])
			lineNo, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			imp, ok := cache.imports(srcFile)[lineNo]
			if !ok {
				continue
			}
			collected = append(collected, javaRequest{
				req: event.ClassImportRequest{
					ClassName: imp.prefix,
					ExactOnly: false,
					SrcFn:     "java.cannot_find_symbol",
					Priority:  1,
				},
				sourceFile: srcFile,
			})
		}
	}

	var out []event.ClassImportRequest
	for _, jr := range collected {
		out = append(out, jr.req)
		if jr.sourceFile == "" {
			continue
		}
		for _, prefix := range cache.wildcardPrefixes(jr.sourceFile) {
			out = append(out, event.ClassImportRequest{
				ClassName: prefix + "." + jr.req.ClassName,
				ExactOnly: false,
				SrcFn:     jr.req.SrcFn,
				Priority:  jr.req.Priority,
			})
		}
	}
	return out
}
