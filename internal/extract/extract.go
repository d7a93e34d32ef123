// Package extract implements the error extractors: for an
// ActionFailed whose output files are readable file:// URIs, read them
// and produce ClassImportRequests. Dispatch is a static table keyed by
// target-kind family — a closed set, no runtime subtyping.
package extract

import (
	"io/ioutil"
	"log"
	"strings"

	"github.com/distr1/depfix/internal/event"
)

// Family is one target-kind family's extraction function. input is the
// text of one output file (e.g. stdout or stderr) of a failed action;
// Extract calls the family once per readable output file.
type Family func(input string, sourceDir string, cache *importCache) []event.ClassImportRequest

// dispatch maps a target_kind to the family that knows how to read its
// compiler diagnostics. Unrecognized kinds simply yield no requests.
var dispatch = map[string]Family{
	"scala_library": extractScala,
	"scala_test":    extractScala,
	"scala_macro_library": extractScala,
	"java_library":  extractJava,
	"java_test":     extractJava,
	"java_binary":   extractJava,
}

// Extract reads info's output files (only file:// URIs are consulted;
// everything else is ignored) and returns the requests its target
// kind's family produces. Unreadable files are logged and skipped —
// they never abort extraction for sibling files.
func Extract(logger *log.Logger, info event.ErrorInfo, sourceDir string) []event.ClassImportRequest {
	family, ok := dispatch[info.TargetKind]
	if !ok {
		return nil
	}
	cache := newImportCache()
	var requests []event.ClassImportRequest
	for _, f := range info.OutputFiles {
		text, ok := readFile(logger, f)
		if !ok {
			continue
		}
		requests = append(requests, family(text, sourceDir, cache)...)
	}
	return requests
}

func readFile(logger *log.Logger, f event.File) (string, bool) {
	if f.HasData {
		return string(f.Inline), true
	}
	const scheme = "file://"
	if !strings.HasPrefix(f.URI, scheme) {
		return "", false
	}
	path := strings.TrimPrefix(f.URI, scheme)
	b, err := ioutil.ReadFile(path)
	if err != nil {
		if logger != nil {
			logger.Printf("extract: reading %s: %v", path, err)
		}
		return "", false
	}
	return string(b), true
}
