package extract

import (
	"regexp"

	"github.com/distr1/depfix/internal/event"
)

// The six scalac diagnostic families the JVM-source-A extractor
// recognizes. Each operates line-by-line over the text of one of the
// action's output files.
var (
	reNotAMemberOfPackage = regexp.MustCompile(`\.scala.*error: \w+ (\S+) is not a member of package \S+`)
	reObjectNotFound      = regexp.MustCompile(`\.scala.*error: not found: object (\S+)`)
	reTypeNotFound        = regexp.MustCompile(`\.scala.*error: not found: type (\S+)`)
	reValueNotFound       = regexp.MustCompile(`\.scala.*error: not found: value (\S+)`)
	reSymbolMissing       = regexp.MustCompile(`\.scala.*error: Symbol 'type (\S+)' is missing from the classpath\.`)
	reSymbolTypeMissing   = regexp.MustCompile(`\.scala.*error: Symbol 'type (\S+)' is missing from the classpath\.`)
)

type scalaFamily struct {
	re       *regexp.Regexp
	srcFn    event.SrcFn
	priority int
}

var scalaFamilies = []scalaFamily{
	{reNotAMemberOfPackage, "scala.not_a_member_of_package", 1},
	{reObjectNotFound, "scala.object_not_found", 1},
	{reTypeNotFound, "scala.type_not_found", 1},
	{reValueNotFound, "scala.value_not_found", 1},
	{reSymbolMissing, "scala.symbol_missing_from_classpath", 1},
	{reSymbolTypeMissing, "scala.symbol_type_missing_from_classpath", 1},
}

func extractScala(input string, _ string, _ *importCache) []event.ClassImportRequest {
	var requests []event.ClassImportRequest
	for _, line := range splitLines(input) {
		for _, fam := range scalaFamilies {
			m := fam.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			requests = append(requests, event.ClassImportRequest{
				ClassName: m[1],
				ExactOnly: false,
				SrcFn:     fam.srcFn,
				Priority:  fam.priority,
			})
		}
	}
	return requests
}
