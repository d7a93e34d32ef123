package repair

import (
	"os"
	"path/filepath"
	"strings"
)

// NewFilesystemValidator returns an IsPotentiallyValidTarget grounded on
// root: a "//"-prefixed label is potentially valid only if its package
// directory (the portion before ':', or the whole label if there is no
// ':') contains a BUILD file; anything else (external-repo labels like
// "@foo//...", or the empty-looking local path) can't be checked
// locally and is assumed valid.
func NewFilesystemValidator(root string) IsPotentiallyValidTarget {
	return func(label string) bool {
		if !strings.HasPrefix(label, "//") {
			return true
		}
		pkg := strings.TrimPrefix(label, "//")
		if i := strings.IndexByte(pkg, ':'); i >= 0 {
			pkg = pkg[:i]
		}
		for _, name := range []string{"BUILD", "BUILD.bazel"} {
			if _, err := os.Stat(filepath.Join(root, pkg, name)); err == nil {
				return true
			}
		}
		return false
	}
}
