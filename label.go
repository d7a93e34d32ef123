package depfix

import "strings"

// Label is a canonical build target identifier, e.g. "//src/main/java/com/x:y".
type Label string

// Canonicalize expands the shorthand form "//pkg/path" (no ":name") into
// its canonical "//pkg/path:name" form, where name is the last path
// segment. Labels that already carry a ":" are returned unchanged.
//
// Every label that crosses a package boundary in depfix is passed through
// Canonicalize first; see SanitizeLabel in internal/repair for the
// stronger form used on labels coming back from the external editor.
func Canonicalize(label string) Label {
	if strings.Contains(label, ":") {
		return Label(label)
	}
	trimmed := strings.TrimRight(label, "/")
	idx := strings.LastIndex(trimmed, "/")
	name := trimmed
	if idx >= 0 {
		name = trimmed[idx+1:]
	}
	return Label(trimmed + ":" + name)
}

func (l Label) String() string { return string(l) }
