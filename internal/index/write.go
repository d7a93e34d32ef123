package index

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/renameio"
	"golang.org/x/xerrors"
)

// Write persists t to path atomically (via a temp file + rename, using
// the same renameio discipline used for every durable
// write), records sorted by class name ascending as specified.
func Write(path string, t *Table) error {
	var b strings.Builder
	for _, class := range t.Classes() {
		entries, _ := t.Get(class)
		if len(entries) == 0 {
			continue
		}
		b.WriteString(class)
		b.WriteByte('\t')
		for i, e := range entries {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatUint(uint64(e.Freq), 10))
			b.WriteByte(':')
			b.WriteString(e.Label)
		}
		b.WriteByte('\n')
	}
	if err := renameio.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return xerrors.Errorf("writing index file %s: %w", path, err)
	}
	return nil
}

// line renders a single record, exposed for tests that want to
// round-trip one entry without writing a file.
func line(class string, entries []Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%d:%s", e.Freq, e.Label)
	}
	return class + "\t" + strings.Join(parts, ",")
}
