// Package index implements the Index Table: the static class-name to
// ranked-target-list lookup the resolver consults. The persisted format
// is a line-oriented, tab-delimited text file; see Load and Write.
package index

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// Entry is one (frequency, target label) pair for a class.
type Entry struct {
	Freq  uint16
	Label string
}

// Table is a read-only, class-name keyed lookup of ranked target
// entries. The zero value is an empty table. Table is safe for
// concurrent reads once constructed; it is never mutated after Load or
// FromMap returns. cmd/depfix loads it once before the driver starts,
// and the driver shares that one pointer read-only with every planner.
type Table struct {
	byClass map[string][]Entry
}

// FromMap builds a Table directly, for tests. Each entry list is sorted
// descending by frequency, ties preserving the input order.
func FromMap(m map[string][]Entry) *Table {
	t := &Table{byClass: make(map[string][]Entry, len(m))}
	for class, entries := range m {
		cp := append([]Entry(nil), entries...)
		sortByFreqDesc(cp)
		t.byClass[class] = cp
	}
	return t
}

// Get returns the ranked entries for class, and whether any were found.
func (t *Table) Get(class string) ([]Entry, bool) {
	if t == nil {
		return nil, false
	}
	e, ok := t.byClass[class]
	return e, ok
}

// Load parses the persisted index file at path. Parsing is strict: any
// record whose frequency is not a non-negative 16-bit integer, or whose
// label contains ',', '\r', or '\n', is rejected and Load returns an
// error — the whole file is treated as fatally malformed.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("opening index file: %w", err)
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (*Table, error) {
	t := &Table{byClass: make(map[string][]Entry)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		class, rest, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, xerrors.Errorf("line %d: missing tab separator", lineNo)
		}
		if rest == "" {
			continue // lines with no entries are skipped
		}
		var entries []Entry
		for _, field := range strings.Split(rest, ",") {
			freqStr, label, ok := strings.Cut(field, ":")
			if !ok {
				return nil, xerrors.Errorf("line %d: malformed record %q", lineNo, field)
			}
			freq, err := strconv.ParseUint(freqStr, 10, 16)
			if err != nil {
				return nil, xerrors.Errorf("line %d: invalid frequency %q: %w", lineNo, freqStr, err)
			}
			if strings.ContainsAny(label, ",\r\n") {
				return nil, xerrors.Errorf("line %d: label %q contains a forbidden character", lineNo, label)
			}
			entries = append(entries, Entry{Freq: uint16(freq), Label: label})
		}
		sortByFreqDesc(entries)
		t.byClass[class] = entries
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Errorf("reading index file: %w", err)
	}
	return t, nil
}

func sortByFreqDesc(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Freq > entries[j].Freq
	})
}

// Classes returns the sorted list of class names in the table, for
// Write and for tests.
func (t *Table) Classes() []string {
	classes := make([]string, 0, len(t.byClass))
	for c := range t.byClass {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	return classes
}
