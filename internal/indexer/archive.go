package indexer

import (
	"archive/zip"
	"io"
	"strings"

	"golang.org/x/exp/mmap"
	"golang.org/x/xerrors"

	kpflate "github.com/klauspost/compress/flate"
)

func init() {
	// A faster inflate implementation for the many small .class entries
	// a typical jar/archive output contains.
	zip.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return kpflate.NewReader(r)
	})
}

// ClassesForTarget implements step 3's archive-reading half: for every
// file:// output of tc, open it as a zip archive (memory-mapped rather
// than fully read, since archives can be large and only the central
// directory plus a handful of small entries are actually touched) and
// extract one class name per ".class" entry.
func ClassesForTarget(tc TargetComplete) ([]string, error) {
	var classes []string
	for _, f := range tc.OutputFiles {
		const scheme = "file://"
		if !strings.HasPrefix(f.URI, scheme) {
			continue
		}
		path := strings.TrimPrefix(f.URI, scheme)
		cs, err := classesInArchive(path)
		if err != nil {
			return nil, xerrors.Errorf("reading archive %s: %w", path, err)
		}
		classes = append(classes, cs...)
	}
	return classes, nil
}

func classesInArchive(path string) ([]string, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer ra.Close()

	zr, err := zip.NewReader(ra, int64(ra.Len()))
	if err != nil {
		return nil, err
	}

	var classes []string
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, ".class") {
			continue
		}
		classes = append(classes, classNameFromEntry(f.Name))
	}
	return classes, nil
}

// classNameFromEntry turns an archive entry path like
// "com/example/Foo$Inner.class" into "com.example.Foo.Inner".
func classNameFromEntry(entry string) string {
	name := strings.TrimSuffix(entry, ".class")
	name = strings.ReplaceAll(name, "/", ".")
	name = strings.ReplaceAll(name, "$", ".")
	return strings.TrimSuffix(name, ".")
}
