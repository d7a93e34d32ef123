package indexer

import (
	"bufio"
	"context"
	"strings"

	"github.com/orcaman/writerseeker"
	"golang.org/x/xerrors"
)

// QueryKinds implements step 2 of the indexer's protocol: for every
// configured rule kind, build a `kind(<kind>, <root>)` query over each
// root, batch the per-root union into groups of at most QueryBatchSize
// expressions to stay under argv limits, invoke the builder's query
// subcommand requesting label_kind output, and parse each result line
// as `<kind> <attr> <label>`.
func QueryKinds(ctx context.Context, runner BuilderRunner, kinds []string, roots []string) ([]string, error) {
	var exprs []string
	for _, kind := range kinds {
		for _, root := range roots {
			exprs = append(exprs, "kind("+kind+", "+root+")")
		}
	}

	var labels []string
	for _, batch := range batchStrings(exprs, QueryBatchSize) {
		query := strings.Join(batch, " union ")
		out, err := runner.Run(ctx, []string{"query", query, "--output=label_kind"})
		if err != nil {
			return nil, xerrors.Errorf("batched kind query: %w", err)
		}
		ls, err := parseLabelKindOutput(out)
		if err != nil {
			return nil, err
		}
		labels = append(labels, ls...)
	}
	return labels, nil
}

// parseLabelKindOutput parses `<kind> <attr> <label>` lines, buffering
// the builder's captured output through an in-memory seekable buffer so
// it can be scanned once here without the caller needing a temp file.
func parseLabelKindOutput(out []byte) ([]string, error) {
	var buf writerseeker.WriterSeeker
	if _, err := buf.Write(out); err != nil {
		return nil, xerrors.Errorf("buffering query output: %w", err)
	}

	var labels []string
	scanner := bufio.NewScanner(buf.Reader())
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		labels = append(labels, fields[len(fields)-1])
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Errorf("scanning query output: %w", err)
	}
	return labels, nil
}

// batchStrings splits items into consecutive groups of at most size.
func batchStrings(items []string, size int) [][]string {
	if len(items) == 0 {
		return nil
	}
	var out [][]string
	for len(items) > 0 {
		n := size
		if n > len(items) {
			n = len(items)
		}
		out = append(out, items[:n])
		items = items[n:]
	}
	return out
}
