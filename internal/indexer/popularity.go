package indexer

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/graph/simple"
)

// Popularity implements step 4 of the indexer's protocol: a separate
// query pass over the full target graph, independent of the
// class-producing query, counting how many other targets depend on
// each target. The dependency edges are assembled into a gonum
// directed graph (graph/simple) and popularity is each target node's
// in-degree.
func Popularity(ctx context.Context, runner BuilderRunner, targets []string) (map[string]int, error) {
	g := simple.NewDirectedGraph()
	id := make(map[string]int64, len(targets))
	for i, t := range targets {
		nid := int64(i)
		id[t] = nid
		g.AddNode(popularityNode{id: nid})
	}

	for _, t := range targets {
		out, err := runner.Run(ctx, []string{"query", "rdeps(//..., " + t + ", 1)", "--output=label"})
		if err != nil {
			return nil, xerrors.Errorf("rdeps query for %s: %w", t, err)
		}
		for _, dependent := range parseLabelLines(out) {
			if dependent == t {
				continue
			}
			fromID, ok := id[dependent]
			if !ok {
				// A dependent outside the indexed target set still counts;
				// it gets a node of its own.
				fromID = int64(len(id))
				id[dependent] = fromID
				g.AddNode(popularityNode{id: fromID})
			}
			toID := id[t]
			if g.HasEdgeFromTo(fromID, toID) {
				continue
			}
			g.SetEdge(simple.Edge{F: popularityNode{id: fromID}, T: popularityNode{id: toID}})
		}
	}

	popularity := make(map[string]int, len(targets))
	for _, t := range targets {
		popularity[t] = g.To(id[t]).Len()
	}
	return popularity, nil
}

type popularityNode struct{ id int64 }

func (n popularityNode) ID() int64 { return n.id }

func parseLabelLines(out []byte) []string {
	var labels []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			labels = append(labels, line)
		}
	}
	return labels
}
