package indexer

import (
	"github.com/distr1/depfix/internal/index"
)

// Invert implements step 5 of the indexer's protocol: for each class c
// in target t's extracted class list, append (popularity(t), t) to
// reverse[c], producing the table the resolver loads. index.FromMap
// sorts each class's entries descending by popularity.
func Invert(classesByTarget map[string][]string, popularity map[string]int) *index.Table {
	reverse := make(map[string][]index.Entry)
	for target, classes := range classesByTarget {
		freq := popularity[target]
		if freq < 0 {
			freq = 0
		}
		if freq > 65535 {
			freq = 65535
		}
		for _, class := range classes {
			reverse[class] = append(reverse[class], index.Entry{Freq: uint16(freq), Label: target})
		}
	}
	return index.FromMap(reverse)
}
