// Package vocab maps indicator keys to the keyword expansions used when
// retrieving indicator documentation. Keys track the engine's indicator
// vocabulary plus the framework name itself; deployments can merge extra
// entries from a YAML overrides file.
package vocab

import (
	"sort"

	"github.com/lumir-ai/tbi-engine/internal/tbi"
)

// Entry is one vocabulary record.
type Entry struct {
	Key      string   `json:"key"`
	Keywords []string `json:"keywords"`
}

// keywords lists the search expansions per key. Every registered indicator
// resolves to at least its key and display label.
var keywords = map[string][]string{
	"TBI": {"TBI", "Trading Behavior Index", "Trading Behavior Intelligence"},
	"PPA": {"PPA", "Path Potential Alignment", "Personal Psychological Assessment"},
}

// Lookup resolves keys to their keyword expansions, in input order. Unknown
// keys are returned separately rather than failing the whole lookup.
func Lookup(keys []string) (found []Entry, unknown []string) {
	for _, key := range keys {
		if kw, ok := keywords[key]; ok {
			found = append(found, Entry{Key: key, Keywords: kw})
			continue
		}
		if ind, err := tbi.Lookup(key); err == nil {
			found = append(found, Entry{Key: key, Keywords: []string{ind.Key, ind.Label}})
			continue
		}
		unknown = append(unknown, key)
	}
	return found, unknown
}

// Keys lists every resolvable vocabulary key: table entries that are not
// indicators, sorted, followed by the indicator registry in declaration
// order.
func Keys() []string {
	registered := make(map[string]bool)
	for _, key := range tbi.Keys() {
		registered[key] = true
	}

	var extras []string
	for key := range keywords {
		if !registered[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)

	return append(extras, tbi.Keys()...)
}
