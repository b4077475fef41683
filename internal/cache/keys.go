package cache

import (
	"fmt"
	"sort"
	"strings"
)

// Key builds a canonical cache key from the endpoint name, the store
// generation, and the query parameters. Parameters are emitted in sorted
// order so equivalent queries hit the same entry regardless of the order
// the client sent them in. The generation makes every entry from an older
// snapshot unreachable after a reload, with no explicit invalidation pass.
func Key(endpoint string, generation uint64, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%s|gen=%d", endpoint, generation)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%s", k, params[k])
	}
	return b.String()
}
