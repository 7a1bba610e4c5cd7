package schema

import (
	"maps"
	"strings"
)

// setPath stores value at a dotted path in data. Nested maps on the way are
// copied before they are written, so maps shared with the caller's record
// are never modified. A non-map value on the way leaves data unchanged.
func setPath(data map[string]any, path string, value any) {
	segs := strings.Split(path, ".")
	cur := data
	for _, seg := range segs[:len(segs)-1] {
		var next map[string]any
		switch existing := cur[seg].(type) {
		case map[string]any:
			next = maps.Clone(existing)
		case nil:
			next = make(map[string]any)
		default:
			return
		}
		cur[seg] = next
		cur = next
	}
	cur[segs[len(segs)-1]] = value
}
