package ttlcache

import (
	"fmt"
	"strings"
)

// Key builds a deterministic cache key from an operation name and its
// arguments, e.g. Key("latest", 5) == "latest(5)".
//
// Arguments are rendered with %#v so values of different types or string
// arguments containing separators do not collide: Key("op", "1") is
// `op("1")` while Key("op", 1) is `op(1)`.
func Key(op string, args ...any) string {
	var b strings.Builder
	b.WriteString(op)
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%#v", arg)
	}
	b.WriteByte(')')
	return b.String()
}
