package assets

import (
	"strconv"
	"strings"
	"unicode"
)

// sanitizeNodeName makes a name safe for "<node>.<property>" track names:
// whitespace becomes '_' and the characters []./: are dropped.
func sanitizeNodeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte('_')
		case strings.ContainsRune("[].:/", r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// nameRegistry hands out unique sanitized names within one asset.
type nameRegistry struct {
	used map[string]int
}

func newNameRegistry() *nameRegistry {
	return &nameRegistry{used: make(map[string]int)}
}

// unique returns the sanitized name, suffixed "_N" if it was handed out before.
func (r *nameRegistry) unique(name string) string {
	s := sanitizeNodeName(name)
	if n, ok := r.used[s]; ok {
		n++
		r.used[s] = n
		return s + "_" + strconv.Itoa(n)
	}
	r.used[s] = 0
	return s
}
