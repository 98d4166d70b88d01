package model

import "strings"

const pathDelimiter = "."

// Path is a dotted key identifying a node of a model tree, e.g. "nested.inner".
// The same Path is the type of the action dispatched for a handler.
type Path string

// Child returns the path of the member key under p.
func (p Path) Child(key string) Path {
	if p == "" {
		return Path(key)
	}
	return p + pathDelimiter + Path(key)
}

// Segments splits the path on the delimiter.
func (p Path) Segments() []string {
	return strings.Split(string(p), pathDelimiter)
}

func (p Path) String() string { return string(p) }

// Resolve walks path against m and returns the member found at its end.
// Every intermediate segment must name a sub-model, otherwise the path does not resolve.
// Lookups at each level include the base chain of that level.
func Resolve(m *Model, path Path) (Member, bool) {
	if m == nil {
		return Member{}, false
	}
	cur := Sub(m)
	for _, seg := range path.Segments() {
		if cur.kind != KindSub || cur.sub == nil {
			return Member{}, false
		}
		next, ok := cur.sub.Lookup(seg)
		if !ok {
			return Member{}, false
		}
		cur = next
	}
	return cur, true
}
