package merging

import "strings"

// Path addresses a policy (and the matching field) from the root of a tree.
// The empty Path is the root.
type Path []string

// ParsePath splits a dotted path such as "items.tags". The empty string is
// the root path.
func ParsePath(dotted string) Path {
	if dotted == "" {
		return nil
	}
	return Path(strings.Split(dotted, "."))
}

// Append returns a new Path with key added; p is left untouched.
func (p Path) Append(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, key)
}

// String renders the path with dots.
func (p Path) String() string {
	return strings.Join(p, ".")
}
