package field

import "strings"

// Well-known path prefixes produced by the extractor.
const (
	PrefixHeader = "header"
	PrefixBody   = "body"
)

// JoinPath appends key to prefix with a dot. An empty prefix yields key.
func JoinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}

// Leaf returns the last dotted segment of path.
func Leaf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}

	return path
}

// TrimRoot strips a leading "header." or "body." segment so that paths from
// a request line up with paths from plain documents.
func TrimRoot(path string) string {
	for _, p := range []string{PrefixHeader + ".", PrefixBody + "."} {
		if strings.HasPrefix(path, p) {
			return strings.TrimPrefix(path, p)
		}
	}

	return path
}

// Segments splits path on dots. An empty path has no segments.
func Segments(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, ".")
}
