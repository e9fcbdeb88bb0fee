package pathutil

import "strings"

// NormalizePrefix forces a path prefix to start with "/" and strips any
// trailing "/". An empty or all-slash prefix normalizes to "".
func NormalizePrefix(prefix string) string {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

// JoinPrefix joins a normalized prefix and an original path with exactly one
// separating slash. An empty prefix returns path unchanged.
func JoinPrefix(prefix, path string) string {
	if prefix == "" {
		return path
	}
	return prefix + "/" + strings.TrimLeft(path, "/")
}
