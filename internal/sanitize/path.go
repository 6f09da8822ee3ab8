// Package sanitize implements path-traversal defense and size-limit
// enforcement for untrusted remote file trees.
package sanitize

import "strings"

// excludedPrefixes are directory markers that disqualify an entry outright.
// They are matched as substrings of the raw path, before normalization.
var excludedPrefixes = []string{
	"node_modules/",
	".git/",
}

// Excluded reports whether a raw path belongs to an excluded directory
func Excluded(rawPath string) bool {
	for _, prefix := range excludedPrefixes {
		if strings.Contains(rawPath, prefix) {
			return true
		}
	}
	return false
}

// NormalizePath normalizes a raw slash-separated path against the output root.
// Empty and "." segments are dropped. A ".." segment pops the last accepted
// segment; at the root it is dropped silently, so an escape attempt above the
// root is flattened back into the tree rather than propagated.
//
// The returned path never starts with "/", never contains a ".." segment, and
// is never empty; ok is false when no usable path remains.
// Normalization is idempotent.
func NormalizePath(rawPath string) (string, bool) {
	segments := strings.Split(rawPath, "/")
	kept := make([]string, 0, len(segments))

	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(kept) > 0 {
				kept = kept[:len(kept)-1]
			}
		default:
			kept = append(kept, seg)
		}
	}

	if len(kept) == 0 {
		return "", false
	}

	normalized := strings.Join(kept, "/")

	// Hard invariant; unreachable given the pass above, but a violation here
	// would be a traversal hole so it is rechecked rather than assumed.
	if !IsSafe(normalized) {
		return "", false
	}

	return normalized, true
}

// IsSafe reports whether a normalized path satisfies the safety invariant:
// non-empty, relative, and free of ".." segments.
func IsSafe(path string) bool {
	if path == "" || strings.HasPrefix(path, "/") {
		return false
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}
