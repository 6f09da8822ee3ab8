package utils

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/blitzpack/internal/domain"
)

// editMarker is the URL path segment that precedes the project identifier
const editMarker = "/edit/"

// ExtractProjectID extracts the project identifier from an editor URL.
// The identifier is the segment immediately following "/edit/", terminated by
// the first "/", "?" or "#". The identifier is returned verbatim; character
// validation happens in the fetcher, which is the trust boundary.
func ExtractProjectID(rawURL string) (string, error) {
	idx := strings.Index(rawURL, editMarker)
	if idx < 0 {
		return "", fmt.Errorf("%w: no %q segment in %q", domain.ErrInvalidURL, editMarker, rawURL)
	}

	rest := rawURL[idx+len(editMarker):]
	end := strings.IndexAny(rest, "/?#")
	if end >= 0 {
		rest = rest[:end]
	}

	if rest == "" {
		return "", fmt.Errorf("%w: empty project identifier in %q", domain.ErrInvalidURL, rawURL)
	}

	return rest, nil
}

// ProjectIDOrURL accepts either a bare project identifier or a full editor URL
// and returns the identifier. Bare identifiers pass through untouched.
func ProjectIDOrURL(arg string) (string, error) {
	if strings.Contains(arg, editMarker) {
		return ExtractProjectID(arg)
	}
	if strings.ContainsAny(arg, "/?#") {
		return "", fmt.Errorf("%w: %q is neither an identifier nor an editor URL", domain.ErrInvalidURL, arg)
	}
	return arg, nil
}
