package pathutil

import (
	"regexp"
	"strings"
)

// UnmatchedPath is the label used for every path the API does not serve.
const UnmatchedPath = "unmatched"

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/news/latest/\d+$`), Template: "/news/latest/:count"},
	{Pattern: regexp.MustCompile(`^/swagger/.+$`), Template: "/swagger/*"},
}

// staticPaths are served as is and keep their own label.
var staticPaths = map[string]struct{}{
	"/":          {},
	"/news":      {},
	"/status":    {},
	"/dashboard": {},
	"/health":    {},
	"/live":      {},
	"/ready":     {},
	"/metrics":   {},
}

// NormalizePath maps a request path to a bounded set of metric labels.
// Dynamic segments are replaced by their template and any path the API does
// not serve collapses into UnmatchedPath, so scanners probing random URLs
// cannot blow up label cardinality.
//
// Examples:
//
//	NormalizePath("/news/latest/5")     // "/news/latest/:count"
//	NormalizePath("/news?x=1")          // "/news"
//	NormalizePath("/status/")           // "/status"
//	NormalizePath("/wp-login.php")      // "unmatched"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return UnmatchedPath
}

// GetExpectedCardinality returns the maximum number of distinct labels
// NormalizePath can produce.
func GetExpectedCardinality() int {
	return len(staticPaths) + len(pathPatterns) + 1
}
