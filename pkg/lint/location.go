package lint

import (
	"net/url"
	"strings"
)

const fileScheme = "file://"

// Location is an offense URI resolved against a workspace root.
type Location struct {
	Path      string // display path: workspace-relative, absolute, raw URI, or "unknown"
	Relative  bool   // Path is relative to the workspace root
	DecodeErr error  // non-nil when percent-decoding the URI path failed
}

// ResolveLocation derives the display path for an offense URI.
//
// An empty URI resolves to "unknown". A URI with a non-file scheme is
// displayed verbatim. For file URIs the path portion is percent-decoded
// and, when it lies under the workspace root, reduced to the
// workspace-relative remainder. A decode failure keeps the un-decoded
// path portion and records the error.
func ResolveLocation(uri, workspaceDir string) Location {
	if uri == "" {
		return Location{Path: "unknown"}
	}
	if !strings.HasPrefix(uri, fileScheme) {
		return Location{Path: uri}
	}

	raw := strings.TrimPrefix(uri, fileScheme)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return Location{Path: raw, DecodeErr: err}
	}

	// File URIs are slash-separated regardless of platform, so the root
	// is normalized to exactly one trailing slash before matching.
	root := strings.TrimRight(workspaceDir, "/") + "/"
	if strings.HasPrefix(decoded, root) {
		return Location{Path: decoded[len(root):], Relative: true}
	}
	return Location{Path: decoded}
}
