package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"
)

// ResolveImageSource converts a relative image source to an absolute file://
// URL under sourceDir. If sourceDir is empty, or the source is already a URL,
// an anchor, or an absolute path, the source is returned unchanged.
//
// Sources that would escape sourceDir (via ..) are left as they are; the
// image loader later rejects them as malformed because they are relative.
func ResolveImageSource(src, sourceDir string) string {
	if sourceDir == "" || !isRelativePath(src) {
		return src
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return src
	}

	absPath := filepath.Join(absSourceDir, src)
	if !isPathUnderDir(absPath, absSourceDir) {
		return src
	}

	return pathToFileURL(absPath)
}

// isRelativePath returns true if the source should be resolved.
func isRelativePath(path string) bool {
	if path == "" {
		return false
	}

	// Skip URLs (http, https, file, data, protocol-relative)
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "file://") ||
		strings.HasPrefix(path, "data:") ||
		strings.HasPrefix(path, "//") {
		return false
	}

	if strings.HasPrefix(path, "#") {
		return false
	}

	if filepath.IsAbs(path) {
		return false
	}

	return true
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
