// Package fileutil provides file, path and URL utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrLimitExceeded = errors.New("content exceeds size limit")
	ErrNotFileURL    = errors.New("not a file URL")
)

// ReadLimited reads r until EOF, failing with ErrLimitExceeded once more
// than limit bytes are seen. A limit <= 0 disables the check.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrLimitExceeded, limit)
	}
	return data, nil
}

// ReadFileLimited reads the file at path with the ReadLimited cap.
func ReadFileLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from a resolved document URL
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ReadLimited(f, limit)
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "compact" -> false (name)
//   - "./mdrender.yaml" -> true (relative path)
//   - "/etc/mdrender/compact.yaml" -> true (absolute)
//   - "C:\config\compact.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like an HTTP(S) URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// IsFileURL returns true if the string is a file:// URL.
func IsFileURL(s string) bool {
	return strings.HasPrefix(s, "file://")
}

// PathFromFileURL converts a file:// URL to a local filesystem path.
func PathFromFileURL(u *url.URL) (string, error) {
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: %q", ErrNotFileURL, u.String())
	}
	if u.Path == "" {
		return "", fmt.Errorf("%w: %q has no path", ErrNotFileURL, u.String())
	}

	p := filepath.FromSlash(u.Path)
	// file:///C:/dir/a.png parses to "/C:/dir/a.png" on Windows.
	if len(p) >= 3 && (p[0] == '\\' || p[0] == '/') && p[2] == ':' {
		p = p[1:]
	}
	return p, nil
}
