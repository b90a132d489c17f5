// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"context"
	"errors"
	"strings"

	mdrender "github.com/alnah/go-mdrender"
	"github.com/alnah/go-mdrender/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForImage returns a hint for a failed image load, or "" when the error
// has no known remedy.
func ForImage(err error) string {
	switch {
	case errors.Is(err, mdrender.ErrImagesDisabled):
		return ""
	case errors.Is(err, mdrender.ErrInvalidImageSource):
		return format("relative images resolve only when rendering a file, not stdin")
	case errors.Is(err, mdrender.ErrUnsupportedScheme):
		return format("supported sources: http, https, file")
	case errors.Is(err, mdrender.ErrImageTooLarge):
		return format("raise images.maxBytes in the config file")
	case errors.Is(err, context.DeadlineExceeded):
		return format("for slow hosts, use --image-timeout or MDRENDER_IMAGE_TIMEOUT")
	}
	return ""
}

// ForTimeout returns a hint about the overall render timeout.
func ForTimeout() string {
	return format("for documents with many remote images, use --timeout flag")
}

// ForWatch returns hints for running in watch mode. File events on
// container bind mounts are unreliable.
func ForWatch() string {
	if IsInContainer() {
		return format("file events from bind mounts may not reach the container; edit the file inside it")
	}
	return ""
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-mdrender/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains go-mdrender) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-mdrender") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForFormat returns the list of valid output formats.
func ForFormat(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
