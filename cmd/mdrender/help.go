package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdrender [flags] [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a markdown file as a layout tree. Reads stdin when no file is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <d>         Overall render timeout (default 2m)")
	fmt.Fprintln(w, "      --watch               Re-render when the file changes")
	fmt.Fprintln(w, "      --print-config        Print the effective config and exit")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show image progress and timing")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: text, yaml")
	fmt.Fprintln(w, "      --width <n>           Wrap width in columns (0 = terminal)")
	fmt.Fprintln(w, "      --no-highlight        Disable code highlighting")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Images:")
	fmt.Fprintln(w, "      --no-images           Do not fetch images")
	fmt.Fprintln(w, "      --image-timeout <d>   Per-image fetch timeout")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel image fetches (0 = auto)")
	fmt.Fprintln(w, "      --no-wait             Print before images finish loading")
	fmt.Fprintln(w, "      --strict              Fail when an image cannot be loaded")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDRENDER_CONFIG, MDRENDER_FORMAT, MDRENDER_WIDTH, MDRENDER_TIMEOUT,")
	fmt.Fprintln(w, "  MDRENDER_IMAGE_TIMEOUT, MDRENDER_NO_IMAGES, MDRENDER_WORKERS")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 error, 2 usage, 3 I/O, 4 image failed (--strict)")
}
