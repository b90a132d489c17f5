package main

import (
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by every invocation.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// imageFlags holds image loading flags.
type imageFlags struct {
	disabled bool
	timeout  time.Duration
	workers  int
	noWait   bool
	strict   bool
}

// outputFlags holds presentation flags.
type outputFlags struct {
	format      string
	width       int
	noHighlight bool
}

// renderFlags holds all flags of the mdrender command.
type renderFlags struct {
	common      commonFlags
	images      imageFlags
	output      outputFlags
	timeout     time.Duration
	watch       bool
	printConfig bool
	version     bool
	help        bool

	// set records the flags given on the command line. Only those override
	// the config file and the environment.
	set map[string]bool
}

// Flag names looked up in renderFlags.set.
const (
	flagFormat       = "format"
	flagWidth        = "width"
	flagNoImages     = "no-images"
	flagImageTimeout = "image-timeout"
	flagWorkers      = "workers"
	flagNoHighlight  = "no-highlight"
)

// defaultTimeout bounds parsing plus the wait for images.
const defaultTimeout = 2 * time.Minute

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show image progress and timing")
}

// addImageFlags adds image flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.BoolVar(&f.disabled, flagNoImages, false, "do not fetch images")
	fs.DurationVar(&f.timeout, flagImageTimeout, 0, "per-image fetch timeout (e.g., 10s)")
	fs.IntVarP(&f.workers, flagWorkers, "w", 0, "parallel image fetches (0 = auto)")
	fs.BoolVar(&f.noWait, "no-wait", false, "print before images finish loading")
	fs.BoolVar(&f.strict, "strict", false, "fail when an image cannot be loaded")
}

// addOutputFlags adds presentation flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.format, flagFormat, "f", "", "output format: text, yaml")
	fs.IntVar(&f.width, flagWidth, 0, "wrap width in columns (0 = terminal)")
	fs.BoolVar(&f.noHighlight, flagNoHighlight, false, "disable code highlighting")
}

// parseFlags parses the command line (without the program name) and
// returns positional args.
func parseFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("mdrender", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &renderFlags{set: make(map[string]bool)}

	fs.DurationVarP(&f.timeout, "timeout", "t", defaultTimeout, "overall render timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.watch, "watch", false, "re-render when the file changes")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective config and exit")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	addCommonFlags(fs, &f.common)
	addImageFlags(fs, &f.images)
	addOutputFlags(fs, &f.output)

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	return f, fs.Args(), nil
}
