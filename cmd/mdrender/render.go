package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	mdrender "github.com/alnah/go-mdrender"
	"github.com/alnah/go-mdrender/internal/config"
	"github.com/alnah/go-mdrender/internal/fileutil"
	"github.com/alnah/go-mdrender/internal/hints"
	"github.com/alnah/go-mdrender/internal/logger"
	"github.com/alnah/go-mdrender/internal/present"
	"github.com/alnah/go-mdrender/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage        = errors.New("invalid usage")
	ErrNoInput      = errors.New("no input: pass a file or pipe markdown on stdin")
	ErrReadMarkdown = errors.New("failed to read markdown")
	ErrWriteOutput  = errors.New("failed to write output")
	ErrWatchStdin   = errors.New("--watch needs a file argument")
	ErrImagesFailed = errors.New("images failed to load")
)

// maxMarkdownBytes caps the size of a markdown input.
const maxMarkdownBytes = 10 << 20

// stdinName names stdin in logs and errors.
const stdinName = "<stdin>"

// presenter writes a render tree to w.
type presenter func(w io.Writer, root mdrender.RenderNode) error

// job renders one input with a fixed configuration.
type job struct {
	renderer *mdrender.Renderer
	present  presenter
	env      *Environment
	log      *logger.Logger
	timeout  time.Duration
	wait     bool
	strict   bool
}

// run resolves the configuration and renders the input once, or keeps
// rendering it in watch mode.
func run(ctx context.Context, flags *renderFlags, args []string, env *Environment, log *logger.Logger) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: expected at most one file, got %d", ErrUsage, len(args))
	}

	envCfg := loadEnvConfig()
	warnEnvConfig(envCfg, log)

	cfg, err := loadConfig(flags.common.config, envCfg, log)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if flags.printConfig {
		data, err := yamlutil.Marshal(cfg)
		if err != nil {
			return err
		}
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		if flags.watch {
			return ErrWatchStdin
		}
		if env.StdinIsTerminal != nil && env.StdinIsTerminal() {
			return ErrNoInput
		}
	}

	pr, err := newPresenter(cfg, env)
	if err != nil {
		return err
	}

	j := &job{
		renderer: mdrender.NewRenderer(rendererOptions(cfg, log)...),
		present:  pr,
		env:      env,
		log:      log,
		timeout:  resolveTimeout(flags, envCfg),
		wait:     !flags.images.noWait,
		strict:   flags.images.strict,
	}

	if flags.watch {
		return j.watch(ctx, path)
	}
	return j.render(ctx, path)
}

// loadConfig loads the named config file, or returns the defaults when
// neither --config nor MDRENDER_CONFIG is set.
func loadConfig(name string, env *envConfig, log *logger.Logger) (*config.Config, error) {
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, path, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(configCandidates(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log.ConfigLoaded(path)
	return cfg, nil
}

// configCandidates lists where a config name is looked up, for hints.
func configCandidates(name string) []string {
	if fileutil.IsFilePath(name) {
		return nil
	}
	paths := []string{name + ".yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "go-mdrender", name+".yaml"))
	}
	return paths
}

// mergeFlags applies the flags given on the command line to cfg.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.set[flagFormat] {
		cfg.Output.Format = strings.ToLower(flags.output.format)
	}
	if flags.set[flagWidth] {
		cfg.Output.Width = flags.output.width
	}
	if flags.set[flagNoHighlight] && flags.output.noHighlight {
		cfg.Code.Highlight = false
	}
	if flags.set[flagNoImages] && flags.images.disabled {
		cfg.Images.Enabled = false
	}
	if flags.set[flagImageTimeout] {
		cfg.Images.Timeout = flags.images.timeout
	}
	if flags.set[flagWorkers] {
		cfg.Images.MaxParallel = flags.images.workers
	}
}

// resolveTimeout picks the overall timeout: flag, then env, then default.
func resolveTimeout(flags *renderFlags, env *envConfig) time.Duration {
	if flags.set["timeout"] {
		return flags.timeout
	}
	if env.Timeout > 0 {
		return env.Timeout
	}
	return defaultTimeout
}

// resolveWidth picks the wrap width: config, then terminal, then default.
func resolveWidth(cfg *config.Config, env *Environment) int {
	if cfg.Output.Width > 0 {
		return cfg.Output.Width
	}
	if env.TerminalWidth != nil {
		if w := env.TerminalWidth(); w > 0 {
			return w
		}
	}
	return present.DefaultWidth
}

// newPresenter returns the writer for the configured output format.
func newPresenter(cfg *config.Config, env *Environment) (presenter, error) {
	switch strings.ToLower(cfg.Output.Format) {
	case "", config.FormatText:
		text := present.NewText(
			present.WithWidth(resolveWidth(cfg, env)),
			present.WithStyles(present.DefaultStyles(lipgloss.NewRenderer(env.Stdout))),
		)
		return text.Render, nil
	case config.FormatYAML:
		return present.WriteOutline, nil
	default:
		return nil, fmt.Errorf("%w: %q%s", config.ErrInvalidFormat, cfg.Output.Format,
			hints.ForFormat([]string{config.FormatText, config.FormatYAML}))
	}
}

// rendererOptions maps the configuration to library options.
func rendererOptions(cfg *config.Config, log *logger.Logger) []mdrender.Option {
	fetcher := mdrender.NewHTTPFetcher()
	fetcher.MaxBytes = cfg.Images.MaxBytes
	if cfg.Images.UserAgent != "" {
		fetcher.UserAgent = cfg.Images.UserAgent
	}

	return []mdrender.Option{
		mdrender.WithLayout(mdrender.Layout{
			BlockGap:         cfg.Layout.BlockGap,
			ListItemGap:      cfg.Layout.ListItemGap,
			NestedListIndent: cfg.Layout.NestedListIndent,
			TableCellPadding: cfg.Layout.TableCellPadding,
		}),
		mdrender.WithHighlighting(cfg.Code.Highlight),
		mdrender.WithImages(cfg.Images.Enabled),
		mdrender.WithFetcher(fetcher),
		mdrender.WithFetchPool(mdrender.NewFetchPool(mdrender.ResolvePoolSize(cfg.Images.MaxParallel))),
		mdrender.WithFetchTimeout(cfg.Images.Timeout),
		mdrender.WithLogger(log),
	}
}

// readInput reads the markdown at path, or stdin when path is empty.
// Relative images resolve against the file's directory.
func readInput(path string, stdin io.Reader) (mdrender.Input, error) {
	if path == "" {
		data, err := fileutil.ReadLimited(stdin, maxMarkdownBytes)
		if err != nil {
			return mdrender.Input{}, fmt.Errorf("%w: %s: %w", ErrReadMarkdown, stdinName, err)
		}
		return mdrender.Input{Markdown: string(data)}, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return mdrender.Input{}, fmt.Errorf("%w: %s: %w", ErrReadMarkdown, path, err)
	}
	data, err := fileutil.ReadFileLimited(abs, maxMarkdownBytes)
	if err != nil {
		return mdrender.Input{}, fmt.Errorf("%w: %s: %w", ErrReadMarkdown, path, err)
	}
	return mdrender.Input{Markdown: string(data), SourceDir: filepath.Dir(abs)}, nil
}

// render renders path once and writes the result to stdout.
func (j *job) render(ctx context.Context, path string) error {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	name := path
	if name == "" {
		name = stdinName
	}
	start := time.Now()

	input, err := readInput(path, j.env.Stdin)
	if err != nil {
		return err
	}

	tree, err := j.renderer.Render(ctx, input)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("rendering %s: %w%s", name, err, hints.ForTimeout())
		}
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	defer tree.Close()

	if j.wait {
		if err := tree.Wait(ctx); err != nil {
			j.log.Warn("stopped waiting for images", "error", err)
		}
	}
	report := settle(tree)
	j.log.ImagesSettled(report.loaded, report.failed, report.pending)

	if err := j.present(j.env.Stdout, tree.Root); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	j.log.Rendered(name, len(tree.Images()), time.Since(start))

	if j.strict && report.failed+report.pending > 0 {
		return fmt.Errorf("%w: %d of %d%s", ErrImagesFailed,
			report.failed+report.pending, len(tree.Images()), hints.ForImage(report.firstErr))
	}
	return nil
}

// imageReport counts image loads by state.
type imageReport struct {
	loaded, failed, pending int
	firstErr                error
}

func settle(tree *mdrender.Tree) imageReport {
	var r imageReport
	for _, load := range tree.Images() {
		state := load.State()
		switch state.Status {
		case mdrender.ImageSuccess:
			r.loaded++
		case mdrender.ImageFailure:
			if errors.Is(state.Err, mdrender.ErrImagesDisabled) {
				continue
			}
			r.failed++
			if r.firstErr == nil {
				r.firstErr = state.Err
			}
		default:
			r.pending++
		}
	}
	return r
}
