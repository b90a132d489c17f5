package mdrender

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdrender/internal/pipeline"
	"github.com/alnah/go-mdrender/markup"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Preprocessor = (*pipeline.TextPreprocessor)(nil)
	_ pipeline.Parser       = (*pipeline.GoldmarkParser)(nil)
	_ Fetcher               = (*HTTPFetcher)(nil)
	_ Fetcher               = FetcherFunc(nil)
	_ Dispatcher            = DispatcherFunc(nil)
)

// Input is one Markdown document to render.
type Input struct {
	Markdown string
	// SourceDir resolves relative image sources. Empty leaves them
	// relative, and their slots fail with ErrInvalidImageSource.
	SourceDir string
}

// Renderer runs the full pipeline from Markdown text to render tree.
// Create with NewRenderer; a Renderer is safe for concurrent use.
type Renderer struct {
	builder      *Builder
	preprocessor pipeline.Preprocessor
	parser       pipeline.Parser
	logger       Logger
}

// NewRenderer creates a Renderer with default configuration.
// Use options to customize behavior (e.g., WithLayout, WithFetcher).
func NewRenderer(opts ...Option) *Renderer {
	o := newOptions(opts)
	return &Renderer{
		builder:      newBuilder(o),
		preprocessor: o.preprocessor,
		parser:       o.parser,
		logger:       o.logger,
	}
}

// Builder returns the builder the renderer uses for parsed documents.
func (r *Renderer) Builder() *Builder {
	return r.builder
}

// Parse preprocesses and parses input into a markup document.
func (r *Renderer) Parse(ctx context.Context, input Input) (*markup.Document, error) {
	content := r.preprocessor.Preprocess(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := r.parser.Parse(ctx, content, pipeline.ParseOptions{SourceDir: input.SourceDir})
	if err != nil {
		return nil, fmt.Errorf("parsing markdown: %w", err)
	}
	return doc, nil
}

// Render parses input and builds its render tree. The context bounds both
// parsing and the lifetime of the tree's image fetches; call Tree.Close to
// stop the fetches earlier. Recovers from internal panics to prevent
// crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, input Input) (tree *Tree, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			tree = nil
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	doc, err := r.Parse(ctx, input)
	if err != nil {
		return nil, err
	}

	tree = r.builder.Build(ctx, doc)
	r.logger.Debug("markdown rendered", "bytes", len(input.Markdown), "images", len(tree.Images()))
	return tree, nil
}
